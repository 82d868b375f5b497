package file

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/go-sif/triage"
	"github.com/go-sif/triage/errors"
)

// PartitionLoader is capable of loading RawPartitions from a group of files
type PartitionLoader struct {
	paths  []string
	source *DataSource
}

// ToString returns a string representation of this PartitionLoader
func (pl *PartitionLoader) ToString() string {
	return fmt.Sprintf("File loader filenames: %s", strings.Join(pl.paths, ", "))
}

// Load produces an iterator over the RawPartitions in this loader's files. Files are opened lazily, one at a time.
func (pl *PartitionLoader) Load() (triage.PartitionIterator, error) {
	return &filePartitionIterator{
		loader:       pl,
		remaining:    pl.paths,
		endListeners: []func(){},
	}, nil
}

type filePartitionIterator struct {
	loader       *PartitionLoader
	remaining    []string
	current      *os.File
	currentPath  string
	scanner      *bufio.Scanner
	segment      int
	pending      *triage.RawPartition
	err          error
	done         bool
	lock         sync.Mutex
	endListeners []func()
}

// OnEnd registers a listener which fires when this iterator runs out of RawPartitions
func (fi *filePartitionIterator) OnEnd(onEnd func()) {
	fi.lock.Lock()
	defer fi.lock.Unlock()
	fi.endListeners = append(fi.endListeners, onEnd)
}

// HasNextPartition returns true iff this PartitionIterator can produce another RawPartition (or an error)
func (fi *filePartitionIterator) HasNextPartition() bool {
	fi.lock.Lock()
	defer fi.lock.Unlock()
	fi.advance()
	return fi.pending != nil || fi.err != nil
}

// NextPartition returns the next RawPartition if one is available, or an error
func (fi *filePartitionIterator) NextPartition() (triage.RawPartition, error) {
	fi.lock.Lock()
	defer fi.lock.Unlock()
	fi.advance()
	if fi.err != nil {
		err := fi.err
		fi.err = nil
		fi.finish()
		return triage.RawPartition{}, err
	}
	if fi.pending == nil {
		return triage.RawPartition{}, errors.NoMorePartitionsError{}
	}
	part := *fi.pending
	fi.pending = nil
	return part, nil
}

// advance buffers the next RawPartition, if there is one. Must be called with the lock held.
func (fi *filePartitionIterator) advance() {
	for fi.pending == nil && fi.err == nil && !fi.done {
		if fi.scanner == nil {
			if len(fi.remaining) == 0 {
				fi.finish()
				return
			}
			if err := fi.open(fi.remaining[0]); err != nil {
				fi.err = err
				return
			}
			fi.remaining = fi.remaining[1:]
		}
		if fi.scanner.Scan() {
			data := make([]byte, len(fi.scanner.Bytes()))
			copy(data, fi.scanner.Bytes())
			fi.pending = &triage.RawPartition{Source: fi.currentPath, Index: fi.segment, Data: data}
			fi.segment++
			continue
		}
		if err := fi.scanner.Err(); err != nil {
			fi.err = fmt.Errorf("unable to read %s: %w", fi.currentPath, err)
		} else if fi.segment == 0 && len(fi.loader.source.conf.LineDelimiter) == 0 {
			// an empty file is still one (empty) partition when files are not split
			fi.pending = &triage.RawPartition{Source: fi.currentPath, Index: 0, Data: []byte{}}
		}
		fi.closeCurrent()
	}
}

func (fi *filePartitionIterator) open(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	conf := fi.loader.source.conf
	conf.Logger.Debug("reading file", "path", path)
	scanner := bufio.NewScanner(f)
	initial := 64 * 1024
	if conf.MaxPartitionSize < initial {
		initial = conf.MaxPartitionSize
	}
	scanner.Buffer(make([]byte, 0, initial), conf.MaxPartitionSize)
	scanner.Split(SplitOnDelimiter([]byte(conf.LineDelimiter)))
	fi.current = f
	fi.currentPath = path
	fi.scanner = scanner
	fi.segment = 0
	return nil
}

func (fi *filePartitionIterator) closeCurrent() {
	if fi.current != nil {
		if err := fi.current.Close(); err != nil {
			fi.loader.source.conf.Logger.Warn("couldn't close file", "path", fi.currentPath, "error", err)
		}
	}
	fi.current = nil
	fi.scanner = nil
}

func (fi *filePartitionIterator) finish() {
	if fi.done {
		return
	}
	fi.closeCurrent()
	fi.done = true
	for _, l := range fi.endListeners {
		l()
	}
	fi.endListeners = []func(){}
}
