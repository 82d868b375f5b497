package memory

import (
	"fmt"

	"github.com/go-sif/triage"
	"github.com/go-sif/triage/errors"
)

// PartitionLoader is capable of loading a RawPartition from a buffer
type PartitionLoader struct {
	idx    int
	source *DataSource
}

// ToString returns a string representation of this PartitionLoader
func (pl *PartitionLoader) ToString() string {
	return fmt.Sprintf("Memory loader index: %d", pl.idx)
}

// Load produces an iterator over the single RawPartition held by this loader
func (pl *PartitionLoader) Load() (triage.PartitionIterator, error) {
	return &partitionIterator{
		part: triage.RawPartition{
			Source: pl.source.name,
			Index:  pl.idx,
			Data:   pl.source.data[pl.idx],
		},
		hasNext: true,
	}, nil
}

type partitionIterator struct {
	part         triage.RawPartition
	hasNext      bool
	endListeners []func()
}

func (pi *partitionIterator) OnEnd(onEnd func()) {
	pi.endListeners = append(pi.endListeners, onEnd)
}

func (pi *partitionIterator) HasNextPartition() bool {
	return pi.hasNext
}

func (pi *partitionIterator) NextPartition() (triage.RawPartition, error) {
	if !pi.hasNext {
		return triage.RawPartition{}, errors.NoMorePartitionsError{}
	}
	pi.hasNext = false
	for _, l := range pi.endListeners {
		l()
	}
	pi.endListeners = nil
	return pi.part, nil
}
