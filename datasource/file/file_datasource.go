package file

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/go-sif/triage"
	"github.com/go-sif/triage/logging"
)

// SourceConf configures a file DataSource
type SourceConf struct {
	Glob              string       // [REQUIRED] files to read, as a filepath.Glob pattern
	LineDelimiter     string       // the delimiter RawPartitions are split on within each file. Defaults to "" (one RawPartition per file).
	FilesPerPartition int          // the number of files assigned to each PartitionLoader. Defaults to 1.
	MaxPartitionSize  int          // the maximum size in bytes of a single RawPartition. Defaults to 64 MiB.
	Logger            *slog.Logger // defaults to slog.Default()
}

// DataSource is a glob of files which will be split into RawPartitions
type DataSource struct {
	conf *SourceConf
}

// CreateSource is a factory for DataSources
func CreateSource(conf *SourceConf) *DataSource {
	if conf.FilesPerPartition <= 0 {
		conf.FilesPerPartition = 1
	}
	if conf.MaxPartitionSize <= 0 {
		conf.MaxPartitionSize = 64 * 1024 * 1024
	}
	conf.Logger = logging.OrDefault(conf.Logger)
	return &DataSource{conf: conf}
}

// Analyze returns a PartitionMap, describing how the source files will be divided into RawPartitions
func (fs *DataSource) Analyze() (triage.PartitionMap, error) {
	matches, err := filepath.Glob(fs.conf.Glob)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("glob %s produced 0 files", fs.conf.Glob)
	}
	sort.Strings(matches)
	var groups [][]string
	for start := 0; start < len(matches); start += fs.conf.FilesPerPartition {
		end := start + fs.conf.FilesPerPartition
		if end > len(matches) {
			end = len(matches)
		}
		groups = append(groups, matches[start:end])
	}
	fs.conf.Logger.Debug("analyzed file source", "glob", fs.conf.Glob, "files", len(matches), "loaders", len(groups))
	return &PartitionMap{
		groups: groups,
		source: fs,
	}, nil
}
