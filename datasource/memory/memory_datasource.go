package memory

import (
	"github.com/go-sif/triage"
)

// DefaultSourceName labels RawPartitions produced by a memory DataSource unless another name is given
const DefaultSourceName = "memory"

// DataSource is a buffer containing raw data, one entry per RawPartition
type DataSource struct {
	name string
	data [][]byte
}

// CreateSource is a factory for DataSources
func CreateSource(data [][]byte) *DataSource {
	return CreateNamedSource(DefaultSourceName, data)
}

// CreateNamedSource is a factory for DataSources which labels its RawPartitions with name
func CreateNamedSource(name string, data [][]byte) *DataSource {
	return &DataSource{name: name, data: data}
}

// Analyze returns a PartitionMap, describing how the source data will be divided into RawPartitions
func (fs *DataSource) Analyze() (triage.PartitionMap, error) {
	return &PartitionMap{
		source: fs,
	}, nil
}
