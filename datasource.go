package triage

// PartitionLoader is a description of how to load specific RawPartitions from a particular DataSource.
// DataSources implement this interface to implement data-loading logic.
type PartitionLoader interface {
	ToString() string                 // for logging
	Load() (PartitionIterator, error) // how to actually load data
}

// PartitionMap is an interface describing an iterator for PartitionLoaders.
// Returned by DataSource.Analyze()
type PartitionMap interface {
	HasNext() bool
	Next() PartitionLoader
}

// DataSource is a source of RawPartitions. It represents information about how to load
// raw data from the source, split into partitions.
type DataSource interface {
	Analyze() (PartitionMap, error)
}
