package triage

// PartitionIterator is a generalized interface for iterating over RawPartitions, regardless of where they come from
type PartitionIterator interface {
	HasNextPartition() bool
	NextPartition() (RawPartition, error)
	OnEnd(onEnd func())
}
