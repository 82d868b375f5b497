package triage

import "fmt"

// A RawPartition is an unparsed unit of input text, identified by where it came from
// and its position within the full collection of partitions. RawPartitions are produced
// once by a DataSource and are never modified afterwards.
type RawPartition struct {
	Source string // where this partition was read from (a file path, or a label for in-memory data)
	Index  int    // position of this partition within the collection it belongs to
	Data   []byte // the raw, unparsed bytes
}

// ID returns a human-readable identifier for this RawPartition
func (p RawPartition) ID() string {
	return fmt.Sprintf("%s#%d", p.Source, p.Index)
}

// Size returns the size of this RawPartition in bytes
func (p RawPartition) Size() int {
	return len(p.Data)
}
