package file

import "github.com/go-sif/triage"

// PartitionMap is an iterator producing a sequence of PartitionLoaders
type PartitionMap struct {
	groups [][]string
	source *DataSource
}

// HasNext returns true iff there is another PartitionLoader remaining
func (pm *PartitionMap) HasNext() bool {
	return len(pm.groups) > 0
}

// Next returns the next PartitionLoader for a group of files
func (pm *PartitionMap) Next() triage.PartitionLoader {
	result := &PartitionLoader{paths: pm.groups[0], source: pm.source}
	pm.groups = pm.groups[1:]
	return result
}
