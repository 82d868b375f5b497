// Package file provides a DataSource which reads RawPartitions from a glob of files on disk.
// Each file is split on a caller-chosen delimiter; with no delimiter, every file is a single RawPartition.
// Files are assigned to PartitionLoaders in groups, so it is favourable if individual
// files represent roughly equal-sized divisions of data.
package file
