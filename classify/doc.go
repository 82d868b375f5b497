// Package classify parses RawPartitions independently and sorts them into good and bad results.
//
// Classify is a total function: a partition which cannot be parsed never aborts processing,
// it becomes a Failure result which keeps the parse error alongside the original bytes.
// A Dataset holds a collection of partitions, and its Good and Bad Views are lazy,
// restartable projections over the classified collection.
package classify
