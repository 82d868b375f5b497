// Package dsv parses delimiter-separated values (CSV, TSV, ...) partitions into Tables.
// The first record of each partition is its header, and every following record must
// have the same number of fields.
package dsv
