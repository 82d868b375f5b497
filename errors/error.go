package errors

import (
	"fmt"
)

// PartitionParseError occurs when a RawPartition's content cannot be interpreted as structured tabular data
type PartitionParseError struct {
	Source string
	Index  int
	Parser string
	Err    error
}

// Error returns a textual representation of this PartitionParseError
func (e *PartitionParseError) Error() string {
	return fmt.Sprintf("Unable to parse partition %s#%d with %s parser: %v", e.Source, e.Index, e.Parser, e.Err)
}

// Unwrap returns the underlying cause of this PartitionParseError
func (e *PartitionParseError) Unwrap() error {
	return e.Err
}

// EmptyPartitionError occurs when a RawPartition contains no parseable content at all
type EmptyPartitionError struct{}

// Error returns a textual representation of this EmptyPartitionError
func (e EmptyPartitionError) Error() string {
	return "No columns to parse from partition"
}

// ParsePanicError occurs when a Parser panics while parsing a RawPartition
type ParsePanicError struct {
	Value interface{}
	Trace string
}

// Error returns a textual representation of this ParsePanicError
func (e *ParsePanicError) Error() string {
	return fmt.Sprintf("Parse Panic: %v\n%s", e.Value, e.Trace)
}

// Unwrap returns the panic value, if it was an error
func (e *ParsePanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// FieldParseError occurs when a single value cannot be coerced into its column's type
type FieldParseError struct {
	Row    int
	Column string
	Type   string
	Value  string
	Err    error
}

// Error returns a textual representation of this FieldParseError
func (e *FieldParseError) Error() string {
	return fmt.Sprintf("Row %d: column %s could not be parsed as %s. Was: %#v", e.Row, e.Column, e.Type, e.Value)
}

// Unwrap returns the underlying cause of this FieldParseError
func (e *FieldParseError) Unwrap() error {
	return e.Err
}

// NoMorePartitionsError occurs when there are no more partitions in a PartitionIterator
type NoMorePartitionsError struct{}

// Error returns a textual representation of this NoMorePartitionsError
func (e NoMorePartitionsError) Error() string {
	return "No more partitions"
}

// CorruptRecordError occurs when a quarantined payload does not match the checksum recorded alongside it
type CorruptRecordError struct {
	ID       string
	Expected uint64
	Actual   uint64
}

// Error returns a textual representation of this CorruptRecordError
func (e *CorruptRecordError) Error() string {
	return fmt.Sprintf("Quarantined record %s is corrupt: checksum %016x, expected %016x", e.ID, e.Actual, e.Expected)
}

// NotAFailureError occurs when a successfully parsed Result is handed to the quarantine
type NotAFailureError struct{ ID string }

// Error returns a textual representation of this NotAFailureError
func (e NotAFailureError) Error() string {
	return fmt.Sprintf("Partition %s was parsed successfully and cannot be quarantined", e.ID)
}
