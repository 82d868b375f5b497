package triage

// ResultKind describes which variant a Result holds
type ResultKind int

const (
	// UnknownKind indicates an invalid, zero-valued Result
	UnknownKind ResultKind = iota
	// SuccessKind indicates that a RawPartition was parsed into a Table
	SuccessKind
	// FailureKind indicates that a RawPartition could not be parsed
	FailureKind
)

// String returns a textual representation of a ResultKind
func (k ResultKind) String() string {
	switch k {
	case SuccessKind:
		return "success"
	case FailureKind:
		return "failure"
	default:
		return "unknown"
	}
}

// A Result is the classification of a single RawPartition: either a Success holding
// the parsed Table, or a Failure holding the parse error alongside the original
// RawPartition. Results are immutable; use Success and Failure to construct them.
type Result struct {
	kind  ResultKind
	table *Table
	err   error
	raw   RawPartition
}

// Success produces a Result wrapping a successfully parsed Table
func Success(part RawPartition, table *Table) Result {
	return Result{kind: SuccessKind, table: table, raw: RawPartition{Source: part.Source, Index: part.Index}}
}

// Failure produces a Result pairing a parse error with the original, unmodified RawPartition
func Failure(err error, raw RawPartition) Result {
	return Result{kind: FailureKind, err: err, raw: raw}
}

// Kind returns the variant held by this Result
func (r Result) Kind() ResultKind {
	return r.kind
}

// IsSuccess returns true iff this Result holds a parsed Table
func (r Result) IsSuccess() bool {
	return r.kind == SuccessKind
}

// IsFailure returns true iff this Result holds a parse error
func (r Result) IsFailure() bool {
	return r.kind == FailureKind
}

// Table returns the parsed Table of a Success, or nil for a Failure
func (r Result) Table() *Table {
	return r.table
}

// Err returns the parse error of a Failure, or nil for a Success
func (r Result) Err() error {
	return r.err
}

// Raw returns the original RawPartition of a Failure. For a Success,
// the returned RawPartition carries identity only and no data.
func (r Result) Raw() RawPartition {
	return r.raw
}

// Partition returns the identity of the RawPartition this Result was produced from
func (r Result) Partition() (source string, index int) {
	return r.raw.Source, r.raw.Index
}

// ID returns the identifier of the RawPartition this Result was produced from
func (r Result) ID() string {
	return r.raw.ID()
}
