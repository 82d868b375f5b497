package triage

// A Parser turns the raw bytes of a single partition into a Table.
// Implementations must not retain data after Parse returns, and must be safe
// for concurrent use by multiple goroutines.
type Parser interface {
	Name() string                      // a short name for logging, e.g. "dsv"
	Parse(data []byte) (*Table, error) // parse one partition's worth of data
}
