package classify

import (
	"github.com/go-sif/triage"
	"github.com/go-sif/triage/errors"
	iutil "github.com/go-sif/triage/internal/util"
)

// Classify parses a single RawPartition, producing a Success holding the parsed Table,
// or a Failure holding a *errors.PartitionParseError and the original, unmodified RawPartition.
// Classify never panics, and does not modify part.
func Classify(parser triage.Parser, part triage.RawPartition) triage.Result {
	table, err := iutil.SafeParse(parser, part.Data)
	if err != nil {
		name := "<nil>"
		if parser != nil {
			name = parser.Name()
		}
		return triage.Failure(&errors.PartitionParseError{
			Source: part.Source,
			Index:  part.Index,
			Parser: name,
			Err:    err,
		}, part)
	}
	return triage.Success(part, table)
}
