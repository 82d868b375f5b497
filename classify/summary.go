package classify

import (
	"fmt"

	"github.com/go-sif/triage"
	iutil "github.com/go-sif/triage/internal/util"
	"github.com/hashicorp/go-multierror"
)

// Summary describes the outcome of classifying a Dataset
type Summary struct {
	Total    int // number of partitions
	Good     int // number of Successes
	Bad      int // number of Failures
	GoodRows int // total rows across all parsed Tables
	BadBytes int // total size of all failed RawPartitions
}

// String returns a textual representation of a Summary
func (s Summary) String() string {
	return fmt.Sprintf("%d partitions: %d good (%d rows), %d bad (%d bytes)", s.Total, s.Good, s.GoodRows, s.Bad, s.BadBytes)
}

// Summarize classifies (or reads the persisted Results of) every partition in a Dataset
func Summarize(ds *Dataset) Summary {
	var s Summary
	it := ds.All().Iterator()
	for it.HasNext() {
		res := it.Next()
		s.Total++
		if res.IsSuccess() {
			s.Good++
			s.GoodRows += res.Table().NumRows()
		} else {
			s.Bad++
			s.BadBytes += res.Raw().Size()
		}
	}
	return s
}

// Errors aggregates the errors of every Failure in a View into a single error,
// or returns nil if the View contains no Failures
func Errors(v *View) error {
	var merr *multierror.Error
	it := v.Iterator()
	for it.HasNext() {
		if err := it.Next().Err(); err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	if merr != nil {
		merr.ErrorFormat = formatPartitionErrors
	}
	return merr.ErrorOrNil()
}

func formatPartitionErrors(errs []error) string {
	return fmt.Sprintf("%d partitions failed to parse:\n%s", len(errs), iutil.FormatErrors(errs))
}

// Partition returns the Results of a View split into Successes and Failures in a single pass
func Partition(v *View) (good []triage.Result, bad []triage.Result) {
	it := v.Iterator()
	for it.HasNext() {
		res := it.Next()
		if res.IsSuccess() {
			good = append(good, res)
		} else {
			bad = append(bad, res)
		}
	}
	return
}
