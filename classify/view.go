package classify

import (
	"github.com/go-sif/triage"
)

// A Predicate selects Results for a View
type Predicate func(triage.Result) bool

// A View is a lazy projection over the Results of a Dataset. Views never modify their
// Dataset, and can be iterated any number of times.
type View struct {
	ds    *Dataset
	preds []Predicate
}

// Filter returns a new View which additionally requires pred to hold
func (v *View) Filter(pred Predicate) *View {
	preds := make([]Predicate, len(v.preds), len(v.preds)+1)
	copy(preds, v.preds)
	return &View{ds: v.ds, preds: append(preds, pred)}
}

func (v *View) matches(res triage.Result) bool {
	for _, pred := range v.preds {
		if !pred(res) {
			return false
		}
	}
	return true
}

// Iterator returns a fresh ResultIterator over this View. Partitions are only
// classified as the iterator advances.
func (v *View) Iterator() ResultIterator {
	return &viewIterator{view: v}
}

// ForEach calls fn for every Result in this View, stopping at the first error
func (v *View) ForEach(fn func(triage.Result) error) error {
	it := v.Iterator()
	for it.HasNext() {
		if err := fn(it.Next()); err != nil {
			return err
		}
	}
	return nil
}

// Collect materializes every Result in this View
func (v *View) Collect() []triage.Result {
	var results []triage.Result
	it := v.Iterator()
	for it.HasNext() {
		results = append(results, it.Next())
	}
	return results
}

// Count returns the number of Results in this View
func (v *View) Count() int {
	count := 0
	it := v.Iterator()
	for it.HasNext() {
		it.Next()
		count++
	}
	return count
}

// ResultIterator iterates over the Results of a View
type ResultIterator interface {
	HasNext() bool
	Next() triage.Result // returns a zero-valued Result if HasNext() is false
}

type viewIterator struct {
	view    *View
	idx     int
	pending *triage.Result
}

// HasNext returns true iff there is another Result remaining
func (vi *viewIterator) HasNext() bool {
	for vi.pending == nil && vi.idx < vi.view.ds.Len() {
		res := vi.view.ds.At(vi.idx)
		vi.idx++
		if vi.view.matches(res) {
			vi.pending = &res
		}
	}
	return vi.pending != nil
}

// Next returns the next Result
func (vi *viewIterator) Next() triage.Result {
	if !vi.HasNext() {
		return triage.Result{}
	}
	res := *vi.pending
	vi.pending = nil
	return res
}
