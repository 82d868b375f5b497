package classify

import (
	"context"
	"sync"
	"time"

	"github.com/go-sif/triage"
	"github.com/go-sif/triage/internal/stats"
	"golang.org/x/sync/semaphore"
)

// A Dataset is a collection of RawPartitions and the Parser used to classify them.
// Until it is persisted, every access classifies partitions on demand; since
// classification is pure, repeated evaluation always produces equivalent Results.
type Dataset struct {
	parser     triage.Parser
	partitions []triage.RawPartition
	opts       *Options

	lock      sync.RWMutex
	persisted []triage.Result
	stats     *stats.RunStatistics
}

// NewDataset creates a Dataset from an explicit list of RawPartitions
func NewDataset(parser triage.Parser, opts *Options, partitions ...triage.RawPartition) *Dataset {
	if opts == nil {
		opts = &Options{}
	} else {
		opts = CloneOptions(opts)
	}
	ensureDefaultOptionsValues(opts)
	return &Dataset{
		parser:     parser,
		partitions: partitions,
		opts:       opts,
	}
}

// Load drains every PartitionLoader of a DataSource to create a Dataset. Errors reading
// from the DataSource are returned; they are not parse failures.
func Load(ctx context.Context, source triage.DataSource, parser triage.Parser, opts *Options) (*Dataset, error) {
	ds := NewDataset(parser, opts)
	pm, err := source.Analyze()
	if err != nil {
		return nil, err
	}
	for pm.HasNext() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		loader := pm.Next()
		ds.opts.Logger.Debug("loading partitions", "loader", loader.ToString())
		pi, err := loader.Load()
		if err != nil {
			return nil, err
		}
		for pi.HasNextPartition() {
			part, err := pi.NextPartition()
			if err != nil {
				return nil, err
			}
			ds.partitions = append(ds.partitions, part)
		}
	}
	ds.opts.Logger.Debug("loaded dataset", "partitions", len(ds.partitions))
	return ds, nil
}

// Len returns the number of partitions in this Dataset
func (d *Dataset) Len() int {
	return len(d.partitions)
}

// Partitions returns the RawPartitions in this Dataset
func (d *Dataset) Partitions() []triage.RawPartition {
	return d.partitions
}

// At returns the Result for the i-th partition, classifying it if the Dataset has not been persisted
func (d *Dataset) At(i int) triage.Result {
	d.lock.RLock()
	persisted := d.persisted
	d.lock.RUnlock()
	if persisted != nil {
		return persisted[i]
	}
	return Classify(d.parser, d.partitions[i])
}

// IsPersisted returns true iff the Results of this Dataset have been computed and retained
func (d *Dataset) IsPersisted() bool {
	d.lock.RLock()
	defer d.lock.RUnlock()
	return d.persisted != nil
}

// Persist classifies every partition concurrently, and retains the Results so that
// Views no longer re-classify partitions. Persist is a no-op on a persisted Dataset.
// If ctx is cancelled, Persist waits for in-flight partitions and returns ctx.Err(),
// leaving the Dataset unpersisted.
func (d *Dataset) Persist(ctx context.Context) error {
	if d.IsPersisted() {
		return nil
	}
	runStats := &stats.RunStatistics{}
	runStats.Start()
	results := make([]triage.Result, len(d.partitions))
	sem := semaphore.NewWeighted(int64(d.opts.Parallelism))
	var acquireErr error
	for i := range d.partitions {
		if acquireErr = ctx.Err(); acquireErr != nil {
			break
		}
		if acquireErr = sem.Acquire(ctx, 1); acquireErr != nil {
			break
		}
		go func(i int) {
			defer sem.Release(1)
			start := time.Now()
			res := Classify(d.parser, d.partitions[i])
			rows := 0
			if res.IsSuccess() {
				rows = res.Table().NumRows()
			}
			runStats.RecordPartition(time.Since(start), d.partitions[i].Size(), rows, res.IsFailure())
			results[i] = res
		}(i)
	}
	// wait for in-flight classifications
	if err := sem.Acquire(context.Background(), int64(d.opts.Parallelism)); err != nil {
		return err
	}
	runStats.Finish()
	if acquireErr != nil {
		return acquireErr
	}

	d.lock.Lock()
	defer d.lock.Unlock()
	if d.persisted == nil {
		d.persisted = results
		d.stats = runStats
	}
	snap := runStats.Snapshot()
	d.opts.Logger.Info("persisted dataset",
		"partitions", snap.PartitionsProcessed,
		"failed", snap.PartitionsFailed,
		"rows", snap.RowsProcessed,
		"runtime", snap.Runtime)
	return nil
}

// RunStats are statistics about the Persist call which classified a Dataset
type RunStats = stats.Snapshot

// Stats returns statistics about the Persist call which classified this Dataset, if any
func (d *Dataset) Stats() (RunStats, bool) {
	d.lock.RLock()
	defer d.lock.RUnlock()
	if d.stats == nil {
		return RunStats{}, false
	}
	return d.stats.Snapshot(), true
}

// All returns a View over every Result in this Dataset
func (d *Dataset) All() *View {
	return &View{ds: d}
}

// Good returns a View over the Successes in this Dataset
func (d *Dataset) Good() *View {
	return d.All().Filter(triage.Result.IsSuccess)
}

// Bad returns a View over the Failures in this Dataset
func (d *Dataset) Bad() *View {
	return d.All().Filter(triage.Result.IsFailure)
}
