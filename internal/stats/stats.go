package stats

import (
	"sync"
	"time"
)

const statisticRollingWindows = 5

// RunStatistics contains statistics about a running classification pass.
// It is safe for concurrent use.
type RunStatistics struct {
	lock                        sync.Mutex
	started                     bool
	finished                    bool
	startTime                   time.Time
	totalRuntime                time.Duration
	partitionsProcessed         int64
	partitionsFailed            int64
	rowsProcessed               int64
	bytesProcessed              int64
	recentPartitionRuntimes     []time.Duration // for rolling average of recent partition processing times
	recentPartitionRuntimesHead int
}

// Start triggers statistics tracking, if it hasn't been started already
func (rs *RunStatistics) Start() {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	if !rs.started {
		rs.started = true
		rs.startTime = time.Now()
		rs.recentPartitionRuntimes = make([]time.Duration, 0, statisticRollingWindows)
	}
}

// Finish completes statistics tracking
func (rs *RunStatistics) Finish() {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	if rs.started && !rs.finished {
		rs.finished = true
		rs.totalRuntime = time.Since(rs.startTime)
	}
}

// RecordPartition tracks the classification of a single partition
func (rs *RunStatistics) RecordPartition(runtime time.Duration, size int, rows int, failed bool) {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	rs.partitionsProcessed++
	rs.bytesProcessed += int64(size)
	rs.rowsProcessed += int64(rows)
	if failed {
		rs.partitionsFailed++
	}
	if len(rs.recentPartitionRuntimes) < statisticRollingWindows {
		rs.recentPartitionRuntimes = append(rs.recentPartitionRuntimes, runtime)
	} else {
		rs.recentPartitionRuntimes[rs.recentPartitionRuntimesHead] = runtime
	}
	rs.recentPartitionRuntimesHead = (rs.recentPartitionRuntimesHead + 1) % statisticRollingWindows
}

// Snapshot is a point-in-time copy of RunStatistics
type Snapshot struct {
	PartitionsProcessed int64
	PartitionsFailed    int64
	RowsProcessed       int64
	BytesProcessed      int64
	Runtime             time.Duration
	RecentAverage       time.Duration // rolling average of the most recent partition runtimes
}

// Snapshot returns a copy of the current statistics
func (rs *RunStatistics) Snapshot() Snapshot {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	snap := Snapshot{
		PartitionsProcessed: rs.partitionsProcessed,
		PartitionsFailed:    rs.partitionsFailed,
		RowsProcessed:       rs.rowsProcessed,
		BytesProcessed:      rs.bytesProcessed,
		Runtime:             rs.totalRuntime,
	}
	if rs.started && !rs.finished {
		snap.Runtime = time.Since(rs.startTime)
	}
	if len(rs.recentPartitionRuntimes) > 0 {
		var total time.Duration
		for _, d := range rs.recentPartitionRuntimes {
			total += d
		}
		snap.RecentAverage = total / time.Duration(len(rs.recentPartitionRuntimes))
	}
	return snap
}
