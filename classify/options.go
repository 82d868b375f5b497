package classify

import (
	"log/slog"
	"runtime"

	"github.com/go-sif/triage/logging"
)

// Options configure how a Dataset is loaded and persisted
type Options struct {
	Parallelism int          // the maximum number of partitions classified concurrently. Defaults to runtime.NumCPU().
	Logger      *slog.Logger // defaults to slog.Default()
}

// CloneOptions makes a copy of Options
func CloneOptions(opts *Options) *Options {
	return &Options{
		Parallelism: opts.Parallelism,
		Logger:      opts.Logger,
	}
}

func ensureDefaultOptionsValues(opts *Options) {
	if opts.Parallelism <= 0 {
		opts.Parallelism = runtime.NumCPU()
	}
	opts.Logger = logging.OrDefault(opts.Logger)
}
