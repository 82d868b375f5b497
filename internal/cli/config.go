package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-sif/triage/logging"
)

const (
	envLogLevel    = "TRIAGE_LOG_LEVEL"
	envParallelism = "TRIAGE_PARALLELISM"
)

// Config holds settings which may be provided by the environment (or a .env file)
// and overridden by flags
type Config struct {
	LogLevel    string
	Parallelism int
}

// LoadConfig reads Config from the environment, applying defaults
func LoadConfig() (*Config, error) {
	conf := &Config{LogLevel: logging.LogLevelToString(logging.InfoLevel)}
	if level, ok := os.LookupEnv(envLogLevel); ok && len(level) > 0 {
		conf.LogLevel = level
	}
	if p, ok := os.LookupEnv(envParallelism); ok && len(p) > 0 {
		parallelism, err := strconv.Atoi(p)
		if err != nil || parallelism < 0 {
			return nil, fmt.Errorf("%s must be a non-negative integer, was %#v", envParallelism, p)
		}
		conf.Parallelism = parallelism
	}
	return conf, nil
}
