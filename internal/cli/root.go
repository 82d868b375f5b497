// Package cli implements the triage command line interface
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-sif/triage/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	conf     *Config
	logLevel string
	logger   *slog.Logger
}

// NewRootCommand builds the triage command tree. Config supplies flag defaults.
func NewRootCommand(conf *Config) *cobra.Command {
	opts := &rootOptions{conf: conf}
	cmd := &cobra.Command{
		Use:           "triage",
		Short:         "Partition triage",
		Long:          `Triage splits raw input into partitions, classifies each as parsed or failed, and quarantines the failures for inspection.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.logger = logging.New(cmd.ErrOrStderr(), logging.ParseLogLevel(opts.logLevel))
			slog.SetDefault(opts.logger)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", conf.LogLevel, "log level (trace, debug, info, warn, error)")
	cmd.AddCommand(newClassifyCommand(opts))
	cmd.AddCommand(newQuarantineCommand(opts))
	cmd.AddCommand(newPodSpecCommand(opts))
	return cmd
}

// Execute loads configuration and runs the triage CLI
func Execute(ctx context.Context) {
	_ = godotenv.Load()

	conf, err := LoadConfig()
	if err != nil {
		logging.New(os.Stderr, logging.InfoLevel).Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	cmd := NewRootCommand(conf)
	if err := cmd.ExecuteContext(ctx); err != nil {
		logging.New(os.Stderr, logging.InfoLevel).Error("Command failed", "command", cmd.Name(), "error", err)
		os.Exit(1)
	}
}
