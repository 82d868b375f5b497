package cli

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/go-sif/triage"
	"github.com/go-sif/triage/classify"
	"github.com/go-sif/triage/datasource/file"
	"github.com/go-sif/triage/datasource/parser/dsv"
	"github.com/go-sif/triage/datasource/parser/jsonl"
	"github.com/go-sif/triage/quarantine"
	"github.com/spf13/cobra"
)

type classifyOptions struct {
	glob              string
	lineDelimiter     string
	filesPerPartition int
	format            string
	sep               string
	comment           string
	noHeader          bool
	quarantineDir     string
	codec             string
	parallelism       int
	strict            bool
}

func newClassifyCommand(root *rootOptions) *cobra.Command {
	opts := &classifyOptions{}
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Parse every partition of a set of files and report which failed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, root, opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.glob, "glob", "", "files to read, as a glob pattern")
	flags.StringVar(&opts.lineDelimiter, "delimiter-line", "", `split each file into partitions on this delimiter (escapes such as "\n" are allowed). Empty means one partition per file.`)
	flags.IntVar(&opts.filesPerPartition, "files-per-partition", 1, "number of files read by each loader")
	flags.StringVar(&opts.format, "format", "dsv", "partition format (dsv or jsonl)")
	flags.StringVar(&opts.sep, "sep", ",", "dsv column separator")
	flags.StringVar(&opts.comment, "comment", "", "dsv comment character")
	flags.BoolVar(&opts.noHeader, "no-header", false, "dsv partitions have no header row")
	flags.StringVar(&opts.quarantineDir, "quarantine", "", "write failed partitions to this directory")
	flags.StringVar(&opts.codec, "quarantine-codec", quarantine.DefaultCodec, "compression for quarantined partitions (lz4 or zstd)")
	flags.IntVar(&opts.parallelism, "parallelism", root.conf.Parallelism, "partitions classified concurrently (0 means one per CPU)")
	flags.BoolVar(&opts.strict, "strict", false, "exit with an error if any partition failed")
	_ = cmd.MarkFlagRequired("glob")
	return cmd
}

func runClassify(cmd *cobra.Command, root *rootOptions, opts *classifyOptions) error {
	parser, err := opts.parser()
	if err != nil {
		return err
	}
	delim, err := unescape(opts.lineDelimiter)
	if err != nil {
		return fmt.Errorf("invalid --delimiter-line: %w", err)
	}
	source := file.CreateSource(&file.SourceConf{
		Glob:              opts.glob,
		LineDelimiter:     delim,
		FilesPerPartition: opts.filesPerPartition,
		Logger:            root.logger,
	})
	ctx := cmd.Context()
	ds, err := classify.Load(ctx, source, parser, &classify.Options{
		Parallelism: opts.parallelism,
		Logger:      root.logger,
	})
	if err != nil {
		return err
	}
	if err := ds.Persist(ctx); err != nil {
		return err
	}
	err = ds.Bad().ForEach(func(res triage.Result) error {
		root.logger.Warn("Partition failed to parse", "partition", res.ID(), "size", res.Raw().Size(), "error", res.Err())
		return nil
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	summary := classify.Summarize(ds)
	fmt.Fprintln(out, summary.String())
	if len(opts.quarantineDir) > 0 && summary.Bad > 0 {
		codec, err := quarantine.CodecByName(opts.codec)
		if err != nil {
			return err
		}
		store, err := quarantine.Open(opts.quarantineDir, &quarantine.StoreOptions{Logger: root.logger, Codec: codec})
		if err != nil {
			return err
		}
		records, err := store.PutAll(ds.Bad())
		fmt.Fprintf(out, "quarantined %d partitions in %s\n", len(records), store.Dir())
		if err != nil {
			return err
		}
	}
	if opts.strict && summary.Bad > 0 {
		return classify.Errors(ds.Bad())
	}
	return nil
}

func (opts *classifyOptions) parser() (triage.Parser, error) {
	switch opts.format {
	case "dsv":
		sep, err := singleRune("--sep", opts.sep)
		if err != nil {
			return nil, err
		}
		conf := &dsv.ParserConf{Delimiter: sep, NoHeader: opts.noHeader}
		if len(opts.comment) > 0 {
			if conf.Comment, err = singleRune("--comment", opts.comment); err != nil {
				return nil, err
			}
		}
		return dsv.CreateParser(conf), nil
	case "jsonl":
		return jsonl.CreateParser(&jsonl.ParserConf{}), nil
	default:
		return nil, fmt.Errorf("unknown format %#v, expected dsv or jsonl", opts.format)
	}
}

func singleRune(flag string, s string) (rune, error) {
	s, err := unescape(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", flag, err)
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%s must be a single character, was %#v", flag, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// unescape interprets Go escape sequences such as \n and \t in a flag value
func unescape(s string) (string, error) {
	if len(s) == 0 {
		return s, nil
	}
	return strconv.Unquote(`"` + s + `"`)
}
