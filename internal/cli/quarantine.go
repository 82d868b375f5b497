package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/go-sif/triage/quarantine"
	"github.com/spf13/cobra"
)

func newQuarantineCommand(root *rootOptions) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "quarantine",
		Short: "Inspect quarantined partitions",
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "quarantine", "quarantine directory")

	openStore := func() (*quarantine.Store, error) {
		return quarantine.Open(dir, &quarantine.StoreOptions{Logger: root.logger})
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List quarantined partitions, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			records, err := store.List()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPARTITION\tSIZE\tQUARANTINED\tERROR")
			for _, rec := range records {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", rec.ID, rec.Partition().ID(), rec.Size, rec.CreatedAt.Format(time.RFC3339), firstLine(rec.Error))
			}
			return w.Flush()
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Print a quarantined partition exactly as it was read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			rec, data, err := store.Get(args[0])
			if err != nil {
				return err
			}
			root.logger.Info("Quarantined partition", "id", rec.ID, "partition", rec.Partition().ID(), "size", rec.Size, "error", rec.Error)
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>...",
		Short: "Remove quarantined partitions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			for _, id := range args {
				if err := store.Delete(id); err != nil {
					return err
				}
			}
			return nil
		},
	})
	return cmd
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx] + " ..."
	}
	return s
}
