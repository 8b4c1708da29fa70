package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/openkraft/csvcheck/internal/adapters/outbound/history"
)

func newHistoryCmd() *cobra.Command {
	var (
		path string
		last int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show summaries of past validation runs",
		Long:  "Print the runs saved with validate --save-history, newest first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			entries, err := history.New().Last(absPath, last)
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Directory holding the run history")
	cmd.Flags().IntVar(&last, "last", 10, "Number of runs to show (0 for all)")

	return cmd
}
