package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/openkraft/csvcheck/internal/adapters/outbound/locale"
	"github.com/openkraft/csvcheck/internal/adapters/outbound/scanner"
	"github.com/openkraft/csvcheck/internal/domain"
	"github.com/openkraft/csvcheck/internal/domain/validator"
)

func newValidatorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validators",
		Short: "List the available checks and the source types they apply to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set := validator.NewDefaultSet(locale.NewStatic(nil, nil), scanner.New(), domain.Options{})
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(set.Describe())
		},
	}
}
