package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/embercheck/embercheck/internal/adapters/outbound/corpus"
	"github.com/embercheck/embercheck/internal/application"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <corpus.yaml>",
		Short: "Validate a rule corpus file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := application.NewRulesService(corpus.New())
			total, enforced, err := service.ValidateCorpus(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid (%d rules, %d enforced)\n", args[0], total, enforced)
			return nil
		},
	}
}
