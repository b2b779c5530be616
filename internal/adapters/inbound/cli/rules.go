package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/embercheck/embercheck/internal/adapters/outbound/corpus"
	"github.com/embercheck/embercheck/internal/adapters/outbound/tui"
	"github.com/embercheck/embercheck/internal/application"
)

func newRulesCmd() *cobra.Command {
	var (
		rulesPath  string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "rules [id]",
		Short: "List the rule corpus, or explain a single rule",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := application.NewRulesService(corpus.New())

			if len(args) == 1 {
				rule, err := service.ExplainRule(rulesPath, args[0])
				if err != nil {
					return err
				}
				if jsonOutput {
					return encodeJSON(cmd, rule)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderRule(rule))
				return nil
			}

			loaded, err := service.ListRules(rulesPath)
			if err != nil {
				return err
			}
			if jsonOutput {
				return encodeJSON(cmd, loaded.Rules())
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderRules(loaded))
			return nil
		},
	}

	cmd.Flags().StringVar(&rulesPath, "rules", "", "Path to a rule corpus file (default: built-in corpus)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func encodeJSON(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
