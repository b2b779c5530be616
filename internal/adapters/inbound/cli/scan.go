package cli

import (
	"fmt"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/embercheck/embercheck/internal/adapters/outbound/config"
	"github.com/embercheck/embercheck/internal/adapters/outbound/corpus"
	"github.com/embercheck/embercheck/internal/adapters/outbound/gitinfo"
	"github.com/embercheck/embercheck/internal/adapters/outbound/history"
	"github.com/embercheck/embercheck/internal/adapters/outbound/parser"
	"github.com/embercheck/embercheck/internal/adapters/outbound/sarif"
	"github.com/embercheck/embercheck/internal/adapters/outbound/scanner"
	"github.com/embercheck/embercheck/internal/adapters/outbound/tui"
	"github.com/embercheck/embercheck/internal/application"
	"github.com/embercheck/embercheck/internal/domain"
	"github.com/embercheck/embercheck/internal/observability"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func newScanCmd() *cobra.Command {
	var (
		rulesPath   string
		jsonOutput  bool
		sarifPath   string
		failOn      string
		concurrency int
		timeout     time.Duration
		include     []string
		exclude     []string
		showHistory bool
	)

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan an Ember codebase against the rule corpus",
		Long:  "Scan walks the target tree, parses each matching source file, and reports every structural rule violation. The exit code is non-zero when findings at or above the fail-on threshold exist.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			if showHistory {
				entries, err := history.New().Load(path)
				if err != nil {
					return fmt.Errorf("loading scan history: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
				return nil
			}

			// An explicit --fail-on wins; otherwise the target's
			// .embercheck.yaml fail_on applies, then the default.
			var threshold domain.Impact
			if cmd.Flags().Changed("fail-on") {
				var err error
				threshold, err = domain.ParseImpact(failOn)
				if err != nil {
					return fmt.Errorf("invalid --fail-on value: %w", err)
				}
			} else {
				cfg, err := config.New().Load(path)
				if err != nil {
					return err
				}
				threshold = cfg.EffectiveFailOn()
			}

			corpusLoader := corpus.New()
			service := application.NewScanService(
				corpusLoader,
				scanner.New(),
				parser.New(),
				config.New(),
				gitinfo.New(),
				history.New(),
				observability.GetLogger(),
			)

			report, err := service.Scan(cmd.Context(), path, application.ScanOptions{
				RulesPath:   rulesPath,
				Include:     include,
				Exclude:     exclude,
				Concurrency: concurrency,
				FileTimeout: timeout,
			})
			if err != nil {
				return err
			}

			if sarifPath != "" {
				loaded, err := corpusLoader.Load(rulesPath)
				if err != nil {
					return err
				}
				f, err := os.Create(sarifPath)
				if err != nil {
					return fmt.Errorf("creating sarif output: %w", err)
				}
				defer f.Close()
				if err := sarif.Write(f, report, loaded, version); err != nil {
					return err
				}
			}

			if jsonOutput {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(report); err != nil {
					return fmt.Errorf("encoding report: %w", err)
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			}

			if report.HasAtOrAbove(threshold) {
				return fmt.Errorf("findings at or above %s impact", threshold)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&rulesPath, "rules", "", "Path to a rule corpus file (default: built-in corpus)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")
	cmd.Flags().StringVar(&sarifPath, "sarif", "", "Also write a SARIF 2.1.0 report to this file")
	cmd.Flags().StringVar(&failOn, "fail-on", string(domain.ImpactCritical), "Fail when findings at or above this impact exist (medium, high, critical)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Number of files analyzed in parallel (default: CPU count)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Per-file parse budget (default 5s)")
	cmd.Flags().StringSliceVar(&include, "include", nil, "Include globs (default: **/*.js, **/*.ts)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Exclude globs")
	cmd.Flags().BoolVar(&showHistory, "history", false, "Show prior scan results for this target")

	return cmd
}
