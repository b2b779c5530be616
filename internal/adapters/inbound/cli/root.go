package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/embercheck/embercheck/internal/observability"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	var (
		logLevel  string
		logFormat string
		logFile   string
	)

	cmd := &cobra.Command{
		Use:           "embercheck",
		Short:         "Check an Ember app against a best-practice rule corpus",
		Long:          "embercheck scans an Ember.js codebase for structural anti-patterns documented in a rule corpus and reports findings with severity, location, and the corrected form.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			observability.InitializeLogger(observability.Config{
				Level:   logLevel,
				Format:  logFormat,
				LogFile: logFile,
			})
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format (console or json)")
	cmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write JSON logs to this rotating file")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newScanCmd())
	cmd.AddCommand(newRulesCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer observability.Sync()

	return newRootCmd().ExecuteContext(ctx)
}
