package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"specifytools/internal/adapters/tui"
	"specifytools/internal/config"
	"specifytools/internal/logging"
)

var (
	configPath string
	logLevel   string
	logFormat  string

	runCtx  context.Context
	printer = tui.NewPrinter(os.Stdout)
)

var rootCmd = &cobra.Command{
	Use:   "specify-synonymize",
	Short: "Reconcile taxon synonymy in a Specify database",
	Long: `specify-synonymize matches a species list (taxonID, canonicalName, synonym,
speciesKey) against the taxon table of a Specify database.

Accepted names found in the table are marked accepted, and synonyms are pointed
at their accepted taxon when both sit in the same taxon tree. With --dry-run
nothing is written to the database; two CSV reports describe the changes instead.

Examples:
  specify-synonymize -i species.csv -d
  specify-synonymize -i species.csv -c specify_config.json --confirm
  specify-synonymize -i species.csv -d --report-dir s3://reports/specify
  specify-synonymize fetch -i occurrence.txt -o species.csv`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		config.LoadEnvFiles()

		cfg := logging.DefaultConfig()
		cfg.Level = firstNonEmpty(logLevel, os.Getenv("LOG_LEVEL"), cfg.Level)
		cfg.Format = firstNonEmpty(logFormat, os.Getenv("LOG_FORMAT"), cfg.Format)
		logger := logging.Configure(cfg)

		runID := uuid.NewString()
		runCtx = logging.WithRunID(logging.WithLogger(cmd.Context(), &logger), runID)
		logging.FromContext(runCtx).Debug().Str("command", cmd.Name()).Msg("starting")
		return nil
	},
	RunE: runSynonymize,
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "database config JSON (default "+config.DefaultConfigFilename+", or $SPECIFY_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default info, or $LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: auto, console, json (default auto, or $LOG_FORMAT)")
}

// commandContext returns the run context set up by the root command
func commandContext() context.Context {
	if runCtx == nil {
		return context.Background()
	}
	return runCtx
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
