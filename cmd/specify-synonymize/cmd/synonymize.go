package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"specifytools/internal/adapters/filesystem"
	"specifytools/internal/adapters/s3"
	"specifytools/internal/adapters/tui"
	"specifytools/internal/application"
	"specifytools/internal/application/commands"
	"specifytools/internal/logging"
	"specifytools/internal/metrics"
	"specifytools/internal/ports"
)

var (
	inputPath   string
	dryRun      bool
	reportDir   string
	confirm     bool
	metricsFile string
)

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&inputPath, "input", "i", "", "species list CSV (columns synonym, taxonID, speciesKey, canonicalName)")
	f.BoolVarP(&dryRun, "dry-run", "d", false, "write reports instead of updating the database")
	f.StringVar(&reportDir, "report-dir", "", "report destination directory or s3://bucket/prefix (default working directory)")
	f.BoolVar(&confirm, "confirm", false, "show the pending changes and ask before updating the database")
	f.StringVar(&metricsFile, "metrics-file", "", "write run counters in Prometheus textfile format to this path")
}

func runSynonymize(cmd *cobra.Command, args []string) error {
	if err := application.ValidateRequired("inputPath", inputPath); err != nil {
		return fmt.Errorf("%w (use -i/--input)", err)
	}
	if err := application.ValidateReadableFile(inputPath); err != nil {
		return err
	}
	ctx := commandContext()
	log := logging.FromContext(ctx)

	var sink ports.ReportSink
	mode := commands.ModeApply
	if dryRun {
		mode = commands.ModeReport
		s, err := newReportSink(ctx, reportDir)
		if err != nil {
			return err
		}
		sink = s
	}

	store, db, err := openStore(ctx, configPath)
	if err != nil {
		return err
	}
	defer store.Close()

	var rec *metrics.Recorder
	if metricsFile != "" {
		rec = metrics.NewRecorder()
	}

	source := filesystem.NewSpeciesList(inputPath)
	log.Info().Str("input", source.Path()).Str("mode", mode.String()).Msg("reading species list")

	run := commands.NewSynonymizeCommand(source, store, sink, mode)
	run.Metrics = rec
	run.Progress = printer.Line

	declined := false
	if confirm && mode == commands.ModeApply {
		run.Confirm = func(stats application.RunStats) (bool, error) {
			ok, err := tui.ConfirmApply(stats, db.Database)
			declined = err == nil && !ok
			return ok, err
		}
	}

	res, err := run.Execute(ctx)
	if rec != nil {
		if werr := rec.WriteTextfile(metricsFile); werr != nil {
			log.Warn().Err(werr).Str("path", metricsFile).Msg("failed to write metrics")
		}
	}
	if declined {
		printer.Warn("Canceled; the database was not changed")
		return nil
	}
	if err != nil {
		return err
	}

	log.Info().
		Str("mode", mode.String()).
		Dur("duration", res.Stats.Duration).
		Msg("run finished")

	switch {
	case res.Report != nil:
		printer.Label("Synonym report", fmt.Sprintf("%s (%d rows)", res.Report.SynonymLocation, res.Report.SynonymRows))
		printer.Label("Accepted report", fmt.Sprintf("%s (%d rows)", res.Report.AcceptedLocation, res.Report.AcceptedRows))
	case res.Applied != nil:
		printer.Success(res.Applied.Message)
	}
	return nil
}

// newReportSink picks the S3 sink for s3:// destinations and a directory otherwise
func newReportSink(ctx context.Context, dest string) (ports.ReportSink, error) {
	if !s3.IsURL(dest) {
		return filesystem.NewReportDir(dest), nil
	}
	cfg, err := s3.ConfigFromEnv(dest)
	if err != nil {
		return nil, &application.ValidationError{Field: "reportDir", Message: err.Error()}
	}
	sink, err := s3.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return sink, nil
}
