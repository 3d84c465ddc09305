package commands

import (
	"context"
	"time"

	"specifytools/internal/application"
	"specifytools/internal/logging"
	"specifytools/internal/metrics"
	"specifytools/internal/ports"
)

// Mode selects what a synonymize run does with its intents
type Mode int

const (
	ModeReport Mode = iota
	ModeApply
)

func (m Mode) String() string {
	if m == ModeApply {
		return "apply"
	}
	return "report"
}

// SynonymizeResult contains the outcome of a full run.
// Exactly one of Report and Applied is set.
type SynonymizeResult struct {
	Stats   application.RunStats
	Report  *ReportResult
	Applied *ApplyResult
}

// SynonymizeCommand runs match, then report or apply
type SynonymizeCommand struct {
	source  ports.RecordSource
	store   ports.TaxonStore
	sink    ports.ReportSink
	Mode    Mode
	Metrics *metrics.Recorder

	// Progress receives operator-facing lines in apply mode
	Progress func(msg string)

	// Confirm is asked before any statement runs in apply mode.
	// Returning false cancels the run without touching the database.
	Confirm func(stats application.RunStats) (bool, error)
}

// NewSynonymizeCommand creates a new SynonymizeCommand.
// sink may be nil in apply mode.
func NewSynonymizeCommand(source ports.RecordSource, store ports.TaxonStore, sink ports.ReportSink, mode Mode) *SynonymizeCommand {
	return &SynonymizeCommand{
		source: source,
		store:  store,
		sink:   sink,
		Mode:   mode,
	}
}

// Validate checks the mode has the adapters it needs
func (c *SynonymizeCommand) Validate() error {
	if c.Mode == ModeReport && c.sink == nil {
		return &application.ValidationError{Field: "reportDir", Message: "report destination is required in report mode"}
	}
	return nil
}

// Execute runs the whole pass
func (c *SynonymizeCommand) Execute(ctx context.Context) (*SynonymizeResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() { c.Metrics.Finish(time.Since(start)) }()

	match := NewMatchSynonymsCommand(c.source, c.store)
	match.Metrics = c.Metrics
	outcome, err := match.Execute(ctx)
	if err != nil {
		return nil, err
	}
	res := &SynonymizeResult{Stats: outcome.Stats}

	switch c.Mode {
	case ModeApply:
		if c.Confirm != nil {
			ok, err := c.Confirm(outcome.Stats)
			if err != nil {
				return res, err
			}
			if !ok {
				return res, application.ErrCanceled
			}
		}
		apply := NewApplySynonymsCommand(c.store, outcome.Result)
		apply.Metrics = c.Metrics
		apply.Progress = c.Progress
		applied, err := apply.Execute(ctx)
		if applied != nil {
			res.Stats.AcceptedApplied = applied.AcceptedApplied
			res.Stats.SynonymsApplied = applied.SynonymsApplied
		}
		res.Applied = applied
		if err != nil {
			logging.FromContext(ctx).Error().Err(err).
				Int("accepted_applied", res.Stats.AcceptedApplied).
				Int("synonyms_applied", res.Stats.SynonymsApplied).
				Msg("apply stopped; earlier statements stay committed")
			return res, err
		}
	default:
		report, err := NewReportSynonymsCommand(c.sink, outcome.Result).Execute(ctx)
		if err != nil {
			return res, err
		}
		res.Report = report
	}

	res.Stats.Duration = time.Since(start)
	return res, nil
}
