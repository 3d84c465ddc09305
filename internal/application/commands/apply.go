package commands

import (
	"context"
	"fmt"

	"specifytools/internal/application"
	"specifytools/internal/domain"
	"specifytools/internal/logging"
	"specifytools/internal/metrics"
	"specifytools/internal/ports"
)

// ApplyResult contains the number of committed statements
type ApplyResult struct {
	AcceptedApplied int
	SynonymsApplied int
	Message         string
}

// ApplySynonymsCommand writes the intents to the taxon table.
// Every statement is committed on its own; the first failure stops the run
// and leaves earlier statements committed.
type ApplySynonymsCommand struct {
	store   ports.TaxonStore
	Result  domain.MatchResult
	Metrics *metrics.Recorder

	// Progress receives operator-facing lines before each phase starts
	Progress func(msg string)
}

// NewApplySynonymsCommand creates a new ApplySynonymsCommand
func NewApplySynonymsCommand(store ports.TaxonStore, result domain.MatchResult) *ApplySynonymsCommand {
	return &ApplySynonymsCommand{
		store:  store,
		Result: result,
	}
}

// Validate checks the command has a store to write to
func (c *ApplySynonymsCommand) Validate() error {
	if c.store == nil {
		return &application.ValidationError{Field: "store", Message: "taxon store is required"}
	}
	return nil
}

// Execute marks accepted taxa first, then synonymizes
func (c *ApplySynonymsCommand) Execute(ctx context.Context) (*ApplyResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	log := logging.FromContext(ctx)
	result := &ApplyResult{}

	c.progress(fmt.Sprintf("Setting %d accepted records as accepted taxa", len(c.Result.Accepted)))
	for _, a := range c.Result.Accepted {
		err := c.inTx(ctx, application.StatementMarkAccepted, a.InternalID, func(tx ports.TaxonTx) error {
			return tx.MarkAccepted(ctx, a.InternalID)
		})
		if err != nil {
			return result, err
		}
		result.AcceptedApplied++
		log.Debug().Int64("taxon_id", a.InternalID).Str("name", a.Name).Msg("marked accepted")
	}

	c.progress(fmt.Sprintf("Synonymizing %d records", len(c.Result.Synonyms)))
	for _, s := range c.Result.Synonyms {
		err := c.inTx(ctx, application.StatementSynonymize, s.SynonymInternalID, func(tx ports.TaxonTx) error {
			return tx.Synonymize(ctx, s.SynonymInternalID, s.AcceptedInternalID, s.SynonymName)
		})
		if err != nil {
			return result, err
		}
		result.SynonymsApplied++
		log.Debug().
			Int64("taxon_id", s.SynonymInternalID).
			Int64("accepted_id", s.AcceptedInternalID).
			Str("name", s.SynonymName).
			Msg("synonymized")
	}

	result.Message = fmt.Sprintf("Marked %d taxa accepted and synonymized %d taxa",
		result.AcceptedApplied, result.SynonymsApplied)
	return result, nil
}

// inTx runs one statement in its own transaction and commits it
func (c *ApplySynonymsCommand) inTx(ctx context.Context, kind application.StatementKind, taxonID int64, fn func(ports.TaxonTx) error) (err error) {
	defer func() { c.Metrics.Statement(string(kind), err) }()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %v", application.ErrCanceled, ctxErr)
	}

	tx, err := c.store.BeginTx(ctx)
	if err != nil {
		return &application.StatementError{Kind: kind, TaxonID: taxonID, Err: err}
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logging.FromContext(ctx).Warn().Err(rbErr).Int64("taxon_id", taxonID).Msg("rollback failed")
		}
		return &application.StatementError{Kind: kind, TaxonID: taxonID, Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &application.StatementError{Kind: kind, TaxonID: taxonID, Err: err}
	}
	return nil
}

func (c *ApplySynonymsCommand) progress(msg string) {
	if c.Progress != nil {
		c.Progress(msg)
	}
}
