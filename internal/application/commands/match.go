package commands

import (
	"context"
	"fmt"
	"time"

	"specifytools/internal/application"
	"specifytools/internal/domain"
	"specifytools/internal/logging"
	"specifytools/internal/metrics"
	"specifytools/internal/ports"
)

// MatchOutcome contains the intents derived from one species list and one
// authority snapshot
type MatchOutcome struct {
	Result domain.MatchResult
	Stats  application.RunStats
}

// MatchSynonymsCommand loads both data sources and runs the matcher
type MatchSynonymsCommand struct {
	source  ports.RecordSource
	store   ports.TaxonStore
	Metrics *metrics.Recorder
}

// NewMatchSynonymsCommand creates a new MatchSynonymsCommand
func NewMatchSynonymsCommand(source ports.RecordSource, store ports.TaxonStore) *MatchSynonymsCommand {
	return &MatchSynonymsCommand{
		source: source,
		store:  store,
	}
}

// Validate checks both data sources are present
func (c *MatchSynonymsCommand) Validate() error {
	if c.source == nil {
		return &application.ValidationError{Field: "source", Message: "species list is required"}
	}
	if c.store == nil {
		return &application.ValidationError{Field: "store", Message: "taxon store is required"}
	}
	return nil
}

// Execute loads the species list and the taxon snapshot, then matches them
func (c *MatchSynonymsCommand) Execute(ctx context.Context) (*MatchOutcome, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	log := logging.FromContext(ctx)
	start := time.Now()

	records, err := c.source.Records(ctx)
	if err != nil {
		return nil, err
	}
	partition := domain.PartitionRecords(records)
	log.Info().
		Int("synonyms", len(partition.Synonyms)).
		Int("accepted", len(partition.Accepted)).
		Msg("loaded species list")

	authority, err := c.store.LoadAuthority(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load taxon records: %w", err)
	}
	log.Info().Int("taxa", len(authority)).Msg("loaded taxon snapshot")

	result := domain.Match(partition, authority)
	log.Info().
		Int("links", len(result.Links)).
		Int("accepted_intents", len(result.Accepted)).
		Int("synonym_intents", len(result.Synonyms)).
		Msg("matched species list against taxon table")

	c.Metrics.Records("synonym", len(partition.Synonyms))
	c.Metrics.Records("accepted", len(partition.Accepted))
	c.Metrics.Records("authority", len(authority))
	c.Metrics.Intents("link", len(result.Links))
	c.Metrics.Intents("accepted", len(result.Accepted))
	c.Metrics.Intents("synonym", len(result.Synonyms))

	return &MatchOutcome{
		Result: result,
		Stats: application.RunStats{
			SourceRecords:    len(records),
			SynonymRecords:   len(partition.Synonyms),
			AcceptedRecords:  len(partition.Accepted),
			AuthorityRecords: len(authority),
			Links:            len(result.Links),
			AcceptedIntents:  len(result.Accepted),
			SynonymIntents:   len(result.Synonyms),
			Duration:         time.Since(start),
		},
	}, nil
}
