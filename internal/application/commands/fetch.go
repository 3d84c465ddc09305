package commands

import (
	"context"
	"fmt"

	"specifytools/internal/application"
	"specifytools/internal/domain"
	"specifytools/internal/logging"
	"specifytools/internal/ports"
)

// FetchResult contains the result of building a species list
type FetchResult struct {
	Species int
	Rows    int
	Skipped []string
	Message string
}

// FetchSpeciesCommand builds a species list (accepted names plus their
// synonyms) for every species of an occurrence export
type FetchSpeciesCommand struct {
	occurrences ports.OccurrenceSource
	fetcher     ports.SpeciesFetcher
	writer      ports.SpeciesListWriter
}

// NewFetchSpeciesCommand creates a new FetchSpeciesCommand
func NewFetchSpeciesCommand(occurrences ports.OccurrenceSource, fetcher ports.SpeciesFetcher, writer ports.SpeciesListWriter) *FetchSpeciesCommand {
	return &FetchSpeciesCommand{
		occurrences: occurrences,
		fetcher:     fetcher,
		writer:      writer,
	}
}

// Validate checks all adapters are present
func (c *FetchSpeciesCommand) Validate() error {
	if c.occurrences == nil {
		return &application.ValidationError{Field: "occurrences", Message: "occurrence file is required"}
	}
	if c.fetcher == nil {
		return &application.ValidationError{Field: "fetcher", Message: "species fetcher is required"}
	}
	if c.writer == nil {
		return &application.ValidationError{Field: "outputPath", Message: "output path is required"}
	}
	return nil
}

// Execute fetches every species and writes it with its synonyms
func (c *FetchSpeciesCommand) Execute(ctx context.Context) (*FetchResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	log := logging.FromContext(ctx)

	species, err := c.occurrences.Species(ctx)
	if err != nil {
		return nil, err
	}

	result := &FetchResult{}
	for _, sp := range species {
		log.Info().Str("species", sp.Name).Str("key", sp.Key).Msg("fetching synonyms")

		rows, ok, err := c.fetchOne(ctx, sp.Key)
		if err != nil {
			return result, fmt.Errorf("failed to fetch %s (%s): %w", sp.Name, sp.Key, err)
		}
		if !ok {
			log.Warn().Str("species", sp.Name).Str("key", sp.Key).Msg("species key not found, skipping")
			result.Skipped = append(result.Skipped, sp.Key)
			continue
		}
		if err := c.writer.WriteRows(rows); err != nil {
			return result, fmt.Errorf("failed to write rows for %s: %w", sp.Key, err)
		}
		result.Species++
		result.Rows += len(rows)
		log.Debug().Str("key", sp.Key).Int("rows", len(rows)).Msg("fetched species")
	}

	if err := c.writer.Close(); err != nil {
		return result, fmt.Errorf("failed to finish species list: %w", err)
	}

	result.Message = fmt.Sprintf("Wrote %d rows for %d species", result.Rows, result.Species)
	return result, nil
}

// fetchOne returns the species row followed by its synonym rows
func (c *FetchSpeciesCommand) fetchOne(ctx context.Context, key string) ([]domain.SpeciesRow, bool, error) {
	root, ok, err := c.fetcher.Species(ctx, key)
	if err != nil || !ok {
		return nil, ok, err
	}

	var rows []domain.SpeciesRow
	if row, keep := root.ToSpeciesRow(); keep {
		rows = append(rows, row)
	}

	synonyms, err := c.fetcher.Synonyms(ctx, key)
	if err != nil {
		return nil, false, err
	}
	for _, u := range synonyms {
		if row, keep := u.ToSpeciesRow(); keep {
			rows = append(rows, row)
		}
	}
	return rows, true, nil
}
