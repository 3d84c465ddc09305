package ports

import (
	"context"

	"specifytools/internal/domain"
)

// SpeciesFetcher reads name usages from an external species authority
type SpeciesFetcher interface {
	// Species returns the usage for a key; ok is false when the authority has none
	Species(ctx context.Context, key string) (usage domain.NameUsage, ok bool, err error)

	// Synonyms returns every synonym usage of a key, across all result pages
	Synonyms(ctx context.Context, key string) ([]domain.NameUsage, error)
}

// OccurrenceSource supplies the species of an occurrence export
type OccurrenceSource interface {
	// Species returns one (name, key) pair per distinct species key, sorted by name
	Species(ctx context.Context) ([]domain.OccurrenceSpecies, error)
}

// SpeciesListWriter writes a species list
type SpeciesListWriter interface {
	WriteRows(rows []domain.SpeciesRow) error
	Close() error
}
