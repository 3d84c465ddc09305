package ports

import (
	"context"

	"specifytools/internal/domain"
)

// TaxonStore gives access to the taxon table of a Specify database.
// The tool assumes it is the only writer for the duration of a run.
type TaxonStore interface {
	// LoadAuthority reads every taxon row as a read-only snapshot
	LoadAuthority(ctx context.Context) ([]domain.AuthorityRecord, error)

	// BeginTx starts a transaction for a single mutating statement
	BeginTx(ctx context.Context) (TaxonTx, error)

	Close() error
}

// TaxonTx holds one mutating statement until it is committed
type TaxonTx interface {
	// MarkAccepted sets IsAccepted = true on a taxon
	MarkAccepted(ctx context.Context, taxonID int64) error

	// Synonymize points a taxon at its accepted taxon, clears IsAccepted
	// and overwrites its full name
	Synonymize(ctx context.Context, synonymID, acceptedID int64, name string) error

	Commit() error
	Rollback() error
}
