package ports

import (
	"context"

	"specifytools/internal/domain"
)

// RecordSource supplies the external species list
type RecordSource interface {
	// Records returns every row of the list in file order
	Records(ctx context.Context) ([]domain.SourceRecord, error)
}
