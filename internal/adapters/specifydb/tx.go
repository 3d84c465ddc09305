package specifydb

import (
	"context"
	"database/sql"

	"specifytools/internal/ports"
)

// taxonTx implements ports.TaxonTx
type taxonTx struct {
	tx     *sql.Tx
	rebind func(string) string
}

// Ensure taxonTx implements TaxonTx
var _ ports.TaxonTx = (*taxonTx)(nil)

// MarkAccepted sets IsAccepted on a taxon
func (t *taxonTx) MarkAccepted(ctx context.Context, taxonID int64) error {
	_, err := t.tx.ExecContext(ctx, t.rebind(markAccepted), true, taxonID)
	return err
}

// Synonymize points a taxon at its accepted taxon and renames it
func (t *taxonTx) Synonymize(ctx context.Context, synonymID, acceptedID int64, name string) error {
	_, err := t.tx.ExecContext(ctx, t.rebind(synonymize), acceptedID, false, name, synonymID)
	return err
}

// Commit commits the transaction
func (t *taxonTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *taxonTx) Rollback() error {
	return t.tx.Rollback()
}
