package specifydb

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"

	"specifytools/internal/config"
	"specifytools/internal/domain"
	"specifytools/internal/ports"
)

// DefaultPageSize is the number of taxon rows read per query
const DefaultPageSize = 500

const (
	selectTaxonPage = `SELECT TaxonID, FullName, GUID, TaxonTreeDefID FROM taxon WHERE TaxonID > ? ORDER BY TaxonID LIMIT ?`
	markAccepted    = `UPDATE taxon SET IsAccepted = ? WHERE TaxonID = ?`
	synonymize      = `UPDATE taxon SET AcceptedID = ?, IsAccepted = ?, FullName = ? WHERE TaxonID = ?`
)

// Store implements ports.TaxonStore
type Store struct {
	db       *sql.DB
	driver   string
	pageSize int
}

// Ensure Store implements TaxonStore
var _ ports.TaxonStore = (*Store)(nil)

// Option configures a Store
type Option func(*Store)

// WithPageSize sets how many rows LoadAuthority reads per query
func WithPageSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadAuthority reads every taxon row, ordered by TaxonID, one page at a time.
// NULL names and GUIDs come back as empty strings.
func (s *Store) LoadAuthority(ctx context.Context) ([]domain.AuthorityRecord, error) {
	query := s.rebind(selectTaxonPage)

	var records []domain.AuthorityRecord
	after := int64(math.MinInt64)
	for {
		page, err := s.loadPage(ctx, query, after)
		if err != nil {
			return nil, err
		}
		records = append(records, page...)
		if len(page) < s.pageSize {
			return records, nil
		}
		after = page[len(page)-1].InternalID
	}
}

func (s *Store) loadPage(ctx context.Context, query string, after int64) ([]domain.AuthorityRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, after, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to query taxon: %w", err)
	}
	defer rows.Close()

	page := make([]domain.AuthorityRecord, 0, s.pageSize)
	for rows.Next() {
		var rec domain.AuthorityRecord
		var name, guid sql.NullString
		if err := rows.Scan(&rec.InternalID, &name, &guid, &rec.HierarchyID); err != nil {
			return nil, fmt.Errorf("failed to scan taxon: %w", err)
		}
		rec.DisplayName = name.String
		rec.GUID = guid.String
		page = append(page, rec)
	}
	return page, rows.Err()
}

// BeginTx starts a new transaction
func (s *Store) BeginTx(ctx context.Context) (ports.TaxonTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &taxonTx{tx: tx, rebind: s.rebind}, nil
}

// rebind rewrites ? placeholders to $n for postgres
func (s *Store) rebind(query string) string {
	if s.driver != config.DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
