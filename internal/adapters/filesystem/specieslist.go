package filesystem

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"specifytools/internal/application"
	"specifytools/internal/domain"
	"specifytools/internal/ports"
)

// Columns the synonymizer reads from a species list
const (
	ColumnSynonym       = "synonym"
	ColumnTaxonID       = "taxonID"
	ColumnSpeciesKey    = "speciesKey"
	ColumnCanonicalName = "canonicalName"
)

// SpeciesList reads a species list CSV as a ports.RecordSource
type SpeciesList struct {
	path string
}

// Ensure SpeciesList implements RecordSource
var _ ports.RecordSource = (*SpeciesList)(nil)

// NewSpeciesList creates a reader for the CSV at path
func NewSpeciesList(path string) *SpeciesList {
	return &SpeciesList{path: expandHome(path)}
}

// Path returns the resolved file path
func (s *SpeciesList) Path() string {
	return s.path
}

// Records reads every row in file order.
// A missing column or an unparseable synonym flag fails the whole read.
func (s *SpeciesList) Records(ctx context.Context) ([]domain.SourceRecord, error) {
	if err := application.ValidateReadableFile(s.path); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, &application.InputError{Path: s.path, Reason: "cannot open file", Err: err}
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, &application.InputError{Path: s.path, Reason: "file is empty"}
	}
	if err != nil {
		return nil, &application.InputError{Path: s.path, Reason: "cannot read header", Err: err}
	}

	cols, err := application.ValidateColumns(s.path, header,
		ColumnSynonym, ColumnTaxonID, ColumnSpeciesKey, ColumnCanonicalName)
	if err != nil {
		return nil, err
	}

	var records []domain.SourceRecord
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &application.InputError{Path: s.path, Reason: fmt.Sprintf("line %d", line), Err: err}
		}

		flag := field(row, cols[ColumnSynonym])
		isSynonym, ok := domain.ParseFlag(flag)
		if !ok {
			return nil, &application.InputError{
				Path:   s.path,
				Reason: fmt.Sprintf("line %d: invalid synonym value %q", line, flag),
			}
		}

		records = append(records, domain.SourceRecord{
			ExternalID:    field(row, cols[ColumnTaxonID]),
			CanonicalName: field(row, cols[ColumnCanonicalName]),
			IsSynonym:     isSynonym,
			ParentKey:     field(row, cols[ColumnSpeciesKey]),
		})
	}

	return records, nil
}

// SpeciesListWriter writes a species list CSV with every field quoted
type SpeciesListWriter struct {
	f   *os.File
	w   *bufio.Writer
	err error
}

// Ensure SpeciesListWriter implements SpeciesListWriter
var _ ports.SpeciesListWriter = (*SpeciesListWriter)(nil)

// CreateSpeciesList creates (or truncates) path and writes the header row
func CreateSpeciesList(path string) (*SpeciesListWriter, error) {
	path = expandHome(path)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create species list: %w", err)
	}

	sw := &SpeciesListWriter{f: f, w: bufio.NewWriter(f)}
	sw.writeRecord(domain.SpeciesListHeader)
	if sw.err != nil {
		f.Close()
		return nil, sw.err
	}
	return sw, nil
}

// WriteRows appends rows in order
func (s *SpeciesListWriter) WriteRows(rows []domain.SpeciesRow) error {
	for _, row := range rows {
		s.writeRecord(row.Values())
	}
	return s.err
}

// Close flushes and closes the file
func (s *SpeciesListWriter) Close() error {
	if err := s.w.Flush(); err != nil && s.err == nil {
		s.err = err
	}
	if err := s.f.Close(); err != nil && s.err == nil {
		s.err = err
	}
	return s.err
}

// writeRecord writes one line with all fields quoted.
// encoding/csv only quotes fields that need it.
func (s *SpeciesListWriter) writeRecord(fields []string) {
	if s.err != nil {
		return
	}
	for i, v := range fields {
		if i > 0 {
			s.w.WriteByte(',')
		}
		s.w.WriteByte('"')
		s.w.WriteString(strings.ReplaceAll(v, `"`, `""`))
		s.w.WriteByte('"')
	}
	_, s.err = s.w.WriteString("\r\n")
}

func field(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// expandHome expands a leading ~ to the home directory
func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}
