package filesystem

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"specifytools/internal/application"
	"specifytools/internal/domain"
	"specifytools/internal/ports"
)

// Occurrence export columns
const (
	ColumnSpecies   = "species"
	ColumnSpeciesID = "specieskey"
)

// Occurrences reads the distinct species of a tab separated occurrence export
type Occurrences struct {
	path string
}

// Ensure Occurrences implements OccurrenceSource
var _ ports.OccurrenceSource = (*Occurrences)(nil)

// NewOccurrences creates a reader for the export at path
func NewOccurrences(path string) *Occurrences {
	return &Occurrences{path: expandHome(path)}
}

// Species returns the first row seen for each species key, sorted by species name.
// Rows without a key are ignored.
func (o *Occurrences) Species(ctx context.Context) ([]domain.OccurrenceSpecies, error) {
	if err := application.ValidateReadableFile(o.path); err != nil {
		return nil, err
	}

	f, err := os.Open(o.path)
	if err != nil {
		return nil, &application.InputError{Path: o.path, Reason: "cannot open file", Err: err}
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.Comma = '\t'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, &application.InputError{Path: o.path, Reason: "file is empty"}
	}
	if err != nil {
		return nil, &application.InputError{Path: o.path, Reason: "cannot read header", Err: err}
	}
	cols, err := application.ValidateColumns(o.path, header, ColumnSpecies, ColumnSpeciesID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var species []domain.OccurrenceSpecies
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &application.InputError{Path: o.path, Reason: fmt.Sprintf("line %d", line), Err: err}
		}

		key := field(row, cols[ColumnSpeciesID])
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		species = append(species, domain.OccurrenceSpecies{
			Name: field(row, cols[ColumnSpecies]),
			Key:  key,
		})
	}

	sort.SliceStable(species, func(i, j int) bool {
		return species[i].Name < species[j].Name
	})
	return species, nil
}
