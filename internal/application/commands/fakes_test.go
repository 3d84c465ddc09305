package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"specifytools/internal/domain"
	"specifytools/internal/ports"
)

type fakeSource struct {
	records []domain.SourceRecord
	err     error
}

func (s *fakeSource) Records(_ context.Context) ([]domain.SourceRecord, error) {
	return s.records, s.err
}

// statement is one call seen by recordingStore
type statement struct {
	kind       string
	taxonID    int64
	acceptedID int64
	name       string
	committed  bool
	rolledBack bool
}

// recordingStore keeps every statement in execution order
type recordingStore struct {
	authority  []domain.AuthorityRecord
	statements []*statement
	failOn     func(kind string, taxonID int64) error
	beginErr   error
}

var _ ports.TaxonStore = (*recordingStore)(nil)

func (s *recordingStore) LoadAuthority(_ context.Context) ([]domain.AuthorityRecord, error) {
	return s.authority, nil
}

func (s *recordingStore) BeginTx(_ context.Context) (ports.TaxonTx, error) {
	if s.beginErr != nil {
		return nil, s.beginErr
	}
	return &recordingTx{store: s}, nil
}

func (s *recordingStore) Close() error { return nil }

func (s *recordingStore) kinds() []string {
	var out []string
	for _, st := range s.statements {
		out = append(out, st.kind)
	}
	return out
}

func (s *recordingStore) committed() []*statement {
	var out []*statement
	for _, st := range s.statements {
		if st.committed {
			out = append(out, st)
		}
	}
	return out
}

type recordingTx struct {
	store *recordingStore
	stmt  *statement
}

func (t *recordingTx) exec(st *statement) error {
	t.stmt = st
	t.store.statements = append(t.store.statements, st)
	if t.store.failOn != nil {
		return t.store.failOn(st.kind, st.taxonID)
	}
	return nil
}

func (t *recordingTx) MarkAccepted(_ context.Context, taxonID int64) error {
	return t.exec(&statement{kind: "mark_accepted", taxonID: taxonID})
}

func (t *recordingTx) Synonymize(_ context.Context, synonymID, acceptedID int64, name string) error {
	return t.exec(&statement{kind: "synonymize", taxonID: synonymID, acceptedID: acceptedID, name: name})
}

func (t *recordingTx) Commit() error {
	if t.stmt == nil {
		return errors.New("nothing to commit")
	}
	t.stmt.committed = true
	return nil
}

func (t *recordingTx) Rollback() error {
	if t.stmt != nil {
		t.stmt.rolledBack = true
	}
	return nil
}

// memSink keeps reports in memory
type memSink struct {
	files map[string][]byte
	err   error
}

func newMemSink() *memSink {
	return &memSink{files: make(map[string][]byte)}
}

func (s *memSink) Write(_ context.Context, name string, r io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	s.files[name] = buf.Bytes()
	return "mem://" + name, nil
}

type fakeFetcher struct {
	species  map[string]domain.NameUsage
	synonyms map[string][]domain.NameUsage
	fail     string
}

func (f *fakeFetcher) Species(_ context.Context, key string) (domain.NameUsage, bool, error) {
	if key == f.fail {
		return domain.NameUsage{}, false, fmt.Errorf("status 500")
	}
	u, ok := f.species[key]
	return u, ok, nil
}

func (f *fakeFetcher) Synonyms(_ context.Context, key string) ([]domain.NameUsage, error) {
	return f.synonyms[key], nil
}

type fakeOccurrences struct {
	species []domain.OccurrenceSpecies
}

func (o *fakeOccurrences) Species(_ context.Context) ([]domain.OccurrenceSpecies, error) {
	return o.species, nil
}

type memListWriter struct {
	rows   []domain.SpeciesRow
	closed bool
}

func (w *memListWriter) WriteRows(rows []domain.SpeciesRow) error {
	w.rows = append(w.rows, rows...)
	return nil
}

func (w *memListWriter) Close() error {
	w.closed = true
	return nil
}
