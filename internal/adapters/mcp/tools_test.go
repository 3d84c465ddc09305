package mcp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"specifytools/internal/domain"
	"specifytools/internal/ports"
)

type snapshotStore struct {
	authority []domain.AuthorityRecord
	closed    bool
}

func (s *snapshotStore) LoadAuthority(_ context.Context) ([]domain.AuthorityRecord, error) {
	return s.authority, nil
}

func (s *snapshotStore) BeginTx(_ context.Context) (ports.TaxonTx, error) {
	return nil, errors.New("read-only")
}

func (s *snapshotStore) Close() error {
	s.closed = true
	return nil
}

func setup(t *testing.T) (string, *snapshotStore, StoreOpener) {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "species.csv")
	require.NoError(t, os.WriteFile(input, []byte(
		"taxonID,canonicalName,synonym,speciesKey\n"+
			"A1,Foo bar,False,A1\n"+
			"S1,Foo baz,True,A1\n"), 0644))

	store := &snapshotStore{authority: []domain.AuthorityRecord{
		{InternalID: 1, DisplayName: "Foo bar", GUID: "A1", HierarchyID: 1},
		{InternalID: 2, DisplayName: "Foo baz", GUID: "S1", HierarchyID: 1},
	}}
	open := func(_ context.Context, _ string) (ports.TaxonStore, error) { return store, nil }
	return input, store, open
}

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text, res.IsError
}

func TestMatchHandler(t *testing.T) {
	input, store, open := setup(t)

	out, isErr := call(t, matchHandler(open), map[string]any{"input": input})

	assert.False(t, isErr)
	assert.Contains(t, out, "accepted intents: 1")
	assert.Contains(t, out, "synonym intents: 1")
	assert.Contains(t, out, "2 Foo baz -> 1 Foo bar (tree 1)")
	assert.True(t, store.closed)
}

func TestMatchHandler_CountsOnly(t *testing.T) {
	input, _, open := setup(t)

	out, _ := call(t, matchHandler(open), map[string]any{"input": input, "limit": float64(0)})

	assert.NotContains(t, out, "synonyms:")
}

func TestMatchHandler_MissingInput(t *testing.T) {
	_, _, open := setup(t)

	out, isErr := call(t, matchHandler(open), map[string]any{})

	assert.True(t, isErr)
	assert.Contains(t, out, "input is required")
}

func TestMatchHandler_OpenError(t *testing.T) {
	input, _, _ := setup(t)
	failing := func(_ context.Context, _ string) (ports.TaxonStore, error) {
		return nil, errors.New("Invalid username or password")
	}

	out, isErr := call(t, matchHandler(failing), map[string]any{"input": input})

	assert.True(t, isErr)
	assert.Equal(t, "Invalid username or password", out)
}

func TestReportHandler(t *testing.T) {
	input, _, open := setup(t)
	dir := filepath.Join(t.TempDir(), "reports")

	out, isErr := call(t, reportHandler(open), map[string]any{"input": input, "report_dir": dir})

	require.False(t, isErr, out)
	assert.Contains(t, out, "Wrote 1 synonyms")
	data, err := os.ReadFile(filepath.Join(dir, "specify_accepted_report.csv"))
	require.NoError(t, err)
	assert.Equal(t, "accepted_name,accepted_guid,accepted_specify_id\nFoo bar,A1,1\n", string(data))
}
