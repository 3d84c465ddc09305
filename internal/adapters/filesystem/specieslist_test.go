package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"specifytools/internal/application"
	"specifytools/internal/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestSpeciesList_Records(t *testing.T) {
	path := writeFile(t, t.TempDir(), "species.csv",
		"\ufefftaxonID,canonicalName,synonym,speciesKey,extra\n"+
			"A1,Foo bar,False,A1,x\n"+
			"S1,Foo baz,True,A1,y\n"+
			"S2,\"Foo, qux\",true,A1,\n")

	records, err := NewSpeciesList(path).Records(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.SourceRecord{
		{ExternalID: "A1", CanonicalName: "Foo bar", IsSynonym: false, ParentKey: "A1"},
		{ExternalID: "S1", CanonicalName: "Foo baz", IsSynonym: true, ParentKey: "A1"},
		{ExternalID: "S2", CanonicalName: "Foo, qux", IsSynonym: true, ParentKey: "A1"},
	}, records)
}

func TestSpeciesList_BareQuotesInsideFields(t *testing.T) {
	path := writeFile(t, t.TempDir(), "species.csv",
		"taxonID,canonicalName,synonym,speciesKey,publishedIn\n"+
			"A1,Foo bar,False,A1,In: J. \"Bot.\" 12\n"+
			"S1,Foo \"baz\" var,True,A1,\n")

	records, err := NewSpeciesList(path).Records(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.SourceRecord{
		{ExternalID: "A1", CanonicalName: "Foo bar", IsSynonym: false, ParentKey: "A1"},
		{ExternalID: "S1", CanonicalName: `Foo "baz" var`, IsSynonym: true, ParentKey: "A1"},
	}, records)
}

func TestSpeciesList_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		reason  string
	}{
		{
			name:    "missing columns",
			content: "taxonID,canonicalName\nA1,Foo bar\n",
			reason:  "missing required columns: synonym, speciesKey",
		},
		{
			name:    "invalid flag",
			content: "taxonID,canonicalName,synonym,speciesKey\nA1,Foo bar,maybe,A1\n",
			reason:  `line 2: invalid synonym value "maybe"`,
		},
		{
			name:    "empty file",
			content: "",
			reason:  "file is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "species.csv", tt.content)

			_, err := NewSpeciesList(path).Records(context.Background())

			require.ErrorIs(t, err, application.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestSpeciesList_MissingFile(t *testing.T) {
	_, err := NewSpeciesList(filepath.Join(t.TempDir(), "nope.csv")).Records(context.Background())
	assert.ErrorIs(t, err, application.ErrInvalidInput)
}

func TestSpeciesListWriter_QuotesEveryField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "species.csv")

	w, err := CreateSpeciesList(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteRows([]domain.SpeciesRow{
		{TaxonID: "101", CanonicalName: `Foo "baz"`, Name: "baz", Source: domain.SourceGBIF, Synonym: true, SpeciesKey: "100"},
	}))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\r\n"), "\r\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], `"taxonID","species","genus"`))
	assert.Equal(t, `"101","","","","","","","","","","","","","","baz","Foo ""baz""","GBIF","True","100"`, lines[1])
}

func TestSpeciesListWriter_RoundTripsThroughReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "species.csv")

	w, err := CreateSpeciesList(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteRows([]domain.SpeciesRow{
		{TaxonID: "100", CanonicalName: "Foo bar", Synonym: false, SpeciesKey: "100"},
		{TaxonID: "101", CanonicalName: "Foo baz", Synonym: true, SpeciesKey: "100"},
	}))
	require.NoError(t, w.Close())

	records, err := NewSpeciesList(path).Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.False(t, records[0].IsSynonym)
	assert.True(t, records[1].IsSynonym)
	assert.Equal(t, "100", records[1].ParentKey)
}

func TestSpeciesList_PathExpandsHome(t *testing.T) {
	t.Setenv("HOME", "/home/curator")

	assert.Equal(t, filepath.Join("/home/curator", "lists", "species.csv"), NewSpeciesList("~/lists/species.csv").Path())
	assert.Equal(t, "data/species.csv", NewSpeciesList("data/species.csv").Path())
}
