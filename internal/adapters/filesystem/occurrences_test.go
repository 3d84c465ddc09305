package filesystem

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"specifytools/internal/application"
	"specifytools/internal/domain"
)

func TestOccurrences_Species(t *testing.T) {
	path := writeFile(t, t.TempDir(), "occurrence.txt",
		"gbifID\tspecies\tspecieskey\n"+
			"1\tZeta alpha\t300\n"+
			"2\tAlpha beta\t100\n"+
			"3\tAlpha beta (dup)\t100\n"+
			"4\t\t\n"+
			"5\tMid \"quoted\"\t200\n")

	species, err := NewOccurrences(path).Species(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.OccurrenceSpecies{
		{Name: "Alpha beta", Key: "100"},
		{Name: `Mid "quoted"`, Key: "200"},
		{Name: "Zeta alpha", Key: "300"},
	}, species)
}

func TestOccurrences_MissingColumn(t *testing.T) {
	path := writeFile(t, t.TempDir(), "occurrence.txt", "gbifID\tspecies\n1\tFoo bar\n")

	_, err := NewOccurrences(path).Species(context.Background())

	require.ErrorIs(t, err, application.ErrInvalidInput)
	assert.Contains(t, err.Error(), "specieskey")
}
