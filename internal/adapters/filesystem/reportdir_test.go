package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportDir_Write(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	sink := NewReportDir(dir)

	loc, err := sink.Write(context.Background(), "a.csv", strings.NewReader("h1,h2\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a.csv"), loc)

	data, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "h1,h2\n", string(data))
}

func TestReportDir_OverwritesAndLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	sink := NewReportDir(dir)

	_, err := sink.Write(context.Background(), "a.csv", strings.NewReader("first\n"))
	require.NoError(t, err)
	loc, err := sink.Write(context.Background(), "a.csv", strings.NewReader("second\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestReportDir_DefaultsToWorkingDirectory(t *testing.T) {
	assert.Equal(t, ".", NewReportDir("").dir)
}
