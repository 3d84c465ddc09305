package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counters(t *testing.T) {
	r := NewRecorder()
	r.Records("synonym", 3)
	r.Intents("accepted", 2)
	r.Statement("mark_accepted", nil)
	r.Statement("mark_accepted", nil)
	r.Statement("synonymize", errors.New("boom"))

	assert.Equal(t, 3.0, testutil.ToFloat64(r.records.WithLabelValues("synonym")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.intents.WithLabelValues("accepted")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.statements.WithLabelValues("mark_accepted", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.statements.WithLabelValues("synonymize", "error")))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.Intents("synonym", 5)
	r.Finish(1500 * time.Millisecond)

	path := filepath.Join(t.TempDir(), "synonymize.prom")
	require.NoError(t, r.WriteTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `specify_synonymize_intents{kind="synonym"} 5`)
	assert.Contains(t, string(content), "specify_synonymize_run_duration_seconds 1.5")
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.Records("synonym", 1)
		r.Intents("synonym", 1)
		r.Statement("synonymize", nil)
		r.Finish(time.Second)
	})
}
