package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveStage(t *testing.T) {
	m := New()
	m.ObserveStage("candidates", 12, 3*time.Millisecond)
	m.ObserveStage("candidates", 7, time.Millisecond)
	assert.Equal(t, 7.0, testutil.ToFloat64(m.stageItems.WithLabelValues("candidates")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.stageDuration))
}

func TestSourcesAndRuns(t *testing.T) {
	m := New()
	m.Source("fasta", "ok")
	m.Source("fasta", "ok")
	m.Source("table", "failed")
	m.Run("ok")
	assert.Equal(t, 2.0, testutil.ToFloat64(m.sources.WithLabelValues("fasta", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sources.WithLabelValues("table", "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("ok")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveStage("x", 1, time.Second)
	m.Source("fasta", "ok")
	m.Run("ok")
	assert.Nil(t, m.Registry())
	assert.NoError(t, m.WriteTextfile("/nonexistent/never-written"))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.ObserveStage("hotspots", 4, time.Millisecond)
	path := filepath.Join(t.TempDir(), "snpscan.prom")
	require.NoError(t, m.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `snpscan_pipeline_stage_items{stage="hotspots"} 4`))
}
