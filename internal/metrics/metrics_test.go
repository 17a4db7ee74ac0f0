package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()
	m.ObserveBatch(true)
	m.ObserveBatch(false)
	m.ObserveBatch(false)
	m.CacheHit("adjusted")
	m.CacheMiss("adjusted")
	m.ObserveFetch(true, false)
	m.ObserveGroup("sectoral", 10, 2)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.BatchesTotal.WithLabelValues("ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.BatchesTotal.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("adjusted", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SymbolFetches.WithLabelValues("adjusted", "not_found")))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.RecordsTotal.WithLabelValues("sectoral")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SkipsTotal.WithLabelValues("sectoral")))
}

func TestObserveRefresh(t *testing.T) {
	m := New()
	m.ObserveRefresh(time.Now(), errors.New("boom"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RefreshFailures))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.LastRefresh))

	m.ObserveRefresh(time.Now(), nil)
	assert.Greater(t, testutil.ToFloat64(m.LastRefresh), 0.0)
}

func TestNilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveBatch(true)
	m.CacheHit("x")
	m.ObserveRefresh(time.Now(), nil)
	assert.NoError(t, m.WriteTextfile("/nonexistent/metrics.prom"))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.ObserveBatch(true)
	path := filepath.Join(t.TempDir(), "marketdash.prom")

	require.NoError(t, m.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `marketdash_batches_total{result="ok"} 1`))
}
