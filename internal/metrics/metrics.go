package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the refresh pipeline.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	BatchesTotal    *prometheus.CounterVec // labels: result=ok|failed
	SymbolFetches   *prometheus.CounterVec // labels: kind=adjusted|unadjusted, result=ok|not_found
	CacheLookups    *prometheus.CounterVec // labels: cache, result=hit|miss
	SkipsTotal      *prometheus.CounterVec // labels: group
	RecordsTotal    *prometheus.CounterVec // labels: group
	RefreshDuration prometheus.Histogram
	RefreshFailures prometheus.Counter
	LastRefresh     prometheus.Gauge
}

// New registers and returns all collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		BatchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marketdash_batches_total",
			Help: "Provider batch requests by result",
		}, []string{"result"}),
		SymbolFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marketdash_symbol_fetches_total",
			Help: "Single-symbol series fetches by kind and result",
		}, []string{"kind", "result"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marketdash_cache_lookups_total",
			Help: "TTL cache lookups by cache and result",
		}, []string{"cache", "result"}),
		SkipsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marketdash_skipped_instruments_total",
			Help: "Instruments skipped during analysis",
		}, []string{"group"}),
		RecordsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marketdash_records_total",
			Help: "Analysis records produced",
		}, []string{"group"}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "marketdash_refresh_duration_seconds",
			Help:    "Wall time of a full dashboard refresh",
			Buckets: []float64{1, 5, 10, 20, 30, 60, 120, 300},
		}),
		RefreshFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "marketdash_refresh_failures_total",
			Help: "Refreshes that failed to fetch the universe",
		}),
		LastRefresh: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "marketdash_last_refresh_timestamp_seconds",
			Help: "Unix time of the last successful refresh",
		}),
	}
	m.registry.MustRegister(
		m.BatchesTotal,
		m.SymbolFetches,
		m.CacheLookups,
		m.SkipsTotal,
		m.RecordsTotal,
		m.RefreshDuration,
		m.RefreshFailures,
		m.LastRefresh,
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveBatch counts one provider batch.
func (m *Metrics) ObserveBatch(ok bool) {
	if m == nil {
		return
	}
	m.BatchesTotal.WithLabelValues(result(ok, "ok", "failed")).Inc()
}

// ObserveFetch counts one single-symbol fetch.
func (m *Metrics) ObserveFetch(adjusted, found bool) {
	if m == nil {
		return
	}
	m.SymbolFetches.WithLabelValues(result(adjusted, "adjusted", "unadjusted"), result(found, "ok", "not_found")).Inc()
}

// CacheHit and CacheMiss match the cache hook signature.
func (m *Metrics) CacheHit(name string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(name, "hit").Inc()
}

func (m *Metrics) CacheMiss(name string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(name, "miss").Inc()
}

// ObserveRefresh records the outcome of a full refresh.
func (m *Metrics) ObserveRefresh(started time.Time, err error) {
	if m == nil {
		return
	}
	m.RefreshDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		m.RefreshFailures.Inc()
		return
	}
	m.LastRefresh.SetToCurrentTime()
}

// ObserveGroup counts the records and skips produced for a group.
func (m *Metrics) ObserveGroup(group string, records, skips int) {
	if m == nil {
		return
	}
	m.RecordsTotal.WithLabelValues(group).Add(float64(records))
	m.SkipsTotal.WithLabelValues(group).Add(float64(skips))
}

// WriteTextfile dumps the registry in the node-exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

func result(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}
