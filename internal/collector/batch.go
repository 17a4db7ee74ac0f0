package collector

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"MarketDashboard/internal/cache"
	"MarketDashboard/internal/metrics"
	"MarketDashboard/internal/model"
)

// MaxBatchSize caps the symbols sent in one provider request.
const MaxBatchSize = 10

// ProgressFunc receives the number of symbols processed out of the total.
type ProgressFunc func(done, total int)

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// OrchestratorOptions configures the master fetch.
type OrchestratorOptions struct {
	BatchSize int
	Delay     time.Duration
	Period    model.Period
	CacheTTL  time.Duration
}

// Orchestrator fetches a whole symbol universe in fixed-size batches,
// strictly one after another, pausing after every batch to stay under the
// provider's rate limit. Concurrent callers take turns.
type Orchestrator struct {
	mu sync.Mutex // held for a whole FetchUniverse

	provider  Provider
	batchSize int
	period    model.Period
	pacing    backoff.BackOff
	sleep     Sleeper
	cache     *cache.TTL[*model.MasterTable]
	log       *logrus.Logger
	metrics   *metrics.Metrics
}

// NewOrchestrator creates an Orchestrator over provider.
func NewOrchestrator(provider Provider, opts OrchestratorOptions, log *logrus.Logger, m *metrics.Metrics) *Orchestrator {
	if opts.BatchSize < 1 || opts.BatchSize > MaxBatchSize {
		opts.BatchSize = MaxBatchSize
	}
	if opts.Period == "" {
		opts.Period = model.Period2Y
	}
	c := cache.New[*model.MasterTable]("universe", opts.CacheTTL)
	c.OnHit = m.CacheHit
	c.OnMiss = m.CacheMiss
	return &Orchestrator{
		provider:  provider,
		batchSize: opts.BatchSize,
		period:    opts.Period,
		pacing:    backoff.NewConstantBackOff(opts.Delay),
		sleep:     sleepContext,
		cache:     c,
		log:       log,
		metrics:   m,
	}
}

// WithSleeper replaces the pacing wait. Used by tests.
func (o *Orchestrator) WithSleeper(s Sleeper) *Orchestrator {
	o.sleep = s
	return o
}

// Clear drops the cached universe.
func (o *Orchestrator) Clear() { o.cache.Clear() }

// FetchUniverse returns adjusted series for every symbol that any batch
// delivered. Failed batches are logged and skipped; only a run in which no
// batch succeeded returns ErrUniverseFetchFailed. Successful results are
// cached. A caller that arrives while another fetch is running waits for it
// and is then served from the cache.
func (o *Orchestrator) FetchUniverse(ctx context.Context, symbols []string, progress ProgressFunc) (*model.MasterTable, error) {
	unique := dedupe(symbols)
	if len(unique) == 0 {
		return nil, fmt.Errorf("%w: no symbols", model.ErrUniverseFetchFailed)
	}

	sorted := append([]string(nil), unique...)
	sort.Strings(sorted)
	key := cache.Key("universe", o.period, strings.Join(sorted, ","))

	o.mu.Lock()
	defer o.mu.Unlock()
	return o.cache.GetOrCompute(key, func() (*model.MasterTable, error) {
		return o.fetchAll(ctx, unique, progress)
	})
}

func (o *Orchestrator) fetchAll(ctx context.Context, symbols []string, progress ProgressFunc) (*model.MasterTable, error) {
	batches := chunk(symbols, o.batchSize)
	table := &model.MasterTable{
		Series:  make(map[string]*model.PriceSeries, len(symbols)),
		Batches: len(batches),
	}
	o.pacing.Reset()

	done := 0
	for i, batch := range batches {
		if progress != nil {
			progress(done, len(symbols))
		}

		got, err := o.provider.FetchBatch(ctx, batch, o.period, true)
		if err == nil && len(got) == 0 {
			err = model.ErrDataUnavailable
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			table.FailedBatches++
			o.metrics.ObserveBatch(false)
			o.log.WithFields(logrus.Fields{
				"batch":   i + 1,
				"of":      len(batches),
				"symbols": strings.Join(batch, ","),
			}).Warnf("batch fetch failed, skipping: %v", err)
		} else {
			o.metrics.ObserveBatch(true)
			for sym, s := range got {
				if s.Len() == 0 {
					continue
				}
				if _, dup := table.Series[sym]; !dup {
					table.Series[sym] = s
				}
			}
			o.log.WithFields(logrus.Fields{
				"batch":    i + 1,
				"of":       len(batches),
				"received": len(got),
			}).Info("batch fetched")
		}

		done += len(batch)

		if d := o.pacing.NextBackOff(); d != backoff.Stop {
			if err := o.sleep(ctx, d); err != nil {
				return nil, err
			}
		}
	}

	if progress != nil {
		progress(len(symbols), len(symbols))
	}
	if table.FailedBatches == len(batches) {
		o.log.WithField("batches", len(batches)).Error("every batch failed")
		return nil, fmt.Errorf("%w: %d of %d batches failed", model.ErrUniverseFetchFailed, table.FailedBatches, len(batches))
	}
	return table, nil
}

func dedupe(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func chunk(symbols []string, size int) [][]string {
	var out [][]string
	for start := 0; start < len(symbols); start += size {
		end := start + size
		if end > len(symbols) {
			end = len(symbols)
		}
		out = append(out, symbols[start:end])
	}
	return out
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
