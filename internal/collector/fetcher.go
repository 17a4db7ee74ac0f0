package collector

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"MarketDashboard/internal/cache"
	"MarketDashboard/internal/metrics"
	"MarketDashboard/internal/model"
)

// Fetcher retrieves single-symbol series and caches them, NotFound included.
// Adjusted and unadjusted series live in separate caches with their own TTL.
type Fetcher struct {
	provider   Provider
	adjusted   *cache.TTL[*model.PriceSeries]
	unadjusted *cache.TTL[*model.PriceSeries]
	log        *logrus.Logger
	metrics    *metrics.Metrics
}

// NewFetcher creates a Fetcher over provider.
func NewFetcher(provider Provider, adjustedTTL, unadjustedTTL time.Duration, log *logrus.Logger, m *metrics.Metrics) *Fetcher {
	f := &Fetcher{
		provider:   provider,
		adjusted:   cache.New[*model.PriceSeries]("adjusted", adjustedTTL),
		unadjusted: cache.New[*model.PriceSeries]("unadjusted", unadjustedTTL),
		log:        log,
		metrics:    m,
	}
	for _, c := range []*cache.TTL[*model.PriceSeries]{f.adjusted, f.unadjusted} {
		c.OnHit = m.CacheHit
		c.OnMiss = m.CacheMiss
	}
	return f
}

// Fetch returns the series for symbol over period. The second result is
// false when the provider had nothing; errors are logged, never returned.
func (f *Fetcher) Fetch(ctx context.Context, symbol string, adjusted bool, period model.Period) (*model.PriceSeries, bool) {
	c := f.unadjusted
	if adjusted {
		c = f.adjusted
	}

	series, err := c.GetOrCompute(cache.Key("fetch", symbol, adjusted, period), func() (*model.PriceSeries, error) {
		got, err := f.provider.FetchBatch(ctx, []string{symbol}, period, adjusted)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			f.log.WithFields(logrus.Fields{
				"symbol":   symbol,
				"adjusted": adjusted,
				"period":   period,
			}).Warnf("fetch series: %v", err)
			f.metrics.ObserveFetch(adjusted, false)
			return nil, nil
		}
		s := got[symbol]
		f.metrics.ObserveFetch(adjusted, s.Len() > 0)
		if s.Len() == 0 {
			return nil, nil
		}
		return s, nil
	})
	if err != nil || series == nil {
		return nil, false
	}
	return series, true
}

// Clear drops both caches.
func (f *Fetcher) Clear() {
	f.adjusted.Clear()
	f.unadjusted.Clear()
}
