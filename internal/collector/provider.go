package collector

import (
	"context"

	"MarketDashboard/internal/model"
)

// Provider fetches daily bar series from a market data source. One call is
// one batch request: per-symbol failures are dropped from the result, and an
// error means the batch as a whole produced nothing.
type Provider interface {
	FetchBatch(ctx context.Context, symbols []string, period model.Period, adjusted bool) (map[string]*model.PriceSeries, error)
	Name() string
}
