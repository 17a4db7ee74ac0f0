package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/stretchr/testify/mock"

	"MarketDashboard/internal/model"
)

// MockBatchProvider is a mock type for Provider.
type MockBatchProvider struct {
	mock.Mock
}

func (m *MockBatchProvider) Name() string { return "mock-batch" }

func (m *MockBatchProvider) FetchBatch(ctx context.Context, symbols []string, period model.Period, adjusted bool) (map[string]*model.PriceSeries, error) {
	args := m.Called(ctx, symbols, period, adjusted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*model.PriceSeries), args.Error(1)
}

func symbolsN(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%02d", prefix, i)
	}
	return out
}

func seriesFor(symbols []string) map[string]*model.PriceSeries {
	out := make(map[string]*model.PriceSeries, len(symbols))
	for _, s := range symbols {
		out[s] = &model.PriceSeries{
			Symbol:   s,
			Adjusted: true,
			Bars:     []model.OHLCV{{Time: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Open: 1, High: 2, Low: 1, Close: 2}},
		}
	}
	return out
}

// recordingSleeper counts pacing waits without sleeping.
type recordingSleeper struct {
	calls []time.Duration
}

func (r *recordingSleeper) Sleep(_ context.Context, d time.Duration) error {
	r.calls = append(r.calls, d)
	return nil
}
