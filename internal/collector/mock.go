package collector

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"time"

	"MarketDashboard/internal/model"
)

// MockProvider returns deterministic synthetic data for development and
// demos. Each symbol gets its own price level and cycle.
type MockProvider struct {
	End     time.Time                // last bar date; zero means today
	Missing map[string]bool          // symbols that return nothing
	Series  map[string][]model.OHLCV // fixed bars by symbol, bypassing generation
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) FetchBatch(ctx context.Context, symbols []string, period model.Period, adjusted bool) (map[string]*model.PriceSeries, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	end := m.End
	if end.IsZero() {
		end = time.Now()
	}

	out := make(map[string]*model.PriceSeries, len(symbols))
	for _, sym := range symbols {
		if m.Missing[sym] {
			continue
		}
		bars, ok := m.Series[sym]
		if !ok {
			bars = generateMockBars(sym, period.Start(end), end, adjusted)
		}
		if len(bars) == 0 {
			continue
		}
		out[sym] = &model.PriceSeries{Symbol: sym, Adjusted: adjusted, Bars: bars, FetchedAt: end}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("mock: no data for %d symbols", len(symbols))
	}
	return out, nil
}

// generateMockBars emits weekday bars from start to end. Unadjusted bars
// before the midpoint sit 3% above their adjusted counterparts, as after a
// dividend.
func generateMockBars(symbol string, start, end time.Time, adjusted bool) []model.OHLCV {
	h := fnv.New32a()
	_, _ = h.Write([]byte(symbol))
	seed := h.Sum32()
	base := 50 + float64(seed%5000)
	cycle := 20 + float64(seed%40)

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		days = append(days, d)
	}

	bars := make([]model.OHLCV, len(days))
	for i, d := range days {
		p := base * (1 + 0.15*math.Sin(float64(i)/cycle) + float64(i)*0.0005)
		if !adjusted && i < len(days)/2 {
			p *= 1.03
		}
		bars[i] = model.OHLCV{
			Time:   d,
			Open:   p * 0.998,
			High:   p * 1.01,
			Low:    p * 0.99,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
