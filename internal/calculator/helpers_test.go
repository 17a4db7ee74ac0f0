package calculator

import (
	"math"
	"testing"
	"time"

	"MarketDashboard/internal/model"
)

func assertClose(t *testing.T, label string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %.6f, want %.6f (tol=%.6f, diff=%.6f)", label, got, want, tol, math.Abs(got-want))
	}
}

func assertNaN(t *testing.T, label string, got float64) {
	t.Helper()
	if !math.IsNaN(got) {
		t.Errorf("%s: got %.6f, want NaN", label, got)
	}
}

// linearSeries builds n daily bars with high=i+1, low=i, close=i+0.5.
func linearSeries(n int) *model.PriceSeries {
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	s := &model.PriceSeries{Symbol: "TEST", Adjusted: true}
	for i := 0; i < n; i++ {
		f := float64(i)
		s.Bars = append(s.Bars, model.OHLCV{
			Time:   start.AddDate(0, 0, i),
			Open:   f + 0.25,
			High:   f + 1,
			Low:    f,
			Close:  f + 0.5,
			Volume: 100,
		})
	}
	return s
}
