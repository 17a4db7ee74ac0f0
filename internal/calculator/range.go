package calculator

import (
	"math"
	"time"

	"MarketDashboard/internal/model"
)

// Extreme is a window high or low together with the bar it came from.
type Extreme struct {
	Value float64
	Time  time.Time
}

// Available reports whether the window produced a value.
func (e Extreme) Available() bool { return model.Available(e.Value) }

// LowestLow scans bars for the minimum Low. Empty or all-NaN input yields NaN.
func LowestLow(bars []model.OHLCV) Extreme {
	best := Extreme{Value: model.NaN()}
	for _, b := range bars {
		if math.IsNaN(b.Low) {
			continue
		}
		if !best.Available() || b.Low < best.Value {
			best = Extreme{Value: b.Low, Time: b.Time}
		}
	}
	return best
}

// HighestHigh scans bars for the maximum High. Empty or all-NaN input yields NaN.
func HighestHigh(bars []model.OHLCV) Extreme {
	best := Extreme{Value: model.NaN()}
	for _, b := range bars {
		if math.IsNaN(b.High) {
			continue
		}
		if !best.Available() || b.High > best.Value {
			best = Extreme{Value: b.High, Time: b.Time}
		}
	}
	return best
}

// Window returns the trailing n bars.
func Window(bars []model.OHLCV, n int) []model.OHLCV {
	if n <= 0 {
		return nil
	}
	if n >= len(bars) {
		return bars
	}
	return bars[len(bars)-n:]
}

// PercentFrom returns (current-ref)/ref, or NaN when either side is missing
// or ref is zero.
func PercentFrom(current, ref float64) float64 {
	if !model.Available(current) || !model.Available(ref) || ref == 0 {
		return model.NaN()
	}
	return (current - ref) / ref
}
