package calculator

import (
	"github.com/markcheno/go-talib"

	"MarketDashboard/internal/model"
)

// SMA returns the simple moving average of values aligned to the input.
// The first period-1 entries, or all entries when there is not enough data,
// are NaN.
func SMA(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	res := talib.Sma(values, period)
	copy(out[period-1:], res[period-1:])
	return out
}

// CalculateSMA returns the latest simple moving average of the closes.
func CalculateSMA(bars []model.OHLCV, period int) float64 {
	return model.At(SMA(extractCloses(bars), period), -1)
}

func extractCloses(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = model.NaN()
	}
	return out
}
