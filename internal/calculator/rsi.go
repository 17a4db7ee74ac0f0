package calculator

import (
	"github.com/markcheno/go-talib"

	"MarketDashboard/internal/model"
)

// RSIPeriod is the default relative strength lookback.
const RSIPeriod = 14

// RSI computes the Wilder-smoothed relative strength index aligned to closes.
// Requires at least period+1 closes; the first period entries are NaN.
func RSI(closes []float64, period int) []float64 {
	out := nanSlice(len(closes))
	if period < 2 || len(closes) <= period {
		return out
	}
	res := talib.Rsi(closes, period)
	copy(out[period:], res[period:])
	return out
}

// CalculateRSI returns the latest RSI of the bars, or NaN when history is short.
func CalculateRSI(bars []model.OHLCV, period int) float64 {
	return model.At(RSI(extractCloses(bars), period), -1)
}
