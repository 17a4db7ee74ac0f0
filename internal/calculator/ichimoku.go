package calculator

import (
	"github.com/markcheno/go-talib"
)

// Ichimoku parameters.
const (
	TenkanPeriod = 9
	KijunPeriod  = 26
	SenkouPeriod = 52
	Displacement = 26
)

// Ichimoku holds the five cloud lines aligned to the input bars.
type Ichimoku struct {
	Tenkan  []float64
	Kijun   []float64
	SenkouA []float64
	SenkouB []float64
	Chikou  []float64
}

// Midpoint is (highest high + lowest low) / 2 over a trailing window.
func Midpoint(high, low []float64, period int) []float64 {
	out := nanSlice(len(high))
	if period <= 0 || len(high) < period || len(low) != len(high) {
		return out
	}
	res := talib.MidPrice(high, low, period)
	copy(out[period-1:], res[period-1:])
	return out
}

// CalculateIchimoku computes the standard 9/26/52 cloud with a 26 bar
// displacement. Senkou spans are shifted forward, so the value at bar i was
// derived from bar i-26; Chikou at bar i is the close 26 bars later.
func CalculateIchimoku(high, low, closes []float64) Ichimoku {
	tenkan := Midpoint(high, low, TenkanPeriod)
	kijun := Midpoint(high, low, KijunPeriod)
	senkouB := Midpoint(high, low, SenkouPeriod)

	mid := nanSlice(len(closes))
	for i := range mid {
		mid[i] = (tenkan[i] + kijun[i]) / 2
	}

	return Ichimoku{
		Tenkan:  tenkan,
		Kijun:   kijun,
		SenkouA: shift(mid, Displacement),
		SenkouB: shift(senkouB, Displacement),
		Chikou:  shift(closes, -Displacement),
	}
}

// shift moves values forward by n bars (backward when n < 0), filling with NaN.
func shift(values []float64, n int) []float64 {
	out := nanSlice(len(values))
	for i := range values {
		j := i + n
		if j >= 0 && j < len(out) {
			out[j] = values[i]
		}
	}
	return out
}
