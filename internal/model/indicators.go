package model

// AnnotatedSeries is a price series with every indicator column aligned
// to Bars. Undefined values are NaN.
type AnnotatedSeries struct {
	Symbol  string
	Bars    []OHLCV
	Tenkan  []float64
	Kijun   []float64
	SenkouA []float64
	SenkouB []float64
	Chikou  []float64
	RSI     []float64

	// Populated only on the generic path.
	SMA20  []float64
	SMA50  []float64
	SMA200 []float64
}

// Len returns the number of bars.
func (a *AnnotatedSeries) Len() int { return len(a.Bars) }

// At returns column[i] counted from the end: At(col, -1) is the latest value.
// Out-of-range offsets return NaN.
func At(col []float64, offset int) float64 {
	i := offset
	if offset < 0 {
		i = len(col) + offset
	}
	if i < 0 || i >= len(col) {
		return NaN()
	}
	return col[i]
}
