package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"MarketDashboard/internal/model"
)

// RSI reference lines drawn on the chart panel.
const (
	ChartRSIUpper = 70.0
	ChartRSILower = 30.0
)

type chartPoint struct {
	Time    time.Time `json:"time"`
	Open    float64   `json:"open"`
	High    float64   `json:"high"`
	Low     float64   `json:"low"`
	Close   float64   `json:"close"`
	Volume  float64   `json:"volume"`
	Tenkan  *float64  `json:"tenkan"`
	Kijun   *float64  `json:"kijun"`
	SenkouA *float64  `json:"senkou_a"`
	SenkouB *float64  `json:"senkou_b"`
	Chikou  *float64  `json:"chikou"`
	RSI     *float64  `json:"rsi"`
}

type chartDoc struct {
	Symbol    string       `json:"symbol"`
	RSILevels [2]float64   `json:"rsi_levels"`
	Points    []chartPoint `json:"points"`
}

// WriteChart encodes an annotated series as JSON for a charting frontend.
// Undefined indicator values become null.
func WriteChart(w io.Writer, a *model.AnnotatedSeries) error {
	doc := chartDoc{
		Symbol:    a.Symbol,
		RSILevels: [2]float64{ChartRSIUpper, ChartRSILower},
		Points:    make([]chartPoint, a.Len()),
	}
	for i, b := range a.Bars {
		doc.Points[i] = chartPoint{
			Time: b.Time, Open: b.Open, High: b.High, Low: b.Low, Close: b.Close, Volume: b.Volume,
			Tenkan:  value(a.Tenkan, i),
			Kijun:   value(a.Kijun, i),
			SenkouA: value(a.SenkouA, i),
			SenkouB: value(a.SenkouB, i),
			Chikou:  value(a.Chikou, i),
			RSI:     value(a.RSI, i),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode chart: %w", err)
	}
	return nil
}

func value(col []float64, i int) *float64 {
	if i >= len(col) || math.IsNaN(col[i]) || math.IsInf(col[i], 0) {
		return nil
	}
	v := col[i]
	return &v
}
