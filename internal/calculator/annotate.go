package calculator

import (
	"MarketDashboard/internal/model"
)

// Minimum history for each analysis path.
const (
	MinIchimokuBars = 30
	MinGenericBars  = 200
)

// Annotate computes the Ichimoku lines and RSI(14) for a series.
func Annotate(series *model.PriceSeries) (*model.AnnotatedSeries, error) {
	if n := series.Len(); n < MinIchimokuBars {
		return nil, &model.InsufficientHistoryError{Path: "ichimoku", Need: MinIchimokuBars, Got: n}
	}
	return annotate(series), nil
}

// AnnotateGeneric is Annotate plus the 20/50/200 simple moving averages.
func AnnotateGeneric(series *model.PriceSeries) (*model.AnnotatedSeries, error) {
	if n := series.Len(); n < MinGenericBars {
		return nil, &model.InsufficientHistoryError{Path: "sma", Need: MinGenericBars, Got: n}
	}
	a := annotate(series)
	closes := series.Closes()
	a.SMA20 = SMA(closes, 20)
	a.SMA50 = SMA(closes, 50)
	a.SMA200 = SMA(closes, 200)
	return a, nil
}

func annotate(series *model.PriceSeries) *model.AnnotatedSeries {
	closes := series.Closes()
	ich := CalculateIchimoku(series.Highs(), series.Lows(), closes)
	return &model.AnnotatedSeries{
		Symbol:  series.Symbol,
		Bars:    series.Bars,
		Tenkan:  ich.Tenkan,
		Kijun:   ich.Kijun,
		SenkouA: ich.SenkouA,
		SenkouB: ich.SenkouB,
		Chikou:  ich.Chikou,
		RSI:     RSI(closes, RSIPeriod),
	}
}
