package strategy

import (
	"fmt"

	"MarketDashboard/internal/calculator"
	"MarketDashboard/internal/model"
)

// weekAgo is the bar offset used for the weekly change.
const weekAgo = 6

// Classify turns an annotated series into an analysis record. window picks
// the swing-low lookback; unadjusted, when present, supplies the current
// price and the unadjusted low for the same calendar window.
func Classify(inst model.Instrument, group string, a *model.AnnotatedSeries, window model.SwingPeriod, weekly bool, unadjusted *model.PriceSeries) (*model.AnalysisRecord, error) {
	if a == nil || a.Len() < 2 {
		got := 0
		if a != nil {
			got = a.Len()
		}
		return nil, &model.InsufficientHistoryError{Path: "ichimoku", Need: calculator.MinIchimokuBars, Got: got}
	}

	bars := a.Bars
	latest, prev := bars[len(bars)-1], bars[len(bars)-2]

	rec := &model.AnalysisRecord{
		Name:      inst.Name,
		Symbol:    inst.Symbol,
		Group:     group,
		Period:    window.Label,
		Weekly:    weekly,
		Date:      latest.Time,
		Price:     latest.Close,
		ChangePct: calculator.PercentFrom(latest.Close, prev.Close),
		WeeklyPct: weeklyChange(bars),

		Cloud:       cloudPosition(latest.Close, model.At(a.SenkouA, -1), model.At(a.SenkouB, -1)),
		TenkanKijun: tenkanKijunCross(model.At(a.Tenkan, -1), model.At(a.Kijun, -1)),
		Chikou:      chikouSignal(bars),
		RSI:         rsiReading(model.At(a.RSI, -1)),

		LowAdjusted: calculator.LowestLow(calculator.Window(bars, window.Bars(weekly))).Value,
	}

	rec.UnadjustedPrice, rec.LowUnadjusted = model.NaN(), model.NaN()
	rec.PctFromLow = model.NaN()
	rec.High52wAdjusted, rec.Low52wAdjusted = model.NaN(), model.NaN()
	if last, ok := unadjusted.Last(); ok {
		rec.UnadjustedPrice = last.Close
		low := calculator.LowestLow(unadjusted.Since(window.Period.Start(last.Time)).Bars)
		rec.LowUnadjusted = low.Value
		rec.LowDate = low.Time
		rec.PctFromLow = calculator.PercentFrom(rec.UnadjustedPrice, low.Value)
	}
	return rec, nil
}

// ClassifyGeneric builds the record for the generic path. a must come from
// AnnotateGeneric. unadjusted should cover one year; its extremes become the
// 52-week high and low.
func ClassifyGeneric(inst model.Instrument, group string, a *model.AnnotatedSeries, unadjusted *model.PriceSeries) (*model.GenericRecord, error) {
	if a == nil || a.Len() < calculator.MinGenericBars {
		got := 0
		if a != nil {
			got = a.Len()
		}
		return nil, &model.InsufficientHistoryError{Path: "sma", Need: calculator.MinGenericBars, Got: got}
	}
	if a.SMA200 == nil {
		return nil, fmt.Errorf("classify %s: moving averages: %w", inst.Symbol, model.ErrMissingField)
	}

	bars := a.Bars
	latest, prev := bars[len(bars)-1], bars[len(bars)-2]
	price := latest.Close

	rec := &model.GenericRecord{
		Name:      inst.Name,
		Symbol:    inst.Symbol,
		Group:     group,
		Date:      latest.Time,
		Price:     price,
		ChangePct: calculator.PercentFrom(latest.Close, prev.Close),
		WeeklyPct: weeklyChange(bars),

		Cloud: cloudPosition(price, model.At(a.SenkouA, -1), model.At(a.SenkouB, -1)),
		RSI:   rsiReading(model.At(a.RSI, -1)),

		ShortTerm:  trend(price, model.At(a.SMA20, -1)),
		MediumTerm: trend(price, model.At(a.SMA50, -1)),
		LongTerm:   trend(price, model.At(a.SMA200, -1)),

		UnadjustedPrice: model.NaN(),
		High52w:         model.NaN(),
		Low52w:          model.NaN(),
		PctFromLow:      model.NaN(),
		PctFromHigh:     model.NaN(),
	}

	if last, ok := unadjusted.Last(); ok {
		high := calculator.HighestHigh(unadjusted.Bars)
		low := calculator.LowestLow(unadjusted.Bars)
		rec.UnadjustedPrice = last.Close
		rec.High52w = high.Value
		rec.Low52w = low.Value
		rec.Low52wDate = low.Time
		rec.PctFromLow = calculator.PercentFrom(last.Close, low.Value)
		rec.PctFromHigh = calculator.PercentFrom(last.Close, high.Value)
	}
	return rec, nil
}

func weeklyChange(bars []model.OHLCV) float64 {
	if len(bars) < weekAgo {
		return model.NaN()
	}
	return calculator.PercentFrom(bars[len(bars)-1].Close, bars[len(bars)-weekAgo].Close)
}
