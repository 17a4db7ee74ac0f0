package strategy

import (
	"MarketDashboard/internal/model"
)

// RSI thresholds.
const (
	RSIOverbought = 70.0
	RSIOversold   = 30.0
)

// chikouLag is how far back the lagging span compares: bar[-27] against
// the latest bar.
const chikouLag = 27

// cloudPosition places price against both Senkou spans. A NaN span compares
// false both ways and lands in Neutral.
func cloudPosition(price, spanA, spanB float64) model.Signal {
	switch {
	case price > spanA && price > spanB:
		return model.SignalBullish
	case price < spanA && price < spanB:
		return model.SignalBearish
	default:
		return model.SignalNeutral
	}
}

// tenkanKijunCross is Bullish when Tenkan is strictly above Kijun. Equal
// lines count as Bearish.
func tenkanKijunCross(tenkan, kijun float64) model.Signal {
	if !model.Available(tenkan) || !model.Available(kijun) {
		return model.SignalUndefined
	}
	if tenkan > kijun {
		return model.SignalBullish
	}
	return model.SignalBearish
}

// chikouSignal compares the latest close with the close 27 bars back.
func chikouSignal(bars []model.OHLCV) model.Signal {
	n := len(bars)
	if n < chikouLag {
		return model.SignalUndefined
	}
	if bars[n-1].Close > bars[n-chikouLag].Close {
		return model.SignalBullish
	}
	return model.SignalBearish
}

// rsiReading labels an RSI value. Exactly 70 or 30 is Neutral.
func rsiReading(v float64) model.RSIReading {
	switch {
	case !model.Available(v):
		return model.RSIReading{Label: model.SignalUndefined, Value: v}
	case v > RSIOverbought:
		return model.RSIReading{Label: model.SignalOverbought, Value: v}
	case v < RSIOversold:
		return model.RSIReading{Label: model.SignalOversold, Value: v}
	default:
		return model.RSIReading{Label: model.SignalNeutral, Value: v}
	}
}

// trend is Bullish when price is above the moving average.
func trend(price, ma float64) model.Signal {
	if !model.Available(price) || !model.Available(ma) {
		return model.SignalUndefined
	}
	if price > ma {
		return model.SignalBullish
	}
	return model.SignalBearish
}
