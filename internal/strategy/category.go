package strategy

import (
	"strings"

	"MarketDashboard/internal/model"
)

// Category is the display bucket a cell falls into.
type Category int

const (
	CategoryNeutral Category = iota
	CategoryBullish
	CategoryBearish
	CategoryOverbought
	CategoryOversold
	CategoryUnavailable
)

func (c Category) String() string {
	switch c {
	case CategoryBullish:
		return "bullish"
	case CategoryBearish:
		return "bearish"
	case CategoryOverbought:
		return "overbought"
	case CategoryOversold:
		return "oversold"
	case CategoryUnavailable:
		return "unavailable"
	}
	return "neutral"
}

// Categorize maps a signal label to its display category.
func Categorize(s model.Signal) Category {
	switch {
	case s == model.SignalUndefined || s == "":
		return CategoryUnavailable
	case strings.HasPrefix(string(s), string(model.SignalBullish)):
		return CategoryBullish
	case strings.HasPrefix(string(s), string(model.SignalBearish)):
		return CategoryBearish
	case strings.HasPrefix(string(s), string(model.SignalOverbought)):
		return CategoryOverbought
	case strings.HasPrefix(string(s), string(model.SignalOversold)):
		return CategoryOversold
	}
	return CategoryNeutral
}

// CategorizePct colours a percentage change: up is bullish, down bearish.
func CategorizePct(v float64) Category {
	switch {
	case !model.Available(v):
		return CategoryUnavailable
	case v > 0:
		return CategoryBullish
	case v < 0:
		return CategoryBearish
	}
	return CategoryNeutral
}
