package model

import (
	"fmt"
	"math"
	"time"
)

// Signal is a qualitative classification label.
type Signal string

const (
	SignalBullish    Signal = "Bullish"
	SignalBearish    Signal = "Bearish"
	SignalNeutral    Signal = "Neutral"
	SignalOverbought Signal = "Overbought"
	SignalOversold   Signal = "Oversold"
	SignalUndefined  Signal = "N/A"
)

// NaN is the "not available" sentinel for numeric fields.
func NaN() float64 { return math.NaN() }

// Available reports whether v carries a real value.
func Available(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// RSIReading is the RSI label together with the value it was derived from.
type RSIReading struct {
	Label Signal
	Value float64
}

func (r RSIReading) String() string {
	if !Available(r.Value) {
		return string(SignalUndefined)
	}
	return fmt.Sprintf("%s (%.1f)", r.Label, r.Value)
}

// AnalysisRecord is the per-instrument output of the technical path.
// Numeric fields hold NaN when not available.
type AnalysisRecord struct {
	Name   string
	Symbol string
	Group  string
	Period string
	Weekly bool
	Date   time.Time

	Price           float64 // latest adjusted close
	UnadjustedPrice float64

	ChangePct float64
	WeeklyPct float64

	TenkanKijun Signal
	Chikou      Signal
	Cloud       Signal
	RSI         RSIReading

	LowAdjusted   float64
	LowUnadjusted float64
	LowDate       time.Time
	PctFromLow    float64

	// Adjusted 52-week extremes. Only single-symbol lookups fill these.
	High52wAdjusted float64
	Low52wAdjusted  float64
}

// GenericRecord is the per-instrument output of the generic path used for
// global indices, commodities and crypto.
type GenericRecord struct {
	Name   string
	Symbol string
	Group  string
	Date   time.Time

	Price           float64
	UnadjustedPrice float64
	ChangePct       float64
	WeeklyPct       float64

	Cloud Signal
	RSI   RSIReading

	ShortTerm  Signal // price vs SMA20
	MediumTerm Signal // price vs SMA50
	LongTerm   Signal // price vs SMA200

	High52w     float64
	Low52w      float64
	Low52wDate  time.Time
	PctFromLow  float64
	PctFromHigh float64
}

// Skip records an instrument that produced no analysis row, and why.
type Skip struct {
	Name   string
	Symbol string
	Group  string
	Reason error
}
