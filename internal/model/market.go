package model

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries is an ordered run of bars for one symbol. Adjusted and
// unadjusted series are never mixed; Adjusted tags which one this is.
type PriceSeries struct {
	Symbol    string
	Adjusted  bool
	Bars      []OHLCV
	FetchedAt time.Time
}

// Len returns the number of bars.
func (s *PriceSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Bars)
}

// Last returns the most recent bar.
func (s *PriceSeries) Last() (OHLCV, bool) {
	if s.Len() == 0 {
		return OHLCV{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}

// Closes extracts the close column.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, s.Len())
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Highs extracts the high column.
func (s *PriceSeries) Highs() []float64 {
	out := make([]float64, s.Len())
	for i, b := range s.Bars {
		out[i] = b.High
	}
	return out
}

// Lows extracts the low column.
func (s *PriceSeries) Lows() []float64 {
	out := make([]float64, s.Len())
	for i, b := range s.Bars {
		out[i] = b.Low
	}
	return out
}

// Tail returns a copy of the series limited to its last n bars.
func (s *PriceSeries) Tail(n int) *PriceSeries {
	out := &PriceSeries{Symbol: s.Symbol, Adjusted: s.Adjusted, FetchedAt: s.FetchedAt}
	start := len(s.Bars) - n
	if start < 0 {
		start = 0
	}
	out.Bars = append([]OHLCV(nil), s.Bars[start:]...)
	return out
}

// Since returns a copy of the series holding bars at or after from.
func (s *PriceSeries) Since(from time.Time) *PriceSeries {
	out := &PriceSeries{Symbol: s.Symbol, Adjusted: s.Adjusted, FetchedAt: s.FetchedAt}
	idx := sort.Search(len(s.Bars), func(i int) bool { return !s.Bars[i].Time.Before(from) })
	out.Bars = append([]OHLCV(nil), s.Bars[idx:]...)
	return out
}

// MasterTable maps each successfully fetched symbol to its adjusted series.
// Symbols missing from every batch are simply absent.
type MasterTable struct {
	Series        map[string]*PriceSeries
	Batches       int
	FailedBatches int
}

// Slice returns the series for one symbol.
func (m *MasterTable) Slice(symbol string) (*PriceSeries, bool) {
	if m == nil {
		return nil, false
	}
	s, ok := m.Series[symbol]
	if !ok || s.Len() == 0 {
		return nil, false
	}
	return s, true
}

// Period is a provider lookback token such as "2y" or "6mo".
type Period string

const (
	Period2Y Period = "2y"
	Period1Y Period = "1y"
	Period6M Period = "6mo"
	Period3M Period = "3mo"
	Period1M Period = "1mo"
)

// Start returns the calendar start of the lookback ending at end.
func (p Period) Start(end time.Time) time.Time {
	switch p {
	case Period2Y:
		return end.AddDate(-2, 0, 0)
	case Period1Y:
		return end.AddDate(-1, 0, 0)
	case Period6M:
		return end.AddDate(0, -6, 0)
	case Period3M:
		return end.AddDate(0, -3, 0)
	case Period1M:
		return end.AddDate(0, -1, 0)
	}
	return end
}

// ParsePeriod accepts either a provider token or a duration label like
// "2 years", "1 Yr" or "6 Months".
func ParsePeriod(s string) (Period, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	switch norm {
	case "2y", "2 years", "2 yr", "2 yrs":
		return Period2Y, nil
	case "1y", "1 year", "1 yr":
		return Period1Y, nil
	case "6mo", "6 months", "6m":
		return Period6M, nil
	case "3mo", "3 months", "3m":
		return Period3M, nil
	case "1mo", "1 month", "1m":
		return Period1M, nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// SwingPeriod is a named lookback window used for the swing-low columns.
type SwingPeriod struct {
	Label  string
	Days   int
	Weeks  int
	Period Period
}

// Bars returns the trailing bar count for the given frequency.
func (p SwingPeriod) Bars(weekly bool) int {
	if weekly {
		return p.Weeks
	}
	return p.Days
}

// SwingPeriods lists the selectable windows, longest first.
var SwingPeriods = []SwingPeriod{
	{Label: "1 Yr", Days: 252, Weeks: 52, Period: Period1Y},
	{Label: "6 Months", Days: 126, Weeks: 26, Period: Period6M},
	{Label: "3 Months", Days: 63, Weeks: 13, Period: Period3M},
	{Label: "1 Month", Days: 21, Weeks: 4, Period: Period1M},
}

// LookupSwingPeriod finds a window by its label, case-insensitively.
func LookupSwingPeriod(label string) (SwingPeriod, error) {
	for _, p := range SwingPeriods {
		if strings.EqualFold(p.Label, strings.TrimSpace(label)) {
			return p, nil
		}
	}
	return SwingPeriod{}, fmt.Errorf("unknown swing period %q", label)
}
