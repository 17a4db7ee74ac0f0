package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"MarketDashboard/internal/model"
	"MarketDashboard/internal/strategy"
)

// column describes one table column over a record type R.
type column[R any] struct {
	title string
	text  func(R) string
	num   func(R) float64           // set for numeric columns; drives sorting
	cat   func(R) strategy.Category // set for coloured columns
}

// TechnicalColumns lists the technical table headers for a swing window label.
func TechnicalColumns(period string) []string {
	return titles(technicalColumns(period))
}

func technicalColumns(period string) []column[*model.AnalysisRecord] {
	type R = *model.AnalysisRecord
	return []column[R]{
		{title: "Index", text: func(r R) string { return r.Name }},
		{title: "Current Price", text: func(r R) string { return FormatPrice(r.UnadjustedPrice) }, num: func(r R) float64 { return r.UnadjustedPrice }},
		{title: "Adj Price", text: func(r R) string { return FormatPrice(r.Price) }, num: func(r R) float64 { return r.Price }},
		{title: "Change %", text: func(r R) string { return FormatPct(r.ChangePct) }, num: func(r R) float64 { return r.ChangePct }, cat: func(r R) strategy.Category { return strategy.CategorizePct(r.ChangePct) }},
		{title: "Weekly %", text: func(r R) string { return FormatPct(r.WeeklyPct) }, num: func(r R) float64 { return r.WeeklyPct }, cat: func(r R) strategy.Category { return strategy.CategorizePct(r.WeeklyPct) }},
		{title: "Tenkan/Kijun", text: func(r R) string { return formatSignal(r.TenkanKijun) }, cat: func(r R) strategy.Category { return strategy.Categorize(r.TenkanKijun) }},
		{title: "Chikou Span", text: func(r R) string { return formatSignal(r.Chikou) }, cat: func(r R) strategy.Category { return strategy.Categorize(r.Chikou) }},
		{title: "Cloud", text: func(r R) string { return formatSignal(r.Cloud) }, cat: func(r R) strategy.Category { return strategy.Categorize(r.Cloud) }},
		{title: "RSI", text: func(r R) string { return r.RSI.String() }, num: func(r R) float64 { return r.RSI.Value }, cat: func(r R) strategy.Category { return strategy.Categorize(r.RSI.Label) }},
		{title: period + " Low (Un-adj)", text: func(r R) string { return FormatPrice(r.LowUnadjusted) }, num: func(r R) float64 { return r.LowUnadjusted }},
		{title: period + " Low (Adj)", text: func(r R) string { return FormatPrice(r.LowAdjusted) }, num: func(r R) float64 { return r.LowAdjusted }},
		{title: period + " Low Date", text: func(r R) string { return FormatDate(r.LowDate) }},
		{title: "% from " + period + " Low", text: func(r R) string { return FormatPct(r.PctFromLow) }, num: func(r R) float64 { return r.PctFromLow }, cat: func(r R) strategy.Category { return strategy.CategorizePct(r.PctFromLow) }},
	}
}

// GenericColumns lists the generic table headers.
func GenericColumns() []string {
	return titles(genericColumns())
}

func genericColumns() []column[*model.GenericRecord] {
	type R = *model.GenericRecord
	return []column[R]{
		{title: "Asset", text: func(r R) string { return r.Name }},
		{title: "Price", text: func(r R) string { return FormatPrice(r.UnadjustedPrice) }, num: func(r R) float64 { return r.UnadjustedPrice }},
		{title: "Change %", text: func(r R) string { return FormatPct(r.ChangePct) }, num: func(r R) float64 { return r.ChangePct }, cat: func(r R) strategy.Category { return strategy.CategorizePct(r.ChangePct) }},
		{title: "Weekly %", text: func(r R) string { return FormatPct(r.WeeklyPct) }, num: func(r R) float64 { return r.WeeklyPct }, cat: func(r R) strategy.Category { return strategy.CategorizePct(r.WeeklyPct) }},
		{title: "Short Term", text: func(r R) string { return formatSignal(r.ShortTerm) }, cat: func(r R) strategy.Category { return strategy.Categorize(r.ShortTerm) }},
		{title: "Medium Term", text: func(r R) string { return formatSignal(r.MediumTerm) }, cat: func(r R) strategy.Category { return strategy.Categorize(r.MediumTerm) }},
		{title: "Long Term", text: func(r R) string { return formatSignal(r.LongTerm) }, cat: func(r R) strategy.Category { return strategy.Categorize(r.LongTerm) }},
		{title: "Cloud", text: func(r R) string { return formatSignal(r.Cloud) }, cat: func(r R) strategy.Category { return strategy.Categorize(r.Cloud) }},
		{title: "RSI", text: func(r R) string { return r.RSI.String() }, num: func(r R) float64 { return r.RSI.Value }, cat: func(r R) strategy.Category { return strategy.Categorize(r.RSI.Label) }},
		{title: "52W High", text: func(r R) string { return FormatPrice(r.High52w) }, num: func(r R) float64 { return r.High52w }},
		{title: "52W Low", text: func(r R) string { return FormatPrice(r.Low52w) }, num: func(r R) float64 { return r.Low52w }},
		{title: "% from 52W Low", text: func(r R) string { return FormatPct(r.PctFromLow) }, num: func(r R) float64 { return r.PctFromLow }, cat: func(r R) strategy.Category { return strategy.CategorizePct(r.PctFromLow) }},
		{title: "% from 52W High", text: func(r R) string { return FormatPct(r.PctFromHigh) }, num: func(r R) float64 { return r.PctFromHigh }, cat: func(r R) strategy.Category { return strategy.CategorizePct(r.PctFromHigh) }},
	}
}

func titles[R any](cols []column[R]) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.title
	}
	return out
}

// SortTechnical orders records in place by the named column. Numeric
// columns sort by value with unavailable values last in either direction.
func SortTechnical(records []*model.AnalysisRecord, period, by string, ascending bool) error {
	return sortBy(records, technicalColumns(period), by, ascending)
}

// SortGeneric orders generic records in place by the named column.
func SortGeneric(records []*model.GenericRecord, by string, ascending bool) error {
	return sortBy(records, genericColumns(), by, ascending)
}

func sortBy[R any](records []R, cols []column[R], by string, ascending bool) error {
	var col *column[R]
	for i := range cols {
		if strings.EqualFold(cols[i].title, by) {
			col = &cols[i]
			break
		}
	}
	if col == nil {
		return fmt.Errorf("unknown sort column %q", by)
	}

	if col.num != nil {
		sort.SliceStable(records, func(i, j int) bool {
			a, b := col.num(records[i]), col.num(records[j])
			switch {
			case math.IsNaN(a):
				return false
			case math.IsNaN(b):
				return true
			case ascending:
				return a < b
			default:
				return a > b
			}
		})
		return nil
	}
	sort.SliceStable(records, func(i, j int) bool {
		a, b := col.text(records[i]), col.text(records[j])
		if ascending {
			return a < b
		}
		return a > b
	})
	return nil
}
