package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketDashboard/internal/dashboard"
	"MarketDashboard/internal/model"
)

var nan = math.NaN()

func TestFormat(t *testing.T) {
	assert.Equal(t, "22,450.50", FormatPrice(22450.5))
	assert.Equal(t, NA, FormatPrice(nan))
	assert.Equal(t, "1.25%", FormatPct(0.0125))
	assert.Equal(t, "-3.00%", FormatPct(-0.03))
	assert.Equal(t, NA, FormatPct(math.Inf(1)))
	assert.Equal(t, "2024-06-28", FormatDate(time.Date(2024, 6, 28, 9, 15, 0, 0, time.UTC)))
	assert.Equal(t, NA, FormatDate(time.Time{}))
	assert.Equal(t, NA, formatSignal(""))
	assert.Equal(t, "Bullish", formatSignal(model.SignalBullish))
}

func TestTechnicalColumns(t *testing.T) {
	cols := TechnicalColumns("3 Months")
	assert.Equal(t, "Index", cols[0])
	assert.Contains(t, cols, "3 Months Low (Un-adj)")
	assert.Contains(t, cols, "% from 3 Months Low")
	assert.Len(t, GenericColumns(), 13)
}

func records(pcts ...float64) []*model.AnalysisRecord {
	out := make([]*model.AnalysisRecord, len(pcts))
	for i, p := range pcts {
		out[i] = &model.AnalysisRecord{Name: string(rune('A' + i)), PctFromLow: p}
	}
	return out
}

func names(recs []*model.AnalysisRecord) string {
	var b strings.Builder
	for _, r := range recs {
		b.WriteString(r.Name)
	}
	return b.String()
}

func TestSortTechnical_UnavailableLast(t *testing.T) {
	recs := records(0.2, nan, 0.05, 0.4)

	require.NoError(t, SortTechnical(recs, "1 Yr", "% from 1 Yr Low", true))
	assert.Equal(t, "CADB", names(recs))

	require.NoError(t, SortTechnical(recs, "1 Yr", "% FROM 1 YR LOW", false))
	assert.Equal(t, "DACB", names(recs))
}

func TestSortTechnical_Text(t *testing.T) {
	recs := []*model.AnalysisRecord{{Name: "b"}, {Name: "c"}, {Name: "a"}}
	require.NoError(t, SortTechnical(recs, "1 Yr", "Index", true))
	assert.Equal(t, "abc", names(recs))
}

func TestSort_UnknownColumn(t *testing.T) {
	assert.Error(t, SortTechnical(records(1), "1 Yr", "Volume", true))
	assert.Error(t, SortGeneric(nil, "Volume", true))
}

func technicalRecord() *model.AnalysisRecord {
	rec := &model.AnalysisRecord{
		Name: "NIFTY IT", Symbol: "^CNXIT", Group: "sectoral", Period: "1 Yr",
		Date:  time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC),
		Price: 35000, UnadjustedPrice: 35100, ChangePct: 0.01, WeeklyPct: nan,
		TenkanKijun: model.SignalBullish, Chikou: model.SignalBearish, Cloud: model.SignalNeutral,
		RSI:         model.RSIReading{Label: model.SignalOverbought, Value: 71.24},
		LowAdjusted: 30000, LowUnadjusted: nan, LowDate: time.Date(2023, 10, 26, 0, 0, 0, 0, time.UTC),
		PctFromLow: 0.1667,
	}
	rec.High52wAdjusted, rec.Low52wAdjusted = nan, nan
	return rec
}

func TestRenderTechnical(t *testing.T) {
	out := RenderTechnical("Sectoral Indices", "1 Yr", []*model.AnalysisRecord{technicalRecord()})

	assert.Contains(t, out, "Sectoral Indices")
	assert.Contains(t, out, "1 Yr Low Date")
	assert.Contains(t, out, "NIFTY IT")
	assert.Contains(t, out, "35,100.00")
	assert.Contains(t, out, "Overbought (71.2)")
	assert.Contains(t, out, "2023-10-26")
	assert.Contains(t, out, NA)
}

func TestRenderGeneric(t *testing.T) {
	rec := &model.GenericRecord{
		Name: "Bitcoin", Symbol: "BTC-USD", UnadjustedPrice: 61000, Price: 61000,
		ShortTerm: model.SignalBullish, MediumTerm: model.SignalBullish, LongTerm: model.SignalBearish,
		RSI: model.RSIReading{Label: model.SignalUndefined, Value: nan}, High52w: 73000, Low52w: 25000,
		ChangePct: nan, WeeklyPct: nan, PctFromLow: nan, PctFromHigh: nan,
	}
	out := RenderGeneric("Crypto", []*model.GenericRecord{rec})

	assert.Contains(t, out, "Bitcoin")
	assert.Contains(t, out, "Long Term")
	assert.Contains(t, out, "73,000.00")
}

func TestRenderSkips(t *testing.T) {
	assert.Empty(t, RenderSkips(nil))

	out := RenderSkips([]model.Skip{{Name: "DELISTED", Symbol: "GONE.NS", Reason: errors.New("no data")}})
	assert.Contains(t, out, "DELISTED (GONE.NS)")
	assert.Contains(t, out, "no data")
}

func TestRenderSnapshot(t *testing.T) {
	snap := &dashboard.Snapshot{
		ID:       "abc",
		Finished: time.Date(2024, 6, 28, 16, 0, 0, 0, time.UTC),
		Options:  dashboard.Options{Swing: model.SwingPeriods[0], Weekly: true},
		Table:    &model.MasterTable{Series: map[string]*model.PriceSeries{}, Batches: 3, FailedBatches: 1},
		Groups: []dashboard.GroupResult{
			{Group: model.Group{Title: "Sectoral Indices", Kind: model.KindTechnical}, Technical: []*model.AnalysisRecord{technicalRecord()}},
			{Group: model.Group{Title: "Crypto", Kind: model.KindGeneric}, Skips: []model.Skip{{Name: "Bitcoin", Symbol: "BTC-USD", Reason: model.ErrDataUnavailable}}},
		},
	}
	out := RenderSnapshot(snap, "Change %", false)

	assert.Contains(t, out, "weekly bars")
	assert.Contains(t, out, "1/3 batches failed")
	assert.Contains(t, out, "Sectoral Indices")
	assert.Contains(t, out, "Crypto")
	assert.Contains(t, out, "skipping Bitcoin")
}

func TestRenderRecord(t *testing.T) {
	out := RenderRecord(technicalRecord())
	assert.Contains(t, out, "NIFTY IT (^CNXIT) | 2024-06-28")
	assert.Contains(t, out, "Tenkan/Kijun:")
	assert.Contains(t, out, "Bullish")
	assert.NotContains(t, out, "52-Week", "table records carry no 52-week extremes")

	rec := technicalRecord()
	rec.High52wAdjusted, rec.Low52wAdjusted = 41200.5, 29950
	out = RenderRecord(rec)
	assert.Contains(t, out, "52-Week High (Adjusted):")
	assert.Contains(t, out, "41,200.50")
	assert.Contains(t, out, "29,950.00")
}

func TestWriteChart(t *testing.T) {
	a := &model.AnnotatedSeries{
		Symbol: "^NSEI",
		Bars: []model.OHLCV{
			{Time: time.Date(2024, 6, 27, 0, 0, 0, 0, time.UTC), Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 10},
			{Time: time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC), Open: 1.5, High: 2.5, Low: 1, Close: 2, Volume: 12},
		},
		Tenkan:  []float64{nan, 1.5},
		Kijun:   []float64{nan, nan},
		SenkouA: []float64{nan, nan},
		SenkouB: []float64{nan, nan},
		Chikou:  []float64{2, nan},
		RSI:     []float64{nan, 55},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteChart(&buf, a))

	var doc struct {
		Symbol    string                   `json:"symbol"`
		RSILevels []float64                `json:"rsi_levels"`
		Points    []map[string]interface{} `json:"points"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "^NSEI", doc.Symbol)
	assert.Equal(t, []float64{70, 30}, doc.RSILevels)
	require.Len(t, doc.Points, 2)

	assert.Nil(t, doc.Points[0]["tenkan"])
	assert.Equal(t, 1.5, doc.Points[1]["tenkan"])
	assert.Equal(t, 2.0, doc.Points[0]["chikou"])
	assert.Equal(t, 55.0, doc.Points[1]["rsi"])
	assert.Contains(t, doc.Points[0], "senkou_b")
}
