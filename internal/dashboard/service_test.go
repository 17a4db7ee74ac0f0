package dashboard

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketDashboard/internal/calculator"
	"MarketDashboard/internal/collector"
	"MarketDashboard/internal/logger"
	"MarketDashboard/internal/metrics"
	"MarketDashboard/internal/model"
)

type staticUniverse []model.Group

func (s staticUniverse) Build(context.Context) (*model.Universe, error) {
	return &model.Universe{Groups: s}, nil
}

// countingProvider counts batch calls on top of a MockProvider.
type countingProvider struct {
	*collector.MockProvider
	calls atomic.Int32
}

func (c *countingProvider) FetchBatch(ctx context.Context, symbols []string, period model.Period, adjusted bool) (map[string]*model.PriceSeries, error) {
	c.calls.Add(1)
	return c.MockProvider.FetchBatch(ctx, symbols, period, adjusted)
}

var testEnd = time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)

func testUniverse() staticUniverse {
	return staticUniverse{
		{Key: "indices", Title: "Indian Indices", Kind: model.KindTechnical, Instruments: []model.Instrument{
			{Name: "NIFTY 50", Symbol: "^NSEI"},
			{Name: "NIFTY BANK", Symbol: "^NSEBANK"},
			{Name: "DELISTED", Symbol: "GONE.NS"},
			{Name: "NEW LISTING", Symbol: "NEW.NS"},
		}},
		{Key: "crypto", Title: "Crypto", Kind: model.KindGeneric, Instruments: []model.Instrument{
			{Name: "Bitcoin", Symbol: "BTC-USD"},
			{Name: "NIFTY again", Symbol: "^NSEI"},
		}},
	}
}

func shortBars(n int) []model.OHLCV {
	out := make([]model.OHLCV, n)
	for i := range out {
		out[i] = model.OHLCV{Time: testEnd.AddDate(0, 0, i-n), Open: 10, High: 11, Low: 9, Close: 10}
	}
	return out
}

func newTestService(t *testing.T, u UniverseSource, p collector.Provider, opts Options) *Service {
	t.Helper()
	log := logger.Discard()
	o := collector.NewOrchestrator(p, collector.OrchestratorOptions{BatchSize: 10, CacheTTL: time.Hour}, log, nil)
	f := collector.NewFetcher(p, 5*time.Minute, 15*time.Minute, log, nil)
	return NewService(u, o, f, opts, log, metrics.New())
}

func mockProvider() *collector.MockProvider {
	return &collector.MockProvider{
		End:     testEnd,
		Missing: map[string]bool{"GONE.NS": true},
		Series:  map[string][]model.OHLCV{"NEW.NS": shortBars(20)},
	}
}

func TestRefresh_BuildsRecordsAndSkips(t *testing.T) {
	svc := newTestService(t, testUniverse(), mockProvider(), Options{Swing: model.SwingPeriods[1]})

	snap, err := svc.Refresh(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, snap.Groups, 2)
	assert.NotEmpty(t, snap.ID)

	indices := snap.Groups[0]
	require.Len(t, indices.Technical, 2)
	assert.Equal(t, "NIFTY 50", indices.Technical[0].Name)
	assert.Equal(t, "6 Months", indices.Technical[0].Period)
	assert.True(t, model.Available(indices.Technical[0].UnadjustedPrice))
	assert.True(t, model.Available(indices.Technical[0].PctFromLow))
	assert.False(t, model.Available(indices.Technical[0].High52wAdjusted), "only lookups carry 52-week extremes")

	require.Len(t, indices.Skips, 2)
	assert.True(t, errors.Is(indices.Skips[0].Reason, model.ErrDataUnavailable))
	assert.True(t, errors.Is(indices.Skips[1].Reason, model.ErrInsufficientHistory))

	crypto := snap.Groups[1]
	require.Len(t, crypto.Generic, 2, "a symbol may appear in more than one group")
	assert.Equal(t, "Bitcoin", crypto.Generic[0].Name)
	assert.True(t, model.Available(crypto.Generic[0].High52w))

	assert.Same(t, snap, svc.Last())
}

func TestRefresh_Weekly(t *testing.T) {
	svc := newTestService(t, testUniverse(), mockProvider(), Options{Swing: model.SwingPeriods[0], Weekly: true})

	snap, err := svc.Refresh(context.Background(), nil)
	require.NoError(t, err)
	rec := snap.Groups[0].Technical[0]
	assert.True(t, rec.Weekly)
	assert.Equal(t, time.Friday, rec.Date.Weekday())
}

func TestRefresh_UniverseFailure(t *testing.T) {
	p := &collector.MockProvider{End: testEnd, Missing: map[string]bool{"A": true, "B": true}}
	u := staticUniverse{{Key: "x", Instruments: []model.Instrument{{Name: "A", Symbol: "A"}, {Name: "B", Symbol: "B"}}}}
	svc := newTestService(t, u, p, Options{})

	_, err := svc.Refresh(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, IsFatal(err))
	assert.Nil(t, svc.Last())
}

func TestClearCaches_Refetches(t *testing.T) {
	p := &countingProvider{MockProvider: &collector.MockProvider{End: testEnd}}
	u := staticUniverse{{Key: "x", Kind: model.KindTechnical, Instruments: []model.Instrument{{Name: "A", Symbol: "A.NS"}}}}
	svc := newTestService(t, u, p, Options{})

	_, err := svc.Refresh(context.Background(), nil)
	require.NoError(t, err)
	first := p.calls.Load() // one master batch plus one unadjusted fetch
	assert.Equal(t, int32(2), first)

	_, err = svc.Refresh(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, first, p.calls.Load(), "second refresh served from cache")

	svc.ClearCaches()
	_, err = svc.Refresh(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2*first, p.calls.Load())
}

func TestLookup(t *testing.T) {
	svc := newTestService(t, testUniverse(), mockProvider(), Options{})

	rec, err := svc.Lookup(context.Background(), "INFY.NS")
	require.NoError(t, err)
	assert.Equal(t, "INFY.NS", rec.Name)
	assert.Equal(t, "lookup", rec.Group)

	series, ok := svc.fetcher.Fetch(context.Background(), "INFY.NS", true, model.Period2Y)
	require.True(t, ok)
	last, _ := series.Last()
	year := series.Since(last.Time.AddDate(0, 0, -364)).Bars
	assert.Equal(t, calculator.HighestHigh(year).Value, rec.High52wAdjusted)
	assert.Equal(t, calculator.LowestLow(year).Value, rec.Low52wAdjusted)
	assert.Less(t, rec.Low52wAdjusted, rec.High52wAdjusted)

	_, err = svc.Lookup(context.Background(), "GONE.NS")
	assert.ErrorIs(t, err, model.ErrDataUnavailable)

	_, err = svc.Refresh(context.Background(), nil)
	require.NoError(t, err)
	rec, err = svc.Lookup(context.Background(), "^NSEBANK")
	require.NoError(t, err)
	assert.Equal(t, "NIFTY BANK", rec.Name, "known symbols keep their display name")
}

func TestChart(t *testing.T) {
	svc := newTestService(t, testUniverse(), mockProvider(), Options{})

	a, err := svc.Chart(context.Background(), "^NSEI", false)
	require.NoError(t, err)
	assert.Equal(t, a.Len(), len(a.RSI))
	assert.Len(t, a.SenkouA, a.Len())

	w, err := svc.Chart(context.Background(), "^NSEI", true)
	require.NoError(t, err)
	assert.Less(t, w.Len(), a.Len())

	_, err = svc.Chart(context.Background(), "NEW.NS", false)
	assert.ErrorIs(t, err, model.ErrInsufficientHistory)
}

func TestSession(t *testing.T) {
	a, b := NewSession(), NewSession()
	id := RowID("sectoral", "^CNXIT")

	assert.True(t, a.Toggle(id))
	assert.True(t, a.Expanded(id))
	assert.False(t, b.Expanded(id), "sessions do not share state")

	assert.False(t, a.Toggle(id))
	a.Toggle(id)
	a.Reset()
	assert.False(t, a.Expanded(id))
}
