package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketDashboard/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 15, 0, 0, time.UTC)
}

func bar(t time.Time, o, h, l, c, v float64) model.OHLCV {
	return model.OHLCV{Time: t, Open: o, High: h, Low: l, Close: c, Volume: v}
}

func TestToWeekly_FridayBuckets(t *testing.T) {
	// 2024-01-01 is a Monday.
	s := &model.PriceSeries{Symbol: "X", Bars: []model.OHLCV{
		bar(day(2024, 1, 1), 10, 12, 9, 11, 100),
		bar(day(2024, 1, 2), 11, 15, 10, 14, 100),
		bar(day(2024, 1, 3), 14, 14, 7, 8, 100),
		bar(day(2024, 1, 4), 8, 9, 8, 9, 100),
		bar(day(2024, 1, 5), 9, 10, 8, 10, 100),
		bar(day(2024, 1, 8), 10, 11, 9, 10, 50),
		bar(day(2024, 1, 10), 10, 13, 10, 12, 50),
	}}

	w := ToWeekly(s)
	require.Len(t, w.Bars, 2)

	first := w.Bars[0]
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), first.Time)
	assert.Equal(t, 10.0, first.Open)
	assert.Equal(t, 15.0, first.High)
	assert.Equal(t, 7.0, first.Low)
	assert.Equal(t, 10.0, first.Close)
	assert.Equal(t, 500.0, first.Volume)

	// Partial trailing week keeps the last bar's timestamp.
	last := w.Bars[1]
	assert.Equal(t, day(2024, 1, 10), last.Time)
	assert.Equal(t, 10.0, last.Open)
	assert.Equal(t, 13.0, last.High)
	assert.Equal(t, 9.0, last.Low)
	assert.Equal(t, 12.0, last.Close)
	assert.Equal(t, 100.0, last.Volume)
}

func TestToWeekly_WeekendRollsForward(t *testing.T) {
	s := &model.PriceSeries{Bars: []model.OHLCV{
		bar(day(2024, 1, 5), 1, 2, 1, 2, 1),  // Fri
		bar(day(2024, 1, 6), 2, 3, 2, 3, 1),  // Sat
		bar(day(2024, 1, 7), 3, 4, 3, 4, 1),  // Sun
		bar(day(2024, 1, 12), 4, 5, 4, 5, 1), // Fri
	}}

	w := ToWeekly(s)
	require.Len(t, w.Bars, 2)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), w.Bars[0].Time)
	assert.Equal(t, time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC), w.Bars[1].Time, "week ending on the last bar is complete")
	assert.Equal(t, 2.0, w.Bars[1].Open)
	assert.Equal(t, 3.0, w.Bars[1].Volume)
}

func TestToWeekly_Empty(t *testing.T) {
	assert.Nil(t, ToWeekly(nil))
	assert.Nil(t, ToWeekly(&model.PriceSeries{}))
}

func TestToWeekly_Properties(t *testing.T) {
	s := linearSeries(120)
	w := ToWeekly(s)
	require.NotEmpty(t, w.Bars)

	last := s.Bars[len(s.Bars)-1].Time
	for i, b := range w.Bars {
		assert.GreaterOrEqual(t, b.High, b.Low, "bar %d", i)
		if i < len(w.Bars)-1 || b.Time != last {
			assert.Equal(t, time.Friday, b.Time.Weekday(), "bar %d", i)
		}
		if i > 0 {
			assert.True(t, b.Time.After(w.Bars[i-1].Time))
		}
	}
}
