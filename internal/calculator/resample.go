package calculator

import (
	"time"

	"MarketDashboard/internal/model"
)

// weekEnd returns the Friday on or after t, at midnight in t's location.
// Saturday and Sunday roll forward to the next Friday.
func weekEnd(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	ahead := (int(time.Friday) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, ahead)
}

// ToWeekly aggregates daily bars into Friday-ending weeks: first open,
// max high, min low, last close and summed volume. Each week is stamped with
// its Friday, except a trailing week that has not reached Friday yet, which
// keeps the date of its last bar.
func ToWeekly(series *model.PriceSeries) *model.PriceSeries {
	if series.Len() == 0 {
		return nil
	}

	out := &model.PriceSeries{
		Symbol:    series.Symbol,
		Adjusted:  series.Adjusted,
		FetchedAt: series.FetchedAt,
	}

	var (
		cur    model.OHLCV
		curEnd time.Time
		open   bool
	)
	for _, b := range series.Bars {
		end := weekEnd(b.Time)
		if open && end.Equal(curEnd) {
			if b.High > cur.High {
				cur.High = b.High
			}
			if b.Low < cur.Low {
				cur.Low = b.Low
			}
			cur.Close = b.Close
			cur.Volume += b.Volume
			continue
		}
		if open {
			out.Bars = append(out.Bars, cur)
		}
		cur = model.OHLCV{Time: end, Open: b.Open, High: b.High, Low: b.Low, Close: b.Close, Volume: b.Volume}
		curEnd = end
		open = true
	}

	last := series.Bars[len(series.Bars)-1]
	lastDay := time.Date(last.Time.Year(), last.Time.Month(), last.Time.Day(), 0, 0, 0, 0, last.Time.Location())
	if curEnd.After(lastDay) {
		cur.Time = last.Time
	}
	out.Bars = append(out.Bars, cur)
	return out
}
