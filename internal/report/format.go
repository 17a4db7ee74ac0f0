package report

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"MarketDashboard/internal/model"
)

// NA is shown for any value that is not available.
const NA = "N/A"

// FormatPrice renders a price with thousands separators and two decimals.
func FormatPrice(v float64) string {
	if !model.Available(v) {
		return NA
	}
	return humanize.FormatFloat("#,###.##", v)
}

// FormatPct renders a fraction as a percentage with two decimals.
func FormatPct(v float64) string {
	if !model.Available(v) {
		return NA
	}
	return fmt.Sprintf("%.2f%%", v*100)
}

// FormatDate renders a bar date.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return NA
	}
	return t.Format("2006-01-02")
}

func formatSignal(s model.Signal) string {
	if s == "" {
		return NA
	}
	return string(s)
}
