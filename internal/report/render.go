package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"MarketDashboard/internal/dashboard"
	"MarketDashboard/internal/model"
	"MarketDashboard/internal/strategy"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C00"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	categoryStyles = map[strategy.Category]lipgloss.Style{
		strategy.CategoryBullish:     cellStyle.Foreground(lipgloss.Color("#32CD32")),
		strategy.CategoryBearish:     cellStyle.Foreground(lipgloss.Color("#FF6347")),
		strategy.CategoryNeutral:     cellStyle.Foreground(lipgloss.Color("#FF8C00")),
		strategy.CategoryOverbought:  cellStyle.Foreground(lipgloss.Color("#FF8C00")),
		strategy.CategoryOversold:    cellStyle.Foreground(lipgloss.Color("#1E90FF")),
		strategy.CategoryUnavailable: cellStyle.Foreground(lipgloss.Color("245")),
	}
)

func renderTable[R any](cols []column[R], records []R) string {
	rows := make([][]string, len(records))
	styles := make([][]lipgloss.Style, len(records))
	for i, r := range records {
		rows[i] = make([]string, len(cols))
		styles[i] = make([]lipgloss.Style, len(cols))
		for j, c := range cols {
			rows[i][j] = c.text(r)
			styles[i][j] = cellStyle
			if c.cat != nil {
				styles[i][j] = categoryStyles[c.cat(r)]
			}
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		Headers(titles(cols)...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row < 0 || row >= len(styles) || col >= len(styles[row]) {
				return cellStyle
			}
			return styles[row][col]
		})
	return t.Render()
}

// RenderTechnical draws the technical table for one group.
func RenderTechnical(title, period string, records []*model.AnalysisRecord) string {
	return titleStyle.Render(title) + "\n" + renderTable(technicalColumns(period), records)
}

// RenderGeneric draws the generic table for one group.
func RenderGeneric(title string, records []*model.GenericRecord) string {
	return titleStyle.Render(title) + "\n" + renderTable(genericColumns(), records)
}

// RenderSkips lists instruments that produced no row.
func RenderSkips(skips []model.Skip) string {
	if len(skips) == 0 {
		return ""
	}
	var b strings.Builder
	for _, s := range skips {
		b.WriteString(warnStyle.Render(fmt.Sprintf("! skipping %s (%s): %v", s.Name, s.Symbol, s.Reason)))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderSnapshot draws every group of a refresh, each sorted when sortBy is set.
func RenderSnapshot(snap *dashboard.Snapshot, sortBy string, ascending bool) string {
	var b strings.Builder
	freq := "daily"
	if snap.Options.Weekly {
		freq = "weekly"
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("refresh %s | %s | %s bars | %d series, %d/%d batches failed | %s",
		snap.ID, snap.Options.Swing.Label, freq, len(snap.Table.Series),
		snap.Table.FailedBatches, snap.Table.Batches, snap.Finished.Format(time.RFC1123))))
	b.WriteString("\n\n")

	for _, g := range snap.Groups {
		switch g.Group.Kind {
		case model.KindGeneric:
			if sortBy != "" {
				_ = SortGeneric(g.Generic, sortBy, ascending)
			}
			b.WriteString(RenderGeneric(g.Group.Title, g.Generic))
		default:
			if sortBy != "" {
				_ = SortTechnical(g.Technical, snap.Options.Swing.Label, sortBy, ascending)
			}
			b.WriteString(RenderTechnical(g.Group.Title, snap.Options.Swing.Label, g.Technical))
		}
		b.WriteString("\n")
		b.WriteString(RenderSkips(g.Skips))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderRecord prints a single technical record as label/value lines.
func RenderRecord(rec *model.AnalysisRecord) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%s) | %s", rec.Name, rec.Symbol, FormatDate(rec.Date))))
	b.WriteString("\n")
	for _, c := range technicalColumns(rec.Period)[1:] {
		style := cellStyle
		if c.cat != nil {
			style = categoryStyles[c.cat(rec)]
		}
		b.WriteString(fmt.Sprintf("  %-26s %s\n", c.title+":", style.Render(c.text(rec))))
	}
	if model.Available(rec.High52wAdjusted) || model.Available(rec.Low52wAdjusted) {
		b.WriteString(fmt.Sprintf("  %-26s %s\n", "52-Week High (Adjusted):", cellStyle.Render(FormatPrice(rec.High52wAdjusted))))
		b.WriteString(fmt.Sprintf("  %-26s %s\n", "52-Week Low (Adjusted):", cellStyle.Render(FormatPrice(rec.Low52wAdjusted))))
	}
	return b.String()
}
