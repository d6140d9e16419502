package tui

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/germstat/internal/dataset"
	"github.com/verte-zerg/germstat/internal/model"
	"github.com/verte-zerg/germstat/internal/stats"
)

func renderOverview(cfg model.TrialConfig, obs []model.Observation, res stats.Result, width int) string {
	if res.Germinated == 0 {
		return "No valid observations. Add rows on the Data tab."
	}
	cards := renderMetricCards(cfg, res, width)
	obsTable := renderObservationTable(obs, res)
	if res.ExceedsTotal {
		warning := errorStyle.Render(fmt.Sprintf("Warning: germinated total %d exceeds total seeds %d.", res.Germinated, cfg.TotalSeeds))
		return strings.TrimRight(cards+"\n"+warning+"\n\n"+obsTable, "\n")
	}
	return strings.TrimRight(cards+"\n\n"+obsTable, "\n")
}

func renderMetricCards(cfg model.TrialConfig, res stats.Result, width int) string {
	cards := []string{
		metricCard("Germinated", fmt.Sprintf("%d of %d", res.Germinated, cfg.TotalSeeds)),
		metricCard("Final %", formatCardMetric(res.FinalPct, 2)+"%"),
		metricCard("Mean days", formatCardMetric(res.MeanDays, 3)),
		metricCard("Speed /day", formatCardMetric(res.Speed, 6)),
		metricCard("Variance", formatCardMetric(res.Variance, 6)),
		metricCard("Uniformity", formatCardMetric(res.Uniformity, 6)),
	}
	if res.Reference != nil {
		cards = append(cards,
			metricCard("Mean days (unweighted)", formatCardMetric(res.Reference.MeanDays, 3)),
			metricCard("Variance (unweighted)", formatCardMetric(res.Reference.Variance, 6)),
			metricCard("Uniformity (unweighted)", formatCardMetric(res.Reference.Uniformity, 6)),
		)
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	rows := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2]),
		lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4], cards[5]),
	}
	if len(cards) > 6 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[6], cards[7], cards[8]))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func formatCardMetric(v float64, decimals int) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	if math.IsInf(v, -1) {
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

func renderObservationTable(obs []model.Observation, res stats.Result) string {
	var buf bytes.Buffer
	if err := stats.RenderTable(&buf, obs, res); err != nil {
		return fmt.Sprintf("Failed to render observation table: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func renderCharts(cfg model.TrialConfig, obs []model.Observation, res stats.Result, width int) string {
	if res.Germinated == 0 {
		return "No valid observations. Add rows on the Data tab."
	}
	var buf bytes.Buffer
	if err := stats.RenderCharts(&buf, obs, cfg, width, plotHeight, true); err != nil {
		return fmt.Sprintf("Failed to render charts: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func renderSummaryText(cfg model.TrialConfig, res stats.Result) string {
	var buf bytes.Buffer
	if err := stats.RenderSummary(&buf, cfg, res); err != nil {
		return fmt.Sprintf("Failed to render summary: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func buildDataTable(rows []dataset.Row, width, height int) table.Model {
	columns, tableRows := buildDataTableData(rows)
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithHeight(maxInt(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(dataTableStyles())
	return t
}

func applyDataTable(m *Model, rows []dataset.Row, width, height int, force bool) {
	cols, tableRows := buildDataTableData(rows)
	viewportHeight := maxInt(1, height-1)
	if !force &&
		m.dataLayout.width == width &&
		m.dataLayout.height == viewportHeight &&
		m.dataLayout.rowCount == len(tableRows) &&
		m.dataLayout.colCount == len(cols) {
		return
	}
	m.dataTable.SetColumns(cols)
	m.dataTable.SetRows(tableRows)
	m.dataLayout.rowCount = len(tableRows)
	m.dataLayout.colCount = len(cols)
	if cursor := m.dataTable.Cursor(); cursor >= len(tableRows) {
		m.dataTable.SetCursor(maxInt(0, len(tableRows)-1))
	}
	m.setDataTableSize(width, height)
}

func (m *Model) setDataTableSize(width, height int) {
	viewportHeight := maxInt(1, height-1)
	if m.dataLayout.width == width && m.dataLayout.height == viewportHeight {
		return
	}
	m.dataLayout.width = width
	m.dataLayout.height = viewportHeight
	m.dataTable.SetWidth(width)
	m.dataTable.SetHeight(viewportHeight)
	viewportHeight = m.adjustDataTableHeight(height)
	if m.dataLayout.height != viewportHeight {
		m.dataLayout.height = viewportHeight
		m.dataTable.SetHeight(viewportHeight)
	}
}

func dataTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) adjustDataTableHeight(bodyHeight int) int {
	target := maxInt(1, bodyHeight)
	height := m.dataTable.Height()
	viewHeight := lipgloss.Height(m.dataTable.View())
	if viewHeight == target {
		return height
	}
	height += target - viewHeight
	if height < 1 {
		height = 1
	}
	m.dataTable.SetHeight(height)
	viewHeight = lipgloss.Height(m.dataTable.View())
	if viewHeight == target {
		return height
	}
	height += target - viewHeight
	if height < 1 {
		height = 1
	}
	return height
}

func buildDataTableData(rows []dataset.Row) ([]table.Column, []table.Row) {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Day", Width: 12},
		{Title: "Count", Width: 12},
		{Title: "Note", Width: 10},
	}
	tableRows := make([]table.Row, 0, len(rows))
	for i, row := range rows {
		tableRows = append(tableRows, table.Row{
			strconv.Itoa(i + 1),
			row.Day,
			row.Count,
			rowNote(row),
		})
	}
	return columns, tableRows
}

// rowNote flags rows the normalizer will drop or adjust.
func rowNote(row dataset.Row) string {
	_, dayOK := dataset.ParseNumber(row.Day)
	count, countOK := dataset.ParseNumber(row.Count)
	if !dayOK || !countOK {
		return "ignored"
	}
	if count < 0 {
		return "clamped"
	}
	return ""
}
