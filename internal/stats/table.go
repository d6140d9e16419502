// Package stats contains germination statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/verte-zerg/germstat/internal/model"
)

// RenderTable prints the augmented observation table: the normalized rows
// plus the cumulative count and percentage columns from res.
func RenderTable(w io.Writer, obs []model.Observation, res Result) error {
	if len(obs) == 0 || res.Germinated == 0 {
		_, err := fmt.Fprintln(w, "No valid observations.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Observations"); err != nil {
		return err
	}
	headers := []string{"Day", "Count", "Cumulative", "Cum. %"}
	rows := make([][]string, 0, len(obs))
	for i, o := range obs {
		rows = append(rows, []string{
			strconv.Itoa(o.Day),
			strconv.Itoa(o.Count),
			strconv.Itoa(res.CumulativeCounts[i]),
			formatMetric(res.CumulativePct[i], pctDecimals),
		})
	}
	rightAlign := map[int]bool{0: true, 1: true, 2: true, 3: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

func formatTable(headers []string, rows [][]string, rightAlignCols map[int]bool) []string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	for i, header := range headers {
		widths[i] = displayWidth(header)
	}
	for _, row := range rows {
		for i := 0; i < colCount; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, formatRow(headers, widths, rightAlignCols))
	}
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlignCols))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlignCols map[int]bool) string {
	var b strings.Builder
	for i := 0; i < len(widths); i++ {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(padCell(cell, widths[i], rightAlignCols[i]))
	}
	return b.String()
}

func padCell(value string, width int, rightAlign bool) string {
	valueWidth := displayWidth(value)
	if valueWidth >= width {
		return value
	}
	padding := width - valueWidth
	if rightAlign {
		return strings.Repeat(" ", padding) + value
	}
	return value + strings.Repeat(" ", padding)
}

func displayWidth(value string) int {
	return utf8.RuneCountInString(value)
}
