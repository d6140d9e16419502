package stats

import (
	"fmt"
	"io"

	"github.com/verte-zerg/germstat/internal/model"
)

// maxChartSpan bounds the dense day-axis expansion. Days are not clamped
// during normalization, so the axis is where their magnitude must be capped.
const maxChartSpan = 4096

// DailySeries expands observations onto a dense day axis from the first to
// the last observed day. Counts on the same day are summed, gap days carry
// zero, and the cumulative percentage holds its last value across gaps.
// Trials spanning more than maxChartSpan days chart at the distinct
// observed days instead.
func DailySeries(obs []model.Observation, totalSeeds int) (days []int, counts, cumPct []float64) {
	if len(obs) == 0 || totalSeeds < 1 {
		return nil, nil, nil
	}
	minDay, maxDay := obs[0].Day, obs[0].Day
	for _, o := range obs[1:] {
		if o.Day < minDay {
			minDay = o.Day
		}
		if o.Day > maxDay {
			maxDay = o.Day
		}
	}
	// A negative difference means the subtraction overflowed.
	if d := maxDay - minDay; d < 0 || d >= maxChartSpan {
		return observedSeries(obs, totalSeeds)
	}
	span := maxDay - minDay + 1
	days = make([]int, span)
	counts = make([]float64, span)
	cumPct = make([]float64, span)
	for i := range days {
		days[i] = minDay + i
	}
	for _, o := range obs {
		counts[o.Day-minDay] += float64(o.Count)
	}
	running := 0.0
	for i, c := range counts {
		running += c
		cumPct[i] = 100 * running / float64(totalSeeds)
	}
	return days, counts, cumPct
}

// observedSeries sums counts per distinct day without expanding the axis.
// Normalized sets arrive sorted by day, so equal days group adjacently.
func observedSeries(obs []model.Observation, totalSeeds int) (days []int, counts, cumPct []float64) {
	for _, o := range obs {
		if n := len(days); n > 0 && days[n-1] == o.Day {
			counts[n-1] += float64(o.Count)
			continue
		}
		days = append(days, o.Day)
		counts = append(counts, float64(o.Count))
	}
	cumPct = make([]float64, len(counts))
	running := 0.0
	for i, c := range counts {
		running += c
		cumPct[i] = 100 * running / float64(totalSeeds)
	}
	return days, counts, cumPct
}

// RenderCharts prints the daily count bars and the cumulative percentage
// curve. The cumulative plot is pinned to the 0-100 scale.
func RenderCharts(w io.Writer, obs []model.Observation, cfg model.TrialConfig, totalWidth, height int, useColor bool) error {
	days, counts, cumPct := DailySeries(obs, cfg.TotalSeeds)
	if len(counts) == 0 {
		return nil
	}
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	span := fmt.Sprintf("days %d..%d", days[0], days[len(days)-1])
	if err := PlotSeriesWithColor(w, "Daily Counts", []Series{
		{Name: "seeds per day, " + span, Values: counts, Bars: true},
	}, width, height, useColor); err != nil {
		return err
	}
	return PlotSeriesWithColor(w, "Cumulative Germination", []Series{
		{Name: "cumulative %, " + span, Values: cumPct, Bounds: [2]float64{0, 100}},
	}, width, height, useColor)
}
