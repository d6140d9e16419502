// Package stats contains germination statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/verte-zerg/germstat/internal/model"
)

// Rendered metric precision, in decimal places.
const (
	pctDecimals     = 2
	meanDayDecimals = 3
	spreadDecimals  = 6
)

// formatMetric renders a metric value at a fixed precision. Infinite
// values, the sentinel for a zero denominator, render as inf.
func formatMetric(v float64, decimals int) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	if math.IsInf(v, -1) {
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// RenderSummary prints the metric summary followed by the formulae used.
func RenderSummary(w io.Writer, cfg model.TrialConfig, res Result) error {
	if res.Germinated == 0 {
		_, err := fmt.Fprintln(w, "No valid observations.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Germinated (Σn): %d of N = %d\n", res.Germinated, cfg.TotalSeeds); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Final germination: %s%%\n", formatMetric(res.FinalPct, pctDecimals)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Mean days to germination (MDG): %s days\n", formatMetric(res.MeanDays, meanDayDecimals)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Mean germination speed (MGS): %s per day\n", formatMetric(res.Speed, spreadDecimals)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Variance of germination day: %s\n", formatMetric(res.Variance, spreadDecimals)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Uniformity (UGC): %s\n", formatMetric(res.Uniformity, spreadDecimals)); err != nil {
		return err
	}
	if res.Reference != nil {
		if _, err := fmt.Fprintf(w, "Mean day (unweighted): %s days\n", formatMetric(res.Reference.MeanDays, meanDayDecimals)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Variance (unweighted): %s\n", formatMetric(res.Reference.Variance, spreadDecimals)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Uniformity (unweighted): %s\n", formatMetric(res.Reference.Uniformity, spreadDecimals)); err != nil {
			return err
		}
	}
	if res.ExceedsTotal {
		if _, err := fmt.Fprintf(w, "Warning: germinated total %d exceeds total seeds %d.\n", res.Germinated, cfg.TotalSeeds); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "Formulae"); err != nil {
		return err
	}
	formulae := []string{
		"Final germination (%) = 100 × Σn / N",
		"MDG = Σ(t × n) / Σn",
		"MGS = Σn / Σ(t × n) = 1 / MDG",
		"UGC = 1 / variance, variance = Σ((t - MDG)² × n) / Σn",
	}
	for _, line := range formulae {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if res.Reference != nil {
		if _, err := fmt.Fprintln(w, "Unweighted variant: variance about the plain mean of t, rows weighing equally."); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}
