// Package stats contains germination statistics calculations and reporting.
package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/verte-zerg/germstat/internal/model"
)

// Result bundles every metric derived from one observation set. Slices are
// aligned with the input observations.
type Result struct {
	Germinated       int
	CumulativeCounts []int
	CumulativePct    []float64
	FinalPct         float64
	MeanDays         float64
	Speed            float64
	Variance         float64
	Uniformity       float64
	ExceedsTotal     bool
	Reference        *Reference
}

// Reference holds the unweighted variant of the spread metrics, measured
// about the plain mean of the observation days instead of the
// count-weighted mean.
type Reference struct {
	MeanDays   float64
	Variance   float64
	Uniformity float64
}

// Compute derives the metric bundle for a normalized observation set.
// The set must be non-empty with a positive total count and TotalSeeds
// must be at least 1; anything else yields the zero Result. The call is
// pure: nothing is cached between invocations.
func Compute(obs []model.Observation, cfg model.TrialConfig) Result {
	if len(obs) == 0 || cfg.TotalSeeds < 1 {
		return Result{}
	}
	days := make([]float64, len(obs))
	counts := make([]float64, len(obs))
	for i, o := range obs {
		days[i] = float64(o.Day)
		counts[i] = float64(o.Count)
	}
	germinated := floats.Sum(counts)
	if germinated <= 0 {
		return Result{}
	}

	cum := make([]float64, len(counts))
	floats.CumSum(cum, counts)
	total := float64(cfg.TotalSeeds)
	cumCounts := make([]int, len(cum))
	cumPct := make([]float64, len(cum))
	for i, v := range cum {
		cumCounts[i] = int(v)
		cumPct[i] = 100 * v / total
	}

	// Σ(day·count) drives both the weighted mean day and the speed.
	weightedDays := floats.Dot(days, counts)
	meanDays := stat.Mean(days, counts)
	speed := math.Inf(1)
	if weightedDays != 0 {
		speed = germinated / weightedDays
	}

	variance := stat.MomentAbout(2, days, meanDays, counts)
	res := Result{
		Germinated:       int(germinated),
		CumulativeCounts: cumCounts,
		CumulativePct:    cumPct,
		FinalPct:         100 * germinated / total,
		MeanDays:         meanDays,
		Speed:            speed,
		Variance:         variance,
		Uniformity:       inverseOrInf(variance),
		ExceedsTotal:     int(germinated) > cfg.TotalSeeds,
	}
	if cfg.Unweighted {
		refMean := stat.Mean(days, nil)
		refVar := stat.MomentAbout(2, days, refMean, counts)
		res.Reference = &Reference{
			MeanDays:   refMean,
			Variance:   refVar,
			Uniformity: inverseOrInf(refVar),
		}
	}
	return res
}

func inverseOrInf(v float64) float64 {
	if v == 0 {
		return math.Inf(1)
	}
	return 1 / v
}
