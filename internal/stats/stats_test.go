package stats

import (
	"math"
	"testing"

	"github.com/verte-zerg/germstat/internal/dataset"
	"github.com/verte-zerg/germstat/internal/model"
)

const epsilon = 1e-12

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func trialObservations() []model.Observation {
	return []model.Observation{
		{Day: 1, Count: 0},
		{Day: 2, Count: 2},
		{Day: 3, Count: 5},
		{Day: 4, Count: 12},
		{Day: 5, Count: 15},
		{Day: 6, Count: 5},
		{Day: 7, Count: 4},
		{Day: 8, Count: 0},
		{Day: 9, Count: 1},
	}
}

func TestComputeTrial(t *testing.T) {
	res := Compute(trialObservations(), model.TrialConfig{TotalSeeds: 50})
	if res.Germinated != 44 {
		t.Fatalf("expected 44 germinated, got %d", res.Germinated)
	}
	if res.FinalPct != 88.0 {
		t.Fatalf("expected final percentage exactly 88, got %v", res.FinalPct)
	}
	if !almostEqual(res.MeanDays, 209.0/44.0) {
		t.Fatalf("expected MDG %v, got %v", 209.0/44.0, res.MeanDays)
	}
	if !almostEqual(res.Speed, 44.0/209.0) {
		t.Fatalf("expected MGS %v, got %v", 44.0/209.0, res.Speed)
	}
	if !almostEqual(res.Variance, 84.25/44.0) {
		t.Fatalf("expected variance %v, got %v", 84.25/44.0, res.Variance)
	}
	if !almostEqual(res.Uniformity, 44.0/84.25) {
		t.Fatalf("expected uniformity %v, got %v", 44.0/84.25, res.Uniformity)
	}
	if res.ExceedsTotal {
		t.Fatal("expected no exceeds-total flag")
	}
	if res.Reference != nil {
		t.Fatal("expected no unweighted reference by default")
	}
}

func TestComputeCumulative(t *testing.T) {
	res := Compute(trialObservations(), model.TrialConfig{TotalSeeds: 50})
	prev := 0
	for i, c := range res.CumulativeCounts {
		if c < prev {
			t.Fatalf("cumulative count decreased at row %d: %d -> %d", i, prev, c)
		}
		prev = c
		wantPct := 100 * float64(c) / 50
		if !almostEqual(res.CumulativePct[i], wantPct) {
			t.Fatalf("row %d: expected %.4f%%, got %.4f%%", i, wantPct, res.CumulativePct[i])
		}
	}
	last := res.CumulativeCounts[len(res.CumulativeCounts)-1]
	if last != res.Germinated {
		t.Fatalf("expected last cumulative count %d to equal germinated %d", last, res.Germinated)
	}
}

func TestComputeSpeedIsReciprocalOfMeanDays(t *testing.T) {
	res := Compute(trialObservations(), model.TrialConfig{TotalSeeds: 50})
	if !almostEqual(res.Speed*res.MeanDays, 1) {
		t.Fatalf("expected MGS to be the reciprocal of MDG, got product %v", res.Speed*res.MeanDays)
	}
}

func TestComputeOrderIndependent(t *testing.T) {
	rows := []dataset.Row{
		{Day: "9", Count: "1"},
		{Day: "4", Count: "12"},
		{Day: "1", Count: "0"},
		{Day: "7", Count: "4"},
		{Day: "2", Count: "2"},
		{Day: "8", Count: "0"},
		{Day: "5", Count: "15"},
		{Day: "3", Count: "5"},
		{Day: "6", Count: "5"},
	}
	cfg := model.TrialConfig{TotalSeeds: 50, Unweighted: true}
	got := Compute(dataset.Normalize(rows), cfg)
	want := Compute(trialObservations(), cfg)
	if got.Germinated != want.Germinated || got.FinalPct != want.FinalPct {
		t.Fatalf("expected identical totals, got %+v vs %+v", got, want)
	}
	if !almostEqual(got.MeanDays, want.MeanDays) || !almostEqual(got.Speed, want.Speed) {
		t.Fatalf("expected identical means, got %+v vs %+v", got, want)
	}
	if !almostEqual(got.Variance, want.Variance) || !almostEqual(got.Uniformity, want.Uniformity) {
		t.Fatalf("expected identical spread, got %+v vs %+v", got, want)
	}
	if !almostEqual(got.Reference.Variance, want.Reference.Variance) {
		t.Fatalf("expected identical reference variance, got %v vs %v", got.Reference.Variance, want.Reference.Variance)
	}
	for i := range want.CumulativeCounts {
		if got.CumulativeCounts[i] != want.CumulativeCounts[i] {
			t.Fatalf("row %d: expected cumulative %d, got %d", i, want.CumulativeCounts[i], got.CumulativeCounts[i])
		}
	}
}

func TestComputeSingleDay(t *testing.T) {
	obs := []model.Observation{{Day: 4, Count: 10}, {Day: 4, Count: 20}}
	res := Compute(obs, model.TrialConfig{TotalSeeds: 50})
	if res.MeanDays != 4 {
		t.Fatalf("expected MDG 4 when all seeds germinate on day 4, got %v", res.MeanDays)
	}
	if res.Variance != 0 {
		t.Fatalf("expected zero variance, got %v", res.Variance)
	}
	if !math.IsInf(res.Uniformity, 1) {
		t.Fatalf("expected infinite uniformity, got %v", res.Uniformity)
	}
}

func TestComputeDayZeroOnly(t *testing.T) {
	obs := []model.Observation{{Day: 0, Count: 30}}
	res := Compute(obs, model.TrialConfig{TotalSeeds: 50})
	if res.MeanDays != 0 {
		t.Fatalf("expected MDG 0, got %v", res.MeanDays)
	}
	if !math.IsInf(res.Speed, 1) {
		t.Fatalf("expected infinite MGS when the day sum is zero, got %v", res.Speed)
	}
}

func TestComputeExceedsTotal(t *testing.T) {
	obs := []model.Observation{{Day: 1, Count: 25}, {Day: 2, Count: 35}}
	res := Compute(obs, model.TrialConfig{TotalSeeds: 50})
	if !res.ExceedsTotal {
		t.Fatal("expected exceeds-total flag")
	}
	if res.FinalPct != 120.0 {
		t.Fatalf("expected final percentage exactly 120, got %v", res.FinalPct)
	}
	if res.Germinated != 60 {
		t.Fatalf("expected 60 germinated, got %d", res.Germinated)
	}
}

func TestComputeUnweightedReference(t *testing.T) {
	cfg := model.TrialConfig{TotalSeeds: 50, Unweighted: true}
	res := Compute(trialObservations(), cfg)
	if res.Reference == nil {
		t.Fatal("expected unweighted reference")
	}
	if !almostEqual(res.Reference.MeanDays, 5) {
		t.Fatalf("expected unweighted mean day 5, got %v", res.Reference.MeanDays)
	}
	if !almostEqual(res.Reference.Variance, 87.0/44.0) {
		t.Fatalf("expected unweighted variance %v, got %v", 87.0/44.0, res.Reference.Variance)
	}
	if !almostEqual(res.Reference.Uniformity, 44.0/87.0) {
		t.Fatalf("expected unweighted uniformity %v, got %v", 44.0/87.0, res.Reference.Uniformity)
	}
	if !almostEqual(res.Variance, 84.25/44.0) {
		t.Fatalf("expected weighted variance untouched, got %v", res.Variance)
	}
}

func TestComputeInvalidInput(t *testing.T) {
	if res := Compute(nil, model.TrialConfig{TotalSeeds: 50}); res.Germinated != 0 || res.CumulativeCounts != nil {
		t.Fatalf("expected zero result for empty set, got %+v", res)
	}
	zeroSum := []model.Observation{{Day: 1, Count: 0}, {Day: 2, Count: 0}}
	if res := Compute(zeroSum, model.TrialConfig{TotalSeeds: 50}); res.Germinated != 0 {
		t.Fatalf("expected zero result for zero total count, got %+v", res)
	}
	if res := Compute(trialObservations(), model.TrialConfig{}); res.Germinated != 0 {
		t.Fatalf("expected zero result without total seeds, got %+v", res)
	}
}
