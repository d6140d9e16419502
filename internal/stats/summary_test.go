package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/verte-zerg/germstat/internal/model"
)

func TestRenderSummary(t *testing.T) {
	cfg := model.TrialConfig{TotalSeeds: 50, Unweighted: true}
	res := Compute(trialObservations(), cfg)
	var buf bytes.Buffer
	if err := RenderSummary(&buf, cfg, res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := strings.Join([]string{
		"Summary",
		"Germinated (Σn): 44 of N = 50",
		"Final germination: 88.00%",
		"Mean days to germination (MDG): 4.750 days",
		"Mean germination speed (MGS): 0.210526 per day",
		"Variance of germination day: 1.914773",
		"Uniformity (UGC): 0.522255",
		"Mean day (unweighted): 5.000 days",
		"Variance (unweighted): 1.977273",
		"Uniformity (unweighted): 0.505747",
		"",
		"Formulae",
		"Final germination (%) = 100 × Σn / N",
		"MDG = Σ(t × n) / Σn",
		"MGS = Σn / Σ(t × n) = 1 / MDG",
		"UGC = 1 / variance, variance = Σ((t - MDG)² × n) / Σn",
		"Unweighted variant: variance about the plain mean of t, rows weighing equally.",
		"",
	}, "\n") + "\n"
	if buf.String() != want {
		t.Fatalf("expected summary:\n%s\ngot:\n%s", want, buf.String())
	}
}

func TestRenderSummaryInfiniteUniformity(t *testing.T) {
	cfg := model.TrialConfig{TotalSeeds: 50}
	res := Compute([]model.Observation{{Day: 5, Count: 10}}, cfg)
	var buf bytes.Buffer
	if err := RenderSummary(&buf, cfg, res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Uniformity (UGC): inf") {
		t.Fatalf("expected infinite uniformity rendered as inf, got:\n%s", out)
	}
	if !strings.Contains(out, "Mean days to germination (MDG): 5.000 days") {
		t.Fatalf("expected MDG 5.000, got:\n%s", out)
	}
}

func TestRenderSummaryExceedsTotal(t *testing.T) {
	cfg := model.TrialConfig{TotalSeeds: 50}
	obs := []model.Observation{{Day: 1, Count: 25}, {Day: 2, Count: 35}}
	res := Compute(obs, cfg)
	var buf bytes.Buffer
	if err := RenderSummary(&buf, cfg, res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Final germination: 120.00%") {
		t.Fatalf("expected final percentage above 100, got:\n%s", out)
	}
	if !strings.Contains(out, "Warning: germinated total 60 exceeds total seeds 50.") {
		t.Fatalf("expected warning line, got:\n%s", out)
	}
}

func TestRenderSummaryNoObservations(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, model.TrialConfig{TotalSeeds: 50}, Result{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "No valid observations.\n" {
		t.Fatalf("expected advisory line, got %q", buf.String())
	}
}

func TestFormatMetric(t *testing.T) {
	tests := []struct {
		value    float64
		decimals int
		want     string
	}{
		{value: 88, decimals: 2, want: "88.00"},
		{value: 209.0 / 44.0, decimals: 3, want: "4.750"},
		{value: 44.0 / 209.0, decimals: 6, want: "0.210526"},
		{value: math.Inf(1), decimals: 6, want: "inf"},
		{value: math.Inf(-1), decimals: 6, want: "-inf"},
	}
	for _, tt := range tests {
		if got := formatMetric(tt.value, tt.decimals); got != tt.want {
			t.Fatalf("formatMetric(%v, %d): expected %q, got %q", tt.value, tt.decimals, got, tt.want)
		}
	}
}
