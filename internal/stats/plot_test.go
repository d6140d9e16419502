package stats

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPlotSeries(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "Germination", []Series{
		{Name: "daily", Values: []float64{0, 2, 5, 12, 15}},
		{Name: "cumulative", Values: []float64{0, 4, 14, 38, 68}},
	}, 10, 4)
	if err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Germination") {
		t.Fatalf("expected title in output")
	}
	if !strings.Contains(out, "Scaled per series") {
		t.Fatalf("expected scale note in output")
	}
	if !strings.Contains(out, "Legend:") {
		t.Fatalf("expected legend in output")
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	expectedMin := 1 + 1 + 2 + 4 + 1
	if len(lines) < expectedMin {
		t.Fatalf("expected at least %d lines of output, got %d", expectedMin, len(lines))
	}
}

func TestPlotSeriesPinnedBounds(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "Cumulative", []Series{
		{Name: "pct", Values: []float64{4, 14, 38, 68, 88}, Bounds: [2]float64{0, 100}},
	}, 10, 4)
	if err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	if !strings.Contains(buf.String(), "pct: min=0.00 max=100.00") {
		t.Fatalf("expected pinned scale in output, got:\n%s", buf.String())
	}
}

func TestPlotSeriesBars(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "Daily", []Series{
		{Name: "counts", Values: []float64{5, 12, 15}, Bars: true},
	}, 12, 4)
	if err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "counts: min=0.00 max=15.00") {
		t.Fatalf("expected bar scale anchored at zero, got:\n%s", out)
	}
	if !strings.Contains(out, "(bars)") {
		t.Fatalf("expected bars legend entry, got:\n%s", out)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	bottom := lines[len(lines)-2]
	if !strings.ContainsRune(bottom, '⣿') {
		t.Fatalf("expected filled columns on the baseline row, got %q", bottom)
	}
}

func TestPlotSeriesEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotSeries(&buf, "Empty", nil, 10, 4); err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output for empty input, got %q", buf.String())
	}
}

func TestPlotWidthFor(t *testing.T) {
	axisWidth := utf8.RuneCountInString(axisLabelTop) + utf8.RuneCountInString(axisSeparator)
	total := 80
	expected := total - axisWidth
	if got := PlotWidthFor(total); got != expected {
		t.Fatalf("expected width %d, got %d", expected, got)
	}
	if got := PlotWidthFor(0); got != minPlotWidth {
		t.Fatalf("expected min width %d, got %d", minPlotWidth, got)
	}
	if got := PlotWidthFor(axisWidth + 1); got != minPlotWidth {
		t.Fatalf("expected narrow totals clamped to %d, got %d", minPlotWidth, got)
	}
}

func TestResampleSteps(t *testing.T) {
	got := resampleSteps([]float64{1, 2, 3}, 6)
	want := []float64{1, 1, 2, 2, 3, 3}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	down := resampleSteps([]float64{1, 2, 3, 4}, 2)
	if down[0] != 1 || down[1] != 3 {
		t.Fatalf("expected step decimation [1 3], got %v", down)
	}
}
