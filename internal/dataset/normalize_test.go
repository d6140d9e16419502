package dataset

import (
	"testing"

	"github.com/verte-zerg/germstat/internal/model"
)

func TestNormalizeDropsUnparseableRows(t *testing.T) {
	rows := []Row{
		{Day: "1", Count: "3"},
		{Day: "", Count: "4"},
		{Day: "two", Count: "5"},
		{Day: "3", Count: "x"},
		{Day: "NaN", Count: "1"},
		{Day: "4", Count: "Inf"},
		{Day: " 5 ", Count: " 2 "},
	}
	got := Normalize(rows)
	want := []model.Observation{{Day: 1, Count: 3}, {Day: 5, Count: 2}}
	if len(got) != len(want) {
		t.Fatalf("expected %d observations, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestNormalizeSortsByDay(t *testing.T) {
	rows := []Row{
		{Day: "9", Count: "1"},
		{Day: "2", Count: "2"},
		{Day: "5", Count: "15"},
		{Day: "2.4", Count: "7"},
	}
	got := Normalize(rows)
	days := []int{2, 2, 5, 9}
	counts := []int{2, 7, 15, 1}
	for i := range got {
		if got[i].Day != days[i] || got[i].Count != counts[i] {
			t.Fatalf("row %d: expected {%d %d}, got %+v", i, days[i], counts[i], got[i])
		}
	}
}

func TestNormalizeKeepsEqualDayOrder(t *testing.T) {
	rows := []Row{
		{Day: "3", Count: "10"},
		{Day: "3", Count: "20"},
		{Day: "3", Count: "30"},
	}
	got := Normalize(rows)
	if len(got) != 3 {
		t.Fatalf("expected 3 observations, got %d", len(got))
	}
	for i, want := range []int{10, 20, 30} {
		if got[i].Count != want {
			t.Fatalf("row %d: expected count %d, got %d", i, want, got[i].Count)
		}
	}
}

func TestNormalizeRoundsHalfToEven(t *testing.T) {
	rows := []Row{
		{Day: "0.5", Count: "1.5"},
		{Day: "2.5", Count: "3.5"},
	}
	got := Normalize(rows)
	want := []model.Observation{{Day: 0, Count: 2}, {Day: 2, Count: 4}}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestNormalizeClampsNegativeCounts(t *testing.T) {
	rows := []Row{
		{Day: "-2", Count: "-3.4"},
		{Day: "1", Count: "-0.2"},
	}
	got := Normalize(rows)
	if got[0].Day != -2 {
		t.Fatalf("expected day -2 to survive unclamped, got %d", got[0].Day)
	}
	if got[0].Count != 0 || got[1].Count != 0 {
		t.Fatalf("expected negative counts clamped to 0, got %+v", got)
	}
}

func TestTotalCount(t *testing.T) {
	if got := model.TotalCount(nil); got != 0 {
		t.Fatalf("expected 0 for empty set, got %d", got)
	}
	zero := Normalize([]Row{{Day: "1", Count: "0"}, {Day: "2", Count: "0"}})
	if got := model.TotalCount(zero); got != 0 {
		t.Fatalf("expected 0 for all-zero counts, got %d", got)
	}
	obs := Normalize([]Row{{Day: "1", Count: "2"}, {Day: "2", Count: "3"}})
	if got := model.TotalCount(obs); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
}

func TestRowsFromObservations(t *testing.T) {
	obs := []model.Observation{{Day: 1, Count: 0}, {Day: 2, Count: 7}}
	rows := RowsFromObservations(obs)
	back := Normalize(rows)
	if len(back) != len(obs) {
		t.Fatalf("expected %d rows back, got %d", len(obs), len(back))
	}
	for i := range obs {
		if back[i] != obs[i] {
			t.Fatalf("row %d: expected %+v, got %+v", i, obs[i], back[i])
		}
	}
}
