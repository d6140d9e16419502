package dataset

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/verte-zerg/germstat/internal/model"
)

// Row is a raw day/count cell pair before numeric coercion.
type Row struct {
	Day   string
	Count string
}

// Normalize coerces raw rows into a sorted integer observation set.
// Each cell is parsed as a float and rows with an unparseable or non-finite
// cell are dropped. Survivors are stable-sorted by day, then day and count
// are rounded to the nearest integer (ties to even) and the count is
// clamped to zero. Days are kept as-is, including negative ones.
//
// The result may be empty or carry a zero total count; callers check
// model.TotalCount before computing statistics.
func Normalize(rows []Row) []model.Observation {
	type point struct {
		day   float64
		count float64
	}
	points := make([]point, 0, len(rows))
	for _, r := range rows {
		d, ok := ParseNumber(r.Day)
		if !ok {
			continue
		}
		c, ok := ParseNumber(r.Count)
		if !ok {
			continue
		}
		points = append(points, point{day: d, count: c})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].day < points[j].day })

	obs := make([]model.Observation, 0, len(points))
	for _, p := range points {
		count := int(math.RoundToEven(p.count))
		if count < 0 {
			count = 0
		}
		obs = append(obs, model.Observation{
			Day:   int(math.RoundToEven(p.day)),
			Count: count,
		})
	}
	return obs
}

// ParseNumber coerces one cell to a finite float. It is the single parsing
// rule for observation cells, shared by the normalizer and the row editor.
func ParseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// RowsFromObservations converts typed observations back into editable cells.
func RowsFromObservations(obs []model.Observation) []Row {
	rows := make([]Row, len(obs))
	for i, o := range obs {
		rows[i] = Row{Day: strconv.Itoa(o.Day), Count: strconv.Itoa(o.Count)}
	}
	return rows
}
