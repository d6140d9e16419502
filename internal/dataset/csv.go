// Package dataset loads, normalizes and exports germination observation tables.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/verte-zerg/germstat/internal/model"
)

// Table is a parsed delimited file: a header record plus data records.
type Table struct {
	Header  []string
	Records [][]string
}

// Load reads a comma-separated file with a header row.
func Load(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	t, err := Read(f)
	if err != nil {
		return Table{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return t, nil
}

// Read parses CSV content with a header row. Records may be ragged; short
// rows surface as empty cells during column mapping.
func Read(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return Table{}, fmt.Errorf("failed to read header: %w", err)
	}
	records, err := cr.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("failed to read records: %w", err)
	}
	return Table{Header: header, Records: records}, nil
}

// ResolveColumn maps a user-supplied column key to a header position.
// The key is matched against header names first exactly, then
// case-insensitively, then parsed as a 1-based column index. An empty key
// selects the fallback position.
func ResolveColumn(header []string, key string, fallback int) (int, error) {
	if key == "" {
		if fallback >= len(header) {
			return 0, fmt.Errorf("table has %d columns, need at least %d", len(header), fallback+1)
		}
		return fallback, nil
	}
	for i, name := range header {
		if name == key {
			return i, nil
		}
	}
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), key) {
			return i, nil
		}
	}
	if idx, err := strconv.Atoi(key); err == nil {
		if idx < 1 || idx > len(header) {
			return 0, fmt.Errorf("column index %d out of range 1..%d", idx, len(header))
		}
		return idx - 1, nil
	}
	return 0, fmt.Errorf("column %q not found in header", key)
}

// MapColumns projects the day and count columns out of the table records.
// Records too short to cover a mapped column yield empty cells, which the
// normalizer drops.
func MapColumns(t Table, dayIdx, countIdx int) []Row {
	rows := make([]Row, 0, len(t.Records))
	for _, rec := range t.Records {
		var r Row
		if dayIdx < len(rec) {
			r.Day = rec[dayIdx]
		}
		if countIdx < len(rec) {
			r.Count = rec[countIdx]
		}
		rows = append(rows, r)
	}
	return rows
}

// ExportTable writes the augmented observation table as CSV: the normalized
// day and count columns plus the cumulative count and cumulative percentage
// columns. cum and pct must align with obs.
func ExportTable(w io.Writer, obs []model.Observation, cum []int, pct []float64) error {
	if len(cum) != len(obs) || len(pct) != len(obs) {
		return fmt.Errorf("cumulative columns do not match %d observations", len(obs))
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"day", "count", "cumulative", "cumulative_pct"}); err != nil {
		return err
	}
	for i, o := range obs {
		rec := []string{
			strconv.Itoa(o.Day),
			strconv.Itoa(o.Count),
			strconv.Itoa(cum[i]),
			strconv.FormatFloat(pct[i], 'f', 2, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
