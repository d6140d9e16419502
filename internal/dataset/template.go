package dataset

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/verte-zerg/germstat/internal/model"
)

// Template returns the built-in sample trial: twelve days with a typical
// single-peak germination curve. It seeds the editor when no input file is
// given and backs the template subcommand.
func Template() []model.Observation {
	counts := []int{0, 2, 5, 12, 15, 5, 4, 0, 1, 0, 0, 0}
	obs := make([]model.Observation, len(counts))
	for i, c := range counts {
		obs[i] = model.Observation{Day: i + 1, Count: c}
	}
	return obs
}

// WriteTemplate writes the sample trial as a two-column CSV with a header.
func WriteTemplate(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"day", "count"}); err != nil {
		return err
	}
	for _, o := range Template() {
		if err := cw.Write([]string{strconv.Itoa(o.Day), strconv.Itoa(o.Count)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
