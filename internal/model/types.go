// Package model defines shared data structures.
package model

// Observation is a single germination record: the number of seeds that
// germinated on a given day of the trial.
type Observation struct {
	Day   int
	Count int
}

// TrialConfig defines trial parameters for the statistics engine.
type TrialConfig struct {
	TotalSeeds int
	Unweighted bool
}

// TotalCount returns the summed germination count of the set.
// A set with a zero total carries no usable signal and must not be
// passed to the engine.
func TotalCount(obs []Observation) int {
	total := 0
	for _, o := range obs {
		total += o.Count
	}
	return total
}
