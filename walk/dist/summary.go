package dist

import (
	"github.com/montanaflynn/stats"
)

// A Summary packages descriptive statistics of a distribution's weights,
// mainly for logging and CLI reporting.
type Summary struct {
	Outcomes int
	Mass     float64
	Min      float64
	Max      float64
	Mean     float64
	Median   float64
}

// Summarize computes a Summary of d. An empty distribution yields
// ErrZeroMass.
func Summarize(d Distribution) (Summary, error) {
	if len(d) == 0 {
		return Summary{}, ErrZeroMass
	}
	weights := make([]float64, 0, len(d))
	for _, w := range d {
		weights = append(weights, w)
	}
	min, err := stats.Min(weights)
	if err != nil {
		return Summary{}, err
	}
	max, err := stats.Max(weights)
	if err != nil {
		return Summary{}, err
	}
	mean, err := stats.Mean(weights)
	if err != nil {
		return Summary{}, err
	}
	median, err := stats.Median(weights)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Outcomes: len(d),
		Mass:     d.Mass(),
		Min:      min,
		Max:      max,
		Mean:     mean,
		Median:   median,
	}, nil
}
