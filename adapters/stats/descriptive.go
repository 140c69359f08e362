package stats

import (
	"math"

	mstats "github.com/montanaflynn/stats"

	"psychstats/domain/core"
)

// Summary holds descriptive statistics for one (condition, stimulus type)
// group. SD is the sample standard deviation (n-1 denominator).
type Summary struct {
	Mean float64
	SD   float64
	N    int
}

// Describe computes mean, sample SD and count over the non-missing
// observations of one group. Groups below two observations have no
// defined variance and are rejected.
func Describe(values []float64, context string) (Summary, error) {
	clean := DropMissing(values)
	if len(clean) < 2 {
		return Summary{}, core.NewInsufficientDataError(context, len(clean))
	}

	mean, err := mstats.Mean(clean)
	if err != nil {
		return Summary{}, err
	}
	sd, err := mstats.StandardDeviationSample(clean)
	if err != nil {
		return Summary{}, err
	}

	return Summary{Mean: mean, SD: sd, N: len(clean)}, nil
}

// DropMissing filters NaN observations out of a sample.
func DropMissing(values []float64) []float64 {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	return clean
}
