// sim/metrics_utils.go
package sim

import (
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Distribution summarizes a set of per-process tick values.
type Distribution struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Median float64 `json:"p50"`
	P90    float64 `json:"p90"`
	Max    float64 `json:"max"`
}

// NewDistribution computes summary statistics over data.
// An empty slice yields the zero Distribution.
func NewDistribution(data []int64) Distribution {
	if len(data) == 0 {
		return Distribution{}
	}
	xs := make([]float64, len(data))
	for i, v := range data {
		xs[i] = float64(v)
	}
	slices.Sort(xs)

	d := Distribution{
		Count:  len(xs),
		Mean:   stat.Mean(xs, nil),
		Median: CalculatePercentile(xs, 50),
		P90:    CalculatePercentile(xs, 90),
		Max:    xs[len(xs)-1],
	}
	if len(xs) > 1 {
		d.StdDev = stat.StdDev(xs, nil)
	}
	return d
}

// CalculatePercentile returns the p-th percentile (0-100) of sorted data
// using the empirical CDF.
func CalculatePercentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	return stat.Quantile(p/100.0, stat.Empirical, sorted, nil)
}
