// Package summary computes the post-aggregation sanity checks logged after a
// successful pipeline run.
package summary

import (
	"fmt"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the aggregated table before the sex-specific columns are
// dropped: how many districts were returned, the distribution of the derived
// under-5 total, and how strongly the male and female counts track each other.
type Summary struct {
	Districts      int
	Total          float64
	Mean           float64
	Min            float64
	Max            float64
	SexCorrelation float64
}

// Compute derives a Summary from the male, female, and total columns. The
// slices must be the same length; they come from the same table.
func Compute(male, female, total []int64) Summary {
	maleF := toFloats(male)
	femaleF := toFloats(female)
	totalF := toFloats(total)

	sum, _ := stats.Sum(totalF)
	mean, _ := stats.Mean(totalF)
	min, _ := stats.Min(totalF)
	max, _ := stats.Max(totalF)

	s := Summary{
		Districts: len(total),
		Total:     sum,
		Mean:      mean,
		Min:       min,
		Max:       max,
	}
	if len(male) > 1 {
		s.SexCorrelation = stat.Correlation(maleF, femaleF, nil)
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("districts=%d total=%.0f mean=%.1f min=%.0f max=%.0f sex_corr=%.3f",
		s.Districts, s.Total, s.Mean, s.Min, s.Max, s.SexCorrelation)
}

func toFloats(values []int64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}
