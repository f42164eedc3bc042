package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// PairedTTest runs a two-sided paired-samples t-test of x against y.
//
// When every difference is identical the standard error is zero. A zero mean
// difference then yields t=0, p=1; any other mean yields t=±Inf, p=0. Both
// cases are flagged Degenerate.
func PairedTTest(x, y []float64) (Outcome, error) {
	if len(x) != len(y) {
		return Outcome{}, fmt.Errorf("paired t-test: unequal sample lengths %d and %d", len(x), len(y))
	}
	n := len(x)
	if n < 2 {
		return Outcome{}, &InsufficientDataError{Test: "paired t-test", Unit: "pairs", Need: 2, Got: n}
	}
	diff := make([]float64, n)
	for i := range x {
		diff[i] = x[i] - y[i]
	}
	mean, variance := stat.MeanVariance(diff, nil)
	out := Outcome{DF1: n - 1, N: n}

	if variance <= 0 || math.IsNaN(variance) {
		out.Degenerate = true
		if mean == 0 {
			out.Statistic = 0
			out.PValue = 1.0
			return out, nil
		}
		out.Statistic = math.Inf(sign(mean))
		out.PValue = 0
		return out, nil
	}
	se := math.Sqrt(variance / float64(n))
	out.Statistic = mean / se
	out.PValue = sanitizeP(studentsTPValue(out.Statistic, out.DF1))
	return out, nil
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}
