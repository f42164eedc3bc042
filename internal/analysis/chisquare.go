package analysis

import (
	"fmt"
	"math"
)

// ChiSquareIndependence runs Pearson's chi-square test of independence on a
// contingency table of observed counts. Yates' continuity correction is applied
// when df is 1. A table with a single row or column has df 0 and yields
// chi2=0, p=1.
func ChiSquareIndependence(observed [][]float64) (Outcome, error) {
	rows := len(observed)
	if rows == 0 {
		return Outcome{}, &InsufficientDataError{Test: "chi-square", Unit: "cells", Need: 1, Got: 0}
	}
	cols := len(observed[0])
	for i, r := range observed {
		if len(r) != cols {
			return Outcome{}, fmt.Errorf("chi-square: ragged table at row %d", i)
		}
	}
	if cols == 0 {
		return Outcome{}, &InsufficientDataError{Test: "chi-square", Unit: "cells", Need: 1, Got: 0}
	}

	rowSum := make([]float64, rows)
	colSum := make([]float64, cols)
	var total float64
	for i, r := range observed {
		for j, v := range r {
			if v < 0 || math.IsNaN(v) {
				return Outcome{}, fmt.Errorf("chi-square: invalid count %v at (%d,%d)", v, i, j)
			}
			rowSum[i] += v
			colSum[j] += v
			total += v
		}
	}
	if total == 0 {
		return Outcome{}, &InsufficientDataError{Test: "chi-square", Unit: "observations", Need: 1, Got: 0}
	}

	df := (rows - 1) * (cols - 1)
	out := Outcome{DF1: df, N: int(total)}
	if df == 0 {
		out.Statistic = 0
		out.PValue = 1.0
		out.Degenerate = true
		return out, nil
	}

	var chi2 float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			expected := rowSum[i] * colSum[j] / total
			if expected == 0 {
				return Outcome{}, fmt.Errorf("chi-square: zero expected frequency at (%d,%d)", i, j)
			}
			o := observed[i][j]
			if df == 1 {
				d := expected - o
				o += math.Copysign(math.Min(0.5, math.Abs(d)), d)
			}
			chi2 += (o - expected) * (o - expected) / expected
		}
	}
	out.Statistic = chi2
	out.PValue = sanitizeP(chiSquarePValue(chi2, df))
	return out, nil
}
