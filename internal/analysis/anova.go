package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// OneWayANOVA compares the means of two or more groups. Empty groups are ignored.
// Fewer than two groups reports Unit "groups"; a zero within-group df reports
// Unit "observations".
func OneWayANOVA(groups [][]float64) (Outcome, error) {
	var nonEmpty [][]float64
	total := 0
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		nonEmpty = append(nonEmpty, g)
		total += len(g)
	}
	k := len(nonEmpty)
	if k < 2 {
		return Outcome{}, &InsufficientDataError{Test: "one-way ANOVA", Unit: "groups", Need: 2, Got: k}
	}
	dfB, dfW := k-1, total-k
	if dfW <= 0 {
		return Outcome{}, &InsufficientDataError{Test: "one-way ANOVA", Unit: "observations", Need: k + 1, Got: total}
	}

	all := make([]float64, 0, total)
	for _, g := range nonEmpty {
		all = append(all, g...)
	}
	grand := stat.Mean(all, nil)

	var ssb, ssw float64
	for _, g := range nonEmpty {
		m := stat.Mean(g, nil)
		ssb += float64(len(g)) * (m - grand) * (m - grand)
		for _, v := range g {
			ssw += (v - m) * (v - m)
		}
	}
	out := Outcome{DF1: dfB, DF2: dfW, N: total}
	if ssw == 0 {
		out.Degenerate = true
		if ssb == 0 {
			out.Statistic = 0
			out.PValue = 1.0
			return out, nil
		}
		out.Statistic = math.Inf(1)
		out.PValue = 0
		return out, nil
	}
	out.Statistic = (ssb / float64(dfB)) / (ssw / float64(dfW))
	out.PValue = sanitizeP(fPValue(out.Statistic, dfB, dfW))
	return out, nil
}
