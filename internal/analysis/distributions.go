package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// studentsTPValue returns the two-sided p-value of t with df degrees of freedom.
func studentsTPValue(t float64, df int) float64 {
	if df <= 0 || math.IsNaN(t) {
		return 1.0
	}
	if math.IsInf(t, 0) {
		return 0
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	return 2 * dist.CDF(-math.Abs(t))
}

// fPValue returns the upper-tail p-value of an F statistic.
func fPValue(f float64, df1, df2 int) float64 {
	if df1 <= 0 || df2 <= 0 || math.IsNaN(f) {
		return 1.0
	}
	if math.IsInf(f, 1) {
		return 0
	}
	dist := distuv.F{D1: float64(df1), D2: float64(df2)}
	return 1 - dist.CDF(f)
}

// chiSquarePValue returns the upper-tail p-value of a chi-square statistic.
func chiSquarePValue(chi2 float64, df int) float64 {
	if df <= 0 || math.IsNaN(chi2) {
		return 1.0
	}
	dist := distuv.ChiSquared{K: float64(df)}
	return 1 - dist.CDF(chi2)
}
