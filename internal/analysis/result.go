package analysis

import (
	"fmt"
	"math"
)

// SignificanceLevel is the strict threshold: p < 0.05 is significant.
const SignificanceLevel = 0.05

// Kind identifies the family of a hypothesis test.
type Kind string

const (
	KindPaired       Kind = "paired_comparison"
	KindVariance     Kind = "variance_analysis"
	KindIndependence Kind = "independence_test"
)

// Verdict is the machine-readable outcome label of a test.
type Verdict string

const (
	VerdictSignificant        Verdict = "significant"
	VerdictNotSignificant     Verdict = "not significant"
	VerdictInsufficientData   Verdict = "insufficient data"
	VerdictInsufficientGroups Verdict = "insufficient groups"
)

// Result is one computed test. It is a value; callers get copies.
type Result struct {
	Kind      Kind    `json:"kind" yaml:"kind"`
	Name      string  `json:"name" yaml:"name"`
	StatLabel string  `json:"stat_label" yaml:"stat_label"`
	Statistic float64 `json:"statistic" yaml:"statistic"`
	PValue    float64 `json:"p_value" yaml:"p_value"`
	// DF1 is the (numerator) degrees of freedom, DF2 the denominator for F tests.
	DF1         int     `json:"df1,omitempty" yaml:"df1,omitempty"`
	DF2         int     `json:"df2,omitempty" yaml:"df2,omitempty"`
	N           int     `json:"n" yaml:"n"`
	Verdict     Verdict `json:"verdict" yaml:"verdict"`
	Description string  `json:"description" yaml:"description"`
	// Degenerate marks results computed under the zero-variance or df=0 policy.
	Degenerate bool `json:"degenerate,omitempty" yaml:"degenerate,omitempty"`
}

// Significant reports whether the verdict is significant.
func (r Result) Significant() bool { return r.Verdict == VerdictSignificant }

// Degraded reports whether the test could not run on the data.
func (r Result) Degraded() bool {
	return r.Verdict == VerdictInsufficientData || r.Verdict == VerdictInsufficientGroups
}

func (r Result) String() string {
	return fmt.Sprintf("%s: %s=%.4f p=%.4f (%s)", r.Name, r.StatLabel, r.Statistic, r.PValue, r.Verdict)
}

// Outcome is the raw output of a test routine before a verdict is attached.
type Outcome struct {
	Statistic  float64
	PValue     float64
	DF1, DF2   int
	N          int
	Degenerate bool
}

func verdictFor(p float64) Verdict {
	if p < SignificanceLevel {
		return VerdictSignificant
	}
	return VerdictNotSignificant
}

// sanitizeP maps undefined p-values to the neutral sentinel 1.0 and clamps to [0,1].
func sanitizeP(p float64) float64 {
	switch {
	case math.IsNaN(p):
		return 1.0
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}
