package report

import (
	"time"

	"github.com/KaramelBytes/channelstat/internal/analysis"
	"github.com/KaramelBytes/channelstat/internal/interpret"
	"github.com/google/uuid"
)

// Report is the complete, immutable outcome of one analysis run.
// Accessors return copies.
type Report struct {
	runID           string
	source          string
	generatedAt     time.Time
	descriptives    analysis.Descriptives
	tests           [4]analysis.Result
	interpretation  interpret.Interpretation
	recommendations []interpret.Recommendation
	notes           []string
}

// Input carries the pieces produced by the pipeline stages.
type Input struct {
	Source          string
	Descriptives    analysis.Descriptives
	Results         analysis.Results
	Interpretation  interpret.Interpretation
	Recommendations []interpret.Recommendation
	Notes           []string
}

// Assemble builds a Report with the tests in fixed order: intent, trust,
// age/intent variance, age/preference independence.
func Assemble(in Input) Report {
	d := in.Descriptives
	d.AgeIntent = append([]analysis.GroupMean(nil), d.AgeIntent...)
	return Report{
		runID:           uuid.NewString(),
		source:          in.Source,
		generatedAt:     time.Now().UTC(),
		descriptives:    d,
		tests:           in.Results.Ordered(),
		interpretation:  in.Interpretation,
		recommendations: append([]interpret.Recommendation(nil), in.Recommendations...),
		notes:           append([]string(nil), in.Notes...),
	}
}

func (r Report) RunID() string { return r.runID }
func (r Report) Source() string { return r.source }
func (r Report) GeneratedAt() time.Time { return r.generatedAt }
func (r Report) SampleSize() int { return r.descriptives.SampleSize }
func (r Report) Tests() [4]analysis.Result { return r.tests }

func (r Report) Descriptives() analysis.Descriptives {
	d := r.descriptives
	d.AgeIntent = append([]analysis.GroupMean(nil), d.AgeIntent...)
	return d
}

func (r Report) Interpretation() interpret.Interpretation { return r.interpretation }

func (r Report) Recommendations() []interpret.Recommendation {
	return append([]interpret.Recommendation(nil), r.recommendations...)
}

func (r Report) Notes() []string { return append([]string(nil), r.notes...) }
