package interpret

import (
	"context"
	"fmt"
)

// FallbackLabel prefixes every locally generated interpretation.
const FallbackLabel = "[Local fallback: not AI-generated]"

// LocalFallbackInterpreter derives a verdict from raw means only. It never fails.
type LocalFallbackInterpreter struct{}

// Interpret names the channel with the higher mean purchase intent.
func (LocalFallbackInterpreter) Interpret(_ context.Context, s Summary) (Interpretation, error) {
	m := s.Descriptives.Means
	n := s.Descriptives.SampleSize
	var verdict string
	switch {
	case m.DigitalIntent > m.OfflineIntent:
		verdict = fmt.Sprintf("Digital channel is favored by raw average: mean digital intent %.4f vs offline intent %.4f (N=%d).",
			m.DigitalIntent, m.OfflineIntent, n)
	case m.OfflineIntent > m.DigitalIntent:
		verdict = fmt.Sprintf("Offline channel is favored by raw average: mean offline intent %.4f vs digital intent %.4f (N=%d).",
			m.OfflineIntent, m.DigitalIntent, n)
	default:
		verdict = fmt.Sprintf("Neither channel is favored: digital and offline intent share a mean of %.4f (N=%d).",
			m.DigitalIntent, n)
	}
	if r := s.Results.Intent; r.Significant() {
		verdict += " The intent difference is statistically significant."
	} else {
		verdict += " The intent difference is not statistically significant."
	}
	return Interpretation{Text: FallbackLabel + " " + verdict, Provenance: ProvenanceFallback}, nil
}
