package interpret

import (
	"fmt"
	"strings"
)

// SystemPrompt frames the generation request.
const SystemPrompt = "You are a senior marketing research analyst. You interpret survey statistics comparing " +
	"digital and offline marketing channels and give concise, actionable strategy. " +
	"Do not invent numbers that are not in the findings."

// BuildPrompt renders the statistical findings as a structured prompt.
func BuildPrompt(s Summary) string {
	var b strings.Builder
	d := s.Descriptives
	b.WriteString("[STUDY]\n")
	if s.Source != "" {
		b.WriteString(fmt.Sprintf("Source: %s\n", s.Source))
	}
	b.WriteString(fmt.Sprintf("Sample size (N): %d\n\n", d.SampleSize))

	b.WriteString("[MEANS]\n")
	b.WriteString(fmt.Sprintf("- digital intent: %.4f\n", d.Means.DigitalIntent))
	b.WriteString(fmt.Sprintf("- offline intent: %.4f\n", d.Means.OfflineIntent))
	b.WriteString(fmt.Sprintf("- digital trust: %.4f\n", d.Means.DigitalTrust))
	b.WriteString(fmt.Sprintf("- offline trust: %.4f\n", d.Means.OfflineTrust))
	if len(d.AgeIntent) > 0 {
		b.WriteString("- digital intent by age group:")
		for i, g := range d.AgeIntent {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(fmt.Sprintf(" %s %.4f (n=%d)", g.Group, g.DigitalIntent, g.N))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n[TEST RESULTS]\n")
	for _, r := range s.Results.Ordered() {
		b.WriteString(fmt.Sprintf("- %s: p-value %.4f, %s (%s)\n", r.Name, r.PValue, r.Verdict, r.Description))
	}

	b.WriteString("\n[TASK]\n")
	b.WriteString("In at most three short paragraphs: state which channel drives purchase intent, ")
	b.WriteString("whether trust differs by channel, whether age matters, and one budget recommendation. ")
	b.WriteString("Treat results marked insufficient data as inconclusive.\n")
	return b.String()
}
