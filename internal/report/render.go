package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/KaramelBytes/channelstat/internal/analysis"
	"github.com/KaramelBytes/channelstat/internal/interpret"
	"github.com/KaramelBytes/channelstat/internal/utils"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"gopkg.in/yaml.v3"
)

// Format names an output rendering.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatHTML     Format = "html"
)

// ParseFormat accepts the canonical names plus "md" and "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "html":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unsupported format: %s (use text|markdown|json|yaml|html)", s)
}

// Render returns r in the requested format.
func Render(r Report, f Format) ([]byte, error) {
	switch f {
	case FormatText:
		return []byte(r.Text()), nil
	case FormatMarkdown:
		return []byte(r.Markdown()), nil
	case FormatJSON:
		return r.JSON()
	case FormatYAML:
		return r.YAML()
	case FormatHTML:
		return r.HTML(), nil
	}
	return nil, fmt.Errorf("unsupported format: %s", f)
}

// fmt4 renders a statistic at four decimals; non-finite values keep their sign.
func fmt4(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	case math.IsNaN(v):
		return "NaN"
	}
	return fmt.Sprintf("%.4f", v)
}

func provenanceMarker(i interpret.Interpretation) string {
	if i.IsAI() {
		if i.Model != "" {
			return fmt.Sprintf("AI-generated (%s)", i.Model)
		}
		return "AI-generated"
	}
	return "local fallback (not AI-generated)"
}

// Text renders the console form.
func (r Report) Text() string {
	var b strings.Builder
	b.WriteString("--- Statistical Research Report")
	if r.source != "" {
		b.WriteString(": " + r.source)
	}
	b.WriteString(" ---\n")
	b.WriteString(fmt.Sprintf("Sample Size (N): %d\n", r.descriptives.SampleSize))
	for _, t := range r.tests {
		b.WriteString(fmt.Sprintf("\n[%s]\n", t.Name))
		b.WriteString(fmt.Sprintf("%s-statistic: %s\n", t.StatLabel, fmt4(t.Statistic)))
		b.WriteString(fmt.Sprintf("p-value: %s\n", fmt4(t.PValue)))
		b.WriteString(fmt.Sprintf("Verdict: %s (%s)\n", t.Verdict, t.Description))
	}
	b.WriteString(fmt.Sprintf("\n[Interpretation: %s]\n", provenanceMarker(r.interpretation)))
	b.WriteString(r.interpretation.Text)
	b.WriteString("\n")
	if len(r.recommendations) > 0 {
		b.WriteString("\n[Recommendations]\n")
		for _, rec := range r.recommendations {
			b.WriteString(fmt.Sprintf("- %s: %s\n", rec.Title, rec.Text))
		}
	}
	if len(r.notes) > 0 {
		b.WriteString("\n[Notes]\n")
		for _, n := range r.notes {
			b.WriteString("- " + n + "\n")
		}
	}
	return b.String()
}

// Markdown renders bracketed sections with a results table.
func (r Report) Markdown() string {
	var b strings.Builder
	b.WriteString("# Channel Comparison Report\n\n")
	b.WriteString("[DATASET SUMMARY]\n\n")
	if r.source != "" {
		b.WriteString(fmt.Sprintf("- Source: %s\n", r.source))
	}
	b.WriteString(fmt.Sprintf("- Sample size (N): %d\n", r.descriptives.SampleSize))
	b.WriteString(fmt.Sprintf("- Run: %s\n\n", r.runID))

	m := r.descriptives.Means
	b.WriteString("[MEANS]\n\n")
	b.WriteString("| metric | digital | offline |\n| --- | --- | --- |\n")
	b.WriteString(fmt.Sprintf("| intent | %.4f | %.4f |\n", m.DigitalIntent, m.OfflineIntent))
	b.WriteString(fmt.Sprintf("| trust | %.4f | %.4f |\n\n", m.DigitalTrust, m.OfflineTrust))
	if len(r.descriptives.AgeIntent) > 0 {
		b.WriteString("[DIGITAL INTENT BY AGE]\n\n")
		for _, g := range r.descriptives.AgeIntent {
			b.WriteString(fmt.Sprintf("- %s (n=%d): %.4f\n", safeVal(g.Group), g.N, g.DigitalIntent))
		}
		b.WriteString("\n")
	}

	b.WriteString("[HYPOTHESIS TESTS]\n\n")
	b.WriteString("| test | statistic | p-value | verdict |\n| --- | --- | --- | --- |\n")
	for _, t := range r.tests {
		b.WriteString(fmt.Sprintf("| %s | %s = %s | %s | %s: %s |\n",
			safeVal(t.Name), t.StatLabel, fmt4(t.Statistic), fmt4(t.PValue), t.Verdict, safeVal(t.Description)))
	}

	b.WriteString(fmt.Sprintf("\n[INTERPRETATION: %s]\n\n", strings.ToUpper(provenanceMarker(r.interpretation))))
	b.WriteString(r.interpretation.Text)
	b.WriteString("\n")
	if r.interpretation.Reason != "" {
		b.WriteString(fmt.Sprintf("\n_Fallback reason: %s_\n", r.interpretation.Reason))
	}
	if len(r.recommendations) > 0 {
		b.WriteString("\n[RECOMMENDATIONS]\n\n")
		for _, rec := range r.recommendations {
			b.WriteString(fmt.Sprintf("- **%s**: %s\n", rec.Title, rec.Text))
		}
	}
	if len(r.notes) > 0 {
		b.WriteString("\n[NOTES]\n\n")
		for _, n := range r.notes {
			b.WriteString("- " + n + "\n")
		}
	}
	return b.String()
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }

// HTML renders the markdown form as a standalone page.
func (r Report) HTML() []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: "Channel Comparison Report",
	})
	return markdown.ToHTML([]byte(r.Markdown()), p, renderer)
}

// document is the structured-data form shared by JSON and YAML.
type document struct {
	RunID           string                     `json:"run_id" yaml:"run_id"`
	Source          string                     `json:"source,omitempty" yaml:"source,omitempty"`
	GeneratedAt     time.Time                  `json:"generated_at" yaml:"generated_at"`
	SampleSize      int                        `json:"sample_size" yaml:"sample_size"`
	Means           analysis.Means             `json:"means" yaml:"means"`
	AgeIntent       []analysis.GroupMean       `json:"age_intent,omitempty" yaml:"age_intent,omitempty"`
	Tests           []testDoc                  `json:"tests" yaml:"tests"`
	Interpretation  interpret.Interpretation   `json:"interpretation" yaml:"interpretation"`
	Recommendations []interpret.Recommendation `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
	Notes           []string                   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

type testDoc struct {
	Kind        analysis.Kind    `json:"kind" yaml:"kind"`
	Name        string           `json:"name" yaml:"name"`
	StatLabel   string           `json:"stat_label" yaml:"stat_label"`
	Statistic   jsonFloat        `json:"statistic" yaml:"statistic"`
	PValue      jsonFloat        `json:"p_value" yaml:"p_value"`
	Display     string           `json:"display" yaml:"display"`
	DF1         int              `json:"df1,omitempty" yaml:"df1,omitempty"`
	DF2         int              `json:"df2,omitempty" yaml:"df2,omitempty"`
	N           int              `json:"n" yaml:"n"`
	Verdict     analysis.Verdict `json:"verdict" yaml:"verdict"`
	Description string           `json:"description" yaml:"description"`
	Degenerate  bool             `json:"degenerate,omitempty" yaml:"degenerate,omitempty"`
}

// jsonFloat encodes non-finite values as null in JSON; YAML keeps .inf.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%.4f", v)), nil
}

func (f jsonFloat) MarshalYAML() (any, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v, nil
	}
	return math.Round(v*1e4) / 1e4, nil
}

func (r Report) document() document {
	d := document{
		RunID:           r.runID,
		Source:          r.source,
		GeneratedAt:     r.generatedAt,
		SampleSize:      r.descriptives.SampleSize,
		Means:           r.descriptives.Means,
		AgeIntent:       r.descriptives.AgeIntent,
		Interpretation:  r.interpretation,
		Recommendations: r.recommendations,
		Notes:           r.notes,
	}
	for _, t := range r.tests {
		d.Tests = append(d.Tests, testDoc{
			Kind:        t.Kind,
			Name:        t.Name,
			StatLabel:   t.StatLabel,
			Statistic:   jsonFloat(t.Statistic),
			PValue:      jsonFloat(t.PValue),
			Display:     fmt.Sprintf("%s=%s, p=%s", t.StatLabel, fmt4(t.Statistic), fmt4(t.PValue)),
			DF1:         t.DF1,
			DF2:         t.DF2,
			N:           t.N,
			Verdict:     t.Verdict,
			Description: t.Description,
			Degenerate:  t.Degenerate,
		})
	}
	return d
}

// JSON renders indented structured data.
func (r Report) JSON() ([]byte, error) {
	return utils.PrettyJSON(r.document())
}

// YAML renders structured data as YAML.
func (r Report) YAML() ([]byte, error) {
	b, err := yaml.Marshal(r.document())
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}
	return b, nil
}
