package report

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/KaramelBytes/channelstat/internal/analysis"
	"github.com/KaramelBytes/channelstat/internal/interpret"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleInput() Input {
	return Input{
		Source: "survey.csv",
		Descriptives: analysis.Descriptives{
			SampleSize: 6,
			Means:      analysis.Means{DigitalIntent: 3.5, OfflineIntent: 3.6666667, DigitalTrust: 3, OfflineTrust: 3.1666667},
			AgeIntent:  []analysis.GroupMean{{Group: "18-25", N: 2, DigitalIntent: 4.5}},
		},
		Results: analysis.Results{
			Intent: analysis.Result{Kind: analysis.KindPaired, Name: "Paired T-Test: Purchase Intent", StatLabel: "t",
				Statistic: -0.5423261, PValue: 0.6108812, N: 6, DF1: 5, Verdict: analysis.VerdictNotSignificant,
				Description: "No significant channel-based variance"},
			Trust: analysis.Result{Kind: analysis.KindPaired, Name: "Paired T-Test: Brand Trust", StatLabel: "t",
				Statistic: math.Inf(1), PValue: 0, N: 6, Verdict: analysis.VerdictSignificant,
				Description: "Reliability differs by medium", Degenerate: true},
			AgeIntent: analysis.Result{Kind: analysis.KindVariance, Name: "One-Way ANOVA: Age vs Digital Intent", StatLabel: "F",
				Statistic: 9.3333333, PValue: 0.0515221, DF1: 2, DF2: 3, N: 6, Verdict: analysis.VerdictNotSignificant,
				Description: "No significant variance"},
			AgePreference: analysis.Result{Kind: analysis.KindIndependence, Name: "Chi-Square: Age vs Channel Preference", StatLabel: "Chi2",
				PValue: 1, Verdict: analysis.VerdictInsufficientData, Description: "Preference is age-independent"},
		},
		Interpretation: interpret.Interpretation{Text: "[Local fallback: not AI-generated] Offline leads.",
			Provenance: interpret.ProvenanceFallback, Reason: "no API key configured"},
		Recommendations: []interpret.Recommendation{{Title: "Channel Optimization", Text: "Offline leads."}},
		Notes:           []string{"3 non-numeric metric value(s) coerced to 0"},
	}
}

func TestAssembleOrderAndIdentity(t *testing.T) {
	in := sampleInput()
	r := Assemble(in)
	assert.NotEmpty(t, r.RunID())
	assert.False(t, r.GeneratedAt().IsZero())
	assert.Equal(t, 6, r.SampleSize())

	tests := r.Tests()
	assert.Equal(t, "Paired T-Test: Purchase Intent", tests[0].Name)
	assert.Equal(t, "Paired T-Test: Brand Trust", tests[1].Name)
	assert.Equal(t, "One-Way ANOVA: Age vs Digital Intent", tests[2].Name)
	assert.Equal(t, "Chi-Square: Age vs Channel Preference", tests[3].Name)

	assert.NotEqual(t, r.RunID(), Assemble(in).RunID())
}

func TestReportIsIsolatedFromCallers(t *testing.T) {
	in := sampleInput()
	r := Assemble(in)
	in.Notes[0] = "changed"
	in.Descriptives.AgeIntent[0].Group = "changed"

	assert.Equal(t, "3 non-numeric metric value(s) coerced to 0", r.Notes()[0])
	assert.Equal(t, "18-25", r.Descriptives().AgeIntent[0].Group)

	notes := r.Notes()
	notes[0] = "mutated"
	assert.NotEqual(t, "mutated", r.Notes()[0])
}

func TestTextFourDecimals(t *testing.T) {
	out := Assemble(sampleInput()).Text()
	assert.Contains(t, out, "Sample Size (N): 6")
	assert.Contains(t, out, "t-statistic: -0.5423")
	assert.Contains(t, out, "p-value: 0.6109")
	assert.Contains(t, out, "F-statistic: 9.3333")
	assert.Contains(t, out, "t-statistic: +Inf")
	assert.Contains(t, out, "Verdict: insufficient data")
	assert.Contains(t, out, "local fallback (not AI-generated)")
	assert.Less(t, strings.Index(out, "Purchase Intent"), strings.Index(out, "Brand Trust"))
	assert.Less(t, strings.Index(out, "ANOVA"), strings.Index(out, "Chi-Square"))
}

func TestMarkdownSections(t *testing.T) {
	in := sampleInput()
	in.Interpretation = interpret.Interpretation{Text: "Digital wins.", Provenance: interpret.ProvenanceAI, Model: "m1"}
	md := Assemble(in).Markdown()
	for _, s := range []string{"[DATASET SUMMARY]", "[MEANS]", "[HYPOTHESIS TESTS]", "[INTERPRETATION: AI-GENERATED (M1)]", "[RECOMMENDATIONS]", "[NOTES]"} {
		assert.Contains(t, md, s)
	}
	assert.Contains(t, md, "| intent | 3.5000 | 3.6667 |")
	assert.NotContains(t, md, "Fallback reason")
}

func TestJSONHandlesNonFinite(t *testing.T) {
	b, err := Render(Assemble(sampleInput()), FormatJSON)
	require.NoError(t, err)
	require.True(t, json.Valid(b), string(b))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))
	tests := doc["tests"].([]any)
	require.Len(t, tests, 4)
	trust := tests[1].(map[string]any)
	assert.Nil(t, trust["statistic"])
	assert.Equal(t, "t=+Inf, p=0.0000", trust["display"])
	assert.Equal(t, 0.6109, tests[0].(map[string]any)["p_value"])
	assert.Equal(t, "fallback", doc["interpretation"].(map[string]any)["provenance"])
}

func TestYAMLAndHTML(t *testing.T) {
	r := Assemble(sampleInput())
	y, err := Render(r, FormatYAML)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(y, &doc))
	assert.Equal(t, 6, doc["sample_size"])

	h, err := Render(r, FormatHTML)
	require.NoError(t, err)
	assert.Contains(t, string(h), "<title>Channel Comparison Report</title>")
	assert.Contains(t, string(h), "<table>")
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "MD": FormatMarkdown, "yml": FormatYAML, "json": FormatJSON, "html": FormatHTML} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("pdf")
	assert.Error(t, err)
	_, err = Render(Report{}, Format("pdf"))
	assert.Error(t, err)
}
