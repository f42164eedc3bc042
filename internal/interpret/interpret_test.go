package interpret

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/KaramelBytes/channelstat/internal/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubGenerator struct {
	text   string
	err    error
	delay  time.Duration
	model  string
	prompt string
	calls  int
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.calls++
	s.prompt = prompt
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.text, s.err
}

func (s *stubGenerator) Model() string { return s.model }

func summary(dI, oI float64) Summary {
	return Summary{
		Source: "survey.csv",
		Descriptives: analysis.Descriptives{
			SampleSize: 10,
			Means:      analysis.Means{DigitalIntent: dI, OfflineIntent: oI, DigitalTrust: 3, OfflineTrust: 4},
			AgeIntent: []analysis.GroupMean{
				{Group: "18-30", N: 5, DigitalIntent: 4.6},
				{Group: "50+", N: 5, DigitalIntent: 2.1},
			},
		},
		Results: analysis.Results{
			Intent:        analysis.Result{Name: "Paired T-Test: Purchase Intent", PValue: 0.0123, Verdict: analysis.VerdictSignificant},
			Trust:         analysis.Result{Name: "Paired T-Test: Brand Trust", PValue: 0.4, Verdict: analysis.VerdictNotSignificant},
			AgeIntent:     analysis.Result{Name: "One-Way ANOVA: Age vs Digital Intent", PValue: 1, Verdict: analysis.VerdictInsufficientGroups},
			AgePreference: analysis.Result{Name: "Chi-Square: Age vs Channel Preference", PValue: 0.2, Verdict: analysis.VerdictNotSignificant},
		},
	}
}

func TestBuildPromptContainsFindings(t *testing.T) {
	p := BuildPrompt(summary(4.2, 3.1))
	assert.Contains(t, p, "Sample size (N): 10")
	assert.Contains(t, p, "digital intent: 4.2000")
	assert.Contains(t, p, "offline intent: 3.1000")
	assert.Contains(t, p, "p-value 0.0123")
	assert.Contains(t, p, "insufficient groups")
	assert.Contains(t, p, "18-30 4.6000 (n=5)")
}

func TestComposerUsesAI(t *testing.T) {
	gen := &stubGenerator{text: "  Digital wins.  ", model: "test-model"}
	c := NewComposer(NewAIInterpreter(gen, nil))
	out := c.Compose(context.Background(), summary(4.2, 3.1))
	assert.Equal(t, ProvenanceAI, out.Provenance)
	assert.True(t, out.IsAI())
	assert.Equal(t, "Digital wins.", out.Text)
	assert.Equal(t, "test-model", out.Model)
	assert.Equal(t, 1, gen.calls)
	assert.Contains(t, gen.prompt, "[TEST RESULTS]")
}

func TestComposerFallsBackOnError(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	gen := &stubGenerator{err: errors.New("503 upstream")}
	c := NewComposer(NewAIInterpreter(gen, nil), WithLogger(zap.New(core)))
	out := c.Compose(context.Background(), summary(4.2, 3.1))

	assert.Equal(t, ProvenanceFallback, out.Provenance)
	assert.True(t, strings.HasPrefix(out.Text, FallbackLabel))
	assert.Contains(t, out.Text, "Digital channel is favored")
	assert.Contains(t, out.Reason, "503 upstream")
	assert.Equal(t, 1, gen.calls, "single attempt")
	assert.Equal(t, 1, logs.Len())
}

func TestComposerFallsBackOnBlankOutput(t *testing.T) {
	c := NewComposer(NewAIInterpreter(&stubGenerator{text: " \n "}, nil))
	out := c.Compose(context.Background(), summary(2, 3))
	assert.Equal(t, ProvenanceFallback, out.Provenance)
	assert.Contains(t, out.Text, "Offline channel is favored")
	assert.Contains(t, out.Reason, "empty generation")
}

func TestComposerTimeout(t *testing.T) {
	gen := &stubGenerator{text: "late", delay: time.Second}
	c := NewComposer(NewAIInterpreter(gen, nil), WithTimeout(20*time.Millisecond))
	start := time.Now()
	out := c.Compose(context.Background(), summary(4, 4))
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Equal(t, ProvenanceFallback, out.Provenance)
	assert.Contains(t, out.Text, "Neither channel is favored")
	assert.Contains(t, out.Reason, context.DeadlineExceeded.Error())
}

func TestComposerWithoutPrimary(t *testing.T) {
	c := NewComposer(nil, WithUnavailableReason("no API key configured"))
	out := c.Compose(context.Background(), summary(4.2, 3.1))
	assert.Equal(t, ProvenanceFallback, out.Provenance)
	assert.Equal(t, "no API key configured", out.Reason)
}

func TestAIInterpreterWrapsErrors(t *testing.T) {
	_, err := NewAIInterpreter(&stubGenerator{err: errors.New("boom")}, nil).Interpret(context.Background(), summary(1, 2))
	var ese *ExternalServiceError
	require.True(t, errors.As(err, &ese))
	assert.EqualError(t, ese.Unwrap(), "boom")

	_, err = NewAIInterpreter(nil, nil).Interpret(context.Background(), summary(1, 2))
	require.True(t, errors.As(err, &ese))
}

func TestFallbackMentionsSignificance(t *testing.T) {
	out, err := LocalFallbackInterpreter{}.Interpret(context.Background(), summary(4.2, 3.1))
	require.NoError(t, err)
	assert.Contains(t, out.Text, "statistically significant")
	assert.Contains(t, out.Text, "4.2000")
	assert.NotContains(t, out.Text, "not statistically")
}

func TestRecommend(t *testing.T) {
	recs := Recommend(summary(4.5, 3.0).Descriptives)
	require.Len(t, recs, 4)
	assert.Equal(t, "Channel Optimization", recs[0].Title)
	assert.Contains(t, recs[0].Text, "50.0% higher")
	assert.Contains(t, recs[1].Text, "digital trust gap")
	assert.Contains(t, recs[2].Text, "the 18-30 segment")
	assert.Contains(t, recs[3].Text, "Online-Led Hybrid Model")
	assert.Contains(t, recs[3].Text, "N=10")

	flat := summary(3, 3).Descriptives
	flat.Means.DigitalTrust, flat.Means.OfflineTrust = 3.2, 3.0
	flat.AgeIntent = []analysis.GroupMean{{Group: "a", DigitalIntent: 3}, {Group: "b", DigitalIntent: 3.4}}
	recs = Recommend(flat)
	assert.Contains(t, recs[0].Text, "parity")
	assert.Contains(t, recs[1].Text, "stable")
	assert.Contains(t, recs[2].Text, "uniformity")
	assert.Contains(t, recs[3].Text, "Offline-Led")
}

func TestRelativeGapFloorsDenominator(t *testing.T) {
	assert.InDelta(t, 100.0, relativeGap(2, 0.5), 1e-9)
	assert.InDelta(t, 50.0, relativeGap(3, 2), 1e-9)
}
