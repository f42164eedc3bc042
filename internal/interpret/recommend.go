package interpret

import (
	"fmt"
	"math"

	"github.com/KaramelBytes/channelstat/internal/analysis"
)

// Thresholds for the strategic rules, in Likert points.
const (
	trustGapMargin      = 0.5
	demographicSkewGate = 0.5
)

// Recommendation is one deterministic strategy card.
type Recommendation struct {
	Title string `json:"title" yaml:"title"`
	Text  string `json:"text" yaml:"text"`
}

// Recommend derives strategy cards from the descriptive summary.
func Recommend(d analysis.Descriptives) []Recommendation {
	m := d.Means
	return []Recommendation{
		channelOptimization(m),
		trustIntegrity(m),
		demographicStrategy(d.AgeIntent),
		coreVerdict(d.SampleSize, m),
	}
}

func channelOptimization(m analysis.Means) Recommendation {
	r := Recommendation{Title: "Channel Optimization"}
	switch {
	case m.DigitalIntent > m.OfflineIntent:
		r.Text = fmt.Sprintf("Digital intent is currently %.1f%% higher than offline. "+
			"Recommendation: reallocate 15%% of billboard budget to social performance ads.",
			relativeGap(m.DigitalIntent, m.OfflineIntent))
	case m.OfflineIntent > m.DigitalIntent:
		r.Text = fmt.Sprintf("Offline channels are outperforming digital by %.1f%%. "+
			"Focus on high-traffic physical locations and experiential pop-ups.",
			relativeGap(m.OfflineIntent, m.DigitalIntent))
	default:
		r.Text = "Both channels are at total parity. Maintain current balanced spending."
	}
	return r
}

// relativeGap is the percentage by which a exceeds b, with b floored at 1.
func relativeGap(a, b float64) float64 {
	return (a/math.Max(b, 1) - 1) * 100
}

func trustIntegrity(m analysis.Means) Recommendation {
	r := Recommendation{Title: "Trust Integrity"}
	switch {
	case m.OfflineTrust > m.DigitalTrust+trustGapMargin:
		r.Text = "A significant digital trust gap exists. Use offline media for high-credibility claims and digital for broad awareness only."
	case m.DigitalTrust > m.OfflineTrust+trustGapMargin:
		r.Text = "Digital trust has surpassed physical. Leverage influencer-led social proof as your primary credibility driver."
	default:
		r.Text = "Trust levels are stable across mediums. Complex products can launch on both channels with equal reliability."
	}
	return r
}

func demographicStrategy(groups []analysis.GroupMean) Recommendation {
	r := Recommendation{Title: "Demographic Strategy"}
	if len(groups) < 2 {
		r.Text = "Not enough age groups to assess demographic skew."
		return r
	}
	hi, lo := groups[0], groups[0]
	for _, g := range groups[1:] {
		if g.DigitalIntent > hi.DigitalIntent {
			hi = g
		}
		if g.DigitalIntent < lo.DigitalIntent {
			lo = g
		}
	}
	if hi.DigitalIntent-lo.DigitalIntent > demographicSkewGate {
		r.Text = fmt.Sprintf("Heavy demographic skew: the %s segment is your primary driver for digital adoption "+
			"(mean digital intent %.2f vs %.2f for %s). Create a separate mobile-native funnel for this cohort.",
			hi.Group, hi.DigitalIntent, lo.DigitalIntent, lo.Group)
		return r
	}
	r.Text = "Demographic uniformity: the strategy resonates equally across age groups. A unified brand voice is recommended."
	return r
}

func coreVerdict(n int, m analysis.Means) Recommendation {
	lead, push := "Offline-Led", "Offline"
	if m.DigitalIntent > m.OfflineIntent {
		lead, push = "Online-Led", "Digital"
	}
	anchor := "leverage digital transparency to maintain credibility"
	if m.OfflineTrust > m.DigitalTrust {
		anchor = "leverage physical touchpoints to anchor brand trust"
	}
	return Recommendation{
		Title: "Core Strategic Verdict",
		Text: fmt.Sprintf("Based on the current dataset (N=%d), we recommend an %s Hybrid Model: %s, and use %s for the final conversion push.",
			n, lead, anchor, push),
	}
}
