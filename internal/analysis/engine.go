package analysis

import (
	"errors"

	"github.com/KaramelBytes/channelstat/internal/survey"
	"go.uber.org/zap"
)

// Results holds the four tests in presentation order.
type Results struct {
	Intent        Result `json:"intent" yaml:"intent"`
	Trust         Result `json:"trust" yaml:"trust"`
	AgeIntent     Result `json:"age_intent" yaml:"age_intent"`
	AgePreference Result `json:"age_preference" yaml:"age_preference"`
}

// Ordered returns the tests as Intent, Trust, Age/Intent, Age/Preference.
func (r Results) Ordered() [4]Result {
	return [4]Result{r.Intent, r.Trust, r.AgeIntent, r.AgePreference}
}

// Engine runs the hypothesis tests. Each test degrades on its own: a failure
// is logged and turned into a neutral result with p = 1.0.
type Engine struct {
	logger *zap.Logger
}

// NewEngine returns an Engine. A nil logger discards output.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Run executes all four tests against ds.
func (e *Engine) Run(ds *survey.Dataset) Results {
	return Results{
		Intent:        e.IntentTest(ds),
		Trust:         e.TrustTest(ds),
		AgeIntent:     e.AgeIntentVariance(ds),
		AgePreference: e.AgePreferenceIndependence(ds),
	}
}

// IntentTest compares digital and offline purchase intent.
func (e *Engine) IntentTest(ds *survey.Dataset) Result {
	base := Result{Kind: KindPaired, Name: "Paired T-Test: Purchase Intent", StatLabel: "t"}
	return e.paired(ds, base, survey.ColDigitalIntent, survey.ColOfflineIntent,
		"High significance in channel impact", "No significant channel-based variance")
}

// TrustTest compares digital and offline brand trust.
func (e *Engine) TrustTest(ds *survey.Dataset) Result {
	base := Result{Kind: KindPaired, Name: "Paired T-Test: Brand Trust", StatLabel: "t"}
	return e.paired(ds, base, survey.ColDigitalTrust, survey.ColOfflineTrust,
		"Reliability differs by medium", "Trust levels are medium-invariant")
}

func (e *Engine) paired(ds *survey.Dataset, base Result, xCol, yCol, sig, notSig string) Result {
	x, err := ds.Metric(xCol)
	if err != nil {
		return e.degrade(base, err)
	}
	y, err := ds.Metric(yCol)
	if err != nil {
		return e.degrade(base, err)
	}
	out, err := PairedTTest(x, y)
	if err != nil {
		return e.degrade(base, err)
	}
	return e.complete(base, out, sig, notSig)
}

// AgeIntentVariance runs a one-way ANOVA of digital intent across age groups.
func (e *Engine) AgeIntentVariance(ds *survey.Dataset) Result {
	base := Result{Kind: KindVariance, Name: "One-Way ANOVA: Age vs Digital Intent", StatLabel: "F"}
	groups := ageIntentGroups(ds)
	ages := ds.AgeGroups()
	samples := make([][]float64, 0, len(ages))
	for _, a := range ages {
		samples = append(samples, groups[a])
	}
	out, err := OneWayANOVA(samples)
	if err != nil {
		return e.degrade(base, err)
	}
	return e.complete(base, out, "Significant variance across age groups", "No significant variance")
}

// AgePreferenceIndependence runs a chi-square test of age group against channel preference.
func (e *Engine) AgePreferenceIndependence(ds *survey.Dataset) Result {
	base := Result{Kind: KindIndependence, Name: "Chi-Square: Age vs Channel Preference", StatLabel: "Chi2"}
	_, _, counts := CrossTab(ds)
	out, err := ChiSquareIndependence(counts)
	if err != nil {
		return e.degrade(base, err)
	}
	return e.complete(base, out, "Preference is age-dependent", "Preference is age-independent")
}

func (e *Engine) complete(base Result, out Outcome, sig, notSig string) Result {
	res := base
	res.Statistic = out.Statistic
	res.PValue = sanitizeP(out.PValue)
	res.DF1, res.DF2 = out.DF1, out.DF2
	res.N = out.N
	res.Degenerate = out.Degenerate
	res.Verdict = verdictFor(res.PValue)
	res.Description = notSig
	if res.Significant() {
		res.Description = sig
	}
	if out.Degenerate {
		e.logger.Warn("degenerate test input",
			zap.String("test", res.Name),
			zap.Float64("statistic", res.Statistic),
			zap.Float64("p_value", res.PValue))
	}
	return res
}

func (e *Engine) degrade(base Result, err error) Result {
	res := base
	res.PValue = 1.0
	res.Verdict = VerdictInsufficientData
	res.Description = err.Error()
	var ide *InsufficientDataError
	if errors.As(err, &ide) {
		switch ide.Unit {
		case "pairs":
			res.N = ide.Got
		case "groups":
			res.Verdict = VerdictInsufficientGroups
		}
	}
	e.logger.Warn("test degraded", zap.String("test", res.Name), zap.Error(err))
	return res
}
