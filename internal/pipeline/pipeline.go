// Package pipeline wires loading, normalization, testing, interpretation and
// report assembly into one run.
package pipeline

import (
	"context"
	"fmt"

	"github.com/KaramelBytes/channelstat/internal/analysis"
	"github.com/KaramelBytes/channelstat/internal/interpret"
	"github.com/KaramelBytes/channelstat/internal/report"
	"github.com/KaramelBytes/channelstat/internal/source"
	"github.com/KaramelBytes/channelstat/internal/survey"
	"go.uber.org/zap"
)

// Options carries the collaborators of a run. Zero values are usable: the
// engine logs nowhere and the composer always uses the local fallback.
type Options struct {
	Engine    *analysis.Engine
	Composer  *interpret.Composer
	Logger    *zap.Logger
	Normalize survey.Options
}

// Load reads and normalizes src. Load failures and *survey.MissingColumnError
// are the only errors a run returns.
func Load(ctx context.Context, src source.Source, opt survey.Options) (*survey.Dataset, error) {
	tbl, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	ds, err := survey.NormalizeWithOptions(tbl, opt)
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", tbl.Name, err)
	}
	return ds, nil
}

// Run produces a report for src.
func Run(ctx context.Context, src source.Source, opt Options) (report.Report, error) {
	logger := opt.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ds, err := Load(ctx, src, opt.Normalize)
	if err != nil {
		return report.Report{}, err
	}
	logger.Debug("dataset loaded",
		zap.String("source", ds.Name),
		zap.Int("rows", ds.Len()),
		zap.Int("coerced", ds.Coerced))
	return Analyze(ctx, ds, opt), nil
}

// Analyze runs the tests and the interpretation on an already-normalized dataset.
func Analyze(ctx context.Context, ds *survey.Dataset, opt Options) report.Report {
	engine := opt.Engine
	if engine == nil {
		engine = analysis.NewEngine(opt.Logger)
	}
	composer := opt.Composer
	if composer == nil {
		composer = interpret.NewComposer(nil, interpret.WithLogger(opt.Logger))
	}

	desc := analysis.Describe(ds)
	results := engine.Run(ds)
	interp := composer.Compose(ctx, interpret.Summary{Source: ds.Name, Descriptives: desc, Results: results})

	notes := append([]string(nil), ds.Notes...)
	for _, r := range results.Ordered() {
		if r.Degraded() {
			notes = append(notes, fmt.Sprintf("%s: %s", r.Name, r.Verdict))
		}
	}
	return report.Assemble(report.Input{
		Source:          ds.Name,
		Descriptives:    desc,
		Results:         results,
		Interpretation:  interp,
		Recommendations: interpret.Recommend(desc),
		Notes:           notes,
	})
}
