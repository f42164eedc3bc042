package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/channelstat/internal/analysis"
	"github.com/KaramelBytes/channelstat/internal/pipeline"
	"github.com/KaramelBytes/channelstat/internal/report"
	"github.com/KaramelBytes/channelstat/internal/source"
	"github.com/KaramelBytes/channelstat/internal/survey"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type analyzeOptions struct {
	Format     string
	Output     string
	NoAI       bool
	Provider   string
	Model      string
	TimeoutSec int
	SheetName  string
	SheetIndex int
	Delimiter  string
	Decimal    string
	Table      string
}

var anaOpts analyzeOptions

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file|dsn]",
	Short: "Run the channel comparison tests and print a report",
	Long: `Reads a CSV/TSV/XLSX survey export or a Postgres table, runs the four
hypothesis tests and writes a report. Without an argument the configured
source_path or source_dsn is used.`,
	Example: `  channelstat analyze survey.csv
  channelstat analyze survey.xlsx --sheet-name Responses --format markdown
  channelstat analyze survey.csv --no-ai --format json --output report.json
  channelstat analyze postgres://user@localhost/research --table responses`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := ""
		if len(args) == 1 {
			target = args[0]
		}
		return runAnalyze(cmd, target, anaOpts)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	addAnalyzeFlags(analyzeCmd.Flags(), &anaOpts)
}

func addAnalyzeFlags(fs *pflag.FlagSet, o *analyzeOptions) {
	fs.StringVar(&o.Format, "format", "", "output format: text|markdown|json|yaml|html (default from config)")
	fs.StringVarP(&o.Output, "output", "o", "", "write the report to a file instead of stdout")
	fs.BoolVar(&o.NoAI, "no-ai", false, "skip the AI call and use the local interpretation")
	fs.StringVar(&o.Provider, "provider", "", "AI provider: openrouter|ollama|gemini (aliases: openai, anthropic, local)")
	fs.StringVar(&o.Model, "model", "", "preferred model (negotiated against what the provider offers)")
	fs.IntVar(&o.TimeoutSec, "timeout-sec", 0, "AI interpretation timeout in seconds (overrides config)")
	fs.StringVar(&o.SheetName, "sheet-name", "", "XLSX: sheet name to read")
	fs.IntVar(&o.SheetIndex, "sheet-index", 0, "XLSX: 1-based sheet index (used when --sheet-name is empty)")
	fs.StringVar(&o.Delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' | '|' (default from extension)")
	fs.StringVar(&o.Decimal, "decimal", "", "decimal separator for metric cells: '.' | 'comma' (default auto)")
	fs.StringVar(&o.Table, "table", "", "Postgres table for DSN inputs (default from config)")
}

func runAnalyze(cmd *cobra.Command, target string, o analyzeOptions) error {
	c := currentConfig()
	if target == "" {
		target = c.SourcePath
	}
	if target == "" {
		target = c.SourceDSN
	}
	if target == "" {
		return fmt.Errorf("no input given: pass a file or set source_path/source_dsn")
	}

	format := o.Format
	if format == "" {
		format = c.OutputFormat
	}
	f, err := report.ParseFormat(format)
	if err != nil {
		return err
	}
	srcOpt, normOpt, err := inputOptions(o, c.SourceTable)
	if err != nil {
		return err
	}
	src, err := source.Open(target, srcOpt)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	composer := buildComposer(ctx, c, o)
	rep, err := pipeline.Run(ctx, src, pipeline.Options{
		Engine:    analysis.NewEngine(logger),
		Composer:  composer,
		Logger:    logger,
		Normalize: normOpt,
	})
	if err != nil {
		return err
	}
	body, err := report.Render(rep, f)
	if err != nil {
		return err
	}
	return writeReport(cmd.OutOrStdout(), body, o.Output)
}

func inputOptions(o analyzeOptions, defaultTable string) (source.Options, survey.Options, error) {
	srcOpt := source.Options{SheetName: o.SheetName, SheetIndex: o.SheetIndex, Table: o.Table}
	if srcOpt.Table == "" {
		srcOpt.Table = defaultTable
	}
	switch strings.ToLower(o.Delimiter) {
	case "":
	case ",", "comma":
		srcOpt.Delimiter = ','
	case "\t", "tab":
		srcOpt.Delimiter = '\t'
	case ";", "semicolon":
		srcOpt.Delimiter = ';'
	case "|", "pipe":
		srcOpt.Delimiter = '|'
	default:
		return srcOpt, survey.Options{}, fmt.Errorf("unsupported --delimiter: %s", o.Delimiter)
	}

	var normOpt survey.Options
	switch strings.ToLower(strings.TrimSpace(o.Decimal)) {
	case ",", "comma":
		normOpt.DecimalSeparator = ','
	case ".", "dot":
		normOpt.DecimalSeparator = '.'
	case "":
	default:
		return srcOpt, normOpt, fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", o.Decimal)
	}
	return srcOpt, normOpt, nil
}
