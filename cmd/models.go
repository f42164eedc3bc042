package cmd

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/KaramelBytes/channelstat/internal/ai"
	"github.com/KaramelBytes/channelstat/internal/utils"
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Inspect the model catalog and negotiate a model with a provider",
	Example: `  channelstat models show
  channelstat models show --provider gemini
  channelstat models sync --file ./models.json
  channelstat models negotiate --provider ollama --list`,
}

var modelsShowProvider string

var modelsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current model catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := ai.Catalog()
		if modelsShowProvider != "" {
			preset, ok := ai.PresetCatalog(modelsShowProvider)
			if !ok {
				return fmt.Errorf("unknown provider: %s", modelsShowProvider)
			}
			cat = preset
		}
		// encoding/json sorts map keys
		b, err := utils.PrettyJSON(cat)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return nil
	},
}

var syncPath string

var modelsSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Merge model pricing from a JSON file into the catalog",
	Long: `Merges a JSON catalog into the in-memory catalog and prints the result.
Set models_catalog_path to apply the same file on every run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if syncPath == "" {
			return fmt.Errorf("--file is required")
		}
		m, err := ai.LoadCatalogFromJSON(syncPath)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		ai.MergeCatalog(m)
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Merged %d model(s) from %s\n", len(m), syncPath)
		return nil
	},
}

var (
	negProvider string
	negModel    string
	negList     bool
)

var modelsNegotiateCmd = &cobra.Command{
	Use:   "negotiate",
	Short: "Ask the provider which models it offers and pick one",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		provider := resolveProvider(c, negProvider)
		rt, err := buildRuntime(c, provider)
		if err != nil {
			return err
		}
		timeout := time.Duration(c.AITimeoutSec) * time.Second
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		out := cmd.OutOrStdout()
		if negList {
			lister, ok := rt.(ai.ModelLister)
			if !ok {
				return fmt.Errorf("provider %s cannot list models", provider)
			}
			names, err := lister.ListModels(ctx)
			if err != nil {
				return err
			}
			sort.Strings(names)
			for _, n := range names {
				fmt.Fprintln(out, n)
			}
		}
		preferred := negModel
		if preferred == "" {
			preferred = c.DefaultModel
		}
		model, err := ai.Negotiate(ctx, rt, provider, preferred)
		if err != nil {
			if h := ai.Hint(err); h != "" {
				return fmt.Errorf("%w (%s)", err, h)
			}
			return err
		}
		fmt.Fprintf(out, "✓ %s: %s\n", provider, model)
		if info, ok := ai.LookupModel(model); ok && info.InputPerK > 0 {
			fmt.Fprintf(out, "  pricing: $%.5f in / $%.5f out per 1K tokens\n", info.InputPerK, info.OutputPerK)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
	modelsCmd.AddCommand(modelsShowCmd)
	modelsCmd.AddCommand(modelsSyncCmd)
	modelsCmd.AddCommand(modelsNegotiateCmd)

	modelsShowCmd.Flags().StringVar(&modelsShowProvider, "provider", "", "show only the built-in preset for a provider")
	modelsSyncCmd.Flags().StringVar(&syncPath, "file", "", "path to JSON catalog file")
	modelsNegotiateCmd.Flags().StringVar(&negProvider, "provider", "", "provider to ask (default from config)")
	modelsNegotiateCmd.Flags().StringVar(&negModel, "model", "", "preferred model (default from config)")
	modelsNegotiateCmd.Flags().BoolVar(&negList, "list", false, "also print every model the provider offers")
}
