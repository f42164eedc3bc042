package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KaramelBytes/channelstat/internal/ai"
	cfgpkg "github.com/KaramelBytes/channelstat/internal/config"
	"github.com/KaramelBytes/channelstat/internal/report"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set channelstat configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		out := cmd.OutOrStdout()
		provider := resolveProvider(c, "")
		fmt.Fprintf(out, "api_key: %s\n", cfgpkg.Mask(c.ResolveAPIKey(provider)))
		fmt.Fprintf(out, "default_provider: %s\n", provider)
		fmt.Fprintf(out, "default_model: %s\n", c.DefaultModel)
		fmt.Fprintf(out, "max_tokens: %d\n", c.MaxTokens)
		fmt.Fprintf(out, "temperature: %.3f\n", c.Temperature)
		fmt.Fprintf(out, "ai_enabled: %t\n", c.AIEnabled)
		fmt.Fprintf(out, "ai_timeout_sec: %d\n", c.AITimeoutSec)
		fmt.Fprintf(out, "http_timeout_sec: %d\n", c.HTTPTimeoutSec)
		fmt.Fprintf(out, "retry_max_attempts: %d\n", c.RetryMaxAttempts)
		if ai.IsLocal(provider) {
			fmt.Fprintf(out, "ollama_host: %s\n", c.OllamaHost)
		}
		if c.ModelsCatalogPath != "" {
			fmt.Fprintf(out, "models_catalog_path: %s\n", c.ModelsCatalogPath)
		}
		fmt.Fprintf(out, "output_format: %s\n", c.OutputFormat)
		if c.SourcePath != "" {
			fmt.Fprintf(out, "source_path: %s\n", c.SourcePath)
		}
		if c.SourceDSN != "" {
			fmt.Fprintf(out, "source_dsn: %s\n", maskDSN(c.SourceDSN))
		}
		fmt.Fprintf(out, "source_table: %s\n", c.SourceTable)
		fmt.Fprintf(out, "server_addr: %s\n", c.ServerAddr)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		if err := setConfigValue(c, args[0], args[1]); err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Saved config")
		return nil
	},
}

func setConfigValue(c *cfgpkg.Global, key, val string) error {
	switch key {
	case "api_key":
		c.APIKey = val
	case "default_model":
		c.DefaultModel = val
	case "default_provider":
		p := strings.ToLower(strings.TrimSpace(val))
		if _, ok := ai.GetRuntime(p, ai.RuntimeConfig{}); !ok {
			return fmt.Errorf("invalid default_provider: %s (use %s)", val, strings.Join(ai.Providers(), ", "))
		}
		c.DefaultProvider = p
	case "max_tokens", "ai_timeout_sec", "http_timeout_sec", "retry_max_attempts", "ollama_timeout_sec":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for %s: %v", key, val)
		}
		switch key {
		case "max_tokens":
			c.MaxTokens = i
		case "ai_timeout_sec":
			c.AITimeoutSec = i
		case "http_timeout_sec":
			c.HTTPTimeoutSec = i
		case "retry_max_attempts":
			c.RetryMaxAttempts = i
		case "ollama_timeout_sec":
			c.OllamaTimeoutSec = i
		}
	case "temperature":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("invalid float for temperature: %v", val)
		}
		c.Temperature = f
	case "ai_enabled":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for ai_enabled: %v", val)
		}
		c.AIEnabled = b
	case "ollama_host":
		c.OllamaHost = val
	case "models_catalog_path":
		c.ModelsCatalogPath = val
	case "output_format":
		f, err := report.ParseFormat(val)
		if err != nil {
			return err
		}
		c.OutputFormat = string(f)
	case "source_path":
		c.SourcePath = val
	case "source_dsn":
		c.SourceDSN = val
	case "source_table":
		c.SourceTable = val
	case "server_addr":
		c.ServerAddr = val
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

// maskDSN hides the password of a postgres:// URL.
func maskDSN(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	scheme := strings.Index(dsn, "://")
	if at < 0 || scheme < 0 {
		return dsn
	}
	userinfo := dsn[scheme+3 : at]
	if i := strings.Index(userinfo, ":"); i >= 0 {
		return dsn[:scheme+3] + userinfo[:i] + ":" + cfgpkg.Mask(userinfo[i+1:]) + dsn[at:]
	}
	return dsn
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
