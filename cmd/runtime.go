package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/KaramelBytes/channelstat/internal/ai"
	cfgpkg "github.com/KaramelBytes/channelstat/internal/config"
	"github.com/KaramelBytes/channelstat/internal/interpret"
	"go.uber.org/zap"
)

// resolveProvider prefers the flag, then config, then OpenRouter.
func resolveProvider(c *cfgpkg.Global, flag string) string {
	p := strings.ToLower(strings.TrimSpace(flag))
	if p == "" {
		p = strings.ToLower(strings.TrimSpace(c.DefaultProvider))
	}
	if p == "" {
		p = ai.ProviderOpenRouter
	}
	return p
}

// buildRuntime creates the runtime for provider from config. The API key is
// only ever read from configuration.
func buildRuntime(c *cfgpkg.Global, provider string) (ai.Runtime, error) {
	httpTimeout := time.Duration(c.HTTPTimeoutSec) * time.Second
	if ai.IsLocal(provider) && c.OllamaTimeoutSec > 0 {
		httpTimeout = time.Duration(c.OllamaTimeoutSec) * time.Second
	}
	rt, ok := ai.GetRuntime(provider, ai.RuntimeConfig{
		HTTPTimeout: httpTimeout,
		RetryMax:    c.RetryMaxAttempts,
		BaseDelay:   time.Duration(c.RetryBaseDelayMs) * time.Millisecond,
		MaxDelay:    time.Duration(c.RetryMaxDelayMs) * time.Millisecond,
		APIKey:      c.ResolveAPIKey(provider),
		Host:        c.OllamaHost,
	})
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s (available: %s)", provider, strings.Join(ai.Providers(), ", "))
	}
	return rt, nil
}

// buildComposer wires the AI interpreter when it is enabled and reachable.
// Every failure here degrades to a fallback-only composer carrying the reason.
func buildComposer(ctx context.Context, c *cfgpkg.Global, o analyzeOptions) *interpret.Composer {
	timeout := time.Duration(c.AITimeoutSec) * time.Second
	if o.TimeoutSec > 0 {
		timeout = time.Duration(o.TimeoutSec) * time.Second
	}
	opts := []interpret.Option{interpret.WithLogger(logger), interpret.WithTimeout(timeout)}
	fallback := func(reason string) *interpret.Composer {
		return interpret.NewComposer(nil, append(opts, interpret.WithUnavailableReason(reason))...)
	}

	if o.NoAI {
		return fallback("AI interpretation disabled (--no-ai)")
	}
	if !c.AIEnabled {
		return fallback("AI interpretation disabled (ai_enabled=false)")
	}
	provider := resolveProvider(c, o.Provider)
	if !ai.IsLocal(provider) && c.ResolveAPIKey(provider) == "" {
		return fallback(fmt.Sprintf("no API key configured for %s (set %s_API_KEY)", provider, cfgpkg.EnvPrefix))
	}
	rt, err := buildRuntime(c, provider)
	if err != nil {
		return fallback(err.Error())
	}

	preferred := o.Model
	if preferred == "" {
		preferred = c.DefaultModel
	}
	nctx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		nctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	model, err := ai.Negotiate(nctx, rt, provider, preferred)
	if err != nil {
		logger.Warn("model negotiation failed", zap.String("provider", provider), zap.Error(err))
		reason := fmt.Sprintf("model negotiation failed: %v", err)
		if h := ai.Hint(err); h != "" {
			reason += " (" + h + ")"
		}
		return fallback(reason)
	}
	logger.Debug("model negotiated", zap.String("provider", provider), zap.String("model", model))

	gen := ai.NewGenerator(rt, model, ai.GeneratorOptions{
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
		System:      interpret.SystemPrompt,
		Logger:      logger,
	})
	return interpret.NewComposer(interpret.NewAIInterpreter(gen, logger), opts...)
}
