package ai

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

// GeneratorOptions shape every request a Generator sends.
type GeneratorOptions struct {
	MaxTokens   int
	Temperature float64
	// System is sent as the system message when non-empty.
	System string
	Logger *zap.Logger
}

// Generator binds a runtime to one negotiated model and exposes a plain
// prompt-in, text-out call.
type Generator struct {
	rt    Runtime
	model string
	opt   GeneratorOptions
}

// NewGenerator returns a Generator for model on rt.
func NewGenerator(rt Runtime, model string, opt GeneratorOptions) *Generator {
	if opt.Logger == nil {
		opt.Logger = zap.NewNop()
	}
	return &Generator{rt: rt, model: model, opt: opt}
}

// Model returns the negotiated model name.
func (g *Generator) Model() string { return g.model }

// Generate sends prompt and returns the first choice's text.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.rt == nil {
		return "", errors.New("no runtime configured")
	}
	msgs := make([]Message, 0, 2)
	if s := strings.TrimSpace(g.opt.System); s != "" {
		msgs = append(msgs, Message{Role: "system", Content: s})
	}
	msgs = append(msgs, Message{Role: "user", Content: prompt})

	resp, err := g.rt.Generate(ctx, GenerateRequest{
		Model:       g.model,
		Messages:    msgs,
		MaxTokens:   g.opt.MaxTokens,
		Temperature: g.opt.Temperature,
	})
	if err != nil {
		return "", err
	}
	fields := []zap.Field{
		zap.String("model", g.model),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	}
	if resp.RequestID != "" {
		fields = append(fields, zap.String("request_id", resp.RequestID))
	}
	if cost, ok := EstimateCostUSD(g.model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens); ok {
		fields = append(fields, zap.Float64("est_cost_usd", cost))
	}
	g.opt.Logger.Debug("generation complete", fields...)
	return resp.Text(), nil
}
