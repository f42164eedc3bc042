package interpret

import (
	"context"
	"errors"
	"strings"

	"github.com/KaramelBytes/channelstat/internal/utils"
	"go.uber.org/zap"
)

// AIInterpreter asks a Generator to interpret the findings.
type AIInterpreter struct {
	gen    Generator
	logger *zap.Logger
	// MaxPromptTokens truncates oversized prompts; 0 disables.
	MaxPromptTokens int
}

// NewAIInterpreter wraps gen. A nil logger discards output.
func NewAIInterpreter(gen Generator, logger *zap.Logger) *AIInterpreter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AIInterpreter{gen: gen, logger: logger}
}

// Interpret calls the generator once. Transport failures and blank output are
// returned as *ExternalServiceError.
func (a *AIInterpreter) Interpret(ctx context.Context, s Summary) (Interpretation, error) {
	if a.gen == nil {
		return Interpretation{}, &ExternalServiceError{Err: errors.New("no generator configured")}
	}
	prompt := BuildPrompt(s)
	if a.MaxPromptTokens > 0 && utils.CountTokens(prompt) > a.MaxPromptTokens {
		prompt = utils.TruncateToTokenLimit(prompt, a.MaxPromptTokens)
	}
	a.logger.Debug("requesting interpretation", zap.Int("prompt_tokens", utils.CountTokens(prompt)))

	text, err := a.gen.Generate(ctx, prompt)
	if err != nil {
		return Interpretation{}, &ExternalServiceError{Err: err}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Interpretation{}, &ExternalServiceError{Err: errors.New("empty generation")}
	}
	out := Interpretation{Text: text, Provenance: ProvenanceAI}
	if m, ok := a.gen.(interface{ Model() string }); ok {
		out.Model = m.Model()
	}
	return out, nil
}
