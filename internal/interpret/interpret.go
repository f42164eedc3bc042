package interpret

import (
	"context"
	"fmt"

	"github.com/KaramelBytes/channelstat/internal/analysis"
)

// Provenance says where an interpretation came from.
type Provenance string

const (
	ProvenanceAI       Provenance = "ai"
	ProvenanceFallback Provenance = "fallback"
)

// Summary is everything an interpreter may look at.
type Summary struct {
	Source       string
	Descriptives analysis.Descriptives
	Results      analysis.Results
}

// Interpretation is the narrative attached to a report.
type Interpretation struct {
	Text       string     `json:"text" yaml:"text"`
	Provenance Provenance `json:"provenance" yaml:"provenance"`
	Model      string     `json:"model,omitempty" yaml:"model,omitempty"`
	// Reason explains why the fallback was used.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// IsAI reports whether the text was generated by the external service.
func (i Interpretation) IsAI() bool { return i.Provenance == ProvenanceAI }

// Interpreter turns a Summary into narrative text.
type Interpreter interface {
	Interpret(ctx context.Context, s Summary) (Interpretation, error)
}

// Generator is the text-generation capability used by AIInterpreter.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ExternalServiceError wraps a failed or unusable generation.
type ExternalServiceError struct {
	Err error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("external service: %v", e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }
