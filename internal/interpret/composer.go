package interpret

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds a single AI interpretation.
const DefaultTimeout = 30 * time.Second

// Composer picks between the AI interpreter and the local fallback.
type Composer struct {
	primary     Interpreter
	fallback    LocalFallbackInterpreter
	timeout     time.Duration
	logger      *zap.Logger
	unavailable string
}

// Option configures a Composer.
type Option func(*Composer)

// WithTimeout sets the per-call deadline for the primary interpreter.
func WithTimeout(d time.Duration) Option {
	return func(c *Composer) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used for fallback warnings.
func WithLogger(l *zap.Logger) Option {
	return func(c *Composer) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithUnavailableReason records why no primary interpreter is configured.
func WithUnavailableReason(reason string) Option {
	return func(c *Composer) { c.unavailable = reason }
}

// NewComposer returns a Composer. primary may be nil, in which case every
// interpretation comes from the local fallback.
func NewComposer(primary Interpreter, opts ...Option) *Composer {
	c := &Composer{
		primary:     primary,
		fallback:    LocalFallbackInterpreter{},
		timeout:     DefaultTimeout,
		logger:      zap.NewNop(),
		unavailable: "AI interpretation disabled",
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Compose always returns an interpretation. Failures of the primary are logged
// and replaced by the fallback with the failure as Reason.
func (c *Composer) Compose(ctx context.Context, s Summary) Interpretation {
	if c.primary == nil {
		return c.useFallback(ctx, s, c.unavailable)
	}
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.primary.Interpret(callCtx, s)
	if err == nil && out.Text != "" {
		if out.Provenance == "" {
			out.Provenance = ProvenanceAI
		}
		return out
	}
	if err == nil {
		err = &ExternalServiceError{Err: errors.New("empty interpretation")}
	}
	var ese *ExternalServiceError
	if !errors.As(err, &ese) {
		err = &ExternalServiceError{Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		c.logger.Warn("AI interpretation timed out, using local fallback", zap.Duration("timeout", c.timeout))
	} else {
		c.logger.Warn("AI interpretation failed, using local fallback", zap.Error(err))
	}
	return c.useFallback(ctx, s, err.Error())
}

func (c *Composer) useFallback(ctx context.Context, s Summary, reason string) Interpretation {
	out, _ := c.fallback.Interpret(ctx, s)
	out.Provenance = ProvenanceFallback
	out.Reason = reason
	return out
}
