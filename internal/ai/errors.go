package ai

import (
	"errors"
	"fmt"
	"time"
)

// AuthError is a 401/403: the key is missing, wrong or lacks access.
type AuthError struct{ *APIError }

func (e *AuthError) Error() string { return "authentication failed: " + e.APIError.Error() }
func (e *AuthError) Unwrap() error { return e.APIError }

// RateLimitError is a 429, with the server's Retry-After when it sent one.
type RateLimitError struct {
	*APIError
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited (retry after %s): %s", e.RetryAfter, e.APIError.Error())
	}
	return "rate limited: " + e.APIError.Error()
}

func (e *RateLimitError) Unwrap() error { return e.APIError }

// ModelNotFoundError means the negotiated model is not served.
type ModelNotFoundError struct{ *APIError }

func (e *ModelNotFoundError) Error() string { return "model not found: " + e.APIError.Error() }
func (e *ModelNotFoundError) Unwrap() error { return e.APIError }

type BadRequestError struct{ *APIError }

func (e *BadRequestError) Error() string { return "bad request: " + e.APIError.Error() }
func (e *BadRequestError) Unwrap() error { return e.APIError }

// QuotaExceededError covers billing and credit exhaustion.
type QuotaExceededError struct{ *APIError }

func (e *QuotaExceededError) Error() string { return "quota exceeded: " + e.APIError.Error() }
func (e *QuotaExceededError) Unwrap() error { return e.APIError }

type ServerError struct{ *APIError }

func (e *ServerError) Error() string { return "provider error: " + e.APIError.Error() }
func (e *ServerError) Unwrap() error { return e.APIError }

// UnreachableError means no connection could be made, typically a stopped Ollama.
type UnreachableError struct {
	Host string
	Err  error
}

func (e *UnreachableError) Error() string {
	if e.Host != "" {
		return fmt.Sprintf("endpoint unreachable at %s: %v", e.Host, e.Err)
	}
	return fmt.Sprintf("endpoint unreachable: %v", e.Err)
}

func (e *UnreachableError) Unwrap() error { return e.Err }

// Hint returns a short remedy for a runtime error, or "" when none applies.
func Hint(err error) string {
	var (
		auth    *AuthError
		rate    *RateLimitError
		model   *ModelNotFoundError
		quota   *QuotaExceededError
		down    *UnreachableError
		missing = errors.Is(err, ErrMissingAPIKey)
	)
	switch {
	case missing, errors.As(err, &auth):
		return "check CHANNELSTAT_API_KEY or the provider's key variable"
	case errors.As(err, &rate):
		return "rate limited; raise --retry-max or try again later"
	case errors.As(err, &model):
		return "run `channelstat models negotiate --list` to see offered models"
	case errors.As(err, &quota):
		return "provider credits exhausted"
	case errors.As(err, &down):
		return "is the runtime running? check ollama_host"
	}
	return ""
}
