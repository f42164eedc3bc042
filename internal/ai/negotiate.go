package ai

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoModels is returned when a runtime lists nothing usable.
var ErrNoModels = errors.New("runtime offers no models")

// negotiationTiers is the order in which catalog recommendations are tried.
var negotiationTiers = []string{"balanced", "high-context", "cheap"}

// Negotiate picks the model to use with rt. It runs once per process:
// preferred when the runtime offers it, else the first tier recommendation
// that is offered, else the first listed model. Runtimes that cannot list
// models get preferred, or the balanced recommendation when preferred is empty.
func Negotiate(ctx context.Context, rt Runtime, provider, preferred string) (string, error) {
	lister, ok := rt.(ModelLister)
	if !ok {
		return fallbackModel(provider, preferred)
	}
	available, err := lister.ListModels(ctx)
	if err != nil {
		return "", fmt.Errorf("list models: %w", err)
	}
	if len(available) == 0 {
		return "", ErrNoModels
	}
	offered := make(map[string]bool, len(available))
	for _, m := range available {
		offered[m] = true
	}
	if preferred != "" && offered[preferred] {
		return preferred, nil
	}
	for _, tier := range negotiationTiers {
		if m, ok := RecommendModel(provider, tier); ok && offered[m] {
			return m, nil
		}
	}
	return available[0], nil
}

func fallbackModel(provider, preferred string) (string, error) {
	if preferred != "" {
		return preferred, nil
	}
	if m, ok := RecommendModel(provider, "balanced"); ok {
		return m, nil
	}
	return "", fmt.Errorf("no model configured for provider %q", provider)
}
