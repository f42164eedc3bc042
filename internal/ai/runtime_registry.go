package ai

import (
	"net/http"
	"sort"
	"time"
)

// RuntimeFactory builds a Runtime from the generic config below.
type RuntimeFactory func(RuntimeConfig) Runtime

// RuntimeConfig carries common knobs used by runtimes.
type RuntimeConfig struct {
	HTTPTimeout time.Duration
	// RetryMax is the total number of attempts; 0 means one.
	RetryMax  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
	// APIKey is used by remote providers.
	APIKey string
	// Host is the Ollama endpoint.
	Host string
}

var registry = map[string]RuntimeFactory{}

// RegisterRuntime registers a provider name with its factory.
func RegisterRuntime(name string, f RuntimeFactory) { registry[name] = f }

// GetRuntime creates a Runtime for the given provider if registered.
// Vendor aliases resolve to the OpenRouter runtime and "local" to Ollama.
func GetRuntime(name string, cfg RuntimeConfig) (Runtime, bool) {
	if f, ok := registry[canonicalProvider(name)]; ok {
		return f(cfg), true
	}
	return nil, false
}

// Providers lists registered runtime names.
func Providers() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// IsLocal reports whether provider runs without a credential.
func IsLocal(provider string) bool { return canonicalProvider(provider) == ProviderOllama }

func init() {
	RegisterRuntime(ProviderOpenRouter, func(c RuntimeConfig) Runtime {
		return NewClient(c.APIKey, c.HTTPTimeout, c.RetryMax, c.BaseDelay, c.MaxDelay)
	})
	RegisterRuntime(ProviderOllama, func(c RuntimeConfig) Runtime {
		return NewOllamaClient(c.Host, c.HTTPTimeout, c.RetryMax, c.BaseDelay, c.MaxDelay)
	})
	RegisterRuntime(ProviderGemini, func(c RuntimeConfig) Runtime {
		timeout := c.HTTPTimeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		return NewGeminiClient(c.APIKey, &http.Client{Timeout: timeout})
	})
}
