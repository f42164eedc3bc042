package ai

import "strings"

// Prices are illustrative USD per 1K tokens, used for cost hints only.
var presets = map[string][]ModelInfo{
	ProviderOpenRouter: {
		{Name: "anthropic/claude-3.5-sonnet", ContextTokens: 200000, InputPerK: 0.003, OutputPerK: 0.015},
		{Name: "anthropic/claude-3-haiku", ContextTokens: 200000, InputPerK: 0.00025, OutputPerK: 0.00125},
		{Name: "openai/gpt-4o-mini", ContextTokens: 128000, InputPerK: 0.0006, OutputPerK: 0.0024},
		{Name: "openai/gpt-4o", ContextTokens: 128000, InputPerK: 0.005, OutputPerK: 0.015},
		{Name: "openai/gpt-4.1-mini", ContextTokens: 128000, InputPerK: 0.0005, OutputPerK: 0.0015},
		{Name: "deepseek/deepseek-r1:free", ContextTokens: 128000},
		{Name: "google/gemini-1.5-flash", ContextTokens: 1000000, InputPerK: 0.0002, OutputPerK: 0.0008},
		{Name: "google/gemini-1.5-pro", ContextTokens: 1000000, InputPerK: 0.00125, OutputPerK: 0.005},
		{Name: "meta-llama/llama-3.1-8b-instruct", ContextTokens: 131072},
		{Name: "meta-llama/llama-3.1-70b-instruct", ContextTokens: 131072},
	},
	// Native names for the Gemini API runtime.
	ProviderGemini: {
		{Name: "gemini-2.0-flash", ContextTokens: 1048576, InputPerK: 0.0001, OutputPerK: 0.0004},
		{Name: "gemini-1.5-flash", ContextTokens: 1000000, InputPerK: 0.0002, OutputPerK: 0.0008},
		{Name: "gemini-1.5-pro", ContextTokens: 2000000, InputPerK: 0.00125, OutputPerK: 0.005},
	},
	ProviderOllama: {
		{Name: "llama3:latest", ContextTokens: 8192},
		{Name: "llama3.1:8b-instruct", ContextTokens: 8192},
		{Name: "llama3.1:70b-instruct", ContextTokens: 8192},
		{Name: "mistral-nemo:latest", ContextTokens: 8192},
		{Name: "mistral:7b-instruct", ContextTokens: 8192},
		{Name: "phi3:mini-4k-instruct", ContextTokens: 4096},
		{Name: "phi3:mini-128k-instruct", ContextTokens: 128000},
	},
}

// canonicalProvider maps CLI aliases onto the catalog keys above.
func canonicalProvider(p string) string {
	switch p {
	case "", ProviderOpenAI, ProviderAnthropic, ProviderGoogle, ProviderMeta, ProviderLlama:
		return ProviderOpenRouter
	case ProviderLocal:
		return ProviderOllama
	}
	return p
}

// PresetCatalog returns a built-in curated catalog for a known provider.
// Vendor names (openai, anthropic, google, meta) select their models on OpenRouter.
func PresetCatalog(provider string) (map[string]ModelInfo, bool) {
	list, ok := presets[canonicalProvider(provider)]
	if !ok {
		return nil, false
	}
	prefix := vendorPrefix(provider)
	out := make(map[string]ModelInfo, len(list))
	for _, mi := range list {
		if prefix != "" && !strings.HasPrefix(mi.Name, prefix) {
			continue
		}
		out[mi.Name] = mi
	}
	return out, true
}

func vendorPrefix(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "openai/"
	case ProviderAnthropic:
		return "anthropic/"
	case ProviderGoogle:
		return "google/"
	case ProviderMeta, ProviderLlama:
		return "meta-llama/"
	}
	return ""
}

// RecommendModel returns a recommended model name for a given tier and provider.
// If provider is empty, defaults to "openrouter". Tiers: cheap|balanced|high-context.
func RecommendModel(provider, tier string) (string, bool) {
	if provider == "" {
		provider = ProviderOpenRouter
	}
	picks := map[string]map[string]string{
		"cheap": {
			ProviderOpenRouter: "deepseek/deepseek-r1:free",
			ProviderOpenAI:     "openai/gpt-4o-mini",
			ProviderAnthropic:  "anthropic/claude-3-haiku",
			ProviderGoogle:     "google/gemini-1.5-flash",
			ProviderGemini:     "gemini-2.0-flash",
			ProviderMeta:       "meta-llama/llama-3.1-8b-instruct",
			ProviderLlama:      "meta-llama/llama-3.1-8b-instruct",
			ProviderOllama:     "llama3:latest",
		},
		"balanced": {
			ProviderOpenRouter: "openai/gpt-4o",
			ProviderOpenAI:     "openai/gpt-4o",
			ProviderAnthropic:  "anthropic/claude-3.5-sonnet",
			ProviderGoogle:     "google/gemini-1.5-pro",
			ProviderGemini:     "gemini-2.0-flash",
			ProviderMeta:       "meta-llama/llama-3.1-70b-instruct",
			ProviderLlama:      "meta-llama/llama-3.1-70b-instruct",
			ProviderOllama:     "llama3.1:8b-instruct",
		},
		"high-context": {
			ProviderOpenRouter: "anthropic/claude-3.5-sonnet",
			ProviderAnthropic:  "anthropic/claude-3.5-sonnet",
			ProviderOpenAI:     "openai/gpt-4o",
			ProviderGoogle:     "google/gemini-1.5-pro",
			ProviderGemini:     "gemini-1.5-pro",
			ProviderMeta:       "meta-llama/llama-3.1-70b-instruct",
			ProviderLlama:      "meta-llama/llama-3.1-70b-instruct",
			ProviderOllama:     "phi3:mini-128k-instruct",
		},
	}
	name, ok := picks[tier][provider]
	return name, ok
}
