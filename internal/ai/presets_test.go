package ai

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPresetCatalogOpenRouter(t *testing.T) {
	m, ok := PresetCatalog("openrouter")
	if !ok || len(m) == 0 {
		t.Fatalf("expected openrouter preset to be available")
	}
	if _, exists := m["openai/gpt-4o-mini"]; !exists {
		t.Fatalf("expected gpt-4o-mini in openrouter preset")
	}
	if _, exists := m["deepseek/deepseek-r1:free"]; !exists {
		t.Fatalf("expected deepseek free model in openrouter preset")
	}
}

func TestPresetCatalogVendorFilter(t *testing.T) {
	m, ok := PresetCatalog("anthropic")
	if !ok || len(m) != 2 {
		t.Fatalf("expected two anthropic models, got %v", m)
	}
	g, ok := PresetCatalog("gemini")
	if !ok {
		t.Fatalf("expected gemini preset")
	}
	if _, exists := g["gemini-2.0-flash"]; !exists {
		t.Fatalf("expected native gemini names, got %v", g)
	}
	if _, ok := PresetCatalog("nope"); ok {
		t.Fatalf("unknown provider should have no preset")
	}
}

func TestRecommendModel(t *testing.T) {
	if name, ok := RecommendModel("openrouter", "cheap"); !ok || name != "deepseek/deepseek-r1:free" {
		t.Fatalf("unexpected recommendation for openrouter/cheap: %s", name)
	}
	if name, ok := RecommendModel("anthropic", "balanced"); !ok || name != "anthropic/claude-3.5-sonnet" {
		t.Fatalf("unexpected recommendation for anthropic/balanced: %s", name)
	}
	if name, ok := RecommendModel("google", "cheap"); !ok || name != "google/gemini-1.5-flash" {
		t.Fatalf("unexpected recommendation for google/cheap: %s", name)
	}
	if name, ok := RecommendModel("gemini", "balanced"); !ok || name != "gemini-2.0-flash" {
		t.Fatalf("unexpected recommendation for gemini/balanced: %s", name)
	}
	if name, ok := RecommendModel("llama", "balanced"); !ok || name != "meta-llama/llama-3.1-70b-instruct" {
		t.Fatalf("unexpected recommendation for llama/balanced: %s", name)
	}
	if _, ok := RecommendModel("", "unknown"); ok {
		t.Fatalf("expected unknown tier to be false")
	}
}

func TestCatalogMergeAndCost(t *testing.T) {
	p := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(p, []byte(`{"acme/test-1":{"context_tokens":4096,"input_per_k":1,"output_per_k":2}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := LoadCatalogFromJSON(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	MergeCatalog(m)
	mi, ok := LookupModel("acme/test-1")
	if !ok || mi.Name != "acme/test-1" || mi.ContextTokens != 4096 {
		t.Fatalf("merged entry missing: %+v", mi)
	}
	cost, ok := EstimateCostUSD("acme/test-1", 1000, 500)
	if !ok || cost != 2 {
		t.Fatalf("unexpected cost %v", cost)
	}
	if _, ok := EstimateCostUSD("unknown/model", 1, 1); ok {
		t.Fatalf("unknown model should not be priced")
	}
}
