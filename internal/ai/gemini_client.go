package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"google.golang.org/genai"
)

// GeminiClient calls the Gemini API through the official SDK. The SDK client
// is created on first use so construction never blocks or fails.
type GeminiClient struct {
	apiKey string
	// baseURL overrides the API endpoint (tests).
	baseURL string
	httpc   *http.Client

	once   sync.Once
	client *genai.Client
	err    error
}

// NewGeminiClient returns a runtime for the Gemini API.
func NewGeminiClient(apiKey string, httpc *http.Client) *GeminiClient {
	return &GeminiClient{apiKey: apiKey, httpc: httpc}
}

// NewGeminiClientWithBaseURL points the SDK at a custom endpoint (used in tests).
func NewGeminiClientWithBaseURL(apiKey string, httpc *http.Client, baseURL string) *GeminiClient {
	c := NewGeminiClient(apiKey, httpc)
	c.baseURL = baseURL
	return c
}

func (c *GeminiClient) sdk(ctx context.Context) (*genai.Client, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	c.once.Do(func() {
		cfg := &genai.ClientConfig{
			APIKey:     c.apiKey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: c.httpc,
		}
		if c.baseURL != "" {
			cfg.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
		}
		c.client, c.err = genai.NewClient(ctx, cfg)
	})
	return c.client, c.err
}

func (c *GeminiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if strings.TrimSpace(req.Model) == "" {
		return nil, errors.New("model cannot be empty")
	}
	if len(req.Messages) == 0 {
		return nil, errors.New("messages cannot be empty")
	}
	client, err := c.sdk(ctx)
	if err != nil {
		return nil, err
	}

	cfg := &genai.GenerateContentConfig{}
	if req.Temperature > 0 {
		cfg.Temperature = genai.Ptr(float32(req.Temperature))
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	var contents []*genai.Content
	for _, m := range req.Messages {
		switch m.Role {
		case "system":
			cfg.SystemInstruction = genai.NewContentFromText(m.Content, genai.RoleUser)
		case "assistant":
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	resp, err := client.Models.GenerateContent(ctx, req.Model, contents, cfg)
	if err != nil {
		return nil, classifyGeminiError(err)
	}
	out := &GenerateResponse{
		ID:      resp.ResponseID,
		Choices: []Choice{{Message: Message{Role: "assistant", Content: resp.Text()}}},
	}
	if u := resp.UsageMetadata; u != nil {
		out.Usage = Usage{
			PromptTokens:     int(u.PromptTokenCount),
			CompletionTokens: int(u.CandidatesTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	}
	return out, nil
}

// ListModels returns model ids usable with generateContent, without the
// "models/" prefix.
func (c *GeminiClient) ListModels(ctx context.Context) ([]string, error) {
	client, err := c.sdk(ctx)
	if err != nil {
		return nil, err
	}
	var names []string
	for m, err := range client.Models.All(ctx) {
		if err != nil {
			return nil, classifyGeminiError(err)
		}
		if !supports(m.SupportedActions, "generateContent") {
			continue
		}
		names = append(names, strings.TrimPrefix(m.Name, "models/"))
	}
	return names, nil
}

func supports(actions []string, want string) bool {
	if len(actions) == 0 {
		return true
	}
	for _, a := range actions {
		if a == want {
			return true
		}
	}
	return false
}

// classifyGeminiError maps SDK errors onto the package error types.
func classifyGeminiError(err error) error {
	var ge genai.APIError
	if !errors.As(err, &ge) {
		var gp *genai.APIError
		if !errors.As(err, &gp) || gp == nil {
			return fmt.Errorf("gemini: %w", err)
		}
		ge = *gp
	}
	apiErr := &APIError{StatusCode: ge.Code, Code: ge.Status, Message: ge.Message}
	switch {
	case ge.Code == http.StatusUnauthorized || ge.Code == http.StatusForbidden:
		return &AuthError{APIError: apiErr}
	case ge.Code == http.StatusTooManyRequests:
		if containsAnyFold(ge.Message, "quota") {
			return &QuotaExceededError{APIError: apiErr}
		}
		return &RateLimitError{APIError: apiErr}
	case ge.Code == http.StatusNotFound:
		return &ModelNotFoundError{APIError: apiErr}
	case ge.Code == http.StatusBadRequest:
		return &BadRequestError{APIError: apiErr}
	case ge.Code >= 500:
		return &ServerError{APIError: apiErr}
	}
	return apiErr
}
