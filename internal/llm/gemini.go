package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

const geminiDefaultModel = "gemini-2.5-flash-lite"

// GeminiProvider implements Provider using the Gemini generateContent API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// GeminiOptions tunes the Gemini client. Zero values use the public endpoint.
type GeminiOptions struct {
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// NewGemini creates a Gemini provider.
func NewGemini(ctx context.Context, apiKey string, opts GeminiOptions) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("llm.NewGemini: GEMINI_API_KEY not set")
	}
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("llm.NewGemini: %w", err)
	}
	return &GeminiProvider{client: client, model: opts.Model}, nil
}

func (g *GeminiProvider) Name() string { return "gemini" }

func (g *GeminiProvider) Generate(ctx context.Context, prompt string, s Settings) (string, error) {
	model := firstNonEmpty(s.Model, g.model, geminiDefaultModel)

	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), geminiConfig(s))
	if err != nil {
		return "", classifyGemini(err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", emptyError("gemini")
	}
	return text, nil
}

func geminiConfig(s Settings) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(s.Temperature)),
	}
	if s.TopK > 0 {
		cfg.TopK = genai.Ptr(float32(s.TopK))
	}
	if s.TopP > 0 {
		cfg.TopP = genai.Ptr(float32(s.TopP))
	}
	if s.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(s.MaxTokens)
	}
	if s.Seed != nil {
		cfg.Seed = genai.Ptr(int32(*s.Seed))
	}
	return cfg
}

// classifyGemini maps SDK errors onto the same classes as the HTTP providers.
func classifyGemini(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return statusError("gemini", apiErr.Code, []byte(apiErr.Message))
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return statusError("gemini", apiErrPtr.Code, []byte(apiErrPtr.Message))
	}
	return transportError("gemini", err)
}
