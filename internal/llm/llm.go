// Package llm defines the provider interface and implementations used to
// rewrite prompts with a third-party language model.
package llm

import "context"

// Settings configures the LLM request. Zero values fall back to provider defaults.
type Settings struct {
	Model       string
	Temperature float64
	TopK        int
	TopP        float64
	MaxTokens   int
	Seed        *int
}

// DefaultSettings is the generation config used for prompt rewrites.
func DefaultSettings() Settings {
	return Settings{
		Temperature: 0.7,
		TopK:        40,
		TopP:        0.95,
		MaxTokens:   1024,
	}
}

// Provider generates text from a prompt using an LLM.
type Provider interface {
	Generate(ctx context.Context, prompt string, settings Settings) (string, error)
	Name() string
}
