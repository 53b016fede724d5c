package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Keys holds the API keys available to ResolveProvider.
type Keys struct {
	Gemini    string
	Anthropic string
	OpenAI    string
}

// KeysFromEnv reads provider keys from the environment.
func KeysFromEnv() Keys {
	return Keys{
		Gemini:    os.Getenv("GEMINI_API_KEY"),
		Anthropic: os.Getenv("ANTHROPIC_API_KEY"),
		OpenAI:    os.Getenv("OPENAI_API_KEY"),
	}
}

// ResolveProvider selects an LLM provider based on the model flag and available API keys.
func ResolveProvider(ctx context.Context, modelFlag string, keys Keys) (Provider, error) {
	// Explicit provider from model flag
	if modelFlag != "" {
		lower := strings.ToLower(modelFlag)
		switch {
		case strings.HasPrefix(lower, "gemini:"):
			return NewGemini(ctx, keys.Gemini, GeminiOptions{Model: modelFlag[len("gemini:"):]})

		case strings.HasPrefix(lower, "gemini"):
			return NewGemini(ctx, keys.Gemini, GeminiOptions{Model: modelFlag})

		case strings.HasPrefix(lower, "anthropic:"):
			return NewAnthropic(keys.Anthropic, modelFlag[len("anthropic:"):], nil)

		case strings.HasPrefix(lower, "claude"):
			return NewAnthropic(keys.Anthropic, modelFlag, nil)

		case strings.HasPrefix(lower, "openai:"):
			return NewOpenAI(keys.OpenAI, modelFlag[len("openai:"):], nil)

		case strings.HasPrefix(lower, "gpt"):
			return NewOpenAI(keys.OpenAI, modelFlag, nil)
		}
		return nil, fmt.Errorf("llm.ResolveProvider: unknown model %q", modelFlag)
	}

	// Auto-detect from available keys
	switch {
	case keys.Gemini != "":
		return NewGemini(ctx, keys.Gemini, GeminiOptions{})
	case keys.Anthropic != "":
		return NewAnthropic(keys.Anthropic, "", nil)
	case keys.OpenAI != "":
		return NewOpenAI(keys.OpenAI, "", nil)
	}

	return nil, fmt.Errorf("no LLM provider configured: set GEMINI_API_KEY, ANTHROPIC_API_KEY or OPENAI_API_KEY")
}
