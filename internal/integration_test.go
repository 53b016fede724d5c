package internal

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/dshills/promptcritic/internal/llm"
	"github.com/dshills/promptcritic/internal/rewrite"
	"github.com/dshills/promptcritic/internal/score"
)

const weakPrompt = "tell me about dogs"

// skipUnlessIntegration skips the test unless PROMPTCRITIC_INTEGRATION=1.
func skipUnlessIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv("PROMPTCRITIC_INTEGRATION") != "1" {
		t.Skip("skipping integration test (set PROMPTCRITIC_INTEGRATION=1 to run)")
	}
}

// runRewrite calls the live model and checks the result structurally.
func runRewrite(t *testing.T, provider llm.Provider, cat rewrite.Category) rewrite.Response {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	rw := rewrite.New(provider)
	resp, err := rw.Rewrite(ctx, rewrite.Request{OriginalPrompt: weakPrompt, Category: string(cat)})
	if err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}
	if resp.ImprovedPrompt == "" {
		t.Fatal("empty improved prompt")
	}
	if resp.Category != cat {
		t.Errorf("category = %s, want %s", resp.Category, cat)
	}
	if resp.Provider != provider.Name() {
		t.Errorf("provider = %s, want %s", resp.Provider, provider.Name())
	}

	before := score.Score(weakPrompt).Score
	after := score.Score(resp.ImprovedPrompt).Score
	t.Logf("Provider: %s | Category: %s | Score: %d -> %d | Length: %d",
		provider.Name(), cat, before, after, len(resp.ImprovedPrompt))

	return resp
}

func resolve(t *testing.T, model, envKey string) llm.Provider {
	t.Helper()
	if os.Getenv(envKey) == "" {
		t.Skipf("%s not set", envKey)
	}
	provider, err := llm.ResolveProvider(context.Background(), model, llm.KeysFromEnv())
	if err != nil {
		t.Fatalf("resolve provider: %v", err)
	}
	return provider
}

// ---------- Per-provider basic tests ----------

func TestIntegrationGemini(t *testing.T) {
	skipUnlessIntegration(t)
	t.Parallel()
	runRewrite(t, resolve(t, "gemini:gemini-2.5-flash-lite", "GEMINI_API_KEY"), rewrite.CategoryGeneral)
}

func TestIntegrationAnthropic(t *testing.T) {
	skipUnlessIntegration(t)
	t.Parallel()
	runRewrite(t, resolve(t, "anthropic:claude-sonnet-4-6", "ANTHROPIC_API_KEY"), rewrite.CategoryGeneral)
}

func TestIntegrationOpenAI(t *testing.T) {
	skipUnlessIntegration(t)
	t.Parallel()
	runRewrite(t, resolve(t, "openai:gpt-4o-mini", "OPENAI_API_KEY"), rewrite.CategoryGeneral)
}

// ---------- Every category against the auto-detected provider ----------

func TestIntegrationAllCategories(t *testing.T) {
	skipUnlessIntegration(t)

	provider, err := llm.ResolveProvider(context.Background(), "", llm.KeysFromEnv())
	if err != nil {
		t.Skipf("no provider configured: %v", err)
	}
	t.Logf("Auto-detected provider: %s", provider.Name())

	for _, cat := range rewrite.Categories() {
		t.Run(string(cat), func(t *testing.T) {
			resp := runRewrite(t, provider, cat)
			if len([]rune(resp.ImprovedPrompt)) > rewrite.MaxImprovedLength*2 {
				t.Errorf("improved prompt is %d runes, far past the %d target", len([]rune(resp.ImprovedPrompt)), rewrite.MaxImprovedLength)
			}
		})
	}
}

// ---------- Secrets never reach the provider ----------

func TestIntegrationRedactsBeforeSend(t *testing.T) {
	skipUnlessIntegration(t)

	provider, err := llm.ResolveProvider(context.Background(), "", llm.KeysFromEnv())
	if err != nil {
		t.Skipf("no provider configured: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	resp, err := rewrite.New(provider).Rewrite(ctx, rewrite.Request{
		OriginalPrompt: "why does password=hunter2 fail to log me in",
	})
	if err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}
	if len(resp.Redacted) == 0 {
		t.Error("expected the assignment rule to fire")
	}
}
