// Package rewrite turns a rough prompt into an improved one, either through a
// language model or, offline, through fixed per-category templates.
package rewrite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/dshills/promptcritic/internal/apierr"
	"github.com/dshills/promptcritic/internal/llm"
	"github.com/dshills/promptcritic/internal/redact"
)

// MaxPromptLength is the longest original prompt accepted, in characters.
const MaxPromptLength = 2000

// OfflineProvider names the provider reported for canned rewrites.
const OfflineProvider = "offline"

// Request is a rewrite request as sent by the extension.
type Request struct {
	OriginalPrompt string `json:"originalPrompt"`
	Category       string `json:"category"`
}

// Response carries the improved prompt.
type Response struct {
	ImprovedPrompt string   `json:"improvedPrompt"`
	Category       Category `json:"category"`
	Provider       string   `json:"provider"`
	Redacted       []string `json:"redacted,omitempty"`
}

// Rewriter calls a provider to improve prompts. The zero value is unusable
// unless Offline is set.
type Rewriter struct {
	Provider llm.Provider
	Settings llm.Settings
	Offline  bool
	// KeepSecrets disables redaction of credentials before the provider call.
	KeepSecrets bool
}

// New returns a Rewriter for p with the default generation settings.
func New(p llm.Provider) *Rewriter {
	return &Rewriter{Provider: p, Settings: llm.DefaultSettings()}
}

// Validate checks the request and returns the trimmed prompt and category.
func Validate(req Request) (string, Category, error) {
	text := strings.TrimSpace(req.OriginalPrompt)
	if text == "" {
		return "", "", apierr.Validation("prompt_required", "originalPrompt is required")
	}
	if n := utf8.RuneCountInString(text); n > MaxPromptLength {
		return "", "", apierr.Validation("prompt_too_long", "originalPrompt is %d characters, max %d", n, MaxPromptLength)
	}
	return text, ParseCategory(req.Category), nil
}

// Rewrite validates req and produces an improved prompt.
func (r *Rewriter) Rewrite(ctx context.Context, req Request) (Response, error) {
	text, cat, err := Validate(req)
	if err != nil {
		return Response{}, err
	}

	var hits []string
	if !r.KeepSecrets {
		text, hits = redact.Scan(text)
	}

	if r.Offline {
		return Response{ImprovedPrompt: Canned(text, cat), Category: cat, Provider: OfflineProvider, Redacted: hits}, nil
	}
	if r.Provider == nil {
		return Response{}, apierr.Internal("no_provider", errors.New("rewrite: no provider configured"))
	}

	ctx, span := otel.Tracer("promptcritic/rewrite").Start(ctx, "rewrite.Rewrite")
	defer span.End()
	span.SetAttributes(
		attribute.String("rewrite.category", string(cat)),
		attribute.String("rewrite.provider", r.Provider.Name()),
		attribute.Int("rewrite.prompt_chars", utf8.RuneCountInString(text)),
	)

	out, err := r.Provider.Generate(ctx, BuildPrompt(text, cat), r.Settings)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, apierr.CodeOf(err))
		if _, ok := apierr.As(err); !ok && ctx.Err() != nil {
			err = apierr.Transient("canceled", err)
		}
		return Response{}, fmt.Errorf("rewrite.Rewrite: %w", err)
	}

	improved := clean(out)
	if improved == "" {
		err := apierr.Upstream("upstream_empty", fmt.Errorf("rewrite.Rewrite: %s returned an empty prompt", r.Provider.Name()))
		span.SetStatus(codes.Error, "upstream_empty")
		return Response{}, err
	}

	return Response{ImprovedPrompt: improved, Category: cat, Provider: r.Provider.Name(), Redacted: hits}, nil
}

// clean trims whitespace and one pair of wrapping double quotes, which models
// tend to echo from the "Original prompt" line.
func clean(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}
