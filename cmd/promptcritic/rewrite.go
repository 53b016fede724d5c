package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/promptcritic/internal/apierr"
	"github.com/dshills/promptcritic/internal/config"
	"github.com/dshills/promptcritic/internal/llm"
	"github.com/dshills/promptcritic/internal/rewrite"
	"github.com/dshills/promptcritic/internal/score"
)

// resolveProvider is replaced in tests.
var resolveProvider = func(ctx context.Context, model string, keys llm.Keys) (llm.Provider, error) {
	return llm.ResolveProvider(ctx, model, keys)
}

type rewriteFlags struct {
	configPath    string
	file          string
	category      string
	model         string
	format        string
	temperature   float64
	maxTokens     int
	timeout       time.Duration
	redactEnabled bool
	offline       bool
	verbose       bool
}

func newRewriteCmd() *cobra.Command {
	f := &rewriteFlags{}

	cmd := &cobra.Command{
		Use:   "rewrite [prompt...]",
		Short: "Rewrite a prompt with a language model",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRewrite(cmd.Context(), args, f, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.configPath, "config", "", "YAML config file")
	flags.StringVar(&f.file, "file", "", "Read the prompt from a file")
	flags.StringVar(&f.category, "category", string(rewrite.CategoryGeneral), "Rewrite category (see 'promptcritic categories')")
	flags.StringVar(&f.model, "model", "", "Model ID (e.g., gemini-2.5-flash-lite, claude-sonnet-4-6, gpt-4o-mini)")
	flags.StringVar(&f.format, "format", "text", "Output format: text or json")
	flags.Float64Var(&f.temperature, "temperature", 0.7, "Model temperature")
	flags.IntVar(&f.maxTokens, "max-tokens", 1024, "Max response tokens")
	flags.DurationVar(&f.timeout, "timeout", 0, "Model call timeout (default from config)")
	flags.BoolVar(&f.redactEnabled, "redact", true, "Redact secrets before sending to model")
	flags.BoolVar(&f.offline, "offline", false, "Use built-in templates instead of a model")
	flags.BoolVar(&f.verbose, "verbose", false, "Print processing steps to stderr")

	return cmd
}

func runRewrite(ctx context.Context, args []string, f *rewriteFlags, stdin io.Reader, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if f.format != "text" && f.format != "json" {
		return exitError(3, "unknown format: %s", f.format)
	}
	logger := log.New(os.Stderr, "", 0)
	verbose := func(msg string, args ...any) {
		if f.verbose {
			logger.Printf(msg, args...)
		}
	}

	text, err := readInput(args, f.file, stdin)
	if err != nil {
		return exitError(3, "failed to read prompt: %v", err)
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return exitError(3, "failed to load config: %v", err)
	}

	r := &rewrite.Rewriter{
		Settings:    llm.DefaultSettings(),
		Offline:     f.offline || cfg.LLM.Offline,
		KeepSecrets: !f.redactEnabled,
	}
	r.Settings.Temperature = f.temperature
	r.Settings.MaxTokens = f.maxTokens

	if !r.Offline {
		model := f.model
		if model == "" {
			model = cfg.LLM.Model
		}
		verbose("Resolving LLM provider")
		provider, err := resolveProvider(ctx, model, llm.Keys{
			Gemini:    cfg.LLM.GeminiAPIKey,
			Anthropic: cfg.LLM.AnthropicAPIKey,
			OpenAI:    cfg.LLM.OpenAIAPIKey,
		})
		if err != nil {
			return exitError(4, "model provider error: %v", err)
		}
		verbose("Using provider: %s", provider.Name())
		r.Provider = provider
	}

	timeout := f.timeout
	if timeout <= 0 {
		timeout = cfg.LLM.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	verbose("Rewriting (%s)", rewrite.ParseCategory(f.category))
	resp, err := r.Rewrite(ctx, rewrite.Request{OriginalPrompt: text, Category: f.category})
	if err != nil {
		if apierr.KindOf(err) == apierr.KindValidation {
			return exitError(3, "invalid prompt: %v", err)
		}
		return exitError(4, "rewrite failed (%s): %v", apierr.CodeOf(err), err)
	}
	if len(resp.Redacted) > 0 {
		verbose("Redacted before sending: %v", resp.Redacted)
	}

	switch f.format {
	case "json":
		out := struct {
			rewrite.Response
			Before int `json:"scoreBefore"`
			After  int `json:"scoreAfter"`
		}{resp, score.Score(text).Score, score.Score(resp.ImprovedPrompt).Score}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		fmt.Fprintln(stdout, string(data))
	case "text":
		fmt.Fprintln(stdout, resp.ImprovedPrompt)
		verbose("Score: %d -> %d", score.Score(text).Score, score.Score(resp.ImprovedPrompt).Score)
	}
	return nil
}
