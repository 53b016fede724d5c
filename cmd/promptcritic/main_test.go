package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/promptcritic/internal/apierr"
	"github.com/dshills/promptcritic/internal/config"
	"github.com/dshills/promptcritic/internal/feedback"
	"github.com/dshills/promptcritic/internal/llm"
	"github.com/dshills/promptcritic/internal/logger"
)

const idealPrompt = "Explain the history of jazz for a curious teenager, covering key artists, styles, and major recordings."

func exitCode(err error) int {
	var ee *exitErr
	if errors.As(err, &ee) {
		return ee.code
	}
	if err != nil {
		return 1
	}
	return 0
}

// --- readInput ---

func TestReadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.txt")
	if err := os.WriteFile(path, []byte("from file\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		args  []string
		file  string
		stdin string
		want  string
		err   bool
	}{
		{"args joined", []string{"list", "jazz", "albums"}, "", "", "list jazz albums", false},
		{"file", nil, path, "", "from file\n", false},
		{"stdin trimmed", nil, "", "from stdin\n", "from stdin", false},
		{"both", []string{"x"}, path, "", "", true},
		{"missing file", nil, filepath.Join(t.TempDir(), "nope"), "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readInput(tt.args, tt.file, strings.NewReader(tt.stdin))
			if (err != nil) != tt.err {
				t.Fatalf("err = %v, want error %v", err, tt.err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// --- score ---

func TestRunScoreJSON(t *testing.T) {
	var out bytes.Buffer
	f := &scoreFlags{format: "json"}
	if err := runScore([]string{"cool", "cool", "cool"}, f, strings.NewReader(""), &out); err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}
	if got["score"] != float64(0) || got["grade"] != "red" {
		t.Errorf("unexpected output: %v", got)
	}
	if _, ok := got["failed"]; ok {
		t.Error("report fields should be omitted without --report")
	}
}

func TestRunScoreReport(t *testing.T) {
	var out bytes.Buffer
	f := &scoreFlags{format: "json", report: true}
	if err := runScore([]string{idealPrompt}, f, strings.NewReader(""), &out); err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if passed, _ := got["passed"].([]any); len(passed) != 6 {
		t.Errorf("expected 6 passed dimensions, got %v", got["passed"])
	}
}

func TestRunScoreFormats(t *testing.T) {
	for _, format := range []string{"text", "md"} {
		t.Run(format, func(t *testing.T) {
			var out bytes.Buffer
			f := &scoreFlags{format: format, color: true}
			if err := runScore(nil, f, strings.NewReader(idealPrompt), &out); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out.String(), "100") {
				t.Errorf("score missing from output:\n%s", out.String())
			}
			if strings.Contains(out.String(), "\x1b[") {
				t.Error("non-terminal output should not be coloured")
			}
		})
	}
}

func TestRunScoreExitCodes(t *testing.T) {
	tests := []struct {
		name  string
		flags scoreFlags
		args  []string
		code  int
	}{
		{"passes threshold", scoreFlags{format: "json", failUnder: 90}, []string{idealPrompt}, 0},
		{"below threshold", scoreFlags{format: "json", failUnder: 50}, []string{"cool cool cool"}, 2},
		{"bad threshold", scoreFlags{format: "json", failUnder: 101}, []string{"x"}, 3},
		{"bad format", scoreFlags{format: "yaml"}, []string{"x"}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := runScore(tt.args, &tt.flags, strings.NewReader(""), &out)
			if got := exitCode(err); got != tt.code {
				t.Errorf("exit code = %d, want %d (err: %v)", got, tt.code, err)
			}
		})
	}
}

// --- rewrite ---

func stubProvider(t *testing.T, p llm.Provider, err error) {
	t.Helper()
	orig := resolveProvider
	resolveProvider = func(context.Context, string, llm.Keys) (llm.Provider, error) {
		return p, err
	}
	t.Cleanup(func() { resolveProvider = orig })
}

func TestRunRewrite(t *testing.T) {
	m := &llm.MockProvider{Response: idealPrompt}
	stubProvider(t, m, nil)

	var out bytes.Buffer
	f := &rewriteFlags{format: "json", category: "Research", redactEnabled: true, temperature: 0.7, maxTokens: 1024}
	if err := runRewrite(context.Background(), []string{"jazz", "password=hunter2"}, f, strings.NewReader(""), &out); err != nil {
		t.Fatal(err)
	}

	var got struct {
		ImprovedPrompt string `json:"improvedPrompt"`
		Category       string `json:"category"`
		Provider       string `json:"provider"`
		ScoreBefore    int    `json:"scoreBefore"`
		ScoreAfter     int    `json:"scoreAfter"`
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}
	if got.ImprovedPrompt != idealPrompt || got.Category != "Research" || got.Provider != "mock" {
		t.Errorf("unexpected output: %+v", got)
	}
	if got.ScoreAfter != 100 || got.ScoreBefore >= got.ScoreAfter {
		t.Errorf("scores before/after = %d/%d", got.ScoreBefore, got.ScoreAfter)
	}
	if strings.Contains(m.Prompts()[0], "hunter2") {
		t.Error("secret reached the provider")
	}
}

func TestRunRewriteOffline(t *testing.T) {
	stubProvider(t, nil, errors.New("should not resolve"))

	var out bytes.Buffer
	f := &rewriteFlags{format: "text", category: "Image Gen", offline: true, redactEnabled: true}
	if err := runRewrite(context.Background(), []string{"a red fox"}, f, strings.NewReader(""), &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `photorealistic image of "a red fox"`) {
		t.Errorf("unexpected canned output: %s", out.String())
	}
}

func TestRunRewriteExitCodes(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		provErr error
		genErr  error
		code    int
	}{
		{"no provider", []string{"dogs"}, errors.New("no keys"), nil, 4},
		{"empty prompt", []string{"   "}, nil, nil, 3},
		{"upstream failure", []string{"dogs"}, nil, apierr.Upstream("upstream_error", errors.New("500")), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubProvider(t, &llm.MockProvider{Response: "ok", Err: tt.genErr}, tt.provErr)
			var out bytes.Buffer
			f := &rewriteFlags{format: "text", redactEnabled: true}
			err := runRewrite(context.Background(), tt.args, f, strings.NewReader(""), &out)
			if got := exitCode(err); got != tt.code {
				t.Errorf("exit code = %d, want %d (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestRunRewriteUnknownFormatSkipsModel(t *testing.T) {
	m := &llm.MockProvider{Response: idealPrompt}
	stubProvider(t, m, nil)

	var out bytes.Buffer
	f := &rewriteFlags{format: "yaml", redactEnabled: true}
	err := runRewrite(context.Background(), []string{"dogs"}, f, strings.NewReader(""), &out)
	if got := exitCode(err); got != 3 {
		t.Errorf("exit code = %d, want 3 (err: %v)", got, err)
	}
	if n := len(m.Prompts()); n != 0 {
		t.Errorf("provider called %d times for a bad format", n)
	}
}

// --- serve wiring ---

func TestOpenFeedbackEmptyDSNUsesMemory(t *testing.T) {
	cfg := config.Default()
	cfg.Feedback.DSN = ""
	store, err := openFeedback(cfg, logger.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	if _, ok := store.(*feedback.MemoryStore); !ok {
		t.Errorf("store = %T, want *feedback.MemoryStore", store)
	}
}

func TestOpenFeedbackSQLite(t *testing.T) {
	cfg := config.Default()
	cfg.Feedback.DSN = "sqlite://" + filepath.Join(t.TempDir(), "feedback.db")
	store, err := openFeedback(cfg, logger.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	if _, ok := store.(*feedback.GormStore); !ok {
		t.Errorf("store = %T, want *feedback.GormStore", store)
	}
}

func TestTracingConfigPassesInsecure(t *testing.T) {
	cfg := config.Default()
	cfg.Telemetry.Enabled = true
	cfg.Telemetry.OTLPEndpoint = "localhost:4318"
	cfg.Telemetry.Insecure = true
	got := tracingConfig(cfg)
	if !got.Enabled || !got.Insecure || got.Endpoint != "localhost:4318" || got.Version != version {
		t.Errorf("unexpected tracing config: %+v", got)
	}
}

// --- categories ---

func TestCategoriesCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"categories"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"General", "Creative Writing", "Research", "Problem Solving", "Image Generation"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("missing %q in:\n%s", want, out.String())
		}
	}
}
