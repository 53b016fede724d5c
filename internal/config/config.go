// Package config loads service settings from a YAML file, a .env file and
// the environment, in increasing order of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dshills/promptcritic/internal/feedback"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	LLM       LLMConfig       `yaml:"llm"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Feedback  FeedbackConfig  `yaml:"feedback"`
	Log       LogConfig       `yaml:"log"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	CORSOrigins     []string      `yaml:"cors_origins"`
	TrustedProxies  []string      `yaml:"trusted_proxies"`
	BodyLimitBytes  int64         `yaml:"body_limit_bytes"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LLMConfig struct {
	Model   string        `yaml:"model"`
	Offline bool          `yaml:"offline"`
	Timeout time.Duration `yaml:"timeout"`
	// Keys come from the environment only.
	GeminiAPIKey    string `yaml:"-"`
	AnthropicAPIKey string `yaml:"-"`
	OpenAIAPIKey    string `yaml:"-"`
}

type RateLimitConfig struct {
	PerMinute     int    `yaml:"per_minute"`
	Capacity      int    `yaml:"capacity"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"-"`
	RedisDB       int    `yaml:"redis_db"`
}

type FeedbackConfig struct {
	// DSN selects the store; empty keeps feedback in memory.
	DSN string `yaml:"dsn"`
}

type LogConfig struct {
	Mode  string `yaml:"mode"`
	Level string `yaml:"level"`
	File  string `yaml:"file"`
	// HashSalt is mixed into hashed log values. Environment only.
	HashSalt string `yaml:"-"`
}

type TelemetryConfig struct {
	Enabled      bool   `yaml:"enabled"`
	ServiceName  string `yaml:"service_name"`
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	// Insecure sends spans over plain HTTP, as local collectors expect.
	Insecure bool `yaml:"insecure"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8787",
			CORSOrigins:     []string{"*"},
			BodyLimitBytes:  64 << 10,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		LLM: LLMConfig{
			Timeout: 30 * time.Second,
		},
		RateLimit: RateLimitConfig{
			PerMinute: 20,
			Capacity:  10000,
		},
		Feedback: FeedbackConfig{
			DSN: feedback.DefaultDSN,
		},
		Log: LogConfig{
			Mode:  "development",
			Level: "info",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "promptcritic",
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (optional), the
// given .env files (".env" when none are named; missing files are ignored)
// and the environment. The result is validated.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config.Load: %w", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config.Load: parse %s: %w", path, err)
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config.Load: %s: %w", f, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		joined := make([]error, len(errs))
		for i, e := range errs {
			joined[i] = e
		}
		return nil, fmt.Errorf("config.Load: %w", errors.Join(joined...))
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Server.Addr, "PROMPTCRITIC_ADDR")
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = splitList(v)
	}
	setString(&c.LLM.Model, "PROMPTCRITIC_MODEL")
	setString(&c.LLM.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&c.LLM.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	setString(&c.LLM.OpenAIAPIKey, "OPENAI_API_KEY")
	setString(&c.RateLimit.RedisAddr, "REDIS_ADDR")
	setString(&c.RateLimit.RedisPassword, "REDIS_PASSWORD")
	setString(&c.Feedback.DSN, "FEEDBACK_DSN")
	setString(&c.Log.Mode, "LOG_MODE")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.File, "LOG_FILE")
	setString(&c.Log.HashSalt, "LOG_HASH_SALT")
	setString(&c.Telemetry.OTLPEndpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")

	if err := setInt(&c.RateLimit.PerMinute, "RATE_LIMIT_PER_MINUTE"); err != nil {
		return err
	}
	if err := setInt(&c.RateLimit.RedisDB, "REDIS_DB"); err != nil {
		return err
	}
	if err := setBool(&c.LLM.Offline, "PROMPTCRITIC_OFFLINE"); err != nil {
		return err
	}
	if err := setBool(&c.Telemetry.Insecure, "OTEL_EXPORTER_OTLP_INSECURE"); err != nil {
		return err
	}
	return setBool(&c.Telemetry.Enabled, "OTEL_ENABLED")
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
