package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/promptcritic/internal/config"
	"github.com/dshills/promptcritic/internal/feedback"
	"github.com/dshills/promptcritic/internal/llm"
	"github.com/dshills/promptcritic/internal/logger"
	"github.com/dshills/promptcritic/internal/observability"
	"github.com/dshills/promptcritic/internal/ratelimit"
	"github.com/dshills/promptcritic/internal/rewrite"
	"github.com/dshills/promptcritic/internal/server"
)

type serveFlags struct {
	configPath string
	addr       string
	offline    bool
}

func newServeCmd() *cobra.Command {
	f := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service used by the browser extension",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.configPath, "config", "", "YAML config file")
	flags.StringVar(&f.addr, "addr", "", "Listen address (overrides config)")
	flags.BoolVar(&f.offline, "offline", false, "Serve canned rewrites without a model")

	return cmd
}

func runServe(ctx context.Context, f *serveFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return exitError(3, "failed to load config: %v", err)
	}
	if f.addr != "" {
		cfg.Server.Addr = f.addr
	}
	if f.offline {
		cfg.LLM.Offline = true
	}

	log, err := logger.New(logger.Options{
		Mode:     cfg.Log.Mode,
		Level:    cfg.Log.Level,
		File:     cfg.Log.File,
		HashSalt: cfg.Log.HashSalt,
	})
	if err != nil {
		return exitError(3, "failed to init logger: %v", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.Init(ctx, log, tracingConfig(cfg))
	if err != nil {
		return exitError(1, "failed to init tracing: %v", err)
	}

	rw, err := buildRewriter(ctx, cfg, log)
	if err != nil {
		return err
	}

	store, err := openFeedback(cfg, log)
	if err != nil {
		return exitError(1, "failed to open feedback store: %v", err)
	}
	defer store.Close()

	limiter, closeLimiter, err := buildLimiter(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeLimiter()

	srv, err := server.New(server.Options{
		Log:            log.With("component", "server"),
		Rewriter:       rw,
		Feedback:       store,
		Limiter:        limiter,
		CORSOrigins:    cfg.Server.CORSOrigins,
		TrustedProxies: cfg.Server.TrustedProxies,
		BodyLimit:      cfg.Server.BodyLimitBytes,
		RewriteTimeout: cfg.LLM.Timeout,
		Tracing:        cfg.Telemetry.Enabled,
		ServiceName:    cfg.Telemetry.ServiceName,
	})
	if err != nil {
		return exitError(3, "failed to build server: %v", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx, server.HTTPOptions{
			Addr:            cfg.Server.Addr,
			ReadTimeout:     cfg.Server.ReadTimeout,
			WriteTimeout:    cfg.Server.WriteTimeout,
			ShutdownTimeout: cfg.Server.ShutdownTimeout,
		})
	})
	g.Go(func() error {
		<-gctx.Done()
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return shutdownTracing(flushCtx)
	})
	if err := g.Wait(); err != nil {
		log.Error("server stopped", "error", err)
		return err
	}
	log.Info("server stopped")
	return nil
}

func tracingConfig(cfg *config.Config) observability.Config {
	return observability.Config{
		Enabled:     cfg.Telemetry.Enabled,
		ServiceName: cfg.Telemetry.ServiceName,
		Version:     version,
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		Insecure:    cfg.Telemetry.Insecure,
	}
}

// openFeedback keeps feedback in memory when no DSN is configured.
func openFeedback(cfg *config.Config, log *logger.Logger) (feedback.Store, error) {
	if cfg.Feedback.DSN == "" {
		log.Warn("feedback kept in memory (no feedback.dsn)")
		return feedback.NewMemoryStore(), nil
	}
	return feedback.OpenGorm(cfg.Feedback.DSN)
}

func buildRewriter(ctx context.Context, cfg *config.Config, log *logger.Logger) (*rewrite.Rewriter, error) {
	if cfg.LLM.Offline {
		log.Warn("serving canned rewrites (offline mode)")
		return &rewrite.Rewriter{Offline: true}, nil
	}
	provider, err := resolveProvider(ctx, cfg.LLM.Model, llm.Keys{
		Gemini:    cfg.LLM.GeminiAPIKey,
		Anthropic: cfg.LLM.AnthropicAPIKey,
		OpenAI:    cfg.LLM.OpenAIAPIKey,
	})
	if err != nil {
		return nil, exitError(4, "model provider error: %v", err)
	}
	log.Info("rewrite provider ready", "provider", provider.Name(), "model", cfg.LLM.Model)
	return rewrite.New(provider), nil
}

func buildLimiter(ctx context.Context, cfg *config.Config, log *logger.Logger) (ratelimit.Store, func(), error) {
	rl := cfg.RateLimit
	if rl.PerMinute == 0 {
		log.Warn("rate limiting disabled")
		return nil, func() {}, nil
	}
	if rl.RedisAddr == "" {
		return ratelimit.NewMemoryStore(rl.PerMinute, time.Minute, ratelimit.WithCapacity(rl.Capacity)), func() {}, nil
	}
	rdb, err := ratelimit.DialRedis(ctx, rl.RedisAddr, rl.RedisPassword, rl.RedisDB)
	if err != nil {
		return nil, nil, exitError(1, "failed to connect to redis: %v", err)
	}
	log.Info("rate limiting via redis", "addr", rl.RedisAddr, "per_minute", rl.PerMinute)
	return ratelimit.NewRedisStore(rdb, rl.PerMinute, time.Minute, ""), func() { _ = rdb.Close() }, nil
}
