// Package server exposes scoring, rewriting and feedback over HTTP for the
// browser extension.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/dshills/promptcritic/internal/feedback"
	"github.com/dshills/promptcritic/internal/logger"
	"github.com/dshills/promptcritic/internal/ratelimit"
	"github.com/dshills/promptcritic/internal/rewrite"
)

var errTooManyRequests = errors.New("too many rewrite requests, try again later")

// Options wires the server's collaborators. Limiter may be nil to disable
// rate limiting.
type Options struct {
	Log            *logger.Logger
	Rewriter       *rewrite.Rewriter
	Feedback       feedback.Store
	Limiter        ratelimit.Store
	CORSOrigins    []string
	TrustedProxies []string
	BodyLimit      int64
	RewriteTimeout time.Duration
	Tracing        bool
	ServiceName    string
	Now            func() time.Time
}

type Server struct {
	Engine *gin.Engine

	log            *logger.Logger
	rewriter       *rewrite.Rewriter
	feedback       feedback.Store
	rewriteTimeout time.Duration
	now            func() time.Time

	scored   atomic.Int64
	rewrites atomic.Int64
}

func New(opts Options) (*Server, error) {
	s := &Server{
		log:            opts.Log,
		rewriter:       opts.Rewriter,
		feedback:       opts.Feedback,
		rewriteTimeout: opts.RewriteTimeout,
		now:            opts.Now,
	}
	if s.log == nil {
		s.log = logger.NewNop()
	}
	if s.feedback == nil {
		s.feedback = feedback.NewMemoryStore()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.rewriteTimeout <= 0 {
		s.rewriteTimeout = 30 * time.Second
	}
	if opts.BodyLimit <= 0 {
		opts.BodyLimit = 64 << 10
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, err
	}
	r.Use(gin.CustomRecovery(func(c *gin.Context, rec any) {
		s.log.Error("panic recovered", "panic", rec, "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorEnvelope{Error: APIError{Message: "internal error", Code: "internal"}})
	}))
	r.Use(RequestID())
	if opts.Tracing {
		r.Use(otelgin.Middleware(opts.ServiceName))
	}
	r.Use(RequestLogger(s.log))
	r.Use(CORS(opts.CORSOrigins))
	r.Use(BodyLimit(opts.BodyLimit))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorEnvelope{Error: APIError{Message: "not found", Code: "not_found"}})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, ErrorEnvelope{Error: APIError{Message: "method not allowed", Code: "method_not_allowed"}})
	})

	r.GET("/healthz", s.Health)

	api := r.Group("/api")
	{
		api.POST("/score", s.Score)
		api.POST("/feedback", s.Feedback)
		api.GET("/stats", s.Stats)

		limited := api.Group("")
		if opts.Limiter != nil {
			limited.Use(s.RateLimit(opts.Limiter))
		}
		limited.POST("/rewrite", s.Rewrite)
		limited.POST("/improve-prompt", s.ImprovePrompt)
	}

	s.Engine = r
	return s, nil
}

// HTTPOptions are the listener settings for Run.
type HTTPOptions struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, opts HTTPOptions) error {
	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           s.Engine,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      opts.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", opts.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), opts.ShutdownTimeout)
	defer cancel()
	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
