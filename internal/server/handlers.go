package server

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dshills/promptcritic/internal/apierr"
	"github.com/dshills/promptcritic/internal/feedback"
	"github.com/dshills/promptcritic/internal/rewrite"
	"github.com/dshills/promptcritic/internal/score"
)

func (s *Server) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

type scoreRequest struct {
	Prompt *string `json:"prompt"`
}

type scoreResponse struct {
	score.Result
	Grade score.Grade `json:"grade"`
	Solid bool        `json:"solid"`
}

// Score rates a prompt. An absent prompt scores as the empty string.
// With ?report=true the full per-dimension report is returned.
func (s *Server) Score(c *gin.Context) {
	var req scoreRequest
	if err := bindJSON(c, &req, true); err != nil {
		s.RespondError(c, err)
		return
	}
	var text string
	if req.Prompt != nil {
		text = *req.Prompt
	}
	s.scored.Add(1)

	if c.Query("report") == "true" {
		c.JSON(http.StatusOK, score.NewReport(text))
		return
	}
	res := score.Score(text)
	c.JSON(http.StatusOK, scoreResponse{Result: res, Grade: res.Grade(), Solid: res.Solid()})
}

func (s *Server) Rewrite(c *gin.Context) {
	var req rewrite.Request
	if err := bindJSON(c, &req, false); err != nil {
		s.RespondError(c, err)
		return
	}
	s.doRewrite(c, req)
}

type improveRequest struct {
	Prompt   string `json:"prompt"`
	Category string `json:"category"`
}

// ImprovePrompt accepts the older {prompt, category} body.
func (s *Server) ImprovePrompt(c *gin.Context) {
	var req improveRequest
	if err := bindJSON(c, &req, false); err != nil {
		s.RespondError(c, err)
		return
	}
	s.doRewrite(c, rewrite.Request{OriginalPrompt: req.Prompt, Category: req.Category})
}

func (s *Server) doRewrite(c *gin.Context, req rewrite.Request) {
	if s.rewriter == nil {
		s.RespondError(c, apierr.Internal("no_rewriter", errors.New("rewriting is not configured")))
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), s.rewriteTimeout)
	defer cancel()

	resp, err := s.rewriter.Rewrite(ctx, req)
	if err != nil {
		s.RespondError(c, err)
		return
	}
	s.rewrites.Add(1)
	if len(resp.Redacted) > 0 {
		s.log.Info("redacted secrets before rewrite", "rules", resp.Redacted, "request_id", c.GetString("request_id"))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) Feedback(c *gin.Context) {
	var sub feedback.Submission
	if err := bindJSON(c, &sub, false); err != nil {
		s.RespondError(c, err)
		return
	}
	entry, err := sub.Entry(s.now())
	if err != nil {
		s.RespondError(c, err)
		return
	}
	if err := s.feedback.Record(c.Request.Context(), entry); err != nil {
		s.RespondError(c, apierr.Transient("feedback_unavailable", err))
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

type statsResponse struct {
	Scored   int64          `json:"scored"`
	Rewrites int64          `json:"rewrites"`
	Feedback feedback.Stats `json:"feedback"`
}

func (s *Server) Stats(c *gin.Context) {
	fs, err := s.feedback.Stats(c.Request.Context())
	if err != nil {
		s.RespondError(c, apierr.Transient("feedback_unavailable", err))
		return
	}
	c.JSON(http.StatusOK, statsResponse{
		Scored:   s.scored.Load(),
		Rewrites: s.rewrites.Load(),
		Feedback: fs,
	})
}

// bindJSON decodes the body into dst. An empty body is accepted only when
// allowEmpty is set.
func bindJSON(c *gin.Context, dst any, allowEmpty bool) error {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return err
	}
	if errors.Is(err, io.EOF) {
		if allowEmpty {
			return nil
		}
		return apierr.Validation("body_required", "request body is required")
	}
	return apierr.Validation("invalid_json", "invalid JSON body: %v", err)
}
