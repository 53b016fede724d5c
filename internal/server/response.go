package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dshills/promptcritic/internal/apierr"
)

type APIError struct {
	Message   string `json:"message"`
	Code      string `json:"code"`
	Retryable bool   `json:"retryable"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// Only validation errors carry their own text to the client; upstream detail
// stays in the log.
var publicMessages = map[apierr.Kind]string{
	apierr.KindRateLimited: "too many requests, try again later",
	apierr.KindUpstream:    "the rewrite service failed, try again later",
	apierr.KindTransient:   "the service is temporarily unavailable, try again later",
	apierr.KindInternal:    "internal error",
}

// RespondError writes err as an error envelope with the status of its kind.
func (s *Server) RespondError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, ErrorEnvelope{Error: APIError{
			Message: "request body too large",
			Code:    "body_too_large",
		}})
		return
	}

	kind := apierr.KindOf(err)
	msg := err.Error()
	switch kind {
	case apierr.KindValidation:
	case apierr.KindInternal:
		s.log.Error("request failed", "path", c.FullPath(), "error", err)
		msg = publicMessages[kind]
	default:
		s.log.Warn("request failed", "path", c.FullPath(), "code", apierr.CodeOf(err), "error", err)
		msg = publicMessages[kind]
	}
	c.AbortWithStatusJSON(kind.Status(), ErrorEnvelope{Error: APIError{
		Message:   msg,
		Code:      apierr.CodeOf(err),
		Retryable: kind.Retryable(),
	}})
}
