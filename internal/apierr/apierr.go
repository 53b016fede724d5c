// Package apierr classifies failures of the rewrite path so the edge service
// can tell the caller whether to edit, wait, or retry.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the failure class.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindRateLimited Kind = "rate_limited"
	KindUpstream    Kind = "upstream"
	KindTransient   Kind = "transient"
	KindInternal    Kind = "internal"
)

func (k Kind) Valid() bool {
	switch k {
	case KindValidation, KindRateLimited, KindUpstream, KindTransient, KindInternal:
		return true
	}
	return false
}

// Status maps the kind to an HTTP status.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindUpstream:
		return http.StatusBadGateway
	case KindTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Retryable reports whether the same request may succeed later unchanged.
func (k Kind) Retryable() bool {
	return k == KindTransient || k == KindRateLimited || k == KindUpstream
}

type Error struct {
	Kind Kind
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	return fmt.Sprintf("%s error", e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, code string, err error) *Error {
	return &Error{Kind: kind, Code: code, Err: err}
}

func Validation(code string, format string, args ...any) *Error {
	return New(KindValidation, code, fmt.Errorf(format, args...))
}

func RateLimited(code string, err error) *Error { return New(KindRateLimited, code, err) }
func Upstream(code string, err error) *Error    { return New(KindUpstream, code, err) }
func Transient(code string, err error) *Error   { return New(KindTransient, code, err) }
func Internal(code string, err error) *Error    { return New(KindInternal, code, err) }

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	if e, ok := As(err); ok && e.Kind.Valid() {
		return e.Kind
	}
	return KindInternal
}

// CodeOf returns the machine-readable code of err.
func CodeOf(err error) string {
	if e, ok := As(err); ok && e.Code != "" {
		return e.Code
	}
	return string(KindOf(err))
}

func Status(err error) int     { return KindOf(err).Status() }
func Retryable(err error) bool { return KindOf(err).Retryable() }
