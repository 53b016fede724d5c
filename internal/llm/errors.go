package llm

import (
	"fmt"
	"net/http"

	"github.com/dshills/promptcritic/internal/apierr"
)

const maxErrorBody = 512

// transportError marks a failed round trip as retryable.
func transportError(provider string, err error) error {
	return apierr.Transient("upstream_unreachable", fmt.Errorf("%s: request failed: %w", provider, err))
}

// statusError classifies a non-200 reply from the model API.
func statusError(provider string, status int, body []byte) error {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	err := fmt.Errorf("%s: API returned %d: %s", provider, status, string(body))
	switch {
	case status == http.StatusTooManyRequests:
		return apierr.RateLimited("upstream_rate_limited", err)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		// A rejected key is a server misconfiguration; retrying cannot help.
		return apierr.Internal("upstream_auth", err)
	case status >= 500:
		return apierr.Upstream("upstream_error", err)
	default:
		return apierr.Upstream("upstream_rejected", err)
	}
}

// emptyError reports a reply that carried no text.
func emptyError(provider string) error {
	return apierr.Upstream("upstream_empty", fmt.Errorf("%s: no text content in response", provider))
}
