// Package ratelimit implements fixed-window request limits keyed by client.
package ratelimit

import (
	"context"
	"time"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	// RetryAfter is the time until the current window resets.
	RetryAfter time.Duration
}

// Store counts requests per key.
type Store interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

func decide(count int64, limit int, reset time.Duration) Decision {
	d := Decision{Allowed: count <= int64(limit), Limit: limit, RetryAfter: reset}
	if rem := int64(limit) - count; rem > 0 {
		d.Remaining = int(rem)
	}
	if d.RetryAfter < 0 {
		d.RetryAfter = 0
	}
	return d
}
