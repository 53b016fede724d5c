// Package feedback records thumbs-up/down votes on scored prompts and
// aggregates them for the stats endpoint.
package feedback

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dshills/promptcritic/internal/apierr"
)

// Entry is one recorded vote.
type Entry struct {
	Liked bool      `json:"liked"`
	Score int       `json:"score"`
	At    time.Time `json:"ts"`
}

// Submission is the body the extension posts. Either Value ("up"/"down") or
// Liked may be set; Value wins when both are present.
type Submission struct {
	Value string `json:"value"`
	Liked *bool  `json:"liked"`
	Score *int   `json:"score"`
}

// Entry validates s and converts it to an Entry stamped with now.
func (s Submission) Entry(now time.Time) (Entry, error) {
	var liked bool
	switch v := strings.ToLower(strings.TrimSpace(s.Value)); v {
	case "up", "like", "liked":
		liked = true
	case "down", "dislike", "disliked":
		liked = false
	case "":
		if s.Liked == nil {
			return Entry{}, apierr.Validation("feedback_value_required", `feedback needs "value" ("up" or "down") or "liked"`)
		}
		liked = *s.Liked
	default:
		return Entry{}, apierr.Validation("feedback_value_invalid", "unknown feedback value %q", s.Value)
	}
	if s.Score == nil {
		return Entry{}, apierr.Validation("feedback_score_required", "feedback needs the prompt score")
	}
	if *s.Score < 0 || *s.Score > 100 {
		return Entry{}, apierr.Validation("feedback_score_range", "score %d outside 0-100", *s.Score)
	}
	return Entry{Liked: liked, Score: *s.Score, At: now.UTC()}, nil
}

// Stats aggregates recorded feedback.
type Stats struct {
	Likes           int64   `json:"likes"`
	Dislikes        int64   `json:"dislikes"`
	AvgLikedScore   float64 `json:"avgLikedScore"`
	AvgDislikeScore float64 `json:"avgDislikedScore"`
}

// Store persists feedback entries.
type Store interface {
	Record(ctx context.Context, e Entry) error
	Stats(ctx context.Context) (Stats, error)
	Close() error
}

// ErrClosed is returned by a store used after Close.
var ErrClosed = errors.New("feedback: store closed")
