package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Rating bounds for feedback.
const (
	// MinRating is the lowest accepted rating.
	MinRating = 1

	// MaxRating is the highest accepted rating.
	MaxRating = 5
)

// Reputation thresholds. A single positive rating marks a source as
// liked; a source is blocked only after three negative ratings, so one
// bad experience cannot permanently exclude it.
const (
	// LikeThreshold is the minimum ratings of MinLikedRating or above
	// before a source is preferred.
	LikeThreshold = 1

	// BlockThreshold is the minimum ratings of MaxDislikedRating or
	// below before a source is avoided.
	BlockThreshold = 3

	// MinLikedRating is the lowest rating counted as a like.
	MinLikedRating = 4

	// MaxDislikedRating is the highest rating counted as a dislike.
	// A rating of 3 counts toward neither side.
	MaxDislikedRating = 2
)

// SourceYouTube is the normalised origin for all video feedback.
const SourceYouTube = "youtube.com"

// SourceUnknown is used when no origin can be derived from a link.
const SourceUnknown = "Unknown Website"

// ResourceType classifies what a piece of feedback rates.
type ResourceType string

// Available resource types.
const (
	// ResourceTypeArticle is a web article or tutorial page.
	ResourceTypeArticle ResourceType = "article"

	// ResourceTypeVideo is a video resource.
	ResourceTypeVideo ResourceType = "video"
)

// IsValid returns true if the resource type is recognised.
func (t ResourceType) IsValid() bool {
	return t == ResourceTypeArticle || t == ResourceTypeVideo
}

// Feedback is one append-only rating of a resource within a module.
// Feedback rows are never mutated or deleted.
type Feedback struct {
	// ID is the unique identifier for the feedback entry.
	ID string

	// ModuleID links to the module the resource belongs to.
	ModuleID string

	// ResourceLink is the rated resource's URL.
	ResourceLink string

	// ResourceType is article or video.
	ResourceType ResourceType

	// Source is the normalised origin identifier (e.g. a domain).
	Source string

	// Rating is the user's score, MinRating..MaxRating inclusive.
	Rating int

	// CreatedAt is when the feedback was recorded.
	CreatedAt time.Time
}

// ValidateRating rejects ratings outside the accepted range.
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("%w: rating %d outside [%d,%d]", ErrInvalidRating, rating, MinRating, MaxRating)
	}
	return nil
}

// Note holds generated study notes for a video within a module.
// Notes are append-only.
type Note struct {
	// ID is the unique identifier for the note.
	ID string

	// ModuleID links to the module the video belongs to.
	ModuleID string

	// VideoLink is the video the notes were taken from.
	VideoLink string

	// Content is the note text.
	Content string

	// CreatedAt is when the note was recorded.
	CreatedAt time.Time
}

// NormalizeSource derives a feedback source identifier from a resource
// link: the URL host with any "www." prefix removed. Links that yield no
// usable host normalise to SourceUnknown.
func NormalizeSource(link string) string {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || u.Host == "" {
		return SourceUnknown
	}
	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	if host == "" {
		return SourceUnknown
	}
	return host
}
