package driving

import (
	"context"

	"github.com/curio-labs/curio-cli/internal/core/domain"
)

// RecordFeedbackRequest is the typed boundary for recording a rating.
// Multi-field calls cross the port as a validated structure, never as
// an encoded string.
type RecordFeedbackRequest struct {
	// ModuleID is the module the rated resource belongs to.
	ModuleID string

	// ResourceLink is the rated resource's URL.
	ResourceLink string

	// ResourceType is article or video.
	ResourceType domain.ResourceType

	// Source is the normalised origin identifier. When empty it is
	// derived from ResourceLink.
	Source string

	// Rating is the user's score, 1-5.
	Rating int
}

// FeedbackService records ratings and aggregates them into a
// reputation summary that biases future judgments.
type FeedbackService interface {
	// RecordFeedback appends a rating. Ratings outside 1-5 are rejected
	// with domain.ErrInvalidRating; interactive re-prompting on invalid
	// input is the caller's responsibility.
	RecordFeedback(ctx context.Context, req RecordFeedbackRequest) (*domain.Feedback, error)

	// SummarizeReputation renders liked and blocked sources for the
	// topic's plan as natural-language clauses. Always returns usable
	// text, even when no feedback exists.
	SummarizeReputation(ctx context.Context, topic string) (string, error)
}

// NoteService generates and stores study notes for module videos.
type NoteService interface {
	// TakeNotes fetches the video transcript, asks the judge for study
	// notes and persists them against the module.
	TakeNotes(ctx context.Context, moduleID, videoLink string) (*domain.Note, error)

	// ListNotes returns stored notes for a module, oldest first.
	ListNotes(ctx context.Context, moduleID string) ([]domain.Note, error)
}
