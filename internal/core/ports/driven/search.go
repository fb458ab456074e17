package driven

import (
	"context"

	"github.com/curio-labs/curio-cli/internal/core/domain"
)

// WebSearchProvider finds web articles for a query.
// Zero hits is not an error: providers return an empty list.
type WebSearchProvider interface {
	// Search returns ordered results for the query.
	Search(ctx context.Context, query string) ([]domain.WebResult, error)
}

// VideoSearchProvider finds videos for a query under a given ordering.
// Zero hits is not an error: providers return an empty list.
type VideoSearchProvider interface {
	// Search returns up to maxResults ordered results for the query.
	Search(ctx context.Context, query string, order domain.VideoOrder, maxResults int) ([]domain.VideoResult, error)
}

// TranscriptService fetches a video's transcript as timestamped text.
// Returns domain.ErrNoTranscript when none is available.
type TranscriptService interface {
	// Fetch returns the transcript for the given video link.
	Fetch(ctx context.Context, videoLink string) (string, error)
}
