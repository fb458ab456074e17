package driven

import (
	"context"
	"time"
)

// PlanIndex provides similarity lookup of prior plans by topic embedding.
//
// The baseline implementation is a linear cosine scan, which is correct
// at the scale of distinct topics; this port exists so an indexed
// nearest-neighbour structure can replace it without touching callers.
type PlanIndex interface {
	// Add registers a plan's embedding. All embeddings must share the
	// index's dimensionality; mismatches return domain.ErrDimensionMismatch.
	Add(ctx context.Context, entry IndexEntry) error

	// Lookup returns the most similar plan whose cosine similarity with
	// the query strictly exceeds the acceptance threshold, or found=false
	// when the index is empty or nothing qualifies. A zero-magnitude
	// stored or query vector compares as similarity 0, never an error.
	Lookup(ctx context.Context, query []float32) (match PlanMatch, found bool, err error)

	// Len returns the number of indexed plans.
	Len() int
}

// IndexEntry is one plan's presence in the index.
type IndexEntry struct {
	// PlanID identifies the plan.
	PlanID string

	// CreatedAt is the plan's creation time. Among equally similar
	// plans the earliest-created wins, so lookups are deterministic.
	CreatedAt time.Time

	// Embedding is the plan's topic vector.
	Embedding []float32
}

// PlanMatch is a successful similarity lookup.
type PlanMatch struct {
	// PlanID is the matched plan.
	PlanID string

	// Similarity is the cosine similarity with the query (0-1).
	Similarity float64
}
