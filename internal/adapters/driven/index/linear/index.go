// Package linear provides a brute-force cosine similarity implementation
// of the plan index port. A linear scan over every stored embedding is
// exact and fast at the scale of distinct learning topics.
package linear

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/curio-labs/curio-cli/internal/core/domain"
	"github.com/curio-labs/curio-cli/internal/core/ports/driven"
)

// similarityThreshold is the minimum cosine similarity, exclusive, for a
// stored plan to count as a match for an incoming topic.
const similarityThreshold = 0.6

// Ensure Index implements the interface.
var _ driven.PlanIndex = (*Index)(nil)

// Index is an in-memory, linear-scan plan index. The dimensionality is
// fixed by the first entry added; later entries and queries must agree.
type Index struct {
	mu      sync.RWMutex
	dims    int
	entries []driven.IndexEntry
}

// New creates an empty index.
func New() *Index {
	return &Index{}
}

// Hydrate creates an index preloaded with stored plan embeddings.
func Hydrate(entries []driven.PlanEmbedding) (*Index, error) {
	idx := New()
	for _, e := range entries {
		err := idx.Add(context.Background(), driven.IndexEntry{
			PlanID:    e.PlanID,
			CreatedAt: e.CreatedAt,
			Embedding: e.Embedding,
		})
		if err != nil {
			return nil, fmt.Errorf("hydrating index with plan %s: %w", e.PlanID, err)
		}
	}
	return idx, nil
}

// Add registers a plan's embedding.
func (idx *Index) Add(_ context.Context, entry driven.IndexEntry) error {
	if len(entry.Embedding) == 0 {
		return fmt.Errorf("%w: empty embedding for plan %s", domain.ErrDimensionMismatch, entry.PlanID)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.dims == 0 {
		idx.dims = len(entry.Embedding)
	} else if len(entry.Embedding) != idx.dims {
		return fmt.Errorf("%w: got %d dimensions, index holds %d",
			domain.ErrDimensionMismatch, len(entry.Embedding), idx.dims)
	}

	idx.entries = append(idx.entries, entry)
	return nil
}

// Lookup scans every entry and returns the best match above the
// threshold. Ties resolve to the earliest-created plan, then the lowest
// plan ID, so repeated lookups always land on the same plan.
func (idx *Index) Lookup(_ context.Context, query []float32) (driven.PlanMatch, bool, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(idx.entries) == 0 {
		return driven.PlanMatch{}, false, nil
	}
	if len(query) != idx.dims {
		return driven.PlanMatch{}, false, fmt.Errorf("%w: query has %d dimensions, index holds %d",
			domain.ErrDimensionMismatch, len(query), idx.dims)
	}

	var best driven.IndexEntry
	bestSimilarity := -1.0
	found := false
	for _, entry := range idx.entries {
		similarity := cosineSimilarity(query, entry.Embedding)
		if similarity <= similarityThreshold {
			continue
		}
		if !found || similarity > bestSimilarity || (similarity == bestSimilarity && earlier(entry, best)) {
			best = entry
			bestSimilarity = similarity
			found = true
		}
	}

	if !found {
		return driven.PlanMatch{}, false, nil
	}
	return driven.PlanMatch{PlanID: best.PlanID, Similarity: bestSimilarity}, true, nil
}

// Len returns the number of indexed plans.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// earlier orders entries by creation time, then plan ID.
func earlier(a, b driven.IndexEntry) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.PlanID < b.PlanID
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// A zero-magnitude vector on either side yields 0.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
