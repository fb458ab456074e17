package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidRating indicates a feedback rating outside the accepted range.
	ErrInvalidRating = errors.New("invalid rating")

	// ErrRateLimited indicates a provider rejected a call for quota reasons.
	ErrRateLimited = errors.New("rate limited")

	// ErrMalformedJudgeOutput indicates the judge's response could not be
	// parsed into a curated resource. The analysis cache is left
	// unpopulated so a retry can attempt again.
	ErrMalformedJudgeOutput = errors.New("malformed judge output")

	// ErrStepConflict indicates a concurrent writer claimed the same step
	// number. The losing writer retries inside the store.
	ErrStepConflict = errors.New("step number conflict")

	// ErrDimensionMismatch indicates an embedding whose length differs
	// from the index's fixed dimensionality.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. A plan cannot be created without an embedding, so this
	// is fatal to curation of new topics.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrJudgeUnavailable indicates the judge service is not configured.
	ErrJudgeUnavailable = errors.New("judge service unavailable")

	// ErrSearchUnavailable indicates a search provider is not configured.
	ErrSearchUnavailable = errors.New("search provider unavailable")

	// ErrNoTranscript indicates no transcript is available for a video.
	ErrNoTranscript = errors.New("no transcript available")
)
