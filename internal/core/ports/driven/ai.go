package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Unlike the judge, embedding failures are fatal to their callers: a
// plan cannot exist without an embedding, so errors propagate instead
// of degrading to sentinels.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size.
	// All stored plan embeddings share this dimensionality.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}

// JudgeService is the text-generation capability used for curriculum
// outlines, search query generation and best-candidate judgments.
//
// Responses are free text with no schema guarantee - callers must
// strip formatting artifacts (code fences) before parsing.
// Rate limiting surfaces as domain.ErrRateLimited so call sites can
// substitute sentinels.
type JudgeService interface {
	// Generate produces text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
