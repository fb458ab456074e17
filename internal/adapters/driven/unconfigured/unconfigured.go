// Package unconfigured provides driven port implementations that fail
// with a descriptive error. The composition root substitutes these when
// a provider's API key is absent, so commands that never touch the
// provider keep working and the ones that do explain what is missing.
package unconfigured

import (
	"context"
	"fmt"

	"github.com/curio-labs/curio-cli/internal/core/domain"
	"github.com/curio-labs/curio-cli/internal/core/ports/driven"
)

// Interface checks.
var (
	_ driven.JudgeService        = (*Judge)(nil)
	_ driven.EmbeddingService    = (*Embedder)(nil)
	_ driven.WebSearchProvider   = (*WebSearch)(nil)
	_ driven.VideoSearchProvider = (*VideoSearch)(nil)
	_ driven.TranscriptService   = (*Transcripts)(nil)
)

// Judge reports the judge as unavailable. Reason names the missing
// credential, e.g. "GEMINI_API_KEY not set".
type Judge struct {
	Reason string
}

func (j *Judge) Generate(context.Context, string, driven.GenerateOptions) (string, error) {
	return "", fmt.Errorf("%w: %s", domain.ErrJudgeUnavailable, j.Reason)
}

func (j *Judge) ModelName() string { return "unconfigured" }

func (j *Judge) Close() error { return nil }

// Embedder reports the embedding service as unavailable.
type Embedder struct {
	Reason string
}

func (e *Embedder) Embed(context.Context, string) ([]float32, error) {
	return nil, fmt.Errorf("%w: %s", domain.ErrEmbeddingUnavailable, e.Reason)
}

func (e *Embedder) Dimensions() int { return 0 }

func (e *Embedder) ModelName() string { return "unconfigured" }

func (e *Embedder) Close() error { return nil }

// WebSearch reports the web search provider as unavailable.
type WebSearch struct {
	Reason string
}

func (w *WebSearch) Search(context.Context, string) ([]domain.WebResult, error) {
	return nil, fmt.Errorf("%w: %s", domain.ErrSearchUnavailable, w.Reason)
}

// VideoSearch reports the video search provider as unavailable.
type VideoSearch struct {
	Reason string
}

func (v *VideoSearch) Search(context.Context, string, domain.VideoOrder, int) ([]domain.VideoResult, error) {
	return nil, fmt.Errorf("%w: %s", domain.ErrSearchUnavailable, v.Reason)
}

// Transcripts reports the transcript service as unavailable.
type Transcripts struct {
	Reason string
}

func (t *Transcripts) Fetch(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: %s", domain.ErrNoTranscript, t.Reason)
}
