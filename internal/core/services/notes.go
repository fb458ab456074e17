package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/curio-labs/curio-cli/internal/core/domain"
	"github.com/curio-labs/curio-cli/internal/core/ports/driven"
	"github.com/curio-labs/curio-cli/internal/core/ports/driving"
	"github.com/curio-labs/curio-cli/internal/logger"
)

// transcriptLimit caps how much transcript text goes to the judge.
const transcriptLimit = 24000

// Ensure NoteTaker implements the interface.
var _ driving.NoteService = (*NoteTaker)(nil)

// NoteTaker turns a module video's transcript into persisted study notes.
type NoteTaker struct {
	plans      driven.PlanStore
	feedback   driven.FeedbackStore
	transcript driven.TranscriptService
	judge      driven.JudgeService
}

// NewNoteTaker creates a note taker.
func NewNoteTaker(
	plans driven.PlanStore,
	feedback driven.FeedbackStore,
	transcript driven.TranscriptService,
	judge driven.JudgeService,
) *NoteTaker {
	return &NoteTaker{plans: plans, feedback: feedback, transcript: transcript, judge: judge}
}

// TakeNotes fetches the transcript, asks the judge for structured study
// notes and stores them against the module.
func (n *NoteTaker) TakeNotes(ctx context.Context, moduleID, videoLink string) (*domain.Note, error) {
	if n.transcript == nil {
		return nil, fmt.Errorf("%w: transcript service not configured", domain.ErrNoTranscript)
	}

	module, err := n.plans.GetModule(ctx, moduleID)
	if err != nil {
		return nil, fmt.Errorf("resolving module %s: %w", moduleID, err)
	}

	text, err := n.transcript.Fetch(ctx, videoLink)
	if err != nil {
		return nil, fmt.Errorf("fetching transcript for %s: %w", videoLink, err)
	}
	if len(text) > transcriptLimit {
		text = text[:transcriptLimit]
	}

	prompt := fmt.Sprintf(
		"You are a study assistant. Write concise, structured study notes for a beginner working on %q, based on this video transcript. "+
			"Use short sections with key points and definitions.\n\nTranscript:\n%s",
		module.Title, text,
	)
	content, err := n.judge.Generate(ctx, prompt, driven.GenerateOptions{Temperature: 0.3})
	if err != nil {
		return nil, fmt.Errorf("generating notes for %s: %w", videoLink, err)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: empty notes", domain.ErrMalformedJudgeOutput)
	}

	note := &domain.Note{
		ID:        uuid.NewString(),
		ModuleID:  moduleID,
		VideoLink: videoLink,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := n.feedback.AddNote(ctx, note); err != nil {
		return nil, fmt.Errorf("storing note: %w", err)
	}

	logger.Info("Stored notes for video %s on module %s", videoLink, moduleID)
	return note, nil
}

// ListNotes returns stored notes for a module, oldest first.
func (n *NoteTaker) ListNotes(ctx context.Context, moduleID string) ([]domain.Note, error) {
	return n.feedback.ListNotesByModule(ctx, moduleID)
}
