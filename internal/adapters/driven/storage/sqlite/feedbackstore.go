package sqlite

import (
	"context"
	"fmt"

	"github.com/curio-labs/curio-cli/internal/core/domain"
	"github.com/curio-labs/curio-cli/internal/core/ports/driven"
)

// feedbackStore implements driven.FeedbackStore.
type feedbackStore struct {
	store *Store
}

var _ driven.FeedbackStore = (*feedbackStore)(nil)

// AddFeedback appends a feedback entry. Rows are never updated.
func (s *feedbackStore) AddFeedback(ctx context.Context, feedback *domain.Feedback) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO feedback (id, module_id, resource_link, resource_type, source, rating, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, feedback.ID, feedback.ModuleID, feedback.ResourceLink, string(feedback.ResourceType),
		feedback.Source, feedback.Rating, feedback.CreatedAt)

	if err != nil {
		return fmt.Errorf("saving feedback: %w", err)
	}
	return nil
}

// ListFeedbackByPlan returns all feedback attached to any module of the
// given plan, oldest first.
func (s *feedbackStore) ListFeedbackByPlan(ctx context.Context, planID string) ([]domain.Feedback, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT f.id, f.module_id, f.resource_link, f.resource_type, f.source, f.rating, f.created_at
		FROM feedback f
		JOIN modules m ON m.id = f.module_id
		WHERE m.plan_id = ?
		ORDER BY f.created_at, f.id
	`, planID)
	if err != nil {
		return nil, fmt.Errorf("querying feedback: %w", err)
	}
	defer rows.Close()

	var feedback []domain.Feedback //nolint:prealloc // size unknown from query
	for rows.Next() {
		var f domain.Feedback
		var resourceType string
		if err := rows.Scan(&f.ID, &f.ModuleID, &f.ResourceLink, &resourceType,
			&f.Source, &f.Rating, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning feedback: %w", err)
		}
		f.ResourceType = domain.ResourceType(resourceType)
		feedback = append(feedback, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating feedback: %w", err)
	}

	return feedback, nil
}

// AddNote appends a note.
func (s *feedbackStore) AddNote(ctx context.Context, note *domain.Note) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO notes (id, module_id, video_link, content, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, note.ID, note.ModuleID, note.VideoLink, note.Content, note.CreatedAt)

	if err != nil {
		return fmt.Errorf("saving note: %w", err)
	}
	return nil
}

// ListNotesByModule returns all notes for a module, oldest first.
func (s *feedbackStore) ListNotesByModule(ctx context.Context, moduleID string) ([]domain.Note, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, module_id, video_link, content, created_at
		FROM notes WHERE module_id = ?
		ORDER BY created_at, id
	`, moduleID)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	var notes []domain.Note //nolint:prealloc // size unknown from query
	for rows.Next() {
		var n domain.Note
		if err := rows.Scan(&n.ID, &n.ModuleID, &n.VideoLink, &n.Content, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		notes = append(notes, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notes: %w", err)
	}

	return notes, nil
}
