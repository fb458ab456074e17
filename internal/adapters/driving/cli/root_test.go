package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/curio-labs/curio-cli/internal/core/domain"
	"github.com/curio-labs/curio-cli/internal/core/ports/driving"
)

// testPlan builds a two-step plan with one incomplete module.
func testPlan() *domain.Plan {
	return &domain.Plan{
		ID:        "plan-1",
		Topic:     "Learn Guitar",
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Modules: []domain.Module{
			{
				ID:         "module-2",
				PlanID:     "plan-1",
				StepNumber: 2,
				Title:      "Learn strumming patterns",
				Article:    domain.NoResultsSentinel(domain.ResultKindWeb),
				Videos: map[string]domain.CuratedResource{
					"General": domain.RateLimitSentinel(),
				},
			},
			{
				ID:         "module-1",
				PlanID:     "plan-1",
				StepNumber: 1,
				Title:      "Learn open chords",
				IsComplete: true,
				Article: domain.CuratedResource{
					Title:  "Open Chords for Beginners",
					Link:   "https://www.justinguitar.com/chords",
					Reason: "Clear diagrams and practice routines.",
				},
				Videos: map[string]domain.CuratedResource{
					"General": {
						Title:  "Your First Chords",
						Link:   "https://www.youtube.com/watch?v=abc123",
						Reason: "Beginner friendly pacing.",
					},
				},
			},
		},
	}
}

type stubPlanner struct {
	plan   *domain.Plan
	err    error
	topics []string
}

func (s *stubPlanner) Learn(_ context.Context, topic string) (*domain.Plan, error) {
	s.topics = append(s.topics, topic)
	if s.err != nil {
		return nil, s.err
	}
	return s.plan, nil
}

type stubPlanService struct {
	plans     []*domain.Plan
	completed []string
	err       error
}

func (s *stubPlanService) GetPlan(_ context.Context, id string) (*domain.Plan, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, plan := range s.plans {
		if plan.ID == id {
			return plan, nil
		}
	}
	return nil, fmt.Errorf("plan %s: %w", id, domain.ErrNotFound)
}

func (s *stubPlanService) FindByTopic(_ context.Context, topic string) (*domain.Plan, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, plan := range s.plans {
		if strings.EqualFold(plan.Topic, topic) {
			return plan, nil
		}
	}
	return nil, fmt.Errorf("topic %q: %w", topic, domain.ErrNotFound)
}

func (s *stubPlanService) ListPlans(_ context.Context) ([]domain.Plan, error) {
	if s.err != nil {
		return nil, s.err
	}
	plans := make([]domain.Plan, 0, len(s.plans))
	for _, plan := range s.plans {
		plans = append(plans, *plan)
	}
	return plans, nil
}

func (s *stubPlanService) CompleteModule(_ context.Context, moduleID string) error {
	if s.err != nil {
		return s.err
	}
	s.completed = append(s.completed, moduleID)
	for _, plan := range s.plans {
		for i := range plan.Modules {
			if plan.Modules[i].ID == moduleID {
				plan.Modules[i].IsComplete = true
				return nil
			}
		}
	}
	return fmt.Errorf("module %s: %w", moduleID, domain.ErrNotFound)
}

type stubFeedbackService struct {
	recorded []driving.RecordFeedbackRequest
	summary  string
	err      error
}

func (s *stubFeedbackService) RecordFeedback(_ context.Context, req driving.RecordFeedbackRequest) (*domain.Feedback, error) {
	if s.err != nil {
		return nil, s.err
	}
	if err := domain.ValidateRating(req.Rating); err != nil {
		return nil, err
	}
	s.recorded = append(s.recorded, req)
	return &domain.Feedback{
		ID:           "feedback-1",
		ModuleID:     req.ModuleID,
		ResourceLink: req.ResourceLink,
		ResourceType: req.ResourceType,
		Source:       domain.NormalizeSource(req.ResourceLink),
		Rating:       req.Rating,
	}, nil
}

func (s *stubFeedbackService) SummarizeReputation(_ context.Context, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.summary, nil
}

type stubNoteService struct {
	notes []domain.Note
	taken []string
	err   error
}

func (s *stubNoteService) TakeNotes(_ context.Context, moduleID, videoLink string) (*domain.Note, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.taken = append(s.taken, videoLink)
	return &domain.Note{
		ID:        "note-1",
		ModuleID:  moduleID,
		VideoLink: videoLink,
		Content:   "- Tune the guitar before practising",
	}, nil
}

func (s *stubNoteService) ListNotes(_ context.Context, _ string) ([]domain.Note, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.notes, nil
}

// setupTestServices wires stub services and returns a cleanup that
// restores whatever was wired before.
func setupTestServices() func() {
	oldPlanner := plannerService
	oldPlans := planService
	oldFeedback := feedbackService
	oldNotes := noteService

	plan := testPlan()
	plannerService = &stubPlanner{plan: plan}
	planService = &stubPlanService{plans: []*domain.Plan{plan}}
	feedbackService = &stubFeedbackService{summary: "No past feedback found for this topic."}
	noteService = &stubNoteService{}

	return func() {
		plannerService = oldPlanner
		planService = oldPlans
		feedbackService = oldFeedback
		noteService = oldNotes
	}
}
