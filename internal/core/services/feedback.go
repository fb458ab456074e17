package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/curio-labs/curio-cli/internal/core/domain"
	"github.com/curio-labs/curio-cli/internal/core/ports/driven"
	"github.com/curio-labs/curio-cli/internal/core/ports/driving"
	"github.com/curio-labs/curio-cli/internal/logger"
)

// Fallback summaries when no usable signal exists.
const (
	noFeedbackSummary    = "No past feedback found for this topic."
	noPreferencesSummary = "No strong preferences found in past feedback."
)

// Ensure FeedbackLedger implements the interface.
var _ driving.FeedbackService = (*FeedbackLedger)(nil)

// FeedbackLedger records resource ratings and aggregates them into a
// reputation summary. The ledger is append-only; aggregation applies
// the three-strikes rule so a single bad rating cannot permanently
// exclude a source.
type FeedbackLedger struct {
	plans    driven.PlanStore
	feedback driven.FeedbackStore
}

// NewFeedbackLedger creates a new feedback ledger.
func NewFeedbackLedger(plans driven.PlanStore, feedback driven.FeedbackStore) *FeedbackLedger {
	return &FeedbackLedger{plans: plans, feedback: feedback}
}

// RecordFeedback validates and appends one rating.
func (l *FeedbackLedger) RecordFeedback(ctx context.Context, req driving.RecordFeedbackRequest) (*domain.Feedback, error) {
	if err := domain.ValidateRating(req.Rating); err != nil {
		return nil, err
	}
	if !req.ResourceType.IsValid() {
		return nil, fmt.Errorf("%w: resource type %q", domain.ErrInvalidInput, req.ResourceType)
	}
	if req.ModuleID == "" {
		return nil, fmt.Errorf("%w: module ID required", domain.ErrInvalidInput)
	}

	source := req.Source
	if source == "" {
		if req.ResourceType == domain.ResourceTypeVideo {
			source = domain.SourceYouTube
		} else {
			source = domain.NormalizeSource(req.ResourceLink)
		}
	}

	feedback := &domain.Feedback{
		ID:           uuid.NewString(),
		ModuleID:     req.ModuleID,
		ResourceLink: req.ResourceLink,
		ResourceType: req.ResourceType,
		Source:       source,
		Rating:       req.Rating,
		CreatedAt:    time.Now().UTC(),
	}
	if err := l.feedback.AddFeedback(ctx, feedback); err != nil {
		return nil, fmt.Errorf("recording feedback: %w", err)
	}

	logger.Debug("Recorded %s feedback: source=%s rating=%d", feedback.ResourceType, feedback.Source, feedback.Rating)
	return feedback, nil
}

// SummarizeReputation aggregates the topic's feedback into liked and
// blocked source clauses. A source with at least one like is liked; a
// source with at least three dislikes is blocked. A source can appear
// in both clauses - the signal stays raw and the judge weighs it.
func (l *FeedbackLedger) SummarizeReputation(ctx context.Context, topic string) (string, error) {
	plan, err := l.plans.FindPlanByTopicFold(ctx, topic)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return noFeedbackSummary, nil
		}
		return "", fmt.Errorf("resolving plan for %q: %w", topic, err)
	}

	rows, err := l.feedback.ListFeedbackByPlan(ctx, plan.ID)
	if err != nil {
		return "", fmt.Errorf("listing feedback for plan %s: %w", plan.ID, err)
	}
	if len(rows) == 0 {
		return noFeedbackSummary, nil
	}

	type tally struct {
		likes    int
		dislikes int
	}
	tallies := make(map[string]*tally)
	for _, row := range rows {
		t := tallies[row.Source]
		if t == nil {
			t = &tally{}
			tallies[row.Source] = t
		}
		switch {
		case row.Rating >= domain.MinLikedRating:
			t.likes++
		case row.Rating <= domain.MaxDislikedRating:
			t.dislikes++
		}
	}

	var liked, blocked []string
	for source, t := range tallies {
		if t.likes >= domain.LikeThreshold {
			liked = append(liked, source)
		}
		if t.dislikes >= domain.BlockThreshold {
			blocked = append(blocked, source)
		}
	}
	// Deterministic clause order regardless of map iteration.
	sort.Strings(liked)
	sort.Strings(blocked)

	if len(liked) == 0 && len(blocked) == 0 {
		return noPreferencesSummary, nil
	}

	var clauses []string
	if len(liked) > 0 {
		clauses = append(clauses, fmt.Sprintf("The user has liked resources from: %s.", strings.Join(liked, ", ")))
	}
	if len(blocked) > 0 {
		clauses = append(clauses, fmt.Sprintf("The user wants to avoid resources from: %s.", strings.Join(blocked, ", ")))
	}
	return strings.Join(clauses, " "), nil
}
