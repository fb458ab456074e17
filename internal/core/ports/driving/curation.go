package driving

import (
	"context"

	"github.com/curio-labs/curio-cli/internal/core/domain"
)

// PlannerService turns a topic into a persisted learning plan,
// deduplicating against sufficiently similar prior plans.
type PlannerService interface {
	// Learn embeds the topic and looks it up in the plan index. A hit
	// returns the stored plan; a miss generates a curriculum outline
	// and curates every step before returning the new plan.
	Learn(ctx context.Context, topic string) (*domain.Plan, error)
}

// CurationService produces one curated resource set per curriculum step
// and persists it as a module of the owning plan.
type CurationService interface {
	// Curate searches, judges and persists the resources for one step.
	// The owning plan is resolved by exact topic, or created (with a
	// fresh embedding) when absent.
	Curate(ctx context.Context, topic, stepDescription string) (*domain.Module, error)
}

// PlanService exposes stored plans to the session and display layers.
type PlanService interface {
	// GetPlan retrieves a plan with its modules.
	GetPlan(ctx context.Context, id string) (*domain.Plan, error)

	// FindByTopic retrieves a plan by case-insensitive topic match.
	FindByTopic(ctx context.Context, topic string) (*domain.Plan, error)

	// ListPlans returns all stored plans.
	ListPlans(ctx context.Context) ([]domain.Plan, error)

	// CompleteModule marks a module as finished.
	CompleteModule(ctx context.Context, moduleID string) error
}
