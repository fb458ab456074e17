package driven

import (
	"context"
	"time"

	"github.com/curio-labs/curio-cli/internal/core/domain"
)

// PlanStore persists plans and their modules.
// Backed by SQLite.
//
// Write operations are transactional: a failure rolls the enclosing
// transaction back and surfaces the error; partial writes are never
// visible. Reads within one logical operation observe that operation's
// own writes.
type PlanStore interface {
	// CreatePlan stores a new plan with its topic embedding.
	// Returns domain.ErrAlreadyExists when the topic is taken.
	CreatePlan(ctx context.Context, plan *domain.Plan) error

	// GetPlan retrieves a plan by ID, modules included in step order.
	GetPlan(ctx context.Context, id string) (*domain.Plan, error)

	// GetPlanByTopic retrieves a plan by exact, case-sensitive topic.
	GetPlanByTopic(ctx context.Context, topic string) (*domain.Plan, error)

	// FindPlanByTopicFold retrieves a plan by case-insensitive exact
	// topic match. Used by reputation summarisation, where recall
	// matters more than key identity.
	FindPlanByTopicFold(ctx context.Context, topic string) (*domain.Plan, error)

	// ListPlans returns all plans without modules, for display.
	ListPlans(ctx context.Context) ([]domain.Plan, error)

	// ListPlanEmbeddings returns every plan's ID, creation time and
	// embedding, for hydrating the plan index at startup.
	ListPlanEmbeddings(ctx context.Context) ([]PlanEmbedding, error)

	// AppendModule assigns the next step number for the module's plan
	// and inserts the module, atomically. Concurrent writers for the
	// same plan never produce a duplicate or a gap; the losing writer
	// retries on conflict. The assigned step number is set on module.
	AppendModule(ctx context.Context, module *domain.Module) error

	// GetModule retrieves a module by ID.
	GetModule(ctx context.Context, id string) (*domain.Module, error)

	// CompleteModule marks a module as complete. The only mutation a
	// module sees after creation.
	CompleteModule(ctx context.Context, id string) error
}

// PlanEmbedding is the slice of plan state the index needs.
type PlanEmbedding struct {
	// PlanID identifies the plan.
	PlanID string

	// CreatedAt is the plan's creation time, used for tie-breaking.
	CreatedAt time.Time

	// Embedding is the stored topic vector.
	Embedding []float32
}

// FeedbackStore persists feedback and notes. Both are append-only;
// there are no update or delete operations.
type FeedbackStore interface {
	// AddFeedback appends a feedback entry.
	AddFeedback(ctx context.Context, feedback *domain.Feedback) error

	// ListFeedbackByPlan returns all feedback attached to any module
	// of the given plan.
	ListFeedbackByPlan(ctx context.Context, planID string) ([]domain.Feedback, error)

	// AddNote appends a note.
	AddNote(ctx context.Context, note *domain.Note) error

	// ListNotesByModule returns all notes for a module, oldest first.
	ListNotesByModule(ctx context.Context, moduleID string) ([]domain.Note, error)
}
