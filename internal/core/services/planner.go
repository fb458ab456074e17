package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/curio-labs/curio-cli/internal/core/domain"
	"github.com/curio-labs/curio-cli/internal/core/ports/driven"
	"github.com/curio-labs/curio-cli/internal/core/ports/driving"
	"github.com/curio-labs/curio-cli/internal/logger"
)

// Ensure Planner implements the interface.
var _ driving.PlannerService = (*Planner)(nil)

// Planner owns the topic intake flow: embed, look up prior plans by
// similarity, and only on a miss pay for outline generation and
// per-step curation.
type Planner struct {
	plans    driven.PlanStore
	index    driven.PlanIndex
	embedder driven.EmbeddingService
	judge    driven.JudgeService
	curation driving.CurationService
	settings domain.Settings
}

// NewPlanner creates a planner.
func NewPlanner(
	plans driven.PlanStore,
	index driven.PlanIndex,
	embedder driven.EmbeddingService,
	judge driven.JudgeService,
	curation driving.CurationService,
	settings domain.Settings,
) *Planner {
	return &Planner{
		plans:    plans,
		index:    index,
		embedder: embedder,
		judge:    judge,
		curation: curation,
		settings: settings.Normalise(),
	}
}

// Learn returns the plan for a topic: a sufficiently similar stored
// plan when one exists, otherwise a freshly generated and curated one.
func (p *Planner) Learn(ctx context.Context, topic string) (*domain.Plan, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: topic required", domain.ErrInvalidInput)
	}

	embedding, err := p.embedder.Embed(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("embedding topic %q: %w", topic, err)
	}

	match, found, err := p.index.Lookup(ctx, embedding)
	if err != nil {
		return nil, fmt.Errorf("plan lookup for %q: %w", topic, err)
	}
	if found {
		logger.Info("Found similar plan (similarity %.2f), reusing it", match.Similarity)
		plan, err := p.plans.GetPlan(ctx, match.PlanID)
		if err != nil {
			return nil, fmt.Errorf("loading matched plan %s: %w", match.PlanID, err)
		}
		return plan, nil
	}

	logger.Info("No similar plan for %q, generating a new curriculum", topic)
	steps, err := p.outline(ctx, topic)
	if err != nil {
		return nil, err
	}

	for i, step := range steps {
		if _, err := p.curation.Curate(ctx, topic, step); err != nil {
			return nil, fmt.Errorf("curating step %d (%q): %w", i+1, step, err)
		}
	}

	plan, err := p.plans.GetPlanByTopic(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("loading new plan for %q: %w", topic, err)
	}
	return plan, nil
}

// outline asks the judge for a numbered curriculum outline and parses
// it into step descriptions. Outline failure is fatal to Learn; there
// is nothing to curate without steps.
func (p *Planner) outline(ctx context.Context, topic string) ([]string, error) {
	prompt := fmt.Sprintf(
		"You are an expert curriculum designer. Create a step-by-step learning path of exactly %d steps for a complete beginner learning %q. "+
			"Present it as a simple numbered list, one step per line, with no nested bullet points and no extra explanations.",
		p.settings.StepCount, topic,
	)
	response, err := p.judge.Generate(ctx, prompt, driven.GenerateOptions{Temperature: 0.5})
	if err != nil {
		return nil, fmt.Errorf("generating outline for %q: %w", topic, err)
	}

	steps := parseOutline(response, p.settings.StepCount)
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: outline contained no steps", domain.ErrMalformedJudgeOutput)
	}
	return steps, nil
}

// parseOutline extracts step descriptions from a numbered list,
// tolerating "1.", "1)", "-" and "*" markers. At most limit steps.
func parseOutline(response string, limit int) []string {
	var steps []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "0123456789")
		line = strings.TrimLeft(line, ".)")
		line = strings.TrimLeft(line, "-*")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		steps = append(steps, line)
		if len(steps) == limit {
			break
		}
	}
	return steps
}

// Ensure Plans implements the interface.
var _ driving.PlanService = (*Plans)(nil)

// Plans exposes stored plans to the session and display layers.
type Plans struct {
	store driven.PlanStore
}

// NewPlans creates a plan service over the store.
func NewPlans(store driven.PlanStore) *Plans {
	return &Plans{store: store}
}

// GetPlan retrieves a plan with its modules.
func (p *Plans) GetPlan(ctx context.Context, id string) (*domain.Plan, error) {
	return p.store.GetPlan(ctx, id)
}

// FindByTopic retrieves a plan by case-insensitive topic match.
func (p *Plans) FindByTopic(ctx context.Context, topic string) (*domain.Plan, error) {
	return p.store.FindPlanByTopicFold(ctx, strings.TrimSpace(topic))
}

// ListPlans returns all stored plans.
func (p *Plans) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	return p.store.ListPlans(ctx)
}

// CompleteModule marks a module as finished.
func (p *Plans) CompleteModule(ctx context.Context, moduleID string) error {
	if err := p.store.CompleteModule(ctx, moduleID); err != nil {
		return fmt.Errorf("completing module %s: %w", moduleID, err)
	}
	return nil
}
