package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/curio-labs/curio-cli/internal/core/domain"
	"github.com/curio-labs/curio-cli/internal/core/ports/driven"
	"github.com/curio-labs/curio-cli/internal/core/ports/driving"
	"github.com/curio-labs/curio-cli/internal/logger"
)

// Ensure Curator implements the interface.
var _ driving.CurationService = (*Curator)(nil)

// Curator is the curation pipeline: for one curriculum step it fans out
// to the search providers, judges the candidates under the topic's
// reputation hint, and persists the result as the plan's next module.
//
// Degradation policy: search and judge failures produce sentinel
// resources and the step still persists; embedding failures during plan
// creation are fatal because a plan cannot exist without an embedding.
type Curator struct {
	plans    driven.PlanStore
	index    driven.PlanIndex
	embedder driven.EmbeddingService
	judge    driven.JudgeService
	web      driven.WebSearchProvider
	video    driven.VideoSearchProvider
	analyzer *Analyzer
	feedback driving.FeedbackService
	settings domain.Settings
}

// NewCurator creates a curation pipeline.
func NewCurator(
	plans driven.PlanStore,
	index driven.PlanIndex,
	embedder driven.EmbeddingService,
	judge driven.JudgeService,
	web driven.WebSearchProvider,
	video driven.VideoSearchProvider,
	analyzer *Analyzer,
	feedback driving.FeedbackService,
	settings domain.Settings,
) *Curator {
	return &Curator{
		plans:    plans,
		index:    index,
		embedder: embedder,
		judge:    judge,
		web:      web,
		video:    video,
		analyzer: analyzer,
		feedback: feedback,
		settings: settings.Normalise(),
	}
}

// Curate produces the curated resource set for one step and persists it
// as a module of the topic's plan. The returned module carries its
// assigned step number.
func (c *Curator) Curate(ctx context.Context, topic, stepDescription string) (*domain.Module, error) {
	topic = strings.TrimSpace(topic)
	stepDescription = strings.TrimSpace(stepDescription)
	if topic == "" || stepDescription == "" {
		return nil, fmt.Errorf("%w: topic and step description required", domain.ErrInvalidInput)
	}

	logger.Section("Curating: " + stepDescription)

	query := c.searchQuery(ctx, stepDescription)

	// One reputation summary per step, biasing every judgment below.
	hint, err := c.feedback.SummarizeReputation(ctx, topic)
	if err != nil {
		logger.Warn("Reputation summary for %q failed: %v", topic, err)
		hint = ""
	}

	article := c.curateArticle(ctx, query, hint)
	videos := c.curateVideos(ctx, query, hint)

	plan, err := c.resolvePlan(ctx, topic)
	if err != nil {
		return nil, err
	}

	module := &domain.Module{
		ID:        uuid.NewString(),
		PlanID:    plan.ID,
		Title:     stepDescription,
		Article:   article,
		Videos:    videos,
		CreatedAt: time.Now().UTC(),
	}
	if err := c.plans.AppendModule(ctx, module); err != nil {
		return nil, fmt.Errorf("persisting module for step %q: %w", stepDescription, err)
	}

	logger.Info("Persisted step %d of plan %q", module.StepNumber, plan.Topic)
	return module, nil
}

// searchQuery asks the judge for a beginner-friendly search query for
// the step. On failure the step description itself is the query.
func (c *Curator) searchQuery(ctx context.Context, stepDescription string) string {
	prompt := fmt.Sprintf(
		"Generate a simple, effective search query a beginner would use to find a high-quality tutorial on: %q. Provide only the query itself, nothing else.",
		stepDescription,
	)
	response, err := c.judge.Generate(ctx, prompt, driven.GenerateOptions{Temperature: 0.2})
	if err != nil {
		logger.Warn("Query generation failed, searching the step text directly: %v", err)
		return stepDescription
	}
	query := strings.TrimSpace(strings.Trim(strings.TrimSpace(response), `"`))
	if query == "" {
		return stepDescription
	}
	return query
}

// curateArticle searches the web and judges the candidates.
func (c *Curator) curateArticle(ctx context.Context, query, hint string) domain.CuratedResource {
	results, err := c.web.Search(ctx, query)
	if err != nil {
		// Zero results is not an error; transport failures degrade the
		// same way, to the no-results sentinel via an empty list.
		logger.Warn("Web search for %q failed: %v", query, err)
		results = nil
	}
	return c.analyzer.TakeBest(ctx, query, domain.WebCandidates(results), domain.ResultKindWeb, hint)
}

// curateVideos searches each configured category and judges per category.
// The returned map's keys equal the configured category set.
func (c *Curator) curateVideos(ctx context.Context, query, hint string) map[string]domain.CuratedResource {
	videos := make(map[string]domain.CuratedResource, len(c.settings.VideoCategories))
	for _, category := range c.settings.VideoCategories {
		results, err := c.video.Search(ctx, query, category.Order, c.settings.MaxResults)
		if err != nil {
			logger.Warn("Video search (%s) for %q failed: %v", category.Order, query, err)
			results = nil
		}
		categoryQuery := fmt.Sprintf("%s video for %s", category.Name, query)
		videos[category.Name] = c.analyzer.TakeBest(ctx, categoryQuery, domain.VideoCandidates(results), domain.ResultKindVideo, hint)
	}
	return videos
}

// resolvePlan returns the plan owning the topic, creating it (embedding
// included) when absent. Embedding failure is fatal here: unlike a
// degraded judgment, a plan without an embedding can never be found
// again by similarity.
func (c *Curator) resolvePlan(ctx context.Context, topic string) (*domain.Plan, error) {
	plan, err := c.plans.GetPlanByTopic(ctx, topic)
	if err == nil {
		return plan, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("resolving plan for %q: %w", topic, err)
	}

	embedding, err := c.embedder.Embed(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("embedding topic %q: %w", topic, err)
	}

	plan = &domain.Plan{
		ID:        uuid.NewString(),
		Topic:     topic,
		Embedding: embedding,
		CreatedAt: time.Now().UTC(),
	}
	if err := c.plans.CreatePlan(ctx, plan); err != nil {
		// A concurrent curation for the same topic may have won the race.
		if errors.Is(err, domain.ErrAlreadyExists) {
			return c.plans.GetPlanByTopic(ctx, topic)
		}
		return nil, fmt.Errorf("creating plan for %q: %w", topic, err)
	}

	if err := c.index.Add(ctx, driven.IndexEntry{PlanID: plan.ID, CreatedAt: plan.CreatedAt, Embedding: embedding}); err != nil {
		// The plan is durable; only in-process dedup suffers until restart.
		logger.Warn("Indexing new plan %q failed: %v", topic, err)
	}

	logger.Info("Created plan %q (%d-dimensional embedding)", topic, len(embedding))
	return plan, nil
}
