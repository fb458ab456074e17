package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/curio-labs/curio-cli/internal/core/domain"
	"github.com/curio-labs/curio-cli/internal/core/ports/driven"
)

// countingJudge is a scripted judge that records every prompt.
// Responses are served in order; the last one repeats.
type countingJudge struct {
	mu        sync.Mutex
	responses []string
	err       error
	calls     int
	prompts   []string
}

func (j *countingJudge) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls++
	j.prompts = append(j.prompts, prompt)
	if j.err != nil {
		return "", j.err
	}
	if len(j.responses) == 0 {
		return "", nil
	}
	response := j.responses[0]
	if len(j.responses) > 1 {
		j.responses = j.responses[1:]
	}
	return response, nil
}

func (j *countingJudge) ModelName() string { return "judge-stub" }
func (j *countingJudge) Close() error      { return nil }

func (j *countingJudge) callCount() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.calls
}

// stubEmbedder returns a fixed-dimensionality vector derived from the
// text length, or a scripted error.
type stubEmbedder struct {
	dims int
	err  error
}

func (e *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	dims := e.dims
	if dims == 0 {
		dims = 4
	}
	v := make([]float32, dims)
	for i := range v {
		v[i] = float32(len(text)%7 + i + 1)
	}
	return v, nil
}

func (e *stubEmbedder) Dimensions() int   { return e.dims }
func (e *stubEmbedder) ModelName() string { return "embedder-stub" }
func (e *stubEmbedder) Close() error      { return nil }

// stubWebSearch returns a fixed result list.
type stubWebSearch struct {
	results []domain.WebResult
	err     error
}

func (s *stubWebSearch) Search(_ context.Context, _ string) ([]domain.WebResult, error) {
	return s.results, s.err
}

// stubVideoSearch returns a fixed result list regardless of ordering.
type stubVideoSearch struct {
	results []domain.VideoResult
	err     error
	orders  []domain.VideoOrder
}

func (s *stubVideoSearch) Search(_ context.Context, _ string, order domain.VideoOrder, _ int) ([]domain.VideoResult, error) {
	s.orders = append(s.orders, order)
	return s.results, s.err
}

// memPlanStore is an in-memory PlanStore for service tests. Step
// numbers are assigned the way the SQLite store assigns them: count of
// existing modules plus one, under a lock.
type memPlanStore struct {
	mu      sync.Mutex
	plans   map[string]*domain.Plan
	modules map[string]*domain.Module
}

func newMemPlanStore() *memPlanStore {
	return &memPlanStore{
		plans:   make(map[string]*domain.Plan),
		modules: make(map[string]*domain.Module),
	}
}

func (s *memPlanStore) CreatePlan(_ context.Context, plan *domain.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.plans {
		if p.Topic == plan.Topic {
			return domain.ErrAlreadyExists
		}
	}
	clone := *plan
	s.plans[plan.ID] = &clone
	return nil
}

func (s *memPlanStore) GetPlan(_ context.Context, id string) (*domain.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	plan, ok := s.plans[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s.hydrate(plan), nil
}

func (s *memPlanStore) GetPlanByTopic(_ context.Context, topic string) (*domain.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, plan := range s.plans {
		if plan.Topic == topic {
			return s.hydrate(plan), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *memPlanStore) FindPlanByTopicFold(_ context.Context, topic string) (*domain.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, plan := range s.plans {
		if strings.EqualFold(plan.Topic, topic) {
			return s.hydrate(plan), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *memPlanStore) ListPlans(_ context.Context) ([]domain.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var plans []domain.Plan
	for _, plan := range s.plans {
		plans = append(plans, *plan)
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].Topic < plans[j].Topic })
	return plans, nil
}

func (s *memPlanStore) ListPlanEmbeddings(_ context.Context) ([]driven.PlanEmbedding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var entries []driven.PlanEmbedding
	for _, plan := range s.plans {
		entries = append(entries, driven.PlanEmbedding{PlanID: plan.ID, CreatedAt: plan.CreatedAt, Embedding: plan.Embedding})
	}
	return entries, nil
}

func (s *memPlanStore) AppendModule(_ context.Context, module *domain.Module) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plans[module.PlanID]; !ok {
		return fmt.Errorf("plan %s: %w", module.PlanID, domain.ErrNotFound)
	}
	count := 0
	for _, m := range s.modules {
		if m.PlanID == module.PlanID {
			count++
		}
	}
	module.StepNumber = count + 1
	clone := *module
	s.modules[module.ID] = &clone
	return nil
}

func (s *memPlanStore) GetModule(_ context.Context, id string) (*domain.Module, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	module, ok := s.modules[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *module
	return &clone, nil
}

func (s *memPlanStore) CompleteModule(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	module, ok := s.modules[id]
	if !ok {
		return domain.ErrNotFound
	}
	module.IsComplete = true
	return nil
}

// hydrate attaches a plan's modules in step order. Callers hold the lock.
func (s *memPlanStore) hydrate(plan *domain.Plan) *domain.Plan {
	clone := *plan
	clone.Modules = nil
	for _, m := range s.modules {
		if m.PlanID == plan.ID {
			clone.Modules = append(clone.Modules, *m)
		}
	}
	sort.Slice(clone.Modules, func(i, j int) bool {
		return clone.Modules[i].StepNumber < clone.Modules[j].StepNumber
	})
	return &clone
}

// memFeedbackStore is an in-memory FeedbackStore. It resolves module
// ownership through the plan store it was built with.
type memFeedbackStore struct {
	mu       sync.Mutex
	plans    *memPlanStore
	feedback []domain.Feedback
	notes    []domain.Note
}

func newMemFeedbackStore(plans *memPlanStore) *memFeedbackStore {
	return &memFeedbackStore{plans: plans}
}

func (s *memFeedbackStore) AddFeedback(_ context.Context, feedback *domain.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedback = append(s.feedback, *feedback)
	return nil
}

func (s *memFeedbackStore) ListFeedbackByPlan(_ context.Context, planID string) ([]domain.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var rows []domain.Feedback
	for _, f := range s.feedback {
		module, ok := s.plans.modules[f.ModuleID]
		if ok && module.PlanID == planID {
			rows = append(rows, f)
		}
	}
	return rows, nil
}

func (s *memFeedbackStore) AddNote(_ context.Context, note *domain.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = append(s.notes, *note)
	return nil
}

func (s *memFeedbackStore) ListNotesByModule(_ context.Context, moduleID string) ([]domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var notes []domain.Note
	for _, n := range s.notes {
		if n.ModuleID == moduleID {
			notes = append(notes, n)
		}
	}
	return notes, nil
}

// stubIndex is a minimal PlanIndex: exact-threshold linear scan without
// the adapter's tie-break refinements, enough to drive the services.
type stubIndex struct {
	mu      sync.Mutex
	entries []driven.IndexEntry
}

func (s *stubIndex) Add(_ context.Context, entry driven.IndexEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *stubIndex) Lookup(_ context.Context, query []float32) (driven.PlanMatch, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	best := driven.PlanMatch{}
	found := false
	for _, entry := range s.entries {
		sim := cosine(query, entry.Embedding)
		if sim > 0.6 && sim > best.Similarity {
			best = driven.PlanMatch{PlanID: entry.PlanID, Similarity: sim}
			found = true
		}
	}
	return best, found, nil
}

func (s *stubIndex) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// stubTranscript returns fixed transcript text.
type stubTranscript struct {
	text string
	err  error
}

func (s *stubTranscript) Fetch(_ context.Context, _ string) (string, error) {
	return s.text, s.err
}
