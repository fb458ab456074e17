package domain

import (
	"sort"
	"time"
)

// Plan represents a complete learning curriculum for one topic.
// The topic is the unique, case-sensitive lookup key; the embedding is
// the vector used for similarity-based deduplication of future requests.
type Plan struct {
	// ID is the unique identifier for the plan.
	ID string

	// Topic is the user-supplied subject. Unique across all plans.
	Topic string

	// Embedding is the fixed-length vector representation of the topic.
	// All stored embeddings share one dimensionality.
	Embedding []float32

	// CreatedAt is when the plan was first persisted.
	CreatedAt time.Time

	// Modules are the curriculum steps, owned by this plan.
	Modules []Module
}

// SortedModules returns the plan's modules ordered by step number.
func (p *Plan) SortedModules() []Module {
	modules := make([]Module, len(p.Modules))
	copy(modules, p.Modules)
	sort.Slice(modules, func(i, j int) bool {
		return modules[i].StepNumber < modules[j].StepNumber
	})
	return modules
}

// NextModule returns the first incomplete module in step order,
// or nil when every module is complete.
func (p *Plan) NextModule() *Module {
	modules := p.SortedModules()
	for i := range modules {
		if !modules[i].IsComplete {
			return &modules[i]
		}
	}
	return nil
}

// Module represents one step of a learning plan with its curated resources.
// A module belongs to exactly one plan. After creation, IsComplete is the
// only field that changes.
type Module struct {
	// ID is the unique identifier for the module.
	ID string

	// PlanID links back to the owning Plan.
	PlanID string

	// StepNumber is the 1-based position within the plan.
	// Strictly increasing, no gaps, no duplicates.
	StepNumber int

	// Title is the step description from the curriculum outline.
	Title string

	// IsComplete records whether the learner finished this step.
	IsComplete bool

	// Article is the curated web resource for this step.
	Article CuratedResource

	// Videos maps a category name (e.g. "Most Viewed") to the curated
	// video for that category. Serialised as JSON in storage.
	Videos map[string]CuratedResource

	// CreatedAt is when the module was persisted.
	CreatedAt time.Time
}

// CuratedResource is the judged best candidate for one search, or a
// sentinel when no genuine answer could be produced. All three fields
// are always populated; display layers never see a null result.
type CuratedResource struct {
	Title  string `json:"title"`
	Link   string `json:"link"`
	Reason string `json:"reason"`
}

// IsSentinel reports whether the resource is a placeholder rather than
// a genuine judged result.
func (r CuratedResource) IsSentinel() bool {
	switch r.Title {
	case "N/A", "Error", "Rate Limit Hit":
		return true
	}
	return false
}

// NoResultsSentinel is substituted when a search returned zero candidates.
func NoResultsSentinel(kind ResultKind) CuratedResource {
	return CuratedResource{
		Title:  "N/A",
		Link:   "N/A",
		Reason: "No " + string(kind) + " results found.",
	}
}

// AnalysisErrorSentinel is substituted when the judge's output could not
// be parsed into a result.
func AnalysisErrorSentinel() CuratedResource {
	return CuratedResource{
		Title:  "Error",
		Link:   "Error",
		Reason: "Failed to analyze results.",
	}
}

// RateLimitSentinel is substituted when the judge reported rate limiting.
func RateLimitSentinel() CuratedResource {
	return CuratedResource{
		Title:  "Rate Limit Hit",
		Link:   "#",
		Reason: "The judge is rate limited. Please try again in a minute.",
	}
}
