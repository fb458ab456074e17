package domain

// Default curation settings.
const (
	// DefaultStepCount is how many curriculum steps the planner asks for.
	DefaultStepCount = 3

	// DefaultMaxResults is how many candidates each search requests.
	DefaultMaxResults = 5

	// DefaultChatModel is the judge model used when none is configured.
	DefaultChatModel = "gemini-2.5-flash"

	// DefaultEmbeddingModel is the embedding model used when none is configured.
	DefaultEmbeddingModel = "gemini-embedding-001"
)

// Settings holds curation behaviour configuration, materialised from the
// config store with defaults applied.
type Settings struct {
	// StepCount is the number of steps requested from the planner outline.
	StepCount int

	// MaxResults is the per-search candidate cap.
	MaxResults int

	// ChatModel is the judge model name.
	ChatModel string

	// EmbeddingModel is the embedding model name.
	EmbeddingModel string

	// VideoCategories is the configured category set. Each curated module's
	// Videos map carries exactly these keys.
	VideoCategories []VideoCategory
}

// DefaultSettings returns settings with every default applied.
func DefaultSettings() Settings {
	return Settings{
		StepCount:       DefaultStepCount,
		MaxResults:      DefaultMaxResults,
		ChatModel:       DefaultChatModel,
		EmbeddingModel:  DefaultEmbeddingModel,
		VideoCategories: DefaultVideoCategories(),
	}
}

// Normalise fills zero values with defaults and drops invalid categories.
func (s Settings) Normalise() Settings {
	if s.StepCount <= 0 {
		s.StepCount = DefaultStepCount
	}
	if s.MaxResults <= 0 {
		s.MaxResults = DefaultMaxResults
	}
	if s.ChatModel == "" {
		s.ChatModel = DefaultChatModel
	}
	if s.EmbeddingModel == "" {
		s.EmbeddingModel = DefaultEmbeddingModel
	}
	valid := make([]VideoCategory, 0, len(s.VideoCategories))
	for _, c := range s.VideoCategories {
		if c.Name != "" && c.Order.IsValid() {
			valid = append(valid, c)
		}
	}
	if len(valid) == 0 {
		valid = DefaultVideoCategories()
	}
	s.VideoCategories = valid
	return s
}
