package file

import (
	"strings"

	"github.com/curio-labs/curio-cli/internal/core/domain"
	"github.com/curio-labs/curio-cli/internal/core/ports/driven"
)

// Configuration keys for curation settings.
const (
	KeyStepCount       = "curation.steps"
	KeyMaxResults      = "curation.max_results"
	KeyChatModel       = "ai.chat_model"
	KeyEmbeddingModel  = "ai.embedding_model"
	KeyVideoCategories = "curation.video_categories"
)

// KeyAIProvider selects the judge and embedding backend: "gemini"
// (default) or "ollama" for a locally hosted model.
const KeyAIProvider = "ai.provider"

// Configuration keys for provider credentials. Environment variables of
// the same purpose take precedence at the composition root.
const (
	KeyGeminiAPIKey  = "ai.gemini_api_key"
	KeyOpenAIAPIKey  = "ai.openai_api_key"
	KeySerperAPIKey  = "search.serper_api_key"
	KeyYouTubeAPIKey = "search.youtube_api_key"
)

// SettingsFromConfig materialises curation settings from the config
// store, falling back to defaults for anything unset. Video categories
// are "Name:order" pairs, e.g. "Most Viewed:viewCount"; malformed
// entries are dropped by normalisation.
func SettingsFromConfig(store driven.ConfigStore) domain.Settings {
	settings := domain.Settings{
		StepCount:      store.GetInt(KeyStepCount),
		MaxResults:     store.GetInt(KeyMaxResults),
		ChatModel:      store.GetString(KeyChatModel),
		EmbeddingModel: store.GetString(KeyEmbeddingModel),
	}

	for _, pair := range store.GetStringSlice(KeyVideoCategories) {
		name, order, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		settings.VideoCategories = append(settings.VideoCategories, domain.VideoCategory{
			Name:  strings.TrimSpace(name),
			Order: domain.VideoOrder(strings.TrimSpace(order)),
		})
	}

	return settings.Normalise()
}
