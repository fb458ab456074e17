// Command curio is the entry point for the Curio CLI.
// It wires storage, the plan index, the AI providers and the core
// services together, then hands control to the command tree.
package main

import (
	"context"
	"fmt"
	"os"

	configfile "github.com/curio-labs/curio-cli/internal/adapters/driven/config/file"
	geminiembed "github.com/curio-labs/curio-cli/internal/adapters/driven/embedding/gemini"
	ollamaembed "github.com/curio-labs/curio-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/curio-labs/curio-cli/internal/adapters/driven/embedding/openai"
	"github.com/curio-labs/curio-cli/internal/adapters/driven/index/linear"
	geminillm "github.com/curio-labs/curio-cli/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/curio-labs/curio-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/curio-labs/curio-cli/internal/adapters/driven/llm/openai"
	"github.com/curio-labs/curio-cli/internal/adapters/driven/search/serper"
	ytsearch "github.com/curio-labs/curio-cli/internal/adapters/driven/search/youtube"
	"github.com/curio-labs/curio-cli/internal/adapters/driven/storage/sqlite"
	yttranscript "github.com/curio-labs/curio-cli/internal/adapters/driven/transcript/youtube"
	"github.com/curio-labs/curio-cli/internal/adapters/driven/unconfigured"
	"github.com/curio-labs/curio-cli/internal/adapters/driving/cli"
	"github.com/curio-labs/curio-cli/internal/core/domain"
	"github.com/curio-labs/curio-cli/internal/core/ports/driven"
	"github.com/curio-labs/curio-cli/internal/core/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}
	settings := configfile.SettingsFromConfig(configStore)

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer store.Close()

	embeddings, err := store.PlanStore().ListPlanEmbeddings(ctx)
	if err != nil {
		return fmt.Errorf("loading plan embeddings: %w", err)
	}
	index, err := linear.Hydrate(embeddings)
	if err != nil {
		return fmt.Errorf("building plan index: %w", err)
	}

	judge, embedder, err := buildAI(configStore, settings)
	if err != nil {
		return err
	}
	defer judge.Close()
	defer embedder.Close()

	web, err := buildWebSearch(configStore, settings.MaxResults)
	if err != nil {
		return err
	}
	video, err := buildVideoSearch(ctx, configStore)
	if err != nil {
		return err
	}
	transcripts := yttranscript.NewTranscriptService(yttranscript.Config{})

	planStore := store.PlanStore()
	feedback := services.NewFeedbackLedger(planStore, store.FeedbackStore())
	analyzer := services.NewAnalyzer(judge)
	curator := services.NewCurator(planStore, index, embedder, judge, web, video, analyzer, feedback, settings)
	planner := services.NewPlanner(planStore, index, embedder, judge, curator, settings)
	notes := services.NewNoteTaker(planStore, store.FeedbackStore(), transcripts, judge)

	cli.SetServices(cli.Services{
		Planner:  planner,
		Plans:    services.NewPlans(planStore),
		Feedback: feedback,
		Notes:    notes,
		Config:   configStore,
	})
	return cli.Execute()
}

// buildAI constructs the judge and embedder for the configured provider.
// Gemini is the default; "ollama" selects a locally hosted model. With
// Gemini selected but no API key available, unconfigured stand-ins are
// substituted so storage-only commands keep working.
func buildAI(store driven.ConfigStore, settings domain.Settings) (driven.JudgeService, driven.EmbeddingService, error) {
	switch provider := store.GetString(configfile.KeyAIProvider); provider {
	case "ollama":
		// Model names configured for Gemini don't apply; the Ollama
		// adapters carry their own local-model defaults.
		judge := ollamallm.NewJudgeService(ollamallm.Config{})
		embedder := ollamaembed.NewEmbeddingService(ollamaembed.Config{})
		return judge, embedder, nil
	case "openai":
		key := apiKey(store, configfile.KeyOpenAIAPIKey, "OPENAI_API_KEY")
		if key == "" {
			reason := "set OPENAI_API_KEY or " + configfile.KeyOpenAIAPIKey
			return &unconfigured.Judge{Reason: reason}, &unconfigured.Embedder{Reason: reason}, nil
		}
		judge, err := openaillm.NewJudgeService(openaillm.Config{APIKey: key})
		if err != nil {
			return nil, nil, fmt.Errorf("configuring judge: %w", err)
		}
		embedder, err := openaiembed.NewEmbeddingService(openaiembed.Config{APIKey: key})
		if err != nil {
			return nil, nil, fmt.Errorf("configuring embedder: %w", err)
		}
		return judge, embedder, nil
	case "", "gemini":
	default:
		return nil, nil, fmt.Errorf("unknown AI provider %q (expected gemini, openai or ollama)", provider)
	}

	key := apiKey(store, configfile.KeyGeminiAPIKey, "GEMINI_API_KEY")
	if key == "" {
		reason := "set GEMINI_API_KEY or " + configfile.KeyGeminiAPIKey
		return &unconfigured.Judge{Reason: reason}, &unconfigured.Embedder{Reason: reason}, nil
	}

	judge, err := geminillm.NewJudgeService(geminillm.Config{APIKey: key, Model: settings.ChatModel})
	if err != nil {
		return nil, nil, fmt.Errorf("configuring judge: %w", err)
	}
	embedder, err := geminiembed.NewEmbeddingService(geminiembed.Config{APIKey: key, Model: settings.EmbeddingModel})
	if err != nil {
		return nil, nil, fmt.Errorf("configuring embedder: %w", err)
	}
	return judge, embedder, nil
}

// buildWebSearch constructs the Serper web search provider, or an
// unconfigured stand-in when no API key is available.
func buildWebSearch(store driven.ConfigStore, maxResults int) (driven.WebSearchProvider, error) {
	key := apiKey(store, configfile.KeySerperAPIKey, "SERPER_API_KEY")
	if key == "" {
		return &unconfigured.WebSearch{Reason: "set SERPER_API_KEY or " + configfile.KeySerperAPIKey}, nil
	}

	web, err := serper.NewWebSearch(serper.Config{APIKey: key, MaxResults: maxResults})
	if err != nil {
		return nil, fmt.Errorf("configuring web search: %w", err)
	}
	return web, nil
}

// buildVideoSearch constructs the YouTube video search provider, or an
// unconfigured stand-in when no API key is available.
func buildVideoSearch(ctx context.Context, store driven.ConfigStore) (driven.VideoSearchProvider, error) {
	key := apiKey(store, configfile.KeyYouTubeAPIKey, "YOUTUBE_API_KEY")
	if key == "" {
		return &unconfigured.VideoSearch{Reason: "set YOUTUBE_API_KEY or " + configfile.KeyYouTubeAPIKey}, nil
	}

	video, err := ytsearch.NewVideoSearch(ctx, ytsearch.Config{APIKey: key})
	if err != nil {
		return nil, fmt.Errorf("configuring video search: %w", err)
	}
	return video, nil
}

// apiKey resolves a credential from the environment first, then config.
func apiKey(store driven.ConfigStore, configKey, envVar string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return store.GetString(configKey)
}
