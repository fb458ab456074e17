package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curio-labs/curio-cli/internal/adapters/driven/ratelimit"
	"github.com/curio-labs/curio-cli/internal/core/domain"
	"github.com/curio-labs/curio-cli/internal/core/ports/driven"
)

// newTestService builds a service against the given handler with rate
// limiting effectively disabled.
func newTestService(t *testing.T, handler http.HandlerFunc) *JudgeService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	service, err := NewJudgeService(Config{
		APIKey:    "test-key",
		BaseURL:   server.URL,
		RateLimit: ratelimit.Config{RequestsPerSecond: 1000, BurstSize: 1000},
	})
	require.NoError(t, err)
	return service
}

func TestGenerate_Success(t *testing.T) {
	var gotAuth string
	var gotBody chatCompletionRequest
	service := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, `{"choices":[{"message":{"content":"1. Learn open chords"},"finish_reason":"stop"}]}`)
	})

	result, err := service.Generate(context.Background(), "outline please", driven.GenerateOptions{Temperature: 0.2})

	require.NoError(t, err)
	assert.Equal(t, "1. Learn open chords", result)
	assert.Equal(t, "Bearer test-key", gotAuth)
	require.Len(t, gotBody.Messages, 1)
	assert.Equal(t, "outline please", gotBody.Messages[0].Content)
}

func TestGenerate_RateLimited(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := service.Generate(context.Background(), "prompt", driven.GenerateOptions{})

	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestGenerate_APIError(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "invalid model", "type": "invalid_request_error"},
		})
	})

	_, err := service.Generate(context.Background(), "prompt", driven.GenerateOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid model")
}

func TestGenerate_NoChoices(t *testing.T) {
	service := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(chatCompletionResponse{})
	})

	_, err := service.Generate(context.Background(), "prompt", driven.GenerateOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no response choices")
}

func TestNewJudgeService_RequiresAPIKey(t *testing.T) {
	_, err := NewJudgeService(Config{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}
