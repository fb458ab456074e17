// Package serper provides a web search provider adapter using the
// Serper.dev Google Search API.
package serper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/curio-labs/curio-cli/internal/adapters/driven/ratelimit"
	"github.com/curio-labs/curio-cli/internal/core/domain"
	"github.com/curio-labs/curio-cli/internal/core/ports/driven"
)

// Ensure WebSearch implements the interface.
var _ driven.WebSearchProvider = (*WebSearch)(nil)

// Default configuration values.
const (
	DefaultBaseURL    = "https://google.serper.dev"
	DefaultMaxResults = domain.DefaultMaxResults
	DefaultTimeout    = 30 * time.Second
)

// Config holds configuration for the Serper web search provider.
type Config struct {
	// APIKey is the Serper API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://google.serper.dev).
	BaseURL string

	// MaxResults is how many results each search requests (default: 5).
	MaxResults int

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration

	// RateLimit throttles outgoing requests. Zero values get defaults.
	RateLimit ratelimit.Config
}

// WebSearch finds web articles through the Serper API.
type WebSearch struct {
	client     *http.Client
	baseURL    string
	apiKey     string
	maxResults int
	limiter    *ratelimit.Limiter
}

// searchRequest is the Serper /search request format.
type searchRequest struct {
	Query string `json:"q"`
	Num   int    `json:"num,omitempty"`
}

// searchResponse is the Serper /search response format.
type searchResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
	Message string `json:"message,omitempty"`
}

// NewWebSearch creates a new Serper web search provider.
func NewWebSearch(cfg Config) (*WebSearch, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("serper: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RateLimit.RequestsPerSecond == 0 {
		cfg.RateLimit = ratelimit.Config{RequestsPerSecond: 2, BurstSize: 5}
	}

	return &WebSearch{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		maxResults: cfg.MaxResults,
		limiter:    ratelimit.New(cfg.RateLimit),
	}, nil
}

// Search returns ordered organic results for the query. Zero hits is an
// empty list, not an error.
func (s *WebSearch) Search(ctx context.Context, query string) ([]domain.WebResult, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	jsonBody, err := json.Marshal(searchRequest{Query: query, Num: s.maxResults})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/search", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		s.limiter.RecordRateLimitError(0)
		return nil, fmt.Errorf("serper: %w", domain.ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serper error (status %d): %s", resp.StatusCode, string(body))
	}

	var searchResp searchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	results := make([]domain.WebResult, 0, len(searchResp.Organic))
	for _, hit := range searchResp.Organic {
		results = append(results, domain.WebResult{
			Title:   hit.Title,
			Link:    hit.Link,
			Snippet: hit.Snippet,
		})
		if len(results) == s.maxResults {
			break
		}
	}

	return results, nil
}
