// Package youtube provides a video search provider adapter using the
// YouTube Data API v3.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/curio-labs/curio-cli/internal/adapters/driven/ratelimit"
	"github.com/curio-labs/curio-cli/internal/core/domain"
	"github.com/curio-labs/curio-cli/internal/core/ports/driven"
)

// Ensure VideoSearch implements the interface.
var _ driven.VideoSearchProvider = (*VideoSearch)(nil)

// watchURL is the public watch link prefix.
const watchURL = "https://www.youtube.com/watch?v="

// orderParams maps domain orderings to YouTube API order parameters.
var orderParams = map[domain.VideoOrder]string{
	domain.VideoOrderRelevance:  "relevance",
	domain.VideoOrderViewCount:  "viewCount",
	domain.VideoOrderUploadDate: "date",
	domain.VideoOrderRating:     "rating",
}

// Config holds configuration for the YouTube video search provider.
type Config struct {
	// APIKey is the YouTube Data API key (required).
	APIKey string

	// Endpoint overrides the API endpoint, for tests.
	Endpoint string

	// RateLimit throttles outgoing requests. Zero values get defaults.
	RateLimit ratelimit.Config
}

// VideoSearch finds videos through the YouTube Data API. Each search is
// two API calls: search.list for IDs, then videos.list for statistics.
type VideoSearch struct {
	service *youtube.Service
	limiter *ratelimit.Limiter
}

// NewVideoSearch creates a new YouTube video search provider.
func NewVideoSearch(ctx context.Context, cfg Config) (*VideoSearch, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("youtube: API key is required")
	}
	if cfg.RateLimit.RequestsPerSecond == 0 {
		cfg.RateLimit = ratelimit.Config{RequestsPerSecond: 2, BurstSize: 5}
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating youtube service: %w", err)
	}

	return &VideoSearch{
		service: service,
		limiter: ratelimit.New(cfg.RateLimit),
	}, nil
}

// Search returns up to maxResults videos for the query under the given
// ordering, with view and like statistics attached.
func (s *VideoSearch) Search(ctx context.Context, query string, order domain.VideoOrder, maxResults int) ([]domain.VideoResult, error) {
	orderParam, ok := orderParams[order]
	if !ok {
		return nil, fmt.Errorf("%w: video order %q", domain.ErrInvalidInput, order)
	}
	if maxResults <= 0 {
		maxResults = domain.DefaultMaxResults
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	searchResp, err := s.service.Search.List([]string{"id", "snippet"}).
		Context(ctx).
		Q(query).
		Type("video").
		Order(orderParam).
		MaxResults(int64(maxResults)).
		Do()
	if err != nil {
		return nil, wrapAPIError("searching videos", err)
	}

	var ids []string
	for _, item := range searchResp.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			ids = append(ids, item.Id.VideoId)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	statistics, err := s.fetchStatistics(ctx, ids)
	if err != nil {
		return nil, err
	}

	results := make([]domain.VideoResult, 0, len(searchResp.Items))
	for _, item := range searchResp.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		result := domain.VideoResult{
			Link: watchURL + item.Id.VideoId,
		}
		if item.Snippet != nil {
			result.Title = item.Snippet.Title
			result.Channel = item.Snippet.ChannelTitle
			if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.Default != nil {
				result.Thumbnail = item.Snippet.Thumbnails.Default.Url
			}
		}
		if stats, ok := statistics[item.Id.VideoId]; ok {
			result.ViewCount = stats.ViewCount
			result.LikeCount = stats.LikeCount
		}
		results = append(results, result)
	}

	return results, nil
}

// fetchStatistics loads view and like counts for the given video IDs.
func (s *VideoSearch) fetchStatistics(ctx context.Context, ids []string) (map[string]*youtube.VideoStatistics, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	videosResp, err := s.service.Videos.List([]string{"statistics"}).
		Context(ctx).
		Id(ids...).
		Do()
	if err != nil {
		return nil, wrapAPIError("loading video statistics", err)
	}

	statistics := make(map[string]*youtube.VideoStatistics, len(videosResp.Items))
	for _, item := range videosResp.Items {
		if item.Statistics != nil {
			statistics[item.Id] = item.Statistics
		}
	}
	return statistics, nil
}

// wrapAPIError translates quota exhaustion into domain.ErrRateLimited.
func wrapAPIError(op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == 429 || (apiErr.Code == 403 && quotaExceeded(apiErr)) {
			return fmt.Errorf("%s: %w", op, domain.ErrRateLimited)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// quotaExceeded reports whether a 403 carries a quota reason rather than
// a permission problem.
func quotaExceeded(apiErr *googleapi.Error) bool {
	for _, item := range apiErr.Errors {
		if strings.Contains(item.Reason, "quota") || strings.Contains(item.Reason, "rateLimit") {
			return true
		}
	}
	return false
}
