package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/curio-labs/curio-cli/internal/core/domain"
	"github.com/curio-labs/curio-cli/internal/core/ports/driven"
	"github.com/curio-labs/curio-cli/internal/logger"
)

// judgedCandidates is how many candidates from the top of a result list
// are put in front of the judge. The same prefix feeds the cache key, so
// results beyond it can change without invalidating a judgment.
const judgedCandidates = 5

// Analyzer memoises "pick the best candidate" judgments.
//
// Judgments are content-addressed: the cache key covers the query and
// the exact order of the judged candidates, so a reordering of identical
// candidates is a different judgment. The cache lives for the process,
// unbounded and without eviction. Only successful judgments are stored -
// parse failures and rate limits return sentinels and leave the key
// absent so a retry can attempt the judge again.
type Analyzer struct {
	judge driven.JudgeService

	mu    sync.Mutex
	cache map[string]domain.CuratedResource
}

// NewAnalyzer creates an analyzer over the given judge.
func NewAnalyzer(judge driven.JudgeService) *Analyzer {
	return &Analyzer{
		judge: judge,
		cache: make(map[string]domain.CuratedResource),
	}
}

// TakeBest returns the judged best candidate for the query, consulting
// the cache before invoking the judge. Every failure path yields a
// structurally valid sentinel record; the caller never sees an error.
func (a *Analyzer) TakeBest(
	ctx context.Context,
	query string,
	candidates []domain.Candidate,
	kind domain.ResultKind,
	reputationHint string,
) domain.CuratedResource {
	if len(candidates) == 0 {
		logger.Debug("No %s candidates for %q, substituting sentinel", kind, query)
		return domain.NoResultsSentinel(kind)
	}

	top := candidates
	if len(top) > judgedCandidates {
		top = top[:judgedCandidates]
	}

	key, err := cacheKey(query, top)
	if err != nil {
		// Candidates are plain structs; marshalling cannot realistically
		// fail, but a judgment without a key must not poison the cache.
		logger.Warn("Cache key for %q failed: %v", query, err)
		return a.judgeOnce(ctx, query, top, kind, reputationHint, "")
	}

	a.mu.Lock()
	cached, ok := a.cache[key]
	a.mu.Unlock()
	if ok {
		logger.Debug("Analysis cache hit for %q (%s)", query, kind)
		return cached
	}

	logger.Debug("Analysis cache miss for %q (%s)", query, kind)
	return a.judgeOnce(ctx, query, top, kind, reputationHint, key)
}

// CachedJudgments returns how many judgments are memoised.
func (a *Analyzer) CachedJudgments() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.cache)
}

// judgeOnce invokes the judge and, on a parseable response, stores the
// result under key (when non-empty) before returning it.
func (a *Analyzer) judgeOnce(
	ctx context.Context,
	query string,
	top []domain.Candidate,
	kind domain.ResultKind,
	reputationHint string,
	key string,
) domain.CuratedResource {
	prompt, err := judgmentPrompt(query, top, kind, reputationHint)
	if err != nil {
		logger.Warn("Building judgment request for %q failed: %v", query, err)
		return domain.AnalysisErrorSentinel()
	}

	response, err := a.judge.Generate(ctx, prompt, driven.GenerateOptions{Temperature: 0.2})
	if err != nil {
		if errors.Is(err, domain.ErrRateLimited) {
			logger.Warn("Judge rate limited for %q", query)
			return domain.RateLimitSentinel()
		}
		logger.Warn("Judge failed for %q: %v", query, err)
		return domain.AnalysisErrorSentinel()
	}

	result, err := parseJudgment(response)
	if err != nil {
		logger.Warn("Could not parse judge response for %q: %v", query, err)
		return domain.AnalysisErrorSentinel()
	}

	if key != "" {
		a.mu.Lock()
		a.cache[key] = result
		a.mu.Unlock()
	}
	return result
}

// cacheKey hashes the query and the canonical serialisation of the
// judged candidates. Order-sensitive by construction.
func cacheKey(query string, top []domain.Candidate) (string, error) {
	serialised, err := json.Marshal(top)
	if err != nil {
		return "", fmt.Errorf("serialising candidates: %w", err)
	}
	sum := sha256.Sum256(append([]byte(query), serialised...))
	return hex.EncodeToString(sum[:]), nil
}

// judgmentPrompt builds the judge request: the candidate list, the kind
// of search, and the reputation hint as side-channel bias.
func judgmentPrompt(query string, top []domain.Candidate, kind domain.ResultKind, reputationHint string) (string, error) {
	serialised, err := json.MarshalIndent(top, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialising candidates: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a helpful learning assistant. From the following list of %s search results for the query %q, pick the ONE best result for a complete beginner.\n\n", kind, query)
	fmt.Fprintf(&b, "Search Results (JSON format):\n%s\n\n", serialised)
	b.WriteString("IMPORTANT CONTEXT:\n")
	if reputationHint != "" {
		fmt.Fprintf(&b, "- User Feedback Summary: %s\n", reputationHint)
	}
	if kind == domain.ResultKindVideo {
		b.WriteString("- A high likeCount relative to viewCount is a strong signal of quality.\n")
		b.WriteString("- A descriptive channel name can indicate a reliable source.\n")
	}
	b.WriteString("\nStrongly prefer sources the user has liked and avoid sources the user has disliked.\n")
	b.WriteString("Return a JSON object with exactly the keys \"title\", \"link\" and \"reason\". ")
	b.WriteString("The reason should be a one-sentence explanation for your choice. ")
	b.WriteString("Provide ONLY the JSON object and nothing else.\n")
	return b.String(), nil
}

// parseJudgment extracts the {title, link, reason} object from the
// judge's free-text response. Code fences and surrounding prose are
// stripped; unknown or missing keys are rejected.
func parseJudgment(response string) (domain.CuratedResource, error) {
	cleaned := stripCodeFences(response)

	// Tolerate prose around the object by cutting to the outermost braces.
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return domain.CuratedResource{}, fmt.Errorf("%w: no JSON object in response", domain.ErrMalformedJudgeOutput)
	}
	cleaned = cleaned[start : end+1]

	var result domain.CuratedResource
	decoder := json.NewDecoder(strings.NewReader(cleaned))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&result); err != nil {
		return domain.CuratedResource{}, fmt.Errorf("%w: %v", domain.ErrMalformedJudgeOutput, err)
	}
	if result.Title == "" || result.Link == "" || result.Reason == "" {
		return domain.CuratedResource{}, fmt.Errorf("%w: missing title, link or reason", domain.ErrMalformedJudgeOutput)
	}
	return result, nil
}

// stripCodeFences removes Markdown code fence markers from a response.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
