// Package youtube provides a transcript service adapter that scrapes
// caption tracks from YouTube watch pages. There is no official API for
// transcripts; the watch page embeds the caption track list as JSON and
// the tracks themselves are timed-text XML.
package youtube

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/curio-labs/curio-cli/internal/core/domain"
	"github.com/curio-labs/curio-cli/internal/core/ports/driven"
)

// Ensure TranscriptService implements the interface.
var _ driven.TranscriptService = (*TranscriptService)(nil)

// Default configuration values.
const (
	DefaultBaseURL  = "https://www.youtube.com"
	DefaultTimeout  = 30 * time.Second
	DefaultLanguage = "en"
)

// captionTracksMarker precedes the embedded caption track JSON.
const captionTracksMarker = `"captionTracks":`

// Config holds configuration for the YouTube transcript service.
type Config struct {
	// BaseURL is the watch page base URL (default: https://www.youtube.com).
	BaseURL string

	// Language is the preferred caption language code (default: en).
	Language string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// TranscriptService fetches video transcripts by scraping caption tracks.
type TranscriptService struct {
	client   *http.Client
	baseURL  string
	language string
}

// captionTrack is one entry of the embedded caption track list.
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

// timedText is the caption track XML document.
type timedText struct {
	XMLName xml.Name   `xml:"transcript"`
	Texts   []timedCue `xml:"text"`
}

// timedCue is one caption cue.
type timedCue struct {
	Start   float64 `xml:"start,attr"`
	Content string  `xml:",chardata"`
}

// NewTranscriptService creates a new transcript service.
func NewTranscriptService(cfg Config) *TranscriptService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &TranscriptService{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:  cfg.BaseURL,
		language: cfg.Language,
	}
}

// Fetch returns the transcript for the given video link as timestamped
// lines. Returns domain.ErrNoTranscript when the video has no captions.
func (s *TranscriptService) Fetch(ctx context.Context, videoLink string) (string, error) {
	videoID, err := extractVideoID(videoLink)
	if err != nil {
		return "", err
	}

	page, err := s.get(ctx, s.baseURL+"/watch?v="+url.QueryEscape(videoID))
	if err != nil {
		return "", fmt.Errorf("loading watch page: %w", err)
	}

	tracks, err := parseCaptionTracks(page)
	if err != nil {
		return "", fmt.Errorf("video %s: %w", videoID, err)
	}

	track := pickTrack(tracks, s.language)
	body, err := s.get(ctx, track.BaseURL)
	if err != nil {
		return "", fmt.Errorf("loading caption track: %w", err)
	}

	var doc timedText
	if err := xml.Unmarshal([]byte(body), &doc); err != nil {
		return "", fmt.Errorf("parsing caption track: %w", err)
	}
	if len(doc.Texts) == 0 {
		return "", fmt.Errorf("video %s: empty caption track: %w", videoID, domain.ErrNoTranscript)
	}

	var b strings.Builder
	for _, cue := range doc.Texts {
		text := strings.TrimSpace(html.UnescapeString(cue.Content))
		if text == "" {
			continue
		}
		fmt.Fprintf(&b, "[%s] %s\n", formatTimestamp(cue.Start), text)
	}
	return b.String(), nil
}

// get performs a GET request and returns the response body.
func (s *TranscriptService) get(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	return string(body), nil
}

// extractVideoID pulls the video ID out of a watch or short link.
func extractVideoID(videoLink string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(videoLink))
	if err != nil {
		return "", fmt.Errorf("%w: unparseable video link %q", domain.ErrInvalidInput, videoLink)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	switch host {
	case "youtu.be":
		if id := strings.Trim(u.Path, "/"); id != "" {
			return id, nil
		}
	case "youtube.com", "m.youtube.com":
		if id := u.Query().Get("v"); id != "" {
			return id, nil
		}
		// Shorts and embed links carry the ID as the last path element.
		if parts := strings.Split(strings.Trim(u.Path, "/"), "/"); len(parts) == 2 {
			return parts[1], nil
		}
	}
	return "", fmt.Errorf("%w: no video ID in %q", domain.ErrInvalidInput, videoLink)
}

// parseCaptionTracks extracts the caption track list from watch page HTML.
func parseCaptionTracks(page string) ([]captionTrack, error) {
	idx := strings.Index(page, captionTracksMarker)
	if idx < 0 {
		return nil, domain.ErrNoTranscript
	}

	// Decode exactly one JSON array starting at the marker.
	var tracks []captionTrack
	decoder := json.NewDecoder(strings.NewReader(page[idx+len(captionTracksMarker):]))
	if err := decoder.Decode(&tracks); err != nil {
		return nil, fmt.Errorf("parsing caption tracks: %w", err)
	}
	if len(tracks) == 0 {
		return nil, domain.ErrNoTranscript
	}
	return tracks, nil
}

// pickTrack prefers a manually written track in the wanted language, then
// any track in that language, then the first track.
func pickTrack(tracks []captionTrack, language string) captionTrack {
	var languageMatch *captionTrack
	for i, track := range tracks {
		if track.LanguageCode != language {
			continue
		}
		if track.Kind != "asr" {
			return track
		}
		if languageMatch == nil {
			languageMatch = &tracks[i]
		}
	}
	if languageMatch != nil {
		return *languageMatch
	}
	return tracks[0]
}

// formatTimestamp renders seconds as mm:ss.
func formatTimestamp(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
