package domain

// ResultKind identifies which kind of search produced a candidate list.
type ResultKind string

// Available result kinds.
const (
	// ResultKindWeb is a web article search.
	ResultKindWeb ResultKind = "web"

	// ResultKindVideo is a video search.
	ResultKindVideo ResultKind = "video"
)

// IsValid returns true if the result kind is recognised.
func (k ResultKind) IsValid() bool {
	return k == ResultKindWeb || k == ResultKindVideo
}

// WebResult is a single hit from a web search provider.
type WebResult struct {
	// Title is the page title.
	Title string

	// Link is the page URL.
	Link string

	// Snippet is a short extract, when the provider supplies one.
	Snippet string
}

// VideoResult is a single hit from a video search provider.
type VideoResult struct {
	// Title is the video title.
	Title string

	// Link is the watch URL.
	Link string

	// Channel is the publishing channel's display name.
	Channel string

	// ViewCount is the total view count at search time.
	ViewCount uint64

	// LikeCount is the total like count at search time.
	LikeCount uint64

	// Thumbnail is a preview image URL, when available.
	Thumbnail string
}

// Candidate is the judge-facing view of a search hit. Both web and video
// results flatten into this shape so the analyzer can key its cache and
// build judgment requests uniformly. Field order is fixed: the canonical
// JSON serialisation of a candidate list is order-sensitive cache input.
type Candidate struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Snippet   string `json:"snippet,omitempty"`
	Channel   string `json:"channel,omitempty"`
	ViewCount uint64 `json:"viewCount,omitempty"`
	LikeCount uint64 `json:"likeCount,omitempty"`
}

// Candidate converts a web result into the judge-facing shape.
func (r WebResult) Candidate() Candidate {
	return Candidate{Title: r.Title, Link: r.Link, Snippet: r.Snippet}
}

// Candidate converts a video result into the judge-facing shape.
func (v VideoResult) Candidate() Candidate {
	return Candidate{
		Title:     v.Title,
		Link:      v.Link,
		Channel:   v.Channel,
		ViewCount: v.ViewCount,
		LikeCount: v.LikeCount,
	}
}

// WebCandidates converts a web result list preserving order.
func WebCandidates(results []WebResult) []Candidate {
	candidates := make([]Candidate, len(results))
	for i, r := range results {
		candidates[i] = r.Candidate()
	}
	return candidates
}

// VideoCandidates converts a video result list preserving order.
func VideoCandidates(results []VideoResult) []Candidate {
	candidates := make([]Candidate, len(results))
	for i, v := range results {
		candidates[i] = v.Candidate()
	}
	return candidates
}

// VideoOrder is the ordering a video search provider applies to results.
type VideoOrder string

// Available video orderings.
const (
	// VideoOrderRelevance ranks by relevance to the query.
	VideoOrderRelevance VideoOrder = "relevance"

	// VideoOrderViewCount ranks by total views, descending.
	VideoOrderViewCount VideoOrder = "viewCount"

	// VideoOrderUploadDate ranks by upload date, newest first.
	VideoOrderUploadDate VideoOrder = "uploadDate"

	// VideoOrderRating ranks by rating, descending.
	VideoOrderRating VideoOrder = "rating"
)

// IsValid returns true if the video order is recognised.
func (o VideoOrder) IsValid() bool {
	switch o {
	case VideoOrderRelevance, VideoOrderViewCount, VideoOrderUploadDate, VideoOrderRating:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (o VideoOrder) String() string {
	return string(o)
}

// VideoCategory pairs a display name with the provider ordering that
// produces its candidate list. The category set is configuration, not a
// fixed list; DefaultVideoCategories supplies the defaults.
type VideoCategory struct {
	// Name is the display name, used as the key in Module.Videos.
	Name string

	// Order is the provider ordering for this category.
	Order VideoOrder
}

// DefaultVideoCategories returns the default category set.
func DefaultVideoCategories() []VideoCategory {
	return []VideoCategory{
		{Name: "General", Order: VideoOrderRelevance},
		{Name: "Most Viewed", Order: VideoOrderViewCount},
		{Name: "Most Recent", Order: VideoOrderUploadDate},
	}
}
