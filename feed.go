package earmark

import (
	"context"
	"time"
)

// Episode is a single playable episode of a podcast. Episodes follow the
// same invariants as chapters: a non-empty audio URL and contiguous
// 1-based indices over emitted episodes.
type Episode struct {
	Index       int        `json:"index"`
	Title       string     `json:"title"`
	AudioURL    string     `json:"audioUrl"`
	Description *string    `json:"description"`
	PublishedAt *time.Time `json:"publishedAt"`
}

// Podcast is the normalized record for a podcast feed.
type Podcast struct {
	Title         string    `json:"title"`
	FeedURL       string    `json:"feedUrl"`
	Author        *string   `json:"author"`
	Description   *string   `json:"description"`
	CoverImageURL *string   `json:"coverImageUrl"`
	Episodes      []Episode `json:"episodes"`
}

// PodcastService fetches and normalizes a podcast feed.
type PodcastService interface {
	// FetchPodcast retrieves the feed at feedURL and returns the
	// normalized podcast. Returns EMALFORMED if the feed cannot be
	// parsed.
	FetchPodcast(ctx context.Context, feedURL string) (*Podcast, error)
}
