package mock

import (
	"context"

	"github.com/jkow/earmark"
)

var _ earmark.PodcastService = (*PodcastService)(nil)

// PodcastService is a mock implementation of earmark.PodcastService.
type PodcastService struct {
	FetchPodcastFn func(ctx context.Context, feedURL string) (*earmark.Podcast, error)
}

func (s *PodcastService) FetchPodcast(ctx context.Context, feedURL string) (*earmark.Podcast, error) {
	return s.FetchPodcastFn(ctx, feedURL)
}
