// Package gofeed normalizes RSS and Atom podcast feeds using the
// github.com/mmcdole/gofeed parser.
package gofeed

import (
	"context"
	"fmt"

	"github.com/jkow/earmark"
	"github.com/mmcdole/gofeed"
)

// Ensure PodcastService implements earmark.PodcastService at compile time.
var _ earmark.PodcastService = (*PodcastService)(nil)

// PodcastService fetches a feed document through the injected Fetcher
// and parses it with gofeed. The parser detects RSS and Atom
// automatically.
type PodcastService struct {
	fetcher earmark.Fetcher
}

// NewPodcastService creates a PodcastService backed by the given fetcher.
func NewPodcastService(fetcher earmark.Fetcher) *PodcastService {
	return &PodcastService{fetcher: fetcher}
}

// FetchPodcast retrieves and normalizes the feed at feedURL. Items
// without an audio enclosure are skipped; episode indices stay
// contiguous over the emitted episodes.
func (s *PodcastService) FetchPodcast(ctx context.Context, feedURL string) (*earmark.Podcast, error) {
	body, err := s.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("feed fetch %q: %w", feedURL, err)
	}

	feed, err := gofeed.NewParser().ParseString(body)
	if err != nil {
		return nil, earmark.Errorf(earmark.EMALFORMED, "feed %q: %v", feedURL, err)
	}

	podcast := &earmark.Podcast{
		Title:   feed.Title,
		FeedURL: feedURL,
	}
	if feed.Description != "" {
		podcast.Description = &feed.Description
	}
	if author := feedAuthor(feed); author != "" {
		podcast.Author = &author
	}
	if feed.Image != nil && feed.Image.URL != "" {
		podcast.CoverImageURL = &feed.Image.URL
	}

	for _, item := range feed.Items {
		audioURL := enclosureURL(item)
		if audioURL == "" {
			continue
		}
		episode := earmark.Episode{
			Index:       len(podcast.Episodes) + 1,
			Title:       item.Title,
			AudioURL:    audioURL,
			PublishedAt: item.PublishedParsed,
		}
		if episode.Title == "" {
			episode.Title = fmt.Sprintf("Episode %d", episode.Index)
		}
		if item.Description != "" {
			episode.Description = &item.Description
		}
		podcast.Episodes = append(podcast.Episodes, episode)
	}
	return podcast, nil
}

func feedAuthor(feed *gofeed.Feed) string {
	if feed.ITunesExt != nil && feed.ITunesExt.Author != "" {
		return feed.ITunesExt.Author
	}
	for _, author := range feed.Authors {
		if author.Name != "" {
			return author.Name
		}
	}
	return ""
}

// enclosureURL returns the first enclosure URL for an item. Podcast
// feeds carry exactly one audio enclosure per item in practice; type
// attributes are not checked because many feeds leave them blank.
func enclosureURL(item *gofeed.Item) string {
	for _, enc := range item.Enclosures {
		if enc.URL != "" {
			return enc.URL
		}
	}
	return ""
}
