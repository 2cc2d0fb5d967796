// Package googlebooks looks up bibliographic metadata through the
// Google Books volumes API.
package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/jkow/earmark"
)

// DefaultVolumesURL is the Google Books volume search endpoint.
const DefaultVolumesURL = "https://www.googleapis.com/books/v1/volumes"

// Ensure Service implements earmark.MetadataService at compile time.
var _ earmark.MetadataService = (*Service)(nil)

// Service queries the Google Books volumes API through the injected
// Fetcher. Only the best match is requested; enrichment wants one
// record, not a result page.
type Service struct {
	fetcher    earmark.Fetcher
	volumesURL string
	apiKey     string
}

// Option configures a Service.
type Option func(*Service)

// WithVolumesURL overrides the volumes endpoint. Used in tests.
func WithVolumesURL(u string) Option {
	return func(s *Service) { s.volumesURL = u }
}

// WithAPIKey attaches an API key to every request. The API works
// without one at a lower quota.
func WithAPIKey(key string) Option {
	return func(s *Service) { s.apiKey = key }
}

// NewService creates a Service backed by the given fetcher.
func NewService(fetcher earmark.Fetcher, opts ...Option) *Service {
	s := &Service{fetcher: fetcher, volumesURL: DefaultVolumesURL}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type volumesResponse struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		VolumeInfo struct {
			Title         string   `json:"title"`
			Authors       []string `json:"authors"`
			Publisher     string   `json:"publisher"`
			PublishedDate string   `json:"publishedDate"`
			Description   string   `json:"description"`
			PageCount     int      `json:"pageCount"`
			Categories    []string `json:"categories"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// Lookup finds the best volume match for a title and optional author.
// Returns ENOTFOUND when the API has no match.
func (s *Service) Lookup(ctx context.Context, title string, author *string) (*earmark.BookMetadata, error) {
	query := fmt.Sprintf("intitle:%s", title)
	if author != nil && *author != "" {
		query += fmt.Sprintf(" inauthor:%s", *author)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", "1")
	if s.apiKey != "" {
		params.Set("key", s.apiKey)
	}

	body, err := s.fetcher.Fetch(ctx, s.volumesURL+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("metadata fetch for %q: %w", title, err)
	}

	var resp volumesResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return nil, earmark.Errorf(earmark.EMALFORMED, "metadata response for %q: %v", title, err)
	}
	if len(resp.Items) == 0 {
		return nil, earmark.Errorf(earmark.ENOTFOUND, "no metadata for %q", title)
	}

	info := resp.Items[0].VolumeInfo
	return &earmark.BookMetadata{
		Title:         info.Title,
		Authors:       info.Authors,
		Publisher:     info.Publisher,
		PublishedDate: info.PublishedDate,
		Description:   info.Description,
		PageCount:     info.PageCount,
		Categories:    info.Categories,
	}, nil
}
