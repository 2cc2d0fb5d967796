// Package archive implements the extraction strategy for archive-kind
// sources, which expose a structured JSON API (archive.org advanced
// search and item metadata) instead of scrapeable HTML. No selector
// rules apply; the output is the same normalized record shape the
// selector strategy produces, under the same chapter invariants.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/jkow/earmark"
)

// Default endpoints and query shape for the archive.org API.
const (
	DefaultSearchURL   = "https://archive.org/advancedsearch.php"
	DefaultMetadataURL = "https://archive.org/metadata/%s"
	DefaultDetailsURL  = "https://archive.org/details/%s"
	DefaultDownloadURL = "https://archive.org/download/%s/%s"
	DefaultCollection  = "librivoxaudio"
	DefaultRows        = 50
)

// Ensure Driver implements earmark.Driver at compile time.
var _ earmark.Driver = (*Driver)(nil)

// Driver searches the archive.org audiobook collection and normalizes
// item metadata into audiobook records. The injected Fetcher supplies
// all transport; the driver never builds its own client.
type Driver struct {
	fetcher    earmark.Fetcher
	collection string
	rows       int
	converter  earmark.Converter
}

// Option configures a Driver.
type Option func(*Driver)

// WithCollection restricts searches to the given archive.org collection.
// Defaults to the LibriVox audiobook collection.
func WithCollection(name string) Option {
	return func(d *Driver) {
		d.collection = name
	}
}

// WithRows caps the number of search results requested per query.
func WithRows(n int) Option {
	return func(d *Driver) {
		d.rows = n
	}
}

// WithConverter normalizes HTML item descriptions; archive.org stores
// them as HTML fragments.
func WithConverter(c earmark.Converter) Option {
	return func(d *Driver) {
		d.converter = c
	}
}

// NewDriver creates an archive.org Driver backed by the given fetcher.
func NewDriver(fetcher earmark.Fetcher, opts ...Option) *Driver {
	d := &Driver{
		fetcher:    fetcher,
		collection: DefaultCollection,
		rows:       DefaultRows,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// searchResponse mirrors the subset of the advancedsearch JSON we read.
type searchResponse struct {
	Response struct {
		Docs []struct {
			Identifier string `json:"identifier"`
			Title      string `json:"title"`
			Creator    any    `json:"creator"` // string or []string
		} `json:"docs"`
	} `json:"response"`
}

// metadataResponse mirrors the subset of the item metadata JSON we read.
type metadataResponse struct {
	Metadata struct {
		Title       string `json:"title"`
		Creator     any    `json:"creator"`
		Description any    `json:"description"` // string or []string
	} `json:"metadata"`
	Files []struct {
		Name   string `json:"name"`
		Title  string `json:"title"`
		Format string `json:"format"`
	} `json:"files"`
}

// Search queries the advanced search API and returns one stub per item.
func (d *Driver) Search(ctx context.Context, def *earmark.SourceDefinition, query string) ([]earmark.SearchResult, error) {
	params := url.Values{}
	params.Set("q", fmt.Sprintf("collection:%s AND title:(%s)", d.collection, query))
	params.Add("fl[]", "identifier")
	params.Add("fl[]", "title")
	params.Add("fl[]", "creator")
	params.Set("output", "json")
	params.Set("rows", fmt.Sprintf("%d", d.rows))

	body, err := d.fetcher.Fetch(ctx, DefaultSearchURL+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("source %q: search fetch: %w", def.Name, err)
	}

	var resp searchResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return nil, earmark.Errorf(earmark.EMALFORMED, "source %q: search response is not valid JSON: %v", def.Name, err)
	}

	var results []earmark.SearchResult
	for _, doc := range resp.Response.Docs {
		if doc.Identifier == "" {
			continue
		}
		title := doc.Title
		if title == "" {
			title = doc.Identifier
		}
		results = append(results, earmark.SearchResult{
			Title:      title,
			URL:        fmt.Sprintf(DefaultDetailsURL, doc.Identifier),
			SourceName: def.Name,
		})
	}
	return results, nil
}

// Details fetches item metadata and builds the normalized record. Files
// are emitted in API order; derivative low-bitrate encodes are skipped;
// an item with zero playable files still yields a valid record with an
// empty chapter list.
func (d *Driver) Details(ctx context.Context, def *earmark.SourceDefinition, item *earmark.SearchResult) (*earmark.Audiobook, error) {
	identifier := itemIdentifier(item.URL)
	if identifier == "" {
		return nil, earmark.Errorf(earmark.EINVALID, "source %q: cannot derive item identifier from %q", def.Name, item.URL)
	}

	body, err := d.fetcher.Fetch(ctx, fmt.Sprintf(DefaultMetadataURL, identifier))
	if err != nil {
		return nil, fmt.Errorf("source %q: metadata fetch for %q: %w", def.Name, identifier, err)
	}

	var resp metadataResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return nil, earmark.Errorf(earmark.EMALFORMED, "source %q: metadata for %q is not valid JSON: %v", def.Name, identifier, err)
	}

	book := &earmark.Audiobook{
		Title:      item.Title,
		SourceName: def.Name,
		URL:        item.URL,
	}
	if resp.Metadata.Title != "" {
		book.Title = resp.Metadata.Title
	}
	if creator := flatten(resp.Metadata.Creator); creator != "" {
		book.Author = &creator
	}
	if desc := d.describe(resp.Metadata.Description); desc != "" {
		book.Description = &desc
	}

	for _, file := range resp.Files {
		if !playable(file.Name) {
			continue
		}
		index := len(book.Chapters) + 1
		title := strings.TrimSpace(file.Title)
		if title == "" {
			title = baseName(file.Name)
		}
		if title == "" {
			title = earmark.SynthesizeChapterTitle(index)
		}
		book.Chapters = append(book.Chapters, earmark.Chapter{
			Index:    index,
			Title:    title,
			AudioURL: fmt.Sprintf(DefaultDownloadURL, identifier, file.Name),
		})
	}

	return book, nil
}

// playable reports whether a file entry is a full-quality audio track.
// Derivative "64kb"/"128kb" encodes duplicate the originals.
func playable(name string) bool {
	if !strings.HasSuffix(name, ".mp3") && !strings.HasSuffix(name, ".ogg") {
		return false
	}
	return !strings.Contains(name, "64kb") && !strings.Contains(name, "128kb")
}

// itemIdentifier extracts the archive.org identifier from a details URL.
func itemIdentifier(detailsURL string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(detailsURL), "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return ""
	}
	return trimmed[idx+1:]
}

// baseName returns the last path segment of a file name.
func baseName(name string) string {
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	return strings.TrimSpace(name)
}

// flatten normalizes metadata values that may be a string or a list.
func flatten(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []any:
		var parts []string
		for _, item := range t {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				parts = append(parts, strings.TrimSpace(s))
			}
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

// describe normalizes the item description, converting HTML when a
// converter is configured.
func (d *Driver) describe(v any) string {
	desc := flatten(v)
	if desc == "" || d.converter == nil {
		return desc
	}
	converted, err := d.converter.Convert(desc)
	if err != nil {
		return desc
	}
	return strings.TrimSpace(converted)
}
