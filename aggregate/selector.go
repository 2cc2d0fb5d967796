package aggregate

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jkow/earmark"
)

// Ensure SelectorDriver implements earmark.Driver at compile time.
var _ earmark.Driver = (*SelectorDriver)(nil)

// SelectorDriver drives the selector-kind strategy: fetch the search or
// detail document through the injected Fetcher, then hand it to the
// pure extractors. The driver performs no retries; fetch failures pass
// through wrapped with stage context.
type SelectorDriver struct {
	Fetcher         earmark.Fetcher
	ResultExtractor earmark.SearchExtractor
	DetailExtractor earmark.DetailExtractor

	// Limiter, when set, paces fetches per host.
	Limiter *HostLimiter
}

// Search renders the source's search URL for the query, fetches it and
// extracts result stubs.
func (d *SelectorDriver) Search(ctx context.Context, def *earmark.SourceDefinition, query string) ([]earmark.SearchResult, error) {
	searchURL, err := SearchURL(def, query)
	if err != nil {
		return nil, err
	}
	if err := d.wait(ctx, searchURL); err != nil {
		return nil, err
	}
	body, err := d.Fetcher.Fetch(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("source %q: search fetch: %w", def.Name, err)
	}
	return d.ResultExtractor.ExtractResults(body, def)
}

// Details fetches the stub's detail page, extracts the record and fills
// in the fields carried by the stub.
func (d *SelectorDriver) Details(ctx context.Context, def *earmark.SourceDefinition, item *earmark.SearchResult) (*earmark.Audiobook, error) {
	if err := d.wait(ctx, item.URL); err != nil {
		return nil, err
	}
	body, err := d.Fetcher.Fetch(ctx, item.URL)
	if err != nil {
		return nil, fmt.Errorf("source %q: detail fetch for %q: %w", def.Name, item.Title, err)
	}
	book, err := d.DetailExtractor.ExtractDetails(body, def)
	if err != nil {
		return nil, err
	}
	book.Title = item.Title
	book.URL = item.URL
	book.SourceName = def.Name
	return book, nil
}

func (d *SelectorDriver) wait(ctx context.Context, rawURL string) error {
	if d.Limiter == nil {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	return d.Limiter.Wait(ctx, u.Host)
}

// SearchURL renders the search URL template for a query and resolves it
// against the source base URL. The query is escaped for URL use.
func SearchURL(def *earmark.SourceDefinition, query string) (string, error) {
	if def.Kind != earmark.KindSelector || def.Rules == nil {
		return "", earmark.Errorf(earmark.EINTERNAL, "source %q is not selector-driven", def.Name)
	}
	base, err := url.Parse(def.BaseURL)
	if err != nil {
		return "", earmark.Errorf(earmark.ECONFIG, "source %q: invalid base URL: %v", def.Name, err)
	}
	rendered := strings.Replace(def.Rules.Search.URL, earmark.QueryPlaceholder, url.QueryEscape(query), 1)
	ref, err := url.Parse(rendered)
	if err != nil {
		return "", earmark.Errorf(earmark.EINVALID, "source %q: rendered search URL %q: %v", def.Name, rendered, err)
	}
	return base.ResolveReference(ref).String(), nil
}
