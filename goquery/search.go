package goquery

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/jkow/earmark"
)

// Ensure SearchExtractor implements earmark.SearchExtractor at compile time.
var _ earmark.SearchExtractor = (*SearchExtractor)(nil)

// SearchExtractor turns a search-results document into result stubs
// using a source's search rules.
type SearchExtractor struct{}

// NewSearchExtractor creates a new SearchExtractor.
func NewSearchExtractor() *SearchExtractor {
	return &SearchExtractor{}
}

// ExtractResults selects all item containers and extracts one stub per
// container. Containers whose title or URL resolves to empty are dropped
// silently; search pages commonly contain promotional cards that match
// the container selector but are not results. Document order is
// preserved and no deduplication is performed.
func (e *SearchExtractor) ExtractResults(html string, def *earmark.SourceDefinition) ([]earmark.SearchResult, error) {
	if def.Kind != earmark.KindSelector || def.Rules == nil {
		return nil, earmark.Errorf(earmark.EINTERNAL, "source %q is not selector-driven", def.Name)
	}
	base, err := url.Parse(def.BaseURL)
	if err != nil {
		return nil, earmark.Errorf(earmark.ECONFIG, "source %q: invalid base URL: %v", def.Name, err)
	}

	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	rules := def.Rules.Search
	containerSel, err := compile(rules.ItemContainerSelector)
	if err != nil {
		return nil, err
	}
	titleSel, err := compile(rules.TitleSelector)
	if err != nil {
		return nil, err
	}
	// Without a dedicated URL selector the title element carries the href.
	urlSel := titleSel
	if rules.URLSelector != nil {
		if urlSel, err = compile(*rules.URLSelector); err != nil {
			return nil, err
		}
	}

	var results []earmark.SearchResult
	doc.FindMatcher(containerSel).Each(func(_ int, container *goquery.Selection) {
		// Sub-selectors are scoped to the container so unrelated result
		// cards cannot contaminate each other.
		title := normalizeText(container.FindMatcher(titleSel).First().Text())
		href := container.FindMatcher(urlSel).First().AttrOr("href", "")
		if title == "" || href == "" {
			return
		}
		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}
		results = append(results, earmark.SearchResult{
			Title:      title,
			URL:        resolved,
			SourceName: def.Name,
		})
	})

	return results, nil
}
