package earmark

// SearchExtractor turns a search-results document into an ordered list of
// result stubs. Partial result cards (empty title or unresolvable URL)
// are dropped silently; document order is preserved; no deduplication is
// performed at this layer.
type SearchExtractor interface {
	ExtractResults(html string, def *SourceDefinition) ([]SearchResult, error)
}

// DetailExtractor turns a detail-page document into a normalized record.
// Title, URL and SourceName are filled in by the caller from the search
// stub; the extractor fills author, description, cover image and
// chapters. Missing optional markup degrades to nil, never to an error.
type DetailExtractor interface {
	ExtractDetails(html string, def *SourceDefinition) (*Audiobook, error)
}

// SelectorValidator statically checks a selector expression, so catalog
// loading can reject malformed selectors before any document is fetched.
type SelectorValidator interface {
	// ValidateSelector returns ESELECTOR if expr cannot be compiled.
	ValidateSelector(expr string) error
}

// Converter transforms an HTML fragment into plain text or Markdown.
// Used to normalize rich description markup.
type Converter interface {
	Convert(html string) (string, error)
}

// DescriptionExtractor recovers a description from a full page when the
// configured description selector matches nothing.
type DescriptionExtractor interface {
	ExtractDescription(html string) (string, error)
}
