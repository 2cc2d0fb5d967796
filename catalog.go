package earmark

import "strings"

// SourceKind selects the extraction strategy for a source.
type SourceKind string

// Supported source kinds.
const (
	KindSelector SourceKind = "selector" // CSS-selector rules over fetched HTML
	KindArchive  SourceKind = "archive"  // structured archive.org API, no selectors
)

// QueryPlaceholder must appear exactly once in every search URL template.
const QueryPlaceholder = "{query}"

// SearchRules locate result stubs on a search-results page.
type SearchRules struct {
	// URL is a template, relative to the source base URL, containing
	// exactly one {query} placeholder.
	URL                   string
	ItemContainerSelector string
	TitleSelector         string

	// URLSelector is optional; when nil the title element itself is
	// expected to carry the href.
	URLSelector *string
}

// DetailRules locate record fields on a detail page. Single-value
// selectors run against the document root; chapter sub-selectors are
// scoped to their container.
type DetailRules struct {
	AuthorSelector           string
	DescriptionSelector      string
	CoverImageURLSelector    *string
	ChapterContainerSelector string
	ChapterURLSelector       string

	// ChapterTitleSelector is optional; nil means "synthesize titles
	// from ordinal position". This is distinct from a configured
	// selector that matches nothing, which falls back per chapter.
	ChapterTitleSelector *string
}

// SelectorRules groups the search and detail rule sets of a
// selector-kind source.
type SelectorRules struct {
	Search  SearchRules
	Details DetailRules
}

// SourceDefinition describes one catalog entry. Rules is present iff
// Kind is KindSelector.
type SourceDefinition struct {
	Name        string
	BaseURL     string // absolute URL; empty for archive-kind
	ContentType ContentType
	Kind        SourceKind
	Rules       *SelectorRules
}

// Validate checks the structural requirements for the definition's kind.
// Selector syntax is checked separately, by the catalog loader, since
// validity is engine-specific.
func (d *SourceDefinition) Validate() error {
	if d.Name == "" {
		return Errorf(ECONFIG, "source name required")
	}
	switch d.Kind {
	case KindArchive:
		return nil
	case KindSelector:
	default:
		return Errorf(ECONFIG, "source %q: unknown kind %q", d.Name, d.Kind)
	}

	if d.BaseURL == "" {
		return Errorf(ECONFIG, "source %q: base URL required for selector sources", d.Name)
	}
	if d.Rules == nil {
		return Errorf(ECONFIG, "source %q: selector sources require rules", d.Name)
	}

	required := []struct {
		field string
		value string
	}{
		{"search.url", d.Rules.Search.URL},
		{"search.item_container_selector", d.Rules.Search.ItemContainerSelector},
		{"search.title_selector", d.Rules.Search.TitleSelector},
		{"details.author_selector", d.Rules.Details.AuthorSelector},
		{"details.description_selector", d.Rules.Details.DescriptionSelector},
		{"details.chapter_container_selector", d.Rules.Details.ChapterContainerSelector},
		{"details.chapter_url_selector", d.Rules.Details.ChapterURLSelector},
	}
	for _, r := range required {
		if r.value == "" {
			return Errorf(ECONFIG, "source %q: missing required field %s", d.Name, r.field)
		}
	}

	if strings.Count(d.Rules.Search.URL, QueryPlaceholder) != 1 {
		return Errorf(ECONFIG, "source %q: search.url must contain exactly one %s placeholder", d.Name, QueryPlaceholder)
	}
	return nil
}

// Selectors returns every selector expression the definition carries, for
// static syntax checking at load time. Archive-kind sources return nil.
func (d *SourceDefinition) Selectors() []string {
	if d.Kind != KindSelector || d.Rules == nil {
		return nil
	}
	exprs := []string{
		d.Rules.Search.ItemContainerSelector,
		d.Rules.Search.TitleSelector,
		d.Rules.Details.AuthorSelector,
		d.Rules.Details.DescriptionSelector,
		d.Rules.Details.ChapterContainerSelector,
		d.Rules.Details.ChapterURLSelector,
	}
	for _, opt := range []*string{
		d.Rules.Search.URLSelector,
		d.Rules.Details.CoverImageURLSelector,
		d.Rules.Details.ChapterTitleSelector,
	} {
		if opt != nil {
			exprs = append(exprs, *opt)
		}
	}
	return exprs
}

// Catalog is the validated, process-wide set of source definitions. It
// is constructed once at startup, injected where needed, and never
// mutated afterwards, so concurrent extraction calls share it freely.
type Catalog struct {
	defs  map[string]*SourceDefinition
	names []string
}

// NewCatalog validates the definitions and builds a catalog. It fails
// with ECONFIG on the first invalid or duplicate definition.
func NewCatalog(defs []*SourceDefinition) (*Catalog, error) {
	c := &Catalog{defs: make(map[string]*SourceDefinition, len(defs))}
	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return nil, err
		}
		if _, ok := c.defs[def.Name]; ok {
			return nil, Errorf(ECONFIG, "duplicate source name %q", def.Name)
		}
		c.defs[def.Name] = def
		c.names = append(c.names, def.Name)
	}
	return c, nil
}

// Lookup returns the definition for the given source name.
// Returns ENOTFOUND if the name is not in the catalog.
func (c *Catalog) Lookup(name string) (*SourceDefinition, error) {
	def, ok := c.defs[name]
	if !ok {
		return nil, Errorf(ENOTFOUND, "unknown source %q", name)
	}
	return def, nil
}

// Names returns the source names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}
