// Package yaml loads the declarative source rule catalog from YAML.
package yaml

import (
	"os"

	"github.com/jkow/earmark"
	"gopkg.in/yaml.v3"
)

// catalogFile mirrors the on-disk document. Unknown fields are ignored
// and new optional fields default to feature-absent, so old catalogs
// keep loading as the format grows.
type catalogFile struct {
	Sources []sourceConfig `yaml:"sources"`
}

type sourceConfig struct {
	Name        string       `yaml:"name"`
	BaseURL     string       `yaml:"base_url"`
	ContentType string       `yaml:"content_type"`
	Kind        string       `yaml:"kind"`
	Rules       *rulesConfig `yaml:"rules"`
}

type rulesConfig struct {
	Search  searchConfig  `yaml:"search"`
	Details detailsConfig `yaml:"details"`
}

type searchConfig struct {
	URL                   string  `yaml:"url"`
	ItemContainerSelector string  `yaml:"item_container_selector"`
	TitleSelector         string  `yaml:"title_selector"`
	URLSelector           *string `yaml:"url_selector"`
}

type detailsConfig struct {
	AuthorSelector           string  `yaml:"author_selector"`
	DescriptionSelector      string  `yaml:"description_selector"`
	CoverImageURLSelector    *string `yaml:"cover_image_url_selector"`
	ChapterContainerSelector string  `yaml:"chapter_container_selector"`
	ChapterURLSelector       string  `yaml:"chapter_url_selector"`
	ChapterTitleSelector     *string `yaml:"chapter_title_selector"`
}

// Loader parses and validates rule catalogs.
type Loader struct {
	validator earmark.SelectorValidator
}

// NewLoader creates a Loader. The validator statically checks every
// selector expression during load; pass nil to skip syntax checking
// (selectors then fail with ESELECTOR at first use instead).
func NewLoader(validator earmark.SelectorValidator) *Loader {
	return &Loader{validator: validator}
}

// LoadFile reads and parses the catalog at path.
func (l *Loader) LoadFile(path string) (*earmark.Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, earmark.Errorf(earmark.ECONFIG, "read catalog %q: %v", path, err)
	}
	return l.Load(raw)
}

// Load parses raw YAML into a validated, immutable catalog. It fails
// with ECONFIG on malformed YAML, missing required fields or duplicate
// source names, and with ESELECTOR on statically malformed selectors.
func (l *Loader) Load(raw []byte) (*earmark.Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, earmark.Errorf(earmark.ECONFIG, "parse catalog: %v", err)
	}

	defs := make([]*earmark.SourceDefinition, 0, len(file.Sources))
	for _, src := range file.Sources {
		def, err := src.toDefinition()
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}

	catalog, err := earmark.NewCatalog(defs)
	if err != nil {
		return nil, err
	}

	if l.validator != nil {
		for _, def := range defs {
			for _, expr := range def.Selectors() {
				if err := l.validator.ValidateSelector(expr); err != nil {
					return nil, earmark.Errorf(earmark.ESELECTOR, "source %q: %s", def.Name, earmark.ErrorMessage(err))
				}
			}
		}
	}

	return catalog, nil
}

func (c sourceConfig) toDefinition() (*earmark.SourceDefinition, error) {
	def := &earmark.SourceDefinition{
		Name:        c.Name,
		BaseURL:     c.BaseURL,
		ContentType: earmark.ContentTypeAudiobook,
	}

	switch c.ContentType {
	case "", string(earmark.ContentTypeAudiobook):
	default:
		return nil, earmark.Errorf(earmark.ECONFIG, "source %q: unsupported content type %q", c.Name, c.ContentType)
	}

	switch c.Kind {
	// "custom" is the legacy spelling of selector-driven sources.
	case "", "custom", string(earmark.KindSelector):
		def.Kind = earmark.KindSelector
	case string(earmark.KindArchive):
		def.Kind = earmark.KindArchive
	default:
		return nil, earmark.Errorf(earmark.ECONFIG, "source %q: unknown kind %q", c.Name, c.Kind)
	}

	if def.Kind == earmark.KindSelector && c.Rules != nil {
		def.Rules = &earmark.SelectorRules{
			Search: earmark.SearchRules{
				URL:                   c.Rules.Search.URL,
				ItemContainerSelector: c.Rules.Search.ItemContainerSelector,
				TitleSelector:         c.Rules.Search.TitleSelector,
				URLSelector:           c.Rules.Search.URLSelector,
			},
			Details: earmark.DetailRules{
				AuthorSelector:           c.Rules.Details.AuthorSelector,
				DescriptionSelector:      c.Rules.Details.DescriptionSelector,
				CoverImageURLSelector:    c.Rules.Details.CoverImageURLSelector,
				ChapterContainerSelector: c.Rules.Details.ChapterContainerSelector,
				ChapterURLSelector:       c.Rules.Details.ChapterURLSelector,
				ChapterTitleSelector:     c.Rules.Details.ChapterTitleSelector,
			},
		}
	}

	return def, nil
}
