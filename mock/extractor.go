package mock

import "github.com/jkow/earmark"

var _ earmark.SearchExtractor = (*SearchExtractor)(nil)

// SearchExtractor is a mock implementation of earmark.SearchExtractor.
type SearchExtractor struct {
	ExtractResultsFn func(html string, def *earmark.SourceDefinition) ([]earmark.SearchResult, error)
}

func (e *SearchExtractor) ExtractResults(html string, def *earmark.SourceDefinition) ([]earmark.SearchResult, error) {
	return e.ExtractResultsFn(html, def)
}

var _ earmark.DetailExtractor = (*DetailExtractor)(nil)

// DetailExtractor is a mock implementation of earmark.DetailExtractor.
type DetailExtractor struct {
	ExtractDetailsFn func(html string, def *earmark.SourceDefinition) (*earmark.Audiobook, error)
}

func (e *DetailExtractor) ExtractDetails(html string, def *earmark.SourceDefinition) (*earmark.Audiobook, error) {
	return e.ExtractDetailsFn(html, def)
}

var _ earmark.SelectorValidator = (*SelectorValidator)(nil)

// SelectorValidator is a mock implementation of earmark.SelectorValidator.
type SelectorValidator struct {
	ValidateSelectorFn func(expr string) error
}

func (v *SelectorValidator) ValidateSelector(expr string) error {
	return v.ValidateSelectorFn(expr)
}

var _ earmark.Converter = (*Converter)(nil)

// Converter is a mock implementation of earmark.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ earmark.DescriptionExtractor = (*DescriptionExtractor)(nil)

// DescriptionExtractor is a mock implementation of earmark.DescriptionExtractor.
type DescriptionExtractor struct {
	ExtractDescriptionFn func(html string) (string, error)
}

func (e *DescriptionExtractor) ExtractDescription(html string) (string, error) {
	return e.ExtractDescriptionFn(html)
}
