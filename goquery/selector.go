// Package goquery implements the selector-driven extraction strategy on
// top of PuerkitoBio/goquery and cascadia. It is pure transformation
// logic: documents in, normalized records out, no network access and no
// site-specific code.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/jkow/earmark"
)

// Ensure Validator implements earmark.SelectorValidator at compile time.
var _ earmark.SelectorValidator = (*Validator)(nil)

// Validator statically checks selector syntax with cascadia, the same
// engine used for extraction, so load-time validation and runtime
// matching agree on what is well-formed.
type Validator struct{}

// NewValidator creates a new Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSelector returns ESELECTOR if expr cannot be compiled.
func (v *Validator) ValidateSelector(expr string) error {
	_, err := compile(expr)
	return err
}

// compile wraps cascadia.Compile with the domain error code. Selectors
// are compiled explicitly rather than passed to Selection.Find, which
// panics on malformed input.
func compile(expr string) (cascadia.Selector, error) {
	sel, err := cascadia.Compile(expr)
	if err != nil {
		return nil, earmark.Errorf(earmark.ESELECTOR, "invalid selector %q: %v", expr, err)
	}
	return sel, nil
}

// parseDocument parses HTML into a goquery document.
func parseDocument(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, earmark.Errorf(earmark.EMALFORMED, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// normalizeText collapses whitespace runs to single spaces and trims.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// firstText returns the normalized text of the first match of expr at
// document root, or nil if nothing matched or the text is empty.
func firstText(doc *goquery.Document, expr string) (*string, error) {
	sel, err := compile(expr)
	if err != nil {
		return nil, err
	}
	m := doc.FindMatcher(sel).First()
	if m.Length() == 0 {
		return nil, nil
	}
	text := normalizeText(m.Text())
	if text == "" {
		return nil, nil
	}
	return &text, nil
}

// firstAttr returns the named attribute of the first match of expr at
// document root, or nil if nothing matched or the attribute is empty.
func firstAttr(doc *goquery.Document, expr, attr string) (*string, error) {
	sel, err := compile(expr)
	if err != nil {
		return nil, err
	}
	m := doc.FindMatcher(sel).First()
	if m.Length() == 0 {
		return nil, nil
	}
	value := strings.TrimSpace(m.AttrOr(attr, ""))
	if value == "" {
		return nil, nil
	}
	return &value, nil
}

// resolveURL resolves a possibly-relative href against a base URL.
// Returns empty string if the href is empty or cannot be parsed.
func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
