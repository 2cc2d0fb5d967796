// Package trafilatura recovers description text from full pages using
// the go-trafilatura content extractor.
package trafilatura

import (
	"strings"

	"github.com/jkow/earmark"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Describer implements earmark.DescriptionExtractor at compile time.
var _ earmark.DescriptionExtractor = (*Describer)(nil)

// Describer extracts the main textual content of a detail page. It is
// the fallback when a source's description selector matches nothing:
// boilerplate, navigation and player chrome are stripped and whatever
// prose remains becomes the description.
type Describer struct{}

// NewDescriber creates a new Describer.
func NewDescriber() *Describer {
	return &Describer{}
}

// ExtractDescription returns the main content of rawHTML as plain text.
// An empty result is not an error; callers treat it as absence.
func (d *Describer) ExtractDescription(rawHTML string) (string, error) {
	if rawHTML == "" {
		return "", earmark.Errorf(earmark.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(result.ContentText), nil
}
