package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/jkow/earmark"
)

// Ensure DetailExtractor implements earmark.DetailExtractor at compile time.
var _ earmark.DetailExtractor = (*DetailExtractor)(nil)

// DetailExtractor fills author, description, cover image and chapters
// from a detail-page document using a source's detail rules. Single-value
// selectors run against the document root; chapter sub-selectors are
// scoped to their container.
type DetailExtractor struct {
	// Converter normalizes rich description HTML. When nil the
	// description is the selection's plain text.
	Converter earmark.Converter

	// Fallback recovers a description from the whole page when the
	// configured selector matches nothing. Nil disables the fallback.
	Fallback earmark.DescriptionExtractor
}

// NewDetailExtractor creates a DetailExtractor with no converter and no
// description fallback.
func NewDetailExtractor() *DetailExtractor {
	return &DetailExtractor{}
}

// ExtractDetails extracts the normalized record fields. Title, URL and
// SourceName on the result are left for the caller to fill from the
// search stub (SourceName is pre-filled from the definition). Missing
// optional markup degrades to nil, never to an error.
func (e *DetailExtractor) ExtractDetails(html string, def *earmark.SourceDefinition) (*earmark.Audiobook, error) {
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

	rules := def.Rules.Details
	book := &earmark.Audiobook{SourceName: def.Name}

	if book.Author, err = firstText(doc, rules.AuthorSelector); err != nil {
		return nil, err
	}
	if book.Description, err = e.description(doc, html, rules.DescriptionSelector); err != nil {
		return nil, err
	}
	if rules.CoverImageURLSelector != nil {
		cover, err := firstAttr(doc, *rules.CoverImageURLSelector, "src")
		if err != nil {
			return nil, err
		}
		if cover != nil {
			if resolved := resolveURL(base, *cover); resolved != "" {
				book.CoverImageURL = &resolved
			}
		}
	}

	if book.Chapters, err = e.chapters(doc, base, rules); err != nil {
		return nil, err
	}
	return book, nil
}

// description extracts the record description. A configured selector
// that matches nothing is valid; the optional whole-page fallback covers
// that case.
func (e *DetailExtractor) description(doc *goquery.Document, html, expr string) (*string, error) {
	sel, err := compile(expr)
	if err != nil {
		return nil, err
	}

	if m := doc.FindMatcher(sel).First(); m.Length() > 0 {
		if e.Converter != nil {
			if inner, err := m.Html(); err == nil {
				if converted, err := e.Converter.Convert(inner); err == nil {
					if converted = strings.TrimSpace(converted); converted != "" {
						return &converted, nil
					}
				}
			}
			// Conversion failure degrades to plain text.
		}
		if text := normalizeText(m.Text()); text != "" {
			return &text, nil
		}
	}

	if e.Fallback != nil {
		if desc, err := e.Fallback.ExtractDescription(html); err == nil {
			if desc = strings.TrimSpace(desc); desc != "" {
				return &desc, nil
			}
		}
	}
	return nil, nil
}

// chapters selects all chapter containers in document order and emits
// one chapter per container that yields a resolvable audio URL. A
// container without one is dropped entirely and consumes no position, so
// synthesized titles stay contiguous ("Chapter 1, Chapter 2", never
// "Chapter 1, Chapter 3").
func (e *DetailExtractor) chapters(doc *goquery.Document, base *url.URL, rules earmark.DetailRules) ([]earmark.Chapter, error) {
	containerSel, err := compile(rules.ChapterContainerSelector)
	if err != nil {
		return nil, err
	}
	urlSel, err := compile(rules.ChapterURLSelector)
	if err != nil {
		return nil, err
	}
	var titleSel cascadia.Selector
	if rules.ChapterTitleSelector != nil {
		if titleSel, err = compile(*rules.ChapterTitleSelector); err != nil {
			return nil, err
		}
	}

	var chapters []earmark.Chapter
	doc.FindMatcher(containerSel).Each(func(_ int, container *goquery.Selection) {
		el := container.FindMatcher(urlSel).First()
		src := el.AttrOr("src", "")
		if src == "" {
			// Anchor-based chapter lists link the audio instead.
			src = el.AttrOr("href", "")
		}
		audioURL := resolveURL(base, src)
		if audioURL == "" {
			return
		}

		index := len(chapters) + 1
		var title string
		if titleSel != nil {
			title = normalizeText(container.FindMatcher(titleSel).First().Text())
		}
		if title == "" {
			title = earmark.SynthesizeChapterTitle(index)
		}
		chapters = append(chapters, earmark.Chapter{
			Index:    index,
			Title:    title,
			AudioURL: audioURL,
		})
	})

	return chapters, nil
}
