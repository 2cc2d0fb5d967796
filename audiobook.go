package earmark

import "fmt"

// ContentType identifies what kind of media a source serves.
type ContentType string

// ContentTypeAudiobook is currently the only supported content type.
const ContentTypeAudiobook ContentType = "audiobook"

// SearchResult is a lightweight stub produced by searching a source. It
// carries just enough to fetch the full record later. Stubs are consumed
// immediately by the caller and never persisted.
type SearchResult struct {
	Title      string `json:"title"`
	URL        string `json:"url"` // absolute detail-page URL
	SourceName string `json:"sourceName"`
}

// Chapter is a single playable chapter of an audiobook.
type Chapter struct {
	Index    int    `json:"index"` // 1-based, contiguous over emitted chapters
	Title    string `json:"title"`
	AudioURL string `json:"audioUrl"` // absolute
}

// SynthesizeChapterTitle returns the default title for the chapter at the
// given 1-based position, used when a source defines no title selector or
// the configured selector matched nothing.
func SynthesizeChapterTitle(index int) string {
	return fmt.Sprintf("Chapter %d", index)
}

// Audiobook is the normalized record produced by every extraction
// strategy, independent of the source that produced it. Author,
// description and cover image are nil when the source's markup omits
// them; an empty chapter list is valid output and the caller decides how
// to treat it.
type Audiobook struct {
	Title         string    `json:"title"`
	SourceName    string    `json:"sourceName"`
	URL           string    `json:"url"`
	Author        *string   `json:"author"`
	Description   *string   `json:"description"`
	CoverImageURL *string   `json:"coverImageUrl"`
	Chapters      []Chapter `json:"chapters"`
}

// Validate returns an error if the record violates its invariants.
func (a *Audiobook) Validate() error {
	if a.Title == "" {
		return Errorf(EINVALID, "audiobook title required")
	}
	if a.SourceName == "" {
		return Errorf(EINVALID, "audiobook source name required")
	}
	for i, ch := range a.Chapters {
		if ch.AudioURL == "" {
			return Errorf(EINVALID, "chapter %d has an empty audio URL", i+1)
		}
		if ch.Index != i+1 {
			return Errorf(EINVALID, "chapter indices must be contiguous from 1, got %d at position %d", ch.Index, i+1)
		}
	}
	return nil
}
