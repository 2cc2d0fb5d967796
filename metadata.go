package earmark

import "context"

// BookMetadata is supplementary bibliographic data from an external
// catalog, used to enrich extracted records.
type BookMetadata struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Publisher     string   `json:"publisher"`
	PublishedDate string   `json:"publishedDate"`
	Description   string   `json:"description"`
	PageCount     int      `json:"pageCount"`
	Categories    []string `json:"categories"`
}

// MetadataService looks up bibliographic metadata by title and optional
// author. A miss is reported as ENOTFOUND; callers treat it as absence,
// not failure.
type MetadataService interface {
	Lookup(ctx context.Context, title string, author *string) (*BookMetadata, error)
}
