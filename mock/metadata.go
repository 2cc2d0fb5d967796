package mock

import (
	"context"

	"github.com/jkow/earmark"
)

var _ earmark.MetadataService = (*MetadataService)(nil)

// MetadataService is a mock implementation of earmark.MetadataService.
type MetadataService struct {
	LookupFn func(ctx context.Context, title string, author *string) (*earmark.BookMetadata, error)
}

func (s *MetadataService) Lookup(ctx context.Context, title string, author *string) (*earmark.BookMetadata, error) {
	return s.LookupFn(ctx, title, author)
}
