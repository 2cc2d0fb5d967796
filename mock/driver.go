package mock

import (
	"context"

	"github.com/jkow/earmark"
)

var _ earmark.Driver = (*Driver)(nil)

// Driver is a mock implementation of earmark.Driver.
type Driver struct {
	SearchFn  func(ctx context.Context, def *earmark.SourceDefinition, query string) ([]earmark.SearchResult, error)
	DetailsFn func(ctx context.Context, def *earmark.SourceDefinition, item *earmark.SearchResult) (*earmark.Audiobook, error)
}

func (d *Driver) Search(ctx context.Context, def *earmark.SourceDefinition, query string) ([]earmark.SearchResult, error) {
	return d.SearchFn(ctx, def, query)
}

func (d *Driver) Details(ctx context.Context, def *earmark.SourceDefinition, item *earmark.SearchResult) (*earmark.Audiobook, error) {
	return d.DetailsFn(ctx, def, item)
}
