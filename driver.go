package earmark

import "context"

// Driver implements one extraction strategy (one SourceKind). Drivers
// are pure orchestration over an injected Fetcher and hold no mutable
// state, so a single driver serves concurrent calls.
type Driver interface {
	// Search enumerates result stubs for a query against one source.
	// Returns an empty slice, not an error, when nothing matched.
	Search(ctx context.Context, def *SourceDefinition, query string) ([]SearchResult, error)

	// Details fetches and normalizes the full record for a stub.
	Details(ctx context.Context, def *SourceDefinition, item *SearchResult) (*Audiobook, error)
}
