package earmark

import "context"

// Fetcher retrieves raw documents from URLs. The extraction engine never
// constructs its own network client; transport policy (timeouts, retries,
// proxying) belongs entirely to implementations and their callers. The
// engine performs no retries of its own.
type Fetcher interface {
	// Fetch retrieves the document at url. The context controls
	// cancellation and deadline.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases any resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
