// Package aggregate routes queries to extraction strategies and
// assembles normalized records. It owns no extraction logic itself: the
// catalog decides which strategy applies, the drivers do the work.
package aggregate

import (
	"context"
	"sync"

	"github.com/jkow/earmark"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency caps concurrent sources during SearchAll when the
// dispatcher does not specify its own limit.
const DefaultConcurrency = 4

// Dispatcher routes a query to the correct extraction strategy based on
// source kind. It holds only read-only state and is safe for concurrent
// use.
type Dispatcher struct {
	Catalog *earmark.Catalog
	Drivers map[earmark.SourceKind]earmark.Driver

	// Concurrency caps concurrent sources during SearchAll.
	// Zero means DefaultConcurrency.
	Concurrency int
}

// Search enumerates result stubs for a query against one source.
// Returns ENOTFOUND, without fetching anything, if sourceName is not in
// the catalog.
func (d *Dispatcher) Search(ctx context.Context, sourceName, query string) ([]earmark.SearchResult, error) {
	def, err := d.Catalog.Lookup(sourceName)
	if err != nil {
		return nil, err
	}
	drv, err := d.driver(def)
	if err != nil {
		return nil, err
	}
	return drv.Search(ctx, def, query)
}

// Details fetches and normalizes the full record for a search stub.
func (d *Dispatcher) Details(ctx context.Context, item *earmark.SearchResult) (*earmark.Audiobook, error) {
	def, err := d.Catalog.Lookup(item.SourceName)
	if err != nil {
		return nil, err
	}
	drv, err := d.driver(def)
	if err != nil {
		return nil, err
	}
	return drv.Details(ctx, def, item)
}

// FetchAudiobook searches a source and returns the full record for the
// first hit. Returns ENORESULTS when the search yields zero stubs;
// extraction errors propagate unchanged.
func (d *Dispatcher) FetchAudiobook(ctx context.Context, sourceName, query string) (*earmark.Audiobook, error) {
	results, err := d.Search(ctx, sourceName, query)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, earmark.Errorf(earmark.ENORESULTS, "source %q: no results for %q", sourceName, query)
	}
	return d.Details(ctx, &results[0])
}

// SourceErrorFunc is called when an individual source fails during
// SearchAll.
type SourceErrorFunc func(sourceName string, err error)

// SearchAll fans the query out to every catalog source concurrently.
// Per-source failures are reported through onError and do not abort the
// remaining sources. Results are grouped in catalog order so repeated
// runs return identical output regardless of completion order.
func (d *Dispatcher) SearchAll(ctx context.Context, query string, onError SourceErrorFunc) ([]earmark.SearchResult, error) {
	names := d.Catalog.Names()
	grouped := make([][]earmark.SearchResult, len(names))

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency())
	for i, name := range names {
		g.Go(func() error {
			results, err := d.Search(ctx, name, query)
			if err != nil {
				if onError != nil {
					mu.Lock()
					onError(name, err)
					mu.Unlock()
				}
				return nil
			}
			grouped[i] = results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []earmark.SearchResult
	for _, results := range grouped {
		all = append(all, results...)
	}
	return all, nil
}

func (d *Dispatcher) driver(def *earmark.SourceDefinition) (earmark.Driver, error) {
	drv, ok := d.Drivers[def.Kind]
	if !ok {
		return nil, earmark.Errorf(earmark.EINTERNAL, "no driver registered for kind %q", def.Kind)
	}
	return drv, nil
}

func (d *Dispatcher) concurrency() int {
	if d.Concurrency > 0 {
		return d.Concurrency
	}
	return DefaultConcurrency
}
