package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/jkow/earmark"
)

// Ensure LoggingDriver implements earmark.Driver at compile time.
var _ earmark.Driver = (*LoggingDriver)(nil)

// LoggingDriver wraps a Driver with structured logging of searches and
// detail extractions.
type LoggingDriver struct {
	next   earmark.Driver
	logger *slog.Logger
}

// NewLoggingDriver creates a new LoggingDriver.
func NewLoggingDriver(next earmark.Driver, logger *slog.Logger) *LoggingDriver {
	return &LoggingDriver{next: next, logger: logger}
}

// Search delegates to the wrapped driver, logging the source, query,
// result count and duration.
func (d *LoggingDriver) Search(ctx context.Context, def *earmark.SourceDefinition, query string) ([]earmark.SearchResult, error) {
	begin := time.Now()
	results, err := d.next.Search(ctx, def, query)
	if err != nil {
		d.logger.Error("search",
			"source", def.Name,
			"query", query,
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}
	d.logger.Info("search",
		"source", def.Name,
		"query", query,
		"results", len(results),
		"duration", time.Since(begin),
	)
	return results, nil
}

// Details delegates to the wrapped driver, logging the source, item
// title, chapter count and duration.
func (d *LoggingDriver) Details(ctx context.Context, def *earmark.SourceDefinition, item *earmark.SearchResult) (*earmark.Audiobook, error) {
	begin := time.Now()
	book, err := d.next.Details(ctx, def, item)
	if err != nil {
		d.logger.Error("details",
			"source", def.Name,
			"title", item.Title,
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}
	d.logger.Info("details",
		"source", def.Name,
		"title", item.Title,
		"chapters", len(book.Chapters),
		"duration", time.Since(begin),
	)
	return book, nil
}
