package main

import (
	"fmt"

	"github.com/jkow/earmark"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	var results []earmark.SearchResult
	var err error

	if c.Source != "" {
		results, err = deps.Dispatcher.Search(deps.Ctx, c.Source, c.Query)
	} else {
		results, err = deps.Dispatcher.SearchAll(deps.Ctx, c.Query, func(source string, err error) {
			fmt.Fprintf(deps.Stderr, "warning: source %s failed: %s\n", source, earmark.ErrorMessage(err))
		})
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", earmark.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintf(deps.Stdout, "No results for %q.\n", c.Query)
		return nil
	}

	for _, r := range results {
		fmt.Fprintf(deps.Stdout, "%-12s  %s\n              %s\n", r.SourceName, r.Title, r.URL)
	}

	return nil
}
