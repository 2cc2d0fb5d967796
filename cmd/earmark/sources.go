package main

import (
	"fmt"
)

// Run executes the sources command.
func (c *SourcesCmd) Run(deps *Dependencies) error {
	names := deps.Catalog.Names()
	if len(names) == 0 {
		fmt.Fprintln(deps.Stdout, "No sources configured.")
		return nil
	}

	for _, name := range names {
		def, err := deps.Catalog.Lookup(name)
		if err != nil {
			return err
		}
		if def.BaseURL != "" {
			fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", def.Name, def.Kind, def.BaseURL)
		} else {
			fmt.Fprintf(deps.Stdout, "%s  %s\n", def.Name, def.Kind)
		}
	}

	return nil
}
