package main

import (
	"fmt"

	"github.com/jkow/earmark"
)

// Run executes the podcast command.
func (c *PodcastCmd) Run(deps *Dependencies) error {
	podcast, err := deps.Podcasts.FetchPodcast(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", earmark.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s\n", podcast.Title)
	if podcast.Author != nil {
		fmt.Fprintf(deps.Stdout, "By %s\n", *podcast.Author)
	}

	if len(podcast.Episodes) == 0 {
		fmt.Fprintln(deps.Stdout, "\nNo playable episodes found.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "\nEpisodes (%d):\n", len(podcast.Episodes))
	for _, ep := range podcast.Episodes {
		date := ""
		if ep.PublishedAt != nil {
			date = ep.PublishedAt.Format("2006-01-02") + "  "
		}
		fmt.Fprintf(deps.Stdout, "%3d. %s%s\n     %s\n", ep.Index, date, ep.Title, ep.AudioURL)
	}

	return nil
}
