package main

import (
	"context"
	"io"

	"github.com/jkow/earmark"
	"github.com/jkow/earmark/aggregate"
	"github.com/jkow/earmark/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	DB         *sqlite.DB
	Catalog    *earmark.Catalog
	Dispatcher *aggregate.Dispatcher
	Library    earmark.LibraryService
	Podcasts   earmark.PodcastService
	Metadata   earmark.MetadataService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Sources SourcesCmd `cmd:"" help:"List configured audiobook sources"`
	Search  SearchCmd  `cmd:"" help:"Search sources for audiobooks"`
	Get     GetCmd     `cmd:"" help:"Fetch the full record for the best match"`
	Library LibraryCmd `cmd:"" help:"Manage saved audiobooks"`
	Podcast PodcastCmd `cmd:"" help:"Fetch and list podcast feed episodes"`
}

// SourcesCmd is the "sources" subcommand.
type SourcesCmd struct{}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query  string `arg:"" help:"Search query"`
	Source string `short:"s" help:"Search a single source instead of all"`
	Render bool   `short:"r" help:"Render pages in a headless browser (needs Chrome)"`
}

// GetCmd is the "get" subcommand.
type GetCmd struct {
	Source   string `arg:"" help:"Source name"`
	Query    string `arg:"" help:"Search query"`
	Save     bool   `help:"Save the record to the local library"`
	Playlist string `short:"p" placeholder:"DIR" help:"Write an M3U playlist to DIR"`
	Enrich   bool   `help:"Look up bibliographic metadata for the record"`
	Render   bool   `short:"r" help:"Render pages in a headless browser (needs Chrome)"`
}

// LibraryCmd groups the library subcommands.
type LibraryCmd struct {
	List   LibraryListCmd   `cmd:"" help:"List saved audiobooks"`
	Show   LibraryShowCmd   `cmd:"" help:"Show a saved audiobook with its chapters"`
	Delete LibraryDeleteCmd `cmd:"" help:"Delete a saved audiobook"`
	Resume LibraryResumeCmd `cmd:"" help:"Record or show the playback position"`
}

// LibraryListCmd is the "library list" subcommand.
type LibraryListCmd struct {
	Source string `short:"s" help:"Only books saved from this source"`
}

// LibraryShowCmd is the "library show" subcommand.
type LibraryShowCmd struct {
	ID string `arg:"" help:"Saved audiobook ID"`
}

// LibraryDeleteCmd is the "library delete" subcommand.
type LibraryDeleteCmd struct {
	ID string `arg:"" help:"Saved audiobook ID"`
}

// LibraryResumeCmd is the "library resume" subcommand.
type LibraryResumeCmd struct {
	ID      string `arg:"" help:"Saved audiobook ID"`
	Chapter int    `arg:"" optional:"" help:"Chapter to resume from (omit to show the current position)"`
}

// PodcastCmd is the "podcast" subcommand.
type PodcastCmd struct {
	URL string `arg:"" help:"Podcast feed URL"`
}
