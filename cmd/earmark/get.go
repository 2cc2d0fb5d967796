package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jkow/earmark"
	"github.com/jkow/earmark/fs"
)

// Run executes the get command.
func (c *GetCmd) Run(deps *Dependencies) error {
	book, err := deps.Dispatcher.FetchAudiobook(deps.Ctx, c.Source, c.Query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", earmark.ErrorMessage(err))
		return err
	}

	printAudiobook(deps.Stdout, book)

	if c.Enrich {
		meta, err := deps.Metadata.Lookup(deps.Ctx, book.Title, book.Author)
		switch {
		case earmark.ErrorCode(err) == earmark.ENOTFOUND:
			fmt.Fprintln(deps.Stdout, "\nNo bibliographic metadata found.")
		case err != nil:
			fmt.Fprintf(deps.Stderr, "warning: metadata lookup failed: %s\n", earmark.ErrorMessage(err))
		default:
			printMetadata(deps.Stdout, meta)
		}
	}

	if c.Save {
		saved, err := deps.Library.SaveAudiobook(deps.Ctx, book)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", earmark.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "\nSaved to library as %s\n", saved.ID)
	}

	if c.Playlist != "" {
		path, err := fs.NewPlaylistWriter(c.Playlist).WritePlaylist(book)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", earmark.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "\nPlaylist written to %s\n", path)
	}

	return nil
}

func printAudiobook(w io.Writer, book *earmark.Audiobook) {
	fmt.Fprintf(w, "%s\n", book.Title)
	fmt.Fprintf(w, "Source: %s\n", book.SourceName)
	fmt.Fprintf(w, "URL:    %s\n", book.URL)
	if book.Author != nil {
		fmt.Fprintf(w, "Author: %s\n", *book.Author)
	}
	if book.Description != nil {
		fmt.Fprintf(w, "\n%s\n", strings.TrimSpace(*book.Description))
	}
	if len(book.Chapters) == 0 {
		fmt.Fprintln(w, "\nNo chapters found.")
		return
	}
	fmt.Fprintf(w, "\nChapters (%d):\n", len(book.Chapters))
	for _, ch := range book.Chapters {
		fmt.Fprintf(w, "%3d. %s\n     %s\n", ch.Index, ch.Title, ch.AudioURL)
	}
}

func printMetadata(w io.Writer, meta *earmark.BookMetadata) {
	fmt.Fprintln(w)
	if len(meta.Authors) > 0 {
		fmt.Fprintf(w, "Written by: %s\n", strings.Join(meta.Authors, ", "))
	}
	if meta.Publisher != "" {
		fmt.Fprintf(w, "Publisher:  %s\n", meta.Publisher)
	}
	if meta.PublishedDate != "" {
		fmt.Fprintf(w, "Published:  %s\n", meta.PublishedDate)
	}
	if meta.PageCount > 0 {
		fmt.Fprintf(w, "Pages:      %d\n", meta.PageCount)
	}
	if len(meta.Categories) > 0 {
		fmt.Fprintf(w, "Categories: %s\n", strings.Join(meta.Categories, ", "))
	}
}
