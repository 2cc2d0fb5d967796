package main

import (
	"fmt"

	"github.com/jkow/earmark"
)

// Run executes the library list command.
func (c *LibraryListCmd) Run(deps *Dependencies) error {
	filter := earmark.SavedAudiobookFilter{}
	if c.Source != "" {
		filter.SourceName = &c.Source
	}

	books, err := deps.Library.FindSavedAudiobooks(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", earmark.ErrorMessage(err))
		return err
	}

	if len(books) == 0 {
		fmt.Fprintln(deps.Stdout, "No saved audiobooks. Use 'earmark get --save' to add one.")
		return nil
	}

	for _, b := range books {
		fmt.Fprintf(deps.Stdout, "%s  %-12s  %s (%d chapters)\n", b.ID, b.SourceName, b.Title, len(b.Chapters))
	}

	return nil
}

// Run executes the library show command.
func (c *LibraryShowCmd) Run(deps *Dependencies) error {
	book, err := deps.Library.FindSavedAudiobookByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", earmark.ErrorMessage(err))
		return err
	}

	printAudiobook(deps.Stdout, &book.Audiobook)
	fmt.Fprintf(deps.Stdout, "\nSaved %s\n", book.SavedAt.Format("2006-01-02 15:04"))

	pos, err := deps.Library.FindPosition(deps.Ctx, book.ID)
	if err == nil {
		fmt.Fprintf(deps.Stdout, "Resume from chapter %d\n", pos.ChapterIndex)
	}

	return nil
}

// Run executes the library delete command.
func (c *LibraryDeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Library.DeleteSavedAudiobook(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", earmark.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted %s\n", c.ID)
	return nil
}

// Run executes the library resume command.
func (c *LibraryResumeCmd) Run(deps *Dependencies) error {
	if c.Chapter == 0 {
		pos, err := deps.Library.FindPosition(deps.Ctx, c.ID)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", earmark.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Chapter %d (updated %s)\n", pos.ChapterIndex, pos.UpdatedAt.Format("2006-01-02 15:04"))
		return nil
	}

	pos := &earmark.PlaybackPosition{BookID: c.ID, ChapterIndex: c.Chapter}
	if err := deps.Library.SavePosition(deps.Ctx, pos); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", earmark.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Position saved: chapter %d\n", c.Chapter)
	return nil
}
