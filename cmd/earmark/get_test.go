package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jkow/earmark"
	main "github.com/jkow/earmark/cmd/earmark"
	"github.com/jkow/earmark/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBook() *earmark.Audiobook {
	author := "Bram Stoker"
	description := "A classic gothic horror novel."
	return &earmark.Audiobook{
		Title:       "Dracula",
		SourceName:  "librivox",
		URL:         "https://librivox.org/dracula",
		Author:      &author,
		Description: &description,
		Chapters: []earmark.Chapter{
			{Index: 1, Title: "Chapter 1", AudioURL: "https://archive.org/dracula_01.mp3"},
			{Index: 2, Title: "Chapter 2", AudioURL: "https://archive.org/dracula_02.mp3"},
		},
	}
}

// getDeps builds Dependencies whose dispatcher resolves every query to
// the given book.
func getDeps(t *testing.T, book *earmark.Audiobook) *main.Dependencies {
	t.Helper()

	driver := &mock.Driver{
		SearchFn: func(ctx context.Context, def *earmark.SourceDefinition, query string) ([]earmark.SearchResult, error) {
			return []earmark.SearchResult{{Title: book.Title, URL: book.URL, SourceName: def.Name}}, nil
		},
		DetailsFn: func(ctx context.Context, def *earmark.SourceDefinition, item *earmark.SearchResult) (*earmark.Audiobook, error) {
			return book, nil
		},
	}
	return testDeps(t, driver)
}

func TestGetCmd_PrintsFullRecord(t *testing.T) {
	t.Parallel()

	deps := getDeps(t, testBook())

	cmd := &main.GetCmd{Source: "librivox", Query: "dracula"}
	err := cmd.Run(deps)

	require.NoError(t, err)
	out := deps.Stdout.(*bytes.Buffer).String()
	assert.Contains(t, out, "Dracula")
	assert.Contains(t, out, "Author: Bram Stoker")
	assert.Contains(t, out, "A classic gothic horror novel.")
	assert.Contains(t, out, "Chapters (2):")
	assert.Contains(t, out, "dracula_02.mp3")
}

func TestGetCmd_NoChapters(t *testing.T) {
	t.Parallel()

	book := testBook()
	book.Chapters = nil
	deps := getDeps(t, book)

	cmd := &main.GetCmd{Source: "librivox", Query: "dracula"}
	err := cmd.Run(deps)

	require.NoError(t, err)
	assert.Contains(t, deps.Stdout.(*bytes.Buffer).String(), "No chapters found.")
}

func TestGetCmd_NoResults(t *testing.T) {
	t.Parallel()

	driver := &mock.Driver{
		SearchFn: func(ctx context.Context, def *earmark.SourceDefinition, query string) ([]earmark.SearchResult, error) {
			return nil, nil
		},
	}
	deps := testDeps(t, driver)

	cmd := &main.GetCmd{Source: "librivox", Query: "nonexistent"}
	err := cmd.Run(deps)

	require.Error(t, err)
	assert.Equal(t, earmark.ENORESULTS, earmark.ErrorCode(err))
}

func TestGetCmd_Save(t *testing.T) {
	t.Parallel()

	deps := getDeps(t, testBook())
	deps.Library = &mock.LibraryService{
		SaveAudiobookFn: func(ctx context.Context, book *earmark.Audiobook) (*earmark.SavedAudiobook, error) {
			assert.Equal(t, "Dracula", book.Title)
			return &earmark.SavedAudiobook{
				ID:        "abc-123",
				Audiobook: *book,
				SavedAt:   time.Now(),
			}, nil
		},
	}

	cmd := &main.GetCmd{Source: "librivox", Query: "dracula", Save: true}
	err := cmd.Run(deps)

	require.NoError(t, err)
	assert.Contains(t, deps.Stdout.(*bytes.Buffer).String(), "Saved to library as abc-123")
}

func TestGetCmd_Playlist(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	deps := getDeps(t, testBook())

	cmd := &main.GetCmd{Source: "librivox", Query: "dracula", Playlist: dir}
	err := cmd.Run(deps)

	require.NoError(t, err)
	assert.Contains(t, deps.Stdout.(*bytes.Buffer).String(), "Playlist written to ")

	data, err := os.ReadFile(filepath.Join(dir, "dracula.m3u"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "#EXTM3U")
	assert.Contains(t, string(data), "dracula_01.mp3")
}

func TestGetCmd_Enrich(t *testing.T) {
	t.Parallel()

	t.Run("prints metadata on a hit", func(t *testing.T) {
		t.Parallel()

		deps := getDeps(t, testBook())
		deps.Metadata = &mock.MetadataService{
			LookupFn: func(ctx context.Context, title string, author *string) (*earmark.BookMetadata, error) {
				assert.Equal(t, "Dracula", title)
				require.NotNil(t, author)
				assert.Equal(t, "Bram Stoker", *author)
				return &earmark.BookMetadata{
					Title:         "Dracula",
					Authors:       []string{"Bram Stoker"},
					Publisher:     "Archibald Constable",
					PublishedDate: "1897",
					PageCount:     418,
				}, nil
			},
		}

		cmd := &main.GetCmd{Source: "librivox", Query: "dracula", Enrich: true}
		err := cmd.Run(deps)

		require.NoError(t, err)
		out := deps.Stdout.(*bytes.Buffer).String()
		assert.Contains(t, out, "Written by: Bram Stoker")
		assert.Contains(t, out, "Publisher:  Archibald Constable")
		assert.Contains(t, out, "Pages:      418")
	})

	t.Run("reports a miss without failing", func(t *testing.T) {
		t.Parallel()

		deps := getDeps(t, testBook())
		deps.Metadata = &mock.MetadataService{
			LookupFn: func(ctx context.Context, title string, author *string) (*earmark.BookMetadata, error) {
				return nil, earmark.Errorf(earmark.ENOTFOUND, "no volumes matched")
			},
		}

		cmd := &main.GetCmd{Source: "librivox", Query: "dracula", Enrich: true}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, deps.Stdout.(*bytes.Buffer).String(), "No bibliographic metadata found.")
	})

	t.Run("warns on lookup failure without failing", func(t *testing.T) {
		t.Parallel()

		deps := getDeps(t, testBook())
		deps.Metadata = &mock.MetadataService{
			LookupFn: func(ctx context.Context, title string, author *string) (*earmark.BookMetadata, error) {
				return nil, earmark.Errorf(earmark.EUNAVAILABLE, "HTTP 500 for volumes")
			},
		}

		cmd := &main.GetCmd{Source: "librivox", Query: "dracula", Enrich: true}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, deps.Stderr.(*bytes.Buffer).String(), "warning: metadata lookup failed")
	})
}
