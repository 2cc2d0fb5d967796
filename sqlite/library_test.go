package sqlite_test

import (
	"context"
	"testing"

	"github.com/jkow/earmark"
	"github.com/jkow/earmark/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAudiobook(title string) *earmark.Audiobook {
	author := "Bram Stoker"
	return &earmark.Audiobook{
		Title:      title,
		SourceName: "librivox",
		URL:        "https://archive.org/details/dracula_librivox",
		Author:     &author,
		Chapters: []earmark.Chapter{
			{Index: 1, Title: "Chapter 1", AudioURL: "https://archive.org/download/d/01.mp3"},
			{Index: 2, Title: "Chapter 2", AudioURL: "https://archive.org/download/d/02.mp3"},
		},
	}
}

func TestLibraryService_SaveAudiobook(t *testing.T) {
	t.Parallel()

	t.Run("saves record with generated ID, hash and timestamp", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewLibraryService(db)
		ctx := context.Background()

		saved, err := svc.SaveAudiobook(ctx, testAudiobook("Dracula"))
		require.NoError(t, err)

		assert.NotEmpty(t, saved.ID, "ID should be generated")
		assert.NotEmpty(t, saved.RecordHash, "RecordHash should be generated")
		assert.False(t, saved.SavedAt.IsZero(), "SavedAt should be set")

		found, err := svc.FindSavedAudiobookByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dracula", found.Title)
		require.NotNil(t, found.Author)
		assert.Equal(t, "Bram Stoker", *found.Author)
		assert.Nil(t, found.Description)
		require.Len(t, found.Chapters, 2)
		assert.Equal(t, 1, found.Chapters[0].Index)
		assert.Equal(t, "https://archive.org/download/d/01.mp3", found.Chapters[0].AudioURL)
	})

	t.Run("rejects invalid records", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewLibraryService(db)

		book := testAudiobook("Broken")
		book.Chapters[1].Index = 5 // gap

		_, err := svc.SaveAudiobook(context.Background(), book)
		require.Error(t, err)
		assert.Equal(t, earmark.EINVALID, earmark.ErrorCode(err))
	})

	t.Run("re-saving the same source and title replaces the record", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewLibraryService(db)
		ctx := context.Background()

		first, err := svc.SaveAudiobook(ctx, testAudiobook("Dracula"))
		require.NoError(t, err)

		update := testAudiobook("Dracula")
		update.Chapters = update.Chapters[:1]
		second, err := svc.SaveAudiobook(ctx, update)
		require.NoError(t, err)

		// ID stays stable across replacement.
		assert.Equal(t, first.ID, second.ID)
		assert.NotEqual(t, first.RecordHash, second.RecordHash)

		books, err := svc.FindSavedAudiobooks(ctx, earmark.SavedAudiobookFilter{})
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Len(t, books[0].Chapters, 1)
	})

	t.Run("identical content produces the same hash", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewLibraryService(db)
		ctx := context.Background()

		first, err := svc.SaveAudiobook(ctx, testAudiobook("Dracula"))
		require.NoError(t, err)
		second, err := svc.SaveAudiobook(ctx, testAudiobook("Dracula"))
		require.NoError(t, err)

		assert.Equal(t, first.RecordHash, second.RecordHash)
	})
}

func TestLibraryService_FindSavedAudiobooks(t *testing.T) {
	t.Parallel()

	t.Run("filters by source name", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewLibraryService(db)
		ctx := context.Background()

		_, err := svc.SaveAudiobook(ctx, testAudiobook("Dracula"))
		require.NoError(t, err)

		other := testAudiobook("Frankenstein")
		other.SourceName = "mysite"
		_, err = svc.SaveAudiobook(ctx, other)
		require.NoError(t, err)

		source := "mysite"
		books, err := svc.FindSavedAudiobooks(ctx, earmark.SavedAudiobookFilter{SourceName: &source})
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "Frankenstein", books[0].Title)
	})

	t.Run("respects limit and offset", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewLibraryService(db)
		ctx := context.Background()

		for _, title := range []string{"A", "B", "C"} {
			_, err := svc.SaveAudiobook(ctx, testAudiobook(title))
			require.NoError(t, err)
		}

		books, err := svc.FindSavedAudiobooks(ctx, earmark.SavedAudiobookFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, books, 2)
	})
}

func TestLibraryService_DeleteSavedAudiobook(t *testing.T) {
	t.Parallel()

	t.Run("removes the record and its chapters", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewLibraryService(db)
		ctx := context.Background()

		saved, err := svc.SaveAudiobook(ctx, testAudiobook("Dracula"))
		require.NoError(t, err)

		require.NoError(t, svc.DeleteSavedAudiobook(ctx, saved.ID))

		_, err = svc.FindSavedAudiobookByID(ctx, saved.ID)
		assert.Equal(t, earmark.ENOTFOUND, earmark.ErrorCode(err))

		var chapterCount int
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chapters WHERE book_id = ?", saved.ID).Scan(&chapterCount)
		require.NoError(t, err)
		assert.Zero(t, chapterCount)
	})

	t.Run("unknown ID is ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewLibraryService(db)

		err := svc.DeleteSavedAudiobook(context.Background(), "nonexistent-id")
		require.Error(t, err)
		assert.Equal(t, earmark.ENOTFOUND, earmark.ErrorCode(err))
	})
}

func TestLibraryService_Positions(t *testing.T) {
	t.Parallel()

	t.Run("upserts and retrieves a position", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewLibraryService(db)
		ctx := context.Background()

		saved, err := svc.SaveAudiobook(ctx, testAudiobook("Dracula"))
		require.NoError(t, err)

		require.NoError(t, svc.SavePosition(ctx, &earmark.PlaybackPosition{BookID: saved.ID, ChapterIndex: 1}))
		require.NoError(t, svc.SavePosition(ctx, &earmark.PlaybackPosition{BookID: saved.ID, ChapterIndex: 2}))

		pos, err := svc.FindPosition(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, pos.ChapterIndex)
		assert.False(t, pos.UpdatedAt.IsZero())
	})

	t.Run("position for an unsaved book is ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewLibraryService(db)

		err := svc.SavePosition(context.Background(), &earmark.PlaybackPosition{BookID: "missing", ChapterIndex: 1})
		require.Error(t, err)
		assert.Equal(t, earmark.ENOTFOUND, earmark.ErrorCode(err))
	})

	t.Run("no recorded position is ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewLibraryService(db)
		ctx := context.Background()

		saved, err := svc.SaveAudiobook(ctx, testAudiobook("Dracula"))
		require.NoError(t, err)

		_, err = svc.FindPosition(ctx, saved.ID)
		require.Error(t, err)
		assert.Equal(t, earmark.ENOTFOUND, earmark.ErrorCode(err))
	})

	t.Run("deleting the book removes its position", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewLibraryService(db)
		ctx := context.Background()

		saved, err := svc.SaveAudiobook(ctx, testAudiobook("Dracula"))
		require.NoError(t, err)
		require.NoError(t, svc.SavePosition(ctx, &earmark.PlaybackPosition{BookID: saved.ID, ChapterIndex: 1}))
		require.NoError(t, svc.DeleteSavedAudiobook(ctx, saved.ID))

		_, err = svc.FindPosition(ctx, saved.ID)
		assert.Equal(t, earmark.ENOTFOUND, earmark.ErrorCode(err))
	})
}
