package earmark

import (
	"context"
	"time"
)

// SavedAudiobook is an audiobook persisted to the local library.
type SavedAudiobook struct {
	ID string `json:"id"`
	Audiobook

	// RecordHash fingerprints the record content so re-saving an
	// unchanged book can be detected.
	RecordHash string    `json:"recordHash"`
	SavedAt    time.Time `json:"savedAt"`
}

// PlaybackPosition remembers where the listener stopped in a saved book.
type PlaybackPosition struct {
	BookID       string    `json:"bookId"`
	ChapterIndex int       `json:"chapterIndex"` // 1-based
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SavedAudiobookFilter restricts FindSavedAudiobooks.
type SavedAudiobookFilter struct {
	SourceName *string `json:"sourceName"`
	Title      *string `json:"title"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// LibraryService persists normalized records and playback positions.
// The extraction engine itself never touches storage; records become the
// caller's once returned, and saving them is the caller's decision.
type LibraryService interface {
	// SaveAudiobook validates and stores the record with its chapters.
	// Saving the same (source, title) pair again replaces the stored
	// record.
	SaveAudiobook(ctx context.Context, book *Audiobook) (*SavedAudiobook, error)

	// FindSavedAudiobookByID retrieves a saved book.
	// Returns ENOTFOUND if it does not exist.
	FindSavedAudiobookByID(ctx context.Context, id string) (*SavedAudiobook, error)

	// FindSavedAudiobooks retrieves saved books matching the filter,
	// most recently saved first.
	FindSavedAudiobooks(ctx context.Context, filter SavedAudiobookFilter) ([]*SavedAudiobook, error)

	// DeleteSavedAudiobook removes a saved book, its chapters and any
	// playback position. Returns ENOTFOUND if it does not exist.
	DeleteSavedAudiobook(ctx context.Context, id string) error

	// SavePosition upserts the playback position for a saved book.
	SavePosition(ctx context.Context, pos *PlaybackPosition) error

	// FindPosition retrieves the playback position for a saved book.
	// Returns ENOTFOUND if none has been recorded.
	FindPosition(ctx context.Context, bookID string) (*PlaybackPosition, error)
}
