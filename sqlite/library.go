package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/jkow/earmark"
)

// Compile-time interface verification.
var _ earmark.LibraryService = (*LibraryService)(nil)

// LibraryService implements earmark.LibraryService using SQLite.
type LibraryService struct {
	db *DB
}

// NewLibraryService creates a new LibraryService.
func NewLibraryService(db *DB) *LibraryService {
	return &LibraryService{db: db}
}

// hashRecord fingerprints the record content with xxHash so re-saving
// an unchanged book can be detected.
func hashRecord(book *earmark.Audiobook) string {
	var sb strings.Builder
	sb.WriteString(book.SourceName)
	sb.WriteByte(0)
	sb.WriteString(book.Title)
	sb.WriteByte(0)
	sb.WriteString(book.URL)
	sb.WriteByte(0)
	for _, field := range []*string{book.Author, book.Description, book.CoverImageURL} {
		if field != nil {
			sb.WriteString(*field)
		}
		sb.WriteByte(0)
	}
	for _, ch := range book.Chapters {
		sb.WriteString(ch.Title)
		sb.WriteByte(0)
		sb.WriteString(ch.AudioURL)
		sb.WriteByte(0)
	}

	h := xxhash.Sum64String(sb.String())
	b := make([]byte, 8)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}

// SaveAudiobook validates and stores the record with its chapters.
// Saving the same (source, title) pair again replaces the stored record
// but keeps its ID, so references held by callers stay valid. The
// replaced book's chapters and playback position are removed by the
// cascade.
func (s *LibraryService) SaveAudiobook(ctx context.Context, book *earmark.Audiobook) (*earmark.SavedAudiobook, error) {
	if err := book.Validate(); err != nil {
		return nil, err
	}

	saved := &earmark.SavedAudiobook{
		Audiobook:  *book,
		RecordHash: hashRecord(book),
		SavedAt:    time.Now().UTC(),
	}

	var existingID string
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM saved_books WHERE source_name = ? AND title = ?
	`, book.SourceName, book.Title).Scan(&existingID)
	switch {
	case err == sql.ErrNoRows:
		saved.ID = uuid.New().String()
	case err != nil:
		return nil, err
	default:
		saved.ID = existingID
		if _, err := s.db.ExecContext(ctx, "DELETE FROM saved_books WHERE id = ?", existingID); err != nil {
			return nil, err
		}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO saved_books (id, source_name, title, url, author, description, cover_image_url, record_hash, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, saved.ID, saved.SourceName, saved.Title, saved.URL, saved.Author, saved.Description,
		saved.CoverImageURL, saved.RecordHash, saved.SavedAt.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}

	for _, ch := range saved.Chapters {
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO chapters (book_id, idx, title, audio_url)
			VALUES (?, ?, ?, ?)
		`, saved.ID, ch.Index, ch.Title, ch.AudioURL)
		if err != nil {
			return nil, err
		}
	}

	return saved, nil
}

// FindSavedAudiobookByID retrieves a saved book with its chapters.
func (s *LibraryService) FindSavedAudiobookByID(ctx context.Context, id string) (*earmark.SavedAudiobook, error) {
	var saved earmark.SavedAudiobook
	var savedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, source_name, title, url, author, description, cover_image_url, record_hash, saved_at
		FROM saved_books
		WHERE id = ?
	`, id).Scan(&saved.ID, &saved.SourceName, &saved.Title, &saved.URL, &saved.Author,
		&saved.Description, &saved.CoverImageURL, &saved.RecordHash, &savedAt)

	if err == sql.ErrNoRows {
		return nil, earmark.Errorf(earmark.ENOTFOUND, "audiobook not found")
	}
	if err != nil {
		return nil, err
	}

	saved.SavedAt, err = parseRFC3339(savedAt, "saved_at")
	if err != nil {
		return nil, err
	}

	saved.Chapters, err = s.chapters(ctx, saved.ID)
	if err != nil {
		return nil, err
	}

	return &saved, nil
}

// FindSavedAudiobooks retrieves saved books matching the filter, most
// recently saved first.
func (s *LibraryService) FindSavedAudiobooks(ctx context.Context, filter earmark.SavedAudiobookFilter) ([]*earmark.SavedAudiobook, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, source_name, title, url, author, description, cover_image_url, record_hash, saved_at FROM saved_books WHERE 1=1`)

	if filter.SourceName != nil {
		query.WriteString(" AND source_name = ?")
		args = append(args, *filter.SourceName)
	}
	if filter.Title != nil {
		query.WriteString(" AND title = ?")
		args = append(args, *filter.Title)
	}

	query.WriteString(" ORDER BY saved_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*earmark.SavedAudiobook
	for rows.Next() {
		var saved earmark.SavedAudiobook
		var savedAt string

		if err := rows.Scan(&saved.ID, &saved.SourceName, &saved.Title, &saved.URL, &saved.Author,
			&saved.Description, &saved.CoverImageURL, &saved.RecordHash, &savedAt); err != nil {
			return nil, err
		}

		saved.SavedAt, err = parseRFC3339(savedAt, "saved_at")
		if err != nil {
			return nil, err
		}

		books = append(books, &saved)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, saved := range books {
		saved.Chapters, err = s.chapters(ctx, saved.ID)
		if err != nil {
			return nil, err
		}
	}

	return books, nil
}

// DeleteSavedAudiobook permanently removes a saved book. Chapters and
// any playback position go with it via the cascade.
func (s *LibraryService) DeleteSavedAudiobook(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM saved_books WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return earmark.Errorf(earmark.ENOTFOUND, "audiobook not found")
	}

	return nil
}

// SavePosition upserts the playback position for a saved book.
func (s *LibraryService) SavePosition(ctx context.Context, pos *earmark.PlaybackPosition) error {
	if pos.ChapterIndex < 1 {
		return earmark.Errorf(earmark.EINVALID, "chapter index must be positive")
	}

	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM saved_books WHERE id = ?", pos.BookID).Scan(&exists)
	if err == sql.ErrNoRows {
		return earmark.Errorf(earmark.ENOTFOUND, "audiobook not found")
	}
	if err != nil {
		return err
	}

	pos.UpdatedAt = time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO playback_positions (book_id, chapter_index, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (book_id) DO UPDATE SET chapter_index = excluded.chapter_index, updated_at = excluded.updated_at
	`, pos.BookID, pos.ChapterIndex, pos.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindPosition retrieves the playback position for a saved book.
func (s *LibraryService) FindPosition(ctx context.Context, bookID string) (*earmark.PlaybackPosition, error) {
	var pos earmark.PlaybackPosition
	var updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT book_id, chapter_index, updated_at
		FROM playback_positions
		WHERE book_id = ?
	`, bookID).Scan(&pos.BookID, &pos.ChapterIndex, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, earmark.Errorf(earmark.ENOTFOUND, "no playback position recorded")
	}
	if err != nil {
		return nil, err
	}

	pos.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at")
	if err != nil {
		return nil, err
	}

	return &pos, nil
}

func (s *LibraryService) chapters(ctx context.Context, bookID string) ([]earmark.Chapter, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT idx, title, audio_url
		FROM chapters
		WHERE book_id = ?
		ORDER BY idx ASC
	`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chapters []earmark.Chapter
	for rows.Next() {
		var ch earmark.Chapter
		if err := rows.Scan(&ch.Index, &ch.Title, &ch.AudioURL); err != nil {
			return nil, err
		}
		chapters = append(chapters, ch)
	}

	return chapters, rows.Err()
}
