package mock

import (
	"context"

	"github.com/jkow/earmark"
)

var _ earmark.LibraryService = (*LibraryService)(nil)

// LibraryService is a mock implementation of earmark.LibraryService.
type LibraryService struct {
	SaveAudiobookFn          func(ctx context.Context, book *earmark.Audiobook) (*earmark.SavedAudiobook, error)
	FindSavedAudiobookByIDFn func(ctx context.Context, id string) (*earmark.SavedAudiobook, error)
	FindSavedAudiobooksFn    func(ctx context.Context, filter earmark.SavedAudiobookFilter) ([]*earmark.SavedAudiobook, error)
	DeleteSavedAudiobookFn   func(ctx context.Context, id string) error
	SavePositionFn           func(ctx context.Context, pos *earmark.PlaybackPosition) error
	FindPositionFn           func(ctx context.Context, bookID string) (*earmark.PlaybackPosition, error)
}

func (s *LibraryService) SaveAudiobook(ctx context.Context, book *earmark.Audiobook) (*earmark.SavedAudiobook, error) {
	return s.SaveAudiobookFn(ctx, book)
}

func (s *LibraryService) FindSavedAudiobookByID(ctx context.Context, id string) (*earmark.SavedAudiobook, error) {
	return s.FindSavedAudiobookByIDFn(ctx, id)
}

func (s *LibraryService) FindSavedAudiobooks(ctx context.Context, filter earmark.SavedAudiobookFilter) ([]*earmark.SavedAudiobook, error) {
	return s.FindSavedAudiobooksFn(ctx, filter)
}

func (s *LibraryService) DeleteSavedAudiobook(ctx context.Context, id string) error {
	return s.DeleteSavedAudiobookFn(ctx, id)
}

func (s *LibraryService) SavePosition(ctx context.Context, pos *earmark.PlaybackPosition) error {
	return s.SavePositionFn(ctx, pos)
}

func (s *LibraryService) FindPosition(ctx context.Context, bookID string) (*earmark.PlaybackPosition, error) {
	return s.FindPositionFn(ctx, bookID)
}
