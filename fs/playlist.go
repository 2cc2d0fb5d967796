// Package fs exports records as files on disk.
package fs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jkow/earmark"
)

// FormatPlaylist renders an audiobook as an extended M3U playlist, one
// entry per chapter in chapter order.
func FormatPlaylist(book *earmark.Audiobook) string {
	var b strings.Builder
	b.WriteString("#EXTM3U\n")
	b.WriteString("#PLAYLIST:")
	b.WriteString(book.Title)
	b.WriteString("\n")
	for _, ch := range book.Chapters {
		b.WriteString("#EXTINF:-1,")
		b.WriteString(ch.Title)
		b.WriteString("\n")
		b.WriteString(ch.AudioURL)
		b.WriteString("\n")
	}
	return b.String()
}

// PlaylistName converts a book title to a safe playlist file name.
// Example: "Dracula: Chapter 1/2" → dracula-chapter-1-2.m3u
func PlaylistName(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteString("-")
			lastDash = true
		}
	}
	name := strings.TrimSuffix(b.String(), "-")
	if name == "" {
		name = "audiobook"
	}
	return name + ".m3u"
}

// PlaylistWriter writes audiobook playlists to a directory.
type PlaylistWriter struct {
	baseDir string
}

// NewPlaylistWriter creates a new PlaylistWriter that writes to the
// given base directory.
func NewPlaylistWriter(baseDir string) *PlaylistWriter {
	return &PlaylistWriter{baseDir: baseDir}
}

// WritePlaylist validates the record and writes its playlist file.
// The file is written to a temporary path and renamed into place, so a
// concurrent reader never sees a half-written playlist. Returns the
// full path of the written file.
func (w *PlaylistWriter) WritePlaylist(book *earmark.Audiobook) (string, error) {
	if err := book.Validate(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, PlaylistName(book.Title))
	tmpPath := fullPath + ".tmp"

	if err := os.WriteFile(tmpPath, []byte(FormatPlaylist(book)), 0644); err != nil {
		return "", err
	}
	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return "", err
	}

	return fullPath, nil
}
