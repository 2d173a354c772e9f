// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"soundhive/internal/models"
	"soundhive/internal/shared"
)

// MockCatalog is a test double for the catalog client, returning canned data
// and recording writes in place.
type MockCatalog struct {
	Songs     []models.Song
	Playlists []models.Playlist
	Liked     []models.LikedSong
	Err       error
}

func (m *MockCatalog) ListSongs(ctx context.Context) ([]models.Song, error) {
	return m.Songs, m.Err
}

func (m *MockCatalog) CreateSong(ctx context.Context, song models.Song) error {
	if m.Err != nil {
		return m.Err
	}
	m.Songs = append(m.Songs, song)
	return nil
}

func (m *MockCatalog) SongsByGenre(ctx context.Context, genre string) ([]models.Song, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var matched []models.Song
	for _, s := range m.Songs {
		if s.Genre == genre {
			matched = append(matched, s)
		}
	}
	return matched, nil
}

func (m *MockCatalog) ListPlaylists(ctx context.Context) ([]models.Playlist, error) {
	return m.Playlists, m.Err
}

func (m *MockCatalog) GetPlaylist(ctx context.Context, id string) (*models.Playlist, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, pl := range m.Playlists {
		if pl.ID == id {
			return &pl, nil
		}
	}
	return nil, shared.ErrPlaylistNotFound
}

func (m *MockCatalog) CreatePlaylist(ctx context.Context, playlist models.Playlist) (*models.Playlist, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if playlist.ID == "" {
		playlist.ID = shared.GenerateID()
	}
	m.Playlists = append(m.Playlists, playlist)
	return &playlist, nil
}

func (m *MockCatalog) UpdatePlaylist(ctx context.Context, playlist models.Playlist) (*models.Playlist, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for i, pl := range m.Playlists {
		if pl.ID == playlist.ID {
			m.Playlists[i] = playlist
			return &playlist, nil
		}
	}
	return nil, shared.ErrPlaylistNotFound
}

func (m *MockCatalog) DeletePlaylist(ctx context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	for i, pl := range m.Playlists {
		if pl.ID == id {
			m.Playlists = append(m.Playlists[:i], m.Playlists[i+1:]...)
			return nil
		}
	}
	return shared.ErrPlaylistNotFound
}

func (m *MockCatalog) LikedSongs(ctx context.Context, userID string) ([]models.LikedSong, error) {
	return m.Liked, m.Err
}

func (m *MockCatalog) LikeSong(ctx context.Context, liked models.LikedSong) (*models.LikedSong, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if liked.ID == "" {
		liked.ID = shared.GenerateID()
	}
	m.Liked = append(m.Liked, liked)
	return &liked, nil
}

func (m *MockCatalog) UnlikeSong(ctx context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	for i, entry := range m.Liked {
		if entry.ID == id {
			m.Liked = append(m.Liked[:i], m.Liked[i+1:]...)
			return nil
		}
	}
	return shared.ErrSongNotFound
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
