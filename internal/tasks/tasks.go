// package tasks implements long-running library operations against the catalog service.
//
// The core abstraction is LibraryEngine, which orchestrates library dumps, bulk playlist
// exports, and catalog seeding. Operations emit progress updates via channels for
// non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"

	"soundhive/internal/models"
	"soundhive/internal/shared"
)

// CatalogAPI defines the catalog client operations the engine depends on.
// This abstraction allows for easier testing and decoupling from concrete implementation.
type CatalogAPI interface {
	ListSongs(ctx context.Context) ([]models.Song, error)
	ListPlaylists(ctx context.Context) ([]models.Playlist, error)
	GetPlaylist(ctx context.Context, id string) (*models.Playlist, error)
	LikedSongs(ctx context.Context, userID string) ([]models.LikedSong, error)
	CreateSong(ctx context.Context, song models.Song) error
}

// EndpointResult represents the result of fetching data from a single API endpoint.
type EndpointResult struct {
	Endpoint string
	Error    error
}

// DumpResult contains all library data fetched from the catalog service.
type DumpResult struct {
	Songs      []models.Song      `json:"songs,omitempty"`
	Playlists  []models.Playlist  `json:"playlists,omitempty"`
	LikedSongs []models.LikedSong `json:"liked_songs,omitempty"`
	Errors     []EndpointResult   `json:"-"`
}

// SeedFailure records a song the catalog rejected during seeding.
type SeedFailure struct {
	Song  models.Song
	Error error
}

// SeedResult contains the outcome of a bulk song import.
type SeedResult struct {
	Total    int
	Created  int
	Failed   int
	Failures []SeedFailure
}

// LibraryEngine runs dump, export, and seed operations against the catalog.
type LibraryEngine struct {
	api CatalogAPI
}

// NewLibraryEngine creates a new LibraryEngine backed by the given catalog client.
func NewLibraryEngine(api CatalogAPI) *LibraryEngine {
	return &LibraryEngine{api: api}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *LibraryEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Dump fetches the whole library from the catalog service. The userID is
// optional; when set, that user's liked songs are included. Endpoint failures
// are collected rather than aborting the dump.
func (e *LibraryEngine) Dump(ctx context.Context, progress chan<- ProgressUpdate, userID string) (*DumpResult, error) {
	if e.api == nil {
		return nil, fmt.Errorf("%w: catalog client not initialized", shared.ErrServiceUnavailable)
	}

	result := &DumpResult{Errors: []EndpointResult{}}

	total := 2
	if userID != "" {
		total = 3
	}

	e.sendProgress(progress, fetchSongsUpdate(1, total))
	songs, err := e.api.ListSongs(ctx)
	if err != nil {
		result.Errors = append(result.Errors, EndpointResult{Endpoint: "/api/songs", Error: err})
	} else {
		result.Songs = songs
	}

	e.sendProgress(progress, fetchPlaylistsUpdate(2, total))
	playlists, err := e.api.ListPlaylists(ctx)
	if err != nil {
		result.Errors = append(result.Errors, EndpointResult{Endpoint: "/api/playlists", Error: err})
	} else {
		result.Playlists = playlists
	}

	if userID != "" {
		e.sendProgress(progress, fetchLikedUpdate(3, total))
		liked, err := e.api.LikedSongs(ctx, userID)
		if err != nil {
			result.Errors = append(result.Errors, EndpointResult{Endpoint: "/api/likedSongs/" + userID, Error: err})
		} else {
			result.LikedSongs = liked
		}
	}

	return result, nil
}

// Seed imports songs into the catalog one at a time, reporting each through
// the progress channel. Rejected songs are recorded and the import continues.
func (e *LibraryEngine) Seed(ctx context.Context, progress chan<- ProgressUpdate, songs []models.Song) (*SeedResult, error) {
	if e.api == nil {
		return nil, fmt.Errorf("%w: catalog client not initialized", shared.ErrServiceUnavailable)
	}

	result := &SeedResult{Total: len(songs)}

	for i, song := range songs {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		e.sendProgress(progress, seedSongUpdate(i+1, len(songs), song))

		if err := e.api.CreateSong(ctx, song); err != nil {
			result.Failed++
			result.Failures = append(result.Failures, SeedFailure{Song: song, Error: err})
			continue
		}
		result.Created++
	}

	return result, nil
}
