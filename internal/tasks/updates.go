package tasks

import (
	"fmt"

	"soundhive/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchSongs Phase = iota
	FetchPlaylists
	FetchLiked
	ExportPlaylist
	SeedSongs
)

func (p Phase) String() string {
	switch p {
	case FetchSongs:
		return "fetch_songs"
	case FetchPlaylists:
		return "fetch_playlists"
	case FetchLiked:
		return "fetch_liked"
	case ExportPlaylist:
		return "export_playlist"
	case SeedSongs:
		return "seed_songs"
	default:
		return ""
	}
}

func fetchSongsUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSongs,
		Step:    step,
		Total:   total,
		Message: "Fetching songs...",
	}
}

func fetchPlaylistsUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPlaylists,
		Step:    step,
		Total:   total,
		Message: "Fetching playlists...",
	}
}

func fetchLikedUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchLiked,
		Step:    step,
		Total:   total,
		Message: "Fetching liked songs...",
	}
}

func seedSongUpdate(step, total int, song models.Song) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SeedSongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s - %s", step, total, song.Artist, song.Title),
	}
}

func exportingPlaylistUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Exporting: %s...", step, total, name),
	}
}

func exportCompletedUpdate(step, total int, name string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, name, filesCount),
	}
}

func exportFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}
