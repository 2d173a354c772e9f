package ui

import (
	"soundhive/internal/models"
)

// songsFetchedMsg reports the library refresh outcome.
type songsFetchedMsg struct {
	songs []models.Song
	err   error
}

// playlistsFetchedMsg reports the playlist refresh outcome.
type playlistsFetchedMsg struct {
	playlists []models.Playlist
	err       error
}

// playlistOpenedMsg carries one opened playlist with its song copies.
type playlistOpenedMsg struct {
	playlist *models.Playlist
	err      error
}

// likedFetchedMsg reports the liked-songs refresh outcome.
type likedFetchedMsg struct {
	liked []models.LikedSong
	err   error
}

// likeToggledMsg reports the result of a like from the song list.
type likeToggledMsg struct {
	song models.Song
	err  error
}

// moodCompleteMsg reports the end of a capture-and-analyze run.
type moodCompleteMsg struct {
	err error
}
