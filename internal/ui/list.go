package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"soundhive/internal/models"
)

var (
	_ list.Item = songItem{}
	_ list.Item = playlistItem{}
	_ list.Item = likedItem{}
)

// songItem wraps [models.Song] to implement [list.Item].
type songItem struct {
	song models.Song
}

func (i songItem) FilterValue() string { return i.song.Title + " " + i.song.Artist }
func (i songItem) Title() string       { return i.song.Title }
func (i songItem) Description() string {
	desc := i.song.Artist
	if i.song.Genre != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.song.Genre)
	}
	return desc
}

// playlistItem wraps [models.Playlist] to implement [list.Item].
type playlistItem struct {
	playlist models.Playlist
}

func (i playlistItem) FilterValue() string { return i.playlist.Name }
func (i playlistItem) Title() string       { return i.playlist.Name }
func (i playlistItem) Description() string {
	return fmt.Sprintf("%d songs", len(i.playlist.Songs))
}

// likedItem wraps [models.LikedSong] to implement [list.Item].
type likedItem struct {
	liked models.LikedSong
}

func (i likedItem) FilterValue() string { return i.liked.Title + " " + i.liked.Artist }
func (i likedItem) Title() string       { return i.liked.Title }
func (i likedItem) Description() string {
	desc := i.liked.Artist
	if i.liked.Album != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.liked.Album)
	}
	return desc
}
