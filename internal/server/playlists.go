package server

import (
	"errors"
	"net/http"

	"soundhive/internal/models"
	"soundhive/internal/repositories"
	"soundhive/internal/shared"
)

// PlaylistHandler serves playlist routes. Adding a song copies it from the
// catalog into the playlist document, so the song handler's repository is
// needed alongside the playlist one.
type PlaylistHandler struct {
	repo  *repositories.PlaylistRepository
	songs *repositories.SongRepository
}

// NewPlaylistHandler creates a new PlaylistHandler backed by the given repositories.
func NewPlaylistHandler(repo *repositories.PlaylistRepository, songs *repositories.SongRepository) *PlaylistHandler {
	return &PlaylistHandler{repo: repo, songs: songs}
}

// Routes returns the method-qualified patterns this handler serves.
func (h *PlaylistHandler) Routes() []string {
	return []string{
		"GET /api/playlists",
		"POST /api/playlists",
		"GET /api/playlists/{id}",
		"PUT /api/playlists/{id}",
		"DELETE /api/playlists/{id}",
		"POST /api/playlists/{id}/songs/{songId}",
		"DELETE /api/playlists/{id}/songs/{songId}",
	}
}

func (h *PlaylistHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.PathValue("songId") != "":
		if r.Method == http.MethodPost {
			h.addSong(w, r)
		} else {
			h.removeSong(w, r)
		}
	case r.PathValue("id") != "":
		switch r.Method {
		case http.MethodGet:
			h.get(w, r)
		case http.MethodPut:
			h.update(w, r)
		case http.MethodDelete:
			h.delete(w, r)
		}
	case r.Method == http.MethodPost:
		h.create(w, r)
	default:
		h.list(w, r)
	}
}

func (h *PlaylistHandler) list(w http.ResponseWriter, r *http.Request) {
	playlists, err := h.repo.List(nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list playlists")
		return
	}

	dtos := make([]models.Playlist, 0, len(playlists))
	for _, playlist := range playlists {
		dtos = append(dtos, playlist.DTO())
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *PlaylistHandler) get(w http.ResponseWriter, r *http.Request) {
	playlist, err := h.repo.Get(r.PathValue("id"))
	if errors.Is(err, shared.ErrPlaylistNotFound) {
		writeError(w, http.StatusNotFound, "Playlist not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get playlist")
		return
	}
	writeJSON(w, http.StatusOK, playlist.DTO())
}

func (h *PlaylistHandler) create(w http.ResponseWriter, r *http.Request) {
	var dto models.Playlist
	if !decodeJSON(w, r, &dto) {
		return
	}

	playlist := models.NewPersistedPlaylist(0, dto.Name, dto.Songs)
	playlist.SetID(dto.ID)
	if err := h.repo.Create(playlist); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, playlist.DTO())
}

// update replaces the whole playlist document and answers with the stored copy.
func (h *PlaylistHandler) update(w http.ResponseWriter, r *http.Request) {
	var dto models.Playlist
	if !decodeJSON(w, r, &dto) {
		return
	}

	playlist, err := h.repo.Get(r.PathValue("id"))
	if errors.Is(err, shared.ErrPlaylistNotFound) {
		writeError(w, http.StatusNotFound, "Playlist not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get playlist")
		return
	}

	if dto.Name != "" {
		playlist.SetName(dto.Name)
	}
	if dto.Songs != nil {
		playlist.SetSongs(dto.Songs)
	}
	if err := h.repo.Update(playlist); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, playlist.DTO())
}

func (h *PlaylistHandler) delete(w http.ResponseWriter, r *http.Request) {
	err := h.repo.Delete(r.PathValue("id"))
	if errors.Is(err, shared.ErrPlaylistNotFound) {
		writeError(w, http.StatusNotFound, "Playlist not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete playlist")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Playlist deleted successfully"})
}

// addSong copies the catalog song into the playlist. Adding a song that is
// already present appends another copy.
func (h *PlaylistHandler) addSong(w http.ResponseWriter, r *http.Request) {
	playlistID := r.PathValue("id")
	if _, err := h.repo.Get(playlistID); err != nil {
		writeError(w, http.StatusNotFound, "Playlist not found")
		return
	}

	song, err := h.songs.Get(r.PathValue("songId"))
	if errors.Is(err, shared.ErrSongNotFound) {
		writeError(w, http.StatusNotFound, "Song not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get song")
		return
	}

	dto := song.Song()
	dto.ID = song.ID()
	if err := h.repo.AppendSong(playlistID, dto); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to add song to playlist")
		return
	}

	playlist, err := h.repo.Get(playlistID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get playlist")
		return
	}
	writeJSON(w, http.StatusOK, playlist.DTO())
}

func (h *PlaylistHandler) removeSong(w http.ResponseWriter, r *http.Request) {
	playlistID := r.PathValue("id")
	if _, err := h.repo.Get(playlistID); err != nil {
		writeError(w, http.StatusNotFound, "Playlist not found")
		return
	}

	if err := h.repo.RemoveSong(playlistID, r.PathValue("songId")); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to remove song from playlist")
		return
	}

	playlist, err := h.repo.Get(playlistID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get playlist")
		return
	}
	writeJSON(w, http.StatusOK, playlist.DTO())
}
