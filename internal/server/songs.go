package server

import (
	"errors"
	"net/http"

	"soundhive/internal/models"
	"soundhive/internal/repositories"
	"soundhive/internal/shared"
)

// SongHandler serves the song catalog routes, including genre filtering
// and free-text search.
type SongHandler struct {
	repo *repositories.SongRepository
}

// NewSongHandler creates a new SongHandler backed by the given repository.
func NewSongHandler(repo *repositories.SongRepository) *SongHandler {
	return &SongHandler{repo: repo}
}

// Routes returns the method-qualified patterns this handler serves.
func (h *SongHandler) Routes() []string {
	return []string{
		"GET /api/songs",
		"POST /api/songs",
		"GET /api/songs/{id}",
		"PUT /api/songs/{id}",
		"DELETE /api/songs/{id}",
		"GET /api/songs/genre/{genre}",
		"GET /api/search",
	}
}

// ServeHTTP dispatches to the route-specific handler. The matched pattern
// determines which path values are set.
func (h *SongHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/search":
		h.search(w, r)
	case r.PathValue("genre") != "":
		h.byGenre(w, r)
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

func (h *SongHandler) list(w http.ResponseWriter, r *http.Request) {
	songs, err := h.repo.List(nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list songs")
		return
	}
	writeJSON(w, http.StatusOK, songDTOs(songs))
}

func (h *SongHandler) byGenre(w http.ResponseWriter, r *http.Request) {
	songs, err := h.repo.List(map[string]any{"genre": r.PathValue("genre")})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list songs")
		return
	}
	writeJSON(w, http.StatusOK, songDTOs(songs))
}

func (h *SongHandler) search(w http.ResponseWriter, r *http.Request) {
	songs, err := h.repo.List(map[string]any{"query": r.URL.Query().Get("q")})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to search songs")
		return
	}
	writeJSON(w, http.StatusOK, songDTOs(songs))
}

func (h *SongHandler) get(w http.ResponseWriter, r *http.Request) {
	song, err := h.repo.Get(r.PathValue("id"))
	if errors.Is(err, shared.ErrSongNotFound) {
		writeError(w, http.StatusNotFound, "Song not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get song")
		return
	}
	writeJSON(w, http.StatusOK, song.Song())
}

func (h *SongHandler) create(w http.ResponseWriter, r *http.Request) {
	var dto models.Song
	if !decodeJSON(w, r, &dto) {
		return
	}

	song := models.NewPersistedSong(0, dto)
	song.SetID(dto.ID)
	if err := h.repo.Create(song); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	dto = song.Song()
	dto.ID = song.ID()
	writeJSON(w, http.StatusCreated, dto)
}

func (h *SongHandler) update(w http.ResponseWriter, r *http.Request) {
	var dto models.Song
	if !decodeJSON(w, r, &dto) {
		return
	}

	song, err := h.repo.Get(r.PathValue("id"))
	if errors.Is(err, shared.ErrSongNotFound) {
		writeError(w, http.StatusNotFound, "Song not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get song")
		return
	}

	dto.ID = song.ID()
	song.SetSong(dto)
	if err := h.repo.Update(song); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

func (h *SongHandler) delete(w http.ResponseWriter, r *http.Request) {
	err := h.repo.Delete(r.PathValue("id"))
	if errors.Is(err, shared.ErrSongNotFound) {
		writeError(w, http.StatusNotFound, "Song not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete song")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Song deleted successfully"})
}

// songDTOs converts persisted songs to their wire representation.
func songDTOs(songs []*models.PersistedSong) []models.Song {
	dtos := make([]models.Song, 0, len(songs))
	for _, song := range songs {
		dto := song.Song()
		dto.ID = song.ID()
		dtos = append(dtos, dto)
	}
	return dtos
}
