package server

import (
	"errors"
	"net/http"

	"soundhive/internal/models"
	"soundhive/internal/repositories"
	"soundhive/internal/shared"
)

// LikedHandler serves the per-user liked song routes.
type LikedHandler struct {
	repo *repositories.LikedSongRepository
}

// NewLikedHandler creates a new LikedHandler backed by the given repository.
func NewLikedHandler(repo *repositories.LikedSongRepository) *LikedHandler {
	return &LikedHandler{repo: repo}
}

// Routes returns the method-qualified patterns this handler serves.
func (h *LikedHandler) Routes() []string {
	return []string{
		"GET /api/likedSongs/{userId}",
		"POST /api/likedSongs",
		"DELETE /api/likedSongs/{id}",
	}
}

func (h *LikedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	case http.MethodDelete:
		h.delete(w, r)
	}
}

func (h *LikedHandler) list(w http.ResponseWriter, r *http.Request) {
	entries, err := h.repo.List(map[string]any{"user_id": r.PathValue("userId")})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list liked songs")
		return
	}

	dtos := make([]models.LikedSong, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, entry.Liked())
	}
	writeJSON(w, http.StatusOK, dtos)
}

// create records a like. The song fields and the user must all be present;
// liking the same song twice for one user answers 409.
func (h *LikedHandler) create(w http.ResponseWriter, r *http.Request) {
	var dto models.LikedSong
	if !decodeJSON(w, r, &dto) {
		return
	}

	if dto.SongID == "" {
		dto.SongID = dto.ID
	}

	entry := models.NewPersistedLikedSong(0, models.LikedSong{
		SongID:   dto.SongID,
		Title:    dto.Title,
		Artist:   dto.Artist,
		Album:    dto.Album,
		Genre:    dto.Genre,
		Year:     dto.Year,
		Image:    dto.Image,
		AudioURL: dto.AudioURL,
		UserID:   dto.UserID,
	})

	err := h.repo.Create(entry)
	if errors.Is(err, shared.ErrAlreadyLiked) {
		writeError(w, http.StatusConflict, "Song already liked")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	liked := entry.Liked()
	liked.ID = entry.ID()
	writeJSON(w, http.StatusCreated, liked)
}

func (h *LikedHandler) delete(w http.ResponseWriter, r *http.Request) {
	err := h.repo.Delete(r.PathValue("id"))
	if errors.Is(err, shared.ErrSongNotFound) {
		writeError(w, http.StatusNotFound, "Liked song not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to remove liked song")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Song removed from liked songs"})
}
