package library

import (
	"context"

	"soundhive/internal/models"
)

// SongLister is the slice of the catalog API the view needs.
type SongLister interface {
	ListSongs(ctx context.Context) ([]models.Song, error)
}

// CatalogView holds the full fetched song list and a derived view filtered
// by a live search term.
//
// The visible list is recomputed synchronously whenever either input
// changes: a song is visible when any of its stringified fields contains
// the term case-insensitively, and an empty term shows everything.
type CatalogView struct {
	api     SongLister
	all     []models.Song
	term    string
	visible []models.Song
}

// NewCatalogView creates an empty view backed by the given API.
func NewCatalogView(api SongLister) *CatalogView {
	return &CatalogView{api: api, all: []models.Song{}, visible: []models.Song{}}
}

// Refresh fetches the catalog. On failure the song list is coerced to
// empty so the filter step always has a list to work with, and the error
// is returned for the caller to surface.
func (v *CatalogView) Refresh(ctx context.Context) error {
	songs, err := v.api.ListSongs(ctx)
	if err != nil {
		v.SetSongs(nil)
		return err
	}
	v.SetSongs(songs)
	return nil
}

// SetSongs replaces the source list. A nil list is coerced to empty.
func (v *CatalogView) SetSongs(songs []models.Song) {
	if songs == nil {
		songs = []models.Song{}
	}
	v.all = songs
	v.recompute()
}

// SetSearchTerm updates the filter term and recomputes the visible list.
func (v *CatalogView) SetSearchTerm(term string) {
	v.term = term
	v.recompute()
}

// SearchTerm returns the current filter term.
func (v *CatalogView) SearchTerm() string { return v.term }

// AllSongs returns the unfiltered source list.
func (v *CatalogView) AllSongs() []models.Song { return v.all }

// VisibleSongs returns the filtered view.
func (v *CatalogView) VisibleSongs() []models.Song { return v.visible }

func (v *CatalogView) recompute() {
	visible := make([]models.Song, 0, len(v.all))
	for _, song := range v.all {
		if song.Matches(v.term) {
			visible = append(visible, song)
		}
	}
	v.visible = visible
}
