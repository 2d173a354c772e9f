package library

import (
	"context"
	"fmt"
	"strings"

	"soundhive/internal/models"
	"soundhive/internal/shared"
)

// PlaylistAPI is the slice of the catalog API the playlist state needs.
type PlaylistAPI interface {
	ListPlaylists(ctx context.Context) ([]models.Playlist, error)
	GetPlaylist(ctx context.Context, id string) (*models.Playlist, error)
	CreatePlaylist(ctx context.Context, playlist models.Playlist) (*models.Playlist, error)
	UpdatePlaylist(ctx context.Context, playlist models.Playlist) (*models.Playlist, error)
	DeletePlaylist(ctx context.Context, id string) error
}

// Playlists holds the playlist list and the currently opened playlist.
//
// Playlist entries are embedded song copies and are never deduplicated
// client-side: appending a song already present produces a second entry
// unless the server rejects it.
type Playlists struct {
	api       PlaylistAPI
	playlists []models.Playlist
	opened    *models.Playlist
}

// NewPlaylists creates an empty playlist state backed by the given API.
func NewPlaylists(api PlaylistAPI) *Playlists {
	return &Playlists{api: api, playlists: []models.Playlist{}}
}

// Refresh fetches the playlist list. On failure prior state is untouched.
func (p *Playlists) Refresh(ctx context.Context) error {
	playlists, err := p.api.ListPlaylists(ctx)
	if err != nil {
		return err
	}
	if playlists == nil {
		playlists = []models.Playlist{}
	}
	p.playlists = playlists
	return nil
}

// All returns the fetched playlist list.
func (p *Playlists) All() []models.Playlist { return p.playlists }

// Open selects a playlist from the loaded list as a pure local view
// change. Unknown IDs yield [shared.ErrPlaylistNotFound].
func (p *Playlists) Open(id string) (*models.Playlist, error) {
	for i := range p.playlists {
		if p.playlists[i].ID == id {
			p.opened = &p.playlists[i]
			return p.opened, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
}

// Opened returns the currently opened playlist, nil when none is open.
func (p *Playlists) Opened() *models.Playlist { return p.opened }

// Create persists a new playlist and appends the server's copy to local
// state. A name that is empty after trimming is rejected locally before
// any network call.
func (p *Playlists) Create(ctx context.Context, name string, initialSongs []models.Song) (*models.Playlist, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: playlist name", shared.ErrEmptyName)
	}

	created, err := p.api.CreatePlaylist(ctx, models.Playlist{Name: name, Songs: initialSongs})
	if err != nil {
		return nil, err
	}

	p.playlists = append(p.playlists, *created)
	return created, nil
}

// AddSongs appends copies of the given songs to the playlist and persists
// the whole updated playlist.
//
// The update is sent as the duplicated union of existing and new entries.
// On success local state is replaced with the server's returned copy, not
// the locally constructed one; on failure local state is untouched.
func (p *Playlists) AddSongs(ctx context.Context, playlistID string, songs []models.Song) (*models.Playlist, error) {
	var current *models.Playlist
	for i := range p.playlists {
		if p.playlists[i].ID == playlistID {
			current = &p.playlists[i]
			break
		}
	}
	if current == nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
	}

	union := make([]models.Song, 0, len(current.Songs)+len(songs))
	union = append(union, current.Songs...)
	union = append(union, songs...)

	updated, err := p.api.UpdatePlaylist(ctx, models.Playlist{ID: current.ID, Name: current.Name, Songs: union})
	if err != nil {
		return nil, err
	}

	*current = *updated
	if p.opened != nil && p.opened.ID == updated.ID {
		p.opened = current
	}
	return updated, nil
}

// Delete removes a playlist server-side, then drops it from local state.
func (p *Playlists) Delete(ctx context.Context, id string) error {
	if err := p.api.DeletePlaylist(ctx, id); err != nil {
		return err
	}

	kept := p.playlists[:0]
	for _, pl := range p.playlists {
		if pl.ID != id {
			kept = append(kept, pl)
		}
	}
	p.playlists = kept

	// Compaction shifts entries in the backing array, so the opened
	// pointer must be re-resolved by ID rather than kept as-is.
	if p.opened != nil {
		openedID := p.opened.ID
		p.opened = nil
		for i := range p.playlists {
			if p.playlists[i].ID == openedID {
				p.opened = &p.playlists[i]
				break
			}
		}
	}
	return nil
}
