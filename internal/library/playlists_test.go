package library

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"soundhive/internal/models"
	"soundhive/internal/shared"
)

type fakePlaylistAPI struct {
	playlists  []models.Playlist
	updateResp *models.Playlist
	updateErr  error
	calls      int
}

func (f *fakePlaylistAPI) ListPlaylists(_ context.Context) ([]models.Playlist, error) {
	return f.playlists, nil
}

func (f *fakePlaylistAPI) GetPlaylist(_ context.Context, id string) (*models.Playlist, error) {
	for i := range f.playlists {
		if f.playlists[i].ID == id {
			return &f.playlists[i], nil
		}
	}
	return nil, shared.ErrPlaylistNotFound
}

func (f *fakePlaylistAPI) CreatePlaylist(_ context.Context, playlist models.Playlist) (*models.Playlist, error) {
	f.calls++
	playlist.ID = "created"
	return &playlist, nil
}

func (f *fakePlaylistAPI) UpdatePlaylist(_ context.Context, playlist models.Playlist) (*models.Playlist, error) {
	f.calls++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updateResp != nil {
		return f.updateResp, nil
	}
	return &playlist, nil
}

func (f *fakePlaylistAPI) DeletePlaylist(_ context.Context, id string) error {
	f.calls++
	return nil
}

func TestPlaylists(t *testing.T) {
	s1 := models.Song{ID: "s1", Title: "First Light", Artist: "Halcyon"}
	s2 := models.Song{ID: "s2", Title: "Undertow", Artist: "Brine"}

	t.Run("Create rejects whitespace name locally", func(t *testing.T) {
		api := &fakePlaylistAPI{}
		p := NewPlaylists(api)

		_, err := p.Create(context.Background(), "   \t ", nil)
		if !errors.Is(err, shared.ErrEmptyName) {
			t.Errorf("expected ErrEmptyName, got %v", err)
		}
		if api.calls != 0 {
			t.Errorf("expected no network call, got %d", api.calls)
		}
	})

	t.Run("Create appends server copy", func(t *testing.T) {
		api := &fakePlaylistAPI{}
		p := NewPlaylists(api)

		created, err := p.Create(context.Background(), "Roadtrip", []models.Song{s1})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if created.ID != "created" {
			t.Errorf("expected server-assigned ID, got %s", created.ID)
		}
		if len(p.All()) != 1 {
			t.Errorf("expected playlist appended to local state, got %d", len(p.All()))
		}
	})

	t.Run("AddSongs sends duplicated union and adopts server copy", func(t *testing.T) {
		serverCopy := models.Playlist{ID: "p1", Name: "Roadtrip", Songs: []models.Song{s1, s2}}
		api := &fakePlaylistAPI{
			playlists:  []models.Playlist{{ID: "p1", Name: "Roadtrip", Songs: []models.Song{s1}}},
			updateResp: &serverCopy,
		}
		p := NewPlaylists(api)
		p.Refresh(context.Background())

		updated, err := p.AddSongs(context.Background(), "p1", []models.Song{s2})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !reflect.DeepEqual(*updated, serverCopy) {
			t.Errorf("local state must equal server copy exactly, got %+v", updated)
		}
		if !reflect.DeepEqual(p.All()[0], serverCopy) {
			t.Errorf("list entry must be replaced with server copy, got %+v", p.All()[0])
		}
	})

	t.Run("AddSongs permits duplicate entries", func(t *testing.T) {
		api := &fakePlaylistAPI{
			playlists: []models.Playlist{{ID: "p1", Name: "Roadtrip", Songs: []models.Song{s1}}},
		}
		p := NewPlaylists(api)
		p.Refresh(context.Background())

		updated, err := p.AddSongs(context.Background(), "p1", []models.Song{s1})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(updated.Songs) != 2 {
			t.Errorf("expected duplicated entry, got %d songs", len(updated.Songs))
		}
	})

	t.Run("AddSongs failure leaves state untouched", func(t *testing.T) {
		before := models.Playlist{ID: "p1", Name: "Roadtrip", Songs: []models.Song{s1}}
		api := &fakePlaylistAPI{
			playlists: []models.Playlist{before},
			updateErr: errors.New("boom"),
		}
		p := NewPlaylists(api)
		p.Refresh(context.Background())

		if _, err := p.AddSongs(context.Background(), "p1", []models.Song{s2}); err == nil {
			t.Fatal("expected error")
		}

		if !reflect.DeepEqual(p.All()[0], before) {
			t.Errorf("expected prior state untouched after failure, got %+v", p.All()[0])
		}
	})

	t.Run("Open is a local view change", func(t *testing.T) {
		api := &fakePlaylistAPI{playlists: []models.Playlist{{ID: "p1", Name: "Roadtrip"}}}
		p := NewPlaylists(api)
		p.Refresh(context.Background())

		opened, err := p.Open("p1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if opened.Name != "Roadtrip" {
			t.Errorf("expected Roadtrip, got %s", opened.Name)
		}

		if _, err := p.Open("missing"); !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})

	t.Run("Delete keeps opened playlist identity", func(t *testing.T) {
		api := &fakePlaylistAPI{playlists: []models.Playlist{
			{ID: "p1", Name: "Alpha"},
			{ID: "p2", Name: "Beta"},
			{ID: "p3", Name: "Gamma"},
		}}
		p := NewPlaylists(api)
		p.Refresh(context.Background())
		p.Open("p2")

		if err := p.Delete(context.Background(), "p1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		opened := p.Opened()
		if opened == nil {
			t.Fatal("expected opened playlist to survive deleting another")
		}
		if opened.ID != "p2" || opened.Name != "Beta" {
			t.Errorf("opened playlist changed identity, got %+v", opened)
		}
	})

	t.Run("Delete drops playlist and clears opened", func(t *testing.T) {
		api := &fakePlaylistAPI{playlists: []models.Playlist{{ID: "p1", Name: "Roadtrip"}}}
		p := NewPlaylists(api)
		p.Refresh(context.Background())
		p.Open("p1")

		if err := p.Delete(context.Background(), "p1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(p.All()) != 0 {
			t.Errorf("expected empty playlist list, got %d", len(p.All()))
		}
		if p.Opened() != nil {
			t.Error("expected opened playlist cleared after delete")
		}
	})
}
