package library

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"testing"

	"soundhive/internal/catalog"
	"soundhive/internal/models"
	"soundhive/internal/session"
	"soundhive/internal/shared"
)

type fakeLikedAPI struct {
	liked   []models.LikedSong
	likeErr error
	calls   int
}

func (f *fakeLikedAPI) LikedSongs(_ context.Context, userID string) ([]models.LikedSong, error) {
	f.calls++
	return f.liked, nil
}

func (f *fakeLikedAPI) LikeSong(_ context.Context, liked models.LikedSong) (*models.LikedSong, error) {
	f.calls++
	if f.likeErr != nil {
		return nil, f.likeErr
	}
	liked.ID = "l1"
	return &liked, nil
}

func (f *fakeLikedAPI) UnlikeSong(_ context.Context, id string) error {
	f.calls++
	return nil
}

func signedInStore() session.Store {
	store := session.NewMemStore()
	store.Set(session.Session{Username: "fan", Email: "fan@example.com"})
	return store
}

func TestLiked(t *testing.T) {
	song := models.Song{ID: "s1", Title: "First Light", Artist: "Halcyon", Genre: "Rock", AudioURL: "https://cdn.example.com/a.mp3"}

	t.Run("Like without session rejects locally", func(t *testing.T) {
		api := &fakeLikedAPI{}
		l := NewLiked(api, session.NewMemStore())

		err := l.Like(context.Background(), song)
		if !errors.Is(err, shared.ErrNotSignedIn) {
			t.Errorf("expected ErrNotSignedIn, got %v", err)
		}
		if api.calls != 0 {
			t.Errorf("expected no network call for guest, got %d", api.calls)
		}
	})

	t.Run("Like patches local list with server entry", func(t *testing.T) {
		api := &fakeLikedAPI{}
		l := NewLiked(api, signedInStore())

		if err := l.Like(context.Background(), song); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		all := l.All()
		if len(all) != 1 {
			t.Fatalf("expected one liked entry, got %d", len(all))
		}
		if all[0].ID != "l1" {
			t.Errorf("expected server-assigned entry ID, got %s", all[0].ID)
		}
		if all[0].UserID != "fan@example.com" {
			t.Errorf("expected owner key fan@example.com, got %s", all[0].UserID)
		}
	})

	t.Run("Like failure leaves list unchanged", func(t *testing.T) {
		api := &fakeLikedAPI{likeErr: errors.New("boom")}
		l := NewLiked(api, signedInStore())
		before := l.All()

		if err := l.Like(context.Background(), song); err == nil {
			t.Fatal("expected error")
		}
		if !reflect.DeepEqual(l.All(), before) {
			t.Errorf("expected liked list unchanged after failure, got %v", l.All())
		}
	})

	t.Run("duplicate like maps 409 to ErrAlreadyLiked", func(t *testing.T) {
		api := &fakeLikedAPI{likeErr: &catalog.StatusError{Status: http.StatusConflict, Message: "Song already liked"}}
		l := NewLiked(api, signedInStore())

		err := l.Like(context.Background(), song)
		if !errors.Is(err, shared.ErrAlreadyLiked) {
			t.Errorf("expected ErrAlreadyLiked, got %v", err)
		}
	})

	t.Run("Unlike removes entry by id", func(t *testing.T) {
		api := &fakeLikedAPI{liked: []models.LikedSong{
			{ID: "l1", Title: "First Light", Artist: "Halcyon", UserID: "fan@example.com"},
			{ID: "l2", Title: "Undertow", Artist: "Brine", UserID: "fan@example.com"},
		}}
		l := NewLiked(api, signedInStore())
		if err := l.Refresh(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if err := l.Unlike(context.Background(), "l1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		all := l.All()
		if len(all) != 1 || all[0].ID != "l2" {
			t.Errorf("expected only l2 to remain, got %v", all)
		}
	})

	t.Run("IsLiked matches by title and artist", func(t *testing.T) {
		api := &fakeLikedAPI{liked: []models.LikedSong{
			{ID: "server-id-differs", Title: "First Light", Artist: "Halcyon", UserID: "fan@example.com"},
		}}
		l := NewLiked(api, signedInStore())
		l.Refresh(context.Background())

		if !l.IsLiked(models.Song{ID: "catalog-id", Title: "first light", Artist: "HALCYON"}) {
			t.Error("expected case-insensitive title+artist match")
		}
		if l.IsLiked(models.Song{Title: "Undertow", Artist: "Brine"}) {
			t.Error("expected non-member to report false")
		}
	})

	t.Run("Refresh requires session", func(t *testing.T) {
		api := &fakeLikedAPI{}
		l := NewLiked(api, session.NewMemStore())

		if err := l.Refresh(context.Background()); !errors.Is(err, shared.ErrNotSignedIn) {
			t.Errorf("expected ErrNotSignedIn, got %v", err)
		}
		if api.calls != 0 {
			t.Errorf("expected no network call for guest, got %d", api.calls)
		}
	})
}
