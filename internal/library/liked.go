package library

import (
	"context"
	"errors"
	"fmt"

	"soundhive/internal/catalog"
	"soundhive/internal/models"
	"soundhive/internal/session"
	"soundhive/internal/shared"
)

// LikedAPI is the slice of the catalog API the liked-songs state needs.
type LikedAPI interface {
	LikedSongs(ctx context.Context, userID string) ([]models.LikedSong, error)
	LikeSong(ctx context.Context, liked models.LikedSong) (*models.LikedSong, error)
	UnlikeSong(ctx context.Context, id string) error
}

// Liked holds the signed-in user's liked set.
//
// Likes require a session: a guest is rejected locally before any network
// call. Successful writes patch the local list immediately instead of
// re-fetching, trading strict consistency for responsiveness.
type Liked struct {
	api   LikedAPI
	store session.Store
	liked []models.LikedSong
}

// NewLiked creates an empty liked-songs state for the given API and
// session store.
func NewLiked(api LikedAPI, store session.Store) *Liked {
	return &Liked{api: api, store: store, liked: []models.LikedSong{}}
}

// requireSession resolves the current session, mapping a guest to
// [shared.ErrNotSignedIn].
func (l *Liked) requireSession() (*session.Session, error) {
	s, err := l.store.Current()
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, shared.ErrNotSignedIn
	}
	return s, nil
}

// Refresh fetches the liked list for the signed-in user. On failure prior
// state is untouched.
func (l *Liked) Refresh(ctx context.Context) error {
	s, err := l.requireSession()
	if err != nil {
		return err
	}

	liked, err := l.api.LikedSongs(ctx, s.Email)
	if err != nil {
		return err
	}
	if liked == nil {
		liked = []models.LikedSong{}
	}
	l.liked = liked
	return nil
}

// All returns the local liked list.
func (l *Liked) All() []models.LikedSong { return l.liked }

// Like records the song as liked by the signed-in user and appends the
// server's returned entry to the local list.
//
// A guest is rejected with [shared.ErrNotSignedIn] before any request is
// made. A 409 from the server is mapped to [shared.ErrAlreadyLiked]; any
// failure leaves the local list unchanged.
func (l *Liked) Like(ctx context.Context, song models.Song) error {
	s, err := l.requireSession()
	if err != nil {
		return err
	}

	created, err := l.api.LikeSong(ctx, models.NewLikedSong(song, s.Email))
	if err != nil {
		if conflict(err) {
			return fmt.Errorf("%w: %s", shared.ErrAlreadyLiked, song.Title)
		}
		return err
	}

	l.liked = append(l.liked, *created)
	return nil
}

// Unlike removes a liked entry by its ID, patching the local list on
// success.
func (l *Liked) Unlike(ctx context.Context, id string) error {
	if _, err := l.requireSession(); err != nil {
		return err
	}

	if err := l.api.UnlikeSong(ctx, id); err != nil {
		return err
	}

	kept := l.liked[:0]
	for _, entry := range l.liked {
		if entry.ID != id {
			kept = append(kept, entry)
		}
	}
	l.liked = kept
	return nil
}

// IsLiked reports membership by matching title and artist rather than
// identifier, since liked entries may carry server-assigned IDs that
// differ from catalog IDs.
func (l *Liked) IsLiked(song models.Song) bool {
	key := shared.NormalizeSongKey(song.Title, song.Artist)
	for _, entry := range l.liked {
		if shared.NormalizeSongKey(entry.Title, entry.Artist) == key {
			return true
		}
	}
	return false
}

// conflict reports whether err is a 409 catalog response.
func conflict(err error) bool {
	var statusErr *catalog.StatusError
	return errors.As(err, &statusErr) && statusErr.Conflict()
}
