package player

import (
	"soundhive/internal/models"
	"soundhive/internal/shared"
)

// Queue is an ordered song sequence with a cursor and a play/pause flag,
// used by mood mode's suggestion playlist.
//
// The cursor advances circularly: skipping from the last song wraps to the
// first, so a queue of length n returns to its starting index after n
// skips.
type Queue struct {
	songs   []models.Song
	index   int
	playing bool
}

// NewQueue creates a queue over the given songs. The cursor starts at the
// first song, paused.
func NewQueue(songs []models.Song) (*Queue, error) {
	if len(songs) == 0 {
		return nil, shared.ErrSongNotFound
	}
	return &Queue{songs: songs}, nil
}

// Current returns the song under the cursor.
func (q *Queue) Current() models.Song { return q.songs[q.index] }

// Index returns the cursor position.
func (q *Queue) Index() int { return q.index }

// Len returns the number of songs in the queue.
func (q *Queue) Len() int { return len(q.songs) }

// Playing reports whether the current song is marked playing.
func (q *Queue) Playing() bool { return q.playing }

// Play marks the current song playing.
func (q *Queue) Play() { q.playing = true }

// TogglePlay flips play/pause on the current song.
func (q *Queue) TogglePlay() { q.playing = !q.playing }

// Skip advances the cursor to (index+1) mod length. Playback state carries
// over: if a song was playing, the next one starts playing immediately.
func (q *Queue) Skip() models.Song {
	q.index = (q.index + 1) % len(q.songs)
	return q.songs[q.index]
}

// TrackEnded advances the cursor exactly like Skip and keeps playing, so a
// finished track flows into the next without user action.
func (q *Queue) TrackEnded() models.Song {
	q.playing = true
	return q.Skip()
}
