// package player tracks which song is playing across a rendered list
//
// Playback state is pure bookkeeping: the audio itself is delegated to
// whatever opens the song's audio URL. At most one song is marked playing
// at any time.
package player

// Coordinator ensures at most one song is in the playing state.
type Coordinator struct {
	currentID string
}

// NewCoordinator creates a coordinator with nothing playing.
func NewCoordinator() *Coordinator { return &Coordinator{} }

// Play marks the song as playing. Calling Play with the ID that is already
// playing toggles it back to paused, so two successive calls with the same
// ID leave nothing playing.
func (c *Coordinator) Play(id string) {
	if c.currentID == id {
		c.currentID = ""
		return
	}
	c.currentID = id
}

// Pause clears the playing state if id is the current song, otherwise no-op.
func (c *Coordinator) Pause(id string) {
	if c.currentID == id {
		c.currentID = ""
	}
}

// SongDeleted clears the playing state when the removed song was playing.
func (c *Coordinator) SongDeleted(id string) {
	if c.currentID == id {
		c.currentID = ""
	}
}

// CurrentID returns the playing song's ID, empty when nothing is playing.
func (c *Coordinator) CurrentID() string { return c.currentID }

// IsPlaying reports whether the given song is the one playing.
func (c *Coordinator) IsPlaying(id string) bool {
	return id != "" && c.currentID == id
}
