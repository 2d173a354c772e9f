package models

import "testing"

func TestSongMatches(t *testing.T) {
	song := Song{
		ID:       "s1",
		Title:    "Night Drive",
		Artist:   "The Commuters",
		Album:    "Arterial",
		Genre:    "Rock",
		Year:     "2019",
		AudioURL: "https://cdn.example.com/night-drive.mp3",
	}

	tc := []struct {
		name string
		term string
		want bool
	}{
		{name: "empty term matches", term: "", want: true},
		{name: "title substring", term: "night", want: true},
		{name: "artist case-insensitive", term: "COMMUTERS", want: true},
		{name: "genre", term: "rock", want: true},
		{name: "year", term: "2019", want: true},
		{name: "url substring", term: "cdn.example", want: true},
		{name: "no field matches", term: "jazz", want: false},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := song.Matches(tt.term); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.term, got, tt.want)
			}
		})
	}
}

func TestNewLikedSong(t *testing.T) {
	song := Song{ID: "s42", Title: "Aubade", Artist: "Dawn Chorus", Genre: "Classical", AudioURL: "https://cdn.example.com/aubade.mp3"}

	liked := NewLikedSong(song, "fan@example.com")

	if liked.SongID != "s42" {
		t.Errorf("expected song id s42, got %s", liked.SongID)
	}
	if liked.UserID != "fan@example.com" {
		t.Errorf("expected user id fan@example.com, got %s", liked.UserID)
	}
	if got := liked.Song(); got != song {
		t.Errorf("round-tripped song = %+v, want %+v", got, song)
	}
}

func TestPersistedPlaylistValidate(t *testing.T) {
	p := NewPersistedPlaylist(1, "", nil)
	if err := p.Validate(); err == nil {
		t.Error("expected validation error for empty name")
	}

	p.SetName("Roadtrip")
	if err := p.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}
