package models

import (
	"fmt"
	"time"
)

// base carries the lifecycle fields shared by all persistent entities.
type base struct {
	id        string
	sequence  int
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

func newBase(sequence int) base {
	now := time.Now()
	return base{sequence: sequence, createdAt: now, updatedAt: now}
}

func (b *base) ID() string                { return b.id }
func (b *base) SetID(id string)           { b.id = id }
func (b *base) Sequence() int             { return b.sequence }
func (b *base) CreatedAt() time.Time      { return b.createdAt }
func (b *base) SetCreatedAt(t time.Time)  { b.createdAt = t }
func (b *base) UpdatedAt() time.Time      { return b.updatedAt }
func (b *base) SetUpdatedAt(t time.Time)  { b.updatedAt = t }
func (b *base) DeletedAt() *time.Time     { return b.deletedAt }
func (b *base) SetDeletedAt(t *time.Time) { b.deletedAt = t }

// PersistedSong is a database-backed catalog song.
type PersistedSong struct {
	base
	song Song
}

// NewPersistedSong wraps a song DTO for persistence with the given sequence number.
func NewPersistedSong(sequence int, song Song) *PersistedSong {
	return &PersistedSong{base: newBase(sequence), song: song}
}

func (s *PersistedSong) Song() Song       { return s.song }
func (s *PersistedSong) Title() string    { return s.song.Title }
func (s *PersistedSong) Artist() string   { return s.song.Artist }
func (s *PersistedSong) Album() string    { return s.song.Album }
func (s *PersistedSong) Genre() string    { return s.song.Genre }
func (s *PersistedSong) Year() string     { return s.song.Year }
func (s *PersistedSong) Image() string    { return s.song.Image }
func (s *PersistedSong) AudioURL() string { return s.song.AudioURL }

// SetSong replaces the embedded song DTO, preserving lifecycle fields.
func (s *PersistedSong) SetSong(song Song) { s.song = song }

func (s *PersistedSong) Validate() error {
	if s.song.Title == "" {
		return fmt.Errorf("song title is required")
	}
	if s.song.Artist == "" {
		return fmt.Errorf("song artist is required")
	}
	return nil
}

// PersistedUser is a database-backed user account.
type PersistedUser struct {
	base
	username string
	email    string
	password string
}

// NewPersistedUser creates a user entity with the given sequence number.
func NewPersistedUser(sequence int, username, email, password string) *PersistedUser {
	return &PersistedUser{base: newBase(sequence), username: username, email: email, password: password}
}

func (u *PersistedUser) Username() string { return u.username }
func (u *PersistedUser) Email() string    { return u.email }
func (u *PersistedUser) Password() string { return u.password }

func (u *PersistedUser) SetUsername(v string) { u.username = v }
func (u *PersistedUser) SetPassword(v string) { u.password = v }

func (u *PersistedUser) Validate() error {
	if u.username == "" {
		return fmt.Errorf("username is required")
	}
	if u.email == "" {
		return fmt.Errorf("email is required")
	}
	if u.password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// DTO converts the entity to its wire representation, omitting the password.
func (u *PersistedUser) DTO() User {
	return User{ID: u.id, Username: u.username, Email: u.email}
}

// PersistedLikedSong is a database-backed liked-song entry.
//
// Uniqueness of (song_id, user_id) is enforced by the schema.
type PersistedLikedSong struct {
	base
	liked LikedSong
}

// NewPersistedLikedSong wraps a liked-song DTO for persistence with the given sequence number.
func NewPersistedLikedSong(sequence int, liked LikedSong) *PersistedLikedSong {
	return &PersistedLikedSong{base: newBase(sequence), liked: liked}
}

func (l *PersistedLikedSong) Liked() LikedSong { return l.liked }
func (l *PersistedLikedSong) SongID() string   { return l.liked.SongID }
func (l *PersistedLikedSong) UserID() string   { return l.liked.UserID }

func (l *PersistedLikedSong) Validate() error {
	if l.liked.SongID == "" {
		return fmt.Errorf("song id is required")
	}
	if l.liked.Title == "" {
		return fmt.Errorf("song title is required")
	}
	if l.liked.Artist == "" {
		return fmt.Errorf("song artist is required")
	}
	if l.liked.Genre == "" {
		return fmt.Errorf("song genre is required")
	}
	if l.liked.AudioURL == "" {
		return fmt.Errorf("song audio url is required")
	}
	if l.liked.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	return nil
}

// PersistedPlaylist is a database-backed playlist with its embedded song copies.
type PersistedPlaylist struct {
	base
	name  string
	songs []Song
}

// NewPersistedPlaylist creates a playlist entity with the given sequence number.
func NewPersistedPlaylist(sequence int, name string, songs []Song) *PersistedPlaylist {
	return &PersistedPlaylist{base: newBase(sequence), name: name, songs: songs}
}

func (p *PersistedPlaylist) Name() string  { return p.name }
func (p *PersistedPlaylist) Songs() []Song { return p.songs }

func (p *PersistedPlaylist) SetName(v string)      { p.name = v }
func (p *PersistedPlaylist) SetSongs(songs []Song) { p.songs = songs }

func (p *PersistedPlaylist) Validate() error {
	if p.name == "" {
		return fmt.Errorf("playlist name is required")
	}
	return nil
}

// DTO converts the entity to its wire representation.
func (p *PersistedPlaylist) DTO() Playlist {
	return Playlist{ID: p.id, Name: p.name, Songs: p.songs}
}
