// package models defines the data model for the soundhive music catalog client
package models

import (
	"strings"
	"time"
)

// Model defines the base interface for all persistent models in the catalog store.
// Implementations include PersistedSong, PersistedUser, PersistedLikedSong, and PersistedPlaylist.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// Song represents a catalog song as exchanged with the remote API
type Song struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Album    string `json:"album,omitempty"`
	Genre    string `json:"genre,omitempty"`
	Year     string `json:"year,omitempty"`
	Image    string `json:"image,omitempty"`
	AudioURL string `json:"audioUrl,omitempty"`
}

// Fields returns the song's stringified field values in declaration order.
//
// Used by the library view's any-field substring filter.
func (s Song) Fields() []string {
	return []string{s.ID, s.Title, s.Artist, s.Album, s.Genre, s.Year, s.Image, s.AudioURL}
}

// Matches reports whether any field of the song contains term case-insensitively.
// The empty term matches every song.
func (s Song) Matches(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range s.Fields() {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// Playlist represents a named collection of embedded song copies.
//
// Entries are copies of catalog songs taken at append time, not references.
// The songs list is never deduplicated on the client side.
type Playlist struct {
	ID    string `json:"id"`
	Name  string `json:"playlistName"`
	Songs []Song `json:"songs"`
}

// LikedSong is a song copy owned by a user, keyed by the user's email.
type LikedSong struct {
	ID       string `json:"id"`
	SongID   string `json:"songId,omitempty"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Album    string `json:"album,omitempty"`
	Genre    string `json:"genre,omitempty"`
	Year     string `json:"year,omitempty"`
	Image    string `json:"image,omitempty"`
	AudioURL string `json:"audioUrl,omitempty"`
	UserID   string `json:"userId"`
}

// Song returns the catalog song embedded in the liked entry.
func (l LikedSong) Song() Song {
	return Song{
		ID:       l.SongID,
		Title:    l.Title,
		Artist:   l.Artist,
		Album:    l.Album,
		Genre:    l.Genre,
		Year:     l.Year,
		Image:    l.Image,
		AudioURL: l.AudioURL,
	}
}

// NewLikedSong copies a catalog song into a liked entry for the given user.
func NewLikedSong(song Song, userID string) LikedSong {
	return LikedSong{
		SongID:   song.ID,
		Title:    song.Title,
		Artist:   song.Artist,
		Album:    song.Album,
		Genre:    song.Genre,
		Year:     song.Year,
		Image:    song.Image,
		AudioURL: song.AudioURL,
		UserID:   userID,
	}
}

// User represents an account registered with the catalog service
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// Credentials carries an email and password pair for sign-in.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
