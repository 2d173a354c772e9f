package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"soundhive/internal/models"
	"soundhive/internal/shared"
)

// PlaylistRepository implements [models.Repository] for [models.PersistedPlaylist] persistence.
//
// Playlist entries are full song copies stored in playlist_songs with a
// position column. The same song may appear at several positions; nothing
// here deduplicates.
type PlaylistRepository struct {
	db *sql.DB
}

// NewPlaylistRepository creates a new PlaylistRepository with the given database connection
func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Create inserts a new playlist and its song copies with generated ID and sequence
func (r *PlaylistRepository) Create(playlist *models.PersistedPlaylist) error {
	sequence, err := NextSequence(r.db, "playlists")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	if playlist.ID() == "" {
		playlist.SetID(shared.GenerateID())
	}

	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO playlists (id, sequence, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
	`
	if _, err := tx.Exec(query, playlist.ID(), sequence, playlist.Name(), playlist.CreatedAt(), playlist.UpdatedAt()); err != nil {
		return fmt.Errorf("failed to insert playlist: %w", err)
	}

	if err := insertSongCopies(tx, playlist.ID(), playlist.Songs()); err != nil {
		return err
	}

	return tx.Commit()
}

// Get retrieves a playlist with its song copies, excluding soft-deleted playlists
func (r *PlaylistRepository) Get(id string) (*models.PersistedPlaylist, error) {
	query := `
		SELECT id, sequence, name, created_at, updated_at, deleted_at
		FROM playlists
		WHERE id = ? AND deleted_at IS NULL
	`

	var (
		playlistID string
		sequence   int
		name       string
		createdAt  time.Time
		updatedAt  time.Time
		deletedAt  sql.NullTime
	)

	err := r.db.QueryRow(query, id).Scan(&playlistID, &sequence, &name, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query playlist: %w", err)
	}

	songs, err := r.songCopies(playlistID)
	if err != nil {
		return nil, err
	}

	playlist := models.NewPersistedPlaylist(sequence, name, songs)
	playlist.SetID(playlistID)
	playlist.SetCreatedAt(createdAt)
	playlist.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		playlist.SetDeletedAt(&deletedAt.Time)
	}

	return playlist, nil
}

// Update replaces a playlist's name and whole song list
func (r *PlaylistRepository) Update(playlist *models.PersistedPlaylist) error {
	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	playlist.SetUpdatedAt(now)

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE playlists
		SET name = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := tx.Exec(query, playlist.Name(), now, playlist.ID())
	if err != nil {
		return fmt.Errorf("failed to update playlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlist.ID())
	}

	if _, err := tx.Exec("DELETE FROM playlist_songs WHERE playlist_id = ?", playlist.ID()); err != nil {
		return fmt.Errorf("failed to clear playlist songs: %w", err)
	}
	if err := insertSongCopies(tx, playlist.ID(), playlist.Songs()); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete soft-deletes a playlist by ID, leaving its song copies for audit
func (r *PlaylistRepository) Delete(id string) error {
	query := `
		UPDATE playlists
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
	}

	return nil
}

// List retrieves all playlists with their song copies, excluding soft-deleted playlists
func (r *PlaylistRepository) List(criteria map[string]any) ([]*models.PersistedPlaylist, error) {
	query := `
		SELECT id, sequence, name, created_at, updated_at, deleted_at
		FROM playlists
		WHERE deleted_at IS NULL
		ORDER BY sequence ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	var playlists []*models.PersistedPlaylist
	for rows.Next() {
		var (
			playlistID string
			sequence   int
			name       string
			createdAt  time.Time
			updatedAt  time.Time
			deletedAt  sql.NullTime
		)

		if err := rows.Scan(&playlistID, &sequence, &name, &createdAt, &updatedAt, &deletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}

		playlist := models.NewPersistedPlaylist(sequence, name, nil)
		playlist.SetID(playlistID)
		playlist.SetCreatedAt(createdAt)
		playlist.SetUpdatedAt(updatedAt)
		if deletedAt.Valid {
			playlist.SetDeletedAt(&deletedAt.Time)
		}

		playlists = append(playlists, playlist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	for _, playlist := range playlists {
		songs, err := r.songCopies(playlist.ID())
		if err != nil {
			return nil, err
		}
		playlist.SetSongs(songs)
	}

	return playlists, nil
}

// AppendSong adds one song copy at the end of the playlist. Appending a
// song already present produces a second entry.
func (r *PlaylistRepository) AppendSong(playlistID string, song models.Song) error {
	var next int
	err := r.db.QueryRow("SELECT COALESCE(MAX(position), -1) + 1 FROM playlist_songs WHERE playlist_id = ?", playlistID).Scan(&next)
	if err != nil {
		return fmt.Errorf("failed to compute position: %w", err)
	}

	query := `
		INSERT INTO playlist_songs (id, playlist_id, position, song_id, title, artist, album, genre, year, image, audio_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, shared.GenerateID(), playlistID, next, song.ID, song.Title, song.Artist, song.Album, song.Genre, song.Year, song.Image, song.AudioURL)
	if err != nil {
		return fmt.Errorf("failed to append song: %w", err)
	}

	return nil
}

// RemoveSong deletes every copy of the song from the playlist.
func (r *PlaylistRepository) RemoveSong(playlistID, songID string) error {
	_, err := r.db.Exec("DELETE FROM playlist_songs WHERE playlist_id = ? AND song_id = ?", playlistID, songID)
	if err != nil {
		return fmt.Errorf("failed to remove song: %w", err)
	}
	return nil
}

// songCopies loads a playlist's song copies in position order.
func (r *PlaylistRepository) songCopies(playlistID string) ([]models.Song, error) {
	query := `
		SELECT song_id, title, artist, album, genre, year, image, audio_url
		FROM playlist_songs
		WHERE playlist_id = ?
		ORDER BY position ASC
	`

	rows, err := r.db.Query(query, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlist songs: %w", err)
	}
	defer rows.Close()

	songs := []models.Song{}
	for rows.Next() {
		var song models.Song
		if err := rows.Scan(&song.ID, &song.Title, &song.Artist, &song.Album, &song.Genre, &song.Year, &song.Image, &song.AudioURL); err != nil {
			return nil, fmt.Errorf("failed to scan playlist song: %w", err)
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return songs, nil
}

// insertSongCopies writes the playlist's song list in order within tx.
func insertSongCopies(tx *sql.Tx, playlistID string, songs []models.Song) error {
	query := `
		INSERT INTO playlist_songs (id, playlist_id, position, song_id, title, artist, album, genre, year, image, audio_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	for i, song := range songs {
		if _, err := tx.Exec(query, shared.GenerateID(), playlistID, i, song.ID, song.Title, song.Artist, song.Album, song.Genre, song.Year, song.Image, song.AudioURL); err != nil {
			return fmt.Errorf("failed to insert playlist song: %w", err)
		}
	}

	return nil
}
