package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"soundhive/internal/models"
	"soundhive/internal/shared"
)

// LikedSongRepository implements [models.Repository] for [models.PersistedLikedSong] persistence.
//
// The (song_id, user_id) pair is unique among live entries; Create reports
// a duplicate as [shared.ErrAlreadyLiked] so the server route can answer 409.
type LikedSongRepository struct {
	db *sql.DB
}

// NewLikedSongRepository creates a new [LikedSongRepository] with the given database connection
func NewLikedSongRepository(db *sql.DB) *LikedSongRepository {
	return &LikedSongRepository{db: db}
}

// Create inserts a new liked entry with generated ID and sequence
func (r *LikedSongRepository) Create(liked *models.PersistedLikedSong) error {
	if exists, err := r.exists(liked.SongID(), liked.UserID()); err != nil {
		return err
	} else if exists {
		return fmt.Errorf("%w: song %s for user %s", shared.ErrAlreadyLiked, liked.SongID(), liked.UserID())
	}

	sequence, err := NextSequence(r.db, "liked_songs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	if liked.ID() == "" {
		liked.SetID(shared.GenerateID())
	}

	if err := liked.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	entry := liked.Liked()
	query := `
		INSERT INTO liked_songs (id, sequence, song_id, user_id, title, artist, album, genre, year, image, audio_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		liked.ID(),
		sequence,
		entry.SongID,
		entry.UserID,
		entry.Title,
		entry.Artist,
		entry.Album,
		entry.Genre,
		entry.Year,
		entry.Image,
		entry.AudioURL,
		liked.CreatedAt(),
		liked.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert liked song: %w", err)
	}

	return nil
}

// Get retrieves a liked entry by ID, excluding soft-deleted entries
func (r *LikedSongRepository) Get(id string) (*models.PersistedLikedSong, error) {
	query := `
		SELECT id, sequence, song_id, user_id, title, artist, album, genre, year, image, audio_url, created_at, updated_at, deleted_at
		FROM liked_songs
		WHERE id = ? AND deleted_at IS NULL
	`

	rows, err := r.db.Query(query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query liked song: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to query liked song: %w", err)
		}
		return nil, fmt.Errorf("%w: %s", shared.ErrSongNotFound, id)
	}

	return scanLikedSong(rows)
}

// Update modifies an existing liked entry in the database
func (r *LikedSongRepository) Update(liked *models.PersistedLikedSong) error {
	if err := liked.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	liked.SetUpdatedAt(now)

	entry := liked.Liked()
	query := `
		UPDATE liked_songs
		SET title = ?, artist = ?, album = ?, genre = ?, year = ?, image = ?, audio_url = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, entry.Title, entry.Artist, entry.Album, entry.Genre, entry.Year, entry.Image, entry.AudioURL, now, liked.ID())
	if err != nil {
		return fmt.Errorf("failed to update liked song: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrSongNotFound, liked.ID())
	}

	return nil
}

// Delete soft-deletes a liked entry by ID
func (r *LikedSongRepository) Delete(id string) error {
	query := `
		UPDATE liked_songs
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete liked song: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrSongNotFound, id)
	}

	return nil
}

// List retrieves all liked entries matching the given criteria, excluding soft-deleted entries.
//
// Supported criteria: "user_id" (the owning user's key).
func (r *LikedSongRepository) List(criteria map[string]any) ([]*models.PersistedLikedSong, error) {
	query := `
		SELECT id, sequence, song_id, user_id, title, artist, album, genre, year, image, audio_url, created_at, updated_at, deleted_at
		FROM liked_songs
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if userID, ok := criteria["user_id"].(string); ok && userID != "" {
		query += " AND user_id = ?"
		args = append(args, userID)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query liked songs: %w", err)
	}
	defer rows.Close()

	var liked []*models.PersistedLikedSong
	for rows.Next() {
		entry, err := scanLikedSong(rows)
		if err != nil {
			return nil, err
		}
		liked = append(liked, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return liked, nil
}

// exists reports whether the user already has a live liked entry for the song.
func (r *LikedSongRepository) exists(songID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM liked_songs WHERE song_id = ? AND user_id = ? AND deleted_at IS NULL)",
		songID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check liked song: %w", err)
	}
	return exists, nil
}

// scanLikedSong scans the current row of [sql.Rows] into a [models.PersistedLikedSong]
func scanLikedSong(rows *sql.Rows) (*models.PersistedLikedSong, error) {
	var (
		id        string
		sequence  int
		entry     models.LikedSong
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := rows.Scan(&id, &sequence, &entry.SongID, &entry.UserID, &entry.Title, &entry.Artist, &entry.Album, &entry.Genre, &entry.Year, &entry.Image, &entry.AudioURL, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan liked song: %w", err)
	}

	entry.ID = id
	liked := models.NewPersistedLikedSong(sequence, entry)
	liked.SetID(id)
	liked.SetCreatedAt(createdAt)
	liked.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		liked.SetDeletedAt(&deletedAt.Time)
	}

	return liked, nil
}
