package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"soundhive/internal/models"
	"soundhive/internal/shared"
)

// SongRepository implements models.Repository[*models.PersistedSong] for the
// catalog song store backing the local server.
type SongRepository struct {
	db *sql.DB
}

// NewSongRepository creates a new SongRepository with the given database connection
func NewSongRepository(db *sql.DB) *SongRepository {
	return &SongRepository{db: db}
}

// Create inserts a new song into the database with generated ID and sequence.
// A caller-supplied ID (a catalog ID from imported data) is kept.
func (r *SongRepository) Create(song *models.PersistedSong) error {
	sequence, err := NextSequence(r.db, "songs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	if song.ID() == "" {
		song.SetID(shared.GenerateID())
	}

	if err := song.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO songs (id, sequence, title, artist, album, genre, year, image, audio_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		song.ID(),
		sequence,
		song.Title(),
		song.Artist(),
		song.Album(),
		song.Genre(),
		song.Year(),
		song.Image(),
		song.AudioURL(),
		song.CreatedAt(),
		song.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert song: %w", err)
	}

	return nil
}

// Get retrieves a song by ID, excluding soft-deleted songs
func (r *SongRepository) Get(id string) (*models.PersistedSong, error) {
	query := `
		SELECT id, sequence, title, artist, album, genre, year, image, audio_url, created_at, updated_at, deleted_at
		FROM songs
		WHERE id = ? AND deleted_at IS NULL
	`

	rows, err := r.db.Query(query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query song: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to query song: %w", err)
		}
		return nil, fmt.Errorf("%w: %s", shared.ErrSongNotFound, id)
	}

	return scanSong(rows)
}

// Update modifies an existing song in the database
func (r *SongRepository) Update(song *models.PersistedSong) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	song.SetUpdatedAt(now)

	query := `
		UPDATE songs
		SET title = ?, artist = ?, album = ?, genre = ?, year = ?, image = ?, audio_url = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		song.Title(),
		song.Artist(),
		song.Album(),
		song.Genre(),
		song.Year(),
		song.Image(),
		song.AudioURL(),
		now,
		song.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update song: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrSongNotFound, song.ID())
	}

	return nil
}

// Delete soft-deletes a song by ID
func (r *SongRepository) Delete(id string) error {
	query := `
		UPDATE songs
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
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

// List retrieves all songs matching the given criteria, excluding soft-deleted songs.
//
// Supported criteria: "genre" (case-insensitive substring match, mirroring
// the genre route) and "query" (case-insensitive substring across title,
// artist, album, and genre, mirroring the search route).
func (r *SongRepository) List(criteria map[string]any) ([]*models.PersistedSong, error) {
	query := `
		SELECT id, sequence, title, artist, album, genre, year, image, audio_url, created_at, updated_at, deleted_at
		FROM songs
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if genre, ok := criteria["genre"].(string); ok && genre != "" {
		query += " AND LOWER(genre) LIKE ?"
		args = append(args, "%"+strings.ToLower(genre)+"%")
	}

	if q, ok := criteria["query"].(string); ok && q != "" {
		query += " AND (LOWER(title) LIKE ? OR LOWER(artist) LIKE ? OR LOWER(album) LIKE ? OR LOWER(genre) LIKE ?)"
		pattern := "%" + strings.ToLower(q) + "%"
		args = append(args, pattern, pattern, pattern, pattern)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	var songs []*models.PersistedSong
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return songs, nil
}

// scanSong scans the current row of [sql.Rows] into a [models.PersistedSong]
func scanSong(rows *sql.Rows) (*models.PersistedSong, error) {
	var (
		id        string
		sequence  int
		dto       models.Song
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := rows.Scan(&id, &sequence, &dto.Title, &dto.Artist, &dto.Album, &dto.Genre, &dto.Year, &dto.Image, &dto.AudioURL, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan song: %w", err)
	}

	dto.ID = id
	song := models.NewPersistedSong(sequence, dto)
	song.SetID(id)
	song.SetCreatedAt(createdAt)
	song.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		song.SetDeletedAt(&deletedAt.Time)
	}

	return song, nil
}
