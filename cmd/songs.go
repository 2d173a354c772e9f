package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"soundhive/internal/catalog"
	"soundhive/internal/library"
	"soundhive/internal/models"
	"soundhive/internal/repositories"
	"soundhive/internal/shared"
)

// SongsList lists every catalog song, from the remote API or the local cache.
func (r *Runner) SongsList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	var songs []models.Song
	var err error

	if cmd.Bool("cached") {
		r.logger.Info("listing cached songs", "path", r.config.Database.Path)
		songs, err = r.cachedSongs()
	} else {
		r.logger.Info("listing catalog songs")
		songs, err = r.api.ListSongs(ctx)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if term := cmd.String("filter"); term != "" {
		view := library.NewCatalogView(r.api)
		view.SetSongs(songs)
		view.SetSearchTerm(term)
		songs = view.VisibleSongs()
	}

	if useJSON {
		return r.writeJSON(songs, pretty)
	}

	r.writeSongs(songs)
	return nil
}

// SongsGet shows a single song by ID.
func (r *Runner) SongsGet(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: song id is required", shared.ErrMissingArgument)
	}

	song, err := r.api.GetSong(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(song, true)
	}

	r.writePlainHeader(fmt.Sprintf("%s - %s", song.Artist, song.Title))
	if song.Album != "" {
		r.writePlain("Album: %s\n", song.Album)
	}
	if song.Genre != "" {
		r.writePlain("Genre: %s\n", song.Genre)
	}
	if song.Year != "" {
		r.writePlain("Year: %s\n", song.Year)
	}
	r.writePlain("ID: %s\n", song.ID)
	return nil
}

// SongsCreate adds a new song to the catalog.
func (r *Runner) SongsCreate(ctx context.Context, cmd *cli.Command) error {
	song := models.Song{
		Title:    cmd.String("title"),
		Artist:   cmd.String("artist"),
		Album:    cmd.String("album"),
		Genre:    cmd.String("genre"),
		Year:     cmd.String("year"),
		Image:    cmd.String("image"),
		AudioURL: cmd.String("audio-url"),
	}

	r.logger.Info("creating song", "title", song.Title, "artist", song.Artist)

	if err := r.api.CreateSong(ctx, song); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return r.writePlain("✓ Song created: %s - %s\n", song.Artist, song.Title)
}

// SongsEdit updates the provided fields on an existing song, leaving the
// rest as stored.
func (r *Runner) SongsEdit(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: song id is required", shared.ErrMissingArgument)
	}

	song, err := r.api.GetSong(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	for flag, field := range map[string]*string{
		"title":     &song.Title,
		"artist":    &song.Artist,
		"album":     &song.Album,
		"genre":     &song.Genre,
		"year":      &song.Year,
		"image":     &song.Image,
		"audio-url": &song.AudioURL,
	} {
		if v := cmd.String(flag); v != "" {
			*field = v
		}
	}

	if err := r.api.UpdateSong(ctx, *song); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return r.writePlain("✓ Song updated: %s - %s\n", song.Artist, song.Title)
}

// SongsDelete deletes a song from the catalog.
func (r *Runner) SongsDelete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: song id is required", shared.ErrMissingArgument)
	}

	if err := r.api.DeleteSong(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return r.writePlain("✓ Song deleted\n")
}

// SongsSearch searches songs across every field.
func (r *Runner) SongsSearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query is required", shared.ErrMissingArgument)
	}

	r.logger.Infof("searching songs for %q", query)

	songs, err := r.api.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(songs, true)
	}

	r.writeSongs(songs)
	return nil
}

// SongsGenre lists songs matching a genre, case-insensitively.
func (r *Runner) SongsGenre(ctx context.Context, cmd *cli.Command) error {
	genre := cmd.StringArg("genre")
	if genre == "" {
		return fmt.Errorf("%w: genre is required", shared.ErrMissingArgument)
	}

	songs, err := r.api.SongsByGenre(ctx, genre)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(songs, true)
	}

	r.writeSongs(songs)
	return nil
}

// SongsOpen opens a song's audio stream in the default browser.
func (r *Runner) SongsOpen(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: song id is required", shared.ErrMissingArgument)
	}

	song, err := r.api.GetSong(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if song.AudioURL == "" {
		return fmt.Errorf("%w: song has no audio URL", shared.ErrInvalidInput)
	}

	url := catalog.RawContentURL(song.AudioURL)
	r.logger.Info("opening audio stream", "url", url)

	if err := shared.OpenBrowser(url); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	return r.writePlain("✓ Opened %s - %s\n", song.Artist, song.Title)
}

// cachedSongs reads the song list from the local SQLite cache.
func (r *Runner) cachedSongs() ([]models.Song, error) {
	db, err := shared.NewDatabase(r.config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	stored, err := repositories.NewSongRepository(db).List(nil)
	if err != nil {
		return nil, err
	}

	songs := make([]models.Song, 0, len(stored))
	for _, s := range stored {
		dto := s.Song()
		dto.ID = s.ID()
		songs = append(songs, dto)
	}
	return songs, nil
}

func (r *Runner) writeSongs(songs []models.Song) {
	r.writePlain("Found %d songs:\n\n", len(songs))
	for i, s := range songs {
		r.writePlain("%d. %s - %s\n", i+1, s.Artist, s.Title)
		if s.Album != "" {
			r.writePlain("   Album: %s\n", s.Album)
		}
		if s.Genre != "" {
			r.writePlain("   Genre: %s\n", s.Genre)
		}
		r.writePlain("   ID: %s\n", s.ID)
		r.writePlain("\n")
	}
}
