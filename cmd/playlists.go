package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/urfave/cli/v3"

	"soundhive/internal/formatter"
	"soundhive/internal/models"
	"soundhive/internal/shared"
	"soundhive/internal/tasks"
)

// PlaylistsList lists every playlist with its song count.
func (r *Runner) PlaylistsList(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("listing playlists")

	playlists, err := r.api.ListPlaylists(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, true)
	}

	r.writePlain("Found %d playlists:\n\n", len(playlists))
	for i, p := range playlists {
		r.writePlain("%d. %s\n", i+1, p.Name)
		r.writePlain("   ID: %s\n", p.ID)
		r.writePlain("   Songs: %d\n", len(p.Songs))
		r.writePlain("\n")
	}

	return nil
}

// PlaylistsShow shows a playlist and its songs in order.
func (r *Runner) PlaylistsShow(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: playlist id is required", shared.ErrMissingArgument)
	}

	playlist, err := r.api.GetPlaylist(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlist, true)
	}

	r.writePlainHeader(playlist.Name)
	for i, s := range playlist.Songs {
		r.writePlain("%d. %s - %s\n", i+1, s.Artist, s.Title)
	}
	r.writePlain("\n%d songs\n", len(playlist.Songs))
	return nil
}

// PlaylistsCreate creates a new, empty playlist.
func (r *Runner) PlaylistsCreate(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: playlist name is required", shared.ErrMissingArgument)
	}

	created, err := r.api.CreatePlaylist(ctx, models.Playlist{Name: name, Songs: []models.Song{}})
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return r.writePlain("✓ Playlist created: %s (ID: %s)\n", created.Name, created.ID)
}

// PlaylistsAdd copies a catalog song into a playlist.
func (r *Runner) PlaylistsAdd(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.String("playlist")
	songID := cmd.String("song")

	r.logger.Info("adding song to playlist", "playlist", playlistID, "song", songID)

	if err := r.api.AddSongToPlaylist(ctx, playlistID, songID); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return r.writePlain("✓ Song added to playlist\n")
}

// PlaylistsRemove removes every copy of a song from a playlist.
func (r *Runner) PlaylistsRemove(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.String("playlist")
	songID := cmd.String("song")

	if err := r.api.RemoveSongFromPlaylist(ctx, playlistID, songID); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return r.writePlain("✓ Song removed from playlist\n")
}

// PlaylistsDelete deletes a playlist.
func (r *Runner) PlaylistsDelete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: playlist id is required", shared.ErrMissingArgument)
	}

	if err := r.api.DeletePlaylist(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return r.writePlain("✓ Playlist deleted\n")
}

// PlaylistsExport exports a single playlist to the chosen format.
func (r *Runner) PlaylistsExport(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: playlist id is required", shared.ErrMissingArgument)
	}

	format := cmd.String("format")
	outputDir := cmd.String("output")

	playlist, err := r.api.GetPlaylist(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	r.logger.Info("exporting playlist", "name", playlist.Name, "format", format)

	switch format {
	case "csv":
		result, err := formatter.WriteCSVExport(*playlist, filepath.Join(outputDir, playlist.ID))
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		r.writePlain("✓ Exported %s\n", result.SongsFile)
		r.writePlain("✓ Exported %s\n", result.MetadataFile)
	case "markdown", "md":
		imageURL := ""
		if len(playlist.Songs) > 0 {
			imageURL = playlist.Songs[0].Image
		}
		result, err := formatter.WriteMarkdownExport(*playlist, outputDir, imageURL)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		for _, f := range result.Files {
			r.writePlain("✓ Exported %s\n", f)
		}
	case "txt", "text":
		path, err := formatter.WriteTextExport(*playlist, filepath.Join(outputDir, playlist.ID+"_songs.txt"))
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		r.writePlain("✓ Exported %s\n", path)
	case "json":
		data, err := shared.MarshalJSON(playlist, true)
		if err != nil {
			return fmt.Errorf("failed to marshal playlist: %w", err)
		}
		path := filepath.Join(outputDir, playlist.ID+".json")
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		r.writePlain("✓ Exported %s\n", path)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}

	return nil
}

// PlaylistsExportAll exports every playlist concurrently and writes a manifest.
func (r *Runner) PlaylistsExportAll(ctx context.Context, cmd *cli.Command) error {
	playlists, err := r.api.ListPlaylists(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	ids := make([]string, 0, len(playlists))
	for _, p := range playlists {
		ids = append(ids, p.ID)
	}

	opts := tasks.BulkExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output"),
		NumWorkers: cmd.Int("workers"),
		RateLimit:  cmd.Float("rate"),
	}

	prog := make(chan tasks.ProgressUpdate, len(ids)*2)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range prog {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := r.engine.BulkExport(ctx, prog, ids, opts)
	close(prog)
	wg.Wait()

	if err != nil {
		return fmt.Errorf("bulk export failed: %w", err)
	}

	r.writePlainln("Export complete")
	r.writePlain("Exported: %d/%d playlists\n", result.SuccessfulExports, result.TotalPlaylists)
	if result.FailedExports > 0 {
		r.writePlain("Failed: %d\n", result.FailedExports)
	}
	r.writePlain("Output: %s\n", result.OutputDirectory)
	if result.ManifestPath != "" {
		r.writePlain("Manifest: %s\n", result.ManifestPath)
	}
	return nil
}
