package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/urfave/cli/v3"

	"soundhive/internal/models"
	"soundhive/internal/shared"
	"soundhive/internal/tasks"
)

// LibraryDump fetches songs, playlists and the signed-in user's liked songs in one pass.
func (r *Runner) LibraryDump(ctx context.Context, cmd *cli.Command) error {
	pretty := cmd.Bool("pretty")
	outputFile := cmd.String("output")

	userID := ""
	if s, err := r.store.Current(); err == nil && s != nil {
		userID = s.Email
	}

	r.logger.Info("dumping library", "user", userID)

	prog := make(chan tasks.ProgressUpdate, 8)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range prog {
			r.logger.Info(update.Message, "step", update.Step, "total", update.Total)
		}
	}()

	dump, err := r.engine.Dump(ctx, prog, userID)
	close(prog)
	wg.Wait()

	if err != nil {
		return fmt.Errorf("dump failed: %w", err)
	}

	for _, failure := range dump.Errors {
		r.logger.Warn("endpoint failed", "endpoint", failure.Endpoint, "error", failure.Error)
	}

	if outputFile != "" {
		data, err := shared.MarshalJSON(dump, true)
		if err != nil {
			return fmt.Errorf("failed to marshal dump: %w", err)
		}
		if err := os.WriteFile(outputFile, data, 0644); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		return r.writePlain("✓ Library dump saved to %s\n", outputFile)
	}

	return r.writeJSON(dump, pretty)
}

// LibrarySeed imports songs into the catalog from a JSON file.
//
// The file holds either a bare song array or an object with a "songs" key,
// so a saved library dump can be fed straight back in.
func (r *Runner) LibrarySeed(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path to a songs JSON file is required", shared.ErrMissingArgument)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var songs []models.Song
	if err := json.Unmarshal(data, &songs); err != nil {
		var wrapped struct {
			Songs []models.Song `json:"songs"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return fmt.Errorf("%w: file is not a songs JSON document", shared.ErrInvalidInput)
		}
		songs = wrapped.Songs
	}

	if len(songs) == 0 {
		return fmt.Errorf("%w: no songs found in %s", shared.ErrInvalidInput, path)
	}

	r.logger.Info("seeding catalog", "songs", len(songs))

	prog := make(chan tasks.ProgressUpdate, len(songs))
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range prog {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := r.engine.Seed(ctx, prog, songs)
	close(prog)
	wg.Wait()

	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	r.writePlainln("Seed complete")
	r.writePlain("Imported: %d/%d songs\n", result.Created, result.Total)
	for _, failure := range result.Failures {
		r.writePlain("✗ %s - %s: %v\n", failure.Song.Artist, failure.Song.Title, failure.Error)
	}
	return nil
}
