package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"soundhive/internal/library"
	"soundhive/internal/shared"
)

// LikedList lists the signed-in user's liked songs.
func (r *Runner) LikedList(ctx context.Context, cmd *cli.Command) error {
	liked := library.NewLiked(r.api, r.store)

	if err := liked.Refresh(ctx); err != nil {
		if errors.Is(err, shared.ErrNotSignedIn) {
			return r.writePlain("Please sign in first: soundhive auth login\n")
		}
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	entries := liked.All()

	if cmd.Bool("json") {
		return r.writeJSON(entries, true)
	}

	r.writePlain("Found %d liked songs:\n\n", len(entries))
	for i, e := range entries {
		r.writePlain("%d. %s - %s\n", i+1, e.Artist, e.Title)
		r.writePlain("   ID: %s\n", e.ID)
		r.writePlain("\n")
	}
	return nil
}

// LikedAdd likes a catalog song for the signed-in user.
func (r *Runner) LikedAdd(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: song id is required", shared.ErrMissingArgument)
	}

	song, err := r.api.GetSong(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	liked := library.NewLiked(r.api, r.store)
	if err := liked.Like(ctx, *song); err != nil {
		if errors.Is(err, shared.ErrNotSignedIn) {
			return r.writePlain("Please sign in first: soundhive auth login\n")
		}
		if errors.Is(err, shared.ErrAlreadyLiked) {
			return r.writePlain("Already liked: %s - %s\n", song.Artist, song.Title)
		}
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return r.writePlain("✓ Liked %s - %s\n", song.Artist, song.Title)
}

// LikedRemove unlikes a song by liked-entry ID.
func (r *Runner) LikedRemove(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: liked entry id is required", shared.ErrMissingArgument)
	}

	liked := library.NewLiked(r.api, r.store)
	if err := liked.Unlike(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotSignedIn) {
			return r.writePlain("Please sign in first: soundhive auth login\n")
		}
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return r.writePlain("✓ Unliked\n")
}
