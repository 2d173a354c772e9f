package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"soundhive/internal/models"
	"soundhive/internal/mood"
	"soundhive/internal/shared"
)

// MoodPlay captures a frame, detects the dominant expression and prints the
// genre playlist queued for it.
func (r *Runner) MoodPlay(ctx context.Context, cmd *cli.Command) error {
	var source mood.FrameSource
	if framesDir := cmd.String("frames"); framesDir != "" {
		source = mood.NewFileSource(framesDir)
	} else if source = r.frameSource(); source == nil {
		return fmt.Errorf("%w: no camera snapshot URL or frames directory configured", shared.ErrMissingConfig)
	}

	detector := mood.NewProxyDetector(r.config.Detector.ProxyURL)
	seq := mood.NewSequencer(source, detector, r.api, r.logger)

	r.logger.Info("capturing frame for mood detection")

	if err := seq.StartCapture(ctx); err != nil {
		return fmt.Errorf("capture failed: %w", err)
	}

	if err := seq.Analyze(ctx); err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	queue := seq.Queue()
	songs := make([]models.Song, 0, queue.Len())
	for i := 0; i < queue.Len(); i++ {
		songs = append(songs, queue.Current())
		queue.Skip()
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{
			"mood":  seq.Mood(),
			"genre": seq.Genre(),
			"songs": songs,
		}, true)
	}

	r.writePlainHeader(fmt.Sprintf("Mood: %s → %s", seq.Mood(), seq.Genre()))
	for i, s := range songs {
		r.writePlain("%d. %s - %s\n", i+1, s.Artist, s.Title)
	}
	r.writePlain("\n%d songs queued. Run 'soundhive tui' to play them.\n", len(songs))
	return nil
}
