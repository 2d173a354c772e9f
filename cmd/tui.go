package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"soundhive/internal/library"
	"soundhive/internal/mood"
	"soundhive/internal/shared"
	"soundhive/internal/ui"
)

// TUI launches the interactive terminal UI for library browsing and mood playback.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.api == nil {
		return fmt.Errorf("%w: catalog client not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/soundhive-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	catalogView := library.NewCatalogView(r.api)
	playlists := library.NewPlaylists(r.api)
	liked := library.NewLiked(r.api, r.store)

	var sequencer *mood.Sequencer
	if source := r.frameSource(); source != nil {
		detector := mood.NewProxyDetector(r.config.Detector.ProxyURL)
		sequencer = mood.NewSequencer(source, detector, r.api, r.logger)
	} else {
		r.logger.Warn("no camera or frames directory configured, mood view disabled")
	}

	model := ui.NewModel(ctx, catalogView, playlists, liked, sequencer, r.store)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// frameSource picks the configured frame source, preferring a live camera.
func (r *Runner) frameSource() mood.FrameSource {
	if r.config.Detector.SnapshotURL != "" {
		return mood.NewSnapshotCamera(r.config.Detector.SnapshotURL)
	}
	if r.config.Detector.FramesPath != "" {
		return mood.NewFileSource(r.config.Detector.FramesPath)
	}
	return nil
}
