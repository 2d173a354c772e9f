// package mood sequences camera capture, expression detection, and the
// genre playlist that plays back the detected mood
package mood

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"soundhive/internal/catalog"
	"soundhive/internal/models"
	"soundhive/internal/player"
	"soundhive/internal/shared"
)

// State is the sequencer's position in the capture flow.
type State int

const (
	StateIdle State = iota
	StateCapturing
	StateAnalyzing
	StatePlaying
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCapturing:
		return "capturing"
	case StateAnalyzing:
		return "analyzing"
	case StatePlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// GenreSongs is the slice of the catalog API mood mode needs.
type GenreSongs interface {
	SongsByGenre(ctx context.Context, genre string) ([]models.Song, error)
}

// Sequencer drives the mood flow: camera on, single still, expression
// detection, genre lookup, playlist playback.
//
// Only one sequence may be in flight. Starting capture while a capture or
// analysis is in progress is rejected with [shared.ErrCaptureBusy]; UIs
// should additionally disable the affordance while busy. The camera is
// released on every exit path.
type Sequencer struct {
	camera   FrameSource
	detector Detector
	api      GenreSongs
	logger   *log.Logger

	state State
	mood  string
	genre string
	queue *player.Queue
}

// NewSequencer wires a sequencer to its camera, detector, and catalog API.
func NewSequencer(camera FrameSource, detector Detector, api GenreSongs, logger *log.Logger) *Sequencer {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Sequencer{camera: camera, detector: detector, api: api, logger: logger}
}

// State returns the sequencer's current state.
func (s *Sequencer) State() State { return s.state }

// Mood returns the detected expression category, empty before analysis.
func (s *Sequencer) Mood() string { return s.mood }

// Genre returns the genre resolved from the detected mood.
func (s *Sequencer) Genre() string { return s.genre }

// Queue returns the mood playlist, nil outside the Playing state.
func (s *Sequencer) Queue() *player.Queue { return s.queue }

// StartCapture acquires the camera and enters Capturing, discarding any
// previous mood playlist.
//
// Valid from Idle and from Playing (the "try again" path). While a capture
// or analysis is in flight it fails with [shared.ErrCaptureBusy]; a camera
// failure reports [shared.ErrCameraDenied] and the sequencer stays Idle.
func (s *Sequencer) StartCapture(ctx context.Context) error {
	switch s.state {
	case StateCapturing, StateAnalyzing:
		return shared.ErrCaptureBusy
	}

	s.mood = ""
	s.genre = ""
	s.queue = nil
	s.state = StateIdle

	if err := s.camera.Acquire(ctx); err != nil {
		s.camera.Release()
		if errors.Is(err, shared.ErrCameraDenied) {
			return err
		}
		return fmt.Errorf("%w: %v", shared.ErrCameraDenied, err)
	}

	s.state = StateCapturing
	return nil
}

// Analyze takes a single still, runs expression detection once, and on
// success loads the genre playlist and starts playing its first song.
//
// The camera is released before this method returns no matter the outcome.
// No face or a detection failure returns the sequencer to Idle with the
// error for the caller to surface.
func (s *Sequencer) Analyze(ctx context.Context) error {
	if s.state != StateCapturing {
		return fmt.Errorf("%w: analyze requires an active capture", shared.ErrInvalidInput)
	}

	s.state = StateAnalyzing
	defer s.camera.Release()

	frame, err := s.camera.Capture(ctx)
	if err != nil {
		s.state = StateIdle
		return fmt.Errorf("%w: %v", shared.ErrDetectionFailed, err)
	}

	scores, err := s.detector.DetectExpressions(ctx, frame)
	if err != nil {
		s.state = StateIdle
		return err
	}

	s.mood = Dominant(scores)
	s.genre = GenreFor(s.mood)
	s.logger.Info("mood detected", "mood", s.mood, "genre", s.genre)

	songs, err := s.api.SongsByGenre(ctx, s.genre)
	if err != nil {
		s.state = StateIdle
		return err
	}

	for i := range songs {
		songs[i].AudioURL = catalog.RawContentURL(songs[i].AudioURL)
		songs[i].Image = catalog.RawContentURL(songs[i].Image)
	}

	queue, err := player.NewQueue(songs)
	if err != nil {
		s.state = StateIdle
		return fmt.Errorf("no songs found for genre %s: %w", s.genre, err)
	}

	queue.Play()
	s.queue = queue
	s.state = StatePlaying
	return nil
}

// TogglePlay flips play/pause on the current mood track.
func (s *Sequencer) TogglePlay() error {
	if s.state != StatePlaying {
		return fmt.Errorf("%w: nothing is playing", shared.ErrInvalidInput)
	}
	s.queue.TogglePlay()
	return nil
}

// Skip advances to the next track, wrapping at the end of the playlist.
func (s *Sequencer) Skip() (models.Song, error) {
	if s.state != StatePlaying {
		return models.Song{}, fmt.Errorf("%w: nothing is playing", shared.ErrInvalidInput)
	}
	return s.queue.Skip(), nil
}

// TrackEnded advances to the next track when the current one finishes.
func (s *Sequencer) TrackEnded() (models.Song, error) {
	if s.state != StatePlaying {
		return models.Song{}, fmt.Errorf("%w: nothing is playing", shared.ErrInvalidInput)
	}
	return s.queue.TrackEnded(), nil
}

// Reset abandons the sequence, releasing the camera and returning to Idle.
// Safe to call from any state, including teardown.
func (s *Sequencer) Reset() {
	s.camera.Release()
	s.mood = ""
	s.genre = ""
	s.queue = nil
	s.state = StateIdle
}
