package mood

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"soundhive/internal/shared"
)

// Frame is a single captured still, typically JPEG or PNG encoded.
type Frame struct {
	Data      []byte
	Width     int
	Height    int
	Timestamp time.Time
}

// FrameSource acquires a camera-like device and takes single stills from it.
//
// Release must be safe to call on every exit path, including after a failed
// Acquire, so callers can defer it unconditionally.
type FrameSource interface {
	// Acquire opens the device. Permission or device failures surface as
	// [shared.ErrCameraDenied].
	Acquire(ctx context.Context) error

	// Capture takes one still frame from the acquired device.
	Capture(ctx context.Context) (*Frame, error)

	// Release stops the device. Idempotent.
	Release()
}

// SnapshotCamera captures stills from an HTTP snapshot endpoint, the kind
// exposed by IP webcams and phone camera apps.
type SnapshotCamera struct {
	url        string
	httpClient *http.Client
	acquired   bool
}

// NewSnapshotCamera creates a camera for the given snapshot URL.
func NewSnapshotCamera(url string) *SnapshotCamera {
	return &SnapshotCamera{url: url, httpClient: http.DefaultClient}
}

// Acquire probes the endpoint once so a missing camera fails fast.
func (c *SnapshotCamera) Acquire(ctx context.Context) error {
	if c.url == "" {
		return fmt.Errorf("%w: no snapshot URL configured", shared.ErrCameraDenied)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrCameraDenied, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrCameraDenied, err)
	}
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: snapshot endpoint returned status %d", shared.ErrCameraDenied, resp.StatusCode)
	}

	c.acquired = true
	return nil
}

// Capture fetches one still from the snapshot endpoint.
func (c *SnapshotCamera) Capture(ctx context.Context) (*Frame, error) {
	if !c.acquired {
		return nil, fmt.Errorf("%w: camera not acquired", shared.ErrCameraDenied)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshot request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("snapshot request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("snapshot endpoint returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	return &Frame{Data: data, Timestamp: time.Now()}, nil
}

// Release marks the camera as closed.
func (c *SnapshotCamera) Release() { c.acquired = false }

// FileSource replays image files from a directory in name order, standing
// in for a camera during development and tests.
type FileSource struct {
	dir      string
	frames   []string
	next     int
	acquired bool
}

// NewFileSource creates a source over the image files in dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// Acquire scans the directory for image files.
func (f *FileSource) Acquire(_ context.Context) error {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrCameraDenied, err)
	}

	f.frames = f.frames[:0]
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".jpg", ".jpeg", ".png":
			f.frames = append(f.frames, filepath.Join(f.dir, entry.Name()))
		}
	}
	sort.Strings(f.frames)

	if len(f.frames) == 0 {
		return fmt.Errorf("%w: no image files in %s", shared.ErrCameraDenied, f.dir)
	}

	f.next = 0
	f.acquired = true
	return nil
}

// Capture reads the next file, cycling back to the first at the end.
func (f *FileSource) Capture(_ context.Context) (*Frame, error) {
	if !f.acquired {
		return nil, fmt.Errorf("%w: source not acquired", shared.ErrCameraDenied)
	}

	path := f.frames[f.next]
	f.next = (f.next + 1) % len(f.frames)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read frame file: %w", err)
	}

	return &Frame{Data: data, Timestamp: time.Now()}, nil
}

// Release marks the source as closed.
func (f *FileSource) Release() { f.acquired = false }
