package mood

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"soundhive/internal/shared"
)

func TestProxyDetector(t *testing.T) {
	frame := &Frame{Data: []byte("still")}

	t.Run("returns expression scores", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/detect" || r.Method != http.MethodPost {
				t.Errorf("expected POST /api/detect, got %s %s", r.Method, r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"expressions": map[string]float64{"happy": 0.8, "sad": 0.2},
			})
		}))
		defer server.Close()

		d := NewProxyDetector(server.URL)
		scores, err := d.DetectExpressions(context.Background(), frame)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if scores["happy"] != 0.8 {
			t.Errorf("expected happy score 0.8, got %v", scores["happy"])
		}
	})

	t.Run("empty expressions mean no face", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{"expressions": map[string]float64{}})
		}))
		defer server.Close()

		d := NewProxyDetector(server.URL)
		if _, err := d.DetectExpressions(context.Background(), frame); !errors.Is(err, shared.ErrNoFace) {
			t.Errorf("expected ErrNoFace, got %v", err)
		}
	})

	t.Run("server error maps to detection failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		d := NewProxyDetector(server.URL)
		if _, err := d.DetectExpressions(context.Background(), frame); !errors.Is(err, shared.ErrDetectionFailed) {
			t.Errorf("expected ErrDetectionFailed, got %v", err)
		}
	})
}

func TestFileSource(t *testing.T) {
	t.Run("cycles through image files", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"b.jpg", "a.png"} {
			if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0644); err != nil {
				t.Fatalf("failed to write frame file: %v", err)
			}
		}

		src := NewFileSource(dir)
		if err := src.Acquire(context.Background()); err != nil {
			t.Fatalf("failed to acquire: %v", err)
		}
		defer src.Release()

		first, err := src.Capture(context.Background())
		if err != nil {
			t.Fatalf("failed to capture: %v", err)
		}
		if string(first.Data) != "a.png" {
			t.Errorf("expected files in name order, got %s", first.Data)
		}

		src.Capture(context.Background())
		third, _ := src.Capture(context.Background())
		if string(third.Data) != "a.png" {
			t.Errorf("expected wrap to first file, got %s", third.Data)
		}
	})

	t.Run("empty directory is camera denied", func(t *testing.T) {
		src := NewFileSource(t.TempDir())
		if err := src.Acquire(context.Background()); !errors.Is(err, shared.ErrCameraDenied) {
			t.Errorf("expected ErrCameraDenied, got %v", err)
		}
	})

	t.Run("capture before acquire fails", func(t *testing.T) {
		src := NewFileSource(t.TempDir())
		if _, err := src.Capture(context.Background()); !errors.Is(err, shared.ErrCameraDenied) {
			t.Errorf("expected ErrCameraDenied, got %v", err)
		}
	})
}
