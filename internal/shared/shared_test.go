package shared

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNormalizeSongKey(t *testing.T) {
	tc := []struct {
		name   string
		title  string
		artist string
		want   string
	}{
		{
			name:   "basic normalization",
			title:  "Song Title",
			artist: "Artist Name",
			want:   "song title|artist name",
		},
		{
			name:   "extra whitespace",
			title:  "  Song   Title  ",
			artist: "  Artist   Name  ",
			want:   "song title|artist name",
		},
		{
			name:   "mixed case",
			title:  "SoNg TiTlE",
			artist: "ArTiSt NaMe",
			want:   "song title|artist name",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeSongKey(tt.title, tt.artist)
			if got != tt.want {
				t.Errorf("NormalizeSongKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == "" || b == "" {
		t.Fatal("generated IDs should not be empty")
	}
	if a == b {
		t.Errorf("generated IDs should be unique, got %s twice", a)
	}
}

func TestMarshalJSON(t *testing.T) {
	data := map[string]string{"key": "value"}

	compact, err := MarshalJSON(data, false)
	if err != nil {
		t.Fatalf("compact marshal failed: %v", err)
	}
	if string(compact) != `{"key":"value"}` {
		t.Errorf("unexpected compact output: %s", compact)
	}

	indented, err := MarshalJSON(data, true)
	if err != nil {
		t.Fatalf("indented marshal failed: %v", err)
	}
	if !strings.Contains(string(indented), "\n") {
		t.Errorf("expected indented output, got %s", indented)
	}
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create file logger: %v", err)
	}
	logger.Info("hello")

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected log file to exist: %v", err)
	}
}

func TestOpenBrowser(t *testing.T) {
	orig := goos
	defer func() { goos = orig }()

	goos = func() string { return "plan9" }
	if err := OpenBrowser("https://example.com/track.mp3"); err == nil {
		t.Fatal("expected error for unsupported platform")
	} else if !strings.Contains(err.Error(), "plan9") {
		t.Errorf("expected platform in error, got %v", err)
	}
}
