package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"soundhive/internal/models"
	"soundhive/internal/shared"
	tu "soundhive/internal/testing"
)

func TestClient(t *testing.T) {
	t.Run("NewClient", func(t *testing.T) {
		t.Run("creates client with default URL", func(t *testing.T) {
			if c := NewClient("", nil); c == nil {
				t.Fatal("expected client to be created")
			} else if c.baseURL != defaultBaseURL {
				t.Errorf("expected baseURL to be %s, got %s", defaultBaseURL, c.baseURL)
			}
		})

		t.Run("creates client with custom URL", func(t *testing.T) {
			customURL := "http://localhost:9000"
			if c := NewClient(customURL, nil); c.baseURL != customURL {
				t.Errorf("expected baseURL to be %s, got %s", customURL, c.baseURL)
			}
		})
	})

	t.Run("ListSongs", func(t *testing.T) {
		mockSongs := []models.Song{
			{ID: "1", Title: "First Light", Artist: "Halcyon", Genre: "Rock"},
			{ID: "2", Title: "Undertow", Artist: "Brine", Genre: "Classical"},
		}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/songs" {
				t.Errorf("expected path /api/songs, got %s", r.URL.Path)
			}
			if r.Method != http.MethodGet {
				t.Errorf("expected GET method, got %s", r.Method)
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(mockSongs)
		}))
		defer server.Close()

		c := NewClient(server.URL, nil)

		songs, err := c.ListSongs(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(songs) != 2 {
			t.Fatalf("expected 2 songs, got %d", len(songs))
		}
		if songs[0].Title != "First Light" {
			t.Errorf("expected first song title 'First Light', got %s", songs[0].Title)
		}
	})

	t.Run("GetSong returns StatusError on 404", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "Song not found"})
		}))
		defer server.Close()

		c := NewClient(server.URL, nil)

		_, err := c.GetSong(context.Background(), "missing")
		if err == nil {
			t.Fatal("expected error for missing song")
		}

		var statusErr *StatusError
		if !errors.As(err, &statusErr) {
			t.Fatalf("expected StatusError, got %T", err)
		}
		if !statusErr.NotFound() {
			t.Errorf("expected NotFound(), got status %d", statusErr.Status)
		}
		if statusErr.Message != "Song not found" {
			t.Errorf("expected server message to be carried, got %q", statusErr.Message)
		}
	})

	t.Run("transport failure wraps ErrAPIRequest", func(t *testing.T) {
		c := NewClient("http://localhost:9000", nil)
		c.SetHTTPClient(&http.Client{
			Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused")),
		})

		_, err := c.ListSongs(context.Background())
		if err == nil {
			t.Fatal("expected error for unreachable server")
		}
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("UpdatePlaylist returns server copy", func(t *testing.T) {
		serverCopy := models.Playlist{
			ID:   "p1",
			Name: "Roadtrip",
			Songs: []models.Song{
				{ID: "1", Title: "First Light", Artist: "Halcyon"},
				{ID: "1", Title: "First Light", Artist: "Halcyon"},
			},
		}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/playlists/p1" {
				t.Errorf("expected path /api/playlists/p1, got %s", r.URL.Path)
			}
			if r.Method != http.MethodPut {
				t.Errorf("expected PUT method, got %s", r.Method)
			}

			var sent models.Playlist
			if err := json.NewDecoder(r.Body).Decode(&sent); err != nil {
				t.Errorf("failed to decode request body: %v", err)
			}
			if sent.Name != "Roadtrip" {
				t.Errorf("expected playlistName Roadtrip in request, got %s", sent.Name)
			}

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(serverCopy)
		}))
		defer server.Close()

		c := NewClient(server.URL, nil)

		updated, err := c.UpdatePlaylist(context.Background(), models.Playlist{ID: "p1", Name: "Roadtrip"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(updated.Songs) != 2 {
			t.Errorf("expected duplicated entries preserved from server copy, got %d songs", len(updated.Songs))
		}
	})

	t.Run("LikeSong surfaces 409 as Conflict", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/likedSongs" || r.Method != http.MethodPost {
				t.Errorf("expected POST /api/likedSongs, got %s %s", r.Method, r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"message": "Song already liked"})
		}))
		defer server.Close()

		c := NewClient(server.URL, nil)

		_, err := c.LikeSong(context.Background(), models.LikedSong{SongID: "1", Title: "First Light", Artist: "Halcyon", UserID: "fan@example.com"})
		if err == nil {
			t.Fatal("expected error for duplicate like")
		}

		var statusErr *StatusError
		if !errors.As(err, &statusErr) || !statusErr.Conflict() {
			t.Errorf("expected 409 StatusError, got %v", err)
		}
	})

	t.Run("Login", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/auth/login" || r.Method != http.MethodPost {
				t.Errorf("expected POST /api/auth/login, got %s %s", r.Method, r.URL.Path)
			}

			var creds models.Credentials
			if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
				t.Errorf("failed to decode credentials: %v", err)
			}

			w.Header().Set("Content-Type", "application/json")
			if creds.Email == "fan@example.com" && creds.Password == "hunter2" {
				json.NewEncoder(w).Encode(models.User{ID: "u1", Username: "fan", Email: creds.Email, Password: creds.Password})
				return
			}
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
		}))
		defer server.Close()

		c := NewClient(server.URL, nil)

		t.Run("valid credentials", func(t *testing.T) {
			user, err := c.Login(context.Background(), models.Credentials{Email: "fan@example.com", Password: "hunter2"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if user.Username != "fan" {
				t.Errorf("expected username fan, got %s", user.Username)
			}
			if user.Password != "" {
				t.Error("expected password to be stripped from the returned user")
			}
		})

		t.Run("rejected credentials", func(t *testing.T) {
			_, err := c.Login(context.Background(), models.Credentials{Email: "fan@example.com", Password: "wrong"})
			var statusErr *StatusError
			if !errors.As(err, &statusErr) || statusErr.Status != http.StatusUnauthorized {
				t.Errorf("expected 401 StatusError, got %v", err)
			}
		})
	})
}

func TestRawContentURL(t *testing.T) {
	tc := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "github blob URL",
			in:   "https://github.com/owner/repo/blob/main/audio/song.mp3",
			want: "https://raw.githubusercontent.com/owner/repo/main/audio/song.mp3",
		},
		{
			name: "non-github URL unchanged",
			in:   "https://cdn.example.com/audio/song.mp3",
			want: "https://cdn.example.com/audio/song.mp3",
		},
		{
			name: "already raw URL unchanged",
			in:   "https://raw.githubusercontent.com/owner/repo/main/audio/song.mp3",
			want: "https://raw.githubusercontent.com/owner/repo/main/audio/song.mp3",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := RawContentURL(tt.in); got != tt.want {
				t.Errorf("RawContentURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
