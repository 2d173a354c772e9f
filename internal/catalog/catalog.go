// package catalog implements the HTTP client for the SoundHive catalog API
//
// Songs, playlists, liked songs, users, and auth, all under /api on the
// configured base URL.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"

	"soundhive/internal/models"
	"soundhive/internal/shared"
)

const defaultBaseURL string = "http://localhost:1337"

// StatusError reports a non-success response from the catalog API.
//
// The server was reachable and rejected the request; transport failures
// are wrapped with [shared.ErrAPIRequest] instead.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("catalog API error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("catalog API error: status %d", e.Status)
}

// NotFound reports whether the error is a 404 response.
func (e *StatusError) NotFound() bool { return e.Status == http.StatusNotFound }

// Conflict reports whether the error is a 409 response, used by the
// likedSongs route to signal an already-liked song.
func (e *StatusError) Conflict() bool { return e.Status == http.StatusConflict }

// Client issues requests against the catalog API.
//
// Each operation is attempted exactly once: no retries, no backoff. Callers
// own any try-again affordance by re-invoking the same operation.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// NewClient creates a catalog client for the given base URL.
//
// An empty baseURL falls back to the local stub server's default address.
func NewClient(baseURL string, logger *log.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		logger:     logger,
	}
}

// SetHTTPClient replaces the underlying [http.Client], mainly for tests.
func (c *Client) SetHTTPClient(hc *http.Client) {
	if hc != nil {
		c.httpClient = hc
	}
}

func (c *Client) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	apiURL := c.baseURL + endpoint

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", shared.ErrAPIRequest, method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{Status: resp.StatusCode}
		var errResp struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			if errResp.Error != "" {
				statusErr.Message = errResp.Error
			} else {
				statusErr.Message = errResp.Message
			}
		}
		c.logger.Debug("catalog request rejected", "method", method, "endpoint", endpoint, "status", resp.StatusCode)
		return statusErr
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// ListSongs retrieves the full song catalog.
//
// Calls GET /api/songs.
func (c *Client) ListSongs(ctx context.Context) ([]models.Song, error) {
	var songs []models.Song
	if err := c.doRequest(ctx, http.MethodGet, "/api/songs", nil, &songs); err != nil {
		return nil, err
	}
	return songs, nil
}

// GetSong retrieves a single song by ID.
//
// Calls GET /api/songs/{id}.
func (c *Client) GetSong(ctx context.Context, id string) (*models.Song, error) {
	var song models.Song
	endpoint := fmt.Sprintf("/api/songs/%s", url.PathEscape(id))
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &song); err != nil {
		return nil, err
	}
	return &song, nil
}

// CreateSong adds a song to the catalog.
//
// Calls POST /api/songs.
func (c *Client) CreateSong(ctx context.Context, song models.Song) error {
	return c.doRequest(ctx, http.MethodPost, "/api/songs", song, nil)
}

// UpdateSong replaces a song's fields.
//
// Calls PUT /api/songs/{id}.
func (c *Client) UpdateSong(ctx context.Context, song models.Song) error {
	endpoint := fmt.Sprintf("/api/songs/%s", url.PathEscape(song.ID))
	return c.doRequest(ctx, http.MethodPut, endpoint, song, nil)
}

// DeleteSong removes a song from the catalog.
//
// Calls DELETE /api/songs/{id}.
func (c *Client) DeleteSong(ctx context.Context, id string) error {
	endpoint := fmt.Sprintf("/api/songs/%s", url.PathEscape(id))
	return c.doRequest(ctx, http.MethodDelete, endpoint, nil, nil)
}

// SongsByGenre retrieves songs whose genre matches the given name
// case-insensitively.
//
// Calls GET /api/songs/genre/{genre}. Used by mood mode to build the
// suggestion playlist.
func (c *Client) SongsByGenre(ctx context.Context, genre string) ([]models.Song, error) {
	var songs []models.Song
	endpoint := fmt.Sprintf("/api/songs/genre/%s", url.PathEscape(genre))
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &songs); err != nil {
		return nil, err
	}
	return songs, nil
}

// Search runs a server-side song search.
//
// Calls GET /api/search?q={query}. An empty query returns an empty list.
func (c *Client) Search(ctx context.Context, query string) ([]models.Song, error) {
	var songs []models.Song
	endpoint := fmt.Sprintf("/api/search?q=%s", url.QueryEscape(query))
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &songs); err != nil {
		return nil, err
	}
	return songs, nil
}

// ListPlaylists retrieves all playlists.
//
// Calls GET /api/playlists.
func (c *Client) ListPlaylists(ctx context.Context) ([]models.Playlist, error) {
	var playlists []models.Playlist
	if err := c.doRequest(ctx, http.MethodGet, "/api/playlists", nil, &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

// GetPlaylist retrieves a playlist with its embedded songs.
//
// Calls GET /api/playlists/{id}.
func (c *Client) GetPlaylist(ctx context.Context, id string) (*models.Playlist, error) {
	var playlist models.Playlist
	endpoint := fmt.Sprintf("/api/playlists/%s", url.PathEscape(id))
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// CreatePlaylist persists a new playlist and returns the server's copy.
//
// Calls POST /api/playlists.
func (c *Client) CreatePlaylist(ctx context.Context, playlist models.Playlist) (*models.Playlist, error) {
	var created models.Playlist
	if err := c.doRequest(ctx, http.MethodPost, "/api/playlists", playlist, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdatePlaylist replaces a playlist wholesale, song list included, and
// returns the server's authoritative copy.
//
// Calls PUT /api/playlists/{id}.
func (c *Client) UpdatePlaylist(ctx context.Context, playlist models.Playlist) (*models.Playlist, error) {
	var updated models.Playlist
	endpoint := fmt.Sprintf("/api/playlists/%s", url.PathEscape(playlist.ID))
	if err := c.doRequest(ctx, http.MethodPut, endpoint, playlist, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeletePlaylist removes a playlist.
//
// Calls DELETE /api/playlists/{id}.
func (c *Client) DeletePlaylist(ctx context.Context, id string) error {
	endpoint := fmt.Sprintf("/api/playlists/%s", url.PathEscape(id))
	return c.doRequest(ctx, http.MethodDelete, endpoint, nil, nil)
}

// AddSongToPlaylist appends a copy of the song to the playlist server-side.
//
// Calls POST /api/playlists/{playlistID}/songs/{songID}. The server copies
// the song's current field values into the playlist; repeated calls append
// duplicate entries.
func (c *Client) AddSongToPlaylist(ctx context.Context, playlistID, songID string) error {
	endpoint := fmt.Sprintf("/api/playlists/%s/songs/%s", url.PathEscape(playlistID), url.PathEscape(songID))
	return c.doRequest(ctx, http.MethodPost, endpoint, nil, nil)
}

// RemoveSongFromPlaylist removes all copies of the song from the playlist.
//
// Calls DELETE /api/playlists/{playlistID}/songs/{songID}.
func (c *Client) RemoveSongFromPlaylist(ctx context.Context, playlistID, songID string) error {
	endpoint := fmt.Sprintf("/api/playlists/%s/songs/%s", url.PathEscape(playlistID), url.PathEscape(songID))
	return c.doRequest(ctx, http.MethodDelete, endpoint, nil, nil)
}

// LikedSongs retrieves the liked entries for the given user key (email).
//
// Calls GET /api/likedSongs/{userID}.
func (c *Client) LikedSongs(ctx context.Context, userID string) ([]models.LikedSong, error) {
	var liked []models.LikedSong
	endpoint := fmt.Sprintf("/api/likedSongs/%s", url.PathEscape(userID))
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &liked); err != nil {
		return nil, err
	}
	return liked, nil
}

// LikeSong records a liked entry for its owning user.
//
// Calls POST /api/likedSongs. A song already liked by the same user yields
// a 409 [StatusError].
func (c *Client) LikeSong(ctx context.Context, liked models.LikedSong) (*models.LikedSong, error) {
	var created models.LikedSong
	if err := c.doRequest(ctx, http.MethodPost, "/api/likedSongs", liked, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UnlikeSong removes a liked entry by its ID.
//
// Calls DELETE /api/likedSongs/{id}.
func (c *Client) UnlikeSong(ctx context.Context, id string) error {
	endpoint := fmt.Sprintf("/api/likedSongs/%s", url.PathEscape(id))
	return c.doRequest(ctx, http.MethodDelete, endpoint, nil, nil)
}

// ListUsers retrieves all registered users.
//
// Calls GET /api/users.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.doRequest(ctx, http.MethodGet, "/api/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser retrieves a user by ID.
//
// Calls GET /api/users/{id}.
func (c *Client) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	endpoint := fmt.Sprintf("/api/users/%s", url.PathEscape(id))
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser registers a new account.
//
// Calls POST /api/users.
func (c *Client) CreateUser(ctx context.Context, user models.User) error {
	return c.doRequest(ctx, http.MethodPost, "/api/users", user, nil)
}

// Login authenticates with email and password.
//
// Calls POST /api/auth/login. A 401 [StatusError] means the credentials
// were rejected.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	var user models.User
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", creds, &user); err != nil {
		return nil, err
	}
	user.Password = ""
	return &user, nil
}
