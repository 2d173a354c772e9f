package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"soundhive/internal/catalog"
	"soundhive/internal/models"
	"soundhive/internal/server"
	"soundhive/internal/session"
	"soundhive/internal/shared"
	tu "soundhive/internal/testing"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			api := catalog.NewClient("http://localhost:9999", logger)
			store := session.NewMemStore()

			runner := NewRunner(RunnerOpts{
				Config:     config,
				API:        api,
				Store:      store,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.api != api {
				t.Error("expected api to be set")
			}
			if runner.store != store {
				t.Error("expected store to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.auth == nil {
				t.Error("expected authenticator to be built")
			}
			if runner.engine == nil {
				t.Error("expected library engine to be built")
			}
		})

		t.Run("with nil options uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to stdout")
			}
			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
			if runner.api == nil {
				t.Error("expected catalog client to be built from config")
			}
			if runner.store == nil {
				t.Error("expected a session store to be set")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writeJSON(map[string]string{"key": "value"}, true)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := runner.writeJSON(make(chan int), false)
			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runner.writePlain("hello %s", "world"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.String() != "hello world" {
			t.Errorf("expected 'hello world', got %q", output.String())
		}
	})

	t.Run("writePlainHeader", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		runner.writePlainHeader("Title")

		result := output.String()
		if !strings.Contains(result, "Title\n") {
			t.Errorf("expected header title, got %q", result)
		}
		if strings.Count(result, "═") == 0 {
			t.Error("expected header rule lines")
		}
	})
}

// testRunner wires a runner against an in-process catalog server.
func testRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	t.Helper()

	db, err := shared.NewDatabase(shared.DatabaseConfig{Path: ":memory:", MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	logger := shared.NewLogger(&bytes.Buffer{})
	app := server.NewApp(shared.ServerConfig{RatePerSecond: 1000, RateBurst: 1000}, db, logger)

	srv := httptest.NewServer(app.Router())
	t.Cleanup(srv.Close)

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		API:    catalog.NewClient(srv.URL, logger),
		Store:  session.NewMemStore(),
		Logger: logger,
		Output: output,
	})
	return runner, output
}

// run executes a CLI invocation against the runner's registered commands.
func run(t *testing.T, r *Runner, args ...string) error {
	t.Helper()
	app := &cli.Command{Name: "soundhive", Commands: r.register()}
	return app.Run(context.Background(), append([]string{"soundhive"}, args...))
}

func TestCommands(t *testing.T) {
	t.Run("songs", func(t *testing.T) {
		runner, output := testRunner(t)

		t.Run("create then list", func(t *testing.T) {
			err := run(t, runner, "songs", "create",
				"--title", "Voltaic", "--artist", "Nerve Circuit", "--genre", "Electronic")
			if err != nil {
				t.Fatalf("create failed: %v", err)
			}
			if !strings.Contains(output.String(), "✓ Song created") {
				t.Errorf("expected creation confirmation, got %q", output.String())
			}

			output.Reset()
			if err := run(t, runner, "songs", "list"); err != nil {
				t.Fatalf("list failed: %v", err)
			}
			if !strings.Contains(output.String(), "Nerve Circuit - Voltaic") {
				t.Errorf("expected created song in listing, got %q", output.String())
			}
		})

		t.Run("list filter narrows client-side", func(t *testing.T) {
			if err := run(t, runner, "songs", "create",
				"--title", "Undertow", "--artist", "Brine", "--genre", "Classical"); err != nil {
				t.Fatalf("create failed: %v", err)
			}

			output.Reset()
			if err := run(t, runner, "songs", "list", "--filter", "nerve"); err != nil {
				t.Fatalf("list failed: %v", err)
			}
			if !strings.Contains(output.String(), "Voltaic") {
				t.Errorf("expected matching song in listing, got %q", output.String())
			}
			if strings.Contains(output.String(), "Undertow") {
				t.Errorf("expected non-matching song excluded, got %q", output.String())
			}
		})

		t.Run("search matches any field", func(t *testing.T) {
			output.Reset()
			if err := run(t, runner, "songs", "search", "volt"); err != nil {
				t.Fatalf("search failed: %v", err)
			}
			if !strings.Contains(output.String(), "Voltaic") {
				t.Errorf("expected search hit, got %q", output.String())
			}
		})

		t.Run("genre is case-insensitive", func(t *testing.T) {
			output.Reset()
			if err := run(t, runner, "songs", "genre", "eLeCtRoNiC"); err != nil {
				t.Fatalf("genre failed: %v", err)
			}
			if !strings.Contains(output.String(), "Voltaic") {
				t.Errorf("expected genre hit, got %q", output.String())
			}
		})

		t.Run("json output is parseable", func(t *testing.T) {
			output.Reset()
			if err := run(t, runner, "songs", "list", "--json"); err != nil {
				t.Fatalf("list failed: %v", err)
			}
			var songs []models.Song
			if err := json.Unmarshal(output.Bytes(), &songs); err != nil {
				t.Fatalf("expected JSON array, got %q", output.String())
			}
			if len(songs) != 2 {
				t.Errorf("expected 2 songs, got %d", len(songs))
			}
		})
	})

	t.Run("auth", func(t *testing.T) {
		runner, output := testRunner(t)

		t.Run("signup signs in", func(t *testing.T) {
			err := run(t, runner, "auth", "signup",
				"--username", "ada", "--email", "ada@example.com", "--password", "hunter2")
			if err != nil {
				t.Fatalf("signup failed: %v", err)
			}

			s, err := runner.store.Current()
			if err != nil || s == nil {
				t.Fatalf("expected persisted session, got %v, %v", s, err)
			}
			if s.Email != "ada@example.com" {
				t.Errorf("expected session email to be set, got %q", s.Email)
			}
		})

		t.Run("whoami greets the user", func(t *testing.T) {
			output.Reset()
			if err := run(t, runner, "auth", "whoami"); err != nil {
				t.Fatalf("whoami failed: %v", err)
			}
			if !strings.Contains(output.String(), "ada") {
				t.Errorf("expected greeting with username, got %q", output.String())
			}
		})

		t.Run("login rejects bad password", func(t *testing.T) {
			err := run(t, runner, "auth", "login",
				"--email", "ada@example.com", "--password", "wrong")
			if err == nil {
				t.Fatal("expected login to fail")
			}
		})

		t.Run("logout clears the session", func(t *testing.T) {
			if err := run(t, runner, "auth", "logout"); err != nil {
				t.Fatalf("logout failed: %v", err)
			}
			s, err := runner.store.Current()
			if err != nil {
				t.Fatalf("store read failed: %v", err)
			}
			if s != nil {
				t.Errorf("expected cleared session, got %+v", s)
			}
		})
	})

	t.Run("liked", func(t *testing.T) {
		runner, output := testRunner(t)

		if err := run(t, runner, "songs", "create", "--title", "Lantern", "--artist", "June Field"); err != nil {
			t.Fatalf("seed song failed: %v", err)
		}
		if err := run(t, runner, "auth", "signup",
			"--username", "kai", "--email", "kai@example.com", "--password", "pw"); err != nil {
			t.Fatalf("signup failed: %v", err)
		}

		songID := firstSongID(t, runner)

		t.Run("add requires sign-in", func(t *testing.T) {
			guest, guestOut := testRunner(t)
			if err := run(t, guest, "songs", "create", "--title", "A", "--artist", "B"); err != nil {
				t.Fatalf("seed song failed: %v", err)
			}
			if err := run(t, guest, "liked", "add", firstSongID(t, guest)); err != nil {
				t.Fatalf("expected prompt instead of error, got %v", err)
			}
			if !strings.Contains(guestOut.String(), "Please sign in") {
				t.Errorf("expected sign-in prompt, got %q", guestOut.String())
			}
		})

		t.Run("add then list", func(t *testing.T) {
			output.Reset()
			if err := run(t, runner, "liked", "add", songID); err != nil {
				t.Fatalf("like failed: %v", err)
			}
			if !strings.Contains(output.String(), "✓ Liked") {
				t.Errorf("expected like confirmation, got %q", output.String())
			}

			output.Reset()
			if err := run(t, runner, "liked", "list"); err != nil {
				t.Fatalf("list failed: %v", err)
			}
			if !strings.Contains(output.String(), "June Field - Lantern") {
				t.Errorf("expected liked song in listing, got %q", output.String())
			}
		})

		t.Run("duplicate like reports already liked", func(t *testing.T) {
			output.Reset()
			if err := run(t, runner, "liked", "add", songID); err != nil {
				t.Fatalf("expected notice instead of error, got %v", err)
			}
			if !strings.Contains(output.String(), "Already liked") {
				t.Errorf("expected duplicate notice, got %q", output.String())
			}
		})
	})

	t.Run("playlists", func(t *testing.T) {
		runner, output := testRunner(t)

		if err := run(t, runner, "songs", "create", "--title", "Drift", "--artist", "Low Tide"); err != nil {
			t.Fatalf("seed song failed: %v", err)
		}
		songID := firstSongID(t, runner)

		t.Run("create add show", func(t *testing.T) {
			output.Reset()
			if err := run(t, runner, "playlists", "create", "Morning Mix"); err != nil {
				t.Fatalf("create failed: %v", err)
			}
			playlistID := extractID(t, output.String())

			if err := run(t, runner, "playlists", "add", "--playlist", playlistID, "--song", songID); err != nil {
				t.Fatalf("add failed: %v", err)
			}

			output.Reset()
			if err := run(t, runner, "playlists", "show", playlistID); err != nil {
				t.Fatalf("show failed: %v", err)
			}
			if !strings.Contains(output.String(), "Low Tide - Drift") {
				t.Errorf("expected song in playlist, got %q", output.String())
			}
		})

		t.Run("export writes a JSON file", func(t *testing.T) {
			output.Reset()
			if err := run(t, runner, "playlists", "create", "Export Me"); err != nil {
				t.Fatalf("create failed: %v", err)
			}
			playlistID := extractID(t, output.String())

			dir := t.TempDir()
			output.Reset()
			if err := run(t, runner, "playlists", "export", "--format", "json", "--output", dir, playlistID); err != nil {
				t.Fatalf("export failed: %v", err)
			}
			tu.AssertFileExists(t, filepath.Join(dir, playlistID+".json"))
		})
	})

	t.Run("library", func(t *testing.T) {
		runner, output := testRunner(t)

		t.Run("seed imports songs from a file", func(t *testing.T) {
			seedFile := filepath.Join(t.TempDir(), "songs.json")
			songs := []models.Song{
				{Title: "One", Artist: "A"},
				{Title: "Two", Artist: "B"},
			}
			data, _ := json.Marshal(songs)
			if err := os.WriteFile(seedFile, data, 0644); err != nil {
				t.Fatalf("failed to write seed file: %v", err)
			}

			if err := run(t, runner, "library", "seed", seedFile); err != nil {
				t.Fatalf("seed failed: %v", err)
			}
			if !strings.Contains(output.String(), "Imported: 2/2") {
				t.Errorf("expected import summary, got %q", output.String())
			}
		})

		t.Run("dump returns the catalog", func(t *testing.T) {
			output.Reset()
			if err := run(t, runner, "library", "dump"); err != nil {
				t.Fatalf("dump failed: %v", err)
			}
			var dump struct {
				Songs []models.Song `json:"songs"`
			}
			if err := json.Unmarshal(output.Bytes(), &dump); err != nil {
				t.Fatalf("expected JSON dump, got %q", output.String())
			}
			if len(dump.Songs) != 2 {
				t.Errorf("expected 2 songs in dump, got %d", len(dump.Songs))
			}
		})
	})
}

func firstSongID(t *testing.T, r *Runner) string {
	t.Helper()
	songs, err := r.api.ListSongs(context.Background())
	if err != nil || len(songs) == 0 {
		t.Fatalf("failed to list songs: %v", err)
	}
	return songs[0].ID
}

// extractID pulls the trailing "(ID: ...)" from creation output.
func extractID(t *testing.T, out string) string {
	t.Helper()
	start := strings.LastIndex(out, "(ID: ")
	end := strings.LastIndex(out, ")")
	if start == -1 || end <= start {
		t.Fatalf("no ID in output %q", out)
	}
	return out[start+len("(ID: ") : end]
}
