package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"soundhive/internal/library"
	"soundhive/internal/models"
	"soundhive/internal/mood"
	"soundhive/internal/session"
	tu "soundhive/internal/testing"
)

// stillCamera hands out a single canned frame.
type stillCamera struct{}

func (stillCamera) Acquire(context.Context) error { return nil }
func (stillCamera) Capture(context.Context) (*mood.Frame, error) {
	return &mood.Frame{Data: []byte{0xff, 0xd8}, Timestamp: time.Now()}, nil
}
func (stillCamera) Release() {}

// cannedDetector scores every frame the same way.
type cannedDetector struct {
	scores mood.Scores
}

func (d cannedDetector) DetectExpressions(context.Context, *mood.Frame) (mood.Scores, error) {
	return d.scores, nil
}

func testModel(t *testing.T, api *tu.MockCatalog, store session.Store, sequencer *mood.Sequencer) *Model {
	t.Helper()
	if store == nil {
		store = session.NewMemStore()
	}
	m := NewModel(
		context.Background(),
		library.NewCatalogView(api),
		library.NewPlaylists(api),
		library.NewLiked(api, store),
		sequencer,
		store,
	)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

// step runs a produced command and feeds its message back into the model.
func step(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command to run")
	}
	m.Update(cmd())
}

func keyPress(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func TestModel(t *testing.T) {
	songs := []models.Song{
		{ID: "s1", Title: "Orbit", Artist: "Nova", Genre: "Rock"},
		{ID: "s2", Title: "Undertow", Artist: "Brine", Genre: "Classical"},
	}

	t.Run("Init fetches the library", func(t *testing.T) {
		api := &tu.MockCatalog{Songs: songs}
		m := testModel(t, api, nil, nil)

		step(t, m, m.Init())

		if got := len(m.songList.Items()); got != 2 {
			t.Fatalf("expected 2 songs in the list, got %d", got)
		}
		if m.songList.Title != "Welcome, Guest" {
			t.Errorf("expected guest greeting title, got %q", m.songList.Title)
		}
	})

	t.Run("greeting uses the signed-in session", func(t *testing.T) {
		store := session.NewMemStore()
		store.Set(session.Session{Username: "ada", Email: "ada@example.com"})

		m := testModel(t, &tu.MockCatalog{Songs: songs}, store, nil)
		step(t, m, m.Init())

		if !strings.Contains(m.songList.Title, "ada") {
			t.Errorf("expected title to greet ada, got %q", m.songList.Title)
		}
	})

	t.Run("tab cycles through the views", func(t *testing.T) {
		api := &tu.MockCatalog{
			Songs:     songs,
			Playlists: []models.Playlist{{ID: "p1", Name: "Mix", Songs: songs}},
		}
		m := testModel(t, api, nil, nil)
		step(t, m, m.Init())

		_, cmd := m.Update(keyPress("tab"))
		step(t, m, cmd)
		if m.view != PlaylistListView {
			t.Fatalf("expected playlist view, got %v", m.view)
		}
		if got := len(m.playlistList.Items()); got != 1 {
			t.Errorf("expected 1 playlist, got %d", got)
		}

		_, cmd = m.Update(keyPress("tab"))
		step(t, m, cmd)
		if m.view != LikedListView {
			t.Fatalf("expected liked view, got %v", m.view)
		}

		if _, cmd = m.Update(keyPress("tab")); cmd != nil {
			t.Error("expected no fetch entering mood view")
		}
		if m.view != MoodView {
			t.Fatalf("expected mood view, got %v", m.view)
		}

		_, cmd = m.Update(keyPress("tab"))
		step(t, m, cmd)
		if m.view != LibraryView {
			t.Fatalf("expected to wrap to library view, got %v", m.view)
		}
	})

	t.Run("guest liked view is empty, not an error", func(t *testing.T) {
		m := testModel(t, &tu.MockCatalog{Songs: songs}, nil, nil)
		step(t, m, m.Init())

		m.Update(keyPress("tab"))
		_, cmd := m.Update(keyPress("tab"))
		step(t, m, cmd)

		if m.err != nil {
			t.Fatalf("expected no error for guest, got %v", m.err)
		}
		if !strings.Contains(m.View(), "Sign in and like songs") {
			t.Errorf("expected empty-state hint, got %q", m.View())
		}
	})

	t.Run("opening a playlist shows its song copies", func(t *testing.T) {
		duplicated := []models.Song{songs[0], songs[0]}
		api := &tu.MockCatalog{
			Playlists: []models.Playlist{{ID: "p1", Name: "Loop", Songs: duplicated}},
		}
		m := testModel(t, api, nil, nil)
		step(t, m, m.fetchPlaylists())
		m.view = PlaylistListView

		_, cmd := m.Update(keyPress("enter"))
		step(t, m, cmd)

		if m.view != PlaylistDetailView {
			t.Fatalf("expected detail view, got %v", m.view)
		}
		if got := len(m.detailList.Items()); got != 2 {
			t.Errorf("expected duplicate entries preserved, got %d items", got)
		}
		if !strings.Contains(m.detailList.Title, "Loop") {
			t.Errorf("expected playlist name in title, got %q", m.detailList.Title)
		}

		m.Update(keyPress("esc"))
		if m.view != PlaylistListView {
			t.Errorf("expected esc to return to playlist list, got %v", m.view)
		}
	})

	t.Run("liking as guest shows a sign-in prompt", func(t *testing.T) {
		m := testModel(t, &tu.MockCatalog{Songs: songs}, nil, nil)
		step(t, m, m.Init())

		_, cmd := m.Update(keyPress("l"))
		step(t, m, cmd)

		if !strings.Contains(m.status, "Please sign in") {
			t.Errorf("expected sign-in prompt, got %q", m.status)
		}
	})

	t.Run("liking signed in confirms and repeats warn", func(t *testing.T) {
		store := session.NewMemStore()
		store.Set(session.Session{Username: "kai", Email: "kai@example.com"})
		m := testModel(t, &tu.MockCatalog{Songs: songs}, store, nil)
		step(t, m, m.Init())

		_, cmd := m.Update(keyPress("l"))
		step(t, m, cmd)

		if !strings.Contains(m.status, "Liked 'Orbit'") {
			t.Errorf("expected like confirmation, got %q", m.status)
		}
	})

	t.Run("enter toggles playback status", func(t *testing.T) {
		m := testModel(t, &tu.MockCatalog{Songs: songs}, nil, nil)
		step(t, m, m.Init())

		m.Update(keyPress("enter"))
		if !strings.Contains(m.status, "Playing 'Orbit'") {
			t.Errorf("expected playing status, got %q", m.status)
		}
		if !m.player.IsPlaying("s1") {
			t.Error("expected coordinator to mark s1 playing")
		}

		m.Update(keyPress("enter"))
		if m.player.IsPlaying("s1") {
			t.Error("expected second enter to pause s1")
		}
	})
}

func TestMoodView(t *testing.T) {
	songs := []models.Song{
		{ID: "r1", Title: "Ballad", Artist: "Ember", Genre: "Romantic"},
		{ID: "r2", Title: "Waltz", Artist: "Ember", Genre: "Romantic"},
	}

	newSequencer := func(api *tu.MockCatalog) *mood.Sequencer {
		detector := cannedDetector{scores: mood.Scores{"happy": 0.9, "sad": 0.1}}
		return mood.NewSequencer(stillCamera{}, detector, api, nil)
	}

	t.Run("without a sequencer reports unavailable", func(t *testing.T) {
		m := testModel(t, &tu.MockCatalog{}, nil, nil)
		m.view = MoodView

		if !strings.Contains(m.View(), "not configured") {
			t.Errorf("expected unavailable notice, got %q", m.View())
		}
		if _, cmd := m.Update(keyPress("enter")); cmd != nil {
			t.Error("expected enter to be ignored without a sequencer")
		}
	})

	t.Run("capture flows to playing", func(t *testing.T) {
		api := &tu.MockCatalog{Songs: songs}
		seq := newSequencer(api)
		m := testModel(t, api, nil, seq)
		m.view = MoodView

		_, cmd := m.Update(keyPress("enter"))
		if !m.moodBusy {
			t.Fatal("expected model to be busy during capture")
		}
		step(t, m, cmd)

		if m.moodBusy {
			t.Error("expected busy flag cleared after completion")
		}
		if seq.State() != mood.StatePlaying {
			t.Fatalf("expected playing state, got %v", seq.State())
		}

		view := m.View()
		if !strings.Contains(view, "happy") || !strings.Contains(view, "Romantic") {
			t.Errorf("expected mood and genre in view, got %q", view)
		}
		if !strings.Contains(view, "Ember - Ballad") {
			t.Errorf("expected current track in view, got %q", view)
		}
	})

	t.Run("view and keys leave the sequencer alone while capturing", func(t *testing.T) {
		api := &tu.MockCatalog{Songs: songs}
		seq := newSequencer(api)
		m := testModel(t, api, nil, seq)
		m.view = MoodView

		_, cmd := m.Update(keyPress("enter"))
		if !m.moodBusy {
			t.Fatal("expected model to be busy during capture")
		}

		// The capture command has not reported back yet, so the view
		// must not read sequencer state and keys must not mutate it.
		if !strings.Contains(m.View(), "Reading your expression") {
			t.Errorf("expected static progress view, got %q", m.View())
		}
		m.Update(keyPress(" "))
		m.Update(keyPress("n"))
		m.Update(keyPress("esc"))
		if seq.State() != mood.StateIdle {
			t.Fatalf("expected sequencer untouched while busy, got %v", seq.State())
		}

		step(t, m, cmd)
		if !strings.Contains(m.View(), "Romantic") {
			t.Errorf("expected result view after completion, got %q", m.View())
		}
	})

	t.Run("queue controls before playing warn in the status line", func(t *testing.T) {
		api := &tu.MockCatalog{Songs: songs}
		m := testModel(t, api, nil, newSequencer(api))
		m.view = MoodView

		m.Update(keyPress(" "))
		if !strings.Contains(m.status, "nothing is playing") {
			t.Errorf("expected toggle warning in status, got %q", m.status)
		}

		m.status = ""
		m.Update(keyPress("n"))
		if !strings.Contains(m.status, "nothing is playing") {
			t.Errorf("expected skip warning in status, got %q", m.status)
		}
	})

	t.Run("space and n control the queue", func(t *testing.T) {
		api := &tu.MockCatalog{Songs: songs}
		seq := newSequencer(api)
		m := testModel(t, api, nil, seq)
		m.view = MoodView

		_, cmd := m.Update(keyPress("enter"))
		step(t, m, cmd)

		m.Update(keyPress(" "))
		if seq.Queue().Playing() {
			t.Error("expected space to pause")
		}

		m.Update(keyPress("n"))
		if seq.Queue().Index() != 1 {
			t.Errorf("expected skip to advance the cursor, got index %d", seq.Queue().Index())
		}

		m.Update(keyPress("esc"))
		if seq.State() != mood.StateIdle {
			t.Errorf("expected esc to reset the sequencer, got %v", seq.State())
		}
	})
}
