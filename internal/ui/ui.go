package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"soundhive/internal/library"
	"soundhive/internal/models"
	"soundhive/internal/mood"
	"soundhive/internal/player"
	"soundhive/internal/session"
	"soundhive/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LibraryView ViewState = iota
	PlaylistListView
	PlaylistDetailView
	LikedListView
	MoodView
)

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	catalog   *library.CatalogView
	playlists *library.Playlists
	liked     *library.Liked
	player    *player.Coordinator
	sequencer *mood.Sequencer
	store     session.Store

	width  int
	height int

	songList     list.Model
	playlistList list.Model
	detailList   list.Model
	likedList    list.Model

	moodBusy bool
	status   string
	err      error

	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
// The sequencer is optional; without it the mood view reports that
// mood playback is unavailable.
func NewModel(ctx context.Context, catalog *library.CatalogView, playlists *library.Playlists, liked *library.Liked, sequencer *mood.Sequencer, store session.Store) *Model {
	m := &Model{
		ctx:       ctx,
		view:      LibraryView,
		catalog:   catalog,
		playlists: playlists,
		liked:     liked,
		player:    player.NewCoordinator(),
		sequencer: sequencer,
		store:     store,
		help:      help.New(),
		keys:      newKeyMap(),
	}
	for _, l := range []*list.Model{&m.songList, &m.playlistList, &m.detailList, &m.likedList} {
		*l = list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	}
	return m
}

// Init initializes the TUI by fetching the song library.
func (m *Model) Init() tea.Cmd {
	return m.fetchSongs()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, l := range []*list.Model{&m.songList, &m.playlistList, &m.detailList, &m.likedList} {
			if l.Width() == 0 {
				l.SetSize(msg.Width-4, msg.Height-8)
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case songsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		items := make([]list.Item, len(msg.songs))
		for i, song := range msg.songs {
			items[i] = songItem{song: song}
		}
		m.songList = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-8)
		m.songList.Title = m.greeting()
		return m, nil

	case playlistsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		items := make([]list.Item, len(msg.playlists))
		for i, pl := range msg.playlists {
			items[i] = playlistItem{playlist: pl}
		}
		m.playlistList = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-8)
		m.playlistList.Title = "Playlists"
		return m, nil

	case playlistOpenedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		items := make([]list.Item, len(msg.playlist.Songs))
		for i, song := range msg.playlist.Songs {
			items[i] = songItem{song: song}
		}
		m.detailList = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-8)
		m.detailList.Title = fmt.Sprintf("Songs in '%s'", msg.playlist.Name)
		m.view = PlaylistDetailView
		return m, nil

	case likedFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		items := make([]list.Item, len(msg.liked))
		for i, entry := range msg.liked {
			items[i] = likedItem{liked: entry}
		}
		m.likedList = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-8)
		m.likedList.Title = "Liked Songs"
		return m, nil

	case likeToggledMsg:
		if msg.err != nil {
			if errors.Is(msg.err, shared.ErrNotSignedIn) {
				m.status = styles.warn.Render("Please sign in to like songs")
			} else if errors.Is(msg.err, shared.ErrAlreadyLiked) {
				m.status = styles.warn.Render(fmt.Sprintf("'%s' is already liked", msg.song.Title))
			} else {
				m.status = styles.err.Render(fmt.Sprintf("Like failed: %v", msg.err))
			}
			return m, nil
		}
		m.status = styles.ok.Render(fmt.Sprintf("Liked '%s'", msg.song.Title))
		return m, nil

	case moodCompleteMsg:
		m.moodBusy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != MoodView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case LibraryView:
		return m.renderLibrary()
	case PlaylistListView:
		return m.renderPlaylists()
	case PlaylistDetailView:
		return m.renderDetail()
	case LikedListView:
		return m.renderLiked()
	case MoodView:
		return m.renderMood()
	default:
		return ""
	}
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.quit) {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.tab) {
		return m.nextView()
	}

	switch m.view {
	case LibraryView:
		return m.handleLibraryKeys(msg)
	case PlaylistListView:
		return m.handlePlaylistKeys(msg)
	case PlaylistDetailView:
		return m.handleDetailKeys(msg)
	case LikedListView:
		return m.handleLikedKeys(msg)
	case MoodView:
		return m.handleMoodKeys(msg)
	}
	return m, nil
}

// nextView cycles Library → Playlists → Liked → Mood, fetching the
// target view's data on entry.
func (m *Model) nextView() (tea.Model, tea.Cmd) {
	m.status = ""
	switch m.view {
	case LibraryView:
		m.view = PlaylistListView
		return m, m.fetchPlaylists()
	case PlaylistListView, PlaylistDetailView:
		m.view = LikedListView
		return m, m.fetchLiked()
	case LikedListView:
		m.view = MoodView
		return m, nil
	default:
		m.view = LibraryView
		return m, m.fetchSongs()
	}
}

func (m *Model) handleLibraryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.songList.SelectedItem().(songItem); ok {
			m.playSong(item.song.ID)
			m.status = styles.ok.Render(fmt.Sprintf("Playing '%s'", item.song.Title))
		}
		return m, nil
	case key.Matches(msg, m.keys.like):
		if item, ok := m.songList.SelectedItem().(songItem); ok {
			return m, m.likeSong(item.song)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.songList, cmd = m.songList.Update(msg)
	return m, cmd
}

func (m *Model) handlePlaylistKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.enter) {
		if item, ok := m.playlistList.SelectedItem().(playlistItem); ok {
			return m, m.openPlaylist(item.playlist.ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.view = PlaylistListView
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.detailList.SelectedItem().(songItem); ok {
			m.playSong(item.song.ID)
			m.status = styles.ok.Render(fmt.Sprintf("Playing '%s'", item.song.Title))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.detailList, cmd = m.detailList.Update(msg)
	return m, cmd
}

func (m *Model) handleLikedKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.enter) {
		if item, ok := m.likedList.SelectedItem().(likedItem); ok {
			m.playSong(item.liked.SongID)
			m.status = styles.ok.Render(fmt.Sprintf("Playing '%s'", item.liked.Title))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.likedList, cmd = m.likedList.Update(msg)
	return m, cmd
}

func (m *Model) handleMoodKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.sequencer == nil {
		return m, nil
	}
	// The capture command owns the sequencer until it reports back.
	if m.moodBusy {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.enter):
		if m.sequencer.State() == mood.StatePlaying {
			// Try again discards the current mood playlist first.
			m.sequencer.Reset()
		}
		m.moodBusy = true
		m.err = nil
		return m, m.runMoodCapture()
	case key.Matches(msg, m.keys.play):
		if err := m.sequencer.TogglePlay(); err != nil {
			m.status = styles.warn.Render(fmt.Sprintf("%v", err))
		}
		return m, nil
	case key.Matches(msg, m.keys.skip):
		if _, err := m.sequencer.Skip(); err != nil {
			m.status = styles.warn.Render(fmt.Sprintf("%v", err))
		}
		return m, nil
	case key.Matches(msg, m.keys.back):
		m.sequencer.Reset()
		m.err = nil
		return m, nil
	}
	return m, nil
}

// playSong routes playback through the coordinator so starting one song
// pauses whichever was playing.
func (m *Model) playSong(id string) {
	if m.player.IsPlaying(id) {
		m.player.Pause(id)
		return
	}
	m.player.Play(id)
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case LibraryView:
		m.songList, cmd = m.songList.Update(msg)
	case PlaylistListView:
		m.playlistList, cmd = m.playlistList.Update(msg)
	case PlaylistDetailView:
		m.detailList, cmd = m.detailList.Update(msg)
	case LikedListView:
		m.likedList, cmd = m.likedList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchSongs() tea.Cmd {
	return func() tea.Msg {
		err := m.catalog.Refresh(m.ctx)
		return songsFetchedMsg{songs: m.catalog.VisibleSongs(), err: err}
	}
}

func (m *Model) fetchPlaylists() tea.Cmd {
	return func() tea.Msg {
		err := m.playlists.Refresh(m.ctx)
		return playlistsFetchedMsg{playlists: m.playlists.All(), err: err}
	}
}

func (m *Model) openPlaylist(id string) tea.Cmd {
	return func() tea.Msg {
		playlist, err := m.playlists.Open(id)
		return playlistOpenedMsg{playlist: playlist, err: err}
	}
}

func (m *Model) fetchLiked() tea.Cmd {
	return func() tea.Msg {
		if err := m.liked.Refresh(m.ctx); err != nil {
			if errors.Is(err, shared.ErrNotSignedIn) {
				return likedFetchedMsg{liked: nil, err: nil}
			}
			return likedFetchedMsg{err: err}
		}
		return likedFetchedMsg{liked: m.liked.All()}
	}
}

func (m *Model) likeSong(song models.Song) tea.Cmd {
	return func() tea.Msg {
		err := m.liked.Like(m.ctx, song)
		return likeToggledMsg{song: song, err: err}
	}
}

func (m *Model) runMoodCapture() tea.Cmd {
	return func() tea.Msg {
		if err := m.sequencer.StartCapture(m.ctx); err != nil {
			return moodCompleteMsg{err: err}
		}
		if err := m.sequencer.Analyze(m.ctx); err != nil {
			return moodCompleteMsg{err: err}
		}
		return moodCompleteMsg{}
	}
}

// greeting builds the library title from the current session and clock.
func (m *Model) greeting() string {
	s, err := m.store.Current()
	if err != nil {
		s = nil
	}
	return session.Greeting(s, time.Now())
}

func (m *Model) renderLibrary() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.like, m.keys.tab, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", m.songList.View(), m.status, helpView)
}

func (m *Model) renderPlaylists() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.tab, m.keys.quit})
	return fmt.Sprintf("%s\n\n%s", m.playlistList.View(), helpView)
}

func (m *Model) renderDetail() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", m.detailList.View(), m.status, helpView)
}

func (m *Model) renderLiked() string {
	if len(m.likedList.Items()) == 0 {
		title := styles.title.Render("Liked Songs")
		body := styles.help.Render("Nothing here yet. Sign in and like songs to see them.")
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.tab, m.keys.quit})
		return fmt.Sprintf("%s\n%s\n\n%s", title, body, helpView)
	}
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.tab, m.keys.quit})
	return fmt.Sprintf("%s\n\n%s", m.likedList.View(), helpView)
}

func (m *Model) renderMood() string {
	title := styles.title.Render("Mood Mode")

	if m.sequencer == nil {
		return fmt.Sprintf("%s\n%s", title, styles.warn.Render("Mood playback is not configured."))
	}

	// While the capture command runs on its own goroutine the sequencer
	// is off-limits; render a static progress view instead.
	if m.moodBusy {
		return fmt.Sprintf("%s\n%s", title, "Reading your expression...")
	}

	if m.err != nil {
		body := styles.err.Render(fmt.Sprintf("%v", m.err))
		hint := styles.help.Render("Press enter to try again, esc to reset")
		return fmt.Sprintf("%s\n%s\n\n%s", title, body, hint)
	}

	switch m.sequencer.State() {
	case mood.StateCapturing, mood.StateAnalyzing:
		return fmt.Sprintf("%s\n%s", title, "Reading your expression...")
	case mood.StatePlaying:
		queue := m.sequencer.Queue()
		current := queue.Current()
		state := styles.ok.Render("▶ playing")
		if !queue.Playing() {
			state = styles.warn.Render("⏸ paused")
		}
		info := fmt.Sprintf(
			"Mood: %s → %s\n\n%s %s - %s (%d/%d)",
			m.sequencer.Mood(), m.sequencer.Genre(),
			state, current.Artist, current.Title,
			queue.Index()+1, queue.Len(),
		)
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.play, m.keys.skip, m.keys.enter, m.keys.back})
		return fmt.Sprintf("%s\n%s\n%s\n\n%s", title, info, m.status, helpView)
	default:
		body := "Press enter to capture your mood and build a playlist."
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.tab, m.keys.quit})
		return fmt.Sprintf("%s\n%s\n%s\n\n%s", title, body, m.status, helpView)
	}
}
