// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow over the catalog:
//  1. [LibraryView] : Browse the song library with a session-aware greeting
//  2. [PlaylistListView] : Browse playlists
//  3. [PlaylistDetailView] : Songs inside an opened playlist
//  4. [LikedListView] : The signed-in user's liked songs
//  5. [MoodView] : Capture an expression and play a mood-matched queue
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving typed messages
// from commands that call into the library, session, and mood packages. Playback routes through
// [player.Coordinator] so starting one song always pauses the previous one.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, tab, space, n, l, q) with contextual
// help displayed via charmbracelet/bubbles/help.
package ui
