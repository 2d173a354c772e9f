package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up    key.Binding
	down  key.Binding
	enter key.Binding
	back  key.Binding
	tab   key.Binding
	play  key.Binding
	skip  key.Binding
	like  key.Binding
	quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		tab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
		play:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		skip:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "skip")),
		like:  key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "like")),
		quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.tab, k.back, k.like},
		{k.play, k.skip, k.quit},
	}
}
