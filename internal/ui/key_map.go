package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	next    key.Binding
	prev    key.Binding
	toggle  key.Binding
	submit  key.Binding
	up      key.Binding
	down    key.Binding
	back    key.Binding
	restart key.Binding
	quit    key.Binding
	abort   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		prev:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
		toggle:  key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "save/transient")),
		submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "list videos")),
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "new listing")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		abort:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.next, k.prev, k.toggle, k.submit},
		{k.up, k.down, k.back},
		{k.restart, k.quit},
	}
}
