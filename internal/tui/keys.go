package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Paging
	NextPage  key.Binding
	PrevPage  key.Binding
	FirstPage key.Binding
	LastPage  key.Binding

	// Rows
	Up   key.Binding
	Down key.Binding

	// Selection
	Toggle     key.Binding
	ToggleAll  key.Binding
	BulkSelect key.Binding
	Clear      key.Binding
	Lock       key.Binding

	// Actions
	Filter  key.Binding
	Inspect key.Binding
	Open    key.Binding
	Refresh key.Binding
	Escape  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Paging
		NextPage: key.NewBinding(
			key.WithKeys("n", "right", "l"),
			key.WithHelp("n/→", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p", "left", "h"),
			key.WithHelp("p/←", "prev page"),
		),
		FirstPage: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "first page"),
		),
		LastPage: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "last page"),
		),

		// Rows
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),

		// Selection
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle row"),
		),
		ToggleAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "toggle page"),
		),
		BulkSelect: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "select rows"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear selection"),
		),
		Lock: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "lock selection"),
		),

		// Actions
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Inspect: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "details"),
		),
		Open: key.NewBinding(
			key.WithKeys("o", "enter"),
			key.WithHelp("o", "open in browser"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload page"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel/clear"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap for the footer
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPage, k.PrevPage, k.Toggle, k.BulkSelect, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap for the help screen
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextPage, k.PrevPage, k.FirstPage, k.LastPage, k.Up, k.Down},
		{k.Toggle, k.ToggleAll, k.BulkSelect, k.Clear, k.Lock},
		{k.Filter, k.Inspect, k.Open, k.Refresh, k.Escape, k.Help, k.Quit},
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
