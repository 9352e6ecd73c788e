package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the review table.
type KeyMap struct {
	Up            key.Binding
	Down          key.Binding
	Top           key.Binding
	Bottom        key.Binding
	NextCandidate key.Binding
	PrevCandidate key.Binding
	Scan          key.Binding
	ScanAll       key.Binding
	Accept        key.Binding
	Ignore        key.Binding
	Move          key.Binding
	ClearFolder   key.Binding
	EditTags      key.Binding
	Open          key.Binding
	Yank          key.Binding
	Refresh       key.Binding
	Filter        key.Binding
	Help          key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the default vim-style key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("gg", "go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "go to bottom"),
		),
		NextCandidate: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "next folder candidate"),
		),
		PrevCandidate: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "previous folder candidate"),
		),
		Scan: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "scan note"),
		),
		ScanAll: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "scan all"),
		),
		Accept: key.NewBinding(
			key.WithKeys("a", "enter"),
			key.WithHelp("a/enter", "accept"),
		),
		Ignore: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "ignore suggestion"),
		),
		Move: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "pick folder"),
		),
		ClearFolder: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "clear picked folder"),
		),
		EditTags: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "edit tags"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open note"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yank path"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
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

// HelpBindings returns the bindings listed in the help overlay, in order.
func (k KeyMap) HelpBindings() []key.Binding {
	return []key.Binding{
		k.Down, k.Up, k.Top, k.Bottom,
		k.NextCandidate, k.PrevCandidate,
		k.Scan, k.ScanAll, k.Accept, k.Ignore,
		k.Move, k.ClearFolder, k.EditTags,
		k.Open, k.Yank, k.Refresh, k.Filter,
		k.Help, k.Quit,
	}
}
