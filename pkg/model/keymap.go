package model

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap defines the global keybindings. To work for help it must satisfy
// help.KeyMap.
type keyMap struct {
	Home      key.Binding
	Login     key.Binding
	Logout    key.Binding
	Host      key.Binding
	Profile   key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view. It's part
// of the help.KeyMap interface.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Home, k.Login, k.Logout, k.Host, k.Profile, k.ForceQuit}
}

// FullHelp returns keybindings for the expanded help view. It's part of the
// help.KeyMap interface.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Home, k.Host, k.Profile},
		{k.Login, k.Logout, k.Quit, k.ForceQuit},
	}
}

// defaultKeyMap returns the global keybindings. Letters are avoided so that
// they reach focused text fields.
func defaultKeyMap() keyMap {
	return keyMap{
		Home: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "home"),
		),
		Login: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "log in"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "log out"),
		),
		Host: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "host"),
		),
		Profile: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "profile"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// pageKeyMap holds the bindings used by pages that browse results
type pageKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Prev   key.Binding
	Next   key.Binding
	Filter key.Binding
	Open   key.Binding
	Book   key.Binding
	Tab    key.Binding
	Back   key.Binding
	Toggle key.Binding
	Wallet key.Binding
}

var pageKeys = pageKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Prev: key.NewBinding(
		key.WithKeys("left", "h", "pgup"),
		key.WithHelp("←/h", "prev page"),
	),
	Next: key.NewBinding(
		key.WithKeys("right", "l", "pgdown"),
		key.WithHelp("→/l", "next page"),
	),
	Filter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "sort by price"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Book: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "book"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next field"),
	),
	Back: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab", "prev field"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("left", "right"),
		key.WithHelp("←/→", "change"),
	),
	Wallet: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "connect or disconnect stripe"),
	),
}
