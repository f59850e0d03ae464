package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
)

// KeyMap defines the key bindings of the lead viewer
type KeyMap struct {
	Up   key.Binding
	Down key.Binding

	NextPage     key.Binding
	PrevPage     key.Binding
	GrowPage     key.Binding // next larger page size
	ShrinkPage   key.Binding
	CycleStatus  key.Binding
	CycleSource  key.Binding
	FocusSearch  key.Binding
	ApplyFilters key.Binding
	ClearAll     key.Binding

	Open      key.Binding
	Back      key.Binding
	Refresh   key.Binding
	Seed      key.Binding
	Dashboard key.Binding
	Export    key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("n", "right", "l"),
		key.WithHelp("n/→", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("p", "left", "h"),
		key.WithHelp("p/←", "prev page"),
	),
	GrowPage: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "more rows"),
	),
	ShrinkPage: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "fewer rows"),
	),
	CycleStatus: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "status"),
	),
	CycleSource: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "source"),
	),
	FocusSearch: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	ApplyFilters: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "apply"),
	),
	ClearAll: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear all"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "details"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "backspace"),
		key.WithHelp("esc", "back"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Seed: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "generate sample data"),
	),
	Dashboard: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "dashboard"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// tableKeyMap limits the table's own bindings to row movement so the rest
// of the keys stay free for the list screen
func tableKeyMap(keys KeyMap) table.KeyMap {
	return table.KeyMap{
		LineUp:     keys.Up,
		LineDown:   keys.Down,
		GotoTop:    key.NewBinding(key.WithKeys("home")),
		GotoBottom: key.NewBinding(key.WithKeys("end")),
	}
}

// ShortHelp lists the bindings shown in the list screen's help line
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.FocusSearch, k.CycleStatus, k.CycleSource, k.ClearAll,
		k.PrevPage, k.NextPage, k.GrowPage, k.Open, k.Seed, k.Dashboard, k.Quit,
	}
}
