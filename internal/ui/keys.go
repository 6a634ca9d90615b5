package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds every binding; each screen shows the subset it handles
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	New      key.Binding
	Activate key.Binding
	Launch   key.Binding
	Open     key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Settings key.Binding
	Quit     key.Binding
	Login    key.Binding
	Back     key.Binding
	Next     key.Binding
	Left     key.Binding
	Right    key.Binding
	Section  key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Activate: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "activate")),
		Launch:   key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "launch")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Settings: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Login:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "login")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Next:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		Left:     key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "prev")),
		Right:    key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "next")),
		Section:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "section")),
		Confirm:  key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm")),
		Cancel:   key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "cancel")),
	}
}

// bindings implements help.KeyMap for a fixed list
type bindings []key.Binding

func (b bindings) ShortHelp() []key.Binding { return b }

func (b bindings) FullHelp() [][]key.Binding { return [][]key.Binding{b} }
