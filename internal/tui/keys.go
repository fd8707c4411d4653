package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type listKeys struct {
	Up      key.Binding
	Down    key.Binding
	Tab     key.Binding
	Add     key.Binding
	Edit    key.Binding
	Toggle  key.Binding
	Delete  key.Binding
	Refresh key.Binding
	Theme   key.Binding
	Quit    key.Binding
}

func (k listKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Add, k.Edit, k.Toggle, k.Delete, k.Theme, k.Quit}
}

func (k listKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Tab},
		{k.Add, k.Edit, k.Toggle, k.Delete},
		{k.Refresh, k.Theme, k.Quit},
	}
}

type formKeys struct {
	Next   key.Binding
	Prev   key.Binding
	Check  key.Binding
	Save   key.Binding
	Cancel key.Binding
}

func (k formKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Check, k.Save, k.Cancel}
}

func (k formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev, k.Check, k.Save, k.Cancel}}
}

func newListKeys() listKeys {
	return listKeys{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Tab:     key.NewBinding(key.WithKeys("tab", "left", "right", "h", "l"), key.WithHelp("tab", "switch view")),
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:    key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Toggle:  key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Theme:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func newFormKeys() formKeys {
	return formKeys{
		Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
		Check:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "completed")),
		Save:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}
