// Package tui is the terminal front end: two tabs over the todo list and a
// form driven by the editor.
package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"todoapp/internal/client"
	"todoapp/internal/client/theme"
	"todoapp/internal/editor"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldStartDate
	fieldEndDate
	fieldCompleted
	fieldCount
)

const (
	labelWidth = 14

	titleLimit       = 120
	descriptionLimit = 2000
	dateLimit        = 10
)

type refreshedMsg struct {
	err error
}

type savedMsg struct {
	draft client.Draft
	err   error
}

type doneMsg struct {
	action string
	err    error
}

type Model struct {
	ctx    context.Context
	list   *client.ListClient
	editor *editor.Editor
	store  *theme.Store

	theme    string
	styles   styles
	keys     listKeys
	formKeys formKeys
	help     help.Model

	completed bool
	cursor    int
	inputs    []textinput.Model
	focus     int
	status    string
	failed    bool
}

func New(ctx context.Context, list *client.ListClient, edit *editor.Editor, store *theme.Store) Model {
	current := store.Resolve()

	return Model{
		ctx:      ctx,
		list:     list,
		editor:   edit,
		store:    store,
		theme:    current,
		styles:   newStyles(current),
		keys:     newListKeys(),
		formKeys: newFormKeys(),
		help:     help.New(),
		inputs:   newInputs(),
	}
}

func newInputs() []textinput.Model {
	inputs := make([]textinput.Model, fieldCompleted)

	for i := range inputs {
		input := textinput.New()
		input.Prompt = ""

		switch i {
		case fieldTitle:
			input.Placeholder = "What needs doing?"
			input.CharLimit = titleLimit
		case fieldDescription:
			input.Placeholder = "Optional details"
			input.CharLimit = descriptionLimit
		case fieldStartDate, fieldEndDate:
			input.Placeholder = "YYYY-MM-DD"
			input.CharLimit = dateLimit
		}

		inputs[i] = input
	}

	return inputs
}

func (m Model) Init() tea.Cmd {
	return m.refresh()
}

// Theme returns the active theme name.
func (m Model) Theme() string {
	return m.theme
}

// Status returns the last status line and whether it reports a failure.
func (m Model) Status() (string, bool) {
	return m.status, m.failed
}

func (m Model) refresh() tea.Cmd {
	list, ctx := m.list, m.ctx

	return func() tea.Msg {
		return refreshedMsg{err: list.Refresh(ctx)}
	}
}

func (m Model) run(action string, fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx

	return func() tea.Msg {
		return doneMsg{action: action, err: fn(ctx)}
	}
}

func (m Model) visible() []client.Item {
	return slices.Collect(m.list.Visible(m.completed))
}

func (m Model) selected() (client.Item, bool) {
	items := m.visible()
	if m.cursor < 0 || m.cursor >= len(items) {
		return client.Item{}, false
	}

	return items[m.cursor], true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

		return m, nil
	case refreshedMsg:
		if msg.err != nil {
			m.setStatus(true, "Could not load todos: %v", msg.err)
		}

		m.clampCursor()

		return m, nil
	case savedMsg:
		if msg.err != nil {
			m.editor.Open(msg.draft)
			cmd := m.loadForm()
			m.setStatus(true, "Could not save: %v", msg.err)

			return m, cmd
		}

		m.setStatus(false, "Saved %q", msg.draft.Title)
		m.clampCursor()

		return m, nil
	case doneMsg:
		if msg.err != nil {
			m.setStatus(true, "Could not %s: %v", msg.action, msg.err)
		} else {
			m.setStatus(false, "Todo %sd", msg.action)
		}

		m.clampCursor()

		return m, nil
	case tea.KeyMsg:
		if m.editor.IsOpen() {
			return m.updateForm(msg)
		}

		return m.updateList(msg)
	}

	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Tab):
		m.completed = !m.completed
		m.cursor = 0
	case key.Matches(msg, m.keys.Add):
		m.editor.OpenBlank()
		cmd := m.loadForm()

		return m, cmd
	case key.Matches(msg, m.keys.Edit):
		if item, ok := m.selected(); ok {
			m.editor.OpenItem(item)
			cmd := m.loadForm()

			return m, cmd
		}
	case key.Matches(msg, m.keys.Toggle):
		if item, ok := m.selected(); ok {
			list := m.list

			return m, m.run("update", func(ctx context.Context) error { return list.Toggle(ctx, item) })
		}
	case key.Matches(msg, m.keys.Delete):
		if item, ok := m.selected(); ok {
			list := m.list

			return m, m.run("delete", func(ctx context.Context) error { return list.Remove(ctx, item) })
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refresh()
	case key.Matches(msg, m.keys.Theme):
		m.theme = theme.Toggle(m.theme)
		m.styles = newStyles(m.theme)

		if err := m.store.Save(m.theme); err != nil {
			log.Error().Err(err).Str("theme", m.theme).Msg("failed to store theme")
			m.setStatus(true, "Theme not saved: %v", err)
		}
	}

	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.formKeys.Cancel):
		m.editor.Cancel()
		m.blurAll()

		return m, nil
	case key.Matches(msg, m.formKeys.Next):
		cmd := m.focusField((m.focus + 1) % fieldCount)

		return m, cmd
	case key.Matches(msg, m.formKeys.Prev):
		cmd := m.focusField((m.focus + fieldCount - 1) % fieldCount)

		return m, cmd
	case key.Matches(msg, m.formKeys.Save):
		cmd := m.save()

		return m, cmd
	case m.focus == fieldCompleted:
		if key.Matches(msg, m.formKeys.Check) {
			m.editor.SetCompleted(!m.editor.Draft().Completed)
		}

		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.syncField(m.focus)

	return m, cmd
}

// save closes the form when the draft passes the editor checks and submits it
// in the background. A failed submit reopens the form with the same draft.
func (m *Model) save() tea.Cmd {
	var pending client.Draft

	err := m.editor.Save(func(draft client.Draft) error {
		pending = draft

		return nil
	})
	if err != nil {
		return nil
	}

	m.blurAll()

	list, ctx := m.list, m.ctx

	return func() tea.Msg {
		return savedMsg{draft: pending, err: list.Submit(ctx, pending)}
	}
}

func (m *Model) syncField(field int) {
	value := m.inputs[field].Value()

	switch field {
	case fieldTitle:
		m.editor.SetTitle(value)
	case fieldDescription:
		m.editor.SetDescription(value)
	case fieldStartDate:
		m.editor.SetStartDate(strings.TrimSpace(value))
	case fieldEndDate:
		m.editor.SetEndDate(strings.TrimSpace(value))
	}
}

func (m *Model) loadForm() tea.Cmd {
	draft := m.editor.Draft()

	m.inputs[fieldTitle].SetValue(draft.Title)
	m.inputs[fieldDescription].SetValue(draft.Description)
	m.inputs[fieldStartDate].SetValue(draft.StartDate)
	m.inputs[fieldEndDate].SetValue(draft.EndDate)

	return m.focusField(fieldTitle)
}

func (m *Model) focusField(field int) tea.Cmd {
	m.blurAll()
	m.focus = field

	if field < len(m.inputs) {
		return m.inputs[field].Focus()
	}

	return nil
}

func (m *Model) blurAll() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

func (m *Model) clampCursor() {
	m.cursor = max(0, min(m.cursor, len(m.visible())-1))
}

func (m *Model) setStatus(failed bool, format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.failed = failed
}
