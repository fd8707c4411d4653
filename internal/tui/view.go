package tui

import (
	"fmt"
	"strings"
	"todoapp/internal/client"

	"github.com/charmbracelet/lipgloss"
)

var fieldLabels = [fieldCount]string{"Title", "Description", "Start date", "End date", "Completed"}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.header())
	b.WriteString("\n\n")

	if m.editor.IsOpen() {
		b.WriteString(m.formView())
	} else {
		b.WriteString(m.listView())
	}

	b.WriteString("\n")

	if m.status != "" {
		style := m.styles.success
		if m.failed {
			style = m.styles.error
		}

		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}

	if m.editor.IsOpen() {
		b.WriteString(m.help.View(m.formKeys))
	} else {
		b.WriteString(m.help.View(m.keys))
	}

	return m.styles.panel.Render(b.String())
}

func (m Model) header() string {
	open, done := 0, 0

	for _, item := range m.list.Items() {
		if item.Completed {
			done++
		} else {
			open++
		}
	}

	tabs := []string{
		m.tab(fmt.Sprintf("Incomplete (%d)", open), !m.completed),
		m.tab(fmt.Sprintf("Complete (%d)", done), m.completed),
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, m.styles.title.Render("Todos")+"  ", strings.Join(tabs, " "))
}

func (m Model) tab(label string, active bool) string {
	if active {
		return m.styles.tabActive.Render(label)
	}

	return m.styles.tabInactive.Render(label)
}

func (m Model) listView() string {
	items := m.visible()
	if len(items) == 0 {
		return m.styles.muted.Render("Nothing here.")
	}

	lines := make([]string, len(items))

	for i, item := range items {
		lines[i] = m.itemLine(item, i == m.cursor)
	}

	return strings.Join(lines, "\n")
}

func (m Model) itemLine(item client.Item, selected bool) string {
	box := m.styles.muted.Render(boxUnchecked)
	title := item.Title

	if item.Completed {
		box = m.styles.success.Render(boxChecked)
		title = m.styles.done.Render(title)
	}

	prefix := "  "
	if selected {
		prefix = m.styles.selected.Render("> ")
	}

	line := prefix + box + " " + title

	if dates := dateRange(client.FromWire(item)); dates != "" {
		line += "  " + m.styles.muted.Render(dates)
	}

	return line
}

func (m Model) formView() string {
	draft := m.editor.Draft()

	heading := "New todo"
	if !draft.IsNew() {
		heading = "Edit todo"
	}

	rows := []string{m.styles.title.Render(heading), ""}

	for i, input := range m.inputs {
		rows = append(rows, m.formRow(i, input.View()))
	}

	check := boxUnchecked
	if draft.Completed {
		check = boxChecked
	}

	rows = append(rows, m.formRow(fieldCompleted, check))

	if msg := m.editor.Error(); msg != "" {
		rows = append(rows, "", m.styles.error.Render(msg))
	}

	return strings.Join(rows, "\n")
}

func (m Model) formRow(field int, value string) string {
	label := m.styles.label.Render(fieldLabels[field])
	if field == m.focus {
		label = m.styles.label.Inherit(m.styles.selected).Render(fieldLabels[field])
	}

	return label + value
}

func dateRange(draft client.Draft) string {
	switch {
	case draft.StartDate != "" && draft.EndDate != "":
		return draft.StartDate + " → " + draft.EndDate
	case draft.StartDate != "":
		return "from " + draft.StartDate
	case draft.EndDate != "":
		return "until " + draft.EndDate
	default:
		return ""
	}
}
