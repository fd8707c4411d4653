package tui

import (
	"todoapp/internal/client/theme"

	"github.com/charmbracelet/lipgloss"
)

const (
	boxChecked   = "☑"
	boxUnchecked = "☐"
)

type styles struct {
	title       lipgloss.Style
	tabActive   lipgloss.Style
	tabInactive lipgloss.Style
	selected    lipgloss.Style
	done        lipgloss.Style
	muted       lipgloss.Style
	success     lipgloss.Style
	error       lipgloss.Style
	label       lipgloss.Style
	panel       lipgloss.Style
}

type palette struct {
	text, muted, accent, success, error, border lipgloss.Color
}

var palettes = map[string]palette{
	theme.Dark: {
		text:    lipgloss.Color("252"),
		muted:   lipgloss.Color("243"),
		accent:  lipgloss.Color("12"),
		success: lipgloss.Color("42"),
		error:   lipgloss.Color("9"),
		border:  lipgloss.Color("8"),
	},
	theme.Light: {
		text:    lipgloss.Color("235"),
		muted:   lipgloss.Color("245"),
		accent:  lipgloss.Color("25"),
		success: lipgloss.Color("28"),
		error:   lipgloss.Color("160"),
		border:  lipgloss.Color("250"),
	},
}

func newStyles(name string) styles {
	p, ok := palettes[name]
	if !ok {
		p = palettes[theme.Dark]
	}

	return styles{
		title:       lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		tabActive:   lipgloss.NewStyle().Bold(true).Underline(true).Foreground(p.accent).Padding(0, 1),
		tabInactive: lipgloss.NewStyle().Foreground(p.muted).Padding(0, 1),
		selected:    lipgloss.NewStyle().Bold(true).Foreground(p.text),
		done:        lipgloss.NewStyle().Faint(true).Strikethrough(true).Foreground(p.muted),
		muted:       lipgloss.NewStyle().Foreground(p.muted),
		success:     lipgloss.NewStyle().Foreground(p.success),
		error:       lipgloss.NewStyle().Bold(true).Foreground(p.error),
		label:       lipgloss.NewStyle().Width(labelWidth).Foreground(p.muted),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 1),
	}
}
