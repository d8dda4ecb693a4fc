// Package textview renders pivot timetables for terminals with lipgloss.
package textview

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	Foreground  = lipgloss.Color("#101F38")
	Muted       = lipgloss.Color("#6b7280")
	Accent      = lipgloss.Color("#8BC34A")
	Destructive = lipgloss.Color("#e53935")
	Border      = lipgloss.Color("#9ca3af")
)

// Styles holds the styles used by the renderers
type Styles struct {
	Title      lipgloss.Style
	Tab        lipgloss.Style
	ActiveTab  lipgloss.Style
	Header     lipgloss.Style
	RowHeader  lipgloss.Style
	Cell       lipgloss.Style
	Card       lipgloss.Style
	CardID     lipgloss.Style
	Muted      lipgloss.Style
	Score      lipgloss.Style
	Solving    lipgloss.Style
	Error      lipgloss.Style
	Selected   lipgloss.Style
	Deletable  lipgloss.Style
	colorCards bool
}

// DefaultStyles returns the styles for a color terminal.
func DefaultStyles() Styles {
	return Styles{
		Title:      lipgloss.NewStyle().Bold(true),
		Tab:        lipgloss.NewStyle().Padding(0, 1).Foreground(Muted),
		ActiveTab:  lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true),
		Header:     lipgloss.NewStyle().Bold(true),
		RowHeader:  lipgloss.NewStyle().Bold(true),
		Cell:       lipgloss.NewStyle().Padding(0, 1),
		Card:       lipgloss.NewStyle().Foreground(Foreground),
		CardID:     lipgloss.NewStyle().Faint(true),
		Muted:      lipgloss.NewStyle().Foreground(Muted),
		Score:      lipgloss.NewStyle().Bold(true),
		Solving:    lipgloss.NewStyle().Bold(true).Foreground(Accent),
		Error:      lipgloss.NewStyle().Foreground(Destructive),
		Selected:   lipgloss.NewStyle().Reverse(true),
		Deletable:  lipgloss.NewStyle().Foreground(Destructive),
		colorCards: true,
	}
}

// PlainStyles returns styles without colors, for pipes and tests.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title:     plain,
		Tab:       plain.Padding(0, 1),
		ActiveTab: plain.Padding(0, 1),
		Header:    plain,
		RowHeader: plain,
		Cell:      plain.Padding(0, 1),
		Card:      plain,
		CardID:    plain,
		Muted:     plain,
		Score:     plain,
		Solving:   plain,
		Error:     plain,
		Selected:  plain,
		Deletable: plain,
	}
}
