package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	Background string
	Surface    string

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Accent  string
	Success string
	Warning string
	Danger  string
}

// Styles holds resolved lipgloss styles for a theme.
type Styles struct {
	Header    lipgloss.Style
	TabActive lipgloss.Style
	Tab       lipgloss.Style

	Row         lipgloss.Style
	RowSelected lipgloss.Style

	Text    lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style

	StatusBar lipgloss.Style
	Help      lipgloss.Style
}

// Styles returns lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.Accent)),
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.SelectionText)).
			Background(lipgloss.Color(t.SelectionBg)).
			Padding(0, 1),
		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Row: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),
		RowSelected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.SelectionText)).
			Background(lipgloss.Color(t.SelectionBg)),

		Text:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)),

		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Background(lipgloss.Color(t.Surface)),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),
	}
}

var themes = []Theme{
	{
		Name:          "Dracula",
		Background:    "#282a36",
		Surface:       "#343746",
		SelectionBg:   "#44475a",
		SelectionText: "#f8f8f2",
		Border:        "#6272a4",
		BorderFocus:   "#bd93f9",
		Text:          "#f8f8f2",
		Muted:         "#6272a4",
		Accent:        "#bd93f9",
		Success:       "#50fa7b",
		Warning:       "#f1fa8c",
		Danger:        "#ff5555",
	},
	{
		Name:          "Slate",
		Background:    "#1e293b",
		Surface:       "#273449",
		SelectionBg:   "#334155",
		SelectionText: "#f1f5f9",
		Border:        "#475569",
		BorderFocus:   "#38bdf8",
		Text:          "#e2e8f0",
		Muted:         "#64748b",
		Accent:        "#38bdf8",
		Success:       "#4ade80",
		Warning:       "#facc15",
		Danger:        "#f87171",
	},
	{
		Name:          "Paper",
		Background:    "#fafaf9",
		Surface:       "#f5f5f4",
		SelectionBg:   "#d6d3d1",
		SelectionText: "#1c1917",
		Border:        "#a8a29e",
		BorderFocus:   "#2563eb",
		Text:          "#292524",
		Muted:         "#78716c",
		Accent:        "#2563eb",
		Success:       "#16a34a",
		Warning:       "#ca8a04",
		Danger:        "#dc2626",
	},
}

// themeByName returns the named theme, falling back to the first one.
func themeByName(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// nextTheme returns the theme after the given one, wrapping around.
func nextTheme(name string) Theme {
	for i, t := range themes {
		if t.Name == name {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}
