// Package ui is the terminal front end of the scouting wizard.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	Navy      = lipgloss.Color("#101F38")
	Lime      = lipgloss.Color("#8BC34A")
	Muted     = lipgloss.Color("#6B7A90")
	Border    = lipgloss.Color("#2A3850")
	RedTeam   = lipgloss.Color("#E53935")
	BlueTeam  = lipgloss.Color("#2196F3")
	Highlight = lipgloss.Color("#FFC107")
)

// Styles holds the lipgloss styles shared by every page.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Focused  lipgloss.Style
	Help     lipgloss.Style
	Error    lipgloss.Style
	Notice   lipgloss.Style
	Box      lipgloss.Style
	Red      lipgloss.Style
	Blue     lipgloss.Style
	Rings    [4]lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(Lime),
		Subtitle: lipgloss.NewStyle().Foreground(Muted),
		Label:    lipgloss.NewStyle().Width(24),
		Focused:  lipgloss.NewStyle().Width(24).Bold(true).Foreground(Highlight),
		Help:     lipgloss.NewStyle().Foreground(Muted),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(RedTeam),
		Notice:   lipgloss.NewStyle().Foreground(Lime),
		Box:      lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(Border),
		Red:      lipgloss.NewStyle().Bold(true).Foreground(RedTeam),
		Blue:     lipgloss.NewStyle().Bold(true).Foreground(BlueTeam),
		Rings: [4]lipgloss.Style{
			lipgloss.NewStyle().Foreground(Highlight),
			lipgloss.NewStyle().Foreground(Lime),
			lipgloss.NewStyle().Foreground(BlueTeam),
			lipgloss.NewStyle().Foreground(RedTeam),
		},
	}
}
