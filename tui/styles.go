package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4688EC"))
	activeTab      = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("#4688EC")).Padding(0, 1)
	inactiveTab    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D")).Padding(0, 1)
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D")).Italic(true)
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#82B536")).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#E2483D")).Bold(true)
	labelStyle     = lipgloss.NewStyle().Bold(true)
	formBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#4688EC")).Padding(0, 1)
	detailBoxStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("#CECFD2")).Padding(0, 1)
)

// badge renders text as a coloured pill.
func badge(text, color string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color(color)).
		Padding(0, 1).
		Render(text)
}
