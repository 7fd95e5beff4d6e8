package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	headerStyle  = lipgloss.NewStyle().Faint(true).Underline(true)
	rowStyle     = lipgloss.NewStyle()
	focusedStyle = lipgloss.NewStyle().Reverse(true)
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#21b6ae"))
	helpStyle    = lipgloss.NewStyle().Faint(true)
	statusStyle  = lipgloss.NewStyle().Italic(true)

	stateStyles = map[string]lipgloss.Style{
		"open":       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"connecting": lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		"closing":    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		"closed":     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)
