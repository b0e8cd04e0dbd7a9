package status

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	detail     lipgloss.Style
	warning    lipgloss.Style
	empty      lipgloss.Style
	section    lipgloss.Style
	clockedIn  lipgloss.Style
	onBreak    lipgloss.Style
	clockedOut lipgloss.Style
	eventKey   lipgloss.Style
	eventMeta  lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		warning:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		empty:      lipgloss.NewStyle().Faint(true),
		section:    lipgloss.NewStyle().MarginTop(1),
		clockedIn:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		onBreak:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		clockedOut: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245")),
		eventKey:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		eventMeta:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}
