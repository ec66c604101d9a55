package summary

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	highlight  lipgloss.Style
	detail     lipgloss.Style
	celebrate  lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	label      lipgloss.Style
	meta       lipgloss.Style
	locked     lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		highlight:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		celebrate:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		label:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		meta:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		locked:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("218")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}
