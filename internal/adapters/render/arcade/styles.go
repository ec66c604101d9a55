package arcade

import "github.com/charmbracelet/lipgloss"

type styles struct {
	frame    lipgloss.Style
	score    lipgloss.Style
	meta     lipgloss.Style
	player   lipgloss.Style
	obstacle lipgloss.Style
	banner   lipgloss.Style
	gameOver lipgloss.Style
	record   lipgloss.Style
	help     lipgloss.Style
}

func newStyles() styles {
	return styles{
		frame:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("218")),
		score:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		meta:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		player:   lipgloss.NewStyle().Foreground(lipgloss.Color("204")),
		obstacle: lipgloss.NewStyle().Foreground(lipgloss.Color("175")),
		banner:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		gameOver: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		record:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		help:     lipgloss.NewStyle().Faint(true),
	}
}
