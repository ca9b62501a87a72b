package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	panel    lipgloss.Style
	row      lipgloss.Style
	active   lipgloss.Style
	muted    lipgloss.Style
	errText  lipgloss.Style
	chip     lipgloss.Style
	filterOn lipgloss.Style
	spinner  lipgloss.Style
	help     lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69")),
		panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		row:      lipgloss.NewStyle(),
		active:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		errText:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		chip:     lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Padding(0, 1),
		filterOn: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		spinner:  lipgloss.NewStyle().Foreground(lipgloss.Color("69")),
		help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
