package report

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	presence  lipgloss.Style
	detail    lipgloss.Style
	warning   lipgloss.Style
	notice    lipgloss.Style
	ok        lipgloss.Style
	section   lipgloss.Style
	empty     lipgloss.Style
	alertMeta lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true),
		header:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		presence:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		warning:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		notice:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		ok:        lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		section:   lipgloss.NewStyle().MarginTop(1),
		empty:     lipgloss.NewStyle().Faint(true),
		alertMeta: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}
