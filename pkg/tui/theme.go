package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/jordanlanch/leadmanager/pkg/format"
	"github.com/jordanlanch/leadmanager/pkg/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1976D2"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9E9E9E"))

	activeFilterStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4CAF50"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F44336"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#616161"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#424242")).
			Padding(0, 1).
			Width(22)
)

func statusStyle(status models.LeadStatus) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(format.StatusColor(status)))
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#424242")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#1976D2")).
		Bold(false)
	return styles
}
