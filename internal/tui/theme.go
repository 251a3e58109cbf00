package tui

import "github.com/charmbracelet/lipgloss"

type theme struct {
	Header     lipgloss.Style
	Panel      lipgloss.Style
	PanelFocus lipgloss.Style
	Muted      lipgloss.Style
	Accent     lipgloss.Style
	User       lipgloss.Style
	Assistant  lipgloss.Style
	Alert      lipgloss.Style
	Danger     lipgloss.Style
	Selected   lipgloss.Style
	Input      lipgloss.Style
	OverlayBox lipgloss.Style
}

func defaultTheme() theme {
	accent := lipgloss.Color("#00B7FF")
	secondary := lipgloss.Color("#7D7D7D")
	user := lipgloss.Color("#00FF9C")
	alert := lipgloss.Color("#FFBF00")
	danger := lipgloss.Color("#FF0055")

	return theme{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondary).
			Padding(0, 1),
		PanelFocus: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		Muted: lipgloss.NewStyle().
			Foreground(secondary),
		Accent: lipgloss.NewStyle().
			Foreground(accent),
		User: lipgloss.NewStyle().
			Bold(true).
			Foreground(user),
		Assistant: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),
		Alert: lipgloss.NewStyle().
			Foreground(alert),
		Danger: lipgloss.NewStyle().
			Foreground(danger),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(user),
		Input: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")),
		OverlayBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
	}
}
