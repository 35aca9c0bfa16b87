package lipgloss

import cl "github.com/charmbracelet/lipgloss"

// Shared terminal styles used across commands.
var (
	Red    = cl.NewStyle().Foreground(cl.Color("#FF5555"))
	Green  = cl.NewStyle().Foreground(cl.Color("#50FA7B"))
	Yellow = cl.NewStyle().Foreground(cl.Color("#F1FA8C"))
	Info   = cl.NewStyle().Foreground(cl.Color("#8BE9FD"))
	Gray   = cl.NewStyle().Foreground(cl.Color("#6272A4"))

	BoxStyle = cl.NewStyle().
			Border(cl.RoundedBorder()).
			BorderForeground(cl.Color("#6272A4")).
			Padding(0, 1)
)
