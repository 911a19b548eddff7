package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))

	labelStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Width(18)
	focusedLabelStyle = labelStyle.Copy().Foreground(lipgloss.Color("13")).Bold(true)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Padding(0, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8"))
	focusedButtonStyle = buttonStyle.Copy().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("6")).
				BorderForeground(lipgloss.Color("6"))

	logBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("4")).
			Padding(0, 1)

	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	statusBusyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	statusErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)
