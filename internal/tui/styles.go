package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary lipgloss.Color = "#BA68C8" // lilac
	colorHover   lipgloss.Color = "#AB47BC"
	colorAccent  lipgloss.Color = "#FFB6C1" // pastel pink
	colorBlush   lipgloss.Color = "#F8C2FF"
	colorStripe  lipgloss.Color = "#F5E6FF" // even rows
	colorInk     lipgloss.Color = "#3C2A4D"
	colorText    lipgloss.Color = "#FFFFFF"
	colorMuted   lipgloss.Color = "#9E8AA8"
	colorToastBg lipgloss.Color = "#323232"
	colorSuccess lipgloss.Color = "#A6E3A1"
	colorWarn    lipgloss.Color = "#F9E2AF"
	colorError   lipgloss.Color = "#FF6961"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Background(colorPrimary).
			Padding(0, 2)
	searchStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1)
	countStyle = lipgloss.NewStyle().Foreground(colorMuted)
	emptyStyle = lipgloss.NewStyle().Foreground(colorMuted).Italic(true).Padding(1, 2)
	formStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorHover).
			Padding(0, 1)
	formTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorHover)
	formHintStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	labelStyle     = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	toastBase      = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Background(colorToastBg).
			Padding(0, 2)
)

func toastStyle(k toastKind) lipgloss.Style {
	switch k {
	case toastSuccess:
		return toastBase.Foreground(colorSuccess)
	case toastWarn:
		return toastBase.Foreground(colorWarn)
	case toastError:
		return toastBase.Foreground(colorError)
	default:
		return toastBase.Foreground(colorBlush)
	}
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorPrimary).
		BorderBottom(true).
		Bold(true).
		Foreground(colorHover)
	s.Selected = s.Selected.
		Foreground(colorText).
		Background(colorPrimary).
		Bold(false)
	return s
}
