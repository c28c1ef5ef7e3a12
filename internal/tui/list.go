package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jask/agenda/internal/database/repository"
)

var (
	listCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	listHeaderStyle = listCellStyle.Bold(true).Foreground(colorHover)
	listStripeStyle = listCellStyle.Background(colorStripe).Foreground(colorInk)
)

// listRowStyle stripes even data rows.
func listRowStyle(row, _ int) lipgloss.Style {
	switch {
	case row == table.HeaderRow:
		return listHeaderStyle
	case row%2 == 0:
		return listStripeStyle
	default:
		return listCellStyle
	}
}

// RenderList prints contacts as a bordered table with the same cells the
// interactive list shows.
func RenderList(list []repository.Contact) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorPrimary)).
		Headers("ID", "NAME", "PHONE", "EMAIL").
		StyleFunc(listRowStyle)
	for _, c := range list {
		t.Row(Cells(c)...)
	}
	return t.String()
}
