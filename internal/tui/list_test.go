package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func TestListRowStyleStripesEvenRows(t *testing.T) {
	t.Parallel()

	require.Equal(t, lipgloss.TerminalColor(colorStripe), listRowStyle(0, 0).GetBackground())
	require.Equal(t, lipgloss.TerminalColor(colorStripe), listRowStyle(2, 3).GetBackground())
	require.Equal(t, lipgloss.TerminalColor(lipgloss.NoColor{}), listRowStyle(1, 0).GetBackground())
	require.True(t, listRowStyle(table.HeaderRow, 0).GetBold())
	require.Equal(t, lipgloss.TerminalColor(lipgloss.NoColor{}), listRowStyle(table.HeaderRow, 0).GetBackground())
}

func TestRenderListStripedOutput(t *testing.T) {
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })

	out := RenderList(threeContacts())

	// #F5E6FF as a truecolor background
	const stripe = "48;2;245;230;255"
	rows := map[string]bool{"Ana": true, "Bruno": false, "Carla": true}
	for name, striped := range rows {
		var line string
		for _, l := range strings.Split(out, "\n") {
			if strings.Contains(l, name) {
				line = l
				break
			}
		}
		require.NotEmpty(t, line, name)
		require.Equal(t, striped, strings.Contains(line, stripe), "row %s", name)
	}
	require.NotContains(t, out[:strings.Index(out, "Ana")], stripe, "header is not striped")
}
