package tui

import (
	"bytes"
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/require"

	"github.com/jask/agenda/internal/database/repository"
	"github.com/jask/agenda/internal/logging"
	"github.com/jask/agenda/internal/service"
)

// TestProgram_Teatest_SearchAddQuit runs the App inside a real tea.Program.
func TestProgram_Teatest_SearchAddQuit(t *testing.T) {
	store := repository.NewMemoryContactRepo(ana)
	ctrl := service.NewContactController(store, logging.Discard())
	app := New(context.Background(), ctrl, logging.Discard(), Options{ToastDuration: 50 * time.Millisecond})

	tm := teatest.NewTestModel(t, app, teatest.WithInitialTermSize(100, 30))

	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("a@x.com"))
	}, teatest.WithDuration(2*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	tm.Type("zzz")
	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("No matching contacts"))
	}, teatest.WithDuration(2*time.Second))
	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	tm.Type("Bruno")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.Type("222")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.Type("bruno@corp.com")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("bruno@corp.com")) && bytes.Contains(b, []byte("2 contacts"))
	}, teatest.WithDuration(2*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	final, ok := tm.FinalModel(t).(*App)
	require.True(t, ok)
	require.Len(t, final.all, 2)
	require.Equal(t, "Bruno", final.all[1].Name)
	require.Equal(t, "", final.search.Value())

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, n)
}
