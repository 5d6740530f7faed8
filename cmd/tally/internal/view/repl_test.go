package view

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/command"
	"github.com/MrJamesThe3rd/tally/internal/export"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/session"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
	txStore "github.com/MrJamesThe3rd/tally/internal/transaction/store"
)

func newModel(t *testing.T) Model {
	t.Helper()

	dir := t.TempDir()
	now := func() time.Time { return time.Date(2025, 3, 16, 9, 0, 0, 0, time.UTC) }
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := transaction.NewService(txStore.New(filepath.Join(dir, "tally.txt"), logger), logger)
	require.NoError(t, svc.Open(context.Background()))

	sess := session.New(svc, command.NewParser(now), export.NewService(dir, now), importer.NewService(), logger)

	return New(sess, "Tally")
}

// run feeds line through the model the way the program would.
func run(t *testing.T, m Model, line string) Model {
	t.Helper()

	m.input.SetValue(line)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	require.Equal(t, replStateBusy, m.state)
	assert.Empty(t, m.input.Value())

	next, _ = m.Update(m.handleCmd(line)())

	return next.(Model)
}

func TestModel_Update(t *testing.T) {
	t.Run("RunsCommandAndShowsResult", func(t *testing.T) {
		m := run(t, newModel(t), "income 500 d/Salary")

		assert.Equal(t, replStateInput, m.state)
		assert.Contains(t, m.entries[len(m.entries)-2], "> income 500 d/Salary")
		assert.Contains(t, m.entries[len(m.entries)-1], "Income added")
		assert.False(t, m.Exited())
	})

	t.Run("AsksBeforeClearing", func(t *testing.T) {
		m := run(t, newModel(t), "clear")

		assert.Equal(t, replStateConfirm, m.state)
		require.NotNil(t, m.pending)
		require.NotNil(t, m.form)
	})

	t.Run("DeclinedConfirmationReportsCancel", func(t *testing.T) {
		m := run(t, newModel(t), "clear")

		next, _ := m.resolve(false)
		m = next.(Model)
		assert.Nil(t, m.form)

		next, _ = m.Update(m.resolveCmd(command.ClearCommand{}, false)())
		m = next.(Model)

		assert.Equal(t, replStateInput, m.state)
		assert.Equal(t, "Clear cancelled.", m.entries[len(m.entries)-1])
	})

	t.Run("ExitQuits", func(t *testing.T) {
		m := newModel(t)
		m.input.SetValue("exit")

		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		m = next.(Model)

		next, cmd := m.Update(m.handleCmd("exit")())
		m = next.(Model)

		assert.True(t, m.Exited())
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})

	t.Run("ResizeFitsTranscript", func(t *testing.T) {
		next, _ := newModel(t).Update(tea.WindowSizeMsg{Width: 100, Height: 40})
		m := next.(Model)

		assert.Equal(t, 98, m.transcript.Width)
		assert.Equal(t, 33, m.transcript.Height)
	})
}
