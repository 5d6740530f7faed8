package session_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/command"
	"github.com/MrJamesThe3rd/tally/internal/export"
	"github.com/MrJamesThe3rd/tally/internal/session"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type stubExporter struct{}

func (stubExporter) Export(*transaction.Ledger, export.Format) (string, error) {
	return "exports/out.csv", nil
}

func newSession(t *testing.T, exporter command.Exporter) (*session.Session, *transaction.MockRepository, *transaction.Ledger) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := transaction.NewMockRepository(ctrl)
	ledger := transaction.NewLedger()

	repo.EXPECT().Load(gomock.Any()).Return(ledger, nil)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := transaction.NewService(repo, logger)
	require.NoError(t, svc.Open(context.Background()))

	parser := command.NewParser(func() time.Time { return time.Date(2025, 3, 16, 9, 0, 0, 0, time.UTC) })

	return session.New(svc, parser, exporter, nil, logger), repo, ledger
}

func TestSession_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("SavesAfterMutation", func(t *testing.T) {
		s, repo, ledger := newSession(t, stubExporter{})
		repo.EXPECT().Save(gomock.Any(), ledger).Return(nil).Times(1)

		out := s.Handle(ctx, "income 500 d/Salary")
		assert.Contains(t, out.Message, "Income added")
		assert.False(t, out.Exit)
		assert.Nil(t, out.Pending)
		assert.Equal(t, 1, ledger.Len())
	})

	t.Run("QueriesDoNotSave", func(t *testing.T) {
		s, _, _ := newSession(t, stubExporter{})

		assert.Equal(t, "No transactions recorded.", s.Handle(ctx, "list").Message)
		assert.Contains(t, s.Handle(ctx, "export").Message, "exports/out.csv")
		assert.Contains(t, s.Handle(ctx, "bogus").Message, "Unknown command")
	})

	t.Run("SaveFailureIsReported", func(t *testing.T) {
		s, repo, ledger := newSession(t, stubExporter{})
		repo.EXPECT().Save(gomock.Any(), ledger).Return(errors.New("read-only file system"))

		out := s.Handle(ctx, "expense 5 d/Tea")
		assert.Contains(t, out.Message, "Expense added")
		assert.Contains(t, out.Message, "could not be saved")
		assert.Contains(t, out.Message, "read-only file system")
		assert.Equal(t, 1, ledger.Len())
	})

	t.Run("ExitSaves", func(t *testing.T) {
		s, repo, ledger := newSession(t, stubExporter{})
		repo.EXPECT().Save(gomock.Any(), ledger).Return(nil)

		out := s.Handle(ctx, "exit")
		assert.True(t, out.Exit)
		assert.Equal(t, "Goodbye!", out.Message)
	})

	t.Run("PanicIsRecovered", func(t *testing.T) {
		s, _, _ := newSession(t, nil)

		out := s.Handle(ctx, "export")
		assert.Contains(t, out.Message, "An error occurred")
		assert.False(t, out.Exit)

		assert.Equal(t, "No transactions recorded.", s.Handle(ctx, "list").Message)
	})
}

func TestSession_Confirmation(t *testing.T) {
	ctx := context.Background()

	t.Run("DuplicateDeclined", func(t *testing.T) {
		s, repo, ledger := newSession(t, stubExporter{})
		repo.EXPECT().Save(gomock.Any(), ledger).Return(nil).Times(1)

		s.Handle(ctx, "expense 4.50 d/Coffee")

		out := s.Handle(ctx, "expense 4.50 d/Coffee")
		require.NotNil(t, out.Pending)
		assert.Contains(t, out.Prompt, "Add it anyway?")
		assert.Empty(t, out.Message)

		out = s.Resolve(ctx, out.Pending, false)
		assert.Equal(t, "Transaction cancelled by user.", out.Message)
		assert.Equal(t, 1, ledger.Len())
	})

	t.Run("DuplicateAccepted", func(t *testing.T) {
		s, repo, ledger := newSession(t, stubExporter{})
		repo.EXPECT().Save(gomock.Any(), ledger).Return(nil).Times(2)

		s.Handle(ctx, "expense 4.50 d/Coffee")

		out := s.Handle(ctx, "expense 4.50 d/Coffee")
		require.NotNil(t, out.Pending)

		out = s.Resolve(ctx, out.Pending, true)
		assert.Contains(t, out.Message, "Expense added")
		assert.Equal(t, 2, ledger.Len())
	})

	t.Run("ClearAccepted", func(t *testing.T) {
		s, repo, ledger := newSession(t, stubExporter{})
		repo.EXPECT().Save(gomock.Any(), ledger).Return(nil).Times(3)

		s.Handle(ctx, "income 1 d/Tip")
		s.Handle(ctx, "setbudget 100")

		out := s.Handle(ctx, "clear")
		require.NotNil(t, out.Pending)

		out = s.Resolve(ctx, out.Pending, true)
		assert.Equal(t, "All data cleared.", out.Message)
		assert.Equal(t, 0, ledger.Len())
		assert.Empty(t, ledger.Budgets())
	})

	t.Run("ClearConfirmTokenSkipsQuestion", func(t *testing.T) {
		s, repo, ledger := newSession(t, stubExporter{})
		repo.EXPECT().Save(gomock.Any(), ledger).Return(nil)

		out := s.Handle(ctx, "clear confirm")
		assert.Nil(t, out.Pending)
		assert.Equal(t, "All data cleared.", out.Message)
	})
}

func TestSession_Close(t *testing.T) {
	s, repo, ledger := newSession(t, stubExporter{})
	repo.EXPECT().Save(gomock.Any(), ledger).Return(nil)

	assert.NoError(t, s.Close(context.Background()))
}
