package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tally/internal/command"
	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/export"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/session"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
	txStore "github.com/MrJamesThe3rd/tally/internal/transaction/store"
)

type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	session *session.Session
	logFile *os.File
}

// bootstrap loads configuration, opens the log file and the ledger, and wires the session.
func bootstrap(ctx context.Context) (*app, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logFile, logger, err := openLogger(cfg)
	if err != nil {
		return nil, err
	}

	txSvc := transaction.NewService(txStore.New(cfg.Data.File, logger), logger)
	if err := txSvc.Open(ctx); err != nil {
		logger.Error("failed to open ledger", "path", cfg.Data.File, "error", err)
		logFile.Close()

		return nil, err
	}

	sess := session.New(
		txSvc,
		command.NewParser(time.Now),
		export.NewService(cfg.Export.Dir, time.Now),
		importer.NewService(),
		logger,
	)

	return &app{cfg: cfg, logger: logger, session: sess, logFile: logFile}, nil
}

// openLogger sends structured logs to the configured file; the terminal belongs to the user.
func openLogger(cfg *config.Config) (*os.File, *slog.Logger, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, nil, err
	}

	if dir := filepath.Dir(cfg.Log.File); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
	}

	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	handler := log.NewWithOptions(f, log.Options{
		Level:           log.Level(level),
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          cfg.App.Name,
	})

	return f, slog.New(handler).With("session", uuid.NewString()), nil
}

func (a *app) close() {
	a.logFile.Close()
}
