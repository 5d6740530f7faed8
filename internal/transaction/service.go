package transaction

import (
	"context"
	"fmt"
	"log/slog"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	Load(ctx context.Context) (*Ledger, error)
	Save(ctx context.Context, ledger *Ledger) error
}

// Service owns the session ledger and keeps it in sync with its Repository.
type Service struct {
	repo   Repository
	logger *slog.Logger
	ledger *Ledger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		ledger: NewLedger(),
	}
}

// Open replaces the in-memory ledger with the one stored in the repository.
func (s *Service) Open(ctx context.Context) error {
	ledger, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading ledger: %w", err)
	}

	s.ledger = ledger
	s.logger.Info("ledger loaded", "transactions", ledger.Len())

	return nil
}

// Ledger returns the ledger of the session.
func (s *Service) Ledger() *Ledger {
	return s.ledger
}

// Save writes the ledger back to the repository.
func (s *Service) Save(ctx context.Context) error {
	if err := s.repo.Save(ctx, s.ledger); err != nil {
		s.logger.Error("failed to save ledger", "error", err)
		return fmt.Errorf("saving ledger: %w", err)
	}

	s.logger.Debug("ledger saved", "transactions", s.ledger.Len())

	return nil
}
