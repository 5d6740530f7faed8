// Package session drives one user's conversation with the ledger: each input line is parsed,
// confirmed when the command asks for it, executed, and persisted when it changed something.
package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/tally/internal/command"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// Outcome is what the caller shows after handling a line.
type Outcome struct {
	Message  string
	Markdown bool
	// Exit is set once the session should stop reading input.
	Exit bool
	// Pending holds a command waiting for a yes/no answer; pass it to Resolve with the answer.
	Pending command.Confirmable
	// Prompt is the question to ask when Pending is set.
	Prompt string
}

type Session struct {
	ledger *transaction.Service
	parser *command.Parser
	env    command.Env
	logger *slog.Logger
}

// New builds a Session over an opened ledger service.
func New(ledger *transaction.Service, parser *command.Parser, exporter command.Exporter, importer command.Importer, logger *slog.Logger) *Session {
	return &Session{
		ledger: ledger,
		parser: parser,
		env: command.Env{
			Ledger:   ledger.Ledger(),
			Exporter: exporter,
			Importer: importer,
		},
		logger: logger,
	}
}

// Handle parses and runs one input line. When the command needs confirmation nothing runs yet and the
// returned Outcome carries the question.
func (s *Session) Handle(ctx context.Context, line string) Outcome {
	cmd := s.parser.Parse(line)

	if c, ok := cmd.(command.Confirmable); ok {
		if prompt, needed := c.Confirmation(s.env.Ledger); needed {
			s.logger.DebugContext(ctx, "awaiting confirmation", "command", fmt.Sprintf("%T", cmd))
			return Outcome{Pending: c, Prompt: prompt}
		}
	}

	return s.execute(ctx, cmd)
}

// Resolve finishes a command returned as Pending by Handle.
func (s *Session) Resolve(ctx context.Context, pending command.Confirmable, yes bool) Outcome {
	if !yes {
		return Outcome{Message: pending.OnDecline().Message}
	}

	return s.execute(ctx, pending.OnConfirm())
}

// Close persists the ledger. Call it when input ends without an exit command.
func (s *Session) Close(ctx context.Context) error {
	return s.ledger.Save(ctx)
}

func (s *Session) execute(ctx context.Context, cmd command.Command) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "command failed", "command", fmt.Sprintf("%T", cmd), "panic", r)
			out = Outcome{Message: fmt.Sprintf("An error occurred: %v", r)}
		}
	}()

	res := cmd.Execute(s.env)
	out = Outcome{Message: res.Message, Markdown: res.Markdown, Exit: cmd.IsExit()}

	s.logger.DebugContext(ctx, "command executed", "command", fmt.Sprintf("%T", cmd), "changed", res.Changed)

	if res.Changed || cmd.IsExit() {
		if err := s.ledger.Save(ctx); err != nil {
			out.Message += fmt.Sprintf("\nWarning: your changes could not be saved: %v", err)
		}
	}

	return out
}
