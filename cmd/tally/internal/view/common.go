package view

import (
	"context"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const opTimeout = 30 * time.Second

// OpCtx bounds a single ledger operation started from the UI.
func OpCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

type CommonModel struct {
	Width  int
	Height int
}

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	echoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
	frameStyle  = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
)
