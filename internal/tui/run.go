package tui

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive dashboard and blocks until the user quits.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Store == nil {
		return fmt.Errorf("ledger store is required")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	program := tea.NewProgram(
		newModel(ctx, cfg),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}
