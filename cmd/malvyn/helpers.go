package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/marvus-creator/Malvyn/internal/common"
	"github.com/marvus-creator/Malvyn/internal/config"
	"github.com/marvus-creator/Malvyn/internal/ledger"
	"github.com/marvus-creator/Malvyn/internal/service"
	"github.com/marvus-creator/Malvyn/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// openLedger opens storage and loads the ledger on top of it. The caller
// owns the returned storage and must Close it.
func openLedger(ctx context.Context) (*ledger.Store, service.Storage, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, err
	}

	l, err := ledger.Open(ctx, store)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	return l, store, nil
}

// requireUser ensures someone is signed in before a data command runs.
func requireUser(l *ledger.Store) error {
	if l.CurrentUser() == "" {
		return common.NewUserError(
			"You are not signed in. Run 'malvyn login' or 'malvyn register' first.",
			common.ErrNotSignedIn)
	}
	return nil
}
