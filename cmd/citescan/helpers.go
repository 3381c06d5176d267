package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/citescan/citescan/internal/config"
	"github.com/citescan/citescan/internal/storage"
)

// initStorage opens the SQLite database with proper path expansion and
// runs any pending migrations.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/citescan/citescan.db"
	}

	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}
