package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a fatal
// error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS clients (
					id TEXT PRIMARY KEY,
					business_name TEXT NOT NULL,
					street TEXT,
					city TEXT,
					state TEXT,
					phone TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS directory_health (
					directory_key TEXT PRIMARY KEY,
					display_name TEXT NOT NULL,
					last_success DATETIME,
					last_failure DATETIME,
					consecutive_failures INTEGER NOT NULL DEFAULT 0,
					is_degraded INTEGER NOT NULL DEFAULT 0,
					last_checked_at DATETIME NOT NULL
				)`,

				`CREATE TABLE IF NOT EXISTS citation_scans (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					client_id TEXT NOT NULL REFERENCES clients(id),
					total_checked INTEGER NOT NULL DEFAULT 0,
					matches INTEGER NOT NULL DEFAULT 0,
					mismatches INTEGER NOT NULL DEFAULT 0,
					missing INTEGER NOT NULL DEFAULT 0,
					errors INTEGER NOT NULL DEFAULT 0,
					health_score INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_scans_client_created ON citation_scans(client_id, created_at)`,

				`CREATE TABLE IF NOT EXISTS scan_results (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					scan_id INTEGER NOT NULL REFERENCES citation_scans(id),
					position INTEGER NOT NULL,
					directory_key TEXT NOT NULL,
					display_name TEXT NOT NULL,
					importance TEXT NOT NULL,
					status TEXT NOT NULL,
					confidence INTEGER NOT NULL DEFAULT 0,
					name_match INTEGER NOT NULL DEFAULT 0,
					address_match INTEGER NOT NULL DEFAULT 0,
					phone_match INTEGER NOT NULL DEFAULT 0,
					details TEXT,
					found_name TEXT,
					found_address TEXT,
					found_phone TEXT,
					listing_url TEXT
				)`,
				`CREATE INDEX idx_scan_results_scan ON scan_results(scan_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Remediation task records",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS tasks (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					client_id TEXT NOT NULL,
					directory_key TEXT NOT NULL,
					title TEXT NOT NULL,
					category TEXT NOT NULL,
					priority TEXT NOT NULL,
					source TEXT NOT NULL,
					description TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE UNIQUE INDEX idx_tasks_dedupe ON tasks(client_id, directory_key, title)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate brings the database schema up to ExpectedSchemaVersion.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
