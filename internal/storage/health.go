package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/citescan/citescan/internal/common"
	"github.com/citescan/citescan/internal/model"
)

// GetDirectoryHealth retrieves the health record for one directory key.
// Returns common.ErrNotFound when the directory has never been probed.
func (s *SQLiteStorage) GetDirectoryHealth(ctx context.Context, key string) (*model.DirectoryHealth, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(key, "key"); err != nil {
		return nil, err
	}

	var h model.DirectoryHealth
	var lastSuccess, lastFailure sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT directory_key, display_name, last_success, last_failure,
		       consecutive_failures, is_degraded, last_checked_at
		FROM directory_health
		WHERE directory_key = ?
	`, key).Scan(&h.Key, &h.DisplayName, &lastSuccess, &lastFailure,
		&h.ConsecutiveFailures, &h.IsDegraded, &h.LastCheckedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get directory health: %w", err)
	}

	if lastSuccess.Valid {
		h.LastSuccess = &lastSuccess.Time
	}
	if lastFailure.Valid {
		h.LastFailure = &lastFailure.Time
	}
	return &h, nil
}

// SaveDirectoryHealth upserts one directory's health record.
func (s *SQLiteStorage) SaveDirectoryHealth(ctx context.Context, health *model.DirectoryHealth) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateHealth(health); err != nil {
		return err
	}

	var lastSuccess, lastFailure sql.NullTime
	if health.LastSuccess != nil {
		lastSuccess = sql.NullTime{Time: *health.LastSuccess, Valid: true}
	}
	if health.LastFailure != nil {
		lastFailure = sql.NullTime{Time: *health.LastFailure, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO directory_health (
			directory_key, display_name, last_success, last_failure,
			consecutive_failures, is_degraded, last_checked_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(directory_key) DO UPDATE SET
			display_name = excluded.display_name,
			last_success = excluded.last_success,
			last_failure = excluded.last_failure,
			consecutive_failures = excluded.consecutive_failures,
			is_degraded = excluded.is_degraded,
			last_checked_at = excluded.last_checked_at
	`, health.Key, health.DisplayName, lastSuccess, lastFailure,
		health.ConsecutiveFailures, health.IsDegraded, health.LastCheckedAt)
	if err != nil {
		return fmt.Errorf("failed to save directory health: %w", err)
	}
	return nil
}

// ListDirectoryHealth returns every health record ordered by directory key.
func (s *SQLiteStorage) ListDirectoryHealth(ctx context.Context) ([]model.DirectoryHealth, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT directory_key, display_name, last_success, last_failure,
		       consecutive_failures, is_degraded, last_checked_at
		FROM directory_health
		ORDER BY directory_key
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory health: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.DirectoryHealth
	for rows.Next() {
		var h model.DirectoryHealth
		var lastSuccess, lastFailure sql.NullTime
		if err := rows.Scan(&h.Key, &h.DisplayName, &lastSuccess, &lastFailure,
			&h.ConsecutiveFailures, &h.IsDegraded, &h.LastCheckedAt); err != nil {
			return nil, fmt.Errorf("failed to scan health row: %w", err)
		}
		if lastSuccess.Valid {
			h.LastSuccess = &lastSuccess.Time
		}
		if lastFailure.Valid {
			h.LastFailure = &lastFailure.Time
		}
		records = append(records, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate health rows: %w", err)
	}
	return records, nil
}
