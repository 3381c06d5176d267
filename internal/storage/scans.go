package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/citescan/citescan/internal/common"
	"github.com/citescan/citescan/internal/model"
)

// SaveCitationScan persists one scan record plus its per-directory results
// in a single transaction. Scans are append-only; the scan's ID is set on
// success.
func (s *SQLiteStorage) SaveCitationScan(ctx context.Context, scan *model.CitationScan) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateScan(scan); err != nil {
		return err
	}

	if scan.CreatedAt.IsZero() {
		scan.CreatedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO citation_scans (
			client_id, total_checked, matches, mismatches, missing, errors,
			health_score, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, scan.ClientID, scan.TotalChecked, scan.Matches, scan.Mismatches,
		scan.Missing, scan.Errors, scan.HealthScore, scan.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert scan: %w", err)
	}

	scanID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get scan ID: %w", err)
	}

	for i, r := range scan.Results {
		details, marshalErr := json.Marshal(r.Details)
		if marshalErr != nil {
			return fmt.Errorf("failed to marshal details for %s: %w", r.Key, marshalErr)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO scan_results (
				scan_id, position, directory_key, display_name, importance,
				status, confidence, name_match, address_match, phone_match,
				details, found_name, found_address, found_phone, listing_url
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, scanID, i, r.Key, r.DisplayName, string(r.Importance),
			string(r.Status), r.Confidence, r.NameMatch, r.AddressMatch, r.PhoneMatch,
			string(details), r.FoundName, r.FoundAddress, r.FoundPhone, r.ListingURL); err != nil {
			return fmt.Errorf("failed to insert result for %s: %w", r.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit scan: %w", err)
	}

	scan.ID = scanID
	return nil
}

// GetLatestScan returns the most recent scan for a client, including its
// per-directory results.
func (s *SQLiteStorage) GetLatestScan(ctx context.Context, clientID string) (*model.CitationScan, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(clientID, "clientID"); err != nil {
		return nil, err
	}

	scan, err := s.scanRow(ctx, `
		SELECT id, client_id, total_checked, matches, mismatches, missing,
		       errors, health_score, created_at
		FROM citation_scans
		WHERE client_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, clientID)
	if err != nil {
		return nil, err
	}

	if err := s.loadResults(ctx, scan); err != nil {
		return nil, err
	}
	return scan, nil
}

// ListScans returns up to limit scans for a client, newest first, without
// per-directory results (aggregates only, for history display).
func (s *SQLiteStorage) ListScans(ctx context.Context, clientID string, limit int) ([]model.CitationScan, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(clientID, "clientID"); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, client_id, total_checked, matches, mismatches, missing,
		       errors, health_score, created_at
		FROM citation_scans
		WHERE client_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, clientID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var scans []model.CitationScan
	for rows.Next() {
		var scan model.CitationScan
		if err := rows.Scan(&scan.ID, &scan.ClientID, &scan.TotalChecked,
			&scan.Matches, &scan.Mismatches, &scan.Missing,
			&scan.Errors, &scan.HealthScore, &scan.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		scans = append(scans, scan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scan rows: %w", err)
	}
	return scans, nil
}

func (s *SQLiteStorage) scanRow(ctx context.Context, query string, args ...any) (*model.CitationScan, error) {
	var scan model.CitationScan
	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&scan.ID, &scan.ClientID, &scan.TotalChecked,
		&scan.Matches, &scan.Mismatches, &scan.Missing,
		&scan.Errors, &scan.HealthScore, &scan.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scan: %w", err)
	}
	return &scan, nil
}

func (s *SQLiteStorage) loadResults(ctx context.Context, scan *model.CitationScan) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT directory_key, display_name, importance, status, confidence,
		       name_match, address_match, phone_match, details,
		       found_name, found_address, found_phone, listing_url
		FROM scan_results
		WHERE scan_id = ?
		ORDER BY position
	`, scan.ID)
	if err != nil {
		return fmt.Errorf("failed to load scan results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var r model.DirectoryResult
		var importance, status, details string
		if err := rows.Scan(&r.Key, &r.DisplayName, &importance, &status,
			&r.Confidence, &r.NameMatch, &r.AddressMatch, &r.PhoneMatch,
			&details, &r.FoundName, &r.FoundAddress, &r.FoundPhone,
			&r.ListingURL); err != nil {
			return fmt.Errorf("failed to scan result row: %w", err)
		}
		r.Importance = model.Importance(importance)
		r.Status = model.MatchStatus(status)
		if details != "" {
			if err := json.Unmarshal([]byte(details), &r.Details); err != nil {
				return fmt.Errorf("failed to unmarshal details: %w", err)
			}
		}
		scan.Results = append(scan.Results, r)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate result rows: %w", err)
	}
	return nil
}
