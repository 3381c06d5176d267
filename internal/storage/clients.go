package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/citescan/citescan/internal/common"
	"github.com/citescan/citescan/internal/model"
)

// SaveClient inserts or updates a canonical identity record.
func (s *SQLiteStorage) SaveClient(ctx context.Context, client *model.CanonicalIdentity) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateClient(client); err != nil {
		return err
	}

	if client.CreatedAt.IsZero() {
		client.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO clients (id, business_name, street, city, state, phone, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			business_name = excluded.business_name,
			street = excluded.street,
			city = excluded.city,
			state = excluded.state,
			phone = excluded.phone
	`, client.ClientID, client.BusinessName, client.Street, client.City, client.State, client.Phone, client.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save client: %w", err)
	}
	return nil
}

// GetClient retrieves a canonical identity by client ID.
func (s *SQLiteStorage) GetClient(ctx context.Context, clientID string) (*model.CanonicalIdentity, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(clientID, "clientID"); err != nil {
		return nil, err
	}

	var c model.CanonicalIdentity
	err := s.db.QueryRowContext(ctx, `
		SELECT id, business_name, street, city, state, phone, created_at
		FROM clients
		WHERE id = ?
	`, clientID).Scan(&c.ClientID, &c.BusinessName, &c.Street, &c.City, &c.State, &c.Phone, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &c, nil
}

// ListClients returns every canonical identity, oldest first.
func (s *SQLiteStorage) ListClients(ctx context.Context) ([]model.CanonicalIdentity, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, business_name, street, city, state, phone, created_at
		FROM clients
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var clients []model.CanonicalIdentity
	for rows.Next() {
		var c model.CanonicalIdentity
		if err := rows.Scan(&c.ClientID, &c.BusinessName, &c.Street, &c.City, &c.State, &c.Phone, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate client rows: %w", err)
	}
	return clients, nil
}
