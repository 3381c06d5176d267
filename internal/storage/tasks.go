package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/citescan/citescan/internal/common"
	"github.com/citescan/citescan/internal/model"
	"github.com/mattn/go-sqlite3"
)

// CreateTask records one remediation task request. Inserting a task that
// already exists for the same client, directory, and title returns
// common.ErrDuplicateEntry; callers treat that as benign.
func (s *SQLiteStorage) CreateTask(ctx context.Context, task *model.TaskRequest) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTask(task); err != nil {
		return err
	}

	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (client_id, directory_key, title, category, priority, source, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, task.ClientID, task.DirectoryKey, task.Title, task.Category,
		string(task.Priority), task.Source, task.Description, task.CreatedAt)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return fmt.Errorf("%w: task %q for %s", common.ErrDuplicateEntry, task.Title, task.ClientID)
		}
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// ListTasks returns every remediation task recorded for a client, newest
// first.
func (s *SQLiteStorage) ListTasks(ctx context.Context, clientID string) ([]model.TaskRequest, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(clientID, "clientID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT client_id, directory_key, title, category, priority, source, description, created_at
		FROM tasks
		WHERE client_id = ?
		ORDER BY created_at DESC, id DESC
	`, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []model.TaskRequest
	for rows.Next() {
		var task model.TaskRequest
		var priority string
		if err := rows.Scan(&task.ClientID, &task.DirectoryKey, &task.Title,
			&task.Category, &priority, &task.Source, &task.Description,
			&task.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		task.Priority = model.TaskPriority(priority)
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate task rows: %w", err)
	}
	return tasks, nil
}
