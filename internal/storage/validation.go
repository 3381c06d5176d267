package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/citescan/citescan/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrInvalidClient = errors.New("invalid client")
	ErrInvalidHealth = errors.New("invalid directory health")
	ErrInvalidScan   = errors.New("invalid citation scan")
	ErrInvalidTask   = errors.New("invalid task request")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateClient(client *model.CanonicalIdentity) error {
	if client == nil {
		return fmt.Errorf("%w: client", ErrNilParameter)
	}
	if client.ClientID == "" {
		return fmt.Errorf("%w: missing client ID", ErrInvalidClient)
	}
	if client.BusinessName == "" {
		return fmt.Errorf("%w: missing business name", ErrInvalidClient)
	}
	return nil
}

func validateHealth(health *model.DirectoryHealth) error {
	if health == nil {
		return fmt.Errorf("%w: health", ErrNilParameter)
	}
	if health.Key == "" {
		return fmt.Errorf("%w: missing directory key", ErrInvalidHealth)
	}
	if health.ConsecutiveFailures < 0 {
		return fmt.Errorf("%w: negative failure count", ErrInvalidHealth)
	}
	return nil
}

func validateScan(scan *model.CitationScan) error {
	if scan == nil {
		return fmt.Errorf("%w: scan", ErrNilParameter)
	}
	if scan.ClientID == "" {
		return fmt.Errorf("%w: missing client ID", ErrInvalidScan)
	}
	if scan.HealthScore < 0 || scan.HealthScore > 100 {
		return fmt.Errorf("%w: health score %d out of range", ErrInvalidScan, scan.HealthScore)
	}
	return nil
}

func validateTask(task *model.TaskRequest) error {
	if task == nil {
		return fmt.Errorf("%w: task", ErrNilParameter)
	}
	if task.ClientID == "" {
		return fmt.Errorf("%w: missing client ID", ErrInvalidTask)
	}
	if task.Title == "" {
		return fmt.Errorf("%w: missing title", ErrInvalidTask)
	}
	return nil
}
