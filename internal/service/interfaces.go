// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/citescan/citescan/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Client identity operations
	SaveClient(ctx context.Context, client *model.CanonicalIdentity) error
	GetClient(ctx context.Context, clientID string) (*model.CanonicalIdentity, error)
	ListClients(ctx context.Context) ([]model.CanonicalIdentity, error)

	// Directory health operations
	GetDirectoryHealth(ctx context.Context, key string) (*model.DirectoryHealth, error)
	SaveDirectoryHealth(ctx context.Context, health *model.DirectoryHealth) error
	ListDirectoryHealth(ctx context.Context) ([]model.DirectoryHealth, error)

	// Scan record operations (append-only audit trail)
	SaveCitationScan(ctx context.Context, scan *model.CitationScan) error
	GetLatestScan(ctx context.Context, clientID string) (*model.CitationScan, error)
	ListScans(ctx context.Context, clientID string, limit int) ([]model.CitationScan, error)

	// Remediation task queries
	ListTasks(ctx context.Context, clientID string) ([]model.TaskRequest, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// TaskCreator is the task-management collaborator that receives remediation
// work items. Creation is fire-and-forget and duplicate-tolerant: the engine
// logs and swallows failures.
type TaskCreator interface {
	CreateTask(ctx context.Context, task *model.TaskRequest) error
}

// ListingProvider serves listing data for directories whose search strategy
// is an external bulk-data API rather than per-directory scraping.
type ListingProvider interface {
	Lookup(ctx context.Context, params model.SearchParams) (model.ScrapedNAP, error)
}
