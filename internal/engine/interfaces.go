package engine

import (
	"context"

	"github.com/citescan/citescan/internal/model"
)

// Store is the slice of the persistence layer the scan engine needs.
type Store interface {
	GetClient(ctx context.Context, clientID string) (*model.CanonicalIdentity, error)
	SaveCitationScan(ctx context.Context, scan *model.CitationScan) error
}

// Scraper fetches one directory listing. Satisfied by *scrape.Scraper.
// The error is advisory: the ScrapedNAP is always usable and an error never
// aborts a scan.
type Scraper interface {
	Scrape(ctx context.Context, cfg model.DirectoryConfig, params model.SearchParams) (model.ScrapedNAP, error)
}

// HealthSource reports which directories are currently worth scanning.
// Satisfied by *health.Monitor.
type HealthSource interface {
	ActiveDirectoryKeys(ctx context.Context) (map[string]struct{}, error)
}
