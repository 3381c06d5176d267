// Package engine implements the citation scan orchestrator: bounded-
// concurrency directory fan-out, weighted scoring, and remediation task
// generation.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/citescan/citescan/internal/common"
	"github.com/citescan/citescan/internal/match"
	"github.com/citescan/citescan/internal/model"
	"github.com/citescan/citescan/internal/registry"
	"github.com/citescan/citescan/internal/service"
)

// ScanEngine orchestrates one citation scan per invocation. Multiple scans
// for different clients may run concurrently; the engine itself holds no
// per-scan state.
type ScanEngine struct {
	store       Store
	scraper     Scraper
	health      HealthSource
	tasks       service.TaskCreator
	providers   map[string]service.ListingProvider
	concurrency int
}

// Config holds configuration options for the scan engine.
type Config struct {
	// Concurrency caps simultaneous outbound scrapes so a scan does not
	// look like abusive traffic to the directories it checks.
	Concurrency int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Concurrency: 4}
}

// New creates a scan engine with the default configuration.
func New(store Store, scraper Scraper, health HealthSource, tasks service.TaskCreator) *ScanEngine {
	return NewWithConfig(store, scraper, health, tasks, DefaultConfig())
}

// NewWithConfig creates a scan engine with custom configuration.
func NewWithConfig(store Store, scraper Scraper, health HealthSource, tasks service.TaskCreator, cfg Config) *ScanEngine {
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &ScanEngine{
		store:       store,
		scraper:     scraper,
		health:      health,
		tasks:       tasks,
		providers:   make(map[string]service.ListingProvider),
		concurrency: concurrency,
	}
}

// RegisterProvider attaches a listing provider for one external-api
// directory key. Directories with no registered provider simply report as
// not listed.
func (e *ScanEngine) RegisterProvider(key string, provider service.ListingProvider) {
	e.providers[key] = provider
}

// RunScan verifies one client's NAP across every active directory and
// persists the resulting scan record.
//
// Only a missing canonical identity (or a persistence failure) is fatal.
// Every per-directory failure is absorbed into that directory's result row.
func (e *ScanEngine) RunScan(ctx context.Context, clientID string) (*model.CitationScan, error) {
	identity, err := e.store.GetClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrClientNotFound) {
			return nil, fmt.Errorf("%w: %s", common.ErrClientNotFound, clientID)
		}
		return nil, fmt.Errorf("failed to load client %s: %w", clientID, err)
	}

	// Point-in-time snapshot: a directory flipping to degraded mid-scan
	// must not invalidate scrapes already in flight.
	active, err := e.health.ActiveDirectoryKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to determine active directories: %w", err)
	}

	var dirs []model.DirectoryConfig
	for _, d := range registry.All() {
		if _, ok := active[d.Key]; ok {
			dirs = append(dirs, d)
		}
	}
	if len(dirs) == 0 {
		return nil, fmt.Errorf("%w: every directory is currently degraded", common.ErrNoDirectories)
	}

	slog.Info("Starting citation scan",
		"client_id", clientID,
		"business", identity.BusinessName,
		"directories", len(dirs))

	results, scrapeErrs := e.scanDirectories(ctx, *identity, dirs)

	scan := &model.CitationScan{
		ClientID:     clientID,
		Results:      results,
		TotalChecked: len(results),
		HealthScore:  healthScore(results),
		Errors:       scrapeErrs,
	}
	for _, r := range results {
		switch r.Status {
		case model.StatusMatch:
			scan.Matches++
		case model.StatusPartial, model.StatusMismatch:
			scan.Mismatches++
		case model.StatusMissing:
			scan.Missing++
		}
	}

	if err := e.store.SaveCitationScan(ctx, scan); err != nil {
		return nil, fmt.Errorf("failed to save citation scan: %w", err)
	}

	e.emitTasks(ctx, *identity, results)

	slog.Info("Citation scan complete",
		"client_id", clientID,
		"health_score", scan.HealthScore,
		"matches", scan.Matches,
		"mismatches", scan.Mismatches,
		"missing", scan.Missing,
		"errors", scan.Errors)

	return scan, nil
}

// scanDirectories fans out scrapes in fixed-size batches, awaiting each
// batch fully before starting the next. Results are written by index so the
// output keeps registry order regardless of completion order. The second
// return value counts directories whose scrape reported a technical failure.
func (e *ScanEngine) scanDirectories(ctx context.Context, identity model.CanonicalIdentity, dirs []model.DirectoryConfig) ([]model.DirectoryResult, int) {
	results := make([]model.DirectoryResult, len(dirs))
	failed := make([]bool, len(dirs))
	params := identity.SearchParams()

	for start := 0; start < len(dirs); start += e.concurrency {
		end := start + e.concurrency
		if end > len(dirs) {
			end = len(dirs)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], failed[i] = e.scanOne(ctx, identity, params, dirs[i])
			}(i)
		}
		wg.Wait()
	}

	scrapeErrs := 0
	for _, f := range failed {
		if f {
			scrapeErrs++
		}
	}
	return results, scrapeErrs
}

func (e *ScanEngine) scanOne(ctx context.Context, identity model.CanonicalIdentity, params model.SearchParams, dir model.DirectoryConfig) (model.DirectoryResult, bool) {
	var scraped model.ScrapedNAP
	var scrapeErr error

	if dir.Strategy == model.StrategyExternalAPI {
		if provider, ok := e.providers[dir.Key]; ok {
			scraped, scrapeErr = provider.Lookup(ctx, params)
		}
	} else {
		scraped, scrapeErr = e.scraper.Scrape(ctx, dir, params)
	}
	if scrapeErr != nil {
		slog.Debug("Directory scrape failed",
			"directory", dir.Key,
			"error", scrapeErr)
	}

	comparison := match.Compare(identity, scraped)

	return model.DirectoryResult{
		Key:          dir.Key,
		DisplayName:  dir.DisplayName,
		Importance:   dir.Importance,
		Status:       comparison.Status,
		Confidence:   comparison.Confidence,
		NameMatch:    comparison.NameMatch,
		AddressMatch: comparison.AddressMatch,
		PhoneMatch:   comparison.PhoneMatch,
		Details:      comparison.Details,
		FoundName:    scraped.Name,
		FoundAddress: scraped.Address,
		FoundPhone:   scraped.Phone,
		ListingURL:   scraped.ListingURL,
	}, scrapeErr != nil
}

// healthScore computes the 0-100 weighted match proportion. Truly-missing
// results (confidence 0) are neutral: a business that never claimed a
// directory is not penalized for it.
func healthScore(results []model.DirectoryResult) int {
	var numerator, denominator float64

	for _, r := range results {
		if r.Status == model.StatusMissing && r.Confidence == 0 {
			continue
		}
		weight := float64(r.Importance.Weight())
		denominator += weight
		switch r.Status {
		case model.StatusMatch:
			numerator += weight
		case model.StatusPartial:
			numerator += weight * 0.5
		}
	}

	if denominator == 0 {
		return 100
	}
	return int(math.Round(100 * numerator / denominator))
}
