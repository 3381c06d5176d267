// Package health tracks the reliability of directory adapters.
//
// Selector-based scraping breaks silently when a directory redesigns its
// markup. The monitor probes each adapter with a known-good business and
// flips adapters into a degraded state after consecutive failures, so broken
// adapters are excluded from client scans instead of poisoning health scores
// with false negatives.
package health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/citescan/citescan/internal/common"
	"github.com/citescan/citescan/internal/model"
	"github.com/citescan/citescan/internal/registry"
)

// DegradationThreshold is how many consecutive probe failures flip an
// adapter to degraded. A single success recovers it immediately; there is no
// probation period.
const DegradationThreshold = 2

// probeParams is the known-good probe case: a business with broad, stable
// directory presence.
var probeParams = model.SearchParams{
	Business: "McDonald's",
	City:     "Los Angeles",
	State:    "CA",
}

// Store is the slice of the persistence layer the monitor needs.
type Store interface {
	GetDirectoryHealth(ctx context.Context, key string) (*model.DirectoryHealth, error)
	SaveDirectoryHealth(ctx context.Context, health *model.DirectoryHealth) error
	ListDirectoryHealth(ctx context.Context) ([]model.DirectoryHealth, error)
}

// Scraper fetches one directory listing. Satisfied by *scrape.Scraper.
type Scraper interface {
	Scrape(ctx context.Context, cfg model.DirectoryConfig, params model.SearchParams) (model.ScrapedNAP, error)
}

// ProbeReport summarizes one probe cycle.
type ProbeReport struct {
	Degraded  []string
	Recovered []string
	Checked   int
	Passed    int
	Failed    int
}

// Monitor is the per-directory circuit breaker. The probe cadence is
// external; the monitor itself is purely reactive.
type Monitor struct {
	store   Store
	scraper Scraper
	mu      sync.Mutex
	now     func() time.Time
}

// New creates a health monitor.
func New(store Store, scraper Scraper) *Monitor {
	return &Monitor{
		store:   store,
		scraper: scraper,
		now:     time.Now,
	}
}

// RunProbeCycle probes every url-template directory once and updates its
// health record. Directories served by an external bulk-data API are
// skipped: their reliability is governed by that API's SLA, not by this
// monitor. The optional progress callback fires before each probe.
//
// Cycles are serialized so consecutive-failure counters never race.
func (m *Monitor) RunProbeCycle(ctx context.Context, progress func(key string)) (*ProbeReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	report := &ProbeReport{}

	for _, dir := range registry.All() {
		if dir.Strategy == model.StrategyExternalAPI {
			continue
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if progress != nil {
			progress(dir.Key)
		}
		report.Checked++

		scraped, scrapeErr := m.scraper.Scrape(ctx, dir, probeParams)
		// Any extracted name or phone counts as a pass; the probe checks
		// that the adapter still works, not that the data matches.
		passed := scraped.Name != "" || scraped.Phone != ""

		if passed {
			report.Passed++
		} else {
			report.Failed++
			slog.Debug("Directory probe failed",
				"directory", dir.Key,
				"error", scrapeErr)
		}

		if err := m.record(ctx, dir, passed, report); err != nil {
			return report, err
		}
	}

	slog.Info("Probe cycle complete",
		"checked", report.Checked,
		"passed", report.Passed,
		"failed", report.Failed,
		"degraded", report.Degraded,
		"recovered", report.Recovered)

	return report, nil
}

// record applies one probe outcome to a directory's health row, creating the
// row lazily on first contact.
func (m *Monitor) record(ctx context.Context, dir model.DirectoryConfig, passed bool, report *ProbeReport) error {
	existing, err := m.store.GetDirectoryHealth(ctx, dir.Key)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("failed to load health for %s: %w", dir.Key, err)
	}

	now := m.now()
	h := &model.DirectoryHealth{
		Key:           dir.Key,
		DisplayName:   dir.DisplayName,
		LastCheckedAt: now,
	}
	if existing != nil {
		h.LastSuccess = existing.LastSuccess
		h.LastFailure = existing.LastFailure
		h.ConsecutiveFailures = existing.ConsecutiveFailures
		h.IsDegraded = existing.IsDegraded
	}

	if passed {
		wasDegraded := h.IsDegraded
		h.LastSuccess = &now
		h.ConsecutiveFailures = 0
		h.IsDegraded = false
		if wasDegraded {
			report.Recovered = append(report.Recovered, dir.Key)
			slog.Info("Directory adapter recovered", "directory", dir.Key)
		}
	} else {
		h.LastFailure = &now
		h.ConsecutiveFailures++
		nowDegraded := h.ConsecutiveFailures >= DegradationThreshold
		if nowDegraded && !h.IsDegraded {
			report.Degraded = append(report.Degraded, dir.Key)
			slog.Warn("Directory adapter degraded",
				"directory", dir.Key,
				"consecutive_failures", h.ConsecutiveFailures)
		}
		h.IsDegraded = nowDegraded
	}

	if err := m.store.SaveDirectoryHealth(ctx, h); err != nil {
		return fmt.Errorf("failed to save health for %s: %w", dir.Key, err)
	}
	return nil
}

// ActiveDirectoryKeys returns the keys of every directory currently
// considered healthy. Directories with no health record yet are active:
// with no history to distrust we prefer a wasted scan attempt over never
// scanning (default-open bootstrap).
func (m *Monitor) ActiveDirectoryKeys(ctx context.Context) (map[string]struct{}, error) {
	rows, err := m.store.ListDirectoryHealth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory health: %w", err)
	}

	degraded := make(map[string]struct{})
	for _, h := range rows {
		if h.IsDegraded {
			degraded[h.Key] = struct{}{}
		}
	}

	active := make(map[string]struct{})
	for _, key := range registry.Keys() {
		if _, bad := degraded[key]; !bad {
			active[key] = struct{}{}
		}
	}
	return active, nil
}
