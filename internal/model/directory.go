// Package model defines the core domain models used throughout the application.
package model

import "time"

// Importance ranks how much a directory contributes to local search visibility.
type Importance string

// Importance levels.
const (
	ImportanceCritical Importance = "critical"
	ImportanceHigh     Importance = "high"
	ImportanceMedium   Importance = "medium"
)

// Weight returns the scoring weight for an importance level.
func (i Importance) Weight() int {
	switch i {
	case ImportanceCritical:
		return 3
	case ImportanceHigh:
		return 2
	default:
		return 1
	}
}

// SearchStrategy indicates how a directory is queried for a business listing.
type SearchStrategy string

const (
	// StrategyURLTemplate directories are scraped via a templated search URL.
	StrategyURLTemplate SearchStrategy = "url-template"
	// StrategyExternalAPI directories are served by a bulk-data provider,
	// not by per-directory scraping.
	StrategyExternalAPI SearchStrategy = "external-api"
)

// Selectors holds the CSS selectors used to locate a listing and its NAP
// fields on one page.
type Selectors struct {
	ListingLink string
	Name        string
	Address     string
	Phone       string
}

// Empty reports whether no NAP selectors are configured.
func (s Selectors) Empty() bool {
	return s.Name == "" && s.Address == "" && s.Phone == ""
}

// DirectoryConfig describes one target directory: how to search it and where
// to find NAP data. Entries are immutable and loaded at process start.
type DirectoryConfig struct {
	Key                string
	DisplayName        string
	Importance         Importance
	Strategy           SearchStrategy
	SearchURLPattern   string
	Selectors          Selectors
	DetailSelectors    Selectors
	RequiresDetailPage bool
}

// DirectoryHealth tracks the reliability of one directory adapter. A row is
// created lazily on the first probe and never deleted.
type DirectoryHealth struct {
	LastSuccess         *time.Time
	LastFailure         *time.Time
	LastCheckedAt       time.Time
	Key                 string
	DisplayName         string
	ConsecutiveFailures int
	IsDegraded          bool
}
