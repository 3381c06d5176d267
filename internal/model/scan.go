package model

import "time"

// ScrapedNAP is the raw extraction result from one directory for one
// business. Empty fields mean "not found". Transient; exists only for the
// duration of one scan.
type ScrapedNAP struct {
	Name       string
	Address    string
	Phone      string
	ListingURL string
}

// Empty reports whether no NAP field was extracted at all.
func (s ScrapedNAP) Empty() bool {
	return s.Name == "" && s.Address == "" && s.Phone == ""
}

// MatchStatus classifies how a scraped listing compares to the canonical NAP.
type MatchStatus string

// Match statuses.
const (
	StatusMatch    MatchStatus = "match"
	StatusPartial  MatchStatus = "partial"
	StatusMismatch MatchStatus = "mismatch"
	StatusMissing  MatchStatus = "missing"
)

// NAPComparison is the matcher's verdict for one directory.
type NAPComparison struct {
	Status       MatchStatus
	Details      []string
	Confidence   int
	NameMatch    bool
	AddressMatch bool
	PhoneMatch   bool
}

// DirectoryResult is one directory's outcome within a citation scan,
// combining the comparison verdict with what was actually found.
type DirectoryResult struct {
	Key          string
	DisplayName  string
	Importance   Importance
	Status       MatchStatus
	Details      []string
	FoundName    string
	FoundAddress string
	FoundPhone   string
	ListingURL   string
	Confidence   int
	NameMatch    bool
	AddressMatch bool
	PhoneMatch   bool
}

// CitationScan is the append-only audit record of one scan invocation.
// Never mutated after creation.
type CitationScan struct {
	CreatedAt    time.Time
	ClientID     string
	Results      []DirectoryResult
	ID           int64
	TotalChecked int
	Matches      int
	Mismatches   int
	Missing      int
	Errors       int
	HealthScore  int
}
