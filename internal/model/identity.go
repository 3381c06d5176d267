package model

import (
	"strings"
	"time"
)

// CanonicalIdentity is the ground-truth NAP record for one business, supplied
// by the client-record collaborator. Read-only input to a scan.
type CanonicalIdentity struct {
	CreatedAt    time.Time
	ClientID     string
	BusinessName string
	Street       string
	City         string
	State        string
	Phone        string
}

// Address returns the single formatted address string used for comparison,
// matching how directories render a full address.
func (c CanonicalIdentity) Address() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.Street, c.City, c.State} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// SearchParams returns the values substituted into directory search URLs.
func (c CanonicalIdentity) SearchParams() SearchParams {
	return SearchParams{
		Business: c.BusinessName,
		City:     c.City,
		State:    c.State,
	}
}

// SearchParams are the placeholder values for a directory search URL.
type SearchParams struct {
	Business string
	City     string
	State    string
}
