package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/citescan/citescan/internal/model"
)

const taskCategory = "Local SEO"

// emitTasks generates one remediation task per mismatched, partial, or
// missing directory result. Task creation is fire-and-forget: the scan
// record is the valuable artifact, so creation failures (including
// duplicate-task conflicts) are logged and swallowed.
func (e *ScanEngine) emitTasks(ctx context.Context, identity model.CanonicalIdentity, results []model.DirectoryResult) {
	if e.tasks == nil {
		return
	}

	for _, r := range results {
		var task *model.TaskRequest
		switch r.Status {
		case model.StatusMismatch, model.StatusPartial:
			task = fixTask(identity, r)
		case model.StatusMissing:
			task = createListingTask(identity, r)
		default:
			continue
		}

		if err := e.tasks.CreateTask(ctx, task); err != nil {
			slog.Warn("Failed to create remediation task",
				"client_id", identity.ClientID,
				"directory", r.Key,
				"error", err)
		}
	}
}

func fixTask(identity model.CanonicalIdentity, r model.DirectoryResult) *model.TaskRequest {
	issue := strings.Join(r.Details, "; ")

	var b strings.Builder
	fmt.Fprintf(&b, "Citation inconsistency detected on %s.\n\n", r.DisplayName)
	fmt.Fprintf(&b, "Expected:\n  Name: %s\n  Address: %s\n  Phone: %s\n\n",
		identity.BusinessName, identity.Address(), identity.Phone)
	fmt.Fprintf(&b, "Found:\n  Name: %s\n  Address: %s\n  Phone: %s\n\n",
		orDash(r.FoundName), orDash(r.FoundAddress), orDash(r.FoundPhone))
	fmt.Fprintf(&b, "Issues: %s", issue)

	return &model.TaskRequest{
		ClientID:     identity.ClientID,
		DirectoryKey: r.Key,
		Title:        fmt.Sprintf("Fix NAP on %s: %s", r.DisplayName, issue),
		Category:     taskCategory,
		Priority:     model.PriorityFor(r.Importance),
		Source:       model.TaskSourceCitationScan,
		Description:  b.String(),
	}
}

func createListingTask(identity model.CanonicalIdentity, r model.DirectoryResult) *model.TaskRequest {
	return &model.TaskRequest{
		ClientID:     identity.ClientID,
		DirectoryKey: r.Key,
		Title:        fmt.Sprintf("Create listing on %s", r.DisplayName),
		Category:     taskCategory,
		Priority:     model.PriorityFor(r.Importance),
		Source:       model.TaskSourceCitationScan,
		Description: fmt.Sprintf(
			"%s does not appear to have a listing on %s. Creating a listing with correct NAP will improve local search consistency.",
			identity.BusinessName, r.DisplayName),
	}
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
