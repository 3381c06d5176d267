package cli

import (
	"fmt"
	"strings"

	"github.com/citescan/citescan/internal/model"
)

// RenderScanReport formats a citation scan as a styled terminal report.
func RenderScanReport(client *model.CanonicalIdentity, scan *model.CitationScan) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(fmt.Sprintf("Citation Scan — %s", client.BusinessName)))
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render(fmt.Sprintf("Scanned %s • %d directories",
		scan.CreatedAt.Format("2006-01-02 15:04"), scan.TotalChecked)))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Health score: %s\n",
		ScoreStyle(scan.HealthScore).Render(fmt.Sprintf("%d/100", scan.HealthScore))))
	b.WriteString(fmt.Sprintf("%s  %s  %s  %s\n\n",
		SuccessStyle.Render(fmt.Sprintf("%d match", scan.Matches)),
		ErrorStyle.Render(fmt.Sprintf("%d mismatch", scan.Mismatches)),
		SubtleStyle.Render(fmt.Sprintf("%d missing", scan.Missing)),
		WarningStyle.Render(fmt.Sprintf("%d errors", scan.Errors))))

	for _, r := range scan.Results {
		st := StatusStyle(r.Status)
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			st.Render(statusBadge(r.Status)),
			BoldStyle.Render(r.DisplayName),
			SubtleStyle.Render(fmt.Sprintf("(%d%% confidence)", r.Confidence))))
		for _, d := range r.Details {
			b.WriteString(SubtleStyle.Render("    "+d) + "\n")
		}
		if r.ListingURL != "" {
			b.WriteString(SubtleStyle.Render("    "+r.ListingURL) + "\n")
		}
	}

	return b.String()
}

// RenderScanHistory formats past scan aggregates, newest first.
func RenderScanHistory(client *model.CanonicalIdentity, scans []model.CitationScan) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(fmt.Sprintf("Scan History — %s", client.BusinessName)))
	b.WriteString("\n")
	if len(scans) == 0 {
		b.WriteString(SubtleStyle.Render("No scans recorded yet."))
		b.WriteString("\n")
		return b.String()
	}

	for _, s := range scans {
		b.WriteString(fmt.Sprintf("%s  score %s  %s\n",
			s.CreatedAt.Format("2006-01-02 15:04"),
			ScoreStyle(s.HealthScore).Render(fmt.Sprintf("%3d", s.HealthScore)),
			SubtleStyle.Render(fmt.Sprintf("%d match / %d mismatch / %d missing / %d errors",
				s.Matches, s.Mismatches, s.Missing, s.Errors))))
	}

	return b.String()
}

func statusBadge(status model.MatchStatus) string {
	switch status {
	case model.StatusMatch:
		return "✓"
	case model.StatusPartial:
		return "~"
	case model.StatusMismatch:
		return "✗"
	default:
		return "—"
	}
}
