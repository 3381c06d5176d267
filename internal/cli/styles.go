// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/citescan/citescan/internal/model"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#5FAFFF")
	// SuccessColor indicates matches and healthy adapters.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor indicates partial matches and degradation warnings.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor indicates mismatches and failures.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle formats emphasized values.
	BoldStyle = lipgloss.NewStyle().Bold(true)
)

// StatusStyle returns the style for a match status.
func StatusStyle(status model.MatchStatus) lipgloss.Style {
	switch status {
	case model.StatusMatch:
		return SuccessStyle
	case model.StatusPartial:
		return WarningStyle
	case model.StatusMismatch:
		return ErrorStyle
	default:
		return SubtleStyle
	}
}

// ScoreStyle returns the style for a 0-100 health score.
func ScoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 80:
		return SuccessStyle
	case score >= 50:
		return WarningStyle
	default:
		return ErrorStyle
	}
}
