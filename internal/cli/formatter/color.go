package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/opsmap/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// FrequencyColor returns the style for a task frequency. Daily work is the
// most prominent.
func FrequencyColor(f domain.Frequency) lipgloss.Style {
	switch f {
	case domain.FrequencyDaily:
		return StyleRed
	case domain.FrequencyWeekly:
		return StyleYellow
	case domain.FrequencyMonthly:
		return StyleGreen
	default:
		return StyleDim
	}
}

// ImportanceColor returns the style for an importance level 1-5.
func ImportanceColor(importance int) lipgloss.Style {
	switch {
	case importance >= 5:
		return StyleRed
	case importance == 4:
		return StyleYellow
	case importance == 3:
		return StyleFg
	default:
		return StyleDim
	}
}

// ImportanceStars renders an importance level as five stars, e.g. "★★★☆☆".
func ImportanceStars(importance int) string {
	filled := max(min(importance, domain.MaxImportance), 0)
	return ImportanceColor(importance).Render(strings.Repeat("★", filled)) +
		StyleDim.Render(strings.Repeat("☆", domain.MaxImportance-filled))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
