package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/casewalk/internal/domain"
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
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ScoreColor returns the style for a score given as a fraction of its maximum.
func ScoreColor(frac float64) lipgloss.Style {
	switch {
	case frac >= 0.75:
		return StyleGreen
	case frac >= 0.5:
		return StyleYellow
	default:
		return StyleRed
	}
}

// LockBadge returns a colored indicator for a chapter's lock state.
func LockBadge(unlocked, attempted bool) string {
	switch {
	case !unlocked:
		return StyleDim.Render("✖ Locked")
	case attempted:
		return StyleGreen.Render("✔ Done")
	default:
		return StyleBlue.Render("○ Open")
	}
}

// PatientBadge renders the patient track label.
func PatientBadge(p domain.Patient) string {
	label := strings.ToUpper(p.String()[:1]) + p.String()[1:]
	return StylePurple.Render(label)
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
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
