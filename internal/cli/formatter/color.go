package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/growthmap/internal/domain"
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

// Lesson card colors. Cards fade in from ColorSurface.
const (
	HexSurface    = "#1d2021"
	HexDone       = "#10b981"
	HexDoneDeep   = "#059669"
	HexActive     = "#3b82f6"
	HexActiveDeep = "#1d4ed8"
	HexLocked     = "#504945"
	HexLockedFg   = "#a89984"
	HexCardFg     = "#ffffff"
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

// StatusStyle returns the text style for a lesson status. Unknown statuses
// share the locked style.
func StatusStyle(status domain.LessonStatus) lipgloss.Style {
	switch status {
	case domain.LessonDone:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(HexDone))
	case domain.LessonActive:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(HexActive)).Bold(true)
	default:
		return StyleDim
	}
}

// StatusPill returns a colored status indicator such as "● ACTIVE".
func StatusPill(status domain.LessonStatus) string {
	label := strings.ToUpper(string(status))
	if label == "" {
		label = "UNKNOWN"
	}
	return StatusStyle(status).Render("● " + label)
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
