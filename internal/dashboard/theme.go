package dashboard

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette — calm, study-room tones
var (
	colorPrimary   = lipgloss.Color("#6366F1") // Indigo
	colorSecondary = lipgloss.Color("#0EA5E9") // Sky
	colorSuccess   = lipgloss.Color("#22C55E") // Green
	colorWarn      = lipgloss.Color("#F59E0B") // Amber
	colorDanger    = lipgloss.Color("#F43F5E") // Rose
	colorText      = lipgloss.Color("#F8FAFC") // White
	colorTextDim   = lipgloss.Color("#94A3B8") // Slate
	colorBgCard    = lipgloss.Color("#1E293B") // Dark Slate
	colorBorder    = lipgloss.Color("#334155") // Slate
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSecondary)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	noticeStyle = lipgloss.NewStyle().
			Foreground(colorWarn).
			Italic(true)

	tabActiveStyle = lipgloss.NewStyle().
			Background(colorPrimary).
			Foreground(colorText).
			Bold(true).
			Padding(0, 1)

	tabInactiveStyle = lipgloss.NewStyle().
				Background(colorBgCard).
				Foreground(colorTextDim).
				Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Background(colorBgCard).
			Padding(0, 2)
)

// scoreColor maps a mastery score to a traffic-light color.
func scoreColor(score float64) color.Color {
	switch {
	case score >= 0.9:
		return colorSuccess
	case score >= 0.7:
		return colorSecondary
	case score >= 0.4:
		return colorWarn
	default:
		return colorDanger
	}
}
