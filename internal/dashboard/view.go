package dashboard

import (
	"fmt"
	imgcolor "image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/learnpath/learnpath/internal/recommend"
)

// renderUserTabs renders one tab per user with the active one highlighted.
func renderUserTabs(users []string, selected int) string {
	if len(users) == 0 {
		return dimStyle.Render("no learners yet")
	}

	tabs := make([]string, 0, len(users))
	for i, u := range users {
		if i == selected {
			tabs = append(tabs, tabActiveStyle.Render(u))
		} else {
			tabs = append(tabs, tabInactiveStyle.Render(u))
		}
	}
	return strings.Join(tabs, " ")
}

// renderMasteryBar renders "name  [####----]  72%" for one topic.
func renderMasteryBar(name string, score float64, width int) string {
	const nameWidth = 28
	const percentWidth = 6

	if len(name) > nameWidth-2 {
		name = name[:nameWidth-3] + "…"
	}
	label := fmt.Sprintf("%-*s", nameWidth, name)

	barWidth := width - nameWidth - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * score)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	bar := lipgloss.NewStyle().Background(scoreColor(score)).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(colorBorder).Render(strings.Repeat(" ", barWidth-filled))

	percent := dimStyle.Render(fmt.Sprintf(" %3d%%", int(score*100)))

	return label + bar + percent
}

// renderRecommendation renders one ranked suggestion with its score and
// rationale.
func renderRecommendation(rank int, rec recommend.Recommendation, width int) string {
	head := fmt.Sprintf("%d. %s", rank, rec.Topic)
	score := fmt.Sprintf("%.2f", rec.Score)
	tag := sourceTag(rec.Source)

	line := fmt.Sprintf("  %s  %s %s",
		lipgloss.NewStyle().Foreground(colorText).Bold(true).Render(head),
		dimStyle.Render(score),
		tag,
	)

	if rec.Rationale != "" {
		rationale := rec.Rationale
		maxLen := width - 6
		if maxLen > 10 && len(rationale) > maxLen {
			rationale = rationale[:maxLen-1] + "…"
		}
		line += "\n" + dimStyle.Render("     "+rationale)
	}
	return line
}

// sourceTag renders a short colored badge for a recommendation source.
func sourceTag(src recommend.Source) string {
	var color imgcolor.Color
	switch src {
	case recommend.SourceRule:
		color = colorSecondary
	case recommend.SourceCollaborative:
		color = colorSuccess
	case recommend.SourceHybrid:
		color = colorPrimary
	default:
		color = colorTextDim
	}
	return lipgloss.NewStyle().Foreground(color).Render("[" + string(src) + "]")
}

// renderNotices renders advisory messages below the recommendation list.
func renderNotices(notices []string) string {
	if len(notices) == 0 {
		return ""
	}
	lines := make([]string, 0, len(notices))
	for _, n := range notices {
		lines = append(lines, noticeStyle.Render("  ⚠ "+n))
	}
	return strings.Join(lines, "\n")
}

// renderFooter renders the key hint bar.
func renderFooter(width int) string {
	hints := []string{
		"Tab user",
		"↑↓ scroll",
		"r refresh",
		"q quit",
	}
	text := dimStyle.Render(strings.Join(hints, "  ·  "))
	return footerStyle.Width(width).Render(text)
}
