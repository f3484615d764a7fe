package components

import (
	"fmt"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left,
// a transient notice in the middle, data stats on the right.
func RenderStatusBar(width int, notice string, warnings, txCount int, loadTime string) string {
	t := theme.Active

	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Background)
	noticeStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Background)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Background)
	fillStyle := lipgloss.NewStyle().Background(t.Background)

	left := hintStyle.Render(" [a]dd  [/]search  [?]help  [q]uit")
	if notice != "" {
		left += fillStyle.Render("  ") + noticeStyle.Render(notice)
	}

	right := ""
	if warnings > 0 {
		right = warnStyle.Render(fmt.Sprintf("%d file warnings", warnings)) + hintStyle.Render(" · ")
	}
	right += hintStyle.Render(fmt.Sprintf("%d transactions · %s ", txCount, loadTime))

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	var bar string
	for i := 0; i < padding; i++ {
		bar += " "
	}

	return left + fillStyle.Render(bar) + right
}
