package tui

import (
	"fmt"
	"strings"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/cli"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/plan"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/tui/components"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// plannerState holds the planner tab state.
type plannerState struct {
	cursor int // selected row in the bills table
}

func (a App) renderPlannerTab(cw int) string {
	today := model.Today()
	statuses := a.billStatuses

	var b strings.Builder

	// Row 1: Metric cards
	var monthlyTotal, unpaidTotal decimal.Decimal
	for _, st := range statuses {
		monthlyTotal = monthlyTotal.Add(st.Amount)
		if !st.Paid {
			unpaidTotal = unpaidTotal.Add(st.Amount)
		}
	}
	var goalSaved decimal.Decimal
	goalsDone := 0
	for _, g := range a.goalProgress {
		goalSaved = goalSaved.Add(g.Saved)
		if g.Done() {
			goalsDone++
		}
	}

	unpaid := plan.UnpaidCount(statuses)
	overdue := len(plan.Overdue(statuses, today))
	unpaidDelta := fmt.Sprintf("%s outstanding", a.money(unpaidTotal))
	if overdue > 0 {
		unpaidDelta = fmt.Sprintf("%d overdue!", overdue)
	}

	cards := []struct{ Label, Value, Delta string }{
		{"Monthly Bills", a.money(monthlyTotal), fmt.Sprintf("%d scheduled", len(statuses))},
		{"Unpaid", cli.FormatNumber(int64(unpaid)), unpaidDelta},
		{"Goals", cli.FormatNumber(int64(len(a.goalProgress))), fmt.Sprintf("%d reached", goalsDone)},
		{"Saved Toward Goals", a.money(goalSaved), ""},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: Bills table
	b.WriteString(a.renderBillsCard(cw))
	b.WriteString("\n")

	// Row 3: Goals
	b.WriteString(a.renderGoalsCard(cw))

	return b.String()
}

func (a App) renderBillsCard(cw int) string {
	t := theme.Active
	today := model.Today()
	statuses := a.billStatuses

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	title := "Bills · " + today.Format("January 2006")

	if len(statuses) == 0 {
		body := dimStyle.Render("No bills configured. Add one with `budgetbuddy bills add`.")
		return components.ContentCard(title, body, cw)
	}

	innerW := components.CardInnerWidth(cw)
	// marker (2) + due (8) + status (14) + amount (10) + gaps (3)
	nameW := innerW - 2 - 8 - 14 - 10 - 3
	if nameW < 12 {
		nameW = 12
	}

	paidStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	lateStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)
	dueStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	amtStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	var body strings.Builder
	body.WriteString(headerStyle.Render(fmt.Sprintf("  %-*s %8s %-14s %10s", nameW, "Bill", "Due", "Status", "Amount")))
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	body.WriteString("\n")

	for i, st := range statuses {
		var statusStr string
		var statusStyle lipgloss.Style
		switch {
		case st.Paid:
			statusStr = "PAID " + st.PaidOn.Format("Jan 02")
			statusStyle = paidStyle
		case st.Due.Before(today.Time):
			late := int(today.Sub(st.Due.Time).Hours() / 24)
			statusStr = fmt.Sprintf("OVERDUE %dd", late)
			statusStyle = lateStyle
		default:
			dueIn := int(st.Due.Sub(today.Time).Hours() / 24)
			if dueIn == 0 {
				statusStr = "due today"
			} else {
				statusStr = fmt.Sprintf("due in %dd", dueIn)
			}
			statusStyle = dueStyle
		}

		marker := "  "
		rowMuted, rowName, rowStatus, rowAmt := mutedStyle, nameStyle, statusStyle, amtStyle
		if i == a.planner.cursor {
			marker = "▸ "
			rowMuted = mutedStyle.Background(t.SurfaceBright)
			rowName = nameStyle.Background(t.SurfaceBright).Bold(true)
			rowStatus = statusStyle.Background(t.SurfaceBright)
			rowAmt = amtStyle.Background(t.SurfaceBright).Bold(true)
		}

		body.WriteString(rowMuted.Render(marker))
		body.WriteString(rowName.Render(fmt.Sprintf("%-*s", nameW, truncStr(st.Name, nameW))))
		body.WriteString(rowMuted.Render(fmt.Sprintf(" %8s", st.Due.Format("Jan 02"))))
		body.WriteString(rowStatus.Render(fmt.Sprintf(" %-14s", truncStr(statusStr, 14))))
		body.WriteString(rowAmt.Render(fmt.Sprintf(" %10s", a.money(st.Amount))))
		body.WriteString("\n")
	}

	body.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	body.WriteString("\n")
	body.WriteString(dimStyle.Render("[j/k] select  [Enter] mark paid"))

	return components.ContentCard(title, body.String(), cw)
}

func (a App) renderGoalsCard(cw int) string {
	t := theme.Active

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	if len(a.goalProgress) == 0 {
		body := dimStyle.Render("No savings goals yet. Create one with `budgetbuddy goals add`.")
		return components.ContentCard("Savings Goals", body, cw)
	}

	innerW := components.CardInnerWidth(cw)

	labelW := 0
	for _, g := range a.goalProgress {
		if len(g.Name) > labelW {
			labelW = len(g.Name)
		}
	}
	if labelW > innerW/3 {
		labelW = innerW / 3
	}

	barW := innerW / 4
	if barW < 10 {
		barW = 10
	}

	today := model.Today()
	var body strings.Builder
	for _, g := range a.goalProgress {
		detail := fmt.Sprintf("%s of %s", a.money(g.Saved), a.money(g.Target))
		if g.Done() {
			detail += "  reached!"
		} else if !g.Deadline.IsZero() {
			detail += "  by " + g.Deadline.Format("Jan 2006")
			if g.OnTrack(today) {
				detail += " · on track"
			} else {
				detail += " · behind pace"
			}
		}
		body.WriteString(components.GoalBar(truncStr(g.Name, labelW), g.Percent/100, detail, labelW, barW))
		body.WriteString("\n")
	}

	return components.ContentCard("Savings Goals", body.String(), cw)
}
