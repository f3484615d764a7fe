package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/tui/components"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderBudgetTab(cw int) string {
	t := theme.Active
	alloc := a.alloc
	k := a.kpis

	var b strings.Builder

	// Row 1: KPI metric cards
	coveredDelta := ""
	if k.MonthsCovered > 0 {
		coveredDelta = fmt.Sprintf("covers %.1f months", k.MonthsCovered)
	}
	kpiCards := []struct{ Label, Value, Delta string }{
		{"Savings Rate", fmt.Sprintf("%.1f%%", k.SavingsRate), fmt.Sprintf("target %d%%", a.cfg.Budget.SavingsPct)},
		{"Expense Ratio", fmt.Sprintf("%.1f%%", k.ExpenseRatio), "of income spent"},
		{"Emergency Target", a.money(k.EmergencyFund), coveredDelta},
		{"Health", fmt.Sprintf("%.0f/100", a.health.Total()), a.health.Interpretation()},
	}
	b.WriteString(components.MetricCardRow(kpiCards, cw))
	b.WriteString("\n")

	// Row 2: Bucket breakdown table
	innerW := components.CardInnerWidth(cw)
	fixedCols := 10 + 10 + 10 + 6
	gaps := 4
	nameW := innerW - fixedCols - gaps
	if nameW < 14 {
		nameW = 14
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	bucketNameStyle := lipgloss.NewStyle().Foreground(t.BlueBright).Background(t.Surface)
	targetStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface)
	overStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	underStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var tableBody strings.Builder
	if a.isCompactLayout() {
		actualW := 10
		diffW := 10
		nameW = innerW - actualW - diffW - 2
		if nameW < 10 {
			nameW = 10
		}
		tableBody.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %10s %10s", nameW, "Bucket", "Actual", "Diff")))
		tableBody.WriteString("\n")
		tableBody.WriteString(mutedStyle.Render(strings.Repeat("─", nameW+actualW+diffW+2)))
		tableBody.WriteString("\n")

		for _, bucket := range alloc.Buckets() {
			diffStyle := underStyle
			if bucket.Over() {
				diffStyle = overStyle
			}
			tableBody.WriteString(bucketNameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(bucket.Name, nameW))))
			tableBody.WriteString(valueStyle.Render(fmt.Sprintf(" %10s", a.money(bucket.Actual))))
			tableBody.WriteString(diffStyle.Render(fmt.Sprintf(" %10s", a.delta(bucket.Difference))))
			tableBody.WriteString("\n")
		}
		tableBody.WriteString(mutedStyle.Render(strings.Repeat("─", nameW+actualW+diffW+2)))
	} else {
		tableBody.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %10s %10s %10s %6s", nameW, "Bucket", "Target", "Actual", "Diff", "Share")))
		tableBody.WriteString("\n")
		tableBody.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
		tableBody.WriteString("\n")

		for _, bucket := range alloc.Buckets() {
			diffStyle := underStyle
			if bucket.Over() {
				diffStyle = overStyle
			}
			tableBody.WriteString(bucketNameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(bucket.Name, nameW))))
			tableBody.WriteString(targetStyle.Render(fmt.Sprintf(" %10s", a.money(bucket.Target))))
			tableBody.WriteString(valueStyle.Render(fmt.Sprintf(" %10s", a.money(bucket.Actual))))
			tableBody.WriteString(diffStyle.Render(fmt.Sprintf(" %10s", a.delta(bucket.Difference))))
			tableBody.WriteString(labelStyle.Render(fmt.Sprintf(" %5.0f%%", bucket.Share)))
			tableBody.WriteString("\n")
		}

		tableBody.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	}

	title := fmt.Sprintf("Budget Rule %d/%d/%d  on %s income",
		a.cfg.Budget.EssentialsPct, a.cfg.Budget.NonEssentialsPct, a.cfg.Budget.SavingsPct,
		a.money(alloc.Income))
	b.WriteString(components.ContentCard(title, tableBody.String(), cw))
	b.WriteString("\n")

	// Row 3: Monthly trend + Top Spending Days
	halves := components.LayoutRow(cw, 2)

	var trendBody strings.Builder
	if len(a.months) > 0 {
		monthLimit := 6
		if len(a.months) < monthLimit {
			monthLimit = len(a.months)
		}
		trendInnerW := components.CardInnerWidth(halves[0])
		trendNameW := trendInnerW - 33
		if trendNameW < 8 {
			trendNameW = 8
		}
		trendBody.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %10s %10s %10s", trendNameW, "Month", "Income", "Spent", "Saved")))
		trendBody.WriteString("\n")
		for _, m := range a.months[:monthLimit] {
			trendBody.WriteString(valueStyle.Render(fmt.Sprintf("%-*s", trendNameW, m.Month.Format("Jan 2006"))))
			trendBody.WriteString(underStyle.Render(fmt.Sprintf(" %10s", a.money(m.Income))))
			trendBody.WriteString(lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Render(fmt.Sprintf(" %10s", a.money(m.Spending))))
			trendBody.WriteString(targetStyle.Render(fmt.Sprintf(" %10s", a.money(m.Savings))))
			trendBody.WriteString("\n")
		}
	} else {
		trendBody.WriteString(labelStyle.Render("No data"))
		trendBody.WriteString("\n")
	}

	var spendBody strings.Builder
	if len(a.dailyStats) > 0 {
		spendLimit := 5
		if len(a.dailyStats) < spendLimit {
			spendLimit = len(a.dailyStats)
		}
		sorted := make([]model.DailyStats, len(a.dailyStats))
		copy(sorted, a.dailyStats)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].Spending.GreaterThan(sorted[j].Spending)
		})
		topDays := sorted[:spendLimit]
		sort.Slice(topDays, func(i, j int) bool {
			return topDays[i].Date.After(topDays[j].Date.Time)
		})
		for _, d := range topDays {
			spendBody.WriteString(valueStyle.Render(d.Date.Format("Jan 02")))
			spendBody.WriteString(spaceStyle.Render("  "))
			spendBody.WriteString(lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Render(a.money(d.Spending)))
			spendBody.WriteString(labelStyle.Render(fmt.Sprintf("  %d tx", d.Count)))
			spendBody.WriteString("\n")
		}
	} else {
		spendBody.WriteString(labelStyle.Render("No data"))
		spendBody.WriteString("\n")
	}

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Monthly Trend", trendBody.String(), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Top Spending Days", spendBody.String(), cw))
	} else {
		trendCard := components.ContentCard("Monthly Trend", trendBody.String(), halves[0])
		spendCard := components.ContentCard("Top Spending Days", spendBody.String(), halves[1])
		b.WriteString(components.CardRow([]string{trendCard, spendCard}))
	}
	b.WriteString("\n")

	// Row 4: Recommendations
	var recBody strings.Builder
	bulletStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	for _, rec := range a.recs {
		recBody.WriteString(bulletStyle.Render("• "))
		recBody.WriteString(valueStyle.Render(rec))
		recBody.WriteString("\n")
	}
	b.WriteString(components.ContentCard("Recommendations", recBody.String(), cw))

	return b.String()
}
