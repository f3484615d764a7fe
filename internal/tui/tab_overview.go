package tui

import (
	"fmt"
	"strings"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/plan"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/tui/components"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	s := a.summary
	prev := a.prevSummary
	days := a.dailyStats
	var b strings.Builder

	// Alert banners
	if alerts := a.alertLines(); len(alerts) > 0 {
		alertStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)
		for _, line := range alerts {
			b.WriteString(alertStyle.Render("▲ " + line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Row 1: Metric cards
	incomeDelta := ""
	if prev.Income.IsPositive() {
		incomeDelta = a.delta(s.Income.Sub(prev.Income)) + " vs prev"
	}

	spendDelta := ""
	if s.ActiveDays > 0 {
		perDay := s.TotalSpending.Div(decimal.NewFromInt(int64(s.ActiveDays)))
		spendDelta = a.money(perDay) + "/day"
		if prev.TotalSpending.IsPositive() {
			spendDelta = fmt.Sprintf("%s/day (%s)", a.money(perDay), a.delta(s.TotalSpending.Sub(prev.TotalSpending)))
		}
	}

	netDelta := ""
	if prev.Income.IsPositive() || prev.TotalSpending.IsPositive() {
		netDelta = a.delta(s.Net.Sub(prev.Net)) + " vs prev"
	}

	savingsDelta := ""
	if s.Income.IsPositive() {
		savingsDelta = fmt.Sprintf("%.0f%% of income", a.kpis.SavingsRate)
	}

	cards := []struct{ Label, Value, Delta string }{
		{"Income", a.money(s.Income), incomeDelta},
		{"Spending", a.money(s.TotalSpending), spendDelta},
		{"Net", a.delta(s.Net), netDelta},
		{"Savings", a.money(s.Savings), savingsDelta},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: Daily spending chart
	if len(days) > 0 {
		chartVals := make([]float64, len(days))
		chartLabels := chartDateLabels(days)
		for i, d := range days {
			chartVals[len(days)-1-i] = d.Spending.InexactFloat64()
		}
		title := "Daily Spending"
		if a.days > 0 {
			title = fmt.Sprintf("Daily Spending (%dd)", a.days)
		}
		chartInnerW := components.CardInnerWidth(cw)
		b.WriteString(components.ContentCard(
			title,
			components.BarChart(chartVals, chartLabels, t.Orange, chartInnerW, 10),
			cw,
		))
		b.WriteString("\n")
	}

	// Row 3: Budget Split + Upcoming Bills
	if a.isCompactLayout() {
		innerW := components.CardInnerWidth(cw)
		b.WriteString(components.ContentCard("Budget Split", a.renderSplitBody(innerW), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Upcoming Bills", a.renderUpcomingBillsBody(innerW), cw))
	} else {
		halves := components.LayoutRow(cw, 2)
		splitCard := components.ContentCard("Budget Split", a.renderSplitBody(components.CardInnerWidth(halves[0])), halves[0])
		billsCard := components.ContentCard("Upcoming Bills", a.renderUpcomingBillsBody(components.CardInnerWidth(halves[1])), halves[1])
		b.WriteString(components.CardRow([]string{splitCard, billsCard}))
	}
	b.WriteString("\n")

	// Row 4: Trend sparklines + Recent transactions
	if a.isCompactLayout() {
		innerW := components.CardInnerWidth(cw)
		b.WriteString(components.ContentCard("Income vs Spending", a.renderTrendBody(innerW), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Recent Transactions", a.renderRecentTxBody(innerW), cw))
	} else {
		halves := components.LayoutRow(cw, 2)
		trendCard := components.ContentCard("Income vs Spending", a.renderTrendBody(components.CardInnerWidth(halves[0])), halves[0])
		recentCard := components.ContentCard("Recent Transactions", a.renderRecentTxBody(components.CardInnerWidth(halves[1])), halves[1])
		b.WriteString(components.CardRow([]string{trendCard, recentCard}))
	}

	return b.String()
}

// renderSplitBody draws one budget bar per bucket plus the health verdict.
func (a App) renderSplitBody(innerW int) string {
	t := theme.Active
	var b strings.Builder

	labelW := 0
	for _, bucket := range a.alloc.Buckets() {
		if len(bucket.Name) > labelW {
			labelW = len(bucket.Name)
		}
	}

	barW := innerW/3 - 2
	if barW < 10 {
		barW = 10
	}

	for _, bucket := range a.alloc.Buckets() {
		pct := 0.0
		if bucket.Target.IsPositive() {
			pct = bucket.Actual.InexactFloat64() / bucket.Target.InexactFloat64()
		}
		detail := fmt.Sprintf("%s of %s", a.money(bucket.Actual), a.money(bucket.Target))
		b.WriteString(components.BudgetBar(bucket.Name, pct, detail, labelW, barW))
		b.WriteString("\n")
	}

	score := a.health.Total()
	scoreStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(components.ColorForPct(1 - score/100))).
		Background(t.Surface).
		Bold(true)
	verdictStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	b.WriteString("\n")
	b.WriteString(verdictStyle.Render("Health "))
	b.WriteString(scoreStyle.Render(fmt.Sprintf("%.0f/100", score)))
	b.WriteString(verdictStyle.Render(" · " + a.health.Interpretation()))

	return b.String()
}

// renderUpcomingBillsBody lists overdue bills first, then anything due
// within the configured horizon.
func (a App) renderUpcomingBillsBody(innerW int) string {
	t := theme.Active
	today := model.Today()

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dueStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	amtStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	lateStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)
	okStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	if len(a.billStatuses) == 0 {
		return dimStyle.Render("No bills configured. Add one in the Planner tab.")
	}

	nameW := innerW - 26
	if nameW < 10 {
		nameW = 10
	}

	var b strings.Builder
	shown := 0

	for _, st := range plan.Overdue(a.billStatuses, today) {
		fmt.Fprintf(&b, "%s %s %s\n",
			nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(st.Name, nameW))),
			lateStyle.Render(fmt.Sprintf("%-12s", "OVERDUE")),
			amtStyle.Render(fmt.Sprintf("%10s", a.money(st.Amount))))
		shown++
	}

	horizon := a.cfg.Budget.UpcomingBillDays
	for _, st := range plan.Upcoming(a.billStatuses, today, horizon) {
		dueIn := int(st.Due.Sub(today.Time).Hours() / 24)
		dueStr := fmt.Sprintf("due in %dd", dueIn)
		if dueIn == 0 {
			dueStr = "due today"
		}
		fmt.Fprintf(&b, "%s %s %s\n",
			nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(st.Name, nameW))),
			dueStyle.Render(fmt.Sprintf("%-12s", dueStr)),
			amtStyle.Render(fmt.Sprintf("%10s", a.money(st.Amount))))
		shown++
	}

	if shown == 0 {
		paid := len(a.billStatuses) - plan.UnpaidCount(a.billStatuses)
		b.WriteString(okStyle.Render(fmt.Sprintf("Nothing due in the next %dd", horizon)))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d of %d bills paid this month", paid, len(a.billStatuses))))
	}

	return b.String()
}

// renderTrendBody draws one sparkline per money direction, newest day last.
func (a App) renderTrendBody(innerW int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	amtStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	days := a.dailyStats
	if len(days) == 0 {
		return dimStyle.Render("No activity in this window.")
	}

	sparkW := innerW - 9 - 12
	if sparkW < 10 {
		sparkW = 10
	}

	income := make([]float64, len(days))
	spending := make([]float64, len(days))
	for i, d := range days {
		income[len(days)-1-i] = d.Income.InexactFloat64()
		spending[len(days)-1-i] = d.Spending.InexactFloat64()
	}
	if len(income) > sparkW {
		income = income[len(income)-sparkW:]
		spending = spending[len(spending)-sparkW:]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n",
		labelStyle.Render(fmt.Sprintf("%-8s", "Income")),
		components.Sparkline(income, t.Green),
		amtStyle.Render(fmt.Sprintf("%11s", a.money(a.summary.Income))))
	fmt.Fprintf(&b, "%s %s %s",
		labelStyle.Render(fmt.Sprintf("%-8s", "Spending")),
		components.Sparkline(spending, t.Orange),
		amtStyle.Render(fmt.Sprintf("%11s", a.money(a.summary.TotalSpending))))

	return b.String()
}

// renderRecentTxBody lists the newest transactions in the window.
func (a App) renderRecentTxBody(innerW int) string {
	t := theme.Active

	dateStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	descStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	inStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	outStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	if len(a.windowTxs) == 0 {
		return dimStyle.Render("No transactions in this window.")
	}

	shown := a.windowTxs
	if len(shown) > 5 {
		shown = shown[:5]
	}

	descW := innerW - 6 - 11 - 2
	if descW < 10 {
		descW = 10
	}

	var b strings.Builder
	for i, tx := range shown {
		amt := a.money(tx.Amount)
		amtStyle := outStyle
		if tx.Category == model.CategoryIncome {
			amt = "+" + amt
			amtStyle = inStyle
		}
		fmt.Fprintf(&b, "%s %s %s",
			dateStyle.Render(tx.Date.Format("Jan 02")),
			descStyle.Render(fmt.Sprintf("%-*s", descW, truncStr(tx.Description, descW))),
			amtStyle.Render(fmt.Sprintf("%11s", amt)))
		if i < len(shown)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// alertLines builds the warning banners shown above the overview cards.
// Saving more than the target is a win, so only the two spending buckets
// can trip the overspend alert.
func (a App) alertLines() []string {
	var alerts []string

	threshold := float64(a.cfg.Alerts.OverspendThresholdPct)
	for _, bucket := range []model.BucketReport{a.alloc.Essentials, a.alloc.Wants} {
		if bucket.Over() && bucket.VariancePct() > threshold {
			alerts = append(alerts, fmt.Sprintf("%s %.0f%% over target (%s past budget)",
				bucket.Name, bucket.VariancePct(), a.money(bucket.Difference)))
		}
	}

	if late := len(plan.Overdue(a.billStatuses, model.Today())); late > 0 {
		noun := "bills"
		if late == 1 {
			noun = "bill"
		}
		alerts = append(alerts, fmt.Sprintf("%d %s overdue, check the Planner tab", late, noun))
	}

	return alerts
}
