package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/cli"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/pipeline"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/tui/components"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// calendarState holds the calendar tab state.
type calendarState struct {
	selected model.Date // zero means today
}

func (a App) renderCalendarTab(cw int) string {
	today := model.Today()
	sel := a.cal.selected
	if sel.IsZero() {
		sel = today
	}
	monthStart := sel.MonthStart()
	nextMonth := model.DateOf(monthStart.AddDate(0, 1, 0))

	var b strings.Builder

	b.WriteString(a.renderMonthGrid(monthStart, nextMonth, today, sel, cw))
	b.WriteString("\n")

	// Selected day + month summary + top spending days
	monthSummary := pipeline.Summarize(a.txs, monthStart, nextMonth)
	monthDays := pipeline.AggregateDays(a.txs, monthStart, nextMonth)
	dayTitle := sel.Format("Mon Jan 02")

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard(dayTitle, a.renderDayBody(sel), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Month Summary", a.renderMonthSummaryBody(monthSummary), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Top Spending Days", a.renderTopDaysBody(monthDays), cw))
	} else {
		thirds := components.LayoutRow(cw, 3)
		dayCard := components.ContentCard(dayTitle, a.renderDayBody(sel), thirds[0])
		summaryCard := components.ContentCard("Month Summary", a.renderMonthSummaryBody(monthSummary), thirds[1])
		topCard := components.ContentCard("Top Spending Days", a.renderTopDaysBody(monthDays), thirds[2])
		b.WriteString(components.CardRow([]string{dayCard, summaryCard, topCard}))
	}

	return b.String()
}

// renderMonthGrid draws the month as a Sunday-first calendar. Each day
// shows its spending, colored by how heavy the day was relative to the
// month's peak.
func (a App) renderMonthGrid(monthStart, nextMonth, today, sel model.Date, cw int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(cw)

	cellW := (innerW - 6) / 7
	if cellW < 8 {
		cellW = 8
	}
	gridW := cellW*7 + 6

	// Per-day totals for the displayed month
	spendByDay := make(map[int]decimal.Decimal)
	incomeByDay := make(map[int]decimal.Decimal)
	for _, tx := range a.txs {
		if !tx.Date.InRange(monthStart, nextMonth) {
			continue
		}
		day := tx.Date.Day()
		if tx.Category == model.CategoryIncome {
			incomeByDay[day] = incomeByDay[day].Add(tx.Amount)
		} else {
			spendByDay[day] = spendByDay[day].Add(tx.Amount)
		}
	}

	monthMax := 0.0
	for _, v := range spendByDay {
		if f := v.InexactFloat64(); f > monthMax {
			monthMax = f
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	dayStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	todayStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright).Bold(true)
	selStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover).Bold(true).Underline(true)
	incomeStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var body strings.Builder

	// Weekday header
	weekdays := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	hdrCells := make([]string, 7)
	for i, wd := range weekdays {
		hdrCells[i] = headerStyle.Render(fmt.Sprintf("%-*s", cellW, wd))
	}
	body.WriteString(strings.Join(hdrCells, spaceStyle.Render(" ")))
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(strings.Repeat("─", gridW)))
	body.WriteString("\n")

	lead := int(monthStart.Weekday())
	daysInMonth := nextMonth.AddDays(-1).Day()
	isCurrentMonth := today.InRange(monthStart, nextMonth)

	blank := strings.Repeat(" ", cellW)
	sep := spaceStyle.Render(" ")

	for cell := 0; cell < lead+daysInMonth; cell += 7 {
		var line1, line2 []string
		for col := 0; col < 7; col++ {
			day := cell + col - lead + 1
			if day < 1 || day > daysInMonth {
				line1 = append(line1, spaceStyle.Render(blank))
				line2 = append(line2, spaceStyle.Render(blank))
				continue
			}

			numStyle := dayStyle
			if isCurrentMonth && day == today.Day() {
				numStyle = todayStyle
			}
			if day == sel.Day() {
				numStyle = selStyle
			}
			line1 = append(line1, numStyle.Render(fmt.Sprintf("%-*d", cellW, day)))

			spend := spendByDay[day]
			income := incomeByDay[day]
			switch {
			case spend.IsPositive():
				pct := 0.0
				if monthMax > 0 {
					pct = spend.InexactFloat64() / monthMax
				}
				heat := lipgloss.NewStyle().
					Foreground(lipgloss.Color(components.ColorForPct(pct))).
					Background(t.Surface)
				line2 = append(line2, heat.Render(fmt.Sprintf("%-*s", cellW, truncStr(a.money(spend), cellW))))
			case income.IsPositive():
				line2 = append(line2, incomeStyle.Render(fmt.Sprintf("%-*s", cellW, truncStr("+"+a.money(income), cellW))))
			default:
				line2 = append(line2, dimStyle.Render(fmt.Sprintf("%-*s", cellW, "·")))
			}
		}
		body.WriteString(strings.Join(line1, sep))
		body.WriteString("\n")
		body.WriteString(strings.Join(line2, sep))
		body.WriteString("\n")
	}

	body.WriteString(mutedStyle.Render(strings.Repeat("─", gridW)))
	body.WriteString("\n")
	body.WriteString(dimStyle.Render("[h/l] day  [j/k] week  [[/]] month  [esc] today"))

	title := "Calendar · " + monthStart.Format("January 2006")
	return components.ContentCard(title, body.String(), cw)
}

// renderDayBody lists everything recorded on the selected day.
func (a App) renderDayBody(sel model.Date) string {
	t := theme.Active

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	amtStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var dayTxs []model.Transaction
	for _, tx := range a.txs {
		if tx.Date.SameDay(sel) {
			dayTxs = append(dayTxs, tx)
		}
	}
	if len(dayTxs) == 0 {
		return dimStyle.Render("Nothing recorded this day.")
	}

	var in, out decimal.Decimal
	var b strings.Builder
	for _, tx := range dayTxs {
		catStyle := lipgloss.NewStyle().Foreground(categoryColor(tx.Category)).Background(t.Surface)
		amt := a.money(tx.Amount)
		if tx.Category == model.CategoryIncome {
			amt = "+" + amt
			in = in.Add(tx.Amount)
		} else {
			out = out.Add(tx.Amount)
		}
		b.WriteString(catStyle.Render("● "))
		b.WriteString(amtStyle.Render(fmt.Sprintf("%-16s", truncStr(tx.Description, 16))))
		b.WriteString(catStyle.Render(fmt.Sprintf("%10s", amt)))
		b.WriteString("\n")
	}

	b.WriteString(labelStyle.Render(fmt.Sprintf("%d entries · in %s · out %s",
		len(dayTxs), a.money(in), a.money(out))))

	return b.String()
}

func (a App) renderMonthSummaryBody(s model.Summary) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	orangeStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	netStyle := greenStyle
	if s.Net.IsNegative() {
		netStyle = orangeStyle
	}

	avg := decimal.Zero
	if s.ActiveDays > 0 {
		avg = s.TotalSpending.Div(decimal.NewFromInt(int64(s.ActiveDays)))
	}

	rows := []struct {
		label string
		value string
		style lipgloss.Style
	}{
		{"Income", a.money(s.Income), greenStyle},
		{"Spending", a.money(s.TotalSpending), orangeStyle},
		{"Net", a.delta(s.Net), netStyle},
		{"Transactions", cli.FormatNumber(int64(s.Transactions)), valueStyle},
		{"Daily average", a.money(avg), valueStyle},
	}

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-14s", r.label)))
		b.WriteString(r.style.Render(fmt.Sprintf(" %12s", r.value)))
		b.WriteString("\n")
	}
	return b.String()
}

// renderTopDaysBody lists the heaviest spending days, ordered by date.
func (a App) renderTopDaysBody(days []model.DailyStats) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	spendStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var active []model.DailyStats
	for _, d := range days {
		if d.Spending.IsPositive() {
			active = append(active, d)
		}
	}
	if len(active) == 0 {
		return labelStyle.Render("No spending this month")
	}

	limit := 5
	if len(active) < limit {
		limit = len(active)
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].Spending.GreaterThan(active[j].Spending)
	})
	top := active[:limit]
	sort.Slice(top, func(i, j int) bool {
		return top[i].Date.Before(top[j].Date.Time)
	})

	var b strings.Builder
	for _, d := range top {
		b.WriteString(valueStyle.Render(d.Date.Format("Mon Jan 02")))
		b.WriteString(spaceStyle.Render("  "))
		b.WriteString(spendStyle.Render(fmt.Sprintf("%10s", a.money(d.Spending))))
		b.WriteString(labelStyle.Render(fmt.Sprintf("  %d tx", d.Count)))
		b.WriteString("\n")
	}
	return b.String()
}
