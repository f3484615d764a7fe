package tui

import (
	"fmt"
	"strings"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/cli"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/tui/components"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// Transactions view modes. Split is iota (0) so it's the default zero value.
const (
	txViewSplit  = iota // List + full detail side by side (default)
	txViewDetail        // Full-screen detail
)

// transactionsState holds the transactions tab state.
type transactionsState struct {
	cursor        int
	viewMode      int
	offset        int // scroll offset for the list
	catFilter     int // 0 = all, otherwise 1-based index into model.Categories
	searching     bool
	searchInput   textinput.Model
	searchQuery   string
	confirmDelete bool
}

// filterCategory resolves the cycling filter to a category, empty = all.
func (ts transactionsState) filterCategory() model.Category {
	if ts.catFilter <= 0 || ts.catFilter > len(model.Categories) {
		return ""
	}
	return model.Categories[ts.catFilter-1]
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "description, category or amount..."
	ti.CharLimit = 64
	ti.Width = 40
	return ti
}

// categoryColor maps a ledger category to its display color.
func categoryColor(c model.Category) lipgloss.Color {
	t := theme.Active
	switch c {
	case model.CategoryIncome:
		return t.Green
	case model.CategoryEssential:
		return t.Blue
	case model.CategoryNonEssential:
		return t.Magenta
	case model.CategoryBill:
		return t.Orange
	case model.CategorySavings:
		return t.Cyan
	}
	return t.TextPrimary
}

func (a App) renderTransactionsContent(filtered []model.Transaction, cw, h int) string {
	t := theme.Active
	ts := a.txState

	var prefix string
	if ts.searching {
		prefix = components.ContentCard("Search", ts.searchInput.View(), cw) + "\n"
		h -= lipgloss.Height(prefix)
	}

	if len(filtered) == 0 {
		empty := "No transactions recorded. Press [a] to add one."
		if ts.searchQuery != "" {
			empty = fmt.Sprintf("No matches for /%s. Press Esc to clear.", ts.searchQuery)
		} else if c := ts.filterCategory(); c != "" {
			empty = fmt.Sprintf("No %s transactions here. Press [f] to cycle the filter.", c.DisplayName())
		}
		return prefix + components.ContentCard("Transactions",
			lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render(empty), cw)
	}

	switch ts.viewMode {
	case txViewDetail:
		return prefix + a.renderTransactionDetail(filtered, cw)
	default:
		return prefix + a.renderTransactionsSplit(filtered, cw, h)
	}
}

func (a App) renderTransactionsSplit(txs []model.Transaction, cw, h int) string {
	t := theme.Active
	ts := a.txState

	if ts.cursor >= len(txs) {
		return ""
	}

	leftW := cw / 3
	if leftW < 34 {
		leftW = 34
	}
	rightW := cw - leftW

	// Left pane: condensed transaction list
	leftInner := components.CardInnerWidth(leftW)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var leftBody strings.Builder
	visible := h - 6 // card border (2) + header row (2) + footer hint (2)
	if visible < 5 {
		visible = 5
	}

	offset := ts.offset
	if ts.cursor < offset {
		offset = ts.cursor
	}
	if ts.cursor >= offset+visible {
		offset = ts.cursor - visible + 1
	}

	end := offset + visible
	if end > len(txs) {
		end = len(txs)
	}

	descW := leftInner - 18 // date (6) + amount (10) + gaps
	if descW < 6 {
		descW = 6
	}

	selectedStyle := lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Background(t.SurfaceBright).
		Bold(true)
	rowStyles := make(map[model.Category]lipgloss.Style, len(model.Categories))
	for _, c := range model.Categories {
		rowStyles[c] = lipgloss.NewStyle().Foreground(categoryColor(c)).Background(t.Surface)
	}

	for i := offset; i < end; i++ {
		tx := txs[i]
		amt := a.money(tx.Amount)
		if tx.Category == model.CategoryIncome {
			amt = "+" + amt
		}

		line := fmt.Sprintf("%-6s %10s %s",
			tx.Date.Format("Jan 02"),
			truncStr(amt, 10),
			truncStr(tx.Description, descW))
		if lw := len([]rune(line)); lw > leftInner {
			line = truncStr(line, leftInner)
		}

		if i == ts.cursor {
			leftBody.WriteString(selectedStyle.Render(line))
		} else {
			leftBody.WriteString(rowStyles[tx.Category].Render(line))
		}
		leftBody.WriteString("\n")
	}

	leftTitle := fmt.Sprintf("Transactions (%s)", cli.FormatNumber(int64(len(txs))))
	if c := ts.filterCategory(); c != "" {
		leftTitle = fmt.Sprintf("%s (%s)", c.DisplayName(), cli.FormatNumber(int64(len(txs))))
	}
	leftCard := components.ContentCard(leftTitle, leftBody.String(), leftW)

	// Right pane: full transaction detail
	sel := txs[ts.cursor]
	rightBody := a.renderTxDetailBody(sel, rightW, headerStyle, mutedStyle)

	rightCard := components.ContentCard(sel.Date.Format("Monday, Jan 2"), rightBody, rightW)

	return components.CardRow([]string{leftCard, rightCard})
}

func (a App) renderTransactionDetail(txs []model.Transaction, cw int) string {
	t := theme.Active
	ts := a.txState

	if ts.cursor >= len(txs) {
		return ""
	}
	sel := txs[ts.cursor]

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	body := a.renderTxDetailBody(sel, cw, headerStyle, mutedStyle)

	return components.ContentCard(sel.Date.Format("Monday, Jan 2 2006"), body, cw)
}

// renderTxDetailBody generates the full detail content for a transaction.
// Used by both the split right pane and the full-screen detail view.
func (a App) renderTxDetailBody(sel model.Transaction, w int, headerStyle, mutedStyle lipgloss.Style) string {
	t := theme.Active
	innerW := components.CardInnerWidth(w)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	catStyle := lipgloss.NewStyle().Foreground(categoryColor(sel.Category)).Background(t.Surface).Bold(true)

	amountColor := t.Orange
	if sel.Category == model.CategoryIncome {
		amountColor = t.Green
	}
	amountStyle := lipgloss.NewStyle().Foreground(amountColor).Background(t.Surface).Bold(true)

	var body strings.Builder
	desc := sel.Description
	if desc == "" {
		desc = "(no description)"
	}
	body.WriteString(valueStyle.Render(truncStr(desc, innerW)))
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	body.WriteString("\n\n")

	body.WriteString(fmt.Sprintf("%s %s    %s %s\n",
		labelStyle.Render("Amount:"),
		amountStyle.Render(a.money(sel.Amount)),
		labelStyle.Render("Category:"),
		catStyle.Render(sel.Category.DisplayName())))
	body.WriteString(fmt.Sprintf("%s %s\n\n",
		labelStyle.Render("Ledger:"),
		valueStyle.Render(sel.Category.FileName())))

	// Same-day activity
	var sameDay []model.Transaction
	for _, tx := range a.txs {
		if tx.Date.SameDay(sel.Date) && tx.Key() != sel.Key() {
			sameDay = append(sameDay, tx)
		}
	}
	if len(sameDay) > 0 {
		body.WriteString(headerStyle.Render("SAME DAY"))
		body.WriteString("\n")
		limit := 5
		if len(sameDay) < limit {
			limit = len(sameDay)
		}
		dayDescW := innerW - 28
		if dayDescW < 8 {
			dayDescW = 8
		}
		for _, tx := range sameDay[:limit] {
			body.WriteString(lipgloss.NewStyle().Foreground(categoryColor(tx.Category)).Background(t.Surface).
				Render(fmt.Sprintf("%-14s", truncStr(tx.Category.DisplayName(), 14))))
			body.WriteString(valueStyle.Render(fmt.Sprintf(" %10s ", a.money(tx.Amount))))
			body.WriteString(mutedStyle.Render(truncStr(tx.Description, dayDescW)))
			body.WriteString("\n")
		}
		if len(sameDay) > limit {
			body.WriteString(mutedStyle.Render(fmt.Sprintf("... and %d more", len(sameDay)-limit)))
			body.WriteString("\n")
		}
		body.WriteString("\n")
	}

	// Category context for the current window
	catTotal := a.summary.ByCategory(sel.Category)
	body.WriteString(headerStyle.Render("CATEGORY THIS PERIOD"))
	body.WriteString("\n")
	body.WriteString(fmt.Sprintf("%s %s",
		labelStyle.Render("Total:"),
		valueStyle.Render(a.money(catTotal))))
	if sel.Category != model.CategoryIncome && a.summary.TotalSpending.IsPositive() {
		share := catTotal.Div(a.summary.TotalSpending).InexactFloat64() * 100
		body.WriteString(fmt.Sprintf("    %s %s",
			labelStyle.Render("Share of spending:"),
			valueStyle.Render(fmt.Sprintf("%.0f%%", share))))
	}
	body.WriteString("\n")

	body.WriteString("\n")
	body.WriteString(mutedStyle.Render("[Enter] expand  [j/k] navigate  [f] filter  [d] delete  [/] search  [q] back"))

	return body.String()
}
