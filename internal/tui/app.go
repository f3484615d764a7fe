// Package tui provides the interactive Bubble Tea dashboard for BudgetBuddy.
package tui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/backup"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/cli"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/config"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/ledger"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/pipeline"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/plan"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/store"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/tui/components"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// DataLoadedMsg is sent when the initial data load finishes.
type DataLoadedMsg struct {
	Txs      []model.Transaction
	Bills    []plan.Bill
	Goals    []plan.Goal
	Problems []string
	LoadTime time.Duration
}

// ProgressMsg reports ledger file parsing progress.
type ProgressMsg struct {
	Current int
	Total   int
}

// RefreshedMsg is sent when a reload after an edit or refresh completes.
type RefreshedMsg struct {
	Txs      []model.Transaction
	Bills    []plan.Bill
	Goals    []plan.Goal
	Problems []string
	LoadTime time.Duration
}

// Tab indices, matching the order of components.Tabs.
const (
	tabOverview = iota
	tabBudget
	tabTransactions
	tabPlanner
	tabCalendar
	tabSettings
)

// App is the root Bubble Tea model.
type App struct {
	// Data
	txs      []model.Transaction
	bills    []plan.Bill
	goals    []plan.Goal
	problems []string
	loaded   bool
	loadTime time.Duration

	// Derived for the current window
	cfg          config.Config
	windowTxs    []model.Transaction
	summary      model.Summary
	prevSummary  model.Summary
	dailyStats   []model.DailyStats
	months       []model.MonthlyStats
	alloc        model.Allocation
	kpis         model.KPIStats
	health       model.HealthScore
	recs         []string
	billStatuses []plan.BillStatus
	goalProgress []plan.GoalProgress

	// UI state
	width      int
	height     int
	activeTab  int
	showHelp   bool
	notice     string
	refreshing bool

	// Filter state: 0 means all recorded activity
	days int

	// Per-tab state
	txState  transactionsState
	planner  plannerState
	cal      calendarState
	settings settingsState

	// Add-transaction form (huh)
	addForm *huh.Form
	addVals addValues

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool

	// Loading state, fed by the channel-based progress subscription
	spinner     spinner.Model
	progress    int
	progressMax int
	loadSub     chan tea.Msg // progress + completion messages from loader goroutine

	led       *ledger.Ledger
	planStore *plan.Store
	noCache   bool
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	minContentHeight = 5 // minimum content area height
)

// loadConfigOrDefault loads config, returning defaults on error.
// This ensures the TUI can always start even if config is corrupted.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// NewApp creates a new TUI app model over the given data directory.
func NewApp(dataDir string, days int, noCache bool) App {
	cfg := loadConfigOrDefault()
	theme.SetActive(cfg.Appearance.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		cfg:       cfg,
		days:      days,
		needSetup: !config.Exists(),
		spinner:   sp,
		loadSub:   make(chan tea.Msg, 1),
		led:       ledger.New(dataDir),
		planStore: plan.NewStore(dataDir),
		noCache:   noCache,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.led, a.planStore, a.noCache, a.loadSub),
		a.spinner.Tick,
	)
}

// windowBounds returns the half-open [since, until) date range for the
// current day filter. Zero dates mean the range is unbounded.
func (a App) windowBounds() (model.Date, model.Date) {
	if a.days <= 0 {
		return model.Date{}, model.Date{}
	}
	today := model.Today()
	return today.AddDays(-(a.days - 1)), today.AddDays(1)
}

func (a *App) recompute() {
	since, until := a.windowBounds()

	a.windowTxs = pipeline.FilterByTime(a.txs, since, until)
	a.summary = pipeline.Summarize(a.txs, since, until)
	a.dailyStats = pipeline.AggregateDays(a.txs, since, until)
	a.months = pipeline.AggregateMonths(a.txs, since, until)

	// Previous period of the same length, immediately before
	if a.days > 0 {
		a.prevSummary = pipeline.Summarize(a.txs, since.AddDays(-a.days), since)
	} else {
		a.prevSummary = model.Summary{}
	}

	// Bill payment status is a calendar-month concept, independent of the
	// day filter.
	a.billStatuses = plan.StatusForMonth(a.bills, a.txs, model.Today())
	a.summary.UnpaidBills = plan.UnpaidCount(a.billStatuses)

	a.alloc = pipeline.Allocate(a.summary, a.cfg.Budget)
	a.kpis = pipeline.ComputeKPIs(a.summary, len(a.months))
	a.health = pipeline.ComputeHealth(a.summary, a.alloc, a.kpis)
	a.recs = pipeline.Recommendations(a.alloc, a.summary.UnpaidBills)
	a.goalProgress = plan.Progress(a.goals, a.txs)

	// Clamp cursors to the new data bounds
	filtered := a.searchFilteredTxs()
	if a.txState.cursor >= len(filtered) {
		a.txState.cursor = len(filtered) - 1
	}
	if a.txState.cursor < 0 {
		a.txState.cursor = 0
	}
	if a.planner.cursor >= len(a.billStatuses) {
		a.planner.cursor = len(a.billStatuses) - 1
	}
	if a.planner.cursor < 0 {
		a.planner.cursor = 0
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.addForm != nil || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == tabTransactions && !a.txState.searching {
				if a.txState.cursor > 0 {
					a.txState.cursor--
				}
			}
			return a, nil

		case tea.MouseButtonWheelDown:
			if a.activeTab == tabTransactions && !a.txState.searching {
				if a.txState.cursor < len(a.searchFilteredTxs())-1 {
					a.txState.cursor++
				}
			}
			return a, nil

		case tea.MouseButtonLeft:
			// Tab bar occupies the first line
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 && tab < len(components.Tabs) {
					a.activeTab = tab
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		// Global: quit
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loaded {
			return a, nil
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// Add-transaction form intercepts all keys
		if a.addForm != nil {
			return a.updateAddForm(msg)
		}

		// Settings tab has its own keybindings (text input)
		if a.activeTab == tabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}

		// Transactions search mode intercepts all keys when active
		if a.activeTab == tabTransactions && a.txState.searching {
			return a.updateTransactionsSearch(msg)
		}

		// Any other key clears the last action notice
		a.notice = ""

		// Help toggle
		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}

		// Dismiss help
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		// Transactions tab has its own keybindings
		if a.activeTab == tabTransactions {
			filtered := a.searchFilteredTxs()

			// Pending delete confirmation swallows the next key
			if a.txState.confirmDelete {
				a.txState.confirmDelete = false
				if key == "y" && a.txState.cursor < len(filtered) {
					return a.deleteSelected(filtered[a.txState.cursor])
				}
				return a, nil
			}

			switch key {
			case "/":
				a.txState.searching = true
				a.txState.searchInput = newSearchInput()
				a.txState.searchInput.Focus()
				return a, a.txState.searchInput.Cursor.BlinkCmd()
			case "q":
				if a.txState.viewMode == txViewDetail {
					a.txState.viewMode = txViewSplit
					return a, nil
				}
				return a, tea.Quit
			case "enter":
				if a.txState.viewMode == txViewSplit {
					a.txState.viewMode = txViewDetail
				}
				return a, nil
			case "f":
				a.txState.catFilter = (a.txState.catFilter + 1) % (len(model.Categories) + 1)
				a.txState.cursor = 0
				a.txState.offset = 0
				return a, nil
			case "esc":
				// Clear search if active, otherwise exit detail view
				if a.txState.searchQuery != "" {
					a.txState.searchQuery = ""
					a.txState.cursor = 0
					a.txState.offset = 0
					return a, nil
				}
				if a.txState.viewMode == txViewDetail {
					a.txState.viewMode = txViewSplit
				}
				return a, nil
			case "j", "down":
				if a.txState.cursor < len(filtered)-1 {
					a.txState.cursor++
				}
				return a, nil
			case "k", "up":
				if a.txState.cursor > 0 {
					a.txState.cursor--
				}
				return a, nil
			case "g":
				a.txState.cursor = 0
				a.txState.offset = 0
				return a, nil
			case "G":
				a.txState.cursor = len(filtered) - 1
				if a.txState.cursor < 0 {
					a.txState.cursor = 0
				}
				return a, nil
			case "d":
				if a.txState.cursor < len(filtered) {
					a.txState.confirmDelete = true
				}
				return a, nil
			}
		}

		// Planner tab: navigate bills, pay the selected one
		if a.activeTab == tabPlanner {
			switch key {
			case "j", "down":
				if a.planner.cursor < len(a.billStatuses)-1 {
					a.planner.cursor++
				}
				return a, nil
			case "k", "up":
				if a.planner.cursor > 0 {
					a.planner.cursor--
				}
				return a, nil
			case "enter":
				return a.paySelectedBill()
			}
		}

		// Calendar tab: day navigation plus month paging
		if a.activeTab == tabCalendar {
			sel := a.cal.selected
			if sel.IsZero() {
				sel = model.Today()
			}
			switch key {
			case "h", "left":
				a.cal.selected = sel.AddDays(-1)
				return a, nil
			case "l", "right":
				a.cal.selected = sel.AddDays(1)
				return a, nil
			case "j", "down":
				a.cal.selected = sel.AddDays(7)
				return a, nil
			case "k", "up":
				a.cal.selected = sel.AddDays(-7)
				return a, nil
			case "[":
				a.cal.selected = model.DateOf(sel.AddDate(0, -1, 0))
				return a, nil
			case "]":
				a.cal.selected = model.DateOf(sel.AddDate(0, 1, 0))
				return a, nil
			case "esc":
				a.cal.selected = model.Date{}
				return a, nil
			}
		}

		// Settings tab navigation (non-editing mode)
		if a.activeTab == tabSettings {
			switch key {
			case "j", "down":
				if a.settings.cursor < settingsFieldCount-1 {
					a.settings.cursor++
				}
				return a, nil
			case "k", "up":
				if a.settings.cursor > 0 {
					a.settings.cursor--
				}
				return a, nil
			case "enter":
				return a.settingsStartEdit()
			case "B":
				return a.backupNow()
			}
		}

		// Add a transaction from any tab
		if key == "a" {
			a.addVals = addValues{Category: string(model.CategoryEssential)}
			a.addForm = newAddForm(&a.addVals)
			return a, a.addForm.Init()
		}

		// Global quit from non-transactions tabs
		if key == "q" {
			return a, tea.Quit
		}

		// Manual reload
		if key == "r" && !a.refreshing {
			a.refreshing = true
			return a, refreshDataCmd(a.led, a.planStore, a.noCache)
		}

		// Tab navigation
		switch key {
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		default:
			if len(key) == 1 {
				if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
					a.activeTab = idx
				}
			}
		}
		return a, nil

	case DataLoadedMsg:
		a.txs = msg.Txs
		a.bills = msg.Bills
		a.goals = msg.Goals
		a.problems = msg.Problems
		a.loaded = true
		a.loadTime = msg.LoadTime
		a.recompute()

		// Activate first-run setup after data loads
		if a.needSetup {
			a.setupForm = newSetupForm(len(a.txs), a.led.DataDir(), &a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}

		return a, nil

	case ProgressMsg:
		a.progress = msg.Current
		a.progressMax = msg.Total
		return a, waitForLoadMsg(a.loadSub)

	case RefreshedMsg:
		a.refreshing = false
		a.txs = msg.Txs
		a.bills = msg.Bills
		a.goals = msg.Goals
		a.problems = msg.Problems
		a.loadTime = msg.LoadTime
		a.recompute()
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the active form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.addForm != nil {
		return a.updateAddForm(msg)
	}

	return a, nil
}

// deleteSelected removes the selected transaction from its ledger file
// and reloads.
func (a App) deleteSelected(tx model.Transaction) (tea.Model, tea.Cmd) {
	txs, err := a.led.Read(tx.Category)
	if err == nil {
		err = fmt.Errorf("transaction not found in %s", tx.Category.FileName())
		for i, cand := range txs {
			if cand.Key() == tx.Key() {
				err = a.led.Remove(tx.Category, i)
				break
			}
		}
	}
	if err != nil {
		a.notice = "delete failed: " + err.Error()
		return a, nil
	}
	a.notice = "deleted " + truncStr(tx.Description, 30)
	a.refreshing = true
	return a, refreshDataCmd(a.led, a.planStore, a.noCache)
}

// paySelectedBill appends the payment row for the selected unpaid bill.
func (a App) paySelectedBill() (tea.Model, tea.Cmd) {
	if a.planner.cursor >= len(a.billStatuses) {
		return a, nil
	}
	st := a.billStatuses[a.planner.cursor]
	if st.Paid {
		a.notice = st.Name + " is already paid this month"
		return a, nil
	}
	if err := plan.Pay(a.led, st.Bill, model.Today()); err != nil {
		a.notice = "payment failed: " + err.Error()
		return a, nil
	}
	a.notice = fmt.Sprintf("marked %s paid (%s)", st.Name, a.money(st.Amount))
	a.refreshing = true
	return a, refreshDataCmd(a.led, a.planStore, a.noCache)
}

// backupNow snapshots the data directory from the settings tab.
func (a App) backupNow() (tea.Model, tea.Cmd) {
	dest, err := backup.Create(a.led.DataDir())
	if err != nil {
		a.notice = "backup failed: " + err.Error()
		return a, nil
	}
	cfg := loadConfigOrDefault()
	_ = config.MarkBackup(&cfg)
	a.cfg = cfg
	a.notice = "backup saved to " + filepath.Base(dest)
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		a.saveSetupConfig()
		a.recompute()
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) updateAddForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.addForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.addForm = f
	}

	if a.addForm.State == huh.StateCompleted {
		a.addForm = nil
		tx, err := a.addVals.transaction()
		if err == nil {
			err = a.led.Append(tx)
		}
		if err != nil {
			a.notice = "add failed: " + err.Error()
			return a, nil
		}
		a.notice = fmt.Sprintf("added %s to %s", a.money(tx.Amount), tx.Category.DisplayName())
		a.refreshing = true
		return a, refreshDataCmd(a.led, a.planStore, a.noCache)
	}

	if a.addForm.State == huh.StateAborted {
		a.addForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// money formats an amount with the configured currency.
func (a App) money(d decimal.Decimal) string {
	return cli.FormatMoney(d, a.cfg.General.CurrencySymbol, a.cfg.General.DecimalPlaces)
}

// delta formats a signed difference with the configured currency.
func (a App) delta(d decimal.Decimal) string {
	return cli.FormatDelta(d, a.cfg.General.CurrencySymbol, a.cfg.General.DecimalPlaces)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	// First-run setup wizard
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.addForm != nil {
		return a.viewAddForm()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  BudgetBuddy needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active
	w := a.width
	h := a.height

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	spinnerStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface)

	countStyle := lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ BudgetBuddy"))
	b.WriteString(subtitleStyle.Render(" · Personal Budget Tracker"))
	b.WriteString("\n\n")

	if a.progressMax > 0 {
		barW := 40
		if barW > w-30 {
			barW = w - 30
		}
		if barW < 20 {
			barW = 20
		}
		pct := float64(a.progress) / float64(a.progressMax)
		b.WriteString(spinnerStyle.Render(a.spinner.View()))
		b.WriteString(subtitleStyle.Render(" Reading ledgers\n\n"))
		b.WriteString(components.ProgressBar(pct, barW))
		b.WriteString("\n")
		b.WriteString(countStyle.Render(cli.FormatNumber(int64(a.progress))))
		b.WriteString(subtitleStyle.Render(" / "))
		b.WriteString(countStyle.Render(cli.FormatNumber(int64(a.progressMax))))
		b.WriteString(subtitleStyle.Render(" files"))
	} else {
		b.WriteString(spinnerStyle.Render(a.spinner.View()))
		b.WriteString(subtitleStyle.Render(" Opening ledgers..."))
	}

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewAddForm() string {
	t := theme.Active

	formW := 64
	if formW > a.width-4 {
		formW = a.width - 4
	}

	card := components.ContentCard("Add Transaction", a.addForm.View(), formW)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active
	h := a.height
	w := a.width

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	navBindings := []struct{ key, desc string }{
		{"o b t p c s", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Navigate lists"},
		{"g G", "First / Last entry"},
		{"h j k l", "Move by day / week (calendar)"},
		{"[ ]", "Previous / Next month (calendar)"},
	}
	for _, bind := range navBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-12s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Actions"))
	b.WriteString("\n")
	actionBindings := []struct{ key, desc string }{
		{"a", "Add a transaction"},
		{"d", "Delete selected transaction"},
		{"/", "Search transactions"},
		{"f", "Cycle category filter"},
		{"Enter", "Expand / Pay bill / Edit setting"},
		{"Esc", "Back / Cancel"},
		{"r", "Reload ledger files"},
		{"B", "Back up data (settings tab)"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range actionBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-12s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Render header (tab bar + filter pill)
	filterPillStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	filterAccentStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	window := "all"
	if a.days > 0 {
		window = fmt.Sprintf("%dd", a.days)
	}
	filterStr := filterPillStyle.Render(" ") + filterAccentStyle.Render(window)
	if c := a.txState.filterCategory(); c != "" {
		filterStr += filterPillStyle.Render(" │ ") + filterAccentStyle.Render(string(c))
	}
	if a.txState.searchQuery != "" {
		filterStr += filterPillStyle.Render(" │ /") + filterAccentStyle.Render(a.txState.searchQuery)
	}
	filterStr += filterPillStyle.Render(" ")

	filterRowStyle := lipgloss.NewStyle().
		Background(t.Surface).
		Width(w)

	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		filterRowStyle.Render(filterStr)

	// 2. Render status bar
	loadStr := fmt.Sprintf("%.1fs", a.loadTime.Seconds())
	if a.refreshing {
		loadStr = "reloading..."
	}
	statusBar := components.RenderStatusBar(w, a.statusNotice(), len(a.problems), len(a.txs), loadStr)

	// 3. Calculate content zone height
	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Render tab content
	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabBudget:
		content = a.renderBudgetTab(cw)
	case tabTransactions:
		content = a.renderTransactionsContent(a.searchFilteredTxs(), cw, contentH)
	case tabPlanner:
		content = a.renderPlannerTab(cw)
	case tabCalendar:
		content = a.renderCalendarTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Fill each line to full width with background (fixes gaps between cards)
	content = fillLinesWithBackground(content, cw, t.Background)

	// 7. Place content with background fill (handles centering when w > cw)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	// 8. Stack vertically
	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	// 9. Ensure the entire terminal is filled with background
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// statusNotice picks what the middle of the status bar shows: a pending
// delete prompt wins over the last action notice.
func (a App) statusNotice() string {
	if a.txState.confirmDelete {
		return "delete selected transaction? [y/n]"
	}
	if a.notice != "" {
		return a.notice
	}
	if a.loaded && config.BackupDue(a.cfg) {
		return "backup overdue, run `budgetbuddy backup`"
	}
	return ""
}

// ─── Loading ────────────────────────────────────────────────────

// loadDataCmd starts the data loading pipeline in a background goroutine.
// It streams ProgressMsg updates and a final DataLoadedMsg through sub.
func loadDataCmd(led *ledger.Ledger, planStore *plan.Store, noCache bool, sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			start := time.Now()

			// Progress callback: non-blocking send so workers aren't stalled.
			// If the channel is full, we skip this update; the next one catches up.
			progressFn := func(current, total int) {
				select {
				case sub <- ProgressMsg{Current: current, Total: total}:
				default:
				}
			}

			lr := loadAll(led, noCache, progressFn)

			msg := DataLoadedMsg{
				Txs:      lr.Transactions,
				Problems: lr.Problems,
				LoadTime: time.Since(start),
			}
			msg.Bills, msg.Goals, msg.Problems = loadPlans(planStore, msg.Problems)
			sub <- msg
		}()

		// Block until the first message (either ProgressMsg or DataLoadedMsg)
		return <-sub
	}
}

// waitForLoadMsg blocks until the next message arrives from the loader goroutine.
func waitForLoadMsg(sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}

// refreshDataCmd reloads everything in the background (no progress UI).
func refreshDataCmd(led *ledger.Ledger, planStore *plan.Store, noCache bool) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()

		lr := loadAll(led, noCache, nil)

		msg := RefreshedMsg{
			Txs:      lr.Transactions,
			Problems: lr.Problems,
			LoadTime: time.Since(start),
		}
		msg.Bills, msg.Goals, msg.Problems = loadPlans(planStore, msg.Problems)
		return msg
	}
}

// loadAll runs the cached pipeline when possible, degrading to a plain
// parse when the cache cannot be opened.
func loadAll(led *ledger.Ledger, noCache bool, progressFn pipeline.ProgressFunc) pipeline.LoadResult {
	if !noCache {
		if cache, err := store.Open(pipeline.CachePath()); err == nil {
			cr := pipeline.LoadWithCache(led, cache, progressFn)
			_ = cache.Close()
			return cr.LoadResult
		}
	}
	return *pipeline.Load(led, progressFn)
}

func loadPlans(planStore *plan.Store, problems []string) ([]plan.Bill, []plan.Goal, []string) {
	bills, err := planStore.LoadBills()
	if err != nil {
		problems = append(problems, err.Error())
	}
	goals, err := planStore.LoadGoals()
	if err != nil {
		problems = append(problems, err.Error())
	}
	return bills, goals, problems
}

// ─── Helpers ────────────────────────────────────────────────────

// chartDateLabels builds compact X-axis labels for a chronological date series.
// First label and month boundaries get the month abbreviation, everything
// else just the day number. days is sorted newest-first; labels are
// returned oldest-left.
func chartDateLabels(days []model.DailyStats) []string {
	n := len(days)
	labels := make([]string, n)
	dates := make([]time.Time, n)
	for i, d := range days {
		dates[n-1-i] = d.Date.Time
	}
	prevMonth := time.Month(0)
	for i, dt := range dates {
		m := dt.Month()
		day := dt.Day()
		switch {
		case i == 0:
			labels[i] = dt.Format("Jan")
		case i == n-1:
			labels[i] = strconv.Itoa(day)
		case m != prevMonth:
			labels[i] = dt.Format("Jan")
		default:
			labels[i] = strconv.Itoa(day)
		}
		prevMonth = m
	}
	return labels
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}

// fillLinesWithBackground pads each line to width w with background color.
// This ensures gaps between cards and empty lines have proper background fill.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 1 // leading space before the first tab
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)

		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Two-space separator between tabs
		if i < len(components.Tabs)-1 {
			pos += 2
		}
	}
	return -1
}

// ─── Transaction Search ─────────────────────────────────────────

// updateTransactionsSearch handles key events while in search mode.
func (a App) updateTransactionsSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "enter":
		// Apply search and exit search mode
		a.txState.searchQuery = strings.TrimSpace(a.txState.searchInput.Value())
		a.txState.searching = false
		a.txState.cursor = 0
		a.txState.offset = 0
		return a, nil

	case "esc":
		// Cancel search mode without applying
		a.txState.searching = false
		return a, nil
	}

	var cmd tea.Cmd
	a.txState.searchInput, cmd = a.txState.searchInput.Update(msg)
	return a, cmd
}

// searchFilteredTxs returns the window's transactions narrowed by the
// category filter and the current search query.
func (a App) searchFilteredTxs() []model.Transaction {
	txs := a.windowTxs
	if c := a.txState.filterCategory(); c != "" {
		txs = pipeline.FilterByCategory(txs, c)
	}
	if a.txState.searchQuery == "" {
		return txs
	}
	return pipeline.Search(txs, a.txState.searchQuery)
}
