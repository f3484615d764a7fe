package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/cli"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/config"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/ledger"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/plan"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/tui/components"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTheme = iota
	settingsFieldCurrency
	settingsFieldSymbol
	settingsFieldDecimals
	settingsFieldDateFormat
	settingsFieldDataDir
	settingsFieldEssentials
	settingsFieldWants
	settingsFieldSavings
	settingsFieldBillDays
	settingsFieldAlertPct
	settingsFieldBackupDays
	settingsFieldCount // sentinel
)

// settingsFieldCount is used by app.go for cursor bounds checking

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40
	return ti
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	cfg := a.cfg
	a.settings.editing = true
	a.settings.saved = false

	ti := newSettingsInput()

	switch a.settings.cursor {
	case settingsFieldTheme:
		names := make([]string, len(theme.All))
		for i, t := range theme.All {
			names[i] = t.Name
		}
		ti.Placeholder = strings.Join(names, ", ")
		ti.SetValue(cfg.Appearance.Theme)
	case settingsFieldCurrency:
		ti.Placeholder = "USD, EUR, GBP..."
		ti.SetValue(cfg.General.Currency)
	case settingsFieldSymbol:
		ti.Placeholder = "$"
		ti.SetValue(cfg.General.CurrencySymbol)
	case settingsFieldDecimals:
		ti.Placeholder = "2 (0 to 4)"
		ti.SetValue(strconv.Itoa(cfg.General.DecimalPlaces))
	case settingsFieldDateFormat:
		ti.Placeholder = "2006-01-02 (Go reference layout)"
		ti.SetValue(cfg.General.DateFormat)
	case settingsFieldDataDir:
		ti.Placeholder = "path to the budget CSVs"
		ti.CharLimit = 256
		ti.SetValue(a.led.DataDir())
	case settingsFieldEssentials:
		ti.Placeholder = "50 (split must sum to 100)"
		ti.SetValue(strconv.FormatInt(cfg.Budget.EssentialsPct, 10))
	case settingsFieldWants:
		ti.Placeholder = "30 (split must sum to 100)"
		ti.SetValue(strconv.FormatInt(cfg.Budget.NonEssentialsPct, 10))
	case settingsFieldSavings:
		ti.Placeholder = "20 (split must sum to 100)"
		ti.SetValue(strconv.FormatInt(cfg.Budget.SavingsPct, 10))
	case settingsFieldBillDays:
		ti.Placeholder = "7 (days ahead to warn)"
		ti.SetValue(strconv.Itoa(cfg.Budget.UpcomingBillDays))
	case settingsFieldAlertPct:
		ti.Placeholder = "10 (percent over target)"
		ti.SetValue(strconv.Itoa(cfg.Alerts.OverspendThresholdPct))
	case settingsFieldBackupDays:
		ti.Placeholder = "7 (0 disables the reminder)"
		ti.SetValue(strconv.Itoa(cfg.Alerts.BackupReminderDays))
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		// A new data directory needs a full reload from disk
		if dir := a.cfg.General.DataDir; a.settings.saved && a.settings.cursor == settingsFieldDataDir &&
			dir != "" && dir != a.led.DataDir() {
			a.led = ledger.New(dir)
			a.planStore = plan.NewStore(dir)
			a.refreshing = true
			return a, refreshDataCmd(a.led, a.planStore, a.noCache)
		}
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a *App) settingsSave() {
	cfg := loadConfigOrDefault()
	val := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldTheme:
		for _, t := range theme.All {
			if t.Name == val {
				cfg.Appearance.Theme = val
				theme.SetActive(val)
				break
			}
		}
	case settingsFieldCurrency:
		code := strings.ToUpper(val)
		if len(code) >= 3 && len(code) <= 4 {
			cfg.General.Currency = code
			for _, c := range config.Currencies {
				if c.Code == code {
					cfg.General.CurrencySymbol = c.Symbol
				}
			}
		}
	case settingsFieldSymbol:
		if val != "" {
			cfg.General.CurrencySymbol = val
		}
	case settingsFieldDecimals:
		if d, err := strconv.Atoi(val); err == nil && d >= 0 && d <= 4 {
			cfg.General.DecimalPlaces = d
		}
	case settingsFieldDateFormat:
		if val != "" {
			cfg.General.DateFormat = val
		}
	case settingsFieldDataDir:
		if val != "" {
			cfg.General.DataDir = val
		}
	case settingsFieldEssentials:
		if p, err := strconv.ParseInt(val, 10, 64); err == nil && p >= 0 && p <= 100 {
			cfg.Budget.EssentialsPct = p
		}
	case settingsFieldWants:
		if p, err := strconv.ParseInt(val, 10, 64); err == nil && p >= 0 && p <= 100 {
			cfg.Budget.NonEssentialsPct = p
		}
	case settingsFieldSavings:
		if p, err := strconv.ParseInt(val, 10, 64); err == nil && p >= 0 && p <= 100 {
			cfg.Budget.SavingsPct = p
		}
	case settingsFieldBillDays:
		if d, err := strconv.Atoi(val); err == nil && d > 0 {
			cfg.Budget.UpcomingBillDays = d
		}
	case settingsFieldAlertPct:
		if p, err := strconv.Atoi(val); err == nil && p >= 0 && p <= 100 {
			cfg.Alerts.OverspendThresholdPct = p
		}
	case settingsFieldBackupDays:
		if d, err := strconv.Atoi(val); err == nil && d >= 0 {
			cfg.Alerts.BackupReminderDays = d
		}
	}

	a.settings.saveErr = config.Save(cfg)
	if a.settings.saveErr == nil {
		a.cfg = cfg
		a.recompute()
	}
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := a.cfg

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	type field struct {
		label string
		value string
	}

	fields := []field{
		{"Theme", cfg.Appearance.Theme},
		{"Currency", cfg.General.Currency},
		{"Currency Symbol", cfg.General.CurrencySymbol},
		{"Decimal Places", strconv.Itoa(cfg.General.DecimalPlaces)},
		{"Date Format", cfg.General.DateFormat},
		{"Data Directory", a.led.DataDir()},
		{"Essentials %", fmt.Sprintf("%d%%", cfg.Budget.EssentialsPct)},
		{"Non-Essentials %", fmt.Sprintf("%d%%", cfg.Budget.NonEssentialsPct)},
		{"Savings %", fmt.Sprintf("%d%%", cfg.Budget.SavingsPct)},
		{"Upcoming Bill Days", fmt.Sprintf("%dd", cfg.Budget.UpcomingBillDays)},
		{"Overspend Alert", fmt.Sprintf("%d%%", cfg.Alerts.OverspendThresholdPct)},
		{"Backup Reminder", fmt.Sprintf("%dd", cfg.Alerts.BackupReminderDays)},
	}

	var formBody strings.Builder
	for i, f := range fields {
		// Show text input if currently editing this field
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			// Selected row with marker and highlight
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker)
			formBody.WriteString(label)
			formBody.WriteString(value)
			// Use lipgloss.Width() for correct visual width calculation
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			innerW := components.CardInnerWidth(cw)
			padLen := innerW - usedWidth
			if padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			// Normal row
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel  [B] back up now"))

	// General info card
	lastBackup := "(never)"
	if cfg.Alerts.LastBackup != "" {
		if ts, err := time.Parse(time.RFC3339, cfg.Alerts.LastBackup); err == nil {
			lastBackup = ts.Local().Format("Jan 02 15:04")
		}
	}
	backupLine := valueStyle.Render(lastBackup)
	if config.BackupDue(cfg) {
		backupLine += warnStyle.Render("  backup due")
	}

	txLine := cli.FormatNumber(int64(len(a.txs)))
	if len(a.problems) > 0 {
		txLine += fmt.Sprintf("  (%d file warnings)", len(a.problems))
	}

	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Data directory:  ") + valueStyle.Render(a.led.DataDir()) + "\n")
	infoBody.WriteString(labelStyle.Render("Transactions:    ") + valueStyle.Render(txLine) + "\n")
	infoBody.WriteString(labelStyle.Render("Load time:       ") + valueStyle.Render(fmt.Sprintf("%.1fs", a.loadTime.Seconds())) + "\n")
	infoBody.WriteString(labelStyle.Render("Config file:     ") + valueStyle.Render(config.ConfigPath()) + "\n")
	infoBody.WriteString(labelStyle.Render("Last backup:     ") + backupLine)

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))

	return b.String()
}
