package tui

import (
	"fmt"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/cli"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/config"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// setupValues holds the first-run wizard answers.
type setupValues struct {
	Theme    string
	Currency string
	Split    string
}

// newSetupForm builds the first-run wizard shown when no config exists yet.
func newSetupForm(txCount int, dataDir string, vals *setupValues) *huh.Form {
	if vals.Theme == "" {
		vals.Theme = theme.FlexokiDark.Name
	}
	if vals.Currency == "" {
		vals.Currency = "USD"
	}
	if vals.Split == "" {
		vals.Split = "50/30/20"
	}

	note := fmt.Sprintf("No transactions yet in %s. Press [a] after setup to add your first.", dataDir)
	if txCount > 0 {
		note = fmt.Sprintf("Found %s existing transactions in %s.", cli.FormatNumber(int64(txCount)), dataDir)
	}

	themeOpts := make([]huh.Option[string], len(theme.All))
	for i, t := range theme.All {
		themeOpts[i] = huh.NewOption(t.Name, t.Name)
	}

	currencyOpts := make([]huh.Option[string], len(config.Currencies))
	for i, c := range config.Currencies {
		currencyOpts[i] = huh.NewOption(fmt.Sprintf("%s (%s)", c.Name, c.Symbol), c.Code)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("◈ Welcome to BudgetBuddy").
				Description(note),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
			huh.NewSelect[string]().
				Title("Currency").
				Options(currencyOpts...).
				Value(&vals.Currency),
			huh.NewInput().
				Title("Budget split").
				Description("needs/wants/savings, must sum to 100").
				Placeholder("50/30/20").
				Value(&vals.Split).
				Validate(func(s string) error {
					_, _, _, err := config.ParseSplit(s)
					return err
				}),
		),
	).WithTheme(formTheme()).WithShowHelp(true)
}

// saveSetupConfig applies the wizard answers and writes the config file.
func (a *App) saveSetupConfig() {
	cfg := a.cfg
	cfg.Appearance.Theme = a.setupVals.Theme
	cfg.General.Currency = a.setupVals.Currency
	cfg.General.CurrencySymbol = config.SymbolFor(a.setupVals.Currency)
	if e, n, s, err := config.ParseSplit(a.setupVals.Split); err == nil {
		cfg.Budget.EssentialsPct = e
		cfg.Budget.NonEssentialsPct = n
		cfg.Budget.SavingsPct = s
	}

	if err := config.Save(cfg); err != nil {
		a.notice = "could not save config: " + err.Error()
	}

	a.cfg = cfg
	theme.SetActive(cfg.Appearance.Theme)
}

// formTheme adapts the active color theme for huh forms.
func formTheme() *huh.Theme {
	t := theme.Active
	th := huh.ThemeBase16()
	th.Focused.Title = th.Focused.Title.Foreground(t.AccentBright).Bold(true)
	th.Focused.Description = th.Focused.Description.Foreground(t.TextMuted)
	th.Focused.SelectSelector = th.Focused.SelectSelector.Foreground(t.Accent)
	th.Focused.SelectedOption = th.Focused.SelectedOption.Foreground(t.AccentBright)
	th.Focused.FocusedButton = th.Focused.FocusedButton.Background(t.Accent)
	th.Blurred.Title = th.Blurred.Title.Foreground(t.TextMuted)
	th.Blurred.Description = th.Blurred.Description.Foreground(t.TextDim)
	return th
}
