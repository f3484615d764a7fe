package cmd

import (
	"fmt"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/config"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/ledger"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults
	cfg, _ := config.Load()

	dataDir := config.DataDir(cfg)
	themeName := cfg.Appearance.Theme
	currency := cfg.General.Currency
	split := fmt.Sprintf("%d/%d/%d",
		cfg.Budget.EssentialsPct, cfg.Budget.NonEssentialsPct, cfg.Budget.SavingsPct)

	themeOpts := make([]huh.Option[string], len(theme.All))
	for i, t := range theme.All {
		themeOpts[i] = huh.NewOption(t.Name, t.Name)
	}

	currencyOpts := make([]huh.Option[string], len(config.Currencies))
	for i, c := range config.Currencies {
		currencyOpts[i] = huh.NewOption(fmt.Sprintf("%s (%s)", c.Name, c.Symbol), c.Code)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("◈ Welcome to BudgetBuddy").
				Description("A few questions and you are set. Everything can be changed later\nwith `budgetbuddy config` or in the dashboard settings tab."),
			huh.NewInput().
				Title("Data directory").
				Description("Where the category ledgers live").
				Value(&dataDir),
			huh.NewSelect[string]().
				Title("Currency").
				Options(currencyOpts...).
				Value(&currency),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&themeName),
			huh.NewInput().
				Title("Budget split").
				Description("needs/wants/savings, must sum to 100").
				Placeholder("50/30/20").
				Validate(func(s string) error {
					_, _, _, err := config.ParseSplit(s)
					return err
				}).
				Value(&split),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	cfg.General.DataDir = dataDir
	cfg.General.Currency = currency
	cfg.General.CurrencySymbol = config.SymbolFor(currency)
	cfg.Appearance.Theme = themeName
	if e, n, s, err := config.ParseSplit(split); err == nil {
		cfg.Budget.EssentialsPct = e
		cfg.Budget.NonEssentialsPct = n
		cfg.Budget.SavingsPct = s
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	// Create the category files up front
	if err := ledger.New(dataDir).Init(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  Config written to %s\n", config.ConfigPath())
	fmt.Printf("  Ledgers ready in %s\n", dataDir)
	fmt.Println()
	fmt.Println("  Run `budgetbuddy` to open the dashboard.")
	return nil
}
