// Package cmd implements the budgetbuddy CLI commands.
package cmd

import (
	"fmt"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data directory: %s\n", config.DataDir(cfg))
	fmt.Printf("    Currency:       %s (%s)\n", cfg.General.Currency, cfg.General.CurrencySymbol)
	fmt.Printf("    Decimal places: %d\n", cfg.General.DecimalPlaces)
	fmt.Printf("    Date format:    %s\n", cfg.General.DateFormat)
	fmt.Println()

	fmt.Println("  [Budget]")
	fmt.Printf("    Split:          %d/%d/%d (needs/wants/savings)\n",
		cfg.Budget.EssentialsPct, cfg.Budget.NonEssentialsPct, cfg.Budget.SavingsPct)
	fmt.Printf("    Bill horizon:   %d days\n", cfg.Budget.UpcomingBillDays)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Alerts]")
	fmt.Printf("    Overspend threshold: %d%%\n", cfg.Alerts.OverspendThresholdPct)
	fmt.Printf("    Backup reminder:     every %d days\n", cfg.Alerts.BackupReminderDays)
	if cfg.Alerts.LastBackup != "" {
		fmt.Printf("    Last backup:         %s\n", cfg.Alerts.LastBackup)
	} else {
		fmt.Println("    Last backup:         never")
	}
	if config.BackupDue(cfg) {
		fmt.Println("    A backup is due, run `budgetbuddy backup`.")
	}
	fmt.Println()

	fmt.Println("  Run `budgetbuddy setup` to reconfigure.")
	return nil
}
