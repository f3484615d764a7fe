package cmd

import (
	"fmt"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/cli"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/pipeline"

	"github.com/spf13/cobra"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Allocation report against the budget rule",
	RunE:  runBudget,
}

func init() {
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(_ *cobra.Command, _ []string) error {
	result := loadData()
	if len(result.Transactions) == 0 {
		fmt.Println("\n  No transactions recorded yet.")
		return nil
	}

	filtered, since, until := applyFilters(result.Transactions)
	s := pipeline.Summarize(filtered, since, until)

	if s.Transactions == 0 {
		fmt.Println("\n  No transactions in the selected time range.")
		return nil
	}

	cfg := loadConfig()
	money := moneyFmt(cfg)
	symbol := cfg.General.CurrencySymbol
	places := cfg.General.DecimalPlaces

	alloc := pipeline.Allocate(s, cfg.Budget)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BUDGET RULE %d/%d/%d  %s",
		cfg.Budget.EssentialsPct, cfg.Budget.NonEssentialsPct, cfg.Budget.SavingsPct, windowLabel())))
	fmt.Println()

	if alloc.Income.IsZero() {
		fmt.Println("  No income in the period, every target is zero.")
		fmt.Println()
	}

	rows := make([][]string, 0, 4)
	for _, b := range alloc.Buckets() {
		verdict := "within target"
		if b.Name == "Savings" {
			verdict = "target met"
			if b.Difference.IsNegative() {
				verdict = fmt.Sprintf("short %.0f%%", -b.VariancePct())
			}
		} else if b.Over() {
			verdict = fmt.Sprintf("over by %.0f%%", b.VariancePct())
		}

		rows = append(rows, []string{
			fmt.Sprintf("%s (%d%%)", b.Name, b.TargetPct),
			money(b.Target),
			money(b.Actual),
			cli.FormatDelta(b.Difference, symbol, places),
			fmt.Sprintf("%.0f%%", b.Share),
			verdict,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Bucket", "Target", "Actual", "Diff", "Share", "Verdict"},
		Rows:    rows,
	}))

	// Actual vs target, one bar per bucket on a shared scale
	maxVal := 0.0
	for _, b := range alloc.Buckets() {
		if f, _ := b.Actual.Float64(); f > maxVal {
			maxVal = f
		}
		if f, _ := b.Target.Float64(); f > maxVal {
			maxVal = f
		}
	}

	fmt.Println()
	for _, b := range alloc.Buckets() {
		actual, _ := b.Actual.Float64()
		fmt.Printf("  %-14s %s  %s of %s\n",
			b.Name,
			cli.RenderHorizontalBar("", actual, maxVal, 30),
			money(b.Actual), money(b.Target))
	}
	fmt.Println()

	warnProblems(result.Problems)

	return nil
}
