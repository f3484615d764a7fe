package cmd

import (
	"fmt"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/cli"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/pipeline"

	"github.com/spf13/cobra"
)

var monthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Month by month category breakdown",
	RunE:  runMonthly,
}

func init() {
	rootCmd.AddCommand(monthlyCmd)
}

func runMonthly(_ *cobra.Command, _ []string) error {
	result := loadData()
	if len(result.Transactions) == 0 {
		fmt.Println("\n  No transactions recorded yet.")
		return nil
	}

	filtered, since, until := applyFilters(result.Transactions)
	months := pipeline.AggregateMonths(filtered, since, until)

	if len(months) == 0 {
		fmt.Println("\n  No data for the selected period.")
		return nil
	}

	cfg := loadConfig()
	money := moneyFmt(cfg)
	symbol := cfg.General.CurrencySymbol
	places := cfg.General.DecimalPlaces

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("MONTHLY BREAKDOWN  %s", windowLabel())))
	fmt.Println()

	rows := make([][]string, 0, len(months))
	for _, m := range months {
		rows = append(rows, []string{
			m.Month.Format("Jan 2006"),
			money(m.Income),
			money(m.Essentials),
			money(m.NonEssential),
			money(m.Bills),
			money(m.Savings),
			cli.FormatDelta(m.Income.Sub(m.Spending), symbol, places),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Income", "Essentials", "Wants", "Bills", "Savings", "Net"},
		Rows:    rows,
	}))

	warnProblems(result.Problems)

	return nil
}
