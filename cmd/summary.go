package cmd

import (
	"fmt"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/cli"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/pipeline"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Income, spending and net for the period",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	result := loadData()

	if len(result.Transactions) == 0 {
		fmt.Println("\n  No transactions recorded yet.")
		fmt.Println("  Add one with `budgetbuddy add`, then come back!")
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

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BUDGET SUMMARY  %s", windowLabel())))
	fmt.Println()

	rows := [][]string{
		{"Income", money(s.Income)},
		{"---"},
		{"Essentials", money(s.Essentials)},
		{"Non-Essentials", money(s.NonEssential)},
		{"Bills", money(s.Bills)},
		{"Savings", money(s.Savings)},
		{"Total Spending", money(s.TotalSpending)},
		{"---"},
	}

	// Net with delta against the previous period of the same length
	netStr := cli.FormatDelta(s.Net, symbol, places)
	if !since.IsZero() {
		prev := pipeline.Summarize(result.Transactions, since.AddDays(-flagDays), since)
		if prev.Transactions > 0 {
			diff := s.Net.Sub(prev.Net)
			netStr += fmt.Sprintf("  (%s vs prev %dd)", cli.FormatDelta(diff, symbol, places), flagDays)
		}
	}
	rows = append(rows, []string{"Net", netStr})
	rows = append(rows, []string{"---"})

	rows = append(rows, []string{"Transactions", formatNumber(int64(s.Transactions))})
	rows = append(rows, []string{"Active Days", formatNumber(int64(s.ActiveDays))})
	if s.ActiveDays > 0 {
		perDay := s.TotalSpending.Div(decimal.NewFromInt(int64(s.ActiveDays)))
		rows = append(rows, []string{"Spending/day", money(perDay)})
	}

	table := cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}

	fmt.Print(cli.RenderTable(table))

	warnProblems(result.Problems)

	return nil
}
