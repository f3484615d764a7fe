package cmd

import (
	"fmt"
	"strings"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/cli"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/pipeline"

	"github.com/spf13/cobra"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Daily income and spending table",
	RunE:  runDaily,
}

func init() {
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(_ *cobra.Command, _ []string) error {
	result := loadData()
	if len(result.Transactions) == 0 {
		fmt.Println("\n  No transactions recorded yet.")
		return nil
	}

	filtered, since, until := applyFilters(result.Transactions)
	days := pipeline.AggregateDays(filtered, since, until)

	if len(days) == 0 {
		fmt.Println("\n  No data for the selected period.")
		return nil
	}

	cfg := loadConfig()
	money := moneyFmt(cfg)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DAILY SPENDING  %s", windowLabel())))
	fmt.Println()

	// Scale the inline bars against the heaviest day
	maxSpend := 0.0
	for _, d := range days {
		if f, _ := d.Spending.Float64(); f > maxSpend {
			maxSpend = f
		}
	}

	const maxBarWidth = 16
	layout := dateFmt(cfg)
	rows := make([][]string, 0, len(days))
	for _, d := range days {
		bar := ""
		if maxSpend > 0 {
			f, _ := d.Spending.Float64()
			bar = strings.Repeat("█", int(f/maxSpend*maxBarWidth))
		}

		rows = append(rows, []string{
			d.Date.Format(layout),
			cli.FormatDayOfWeek(int(d.Date.Weekday())),
			money(d.Income),
			money(d.Spending),
			formatNumber(int64(d.Count)),
			bar,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Day", "Income", "Spending", "Tx", ""},
		Rows:    rows,
	}))

	warnProblems(result.Problems)

	return nil
}
