package cmd

import (
	"fmt"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/cli"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/pipeline"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/plan"

	"github.com/spf13/cobra"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "KPIs, health score and recommendations",
	RunE:  runAnalytics,
}

func init() {
	rootCmd.AddCommand(analyticsCmd)
}

func runAnalytics(_ *cobra.Command, _ []string) error {
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

	// Unpaid bills feed both the summary and the recommendations
	if bills, err := plan.NewStore(flagDataDir).LoadBills(); err == nil {
		statuses := plan.StatusForMonth(bills, result.Transactions, model.Today())
		s.UnpaidBills = plan.UnpaidCount(statuses)
	}

	months := pipeline.AggregateMonths(filtered, since, until)
	alloc := pipeline.Allocate(s, cfg.Budget)
	kpis := pipeline.ComputeKPIs(s, len(months))
	health := pipeline.ComputeHealth(s, alloc, kpis)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BUDGET ANALYTICS  %s", windowLabel())))
	fmt.Println()

	rows := [][]string{
		{"Savings Rate", fmt.Sprintf("%.1f%%  (target %d%%)", kpis.SavingsRate, cfg.Budget.SavingsPct)},
		{"Expense Ratio", fmt.Sprintf("%.1f%% of income", kpis.ExpenseRatio)},
		{"Budget Variance", cli.FormatDelta(kpis.BudgetVariance, cfg.General.CurrencySymbol, cfg.General.DecimalPlaces)},
		{"---"},
		{"Emergency Target", money(kpis.EmergencyFund)},
		{"Months Covered", fmt.Sprintf("%.1f", kpis.MonthsCovered)},
		{"---"},
		{"Health Score", fmt.Sprintf("%.0f/100  %s", health.Total(), health.Interpretation())},
		{"  Savings", fmt.Sprintf("%.0f/25", health.SavingsRate)},
		{"  Adherence", fmt.Sprintf("%.0f/25", health.Adherence)},
		{"  Emergency Fund", fmt.Sprintf("%.0f/25", health.EmergencyFund)},
		{"  Expense Control", fmt.Sprintf("%.0f/25", health.ExpenseControl)},
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"KPI", "Value"},
		Rows:    rows,
	}))

	// Cumulative savings sparkline over the whole history
	points := pipeline.SavingsProgress(result.Transactions)
	if len(points) > 1 {
		values := make([]float64, len(points))
		for i, p := range points {
			values[i], _ = p.Total.Float64()
		}
		fmt.Printf("\n  Savings %s %s\n",
			cli.RenderSparkline(values),
			money(points[len(points)-1].Total))
	}

	recs := pipeline.Recommendations(alloc, s.UnpaidBills)
	if len(recs) > 0 {
		fmt.Println()
		for _, rec := range recs {
			fmt.Printf("  • %s\n", rec)
		}
	}
	fmt.Println()

	warnProblems(result.Problems)

	return nil
}
