package cmd

import (
	"fmt"
	"time"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/pipeline"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/plan"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/report"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the ledger as CSV or a text report",
	RunE:  runExport,
}

var (
	exportFormat string
	exportOut    string
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "Output format: csv or text")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output path (default embeds a timestamp)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	result := loadData()
	if len(result.Transactions) == 0 {
		fmt.Println("\n  No transactions to export.")
		return nil
	}

	filtered, since, until := applyFilters(result.Transactions)
	if len(filtered) == 0 {
		fmt.Println("\n  No transactions in the selected time range.")
		return nil
	}

	stamp := time.Now().Format("20060102_150405")

	switch exportFormat {
	case "csv":
		out := exportOut
		if out == "" {
			out = fmt.Sprintf("budget_export_%s.csv", stamp)
		}
		if err := report.ExportCSV(out, filtered); err != nil {
			return err
		}
		fmt.Printf("  Wrote %s transactions to %s\n",
			formatNumber(int64(len(filtered))), out)

	case "text":
		out := exportOut
		if out == "" {
			out = fmt.Sprintf("budget_report_%s.txt", stamp)
		}

		cfg := loadConfig()
		s := pipeline.Summarize(filtered, since, until)

		if bills, err := plan.NewStore(flagDataDir).LoadBills(); err == nil {
			statuses := plan.StatusForMonth(bills, result.Transactions, model.Today())
			s.UnpaidBills = plan.UnpaidCount(statuses)
		}

		months := pipeline.AggregateMonths(filtered, since, until)
		alloc := pipeline.Allocate(s, cfg.Budget)
		kpis := pipeline.ComputeKPIs(s, len(months))
		health := pipeline.ComputeHealth(s, alloc, kpis)

		data := report.Data{
			GeneratedAt:     time.Now(),
			Since:           since,
			Until:           until,
			Summary:         s,
			Allocation:      alloc,
			KPIs:            kpis,
			Health:          health,
			Recommendations: pipeline.Recommendations(alloc, s.UnpaidBills),
		}
		if err := report.SaveSummary(out, &cfg, data); err != nil {
			return err
		}
		fmt.Printf("  Wrote report to %s\n", out)

	default:
		return fmt.Errorf("unknown format %q, use csv or text", exportFormat)
	}

	warnProblems(result.Problems)

	return nil
}
