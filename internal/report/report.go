// Package report writes ledger exports and plain-text budget summaries.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/cli"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/config"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// exportRow is the combined-export shape: the per-category columns plus
// an explicit category column.
type exportRow struct {
	Date        model.Date `csv:"date"`
	Amount      string     `csv:"amount"`
	Category    string     `csv:"category"`
	Description string     `csv:"description"`
}

// ExportCSV writes every transaction to one CSV file, oldest first so
// the export reads chronologically.
func ExportCSV(path string, txs []model.Transaction) error {
	ordered := make([]model.Transaction, len(txs))
	copy(ordered, txs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date.Time)
	})

	rows := make([]exportRow, len(ordered))
	for i, tx := range ordered {
		rows[i] = exportRow{
			Date:        tx.Date,
			Amount:      tx.Amount.StringFixed(2),
			Category:    string(tx.Category),
			Description: tx.Description,
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Data bundles the figures one report run renders.
type Data struct {
	GeneratedAt     time.Time
	Since, Until    model.Date
	Summary         model.Summary
	Allocation      model.Allocation
	KPIs            model.KPIStats
	Health          model.HealthScore
	Recommendations []string
}

// WriteSummary renders the plain-text budget report.
func WriteSummary(w io.Writer, cfg *config.Config, d Data) error {
	symbol := cfg.General.CurrencySymbol
	places := cfg.General.DecimalPlaces

	var b strings.Builder
	b.WriteString("BudgetBuddy Report\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	b.WriteString(fmt.Sprintf("Generated: %s\n", d.GeneratedAt.Format("2006-01-02 15:04")))
	switch {
	case !d.Since.IsZero() && !d.Until.IsZero():
		b.WriteString(fmt.Sprintf("Period:    %s to %s\n", d.Since, d.Until))
	case !d.Since.IsZero():
		b.WriteString(fmt.Sprintf("Period:    since %s\n", d.Since))
	case !d.Until.IsZero():
		b.WriteString(fmt.Sprintf("Period:    through %s\n", d.Until))
	default:
		b.WriteString("Period:    all recorded activity\n")
	}
	b.WriteString("\n")

	s := d.Summary
	b.WriteString("Totals\n")
	writeAmount(&b, "Income", cli.FormatMoney(s.Income, symbol, places))
	writeAmount(&b, "Essentials", cli.FormatMoney(s.Essentials, symbol, places))
	writeAmount(&b, "Bills", cli.FormatMoney(s.Bills, symbol, places))
	writeAmount(&b, "Non-Essentials", cli.FormatMoney(s.NonEssential, symbol, places))
	writeAmount(&b, "Savings", cli.FormatMoney(s.Savings, symbol, places))
	writeAmount(&b, "Total spending", cli.FormatMoney(s.TotalSpending, symbol, places))
	writeAmount(&b, "Net", cli.FormatMoney(s.Net, symbol, places))
	b.WriteString("\n")

	b.WriteString("Allocation vs target\n")
	for _, bkt := range d.Allocation.Buckets() {
		label := fmt.Sprintf("%s (%d%%)", bkt.Name, bkt.TargetPct)
		b.WriteString(fmt.Sprintf("  %-22s target %14s   actual %14s   %s\n",
			label,
			cli.FormatMoney(bkt.Target, symbol, places),
			cli.FormatMoney(bkt.Actual, symbol, places),
			cli.FormatDelta(bkt.Difference, symbol, places)))
	}
	b.WriteString("\n")

	k := d.KPIs
	b.WriteString("Key figures\n")
	writeAmount(&b, "Savings rate", fmt.Sprintf("%.1f%%", k.SavingsRate))
	writeAmount(&b, "Expense ratio", fmt.Sprintf("%.1f%%", k.ExpenseRatio))
	writeAmount(&b, "Budget variance", cli.FormatMoney(k.BudgetVariance, symbol, places))
	writeAmount(&b, "Emergency target", cli.FormatMoney(k.EmergencyFund, symbol, places))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("Health %.0f/100 (%s)\n", d.Health.Total(), d.Health.Interpretation()))
	for _, rec := range d.Recommendations {
		b.WriteString("  - " + rec + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeAmount(b *strings.Builder, label, value string) {
	b.WriteString(fmt.Sprintf("  %-18s %s\n", label, value))
}

// SaveSummary writes the report to a file.
func SaveSummary(path string, cfg *config.Config, d Data) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteSummary(f, cfg, d); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
