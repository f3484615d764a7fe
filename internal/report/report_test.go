package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/config"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/pipeline"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func tx(t *testing.T, y int, m time.Month, d int, amount string, c model.Category, desc string) model.Transaction {
	t.Helper()
	return model.Transaction{
		Date:        model.NewDate(y, m, d),
		Amount:      dec(t, amount),
		Category:    c,
		Description: desc,
	}
}

func TestExportCSVChronological(t *testing.T) {
	txs := []model.Transaction{
		tx(t, 2025, time.March, 15, "45.00", model.CategoryNonEssential, "Cinema"),
		tx(t, 2025, time.March, 1, "2500.00", model.CategoryIncome, "Salary"),
		tx(t, 2025, time.March, 7, "84.15", model.CategoryEssential, "Groceries"),
	}

	path := filepath.Join(t.TempDir(), "export", "budget.csv")
	require.NoError(t, ExportCSV(path, txs))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "date,amount,category,description", lines[0])
	assert.Equal(t, "2025-03-01,2500.00,income,Salary", lines[1])
	assert.Equal(t, "2025-03-07,84.15,essential,Groceries", lines[2])
	assert.Equal(t, "2025-03-15,45.00,non-essential,Cinema", lines[3])
}

func TestExportCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.csv")
	require.NoError(t, ExportCSV(path, nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "date,amount,category,description", strings.TrimSpace(string(raw)))
}

func reportData(t *testing.T) (*config.Config, Data) {
	t.Helper()
	txs := []model.Transaction{
		tx(t, 2025, time.March, 1, "2000.00", model.CategoryIncome, "Salary"),
		tx(t, 2025, time.March, 3, "600.00", model.CategoryEssential, "Rent"),
		tx(t, 2025, time.March, 5, "400.00", model.CategoryBill, "Utilities"),
		tx(t, 2025, time.March, 8, "300.00", model.CategoryNonEssential, "Dining"),
		tx(t, 2025, time.March, 10, "250.00", model.CategorySavings, "Transfer"),
	}

	cfg := config.DefaultConfig()
	s := pipeline.Summarize(txs, model.Date{}, model.Date{})
	a := pipeline.Allocate(s, cfg.Budget)
	k := pipeline.ComputeKPIs(s, 1)
	h := pipeline.ComputeHealth(s, a, k)

	return &cfg, Data{
		GeneratedAt:     time.Date(2025, time.March, 31, 18, 30, 0, 0, time.UTC),
		Since:           model.NewDate(2025, time.March, 1),
		Until:           model.NewDate(2025, time.March, 31),
		Summary:         s,
		Allocation:      a,
		KPIs:            k,
		Health:          h,
		Recommendations: pipeline.Recommendations(a, 0),
	}
}

func TestWriteSummary(t *testing.T) {
	cfg, data := reportData(t)

	var b strings.Builder
	require.NoError(t, WriteSummary(&b, cfg, data))
	out := b.String()

	assert.Contains(t, out, "BudgetBuddy Report")
	assert.Contains(t, out, "Generated: 2025-03-31 18:30")
	assert.Contains(t, out, "Period:    2025-03-01 to 2025-03-31")
	assert.Contains(t, out, "Income             $2,000.00")
	assert.Contains(t, out, "Total spending     $1,550.00")
	assert.Contains(t, out, "Essentials (50%)")
	assert.Contains(t, out, "Non-Essentials (30%)")
	assert.Contains(t, out, "Savings (20%)")
	assert.Contains(t, out, "Savings rate       12.5%")
	assert.Contains(t, out, "Expense ratio      65.0%")
	assert.Contains(t, out, "/100 (")
}

func TestWriteSummaryOpenPeriod(t *testing.T) {
	cfg, data := reportData(t)
	data.Since = model.Date{}
	data.Until = model.Date{}

	var b strings.Builder
	require.NoError(t, WriteSummary(&b, cfg, data))
	assert.Contains(t, b.String(), "Period:    all recorded activity")
}

func TestSaveSummary(t *testing.T) {
	cfg, data := reportData(t)

	path := filepath.Join(t.TempDir(), "reports", "march.txt")
	require.NoError(t, SaveSummary(path, cfg, data))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "BudgetBuddy Report")
}
