package ledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

func TestScanCleanData(t *testing.T) {
	l := New(t.TempDir())
	require.NoError(t, l.AppendAll([]model.Transaction{
		tx(model.CategoryIncome, date(2025, time.March, 1), "2500.00", "salary"),
		tx(model.CategoryBill, date(2025, time.March, 2), "75.00", "internet"),
	}))

	report, err := l.Scan()
	require.NoError(t, err)
	assert.Equal(t, 2, report.Files)
	assert.Equal(t, 2, report.Rows)
	assert.Empty(t, report.Issues)
	assert.False(t, report.HasErrors())
}

func TestScanFindsProblems(t *testing.T) {
	dir := t.TempDir()
	content := Header + "\n" +
		"2025-03-01,-12.00,refund entered wrong\n" + // negative: error
		"not-a-date,5.00,ok amount\n" + // bad date: error
		"2025-03-03,abc,bad amount\n" + // unparseable amount: error
		"2025-03-04,0.00,placeholder\n" + // zero: warning
		"2025-03-05,9.00,\n" // empty description: warning
	require.NoError(t, os.WriteFile(filepath.Join(dir, "non_essentials.csv"), []byte(content), 0o644))

	report, err := New(dir).Scan()
	require.NoError(t, err)
	assert.True(t, report.HasErrors())

	var errs, warns int
	for _, issue := range report.Issues {
		assert.Equal(t, model.CategoryNonEssential, issue.Category)
		assert.Positive(t, issue.Row)
		if issue.Severity == SeverityError {
			errs++
		} else {
			warns++
		}
	}
	assert.Equal(t, 3, errs)
	assert.Equal(t, 2, warns)
}

func TestScanBadHeader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "income.csv"),
		[]byte("Description,Amount,Date\nsalary,100.00,2025-01-01\n"), 0o644))

	report, err := New(dir).Scan()
	require.NoError(t, err)
	require.NotEmpty(t, report.Issues)
	assert.Equal(t, 1, report.Issues[0].Row)
	assert.Equal(t, SeverityError, report.Issues[0].Severity)
}

func TestScanEmptyFileWarns(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "savings.csv"), nil, 0o644))

	report, err := New(dir).Scan()
	require.NoError(t, err)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, SeverityWarning, report.Issues[0].Severity)
	assert.False(t, report.HasErrors())
}
