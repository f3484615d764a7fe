package ledger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

func date(y int, m time.Month, d int) model.Date { return model.NewDate(y, m, d) }

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func tx(c model.Category, d model.Date, amt, desc string) model.Transaction {
	return model.Transaction{Date: d, Amount: dec(amt), Category: c, Description: desc}
}

func TestAppendReadRoundTrip(t *testing.T) {
	l := New(t.TempDir())

	in := []model.Transaction{
		tx(model.CategoryIncome, date(2025, time.March, 1), "2500.00", "salary"),
		tx(model.CategoryEssential, date(2025, time.March, 3), "82.45", "groceries, incl. \"special\" items"),
		tx(model.CategoryEssential, date(2025, time.March, 10), "120.00", "electricity"),
		tx(model.CategorySavings, date(2025, time.March, 5), "400.00", "emergency fund"),
	}
	require.NoError(t, l.AppendAll(in))

	income, err := l.Read(model.CategoryIncome)
	require.NoError(t, err)
	require.Len(t, income, 1)
	assert.True(t, income[0].Date.SameDay(date(2025, time.March, 1)))
	assert.True(t, income[0].Amount.Equal(dec("2500.00")), "got %s", income[0].Amount)
	assert.Equal(t, model.CategoryIncome, income[0].Category)
	assert.Equal(t, "salary", income[0].Description)

	essentials, err := l.Read(model.CategoryEssential)
	require.NoError(t, err)
	require.Len(t, essentials, 2)
	// Newest first.
	assert.Equal(t, "electricity", essentials[0].Description)
	assert.Equal(t, "groceries, incl. \"special\" items", essentials[1].Description)
}

func TestAppendWritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	l := New(dir)

	require.NoError(t, l.Append(tx(model.CategorySavings, date(2025, time.May, 1), "10.00", "first")))
	require.NoError(t, l.Append(tx(model.CategorySavings, date(2025, time.May, 2), "20.00", "second")))

	raw, err := os.ReadFile(filepath.Join(dir, "savings.csv"))
	require.NoError(t, err)
	content := string(raw)
	assert.True(t, strings.HasPrefix(content, Header+"\n"), "content: %q", content)
	assert.Equal(t, 1, strings.Count(content, Header), "header must appear exactly once")
	assert.Contains(t, content, "2025-05-01,10.00,first")
	assert.Contains(t, content, "2025-05-02,20.00,second")
}

func TestAppendRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	l := New(dir)

	err := l.Append(tx(model.CategoryBill, date(2025, time.April, 1), "-5.00", "rent"))
	require.Error(t, err)
	var verr *model.ValidationError
	assert.True(t, errors.As(err, &verr))

	// Nothing was written.
	_, statErr := os.Stat(filepath.Join(dir, "bills.csv"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestReadMissingFile(t *testing.T) {
	l := New(t.TempDir())
	txs, err := l.Read(model.CategoryNonEssential)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestReadEmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "income.csv"), nil, 0o644))

	l := New(dir)
	txs, err := l.Read(model.CategoryIncome)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestReadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	bad := Header + "\n2025-01-05,not-a-number,thing\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bills.csv"), []byte(bad), 0o644))

	l := New(dir)
	_, err := l.Read(model.CategoryBill)
	require.Error(t, err)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Contains(t, perr.File, "bills.csv")
}

func TestReadAllMergesNewestFirst(t *testing.T) {
	l := New(t.TempDir())
	require.NoError(t, l.AppendAll([]model.Transaction{
		tx(model.CategoryIncome, date(2025, time.June, 1), "100.00", "a"),
		tx(model.CategorySavings, date(2025, time.June, 3), "50.00", "b"),
		tx(model.CategoryBill, date(2025, time.June, 2), "30.00", "c"),
	}))

	all, err := l.ReadAll()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "b", all[0].Description)
	assert.Equal(t, "c", all[1].Description)
	assert.Equal(t, "a", all[2].Description)
}

func TestRemove(t *testing.T) {
	l := New(t.TempDir())
	require.NoError(t, l.AppendAll([]model.Transaction{
		tx(model.CategoryNonEssential, date(2025, time.July, 1), "15.00", "cinema"),
		tx(model.CategoryNonEssential, date(2025, time.July, 4), "60.00", "concert"),
		tx(model.CategoryNonEssential, date(2025, time.July, 8), "9.50", "coffee"),
	}))

	// Index is into the newest-first listing: 0=coffee, 1=concert, 2=cinema.
	require.NoError(t, l.Remove(model.CategoryNonEssential, 1))

	remaining, err := l.Read(model.CategoryNonEssential)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, "coffee", remaining[0].Description)
	assert.Equal(t, "cinema", remaining[1].Description)

	err = l.Remove(model.CategoryNonEssential, 5)
	assert.Error(t, err)
}

func TestResetLeavesHeaderOnlyFiles(t *testing.T) {
	dir := t.TempDir()
	l := New(dir)
	require.NoError(t, l.Append(tx(model.CategoryIncome, date(2025, time.August, 1), "900.00", "salary")))
	require.NoError(t, l.Reset())

	for _, c := range model.Categories {
		raw, err := os.ReadFile(filepath.Join(dir, c.FileName()))
		require.NoError(t, err, "category %s", c)
		assert.Equal(t, Header+"\n", string(raw), "category %s", c)

		txs, err := l.Read(c)
		require.NoError(t, err)
		assert.Empty(t, txs)
	}
}

func TestInitCreatesMissingFiles(t *testing.T) {
	dir := t.TempDir()
	l := New(dir)
	require.NoError(t, l.Append(tx(model.CategoryIncome, date(2025, time.August, 1), "900.00", "salary")))
	require.NoError(t, l.Init())

	// Existing data is untouched, missing files get headers.
	income, err := l.Read(model.CategoryIncome)
	require.NoError(t, err)
	assert.Len(t, income, 1)

	for _, c := range model.Categories {
		_, err := os.Stat(filepath.Join(dir, c.FileName()))
		assert.NoError(t, err, "category %s", c)
	}
}

func TestFilesStats(t *testing.T) {
	l := New(t.TempDir())
	require.NoError(t, l.Append(tx(model.CategoryBill, date(2025, time.September, 1), "75.00", "internet")))

	stats, err := l.Files()
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, model.CategoryBill, stats[0].Category)
	assert.Positive(t, stats[0].Size)
	assert.Positive(t, stats[0].MTimeNs)
}
