package importer

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/categorize"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func defaultCategorizer(t *testing.T) *categorize.Categorizer {
	t.Helper()
	cat, err := categorize.Load(filepath.Join(t.TempDir(), "categories.yaml"))
	require.NoError(t, err)
	return cat
}

func TestParseDefaultMapping(t *testing.T) {
	input := "date,amount,description\n" +
		"2025-03-01,2500.00,Salary March\n" +
		"2025-03-02,-84.15,Supermarket\n" +
		"\n" +
		"2025-03-05,(45.00),Cinema tickets\n"

	rows, err := Parse(strings.NewReader(input), DefaultMapping())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, model.NewDate(2025, time.March, 1), rows[0].Date)
	assert.True(t, rows[0].Amount.Equal(dec(t, "2500")))
	assert.False(t, rows[0].Negative)
	assert.Equal(t, "Salary March", rows[0].Description)
	assert.Equal(t, 2, rows[0].Line)

	assert.True(t, rows[1].Negative)
	assert.True(t, rows[1].Amount.Equal(dec(t, "84.15")))

	assert.True(t, rows[2].Negative)
	assert.True(t, rows[2].Amount.Equal(dec(t, "45")))
	assert.Equal(t, 5, rows[2].Line)
}

func TestParseCustomColumns(t *testing.T) {
	input := "Details,Posting Date,Description,Amount,Type\n" +
		"DEBIT,03/02/2025,GROCERY STORE 42,-84.15,ACH_DEBIT\n" +
		"CREDIT,03/01/2025,PAYROLL ACME,2500.00,ACH_CREDIT\n"

	m := Mapping{DateCol: 1, AmountCol: 3, DescCol: 2, DateFormat: "01/02/2006", HasHeader: true}
	rows, err := Parse(strings.NewReader(input), m)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, model.NewDate(2025, time.March, 2), rows[0].Date)
	assert.Equal(t, "GROCERY STORE 42", rows[0].Description)
	assert.True(t, rows[0].Negative)
	assert.Equal(t, model.NewDate(2025, time.March, 1), rows[1].Date)
	assert.False(t, rows[1].Negative)
}

func TestParseReportsRowNumber(t *testing.T) {
	input := "date,amount,description\n" +
		"2025-03-01,100.00,ok\n" +
		"2025-03-02,not-money,bad\n"

	_, err := Parse(strings.NewReader(input), DefaultMapping())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
}

func TestParseShortRow(t *testing.T) {
	input := "date,amount,description\n" +
		"2025-03-01,100.00\n"

	_, err := Parse(strings.NewReader(input), DefaultMapping())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestParseBadDate(t *testing.T) {
	input := "date,amount,description\n" +
		"not-a-date,100.00,ok\n"

	_, err := Parse(strings.NewReader(input), DefaultMapping())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestMappingValidate(t *testing.T) {
	assert.NoError(t, DefaultMapping().Validate())
	assert.Error(t, Mapping{DateCol: -1, AmountCol: 1, DescCol: 2}.Validate())
	assert.Error(t, Mapping{DateCol: 0, AmountCol: 0, DescCol: 2}.Validate())
}

func TestCleanAmount(t *testing.T) {
	cases := []struct {
		in       string
		want     string
		negative bool
	}{
		{"1234.56", "1234.56", false},
		{"$1,234.56", "1234.56", false},
		{"-12.50", "12.50", true},
		{"(45.00)", "45.00", true},
		{"1.234,56", "1234.56", false},
		{"1234,56", "1234.56", false},
		{"1,234", "1234", false},
		{"CHF 1'200.00", "1200.00", false},
		{"€ 99", "99", false},
		{"+250.00", "250.00", false},
		{"0.00-", "0.00", false},
	}
	for _, tc := range cases {
		got, negative, err := CleanAmount(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.True(t, got.Equal(dec(t, tc.want)), "input %q: got %s want %s", tc.in, got, tc.want)
		assert.Equal(t, tc.negative, negative, "input %q", tc.in)
	}
}

func TestCleanAmountRejectsJunk(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "--"} {
		_, _, err := CleanAmount(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestMatchAssignsCategories(t *testing.T) {
	rows := []Row{
		{Date: model.NewDate(2025, time.March, 1), Amount: dec(t, "2500"), Negative: false, Description: "Payroll Acme"},
		{Date: model.NewDate(2025, time.March, 2), Amount: dec(t, "84.15"), Negative: true, Description: "Supermarket run"},
		{Date: model.NewDate(2025, time.March, 3), Amount: dec(t, "15.99"), Negative: true, Description: "Netflix subscription"},
		{Date: model.NewDate(2025, time.March, 4), Amount: dec(t, "60"), Negative: true, Description: "Plumbing parts"},
	}

	result := Match(rows, nil, defaultCategorizer(t), Options{})
	require.Len(t, result.New, 4)
	assert.Empty(t, result.Duplicates)

	assert.Equal(t, model.CategoryIncome, result.New[0].Category)
	assert.Equal(t, model.CategoryEssential, result.New[1].Category)
	assert.Equal(t, model.CategoryNonEssential, result.New[2].Category)
	assert.Equal(t, model.CategoryNonEssential, result.New[3].Category)
	assert.Equal(t, 2, result.Suggested)
}

func TestMatchForceOverridesEverything(t *testing.T) {
	rows := []Row{
		{Date: model.NewDate(2025, time.March, 1), Amount: dec(t, "300"), Negative: false, Description: "Transfer in"},
		{Date: model.NewDate(2025, time.March, 2), Amount: dec(t, "200"), Negative: true, Description: "Transfer out"},
	}

	result := Match(rows, nil, defaultCategorizer(t), Options{Force: model.CategorySavings})
	require.Len(t, result.New, 2)
	for _, tx := range result.New {
		assert.Equal(t, model.CategorySavings, tx.Category)
	}
	assert.Zero(t, result.Suggested)
}

func TestMatchCustomFallback(t *testing.T) {
	rows := []Row{
		{Date: model.NewDate(2025, time.March, 4), Amount: dec(t, "60"), Negative: true, Description: "Plumbing parts"},
	}

	result := Match(rows, nil, defaultCategorizer(t), Options{Fallback: model.CategoryEssential})
	require.Len(t, result.New, 1)
	assert.Equal(t, model.CategoryEssential, result.New[0].Category)
}

func TestMatchDropsDuplicates(t *testing.T) {
	existing := []model.Transaction{
		{
			Date:        model.NewDate(2025, time.March, 2),
			Amount:      dec(t, "84.15"),
			Category:    model.CategoryEssential,
			Description: "Supermarket run",
		},
	}
	rows := []Row{
		{Date: model.NewDate(2025, time.March, 2), Amount: dec(t, "84.15"), Negative: true, Description: "Supermarket run"},
		{Date: model.NewDate(2025, time.March, 3), Amount: dec(t, "12"), Negative: true, Description: "Coffee"},
		{Date: model.NewDate(2025, time.March, 3), Amount: dec(t, "12"), Negative: true, Description: "Coffee"},
	}

	result := Match(rows, existing, defaultCategorizer(t), Options{})
	require.Len(t, result.New, 1)
	assert.Equal(t, "Coffee", result.New[0].Description)
	require.Len(t, result.Duplicates, 2)
}

func TestMatchNilCategorizer(t *testing.T) {
	rows := []Row{
		{Date: model.NewDate(2025, time.March, 2), Amount: dec(t, "84.15"), Negative: true, Description: "Supermarket run"},
	}

	result := Match(rows, nil, nil, Options{})
	require.Len(t, result.New, 1)
	assert.Equal(t, model.CategoryNonEssential, result.New[0].Category)
}
