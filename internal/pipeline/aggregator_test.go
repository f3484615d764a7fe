package pipeline

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/config"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

func date(y int, m time.Month, d int) model.Date {
	return model.NewDate(y, m, d)
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func tx(y int, m time.Month, d int, amount string, c model.Category, desc string) model.Transaction {
	a, _ := decimal.NewFromString(amount)
	return model.Transaction{Date: model.NewDate(y, m, d), Amount: a, Category: c, Description: desc}
}

func sampleMonth(t *testing.T) []model.Transaction {
	t.Helper()
	return []model.Transaction{
		tx(2025, 3, 1, "2000.00", model.CategoryIncome, "salary"),
		tx(2025, 3, 2, "600.00", model.CategoryEssential, "groceries"),
		tx(2025, 3, 5, "400.00", model.CategoryBill, "rent share"),
		tx(2025, 3, 9, "300.00", model.CategoryNonEssential, "concert"),
		tx(2025, 3, 15, "250.00", model.CategorySavings, "transfer"),
	}
}

func TestSummarizeSpendingMatchesCategorySum(t *testing.T) {
	txs := sampleMonth(t)
	s := Summarize(txs, model.Date{}, model.Date{})

	want := s.Essentials.Add(s.NonEssential).Add(s.Bills).Add(s.Savings)
	assert.True(t, s.TotalSpending.Equal(want), "TotalSpending %s != category sum %s", s.TotalSpending, want)
	assert.True(t, s.TotalSpending.Equal(dec(t, "1550.00")))
	assert.True(t, s.Income.Equal(dec(t, "2000.00")))
	assert.True(t, s.Net.Equal(dec(t, "450.00")))
	assert.Equal(t, 5, s.Transactions)
	assert.Equal(t, 5, s.ActiveDays)
}

func TestSummarizeWindowIsHalfOpen(t *testing.T) {
	txs := []model.Transaction{
		tx(2025, 3, 1, "10", model.CategoryEssential, "in window"),
		tx(2025, 3, 31, "20", model.CategoryEssential, "last day"),
		tx(2025, 4, 1, "40", model.CategoryEssential, "next month"),
	}

	s := Summarize(txs, date(2025, 3, 1), date(2025, 4, 1))
	assert.True(t, s.Essentials.Equal(dec(t, "30")), "got %s", s.Essentials)
	assert.Equal(t, 2, s.Transactions)
}

func TestAggregateDaysFillsGaps(t *testing.T) {
	txs := []model.Transaction{
		tx(2025, 3, 10, "100", model.CategoryIncome, "pay"),
		tx(2025, 3, 10, "25", model.CategoryEssential, "food"),
		tx(2025, 3, 13, "40", model.CategoryNonEssential, "games"),
	}

	days := AggregateDays(txs, date(2025, 3, 10), date(2025, 3, 15))
	require.Len(t, days, 5)

	// Most recent first
	assert.True(t, days[0].Date.SameDay(date(2025, 3, 14)))
	assert.True(t, days[4].Date.SameDay(date(2025, 3, 10)))

	assert.True(t, days[4].Income.Equal(dec(t, "100")))
	assert.True(t, days[4].Spending.Equal(dec(t, "25")))
	assert.Equal(t, 2, days[4].Count)

	// Gap day stays zeroed
	assert.True(t, days[3].Spending.IsZero())
	assert.Equal(t, 0, days[3].Count)

	assert.True(t, days[1].Spending.Equal(dec(t, "40")))
}

func TestAggregateDaysOpenBoundsUseDataExtent(t *testing.T) {
	txs := []model.Transaction{
		tx(2025, 3, 3, "5", model.CategoryEssential, "a"),
		tx(2025, 3, 6, "5", model.CategoryEssential, "b"),
	}

	days := AggregateDays(txs, model.Date{}, model.Date{})
	require.Len(t, days, 4)
	assert.True(t, days[0].Date.SameDay(date(2025, 3, 6)))
	assert.True(t, days[3].Date.SameDay(date(2025, 3, 3)))
}

func TestAggregateDaysEmpty(t *testing.T) {
	days := AggregateDays(nil, model.Date{}, model.Date{})
	assert.Empty(t, days)
}

func TestAggregateMonths(t *testing.T) {
	txs := []model.Transaction{
		tx(2025, 2, 10, "1000", model.CategoryIncome, "pay"),
		tx(2025, 2, 12, "200", model.CategoryBill, "power"),
		tx(2025, 3, 1, "1000", model.CategoryIncome, "pay"),
		tx(2025, 3, 20, "150", model.CategorySavings, "transfer"),
	}

	months := AggregateMonths(txs, model.Date{}, model.Date{})
	require.Len(t, months, 2)

	assert.True(t, months[0].Month.SameDay(date(2025, 3, 1)))
	assert.True(t, months[0].Savings.Equal(dec(t, "150")))
	assert.True(t, months[0].Spending.Equal(dec(t, "150")), "income must not count as spending")

	assert.True(t, months[1].Month.SameDay(date(2025, 2, 1)))
	assert.True(t, months[1].Bills.Equal(dec(t, "200")))
	assert.True(t, months[1].Income.Equal(dec(t, "1000")))
}

func TestSavingsProgressAccumulates(t *testing.T) {
	txs := []model.Transaction{
		tx(2025, 3, 20, "50", model.CategorySavings, "later"),
		tx(2025, 3, 5, "100", model.CategorySavings, "first"),
		tx(2025, 3, 10, "75", model.CategoryEssential, "not savings"),
	}

	points := SavingsProgress(txs)
	require.Len(t, points, 2)
	assert.True(t, points[0].Date.SameDay(date(2025, 3, 5)))
	assert.True(t, points[0].Total.Equal(dec(t, "100")))
	assert.True(t, points[1].Total.Equal(dec(t, "150")))
}

func TestAllocateTargetsFromSplit(t *testing.T) {
	s := Summarize(sampleMonth(t), model.Date{}, model.Date{})
	a := Allocate(s, config.DefaultConfig().Budget)

	assert.True(t, a.Essentials.Target.Equal(dec(t, "1000")), "got %s", a.Essentials.Target)
	assert.True(t, a.Wants.Target.Equal(dec(t, "600")))
	assert.True(t, a.Savings.Target.Equal(dec(t, "400")))

	// Bills fold into essentials
	assert.True(t, a.Essentials.Actual.Equal(dec(t, "1000")))
	assert.False(t, a.Essentials.Over())
	assert.True(t, a.Essentials.Difference.IsZero())

	assert.True(t, a.Savings.Difference.Equal(dec(t, "-150")))
	assert.InDelta(t, -37.5, a.Savings.VariancePct(), 0.001)
}

func TestAllocateSharesSumToHundred(t *testing.T) {
	s := Summarize(sampleMonth(t), model.Date{}, model.Date{})
	a := Allocate(s, config.DefaultConfig().Budget)

	sum := a.Essentials.Share + a.Wants.Share + a.Savings.Share
	assert.InDelta(t, 100.0, sum, 0.001)
}

func TestAllocateZeroIncome(t *testing.T) {
	txs := []model.Transaction{
		tx(2025, 3, 2, "80", model.CategoryEssential, "groceries"),
	}
	s := Summarize(txs, model.Date{}, model.Date{})
	a := Allocate(s, config.DefaultConfig().Budget)

	assert.True(t, a.Essentials.Target.IsZero())
	assert.Zero(t, a.Essentials.OfIncome)
	assert.InDelta(t, 100.0, a.Essentials.Share, 0.001)
}

func TestComputeKPIs(t *testing.T) {
	s := Summarize(sampleMonth(t), model.Date{}, model.Date{})
	k := ComputeKPIs(s, 1)

	assert.InDelta(t, 12.5, k.SavingsRate, 0.001)  // 250 / 2000
	assert.InDelta(t, 65.0, k.ExpenseRatio, 0.001) // 1300 / 2000
	assert.True(t, k.BudgetVariance.Equal(dec(t, "450.00")))
	assert.True(t, k.EmergencyFund.Equal(dec(t, "1500.00")))
	assert.InDelta(t, 250.0/1300.0, k.MonthsCovered, 0.001)
}

func TestComputeKPIsZeroIncome(t *testing.T) {
	k := ComputeKPIs(model.Summary{}, 0)
	assert.Zero(t, k.SavingsRate)
	assert.Zero(t, k.ExpenseRatio)
	assert.True(t, k.BudgetVariance.IsZero())
}

func TestComputeHealthOnPlan(t *testing.T) {
	// Spending exactly on the 50/30/20 split
	txs := []model.Transaction{
		tx(2025, 3, 1, "1000", model.CategoryIncome, "salary"),
		tx(2025, 3, 2, "500", model.CategoryEssential, "rent and food"),
		tx(2025, 3, 3, "300", model.CategoryNonEssential, "fun"),
		tx(2025, 3, 4, "200", model.CategorySavings, "transfer"),
	}
	s := Summarize(txs, model.Date{}, model.Date{})
	a := Allocate(s, config.DefaultConfig().Budget)
	k := ComputeKPIs(s, 1)
	h := ComputeHealth(s, a, k)

	assert.InDelta(t, 25, h.SavingsRate, 0.001)
	assert.InDelta(t, 25, h.Adherence, 0.001)
	assert.InDelta(t, 25, h.ExpenseControl, 0.001)
	// 200 saved against 2400 needed for three months of cover
	assert.InDelta(t, 200.0/2400.0*25, h.EmergencyFund, 0.001)

	assert.Equal(t, "Good financial management", h.Interpretation())
}

func TestComputeHealthOverspending(t *testing.T) {
	txs := []model.Transaction{
		tx(2025, 3, 1, "1000", model.CategoryIncome, "salary"),
		tx(2025, 3, 2, "990", model.CategoryEssential, "everything"),
	}
	s := Summarize(txs, model.Date{}, model.Date{})
	a := Allocate(s, config.DefaultConfig().Budget)
	k := ComputeKPIs(s, 1)
	h := ComputeHealth(s, a, k)

	assert.Zero(t, h.SavingsRate)
	assert.Zero(t, h.Adherence, "heavy overspend must zero adherence")
	// ratio 99 -> 25 - 19/20*25
	assert.InDelta(t, 25-19.0/20.0*25, h.ExpenseControl, 0.001)
	assert.Equal(t, "Critical, review budget now", h.Interpretation())
}

func TestRecommendations(t *testing.T) {
	txs := []model.Transaction{
		tx(2025, 3, 1, "1000", model.CategoryIncome, "salary"),
		tx(2025, 3, 2, "700", model.CategoryEssential, "rent"),
		tx(2025, 3, 3, "100", model.CategorySavings, "transfer"),
	}
	s := Summarize(txs, model.Date{}, model.Date{})
	a := Allocate(s, config.DefaultConfig().Budget)

	recs := Recommendations(a, 2)
	assert.Contains(t, recs, "Increase your savings rate to reach the 20% target")
	assert.Contains(t, recs, "Review essential expenses, spending is over the 50% target")
	assert.Contains(t, recs, "Pay outstanding bills to avoid late fees")
	assert.Contains(t, recs, "Build an emergency fund covering 3 to 6 months of expenses")
}

func TestRecommendationsBalanced(t *testing.T) {
	txs := []model.Transaction{
		tx(2025, 3, 1, "1000", model.CategoryIncome, "salary"),
		tx(2025, 3, 2, "400", model.CategoryEssential, "rent"),
		tx(2025, 3, 3, "100", model.CategoryNonEssential, "fun"),
		tx(2025, 3, 4, "250", model.CategorySavings, "transfer"),
	}
	s := Summarize(txs, model.Date{}, model.Date{})
	a := Allocate(s, config.DefaultConfig().Budget)

	// Savings cover three months of the 500 spent
	a.Savings.Actual = dec(t, "1500")
	recs := Recommendations(a, 0)
	assert.Equal(t, []string{"Great job! Your budget is well balanced"}, recs)
}

func TestFilterByCategory(t *testing.T) {
	txs := sampleMonth(t)
	bills := FilterByCategory(txs, model.CategoryBill)
	require.Len(t, bills, 1)
	assert.Equal(t, "rent share", bills[0].Description)
}

func TestSearchIgnoresCase(t *testing.T) {
	txs := sampleMonth(t)
	got := Search(txs, "GROC")
	require.Len(t, got, 1)
	assert.Equal(t, "groceries", got[0].Description)

	assert.Len(t, Search(txs, ""), len(txs))
	assert.Empty(t, Search(txs, "no such thing"))
}
