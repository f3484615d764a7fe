package pipeline

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/config"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// Allocate builds the budget-rule report from a period summary. Targets
// derive from income at the configured split, and bill payments count
// toward the essentials bucket.
func Allocate(s model.Summary, b config.BudgetConfig) model.Allocation {
	essentials := s.Essentials.Add(s.Bills)
	total := essentials.Add(s.NonEssential).Add(s.Savings)

	return model.Allocation{
		Income:     s.Income,
		Essentials: bucketReport("Essentials", b.EssentialsPct, s.Income, essentials, total),
		Wants:      bucketReport("Non-Essentials", b.NonEssentialsPct, s.Income, s.NonEssential, total),
		Savings:    bucketReport("Savings", b.SavingsPct, s.Income, s.Savings, total),
	}
}

func bucketReport(name string, pct int64, income, actual, totalSpending decimal.Decimal) model.BucketReport {
	r := model.BucketReport{
		Name:      name,
		TargetPct: pct,
		Target:    income.Mul(decimal.NewFromInt(pct)).Div(decimal.NewFromInt(100)),
		Actual:    actual,
	}
	r.Difference = r.Actual.Sub(r.Target)
	if income.IsPositive() {
		of, _ := actual.Div(income).Float64()
		r.OfIncome = of * 100
	}
	if totalSpending.IsPositive() {
		share, _ := actual.Div(totalSpending).Float64()
		r.Share = share * 100
	}
	return r
}

// ComputeKPIs derives the analytics indicators from a period summary.
// monthsWithData scales expense coverage to a monthly pace.
func ComputeKPIs(s model.Summary, monthsWithData int) model.KPIStats {
	var k model.KPIStats

	expenses := s.Essentials.Add(s.Bills).Add(s.NonEssential)

	if s.Income.IsPositive() {
		rate, _ := s.Savings.Div(s.Income).Float64()
		k.SavingsRate = rate * 100
		ratio, _ := expenses.Div(s.Income).Float64()
		k.ExpenseRatio = ratio * 100
	}
	k.BudgetVariance = s.Net.Abs()
	k.EmergencyFund = s.Savings.Mul(decimal.NewFromInt(6))

	if monthsWithData > 0 && expenses.IsPositive() {
		monthly := expenses.Div(decimal.NewFromInt(int64(monthsWithData)))
		covered, _ := s.Savings.Div(monthly).Float64()
		k.MonthsCovered = covered
	}
	return k
}

// ComputeHealth grades the budget in four components of 25 points each:
// savings rate against its target, adherence to the split, emergency
// coverage, and expense control.
func ComputeHealth(s model.Summary, a model.Allocation, k model.KPIStats) model.HealthScore {
	h := model.HealthScore{
		SavingsRate: math.Min(k.SavingsRate/20*25, 25),
	}

	var absVar float64
	for _, b := range a.Buckets() {
		absVar += math.Abs(b.VariancePct())
	}
	absVar /= 3
	h.Adherence = math.Max(0, 25-absVar/10*25)

	expenses := s.Essentials.Add(s.Bills).Add(s.NonEssential)
	if expenses.IsPositive() {
		cover, _ := s.Savings.Div(expenses.Mul(decimal.NewFromInt(3))).Float64()
		h.EmergencyFund = math.Min(cover*25, 25)
	}

	if k.ExpenseRatio > 80 {
		h.ExpenseControl = math.Max(0, 25-(k.ExpenseRatio-80)/20*25)
	} else {
		h.ExpenseControl = 25
	}
	return h
}

// Recommendations lists actionable advice for the period.
func Recommendations(a model.Allocation, unpaidBills int) []string {
	var recs []string

	if a.Savings.OfIncome < float64(a.Savings.TargetPct) {
		recs = append(recs, fmt.Sprintf("Increase your savings rate to reach the %d%% target", a.Savings.TargetPct))
	}
	if a.Essentials.Over() {
		recs = append(recs, fmt.Sprintf("Review essential expenses, spending is over the %d%% target", a.Essentials.TargetPct))
	}
	if a.Wants.Over() {
		recs = append(recs, fmt.Sprintf("Reduce non-essential spending to stay within the %d%% budget", a.Wants.TargetPct))
	}
	if unpaidBills > 0 {
		recs = append(recs, "Pay outstanding bills to avoid late fees")
	}
	expenses := a.Essentials.Actual.Add(a.Wants.Actual)
	if expenses.IsPositive() && a.Savings.Actual.LessThan(expenses.Mul(decimal.NewFromInt(3))) {
		recs = append(recs, "Build an emergency fund covering 3 to 6 months of expenses")
	}

	if len(recs) == 0 {
		recs = append(recs, "Great job! Your budget is well balanced")
	}
	return recs
}
