package model

import "github.com/shopspring/decimal"

// Summary holds the top-level totals across all ledgers for a period.
type Summary struct {
	Income       decimal.Decimal
	Essentials   decimal.Decimal
	NonEssential decimal.Decimal
	Bills        decimal.Decimal
	Savings      decimal.Decimal

	// TotalSpending is essentials + non-essentials + bills + savings,
	// the figure the dashboard reports as money out.
	TotalSpending decimal.Decimal
	Net           decimal.Decimal

	Transactions int
	ActiveDays   int
	UnpaidBills  int
}

// ByCategory returns the summed amount for a single category.
func (s Summary) ByCategory(c Category) decimal.Decimal {
	switch c {
	case CategoryIncome:
		return s.Income
	case CategoryEssential:
		return s.Essentials
	case CategoryNonEssential:
		return s.NonEssential
	case CategoryBill:
		return s.Bills
	case CategorySavings:
		return s.Savings
	}
	return decimal.Zero
}

// BucketReport compares one allocation bucket against its target.
type BucketReport struct {
	Name       string
	TargetPct  int64
	Target     decimal.Decimal
	Actual     decimal.Decimal
	Difference decimal.Decimal // actual - target, positive means over
	OfIncome   float64         // actual as a percentage of income
	Share      float64         // actual as a percentage of all bucket spending
}

// Over reports whether the bucket exceeded its target.
func (b BucketReport) Over() bool {
	return b.Difference.IsPositive()
}

// VariancePct is the signed over/under percentage relative to the target.
func (b BucketReport) VariancePct() float64 {
	if b.Target.IsZero() {
		return 0
	}
	v, _ := b.Difference.Div(b.Target).Float64()
	return v * 100
}

// Allocation is the budget-rule report. Bills are counted inside the
// essentials bucket since they are fixed obligations.
type Allocation struct {
	Income     decimal.Decimal
	Essentials BucketReport
	Wants      BucketReport
	Savings    BucketReport
}

// Buckets returns the three buckets in rule order.
func (a Allocation) Buckets() []BucketReport {
	return []BucketReport{a.Essentials, a.Wants, a.Savings}
}

// DailyStats holds activity for a single calendar day.
type DailyStats struct {
	Date     Date
	Income   decimal.Decimal
	Spending decimal.Decimal
	Count    int
}

// MonthlyStats holds per-category totals for one calendar month.
type MonthlyStats struct {
	Month        Date // first day of the month
	Income       decimal.Decimal
	Essentials   decimal.Decimal
	NonEssential decimal.Decimal
	Bills        decimal.Decimal
	Savings      decimal.Decimal
	Spending     decimal.Decimal
}

// KPIStats are the derived indicators shown on the analytics surfaces.
type KPIStats struct {
	SavingsRate    float64 // savings as % of income
	ExpenseRatio   float64 // all spending as % of income
	BudgetVariance decimal.Decimal
	EmergencyFund  decimal.Decimal // six months at the current savings pace
	MonthsCovered  float64         // savings vs average monthly spending
}

// HealthScore grades the budget out of 100 in four 25-point components.
type HealthScore struct {
	SavingsRate    float64
	Adherence      float64
	EmergencyFund  float64
	ExpenseControl float64
}

// Total sums the components.
func (h HealthScore) Total() float64 {
	return h.SavingsRate + h.Adherence + h.EmergencyFund + h.ExpenseControl
}

// Interpretation maps the total score to a verdict.
func (h HealthScore) Interpretation() string {
	switch total := h.Total(); {
	case total >= 80:
		return "Excellent financial health"
	case total >= 60:
		return "Good financial management"
	case total >= 40:
		return "Needs improvement"
	default:
		return "Critical, review budget now"
	}
}
