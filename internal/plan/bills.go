package plan

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/ledger"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// Bill is one recurring monthly obligation.
type Bill struct {
	Name   string
	Amount decimal.Decimal
	DueDay int
}

// Validate checks a bill before it enters the schedule.
func (b Bill) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return fmt.Errorf("bill name must not be empty")
	}
	if b.Amount.IsNegative() {
		return fmt.Errorf("bill %q: amount must not be negative", b.Name)
	}
	if b.DueDay < 1 || b.DueDay > 31 {
		return fmt.Errorf("bill %q: due day %d outside 1-31", b.Name, b.DueDay)
	}
	return nil
}

// DueIn returns the bill's due date in the month containing ref,
// clamping the day to the month's length.
func (b Bill) DueIn(ref model.Date) model.Date {
	y, m, _ := ref.Date()
	day := b.DueDay
	if last := time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day(); day > last {
		day = last
	}
	return model.NewDate(y, m, day)
}

// BillStatus joins a scheduled bill with its payment state for one month.
type BillStatus struct {
	Bill
	Due        model.Date
	Paid       bool
	PaidOn     model.Date
	PaidAmount decimal.Decimal
}

// StatusForMonth derives each bill's state for the month containing ref.
// A bill counts as paid when a bill-category transaction in that month
// mentions its name, case-insensitively.
func StatusForMonth(bills []Bill, txs []model.Transaction, ref model.Date) []BillStatus {
	monthStart := ref.MonthStart()
	nextMonth := monthStart.AddDate(0, 1, 0)

	var payments []model.Transaction
	for _, tx := range txs {
		if tx.Category != model.CategoryBill {
			continue
		}
		if tx.Date.InRange(monthStart, model.DateOf(nextMonth)) {
			payments = append(payments, tx)
		}
	}

	statuses := make([]BillStatus, 0, len(bills))
	for _, b := range bills {
		st := BillStatus{Bill: b, Due: b.DueIn(ref)}
		for _, p := range payments {
			if containsFold(p.Description, b.Name) {
				st.Paid = true
				st.PaidOn = p.Date
				st.PaidAmount = p.Amount
				break
			}
		}
		statuses = append(statuses, st)
	}

	sort.SliceStable(statuses, func(i, j int) bool {
		return statuses[i].Due.Before(statuses[j].Due.Time)
	})
	return statuses
}

// Upcoming returns unpaid bills due within days of today, inclusive,
// soonest first.
func Upcoming(statuses []BillStatus, today model.Date, days int) []BillStatus {
	horizon := today.AddDays(days)
	var due []BillStatus
	for _, st := range statuses {
		if st.Paid {
			continue
		}
		if st.Due.Before(today.Time) || st.Due.After(horizon.Time) {
			continue
		}
		due = append(due, st)
	}
	return due
}

// Overdue returns unpaid bills whose due date has passed.
func Overdue(statuses []BillStatus, today model.Date) []BillStatus {
	var late []BillStatus
	for _, st := range statuses {
		if !st.Paid && st.Due.Before(today.Time) {
			late = append(late, st)
		}
	}
	return late
}

// UnpaidCount is the number of bills not yet paid this month.
func UnpaidCount(statuses []BillStatus) int {
	n := 0
	for _, st := range statuses {
		if !st.Paid {
			n++
		}
	}
	return n
}

// Pay appends the ledger row that marks a bill paid on the given day.
func Pay(led *ledger.Ledger, b Bill, on model.Date) error {
	return led.Append(model.Transaction{
		Date:        on,
		Amount:      b.Amount,
		Category:    model.CategoryBill,
		Description: b.Name,
	})
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
