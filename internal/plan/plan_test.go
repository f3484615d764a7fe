package plan

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/ledger"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func billTx(y int, m time.Month, d int, amount, desc string) model.Transaction {
	a, _ := decimal.NewFromString(amount)
	return model.Transaction{Date: model.NewDate(y, m, d), Amount: a, Category: model.CategoryBill, Description: desc}
}

func TestBillsRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())

	bills := []Bill{
		{Name: "Electricity", Amount: dec(t, "85.50"), DueDay: 15},
		{Name: "Internet", Amount: dec(t, "49.99"), DueDay: 1},
	}
	require.NoError(t, s.SaveBills(bills))

	got, err := s.LoadBills()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Electricity", got[0].Name)
	assert.True(t, got[0].Amount.Equal(dec(t, "85.50")))
	assert.Equal(t, 15, got[0].DueDay)
}

func TestLoadBillsMissingFile(t *testing.T) {
	s := NewStore(t.TempDir())
	bills, err := s.LoadBills()
	require.NoError(t, err)
	assert.Empty(t, bills)
}

func TestLoadBillsBadAmount(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	require.NoError(t, os.WriteFile(s.BillsPath(), []byte("bills:\n  - name: Rent\n    amount: lots\n    due_day: 1\n"), 0o644))

	_, err := s.LoadBills()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Rent")
}

func TestAddBillRejectsDuplicate(t *testing.T) {
	s := NewStore(t.TempDir())
	require.NoError(t, s.AddBill(Bill{Name: "Rent", Amount: dec(t, "1200"), DueDay: 1}))

	err := s.AddBill(Bill{Name: "rent", Amount: dec(t, "1300"), DueDay: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestRemoveBill(t *testing.T) {
	s := NewStore(t.TempDir())
	require.NoError(t, s.AddBill(Bill{Name: "Rent", Amount: dec(t, "1200"), DueDay: 1}))
	require.NoError(t, s.AddBill(Bill{Name: "Water", Amount: dec(t, "30"), DueDay: 20}))

	require.NoError(t, s.RemoveBill("RENT"))
	got, err := s.LoadBills()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Water", got[0].Name)

	require.Error(t, s.RemoveBill("Rent"))
}

func TestBillValidate(t *testing.T) {
	assert.Error(t, Bill{Name: " ", Amount: dec(t, "1"), DueDay: 1}.Validate())
	assert.Error(t, Bill{Name: "x", Amount: dec(t, "1"), DueDay: 0}.Validate())
	assert.Error(t, Bill{Name: "x", Amount: dec(t, "1"), DueDay: 32}.Validate())
	assert.NoError(t, Bill{Name: "x", Amount: dec(t, "1"), DueDay: 31}.Validate())
}

func TestDueInClampsShortMonths(t *testing.T) {
	b := Bill{Name: "Rent", Amount: decimal.NewFromInt(1200), DueDay: 31}

	due := b.DueIn(model.NewDate(2025, 2, 10))
	assert.True(t, due.SameDay(model.NewDate(2025, 2, 28)))

	due = b.DueIn(model.NewDate(2024, 2, 10))
	assert.True(t, due.SameDay(model.NewDate(2024, 2, 29)))

	due = b.DueIn(model.NewDate(2025, 3, 1))
	assert.True(t, due.SameDay(model.NewDate(2025, 3, 31)))
}

func TestStatusForMonthMatchesPayments(t *testing.T) {
	bills := []Bill{
		{Name: "Electricity", Amount: dec(t, "85"), DueDay: 15},
		{Name: "Internet", Amount: dec(t, "50"), DueDay: 5},
	}
	txs := []model.Transaction{
		billTx(2025, 3, 14, "85.00", "electricity march"),
		billTx(2025, 2, 5, "50.00", "Internet"), // previous month
	}

	statuses := StatusForMonth(bills, txs, model.NewDate(2025, 3, 20))
	require.Len(t, statuses, 2)

	// Sorted by due date
	assert.Equal(t, "Internet", statuses[0].Name)
	assert.False(t, statuses[0].Paid, "February payment must not pay March")

	assert.Equal(t, "Electricity", statuses[1].Name)
	assert.True(t, statuses[1].Paid)
	assert.True(t, statuses[1].PaidOn.SameDay(model.NewDate(2025, 3, 14)))
	assert.True(t, statuses[1].PaidAmount.Equal(dec(t, "85.00")))

	assert.Equal(t, 1, UnpaidCount(statuses))
}

func TestUpcomingAndOverdue(t *testing.T) {
	bills := []Bill{
		{Name: "Rent", Amount: dec(t, "1200"), DueDay: 1},
		{Name: "Electricity", Amount: dec(t, "85"), DueDay: 15},
		{Name: "Insurance", Amount: dec(t, "60"), DueDay: 28},
	}
	today := model.NewDate(2025, 3, 10)

	statuses := StatusForMonth(bills, nil, today)

	up := Upcoming(statuses, today, 7)
	require.Len(t, up, 1)
	assert.Equal(t, "Electricity", up[0].Name)

	late := Overdue(statuses, today)
	require.Len(t, late, 1)
	assert.Equal(t, "Rent", late[0].Name)
}

func TestPayAppendsLedgerRow(t *testing.T) {
	led := ledger.New(t.TempDir())
	b := Bill{Name: "Electricity", Amount: dec(t, "85.50"), DueDay: 15}

	require.NoError(t, Pay(led, b, model.NewDate(2025, 3, 14)))

	txs, err := led.Read(model.CategoryBill)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Electricity", txs[0].Description)
	assert.True(t, txs[0].Amount.Equal(dec(t, "85.50")))

	statuses := StatusForMonth([]Bill{b}, txs, model.NewDate(2025, 3, 20))
	assert.True(t, statuses[0].Paid)
}

func TestGoalsRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())

	goals := []Goal{
		{Name: "Emergency fund", Target: dec(t, "5000")},
		{Name: "Holiday", Target: dec(t, "1500"), Deadline: model.NewDate(2025, 12, 1), Keyword: "holiday"},
	}
	require.NoError(t, s.SaveGoals(goals))

	got, err := s.LoadGoals()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].Deadline.IsZero())
	assert.True(t, got[1].Deadline.SameDay(model.NewDate(2025, 12, 1)))
	assert.Equal(t, "holiday", got[1].Keyword)
}

func TestGoalProgress(t *testing.T) {
	goals := []Goal{
		{Name: "Emergency fund", Target: dec(t, "1000")},
		{Name: "Holiday", Target: dec(t, "500"), Keyword: "holiday"},
	}
	txs := []model.Transaction{
		{Date: model.NewDate(2025, 3, 1), Amount: dec(t, "300"), Category: model.CategorySavings, Description: "monthly transfer"},
		{Date: model.NewDate(2025, 3, 10), Amount: dec(t, "250"), Category: model.CategorySavings, Description: "Holiday pot"},
		{Date: model.NewDate(2025, 3, 12), Amount: dec(t, "40"), Category: model.CategoryEssential, Description: "holiday groceries"},
	}

	progress := Progress(goals, txs)
	require.Len(t, progress, 2)

	// Keyword-less goals count every savings deposit
	assert.True(t, progress[0].Saved.Equal(dec(t, "550")))
	assert.InDelta(t, 55.0, progress[0].Percent, 0.001)
	assert.False(t, progress[0].Done())
	assert.True(t, progress[0].Remaining().Equal(dec(t, "450")))
	assert.True(t, progress[0].StartedOn.SameDay(model.NewDate(2025, 3, 1)))

	// Keyword goals count only matching deposits, never other categories
	assert.True(t, progress[1].Saved.Equal(dec(t, "250")))
	assert.InDelta(t, 50.0, progress[1].Percent, 0.001)
	assert.True(t, progress[1].StartedOn.SameDay(model.NewDate(2025, 3, 10)))
}

func TestGoalOnTrack(t *testing.T) {
	deadline := model.NewDate(2025, 12, 31)
	base := GoalProgress{
		Goal:      Goal{Name: "Holiday", Target: dec(t, "1000"), Deadline: deadline},
		StartedOn: model.NewDate(2025, 1, 1),
	}

	// Halfway to the deadline with over half saved
	p := base
	p.Saved = dec(t, "600")
	assert.True(t, p.OnTrack(model.NewDate(2025, 7, 1)))

	// Halfway there with only a quarter saved
	p.Saved = dec(t, "250")
	assert.False(t, p.OnTrack(model.NewDate(2025, 7, 1)))

	// Deadline passed without reaching the target
	p.Saved = dec(t, "900")
	assert.False(t, p.OnTrack(model.NewDate(2026, 1, 1)))

	// Reached goals stay on track even past the deadline
	p.Saved = dec(t, "1000")
	assert.True(t, p.OnTrack(model.NewDate(2026, 1, 1)))

	// No deadline means nothing to miss
	free := GoalProgress{Goal: Goal{Name: "Pot", Target: dec(t, "1000")}, Saved: dec(t, "1")}
	assert.True(t, free.OnTrack(model.NewDate(2025, 7, 1)))

	// The pace clock only starts with the first deposit
	fresh := GoalProgress{Goal: Goal{Name: "Fresh", Target: dec(t, "1000"), Deadline: deadline}}
	assert.True(t, fresh.OnTrack(model.NewDate(2025, 7, 1)))
}

func TestGoalValidate(t *testing.T) {
	assert.Error(t, Goal{Name: "", Target: dec(t, "10")}.Validate())
	assert.Error(t, Goal{Name: "x", Target: decimal.Zero}.Validate())
	assert.NoError(t, Goal{Name: "x", Target: dec(t, "10")}.Validate())
}
