package tui

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/config"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/plan"
)

func bucket(name string, target, actual int64) model.BucketReport {
	b := model.BucketReport{
		Name:   name,
		Target: decimal.NewFromInt(target),
		Actual: decimal.NewFromInt(actual),
	}
	b.Difference = b.Actual.Sub(b.Target)
	return b
}

func TestAlertLinesOverspend(t *testing.T) {
	app := App{cfg: config.DefaultConfig()} // threshold 10%
	app.alloc = model.Allocation{
		Essentials: bucket("Essentials", 500, 620),     // 24% over, alert
		Wants:      bucket("Non-Essentials", 300, 315), // 5% over, under threshold
		Savings:    bucket("Savings", 200, 400),        // over on savings is fine
	}

	alerts := app.alertLines()
	if len(alerts) != 1 {
		t.Fatalf("got %d alerts %v, want 1", len(alerts), alerts)
	}
	if !strings.Contains(alerts[0], "Essentials") || !strings.Contains(alerts[0], "24% over") {
		t.Fatalf("unexpected alert text %q", alerts[0])
	}
}

func TestAlertLinesQuietWhenOnBudget(t *testing.T) {
	app := App{cfg: config.DefaultConfig()}
	app.alloc = model.Allocation{
		Essentials: bucket("Essentials", 500, 480),
		Wants:      bucket("Non-Essentials", 300, 290),
		Savings:    bucket("Savings", 200, 210),
	}

	if alerts := app.alertLines(); len(alerts) != 0 {
		t.Fatalf("want no alerts, got %v", alerts)
	}
}

func TestAlertLinesOverdueBills(t *testing.T) {
	today := model.Today()
	app := App{cfg: config.DefaultConfig()}
	app.billStatuses = []plan.BillStatus{
		{Bill: plan.Bill{Name: "Rent"}, Due: today.AddDays(-3)},
		{Bill: plan.Bill{Name: "Power"}, Due: today.AddDays(-1), Paid: true},
		{Bill: plan.Bill{Name: "Water"}, Due: today.AddDays(2)},
	}

	alerts := app.alertLines()
	if len(alerts) != 1 {
		t.Fatalf("got %d alerts %v, want 1", len(alerts), alerts)
	}
	if !strings.Contains(alerts[0], "1 bill overdue") {
		t.Fatalf("unexpected alert text %q", alerts[0])
	}

	app.billStatuses[1].Paid = false
	alerts = app.alertLines()
	if len(alerts) != 1 || !strings.Contains(alerts[0], "2 bills overdue") {
		t.Fatalf("unexpected alerts %v", alerts)
	}
}
