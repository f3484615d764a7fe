package plan

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// Goal is a savings target. A goal with a keyword counts only the
// deposits mentioning it, the rest count every savings deposit.
type Goal struct {
	Name     string
	Target   decimal.Decimal
	Deadline model.Date
	Keyword  string
}

// Validate checks a goal before it is saved.
func (g Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("goal name must not be empty")
	}
	if !g.Target.IsPositive() {
		return fmt.Errorf("goal %q: target must be positive", g.Name)
	}
	return nil
}

// GoalProgress is a goal joined with its accumulated savings.
type GoalProgress struct {
	Goal
	Saved     decimal.Decimal
	Percent   float64
	StartedOn model.Date // date of the first counted deposit
}

// Done reports whether the target has been reached.
func (p GoalProgress) Done() bool {
	return p.Saved.GreaterThanOrEqual(p.Target)
}

// Remaining is the amount still to save, never negative.
func (p GoalProgress) Remaining() decimal.Decimal {
	if p.Done() {
		return decimal.Zero
	}
	return p.Target.Sub(p.Saved)
}

// OnTrack reports whether saving at a steady pace from the first deposit
// reaches the target by the deadline. Goals without a deadline, and goals
// whose saving has not started yet, count as on track.
func (p GoalProgress) OnTrack(today model.Date) bool {
	if p.Done() || p.Deadline.IsZero() {
		return true
	}
	if !today.Before(p.Deadline.Time) {
		return false
	}
	if p.StartedOn.IsZero() {
		return true
	}
	total := p.Deadline.Sub(p.StartedOn.Time)
	if total <= 0 {
		return false
	}
	elapsed := today.Sub(p.StartedOn.Time)
	expected := p.Target.Mul(decimal.NewFromFloat(elapsed.Hours() / total.Hours()))
	return p.Saved.GreaterThanOrEqual(expected)
}

// Progress computes how far along each goal is from the savings ledger.
func Progress(goals []Goal, txs []model.Transaction) []GoalProgress {
	var deposits []model.Transaction
	for _, tx := range txs {
		if tx.Category == model.CategorySavings {
			deposits = append(deposits, tx)
		}
	}

	out := make([]GoalProgress, 0, len(goals))
	for _, g := range goals {
		p := GoalProgress{Goal: g}
		for _, d := range deposits {
			if g.Keyword != "" && !containsFold(d.Description, g.Keyword) {
				continue
			}
			p.Saved = p.Saved.Add(d.Amount)
			if p.StartedOn.IsZero() || d.Date.Before(p.StartedOn.Time) {
				p.StartedOn = d.Date
			}
		}
		if g.Target.IsPositive() {
			pct, _ := p.Saved.Div(g.Target).Float64()
			p.Percent = pct * 100
		}
		out = append(out, p)
	}
	return out
}
