package tui

import (
	"fmt"
	"strings"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
)

// addValues holds the add-transaction form answers.
type addValues struct {
	Date        string
	Amount      string
	Category    string
	Description string
}

// newAddForm builds the inline add-transaction form.
func newAddForm(vals *addValues) *huh.Form {
	catOpts := make([]huh.Option[string], len(model.Categories))
	for i, c := range model.Categories {
		catOpts[i] = huh.NewOption(c.DisplayName(), string(c))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD, blank for today").
				Placeholder(model.Today().String()).
				Value(&vals.Date).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					_, err := model.ParseDate(s)
					return err
				}),
			huh.NewInput().
				Title("Amount").
				Placeholder("42.50").
				Value(&vals.Amount).
				Validate(func(s string) error {
					d, err := decimal.NewFromString(strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("enter a number like 42.50")
					}
					if d.IsNegative() {
						return fmt.Errorf("amount must not be negative")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Category").
				Options(catOpts...).
				Value(&vals.Category),
			huh.NewInput().
				Title("Description").
				Placeholder("Grocery run").
				Value(&vals.Description),
		),
	).WithTheme(formTheme()).WithShowHelp(true)
}

// transaction converts the form answers into a validated transaction.
func (v addValues) transaction() (model.Transaction, error) {
	date := model.Today()
	if s := strings.TrimSpace(v.Date); s != "" {
		var err error
		date, err = model.ParseDate(s)
		if err != nil {
			return model.Transaction{}, err
		}
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(v.Amount))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("invalid amount %q", v.Amount)
	}

	cat, err := model.ParseCategory(v.Category)
	if err != nil {
		return model.Transaction{}, err
	}

	tx := model.Transaction{
		Date:        date,
		Amount:      amount,
		Category:    cat,
		Description: strings.TrimSpace(v.Description),
	}
	if err := tx.Validate(); err != nil {
		return model.Transaction{}, err
	}
	return tx, nil
}
