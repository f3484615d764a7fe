package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// Header is the first line of every category file.
const Header = "date,amount,description"

// amount renders with two decimal places on disk regardless of how the
// value was entered.
type amount struct {
	decimal.Decimal
}

func (a amount) MarshalCSV() (string, error) {
	return a.StringFixed(2), nil
}

func (a *amount) UnmarshalCSV(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	a.Decimal = d
	return nil
}

// csvRow is the on-disk shape of a transaction. Category is implied by
// the file the row lives in.
type csvRow struct {
	Date        model.Date `csv:"date"`
	Amount      amount     `csv:"amount"`
	Description string     `csv:"description"`
}

func toRow(tx model.Transaction) csvRow {
	return csvRow{
		Date:        tx.Date,
		Amount:      amount{tx.Amount},
		Description: tx.Description,
	}
}

func (r csvRow) transaction(c model.Category) model.Transaction {
	return model.Transaction{
		Date:        r.Date,
		Amount:      r.Amount.Decimal,
		Category:    c,
		Description: r.Description,
	}
}
