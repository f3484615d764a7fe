package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Transaction is a single ledger entry. The category is implied by which
// file a row lives in and is filled in by the ledger when reading.
type Transaction struct {
	Date        Date
	Amount      decimal.Decimal
	Category    Category
	Description string
}

// Validate checks the invariants every persisted transaction must hold.
func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return &ValidationError{Field: "date", Value: "", Reason: "date is required"}
	}
	if t.Amount.IsNegative() {
		return &ValidationError{Field: "amount", Value: t.Amount.String(), Reason: "amount must be non-negative"}
	}
	if !t.Category.Valid() {
		return &ValidationError{Field: "category", Value: string(t.Category), Reason: "unknown category"}
	}
	if strings.ContainsAny(t.Description, "\r\n") {
		return &ValidationError{Field: "description", Value: t.Description, Reason: "description must be a single line"}
	}
	return nil
}

// Key returns a stable identity used for duplicate detection on import.
func (t Transaction) Key() string {
	return fmt.Sprintf("%s|%s|%s|%s",
		t.Category, t.Date.String(), t.Amount.StringFixed(2), strings.ToLower(strings.TrimSpace(t.Description)))
}

// ValidationError describes a transaction field that failed validation.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}
