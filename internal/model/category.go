package model

import (
	"fmt"
	"strings"
)

// Category identifies which ledger a transaction belongs to.
type Category string

const (
	CategoryIncome       Category = "income"
	CategoryEssential    Category = "essential"
	CategoryNonEssential Category = "non-essential"
	CategoryBill         Category = "bill"
	CategorySavings      Category = "savings"
)

// Categories lists all categories in display order.
var Categories = []Category{
	CategoryIncome,
	CategoryEssential,
	CategoryNonEssential,
	CategoryBill,
	CategorySavings,
}

// Spending categories, i.e. everything that is not income.
var SpendingCategories = []Category{
	CategoryEssential,
	CategoryNonEssential,
	CategoryBill,
	CategorySavings,
}

var categoryAliases = map[string]Category{
	"income":         CategoryIncome,
	"essential":      CategoryEssential,
	"essentials":     CategoryEssential,
	"non-essential":  CategoryNonEssential,
	"non-essentials": CategoryNonEssential,
	"non_essential":  CategoryNonEssential,
	"non_essentials": CategoryNonEssential,
	"nonessential":   CategoryNonEssential,
	"bill":           CategoryBill,
	"bills":          CategoryBill,
	"saving":         CategorySavings,
	"savings":        CategorySavings,
}

// ParseCategory resolves a user-supplied category name, accepting the
// plural and underscore spellings that show up in hand-edited files.
func ParseCategory(s string) (Category, error) {
	c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", &ValidationError{Field: "category", Value: s, Reason: "unknown category"}
	}
	return c, nil
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// FileName returns the CSV file name holding this category's ledger.
func (c Category) FileName() string {
	switch c {
	case CategoryIncome:
		return "income.csv"
	case CategoryEssential:
		return "essentials.csv"
	case CategoryNonEssential:
		return "non_essentials.csv"
	case CategoryBill:
		return "bills.csv"
	case CategorySavings:
		return "savings.csv"
	}
	return string(c) + ".csv"
}

// DisplayName returns the label used in tables and cards.
func (c Category) DisplayName() string {
	switch c {
	case CategoryIncome:
		return "Income"
	case CategoryEssential:
		return "Essentials"
	case CategoryNonEssential:
		return "Non-Essentials"
	case CategoryBill:
		return "Bills"
	case CategorySavings:
		return "Savings"
	}
	return string(c)
}

func (c Category) String() string { return string(c) }

// CategoryByFileName maps a ledger file name back to its category.
func CategoryByFileName(name string) (Category, error) {
	for _, c := range Categories {
		if c.FileName() == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("no category for file %q", name)
}
