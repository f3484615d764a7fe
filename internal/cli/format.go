// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// FormatMoney renders an amount with the currency symbol and grouped
// thousands, e.g. $1,234.56.
func FormatMoney(d decimal.Decimal, symbol string, places int) string {
	if places < 0 {
		places = 2
	}

	s := d.Abs().StringFixed(int32(places))
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	// Amounts past int64 range stay ungrouped.
	if n, err := strconv.ParseInt(intPart, 10, 64); err == nil {
		intPart = FormatNumber(n)
	}

	out := symbol + intPart + frac
	if d.IsNegative() {
		out = "-" + out
	}
	return out
}

// FormatDelta renders a signed amount, sign ahead of the symbol.
// e.g., +$120.00, -$45.50
func FormatDelta(d decimal.Decimal, symbol string, places int) string {
	if d.IsNegative() {
		return "-" + FormatMoney(d.Abs(), symbol, places)
	}
	return "+" + FormatMoney(d, symbol, places)
}

// FormatPercent renders a 0-100 percentage with one decimal place.
func FormatPercent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}

// FormatSignedPercent is FormatPercent with an explicit + on
// non-negative values.
func FormatSignedPercent(d decimal.Decimal) string {
	if d.IsNegative() {
		return d.StringFixed(1) + "%"
	}
	return "+" + d.StringFixed(1) + "%"
}

// FormatDate renders a date using the configured layout.
func FormatDate(d model.Date, layout string) string {
	if d.IsZero() {
		return ""
	}
	if layout == "" {
		layout = model.DateLayout
	}
	return d.Format(layout)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}
