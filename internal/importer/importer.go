// Package importer brings bank CSV exports into the ledger. Columns are
// positional since every bank exports a different layout, amounts are
// cleaned of currency noise, and rows already present in the ledger are
// suppressed.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/categorize"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/logging"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// Mapping describes where the ledger fields sit in a bank CSV.
type Mapping struct {
	DateCol   int
	AmountCol int
	DescCol   int

	// DateFormat pins the date layout in Go reference time form.
	// Empty tries the formats the ledger itself accepts.
	DateFormat string
	HasHeader  bool
}

// DefaultMapping matches exports laid out date,amount,description.
func DefaultMapping() Mapping {
	return Mapping{DateCol: 0, AmountCol: 1, DescCol: 2, HasHeader: true}
}

// Validate checks the column indices are usable.
func (m Mapping) Validate() error {
	if m.DateCol < 0 || m.AmountCol < 0 || m.DescCol < 0 {
		return fmt.Errorf("column indices must be non-negative")
	}
	if m.DateCol == m.AmountCol || m.DateCol == m.DescCol || m.AmountCol == m.DescCol {
		return fmt.Errorf("date, amount and description columns must differ")
	}
	return nil
}

// Row is one usable line from a bank export. Negative records the sign
// the bank gave the amount, Amount itself is always non-negative.
type Row struct {
	Line        int
	Date        model.Date
	Amount      decimal.Decimal
	Negative    bool
	Description string
}

// Parse reads a bank CSV using the mapping. Blank lines are skipped,
// anything else that does not parse fails with its row number.
func Parse(r io.Reader, m Mapping) ([]Row, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	maxCol := m.DateCol
	if m.AmountCol > maxCol {
		maxCol = m.AmountCol
	}
	if m.DescCol > maxCol {
		maxCol = m.DescCol
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []Row
	header := m.HasHeader
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading bank CSV: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if header {
			header = false
			continue
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if len(rec) <= maxCol {
			return nil, fmt.Errorf("row %d: %d columns, need at least %d", line, len(rec), maxCol+1)
		}

		date, err := parseDate(rec[m.DateCol], m.DateFormat)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		amount, negative, err := CleanAmount(rec[m.AmountCol])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		rows = append(rows, Row{
			Line:        line,
			Date:        date,
			Amount:      amount,
			Negative:    negative,
			Description: strings.TrimSpace(rec[m.DescCol]),
		})
	}
	return rows, nil
}

// ParseFile opens and parses a bank CSV from disk.
func ParseFile(path string, m Mapping) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rows, err := Parse(f, m)
	if err != nil {
		return nil, err
	}
	logging.Log.WithFields(logrus.Fields{
		"file": path,
		"rows": len(rows),
	}).Debug("parsed bank export")
	return rows, nil
}

func parseDate(s, layout string) (model.Date, error) {
	s = strings.TrimSpace(s)
	if layout != "" {
		t, err := time.Parse(layout, s)
		if err != nil {
			return model.Date{}, fmt.Errorf("parsing date %q: %w", s, err)
		}
		return model.DateOf(t), nil
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return model.Date{}, err
	}
	return d, nil
}

// CleanAmount parses a bank-formatted amount. Currency symbols and
// grouping separators are dropped, decimal commas are normalized, and
// parentheses or minus signs read as negative. The returned decimal is
// the absolute value.
func CleanAmount(s string) (decimal.Decimal, bool, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return decimal.Decimal{}, false, fmt.Errorf("empty amount")
	}

	negative := false
	if strings.HasPrefix(raw, "(") && strings.HasSuffix(raw, ")") {
		negative = true
		raw = raw[1 : len(raw)-1]
	}
	if strings.Contains(raw, "-") {
		negative = true
		raw = strings.ReplaceAll(raw, "-", "")
	}

	// Keep digits and separators, drop currency symbols and codes.
	raw = strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r == '.' || r == ',' {
			return r
		}
		return -1
	}, raw)

	// Decide which separator is the decimal point.
	switch {
	case strings.Contains(raw, ",") && strings.Contains(raw, "."):
		if strings.LastIndex(raw, ".") < strings.LastIndex(raw, ",") {
			// European style 1.234,56
			raw = strings.ReplaceAll(raw, ".", "")
			raw = strings.ReplaceAll(raw, ",", ".")
		} else {
			raw = strings.ReplaceAll(raw, ",", "")
		}
	case strings.Contains(raw, ","):
		parts := strings.Split(raw, ",")
		if len(parts[len(parts)-1]) <= 2 {
			// 1234,56 reads as a decimal comma
			raw = strings.ReplaceAll(raw, ",", ".")
		} else {
			raw = strings.ReplaceAll(raw, ",", "")
		}
	}

	if raw == "" {
		return decimal.Decimal{}, false, fmt.Errorf("amount %q has no digits", s)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, false, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	if d.IsZero() {
		negative = false
	}
	return d, negative, nil
}

// Options control how parsed rows become ledger transactions.
type Options struct {
	// Force puts every row in one category and skips the suggestion
	// logic entirely.
	Force model.Category

	// Fallback takes the debits no rule matches. Defaults to
	// non-essential so nothing is silently promoted to a need.
	Fallback model.Category
}

// Result partitions an import run.
type Result struct {
	New        []model.Transaction
	Duplicates []model.Transaction
	Suggested  int
}

// Match assigns categories and drops rows the ledger already has.
// Credits become income, debits follow the rule file, and duplicate
// detection keys on category, date, amount and description.
func Match(rows []Row, existing []model.Transaction, cat *categorize.Categorizer, opts Options) Result {
	fallback := opts.Fallback
	if fallback == "" {
		fallback = model.CategoryNonEssential
	}

	seen := make(map[string]struct{}, len(existing))
	for _, tx := range existing {
		seen[tx.Key()] = struct{}{}
	}

	var result Result
	for _, row := range rows {
		tx := model.Transaction{
			Date:        row.Date,
			Amount:      row.Amount,
			Description: row.Description,
		}

		switch {
		case opts.Force != "":
			tx.Category = opts.Force
		case !row.Negative:
			tx.Category = model.CategoryIncome
		default:
			tx.Category = fallback
			if cat != nil {
				if suggested, ok := cat.Suggest(row.Description); ok {
					tx.Category = suggested
					result.Suggested++
				}
			}
		}

		key := tx.Key()
		if _, dup := seen[key]; dup {
			result.Duplicates = append(result.Duplicates, tx)
			continue
		}
		seen[key] = struct{}{}
		result.New = append(result.New, tx)
	}
	return result
}
