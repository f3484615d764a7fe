package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// Severity grades an integrity finding.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Issue is one finding from an integrity scan. Row is 1-based and counts
// the header row.
type Issue struct {
	Category model.Category
	File     string
	Row      int
	Severity Severity
	Message  string
}

// Report collects the findings for the whole data directory.
type Report struct {
	Files  int
	Rows   int
	Issues []Issue
}

// HasErrors reports whether any finding is error severity.
func (r Report) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Scan walks every category file row by row and reports rows that break
// the ledger invariants. Unlike Read it keeps going past bad rows so a
// hand-edited file gets a complete diagnosis.
func (l *Ledger) Scan() (Report, error) {
	var report Report
	for _, c := range model.Categories {
		path := l.Path(c)
		f, err := os.Open(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return report, fmt.Errorf("open %s: %w", path, err)
		}
		report.Files++
		l.scanFile(c, path, f, &report)
		f.Close()
	}
	return report, nil
}

func (l *Ledger) scanFile(c model.Category, path string, f *os.File, report *Report) {
	add := func(row int, sev Severity, format string, args ...any) {
		report.Issues = append(report.Issues, Issue{
			Category: c,
			File:     path,
			Row:      row,
			Severity: sev,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // field-count problems are findings, not aborts

	header, err := r.Read()
	if err == io.EOF {
		add(0, SeverityWarning, "file is empty, expected header %q", Header)
		return
	}
	if err != nil {
		add(1, SeverityError, "unreadable header: %v", err)
		return
	}
	if strings.Join(header, ",") != Header {
		add(1, SeverityError, "unexpected header %q, want %q", strings.Join(header, ","), Header)
	}

	for row := 2; ; row++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			add(row, SeverityError, "unreadable row: %v", err)
			continue
		}
		report.Rows++

		if len(record) != 3 {
			add(row, SeverityError, "expected 3 fields, got %d", len(record))
			continue
		}

		if _, err := model.ParseDate(record[0]); err != nil {
			add(row, SeverityError, "bad date %q", record[0])
		}

		amt, err := decimal.NewFromString(strings.TrimSpace(record[1]))
		switch {
		case err != nil:
			add(row, SeverityError, "bad amount %q", record[1])
		case amt.IsNegative():
			add(row, SeverityError, "negative amount %s", amt.StringFixed(2))
		case amt.IsZero():
			add(row, SeverityWarning, "zero amount")
		}

		if strings.TrimSpace(record[2]) == "" {
			add(row, SeverityWarning, "empty description")
		}
	}
}
