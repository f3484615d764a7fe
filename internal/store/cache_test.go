package store

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestSaveLoadFileRoundTrip(t *testing.T) {
	c := openTestCache(t)

	txs := []model.Transaction{
		{
			Date:        model.NewDate(2025, 3, 14),
			Amount:      decimal.RequireFromString("42.50"),
			Category:    model.CategoryEssential,
			Description: "groceries, weekly",
		},
		{
			Date:        model.NewDate(2025, 3, 1),
			Amount:      decimal.RequireFromString("1200"),
			Category:    model.CategoryEssential,
			Description: "rent",
		},
	}

	if err := c.SaveFile("/data/essentials.csv", txs, 123, 456); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}

	got, err := c.LoadFile("/data/essentials.csv")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("LoadFile returned %d rows, want 2", len(got))
	}
	if !got[0].Date.SameDay(txs[0].Date) {
		t.Fatalf("row 0 date = %s, want %s", got[0].Date, txs[0].Date)
	}
	if !got[0].Amount.Equal(txs[0].Amount) {
		t.Fatalf("row 0 amount = %s, want %s", got[0].Amount, txs[0].Amount)
	}
	if got[0].Description != "groceries, weekly" {
		t.Fatalf("row 0 description = %q", got[0].Description)
	}
	if got[1].Category != model.CategoryEssential {
		t.Fatalf("row 1 category = %q", got[1].Category)
	}
}

func TestSaveFileReplacesOldRows(t *testing.T) {
	c := openTestCache(t)

	first := []model.Transaction{
		{Date: model.NewDate(2025, 1, 1), Amount: decimal.NewFromInt(10), Category: model.CategoryBill, Description: "a"},
		{Date: model.NewDate(2025, 1, 2), Amount: decimal.NewFromInt(20), Category: model.CategoryBill, Description: "b"},
	}
	if err := c.SaveFile("/data/bills.csv", first, 1, 1); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}

	second := []model.Transaction{
		{Date: model.NewDate(2025, 1, 3), Amount: decimal.NewFromInt(30), Category: model.CategoryBill, Description: "c"},
	}
	if err := c.SaveFile("/data/bills.csv", second, 2, 2); err != nil {
		t.Fatalf("SaveFile (replace): %v", err)
	}

	got, err := c.LoadFile("/data/bills.csv")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("after replace got %d rows, want 1", len(got))
	}
	if got[0].Description != "c" {
		t.Fatalf("after replace description = %q, want c", got[0].Description)
	}

	tracked, err := c.GetTrackedFiles()
	if err != nil {
		t.Fatalf("GetTrackedFiles: %v", err)
	}
	fi, ok := tracked["/data/bills.csv"]
	if !ok {
		t.Fatal("file_tracker missing entry after SaveFile")
	}
	if fi.MtimeNs != 2 || fi.SizeBytes != 2 {
		t.Fatalf("tracker = %+v, want mtime 2 size 2", fi)
	}
}

func TestDeleteFile(t *testing.T) {
	c := openTestCache(t)

	txs := []model.Transaction{
		{Date: model.NewDate(2025, 2, 1), Amount: decimal.NewFromInt(5), Category: model.CategorySavings, Description: "transfer"},
	}
	if err := c.SaveFile("/data/savings.csv", txs, 9, 9); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}

	if err := c.DeleteFile("/data/savings.csv"); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}

	got, err := c.LoadFile("/data/savings.csv")
	if err != nil {
		t.Fatalf("LoadFile after delete: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("rows survived DeleteFile: %d", len(got))
	}

	tracked, err := c.GetTrackedFiles()
	if err != nil {
		t.Fatalf("GetTrackedFiles: %v", err)
	}
	if _, ok := tracked["/data/savings.csv"]; ok {
		t.Fatal("tracker entry survived DeleteFile")
	}
}

func TestTransactionCount(t *testing.T) {
	c := openTestCache(t)

	n, err := c.TransactionCount()
	if err != nil {
		t.Fatalf("TransactionCount: %v", err)
	}
	if n != 0 {
		t.Fatalf("empty cache count = %d, want 0", n)
	}

	txs := []model.Transaction{
		{Date: model.NewDate(2025, 4, 1), Amount: decimal.NewFromInt(1), Category: model.CategoryIncome, Description: "pay"},
		{Date: model.NewDate(2025, 4, 2), Amount: decimal.NewFromInt(2), Category: model.CategoryIncome, Description: "pay"},
	}
	if err := c.SaveFile("/data/income.csv", txs, 1, 1); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}

	n, err = c.TransactionCount()
	if err != nil {
		t.Fatalf("TransactionCount: %v", err)
	}
	if n != 2 {
		t.Fatalf("count = %d, want 2", n)
	}
}
