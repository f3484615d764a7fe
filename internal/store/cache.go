// Package store provides a SQLite-backed cache for parsed ledger files.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache provides SQLite-backed caching of parsed category files.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// FileInfo holds the tracked mtime and size for a file.
type FileInfo struct {
	MtimeNs   int64
	SizeBytes int64
}

// GetTrackedFiles returns a map of file_path -> FileInfo for all tracked files.
func (c *Cache) GetTrackedFiles() (map[string]FileInfo, error) {
	rows, err := c.db.Query("SELECT file_path, mtime_ns, size_bytes FROM file_tracker")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]FileInfo)
	for rows.Next() {
		var path string
		var fi FileInfo
		if err := rows.Scan(&path, &fi.MtimeNs, &fi.SizeBytes); err != nil {
			return nil, err
		}
		result[path] = fi
	}
	return result, rows.Err()
}

// SaveFile replaces the cached rows for one category file and records its
// tracking info.
func (c *Cache) SaveFile(path string, txs []model.Transaction, mtimeNs, sizeBytes int64) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM transactions WHERE file_path = ?", path); err != nil {
		return err
	}

	for i, t := range txs {
		_, err := tx.Exec(`INSERT INTO transactions
			(file_path, seq, tx_date, amount, category, description)
			VALUES (?, ?, ?, ?, ?, ?)`,
			path, i, t.Date.String(), t.Amount.String(), string(t.Category), t.Description,
		)
		if err != nil {
			return err
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.Exec(`INSERT OR REPLACE INTO file_tracker (file_path, mtime_ns, size_bytes, parsed_at)
		VALUES (?, ?, ?, ?)`, path, mtimeNs, sizeBytes, now)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// LoadFile reads the cached rows for one category file in stored order.
func (c *Cache) LoadFile(path string) ([]model.Transaction, error) {
	rows, err := c.db.Query(`SELECT tx_date, amount, category, description
		FROM transactions WHERE file_path = ? ORDER BY seq`, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var txs []model.Transaction
	for rows.Next() {
		var dateStr, amountStr, category, description string
		if err := rows.Scan(&dateStr, &amountStr, &category, &description); err != nil {
			return nil, err
		}

		d, err := model.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("cached row in %s: %w", path, err)
		}
		amt, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("cached row in %s: %w", path, err)
		}

		txs = append(txs, model.Transaction{
			Date:        d,
			Amount:      amt,
			Category:    model.Category(category),
			Description: description,
		})
	}
	return txs, rows.Err()
}

// DeleteFile removes the cached rows and tracking entry for a file.
func (c *Cache) DeleteFile(path string) error {
	if _, err := c.db.Exec("DELETE FROM transactions WHERE file_path = ?", path); err != nil {
		return err
	}
	_, err := c.db.Exec("DELETE FROM file_tracker WHERE file_path = ?", path)
	return err
}

// TransactionCount returns the number of cached rows.
func (c *Cache) TransactionCount() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM transactions").Scan(&count)
	return count, err
}
