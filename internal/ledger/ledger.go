// Package ledger owns the per-category CSV files. Each category is an
// append-only log with a header row; the files are the source of truth
// for everything else in the application.
package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/logging"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// Ledger reads and writes the category files under one data directory.
type Ledger struct {
	dataDir string
}

// New returns a ledger over dataDir. The directory is created lazily on
// the first write.
func New(dataDir string) *Ledger {
	return &Ledger{dataDir: dataDir}
}

// DataDir returns the directory the ledger operates on.
func (l *Ledger) DataDir() string { return l.dataDir }

// Path returns the file path for a category.
func (l *Ledger) Path(c model.Category) string {
	return filepath.Join(l.dataDir, c.FileName())
}

// Init creates the data directory and writes header-only files for any
// category file that does not exist yet.
func (l *Ledger) Init() error {
	if err := os.MkdirAll(l.dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	for _, c := range model.Categories {
		path := l.Path(c)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := l.writeRows(c, nil); err != nil {
			return err
		}
	}
	return nil
}

// Read returns all transactions for one category, newest first. A missing
// or empty file yields an empty result and no error.
func (l *Ledger) Read(c model.Category) ([]model.Transaction, error) {
	path := l.Path(c)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, &ParseError{File: path, Err: err}
	}
	if info.Size() == 0 {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{File: path, Err: err}
	}
	defer f.Close()

	var rows []csvRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, &ParseError{File: path, Err: err}
	}

	txs := make([]model.Transaction, 0, len(rows))
	for _, r := range rows {
		txs = append(txs, r.transaction(c))
	}
	sortNewestFirst(txs)
	return txs, nil
}

// ReadAll merges every category, newest first.
func (l *Ledger) ReadAll() ([]model.Transaction, error) {
	var all []model.Transaction
	for _, c := range model.Categories {
		txs, err := l.Read(c)
		if err != nil {
			return nil, err
		}
		all = append(all, txs...)
	}
	sortNewestFirst(all)
	return all, nil
}

// Append validates and appends one transaction to its category file,
// writing the header first when the file is new.
func (l *Ledger) Append(tx model.Transaction) error {
	return l.AppendAll([]model.Transaction{tx})
}

// AppendAll validates every transaction up front, then appends them
// grouped by category. Nothing is written if any transaction is invalid.
func (l *Ledger) AppendAll(txs []model.Transaction) error {
	for _, tx := range txs {
		if err := tx.Validate(); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(l.dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	byCategory := make(map[model.Category][]csvRow)
	for _, tx := range txs {
		byCategory[tx.Category] = append(byCategory[tx.Category], toRow(tx))
	}

	for _, c := range model.Categories {
		rows := byCategory[c]
		if len(rows) == 0 {
			continue
		}
		if err := l.appendRows(c, rows); err != nil {
			return err
		}
		logging.Log.WithFields(logrus.Fields{
			"category": c.String(),
			"rows":     len(rows),
			"file":     l.Path(c),
		}).Debug("appended transactions")
	}
	return nil
}

func (l *Ledger) appendRows(c model.Category, rows []csvRow) error {
	path := l.Path(c)
	info, err := os.Stat(path)
	isNew := os.IsNotExist(err) || (err == nil && info.Size() == 0)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if isNew {
		if err := gocsv.MarshalFile(&rows, f); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(&rows, f); err != nil {
		return fmt.Errorf("append %s: %w", path, err)
	}
	return nil
}

// Remove deletes the transaction at index in the newest-first order that
// Read returns, rewriting the file atomically.
func (l *Ledger) Remove(c model.Category, index int) error {
	txs, err := l.Read(c)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(txs) {
		return fmt.Errorf("no %s transaction at index %d", c, index)
	}
	removed := txs[index]
	remaining := append(txs[:index:index], txs[index+1:]...)

	// Rewrite in chronological order so the file still reads as a log.
	sort.SliceStable(remaining, func(i, j int) bool {
		return remaining[i].Date.Before(remaining[j].Date.Time)
	})
	rows := make([]csvRow, 0, len(remaining))
	for _, tx := range remaining {
		rows = append(rows, toRow(tx))
	}
	if err := l.writeRows(c, rows); err != nil {
		return err
	}
	logging.Log.WithFields(logrus.Fields{
		"category":    c.String(),
		"date":        removed.Date.String(),
		"description": removed.Description,
	}).Info("removed transaction")
	return nil
}

// Reset rewrites every category file to a header-only state.
func (l *Ledger) Reset() error {
	if err := os.MkdirAll(l.dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	for _, c := range model.Categories {
		if err := l.writeRows(c, nil); err != nil {
			return err
		}
	}
	logging.Log.WithField("dir", l.dataDir).Info("reset all ledgers")
	return nil
}

// writeRows replaces a category file via temp file and rename.
func (l *Ledger) writeRows(c model.Category, rows []csvRow) error {
	path := l.Path(c)
	tmp, err := os.CreateTemp(l.dataDir, c.FileName()+".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if rows == nil {
		rows = []csvRow{}
	}
	if err := gocsv.MarshalFile(&rows, tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// FileStat identifies a category file on disk for change detection.
type FileStat struct {
	Category model.Category
	Path     string
	MTimeNs  int64
	Size     int64
}

// Files stats every category file that exists.
func (l *Ledger) Files() ([]FileStat, error) {
	var stats []FileStat
	for _, c := range model.Categories {
		path := l.Path(c)
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		stats = append(stats, FileStat{
			Category: c,
			Path:     path,
			MTimeNs:  info.ModTime().UnixNano(),
			Size:     info.Size(),
		})
	}
	return stats, nil
}

func sortNewestFirst(txs []model.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date.Time)
	})
}
