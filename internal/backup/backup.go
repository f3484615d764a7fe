// Package backup snapshots the data directory and restores snapshots.
// Snapshots live next to the data directory as
// budget_backup_YYYYMMDD_HHMMSS and hold plain copies of the data
// files, so they stay readable without the application.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/categorize"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/logging"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/plan"
)

// Prefix names snapshot directories.
const Prefix = "budget_backup_"

// Create copies the data directory into a new sibling snapshot and
// returns the snapshot path.
func Create(dataDir string) (string, error) {
	return createAt(dataDir, time.Now())
}

func createAt(dataDir string, now time.Time) (string, error) {
	info, err := os.Stat(dataDir)
	if err != nil {
		return "", fmt.Errorf("nothing to back up: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("nothing to back up: %s is not a directory", dataDir)
	}

	dest := filepath.Join(filepath.Dir(dataDir), Prefix+now.Format("20060102_150405"))
	if err := os.Mkdir(dest, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}
	if err := copyDir(dataDir, dest); err != nil {
		return "", err
	}

	logging.Log.WithFields(logrus.Fields{
		"from": dataDir,
		"to":   dest,
	}).Info("backup created")
	return dest, nil
}

// List returns snapshot directories next to the data directory, newest
// first. A missing parent directory lists as empty.
func List(dataDir string) ([]string, error) {
	parent := filepath.Dir(dataDir)
	entries, err := os.ReadDir(parent)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list backups: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), Prefix) {
			paths = append(paths, filepath.Join(parent, e.Name()))
		}
	}
	// Timestamped names sort chronologically.
	sort.Sort(sort.Reverse(sort.StringSlice(paths)))
	return paths, nil
}

// Restore copies a snapshot's files over the data directory. Files in
// the data directory that the snapshot does not carry are left alone.
func Restore(dataDir, backupDir string) error {
	info, err := os.Stat(backupDir)
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("read backup: %s is not a directory", backupDir)
	}
	if !holdsData(backupDir) {
		return fmt.Errorf("%s does not look like a budget backup", backupDir)
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := copyDir(backupDir, dataDir); err != nil {
		return err
	}

	logging.Log.WithFields(logrus.Fields{
		"from": backupDir,
		"to":   dataDir,
	}).Info("backup restored")
	return nil
}

// holdsData reports whether dir carries at least one known data file.
func holdsData(dir string) bool {
	for _, c := range model.Categories {
		if _, err := os.Stat(filepath.Join(dir, c.FileName())); err == nil {
			return true
		}
	}
	for _, name := range []string{plan.BillsFile, plan.GoalsFile, categorize.RulesFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

func copyDir(src, dest string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}
	for _, e := range entries {
		from := filepath.Join(src, e.Name())
		to := filepath.Join(dest, e.Name())
		if e.IsDir() {
			if err := os.MkdirAll(to, 0o755); err != nil {
				return fmt.Errorf("copy %s: %w", from, err)
			}
			if err := copyDir(from, to); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(from, to); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return nil
}
