package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedDataDir(t *testing.T) string {
	t.Helper()
	dataDir := filepath.Join(t.TempDir(), "budget_data")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dataDir, "essentials.csv"),
		[]byte("date,amount,description\n2025-03-07,84.15,Groceries\n"), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(dataDir, "bills.yaml"),
		[]byte("bills:\n    - name: Rent\n      amount: \"850.00\"\n      due_day: 1\n"), 0o644))
	return dataDir
}

func TestCreateCopiesDataDir(t *testing.T) {
	dataDir := seedDataDir(t)

	at := time.Date(2025, time.March, 7, 12, 0, 0, 0, time.UTC)
	dest, err := createAt(dataDir, at)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(filepath.Dir(dataDir), "budget_backup_20250307_120000"), dest)
	for _, name := range []string{"essentials.csv", "bills.yaml"} {
		want, err := os.ReadFile(filepath.Join(dataDir, name))
		require.NoError(t, err)
		got, err := os.ReadFile(filepath.Join(dest, name))
		require.NoError(t, err)
		assert.Equal(t, want, got, name)
	}
}

func TestCreateMissingDataDir(t *testing.T) {
	_, err := Create(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to back up")
}

func TestListNewestFirst(t *testing.T) {
	dataDir := seedDataDir(t)

	first, err := createAt(dataDir, time.Date(2025, time.March, 7, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	second, err := createAt(dataDir, time.Date(2025, time.March, 8, 9, 30, 0, 0, time.UTC))
	require.NoError(t, err)

	// Unrelated siblings must not show up.
	require.NoError(t, os.MkdirAll(filepath.Join(filepath.Dir(dataDir), "other_dir"), 0o755))

	got, err := List(dataDir)
	require.NoError(t, err)
	require.Equal(t, []string{second, first}, got)
}

func TestListMissingParent(t *testing.T) {
	got, err := List(filepath.Join(t.TempDir(), "gone", "budget_data"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRestoreOverwrites(t *testing.T) {
	dataDir := seedDataDir(t)
	snapshot, err := Create(dataDir)
	require.NoError(t, err)

	changed := filepath.Join(dataDir, "essentials.csv")
	require.NoError(t, os.WriteFile(changed, []byte("date,amount,description\n"), 0o644))

	require.NoError(t, Restore(dataDir, snapshot))

	got, err := os.ReadFile(changed)
	require.NoError(t, err)
	assert.Contains(t, string(got), "Groceries")
}

func TestRestoreRecreatesDataDir(t *testing.T) {
	dataDir := seedDataDir(t)
	snapshot, err := Create(dataDir)
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(dataDir))

	require.NoError(t, Restore(dataDir, snapshot))

	_, err = os.Stat(filepath.Join(dataDir, "bills.yaml"))
	assert.NoError(t, err)
}

func TestRestoreRejectsUnrelatedDir(t *testing.T) {
	dataDir := seedDataDir(t)
	empty := filepath.Join(t.TempDir(), "random")
	require.NoError(t, os.MkdirAll(empty, 0o755))

	err := Restore(dataDir, empty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not look like a budget backup")
}
