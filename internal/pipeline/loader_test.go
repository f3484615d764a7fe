package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/ledger"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/store"
)

func seedLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	led := ledger.New(t.TempDir())
	err := led.AppendAll([]model.Transaction{
		tx(2025, 3, 1, "2000.00", model.CategoryIncome, "salary"),
		tx(2025, 3, 2, "600.00", model.CategoryEssential, "groceries"),
		tx(2025, 3, 5, "400.00", model.CategoryBill, "rent share"),
		tx(2025, 3, 9, "300.00", model.CategoryNonEssential, "concert"),
		tx(2025, 3, 15, "250.00", model.CategorySavings, "transfer"),
	})
	require.NoError(t, err)
	return led
}

func TestLoadMergesAllFiles(t *testing.T) {
	led := seedLedger(t)

	result := Load(led, nil)
	require.Len(t, result.Transactions, 5)
	assert.Equal(t, len(model.Categories), result.TotalFiles)
	assert.Equal(t, len(model.Categories), result.ParsedFiles)
	assert.Empty(t, result.Problems)

	// Newest first across files
	assert.Equal(t, "transfer", result.Transactions[0].Description)
	assert.Equal(t, "salary", result.Transactions[4].Description)
}

func TestLoadEmptyDataDir(t *testing.T) {
	led := ledger.New(t.TempDir())

	result := Load(led, nil)
	assert.Empty(t, result.Transactions)
	assert.Empty(t, result.Problems)
}

func TestLoadReportsUnreadableFile(t *testing.T) {
	led := seedLedger(t)

	bad := led.Path(model.CategoryEssential)
	require.NoError(t, os.WriteFile(bad, []byte("date,amount,description\n2025-03-02,not-a-number,x\n"), 0o644))

	result := Load(led, nil)
	require.Len(t, result.Problems, 1)
	assert.Contains(t, result.Problems[0], "essentials.csv")
	assert.Len(t, result.Transactions, 4, "other files still load")
}

func TestLoadReportsProgress(t *testing.T) {
	led := seedLedger(t)

	var calls int
	var sawTotal int
	result := Load(led, func(current, total int) {
		calls++
		sawTotal = total
	})
	require.NotNil(t, result)
	assert.Equal(t, len(model.Categories), calls)
	assert.Equal(t, len(model.Categories), sawTotal)
}

func openCache(t *testing.T) *store.Cache {
	t.Helper()
	cache, err := store.Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestLoadWithCacheColdThenWarm(t *testing.T) {
	led := seedLedger(t)
	cache := openCache(t)

	cold := LoadWithCache(led, cache, nil)
	require.Len(t, cold.Transactions, 5)
	assert.Equal(t, 0, cold.CacheHits)
	assert.Equal(t, len(model.Categories), cold.Reparsed)

	warm := LoadWithCache(led, cache, nil)
	require.Len(t, warm.Transactions, 5)
	assert.Equal(t, len(model.Categories), warm.CacheHits)
	assert.Equal(t, 0, warm.Reparsed)

	for i := range cold.Transactions {
		assert.True(t, cold.Transactions[i].Amount.Equal(warm.Transactions[i].Amount))
		assert.Equal(t, cold.Transactions[i].Description, warm.Transactions[i].Description)
	}
}

func TestLoadWithCacheReparsesChangedFile(t *testing.T) {
	led := seedLedger(t)
	cache := openCache(t)

	_ = LoadWithCache(led, cache, nil)

	require.NoError(t, led.Append(tx(2025, 3, 20, "45.00", model.CategoryEssential, "more groceries")))

	result := LoadWithCache(led, cache, nil)
	require.Len(t, result.Transactions, 6)
	assert.Equal(t, 1, result.Reparsed)
	assert.Equal(t, len(model.Categories)-1, result.CacheHits)
}

func TestLoadWithCacheMissingDataDir(t *testing.T) {
	led := ledger.New(filepath.Join(t.TempDir(), "nowhere"))
	cache := openCache(t)

	result := LoadWithCache(led, cache, nil)
	assert.Empty(t, result.Transactions)
	assert.Zero(t, result.TotalFiles)
}
