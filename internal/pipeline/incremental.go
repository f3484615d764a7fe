package pipeline

import (
	"os"
	"path/filepath"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/ledger"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/logging"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/store"
)

// CachedLoadResult extends LoadResult with cache metadata.
type CachedLoadResult struct {
	LoadResult
	CacheHits int
	Reparsed  int
}

// LoadWithCache diffs category files against the cache, parses only the
// changed ones, and refreshes their cached rows. Cache failures degrade
// to reparsing, never to data loss.
func LoadWithCache(led *ledger.Ledger, cache *store.Cache, progressFn ProgressFunc) *CachedLoadResult {
	result := &CachedLoadResult{}

	files, err := led.Files()
	if err != nil {
		logging.Log.WithError(err).Warn("cannot stat ledger files, loading without cache")
		lr := Load(led, progressFn)
		result.LoadResult = *lr
		result.Reparsed = lr.ParsedFiles
		return result
	}

	result.TotalFiles = len(files)
	if len(files) == 0 {
		return result
	}

	tracked, err := cache.GetTrackedFiles()
	if err != nil {
		logging.Log.WithError(err).Warn("ledger cache unreadable, reparsing all files")
	}

	// Diff: partition into unchanged and changed
	var fromCache []ledger.FileStat
	var toParse []ledger.FileStat
	for _, f := range files {
		cached, ok := tracked[f.Path]
		if ok && cached.MtimeNs == f.MTimeNs && cached.SizeBytes == f.Size {
			fromCache = append(fromCache, f)
		} else {
			toParse = append(toParse, f)
		}
	}

	done := 0
	for _, f := range fromCache {
		txs, err := cache.LoadFile(f.Path)
		if err != nil {
			logging.Log.WithError(err).WithField("file", f.Path).
				Warn("cached rows unreadable, reparsing file")
			toParse = append(toParse, f)
			continue
		}
		result.Transactions = append(result.Transactions, txs...)
		result.ParsedFiles++
		result.CacheHits++
		done++
		if progressFn != nil {
			progressFn(done, result.TotalFiles)
		}
	}

	result.Reparsed = len(toParse)
	if len(toParse) > 0 {
		cats := make([]model.Category, len(toParse))
		for i, f := range toParse {
			cats[i] = f.Category
		}

		parsed := readCategories(led, cats, done, result.TotalFiles, progressFn)
		for i, fr := range parsed {
			if fr.err != nil {
				result.Problems = append(result.Problems, fr.err.Error())
				logging.Log.WithError(fr.err).WithField("category", fr.category.String()).
					Warn("skipping unreadable ledger file")
				continue
			}
			result.ParsedFiles++
			result.Transactions = append(result.Transactions, fr.txs...)

			// Re-stat after the parse so a concurrent write is not
			// recorded as already cached.
			if info, err := os.Stat(toParse[i].Path); err == nil {
				if err := cache.SaveFile(toParse[i].Path, fr.txs, info.ModTime().UnixNano(), info.Size()); err != nil {
					logging.Log.WithError(err).WithField("file", toParse[i].Path).
						Warn("could not refresh ledger cache")
				}
			}
		}
	}

	sortNewestFirst(result.Transactions)
	return result
}

// CacheDir returns the platform-appropriate cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "budgetbuddy")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "budgetbuddy")
}

// CachePath returns the full path to the cache database.
func CachePath() string {
	return filepath.Join(CacheDir(), "ledger.db")
}
