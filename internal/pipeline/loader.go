package pipeline

import (
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/ledger"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/logging"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// LoadResult holds the output of the full data loading pipeline.
type LoadResult struct {
	Transactions []model.Transaction
	TotalFiles   int
	ParsedFiles  int

	// Problems carries user-facing messages for files that could not be
	// read. Loading continues past them.
	Problems []string
}

// ProgressFunc is called during loading to report progress.
// current is the number of files processed so far, total is the total count.
type ProgressFunc func(current, total int)

// Load parses every category file and merges the results newest first.
// Missing files are treated as empty, unreadable ones are reported in
// Problems and skipped.
func Load(led *ledger.Ledger, progressFn ProgressFunc) *LoadResult {
	result := &LoadResult{TotalFiles: len(model.Categories)}

	parsed := readCategories(led, model.Categories, 0, result.TotalFiles, progressFn)
	for _, fr := range parsed {
		if fr.err != nil {
			result.Problems = append(result.Problems, fr.err.Error())
			logging.Log.WithError(fr.err).WithField("category", fr.category.String()).
				Warn("skipping unreadable ledger file")
			continue
		}
		result.ParsedFiles++
		result.Transactions = append(result.Transactions, fr.txs...)
	}

	sortNewestFirst(result.Transactions)
	return result
}

type fileResult struct {
	category model.Category
	txs      []model.Transaction
	err      error
}

// readCategories parses the given category files on a bounded worker pool.
func readCategories(led *ledger.Ledger, cats []model.Category, doneOffset, total int, progressFn ProgressFunc) []fileResult {
	results := make([]fileResult, len(cats))
	if len(cats) == 0 {
		return results
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 1
	}
	if numWorkers > len(cats) {
		numWorkers = len(cats)
	}

	work := make(chan int, len(cats))
	for i := range cats {
		work <- i
	}
	close(work)

	var wg sync.WaitGroup
	var processed atomic.Int64

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				results[idx].category = cats[idx]
				results[idx].txs, results[idx].err = led.Read(cats[idx])
				n := processed.Add(1)
				if progressFn != nil {
					progressFn(doneOffset+int(n), total)
				}
			}
		}()
	}

	wg.Wait()
	return results
}

func sortNewestFirst(txs []model.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date.Time)
	})
}
