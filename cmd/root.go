package cmd

import (
	"fmt"
	"os"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/cli"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/config"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/ledger"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/logging"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/pipeline"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/store"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagDays    int
	flagNoCache bool
	flagDataDir string
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "budgetbuddy",
	Short: "Personal budget tracker",
	Long:  "Track income, spending, bills and savings goals against the 50/30/20 rule.",
	RunE:  runTUI,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	logging.LoadEnv()
	cfg, _ := config.Load()

	rootCmd.PersistentFlags().IntVarP(&flagDays, "days", "n", 30, "Time window in days (0 = all time)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip SQLite cache, reparse everything")
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", config.DataDir(cfg), "Budget data directory")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// loadData is the shared data loading path used by all commands.
// Uses SQLite cache when available for fast subsequent runs.
func loadData() *pipeline.LoadResult {
	led := ledger.New(flagDataDir)

	progressFn := func(current, total int) {
		if flagQuiet {
			return
		}
		fmt.Fprintf(os.Stderr, "\r  Reading ledgers [%d/%d]", current, total)
	}

	// Try cached load unless --no-cache
	if !flagNoCache {
		cache, err := store.Open(pipeline.CachePath())
		if err != nil {
			// Cache open failed, fall back to uncached
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "  Cache unavailable, doing full parse\n")
			}
		} else {
			defer cache.Close()

			cr := pipeline.LoadWithCache(led, cache, progressFn)
			if !flagQuiet && cr.TotalFiles > 0 {
				if cr.Reparsed == 0 {
					fmt.Fprintf(os.Stderr, "\r  Loaded %s transactions from cache    \n",
						formatNumber(int64(len(cr.Transactions))))
				} else {
					fmt.Fprintf(os.Stderr, "\r  %s cached + %d files reparsed    \n",
						formatNumber(int64(cr.CacheHits)), cr.Reparsed)
				}
			}
			return &cr.LoadResult
		}
	}

	// Uncached path
	result := pipeline.Load(led, progressFn)

	if !flagQuiet && result.TotalFiles > 0 {
		fmt.Fprintf(os.Stderr, "\r  Parsed %s transactions from %d files    \n",
			formatNumber(int64(len(result.Transactions))), result.ParsedFiles)
	}

	return result
}

// applyFilters returns the transactions inside the --days window and the
// computed half-open range. Days of zero or less means all time.
func applyFilters(txs []model.Transaction) ([]model.Transaction, model.Date, model.Date) {
	since, until := window()
	return pipeline.FilterByTime(txs, since, until), since, until
}

func window() (model.Date, model.Date) {
	if flagDays <= 0 {
		return model.Date{}, model.Date{}
	}
	until := model.Today().AddDays(1)
	return until.AddDays(-flagDays), until
}

// loadConfig never fails: a broken config file is reported once and the
// defaults carry the command through.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Config error: %v (using defaults)\n", err)
	}
	return cfg
}

// moneyFmt returns a formatter bound to the configured currency.
func moneyFmt(cfg config.Config) func(decimal.Decimal) string {
	return func(d decimal.Decimal) string {
		return cli.FormatMoney(d, cfg.General.CurrencySymbol, cfg.General.DecimalPlaces)
	}
}

// dateFmt returns the configured date layout, ISO when unset.
func dateFmt(cfg config.Config) string {
	if cfg.General.DateFormat == "" {
		return "2006-01-02"
	}
	return cfg.General.DateFormat
}

// warnProblems points at files the loader could not fully parse.
func warnProblems(problems []string) {
	if flagQuiet || len(problems) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "\n  %d file(s) had parse problems, run `budgetbuddy validate`\n", len(problems))
}

func windowLabel() string {
	if flagDays <= 0 {
		return "All time"
	}
	return fmt.Sprintf("Last %dd", flagDays)
}

func formatNumber(n int64) string {
	return cli.FormatNumber(n)
}
