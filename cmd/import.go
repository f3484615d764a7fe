package cmd

import (
	"fmt"
	"os"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/categorize"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/cli"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/importer"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/ledger"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import transactions from a bank CSV export",
	Long: "Import transactions from a bank CSV export.\n\n" +
		"Credits become income, debits are categorized by the rule file\n" +
		"(categories.yaml in the data directory). Rows the ledger already\n" +
		"holds are skipped.",
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var (
	importDateCol    int
	importAmountCol  int
	importDescCol    int
	importDateFormat string
	importNoHeader   bool
	importCategory   string
	importDryRun     bool
)

func init() {
	importCmd.Flags().IntVar(&importDateCol, "date-col", 0, "Zero-based date column")
	importCmd.Flags().IntVar(&importAmountCol, "amount-col", 1, "Zero-based amount column")
	importCmd.Flags().IntVar(&importDescCol, "desc-col", 2, "Zero-based description column")
	importCmd.Flags().StringVar(&importDateFormat, "date-format", "", "Date layout in Go reference form, e.g. 01/02/2006")
	importCmd.Flags().BoolVar(&importNoHeader, "no-header", false, "The file has no header row")
	importCmd.Flags().StringVarP(&importCategory, "category", "c", "", "Force every row into this category")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Show what would be appended without writing")
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	mapping := importer.Mapping{
		DateCol:    importDateCol,
		AmountCol:  importAmountCol,
		DescCol:    importDescCol,
		DateFormat: importDateFormat,
		HasHeader:  !importNoHeader,
	}
	if err := mapping.Validate(); err != nil {
		return err
	}

	var opts importer.Options
	if importCategory != "" {
		forced, err := model.ParseCategory(importCategory)
		if err != nil {
			return err
		}
		opts.Force = forced
	}

	rows, err := importer.ParseFile(args[0], mapping)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("\n  Nothing to import.")
		return nil
	}

	existing := loadData()

	cat, err := categorize.Load(categorize.Path(flagDataDir))
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Rule file error: %v (using fallback category)\n", err)
		cat = nil
	}

	result := importer.Match(rows, existing.Transactions, cat, opts)

	cfg := loadConfig()
	money := moneyFmt(cfg)

	fmt.Println()
	fmt.Printf("  Parsed %s rows: %s new, %s already in the ledger\n",
		formatNumber(int64(len(rows))),
		formatNumber(int64(len(result.New))),
		formatNumber(int64(len(result.Duplicates))))
	if result.Suggested > 0 {
		fmt.Printf("  %s debits categorized by rules\n", formatNumber(int64(result.Suggested)))
	}

	if len(result.New) == 0 {
		fmt.Println("\n  Nothing new to append.")
		return nil
	}

	if importDryRun {
		const preview = 20
		shown := result.New
		if len(shown) > preview {
			shown = shown[:preview]
		}

		tableRows := make([][]string, 0, len(shown))
		for _, tx := range shown {
			tableRows = append(tableRows, []string{
				tx.Date.String(),
				string(tx.Category),
				money(tx.Amount),
				truncate(tx.Description, 32),
			})
		}

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"Date", "Category", "Amount", "Description"},
			Rows:    tableRows,
		}))
		if rest := len(result.New) - len(shown); rest > 0 {
			fmt.Printf("  … and %d more\n", rest)
		}
		fmt.Println("\n  Dry run, nothing written. Drop --dry-run to append.")
		return nil
	}

	led := ledger.New(flagDataDir)
	if err := led.Init(); err != nil {
		return err
	}
	if err := led.AppendAll(result.New); err != nil {
		return err
	}

	fmt.Printf("\n  Appended %s transactions to %s\n",
		formatNumber(int64(len(result.New))), led.DataDir())

	return nil
}
