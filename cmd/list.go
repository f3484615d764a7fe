package cmd

import (
	"fmt"
	"sort"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/cli"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/pipeline"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [category]",
	Short: "Transaction list, newest first",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

var (
	listLimit  int
	listSearch string
)

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "l", 20, "Number of transactions to show")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Filter by description, category or amount")
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, args []string) error {
	result := loadData()
	if len(result.Transactions) == 0 {
		fmt.Println("\n  No transactions recorded yet.")
		return nil
	}

	txs, _, _ := applyFilters(result.Transactions)

	label := windowLabel()
	if len(args) == 1 {
		c, err := model.ParseCategory(args[0])
		if err != nil {
			return err
		}
		txs = pipeline.FilterByCategory(txs, c)
		label += "  " + c.DisplayName()
	}
	if listSearch != "" {
		txs = pipeline.Search(txs, listSearch)
		label += fmt.Sprintf("  /%s", listSearch)
	}

	if len(txs) == 0 {
		fmt.Println("\n  No transactions match.")
		return nil
	}

	// Sort by date descending
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date.Time)
	})

	// Limit
	total := len(txs)
	if listLimit > 0 && len(txs) > listLimit {
		txs = txs[:listLimit]
	}

	cfg := loadConfig()
	money := moneyFmt(cfg)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("TRANSACTIONS  %s (showing %d of %d)", label, len(txs), total)))
	fmt.Println()

	layout := dateFmt(cfg)
	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		amount := money(tx.Amount)
		if tx.Category == model.CategoryIncome {
			amount = "+" + amount
		}
		rows = append(rows, []string{
			tx.Date.Format(layout),
			string(tx.Category),
			amount,
			truncate(tx.Description, 32),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Category", "Amount", "Description"},
		Rows:    rows,
	}))

	warnProblems(result.Problems)

	return nil
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}
