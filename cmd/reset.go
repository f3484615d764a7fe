package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/ledger"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase every transaction, keeping the files",
	RunE:  runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func runReset(_ *cobra.Command, _ []string) error {
	led := ledger.New(flagDataDir)

	txs, err := led.ReadAll()
	if err != nil {
		return err
	}
	if len(txs) == 0 {
		fmt.Println("\n  The ledger is already empty.")
		return nil
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Printf("\n  This erases all %s transactions in %s.\n",
		formatNumber(int64(len(txs))), flagDataDir)
	fmt.Println("  Consider `budgetbuddy backup` first.")
	fmt.Print("  Continue? [y/N] ")

	answer, _ := reader.ReadString('\n')
	if !strings.EqualFold(strings.TrimSpace(answer), "y") {
		fmt.Println("  Aborted.")
		return nil
	}

	fmt.Print("  Type 'reset' to confirm: ")
	answer, _ = reader.ReadString('\n')
	if strings.TrimSpace(answer) != "reset" {
		fmt.Println("  Aborted.")
		return nil
	}

	if err := led.Reset(); err != nil {
		return err
	}

	fmt.Println("  Ledger reset. The category files keep their headers.")
	return nil
}
