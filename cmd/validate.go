package cmd

import (
	"fmt"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/ledger"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:          "validate",
	Short:        "Check every ledger file for broken rows",
	RunE:         runValidate,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	led := ledger.New(flagDataDir)

	report, err := led.Scan()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  Scanned %d files, %s rows in %s\n",
		report.Files, formatNumber(int64(report.Rows)), flagDataDir)

	if len(report.Issues) == 0 {
		fmt.Println("  No problems found.")
		return nil
	}

	errors := 0
	warnings := 0
	lastFile := ""
	for _, issue := range report.Issues {
		if issue.File != lastFile {
			fmt.Printf("\n  %s\n", issue.File)
			lastFile = issue.File
		}
		fmt.Printf("    row %-5d %-8s %s\n", issue.Row, issue.Severity, issue.Message)

		if issue.Severity == ledger.SeverityError {
			errors++
		} else {
			warnings++
		}
	}

	fmt.Printf("\n  %d error(s), %d warning(s)\n", errors, warnings)

	if report.HasErrors() {
		return fmt.Errorf("ledger has %d broken row(s)", errors)
	}

	fmt.Println("  Warnings load fine, fix them at your leisure.")
	return nil
}
