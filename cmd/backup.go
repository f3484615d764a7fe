package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/backup"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/config"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot the data directory",
	RunE:  runBackup,
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show existing snapshots, newest first",
	RunE:  runBackupList,
}

var restoreCmd = &cobra.Command{
	Use:   "restore <dir>",
	Short: "Copy a snapshot back over the data directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runRestore,
}

func init() {
	backupCmd.AddCommand(backupListCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
}

func runBackup(_ *cobra.Command, _ []string) error {
	dest, err := backup.Create(flagDataDir)
	if err != nil {
		return err
	}
	fmt.Printf("  Backed up %s\n", flagDataDir)
	fmt.Printf("  Snapshot: %s\n", dest)

	// Remember the time so the reminder stays quiet
	cfg := loadConfig()
	if err := config.MarkBackup(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "  Could not record backup time: %v\n", err)
	}

	return nil
}

func runBackupList(_ *cobra.Command, _ []string) error {
	paths, err := backup.List(flagDataDir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Println("\n  No snapshots found.")
		fmt.Println("  Create one with `budgetbuddy backup`.")
		return nil
	}

	fmt.Println()
	for i, p := range paths {
		marker := " "
		if i == 0 {
			marker = "*"
		}
		fmt.Printf("  %s %s\n", marker, p)
	}
	fmt.Printf("\n  %d snapshot(s), * marks the newest.\n", len(paths))
	fmt.Println("  Restore one with `budgetbuddy restore <dir>`.")

	return nil
}

func runRestore(_ *cobra.Command, args []string) error {
	src := args[0]

	// A bare snapshot name resolves next to the data directory
	if !strings.ContainsRune(src, os.PathSeparator) {
		src = filepath.Join(filepath.Dir(flagDataDir), src)
	}

	fmt.Printf("  Restore %s\n", src)
	fmt.Printf("  over    %s\n", flagDataDir)
	fmt.Print("  Existing files with the same names are overwritten. Continue? [y/N] ")

	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	if !strings.EqualFold(strings.TrimSpace(answer), "y") {
		fmt.Println("  Aborted.")
		return nil
	}

	if err := backup.Restore(flagDataDir, src); err != nil {
		return err
	}

	fmt.Println("  Restored.")
	return nil
}
