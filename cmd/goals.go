package cmd

import (
	"fmt"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/cli"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/plan"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Savings goal progress",
	RunE:  runGoalsList,
}

var goalsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show progress toward each goal",
	RunE:  runGoalsList,
}

var goalsAddCmd = &cobra.Command{
	Use:   "add <name> <target>",
	Short: "Add a savings goal",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalsAdd,
}

var goalsRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a savings goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalsRemove,
}

var (
	goalsDeadline string
	goalsKeyword  string
)

func init() {
	goalsAddCmd.Flags().StringVar(&goalsDeadline, "deadline", "", "Target date as YYYY-MM-DD")
	goalsAddCmd.Flags().StringVar(&goalsKeyword, "keyword", "", "Count only savings deposits mentioning this word")
	goalsCmd.AddCommand(goalsListCmd, goalsAddCmd, goalsRemoveCmd)
	rootCmd.AddCommand(goalsCmd)
}

func runGoalsList(_ *cobra.Command, _ []string) error {
	goals, err := plan.NewStore(flagDataDir).LoadGoals()
	if err != nil {
		return err
	}
	if len(goals) == 0 {
		fmt.Println("\n  No savings goals yet.")
		fmt.Println("  Create one with `budgetbuddy goals add <name> <target>`.")
		return nil
	}

	result := loadData()
	progress := plan.Progress(goals, result.Transactions)

	cfg := loadConfig()
	money := moneyFmt(cfg)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SAVINGS GOALS  (%d)", len(progress))))
	fmt.Println()

	today := model.Today()
	for _, p := range progress {
		status := fmt.Sprintf("%.0f%%", p.Percent)
		if p.Done() {
			status = "reached!"
		} else if !p.Deadline.IsZero() {
			status += fmt.Sprintf("  by %s", p.Deadline.Format("Jan 2006"))
			if !p.OnTrack(today) {
				status += ", behind pace"
			}
		}

		fmt.Printf("  %-20s %s  %s\n",
			truncate(p.Name, 20),
			cli.RenderProgressBar(int(p.Saved.IntPart()), int(p.Target.IntPart()), 24),
			status)
		if !p.Done() {
			fmt.Printf("  %-20s %s to go\n", "", money(p.Remaining()))
		}
	}
	fmt.Println()

	return nil
}

func runGoalsAdd(_ *cobra.Command, args []string) error {
	target, err := decimal.NewFromString(args[1])
	if err != nil {
		return fmt.Errorf("target %q: not a number", args[1])
	}

	g := plan.Goal{Name: args[0], Target: target, Keyword: goalsKeyword}
	if goalsDeadline != "" {
		g.Deadline, err = model.ParseDate(goalsDeadline)
		if err != nil {
			return err
		}
	}

	if err := plan.NewStore(flagDataDir).AddGoal(g); err != nil {
		return err
	}

	cfg := loadConfig()
	money := moneyFmt(cfg)
	fmt.Printf("  Added goal %q with target %s.\n", g.Name, money(g.Target))
	if g.Keyword != "" {
		fmt.Printf("  Counting savings deposits mentioning %q.\n", g.Keyword)
	}
	return nil
}

func runGoalsRemove(_ *cobra.Command, args []string) error {
	if err := plan.NewStore(flagDataDir).RemoveGoal(args[0]); err != nil {
		return err
	}
	fmt.Printf("  Removed goal %q.\n", args[0])
	return nil
}
