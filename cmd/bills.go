package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/cli"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/ledger"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/plan"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var billsCmd = &cobra.Command{
	Use:   "bills",
	Short: "Recurring bill schedule",
	RunE:  runBillsList,
}

var billsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the schedule with payment status",
	RunE:  runBillsList,
}

var billsAddCmd = &cobra.Command{
	Use:   "add <name> <amount> <due-day>",
	Short: "Add a recurring bill",
	Args:  cobra.ExactArgs(3),
	RunE:  runBillsAdd,
}

var billsRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a bill from the schedule",
	Args:  cobra.ExactArgs(1),
	RunE:  runBillsRemove,
}

var billsPayCmd = &cobra.Command{
	Use:   "pay <name>",
	Short: "Record this month's payment in the ledger",
	Args:  cobra.ExactArgs(1),
	RunE:  runBillsPay,
}

var billsPayDate string

func init() {
	billsPayCmd.Flags().StringVar(&billsPayDate, "date", "", "Payment date as YYYY-MM-DD (default today)")
	billsCmd.AddCommand(billsListCmd, billsAddCmd, billsRemoveCmd, billsPayCmd)
	rootCmd.AddCommand(billsCmd)
}

func runBillsList(_ *cobra.Command, _ []string) error {
	bills, err := plan.NewStore(flagDataDir).LoadBills()
	if err != nil {
		return err
	}
	if len(bills) == 0 {
		fmt.Println("\n  No bills configured.")
		fmt.Println("  Add one with `budgetbuddy bills add <name> <amount> <due-day>`.")
		return nil
	}

	result := loadData()
	today := model.Today()
	statuses := plan.StatusForMonth(bills, result.Transactions, today)

	cfg := loadConfig()
	money := moneyFmt(cfg)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BILLS  %s", today.Format("January 2006"))))
	fmt.Println()

	var monthTotal decimal.Decimal
	rows := make([][]string, 0, len(statuses)+2)
	for _, st := range statuses {
		monthTotal = monthTotal.Add(st.Amount)

		var status string
		switch {
		case st.Paid:
			status = fmt.Sprintf("paid %s", st.PaidOn.Format("Jan 02"))
		case st.Due.Before(today.Time):
			days := int(today.Sub(st.Due.Time).Hours() / 24)
			status = fmt.Sprintf("OVERDUE %dd", days)
		case st.Due.SameDay(today):
			status = "due today"
		default:
			days := int(st.Due.Sub(today.Time).Hours() / 24)
			status = fmt.Sprintf("due in %dd", days)
		}

		rows = append(rows, []string{
			truncate(st.Name, 24),
			money(st.Amount),
			fmt.Sprintf("day %d", st.DueDay),
			status,
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"Total", money(monthTotal), "", fmt.Sprintf("%d unpaid", plan.UnpaidCount(statuses))})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Bill", "Amount", "Due", "Status"},
		Rows:    rows,
	}))

	return nil
}

func runBillsAdd(_ *cobra.Command, args []string) error {
	amount, err := decimal.NewFromString(args[1])
	if err != nil {
		return fmt.Errorf("amount %q: not a number", args[1])
	}
	day, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("due day %q: not a number", args[2])
	}

	b := plan.Bill{Name: args[0], Amount: amount, DueDay: day}
	if err := plan.NewStore(flagDataDir).AddBill(b); err != nil {
		return err
	}

	cfg := loadConfig()
	money := moneyFmt(cfg)
	fmt.Printf("  Added bill %q, %s due on day %d of each month.\n", b.Name, money(b.Amount), b.DueDay)
	return nil
}

func runBillsRemove(_ *cobra.Command, args []string) error {
	if err := plan.NewStore(flagDataDir).RemoveBill(args[0]); err != nil {
		return err
	}
	fmt.Printf("  Removed bill %q. Past payments stay in the ledger.\n", args[0])
	return nil
}

func runBillsPay(_ *cobra.Command, args []string) error {
	store := plan.NewStore(flagDataDir)
	bills, err := store.LoadBills()
	if err != nil {
		return err
	}

	var bill *plan.Bill
	for i := range bills {
		if strings.EqualFold(bills[i].Name, args[0]) {
			bill = &bills[i]
			break
		}
	}
	if bill == nil {
		return fmt.Errorf("no bill named %q", args[0])
	}

	on := model.Today()
	if billsPayDate != "" {
		on, err = model.ParseDate(billsPayDate)
		if err != nil {
			return err
		}
	}

	led := ledger.New(flagDataDir)
	if err := led.Init(); err != nil {
		return err
	}
	if err := plan.Pay(led, *bill, on); err != nil {
		return err
	}

	cfg := loadConfig()
	money := moneyFmt(cfg)
	fmt.Printf("  Paid %q, %s recorded on %s.\n", bill.Name, money(bill.Amount), on)
	return nil
}
