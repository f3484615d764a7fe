package cmd

import (
	"fmt"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/categorize"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/ledger"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a transaction",
	Long:  "Record a transaction from flags, or interactively when no flags are given.",
	RunE:  runAdd,
}

var (
	addAmount   string
	addCategory string
	addDate     string
	addDesc     string
)

func init() {
	addCmd.Flags().StringVarP(&addAmount, "amount", "a", "", "Amount, e.g. 42.50")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "income, essential, non-essential, bill or savings")
	addCmd.Flags().StringVar(&addDate, "date", "", "Date as YYYY-MM-DD (default today)")
	addCmd.Flags().StringVar(&addDesc, "desc", "", "Description")
	rootCmd.AddCommand(addCmd)
}

func runAdd(_ *cobra.Command, _ []string) error {
	var tx model.Transaction
	var err error

	if addAmount == "" && addCategory == "" {
		tx, err = promptTransaction()
	} else {
		tx, err = flagTransaction()
	}
	if err != nil {
		return err
	}

	if err := tx.Validate(); err != nil {
		return err
	}

	led := ledger.New(flagDataDir)
	if err := led.Init(); err != nil {
		return err
	}
	if err := led.Append(tx); err != nil {
		return err
	}

	cfg := loadConfig()
	money := moneyFmt(cfg)
	fmt.Printf("  Added: %s  %s  %s  %s\n", tx.Date, money(tx.Amount), tx.Category, tx.Description)
	fmt.Printf("  File:  %s\n", led.Path(tx.Category))

	return nil
}

// flagTransaction builds the transaction from command line flags. The
// category may be omitted when the rule file can suggest one.
func flagTransaction() (model.Transaction, error) {
	var tx model.Transaction
	var err error

	if addAmount == "" {
		return tx, fmt.Errorf("--amount is required (or run `budgetbuddy add` with no flags)")
	}
	tx.Amount, err = decimal.NewFromString(addAmount)
	if err != nil {
		return tx, fmt.Errorf("amount %q: not a number", addAmount)
	}

	tx.Date = model.Today()
	if addDate != "" {
		tx.Date, err = model.ParseDate(addDate)
		if err != nil {
			return tx, err
		}
	}

	tx.Description = addDesc

	if addCategory != "" {
		tx.Category, err = model.ParseCategory(addCategory)
		return tx, err
	}

	cat, err := categorize.Load(categorize.Path(flagDataDir))
	if err == nil {
		if suggested, ok := cat.Suggest(tx.Description); ok {
			fmt.Printf("  Category from rules: %s\n", suggested)
			tx.Category = suggested
			return tx, nil
		}
	}
	return tx, fmt.Errorf("no rule matches %q, pass --category", tx.Description)
}

// promptTransaction runs the interactive form.
func promptTransaction() (model.Transaction, error) {
	var tx model.Transaction

	date := ""
	amount := ""
	category := string(model.CategoryEssential)
	desc := ""

	categoryOpts := make([]huh.Option[string], 0, len(model.Categories))
	for _, c := range model.Categories {
		categoryOpts = append(categoryOpts, huh.NewOption(c.DisplayName(), string(c)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD, empty for today").
				Placeholder(model.Today().String()).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					_, err := model.ParseDate(s)
					return err
				}).
				Value(&date),
			huh.NewInput().
				Title("Amount").
				Placeholder("42.50").
				Validate(func(s string) error {
					d, err := decimal.NewFromString(s)
					if err != nil {
						return fmt.Errorf("enter a number like 42.50")
					}
					if d.IsNegative() {
						return fmt.Errorf("amount cannot be negative")
					}
					return nil
				}).
				Value(&amount),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOpts...).
				Value(&category),
			huh.NewInput().
				Title("Description").
				Placeholder("Groceries").
				Value(&desc),
		),
	)

	if err := form.Run(); err != nil {
		return tx, err
	}

	tx.Date = model.Today()
	if date != "" {
		var err error
		tx.Date, err = model.ParseDate(date)
		if err != nil {
			return tx, err
		}
	}
	var err error
	tx.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return tx, err
	}
	tx.Category, err = model.ParseCategory(category)
	if err != nil {
		return tx, err
	}
	tx.Description = desc

	return tx, nil
}
