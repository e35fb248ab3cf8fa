package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ThaboMollo/Julius/internal/cli"
	"github.com/ThaboMollo/Julius/internal/model"
	"github.com/ThaboMollo/Julius/internal/rules"
	"github.com/ThaboMollo/Julius/internal/store"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Show the month's budget lines",
	RunE:  runBudget,
}

var (
	flagItemCategory string
	flagItemAmount   string
	flagItemMult     int64
	flagItemRatio    string
	flagItemBill     bool
	flagItemDue      string
)

var budgetAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a budget line to the month",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetAdd,
}

var budgetRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Remove a budget line (its transactions become unbudgeted)",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetRm,
}

func init() {
	budgetAddCmd.Flags().StringVarP(&flagItemCategory, "category", "c", "", "Category name (required)")
	budgetAddCmd.Flags().StringVarP(&flagItemAmount, "amount", "a", "", "Planned amount (required)")
	budgetAddCmd.Flags().Int64Var(&flagItemMult, "multiplier", 1, "Repeat count within the month")
	budgetAddCmd.Flags().StringVar(&flagItemRatio, "ratio", "1", "Share of the cost carried, in (0, 1]")
	budgetAddCmd.Flags().BoolVar(&flagItemBill, "bill", false, "Mark as a bill")
	budgetAddCmd.Flags().StringVar(&flagItemDue, "due", "", "Bill due date (YYYY-MM-DD)")
	_ = budgetAddCmd.MarkFlagRequired("category")
	_ = budgetAddCmd.MarkFlagRequired("amount")

	budgetCmd.AddCommand(budgetAddCmd)
	budgetCmd.AddCommand(budgetRmCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(_ *cobra.Command, _ []string) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	d, err := loadMonth(s)
	if err != nil {
		return err
	}
	sym := cfg.General.CurrencySymbol

	fmt.Println()
	fmt.Println(cli.RenderTitle("BUDGET - " + cli.FormatMonth(flagYear, flagMonth)))
	fmt.Println()

	if len(d.Items) == 0 {
		fmt.Println("  No budget lines yet. Add one with `julius budget add`.")
		fmt.Println()
		return nil
	}

	rows := make([][]string, 0, len(d.Items))
	for _, item := range d.Items {
		planned := rules.EffectivePlanned(item)
		actual := rules.TotalActualByItem(d.Txs, item.ID)
		over := rules.ItemOverspend(item, d.Txs)

		overStr := ""
		if over.IsPositive() {
			overStr = cli.Bad(cli.FormatAmount(sym, over))
		}
		kind := ""
		if item.IsBill {
			kind = "bill"
		}
		rows = append(rows, []string{
			item.Name,
			d.categoryName(item.CategoryID),
			kind,
			cli.FormatAmount(sym, planned),
			cli.FormatAmount(sym, actual),
			overStr,
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{
		"Total", "", "",
		cli.FormatAmount(sym, rules.TotalPlanned(d.Items)),
		cli.FormatAmount(sym, rules.TotalActual(d.Txs)),
		"",
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Item", "Category", "Type", "Planned", "Actual", "Over"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

func runBudgetAdd(_ *cobra.Command, args []string) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	month, err := s.GetOrCreateMonth(flagYear, flagMonth)
	if err != nil {
		return err
	}

	cat, err := s.FindCategoryByName(flagItemCategory)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no category named %q; see `julius categories`", flagItemCategory)
	}
	if err != nil {
		return err
	}

	amount, err := decimal.NewFromString(flagItemAmount)
	if err != nil {
		return fmt.Errorf("invalid amount %q", flagItemAmount)
	}
	ratio, err := decimal.NewFromString(flagItemRatio)
	if err != nil {
		return fmt.Errorf("invalid ratio %q", flagItemRatio)
	}

	item := model.BudgetItem{
		BudgetMonthID: month.ID,
		GroupID:       cat.GroupID,
		CategoryID:    cat.ID,
		Name:          args[0],
		PlannedAmount: amount,
		Multiplier:    flagItemMult,
		SplitRatio:    ratio,
		IsBill:        flagItemBill,
	}
	if flagItemDue != "" {
		due, err := time.ParseInLocation("2006-01-02", flagItemDue, time.Local)
		if err != nil {
			return fmt.Errorf("invalid due date %q (want YYYY-MM-DD)", flagItemDue)
		}
		item.DueDate = &due
		item.IsBill = true
	}

	created, err := s.CreateItem(item)
	if err != nil {
		return err
	}

	fmt.Printf("  Added %q: %s effective planned\n",
		created.Name,
		cli.FormatAmount(cfg.General.CurrencySymbol, rules.EffectivePlanned(created)))
	return nil
}

func runBudgetRm(_ *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	d, err := loadMonth(s)
	if err != nil {
		return err
	}

	item, ok := d.findItemByName(args[0])
	if !ok {
		return fmt.Errorf("no budget line named %q this month", args[0])
	}
	if err := s.DeleteItem(item.ID); err != nil {
		return err
	}
	fmt.Printf("  Removed %q; its transactions are now unbudgeted.\n", item.Name)
	return nil
}
