package cmd

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ThaboMollo/Julius/internal/cli"
	"github.com/ThaboMollo/Julius/internal/model"
	"github.com/ThaboMollo/Julius/internal/store"
)

var recurringCmd = &cobra.Command{
	Use:   "recurring",
	Short: "List recurring templates",
	RunE:  runRecurringList,
}

var (
	flagTplCategory string
	flagTplMult     int64
	flagTplRatio    string
	flagTplDueDay   int
)

var recurringAddCmd = &cobra.Command{
	Use:   "add <name> <amount>",
	Short: "Add a recurring template applied to new months",
	Args:  cobra.ExactArgs(2),
	RunE:  runRecurringAdd,
}

var recurringRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Deactivate a template; existing months keep their items",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecurringRm,
}

func init() {
	recurringAddCmd.Flags().StringVarP(&flagTplCategory, "category", "c", "", "Category name (required)")
	recurringAddCmd.Flags().Int64Var(&flagTplMult, "multiplier", 1, "Repeat count within the month")
	recurringAddCmd.Flags().StringVar(&flagTplRatio, "ratio", "1", "Share of the cost carried, in (0, 1]")
	recurringAddCmd.Flags().IntVar(&flagTplDueDay, "due-day", 0, "Bill due day-of-month (1-31); implies a bill")
	_ = recurringAddCmd.MarkFlagRequired("category")

	recurringCmd.AddCommand(recurringAddCmd)
	recurringCmd.AddCommand(recurringRmCmd)
	rootCmd.AddCommand(recurringCmd)
}

func runRecurringList(_ *cobra.Command, _ []string) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	templates, err := s.ListActiveTemplates()
	if err != nil {
		return err
	}

	fmt.Println()
	if len(templates) == 0 {
		fmt.Println("  No recurring templates. Add one with `julius recurring add`.")
		fmt.Println()
		return nil
	}

	rows := make([][]string, 0, len(templates))
	for _, tpl := range templates {
		due := ""
		if tpl.DueDayOfMonth != nil {
			due = fmt.Sprintf("day %d", *tpl.DueDayOfMonth)
		}
		kind := ""
		if tpl.IsBill {
			kind = "bill"
		}
		rows = append(rows, []string{
			tpl.Name,
			kind,
			cli.FormatAmount(cfg.General.CurrencySymbol, tpl.PlannedAmount),
			due,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Recurring Templates",
		Headers: []string{"Template", "Type", "Amount", "Due"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

func runRecurringAdd(_ *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	cat, err := s.FindCategoryByName(flagTplCategory)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no category named %q; see `julius categories`", flagTplCategory)
	}
	if err != nil {
		return err
	}

	amount, err := decimal.NewFromString(args[1])
	if err != nil {
		return fmt.Errorf("invalid amount %q", args[1])
	}
	ratio, err := decimal.NewFromString(flagTplRatio)
	if err != nil {
		return fmt.Errorf("invalid ratio %q", flagTplRatio)
	}

	tpl := model.RecurringTemplate{
		GroupID:       cat.GroupID,
		CategoryID:    cat.ID,
		Name:          args[0],
		PlannedAmount: amount,
		Multiplier:    flagTplMult,
		SplitRatio:    ratio,
		IsActive:      true,
	}
	if flagTplDueDay > 0 {
		day := flagTplDueDay
		tpl.DueDayOfMonth = &day
		tpl.IsBill = true
	}

	if _, err := s.CreateTemplate(tpl); err != nil {
		return err
	}
	fmt.Printf("  Added template %q. Apply it with `julius months apply-templates`.\n", tpl.Name)
	return nil
}

func runRecurringRm(_ *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	templates, err := s.ListActiveTemplates()
	if err != nil {
		return err
	}
	for _, tpl := range templates {
		if tpl.Name == args[0] {
			if err := s.DeactivateTemplate(tpl.ID); err != nil {
				return err
			}
			fmt.Printf("  Deactivated template %q.\n", tpl.Name)
			return nil
		}
	}
	return fmt.Errorf("no active template named %q", args[0])
}
