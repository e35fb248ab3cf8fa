package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ThaboMollo/Julius/internal/cli"
	"github.com/ThaboMollo/Julius/internal/rules"
)

var monthsCmd = &cobra.Command{
	Use:   "months",
	Short: "List budget months",
	RunE:  runMonthsList,
}

var monthsIncomeCmd = &cobra.Command{
	Use:   "set-income <amount>",
	Short: "Set this month's expected income (overrides settings)",
	Args:  cobra.ExactArgs(1),
	RunE:  runMonthsSetIncome,
}

var monthsApplyCmd = &cobra.Command{
	Use:   "apply-templates",
	Short: "Instantiate active recurring templates into this month",
	RunE:  runMonthsApply,
}

func init() {
	monthsCmd.AddCommand(monthsIncomeCmd)
	monthsCmd.AddCommand(monthsApplyCmd)
	rootCmd.AddCommand(monthsCmd)
}

func runMonthsList(_ *cobra.Command, _ []string) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	months, err := s.ListMonths()
	if err != nil {
		return err
	}
	sym := cfg.General.CurrencySymbol

	fmt.Println()
	if len(months) == 0 {
		fmt.Println("  No budget months yet; any command touching a month creates it.")
		fmt.Println()
		return nil
	}

	rows := make([][]string, 0, len(months))
	for _, m := range months {
		items, err := s.ListItemsByMonth(m.ID)
		if err != nil {
			return err
		}
		txs, err := s.ListTransactionsByMonth(m.ID)
		if err != nil {
			return err
		}

		income := cli.Dim("-")
		if m.ExpectedIncome != nil {
			income = cli.FormatAmount(sym, *m.ExpectedIncome)
		}
		rows = append(rows, []string{
			cli.FormatMonth(m.Year, m.Month),
			income,
			cli.FormatAmount(sym, rules.TotalPlanned(items)),
			cli.FormatAmount(sym, rules.TotalActual(txs)),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Months",
		Headers: []string{"Month", "Income", "Planned", "Actual"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

func runMonthsSetIncome(_ *cobra.Command, args []string) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	month, err := s.GetOrCreateMonth(flagYear, flagMonth)
	if err != nil {
		return err
	}

	income, err := decimal.NewFromString(args[0])
	if err != nil {
		return fmt.Errorf("invalid amount %q", args[0])
	}
	if err := s.SetMonthIncome(month.ID, &income); err != nil {
		return err
	}

	fmt.Printf("  Expected income for %s set to %s.\n",
		cli.FormatMonth(flagYear, flagMonth),
		cli.FormatAmount(cfg.General.CurrencySymbol, income))
	return nil
}

func runMonthsApply(_ *cobra.Command, _ []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	month, err := s.GetOrCreateMonth(flagYear, flagMonth)
	if err != nil {
		return err
	}

	created, err := s.ApplyTemplates(month)
	if err != nil {
		return err
	}
	fmt.Printf("  Applied %d template(s) to %s.\n", created, cli.FormatMonth(flagYear, flagMonth))
	return nil
}
