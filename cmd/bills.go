package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ThaboMollo/Julius/internal/cli"
	"github.com/ThaboMollo/Julius/internal/rules"
)

var billsCmd = &cobra.Command{
	Use:   "bills",
	Short: "Show the month's bills and their due status",
	RunE:  runBills,
}

var billsPayCmd = &cobra.Command{
	Use:   "pay <name>",
	Short: "Mark a bill paid for this month",
	Args:  cobra.ExactArgs(1),
	RunE:  runBillsPay,
}

var billsUnpayCmd = &cobra.Command{
	Use:   "unpay <name>",
	Short: "Mark a bill unpaid again",
	Args:  cobra.ExactArgs(1),
	RunE:  runBillsUnpay,
}

func init() {
	billsCmd.AddCommand(billsPayCmd)
	billsCmd.AddCommand(billsUnpayCmd)
	rootCmd.AddCommand(billsCmd)
}

func runBills(_ *cobra.Command, _ []string) error {
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
	payday := d.Settings.PaydayDayOfMonth

	fmt.Println()
	fmt.Println(cli.RenderTitle("BILLS - " + cli.FormatMonth(flagYear, flagMonth)))
	fmt.Println()

	var rows [][]string
	for _, item := range d.Items {
		if !item.IsBill {
			continue
		}
		status := rules.GetBillDueStatus(item, d.tickFor(item), flagYear, flagMonth, payday)

		due := ""
		if item.DueDate != nil {
			due = cli.FormatDate(*item.DueDate)
		}
		rows = append(rows, []string{
			item.Name,
			cli.FormatAmount(sym, rules.EffectivePlanned(item)),
			due,
			renderBillStatus(status),
		})
	}

	if len(rows) == 0 {
		fmt.Println("  No bills this month.")
		fmt.Println()
		return nil
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Bill", "Amount", "Due", "Status"},
		Rows:    rows,
	}))

	paydayDate := rules.GetPaydayDate(flagYear, flagMonth, payday)
	fmt.Printf("  Payday: %s (%d days away)\n\n",
		cli.FormatFullDate(paydayDate),
		rules.DaysUntilPayday(flagYear, flagMonth, payday))
	return nil
}

func renderBillStatus(status rules.BillDueStatus) string {
	switch status {
	case rules.StatusPaid:
		return cli.Good("paid")
	case rules.StatusOverdue:
		return cli.Bad("overdue")
	case rules.StatusDueToday:
		return cli.Bad("due today")
	case rules.StatusDueTomorrow:
		return cli.Warn("due tomorrow")
	case rules.StatusDueBeforePayday:
		return cli.Warn("due before payday")
	default:
		return cli.Dim("upcoming")
	}
}

func runBillsPay(_ *cobra.Command, args []string) error {
	return setBillPaid(args[0], true)
}

func runBillsUnpay(_ *cobra.Command, args []string) error {
	return setBillPaid(args[0], false)
}

func setBillPaid(name string, paid bool) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	d, err := loadMonth(s)
	if err != nil {
		return err
	}

	item, ok := d.findItemByName(name)
	if !ok {
		return fmt.Errorf("no budget line named %q this month", name)
	}
	if !item.IsBill {
		return fmt.Errorf("%q is not a bill", name)
	}
	if err := s.SetBillPaid(d.Month.ID, item.ID, paid); err != nil {
		return err
	}

	if paid {
		fmt.Printf("  Marked %q paid.\n", item.Name)
	} else {
		fmt.Printf("  Marked %q unpaid.\n", item.Name)
	}
	return nil
}
