package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ThaboMollo/Julius/internal/cli"
	"github.com/ThaboMollo/Julius/internal/rules"
)

var flagTimelineBalance string

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Project unpaid bills and payday onto a cashflow timeline",
	RunE:  runTimeline,
}

func init() {
	timelineCmd.Flags().StringVarP(&flagTimelineBalance, "balance", "b", "0", "Current account balance to fold from")
	rootCmd.AddCommand(timelineCmd)
}

func runTimeline(_ *cobra.Command, _ []string) error {
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

	balance, err := decimal.NewFromString(flagTimelineBalance)
	if err != nil {
		return fmt.Errorf("invalid balance %q", flagTimelineBalance)
	}

	events := rules.BuildTimeline(d.Items, d.Ticks, flagYear, flagMonth,
		balance, d.Settings.PaydayDayOfMonth)

	fmt.Println()
	fmt.Println(cli.RenderTitle("TIMELINE - " + cli.FormatMonth(flagYear, flagMonth)))
	fmt.Println()

	if len(events) == 0 {
		fmt.Println("  Nothing ahead: no unpaid bills and payday has passed.")
		fmt.Println()
		return nil
	}

	rows := make([][]string, 0, len(events))
	for _, ev := range events {
		name := "Payday"
		amount := cli.Good("income")
		if ev.Type == rules.EventBill {
			name = ev.Item.Name
			amount = cli.FormatSignedAmount(sym, ev.Amount)
		}

		balStr := cli.FormatAmount(sym, ev.RunningBalance)
		if ev.RunningBalance.IsNegative() {
			balStr = cli.Bad(balStr)
		}
		rows = append(rows, []string{
			cli.FormatDate(ev.Date),
			name,
			amount,
			balStr,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Event", "Amount", "Balance"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}
