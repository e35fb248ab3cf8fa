package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ThaboMollo/Julius/internal/cli"
	"github.com/ThaboMollo/Julius/internal/rules"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the month's budget summary (default command)",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
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
	fmt.Println(cli.RenderTitle("JULIUS - " + cli.FormatMonth(flagYear, flagMonth)))
	fmt.Println()

	// Group rollups
	summaries := rules.GroupSummaries(d.Groups, d.Items, d.Txs)
	if len(summaries) > 0 {
		rows := make([][]string, 0, len(summaries)+2)
		for _, gs := range summaries {
			rows = append(rows, []string{
				gs.Group.Name,
				cli.FormatAmount(sym, gs.Planned),
				cli.FormatAmount(sym, gs.Actual),
				cli.FormatAmount(sym, gs.Remaining),
			})
		}
		rows = append(rows, []string{"---"})
		rows = append(rows, []string{
			"Total",
			cli.FormatAmount(sym, rules.TotalPlanned(d.Items)),
			cli.FormatAmount(sym, rules.TotalActual(d.Txs)),
			"",
		})
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Groups",
			Headers: []string{"Group", "Planned", "Actual", "Remaining"},
			Rows:    rows,
		}))
		fmt.Println()
	}

	// Overspend ranking
	over := rules.TopOverspentCategories(d.Items, d.Txs, d.Categories, 3)
	if len(over) > 0 {
		rows := make([][]string, 0, len(over))
		for _, oc := range over {
			rows = append(rows, []string{
				oc.Category.Name,
				cli.FormatAmount(sym, oc.Planned),
				cli.FormatAmount(sym, oc.Actual),
				cli.Bad(cli.FormatAmount(sym, oc.Overspend)),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Top Overspent",
			Headers: []string{"Category", "Planned", "Actual", "Over"},
			Rows:    rows,
		}))
		fmt.Println()
	}

	unbudgeted := rules.UnbudgetedSpending(d.Txs)
	if unbudgeted.IsPositive() {
		fmt.Printf("  Unbudgeted spending: %s\n", cli.Warn(cli.FormatAmount(sym, unbudgeted)))
	}

	if line := billStatusLine(d); line != "" {
		fmt.Printf("  Bills: %s\n", line)
	}

	remaining := rules.RemainingUntilPayday(d.Items, d.Txs, d.Income)
	days := rules.DaysUntilPayday(flagYear, flagMonth, d.Settings.PaydayDayOfMonth)
	remStr := cli.FormatAmount(sym, remaining)
	if remaining.IsNegative() {
		remStr = cli.Bad(remStr)
	} else {
		remStr = cli.Good(remStr)
	}
	fmt.Printf("  Remaining until payday: %s (%d days)\n", remStr, days)
	if d.Income == nil && !flagQuiet {
		fmt.Println(cli.Dim("  No expected income set; remaining is planned minus actual."))
	}
	fmt.Println()

	return nil
}

// billStatusLine is a one-line paid/due/overdue rollup for the dashboard.
func billStatusLine(d *monthData) string {
	paid, dueSoon, overdue, total := 0, 0, 0, 0
	for _, item := range d.Items {
		if !item.IsBill {
			continue
		}
		total++
		switch rules.GetBillDueStatus(item, d.tickFor(item), flagYear, flagMonth, d.Settings.PaydayDayOfMonth) {
		case rules.StatusPaid:
			paid++
		case rules.StatusOverdue:
			overdue++
		case rules.StatusDueToday, rules.StatusDueTomorrow, rules.StatusDueBeforePayday:
			dueSoon++
		}
	}
	if total == 0 {
		return ""
	}

	line := fmt.Sprintf("%d/%d paid", paid, total)
	if dueSoon > 0 {
		line += ", " + cli.Warn(fmt.Sprintf("%d due soon", dueSoon))
	}
	if overdue > 0 {
		line += ", " + cli.Bad(fmt.Sprintf("%d overdue", overdue))
	}
	return line
}
