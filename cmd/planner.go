package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ThaboMollo/Julius/internal/cli"
	"github.com/ThaboMollo/Julius/internal/model"
	"github.com/ThaboMollo/Julius/internal/rules"
	"github.com/ThaboMollo/Julius/internal/store"
)

var plannerCmd = &cobra.Command{
	Use:   "planner",
	Short: "List purchase scenarios",
	RunE:  runPlannerList,
}

var flagScenarioDesc string

var plannerNewCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a purchase scenario",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlannerNew,
}

var plannerExpenseCmd = &cobra.Command{
	Use:   "expense <scenario> <name> <monthly-amount>",
	Short: "Add a monthly cost line to a scenario",
	Args:  cobra.ExactArgs(3),
	RunE:  runPlannerExpense,
}

var plannerEvalCmd = &cobra.Command{
	Use:   "eval <scenario>",
	Short: "Evaluate a scenario against recent disposable income",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlannerEval,
}

var plannerRmCmd = &cobra.Command{
	Use:   "rm <scenario>",
	Short: "Delete a scenario and its cost lines",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlannerRm,
}

func init() {
	plannerNewCmd.Flags().StringVar(&flagScenarioDesc, "desc", "", "Scenario description")

	plannerCmd.AddCommand(plannerNewCmd)
	plannerCmd.AddCommand(plannerExpenseCmd)
	plannerCmd.AddCommand(plannerEvalCmd)
	plannerCmd.AddCommand(plannerRmCmd)
	rootCmd.AddCommand(plannerCmd)
}

func runPlannerList(_ *cobra.Command, _ []string) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	scenarios, err := s.ListScenarios()
	if err != nil {
		return err
	}

	fmt.Println()
	if len(scenarios) == 0 {
		fmt.Println("  No scenarios. Create one with `julius planner new`.")
		fmt.Println()
		return nil
	}

	rows := make([][]string, 0, len(scenarios))
	for _, sc := range scenarios {
		expenses, err := s.ListScenarioExpenses(sc.ID)
		if err != nil {
			return err
		}
		rows = append(rows, []string{
			sc.Name,
			fmt.Sprintf("%d", len(expenses)),
			cli.FormatAmount(cfg.General.CurrencySymbol, rules.ScenarioMonthlyTotal(expenses)),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Purchase Scenarios",
		Headers: []string{"Scenario", "Lines", "Monthly"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

func runPlannerNew(_ *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := s.CreateScenario(args[0], flagScenarioDesc); err != nil {
		return err
	}
	fmt.Printf("  Created scenario %q.\n", args[0])
	return nil
}

func runPlannerExpense(_ *cobra.Command, args []string) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	sc, err := findScenario(s, args[0])
	if err != nil {
		return err
	}

	existing, err := s.ListScenarioExpenses(sc.ID)
	if err != nil {
		return err
	}
	exp, err := s.AddScenarioExpense(sc.ID, args[1], args[2], len(existing))
	if err != nil {
		return err
	}

	fmt.Printf("  Added %q at %s/month to %q.\n",
		exp.Name, cli.FormatAmount(cfg.General.CurrencySymbol, exp.MonthlyAmount), sc.Name)
	return nil
}

func runPlannerEval(_ *cobra.Command, args []string) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	sym := cfg.General.CurrencySymbol

	sc, err := findScenario(s, args[0])
	if err != nil {
		return err
	}
	expenses, err := s.ListScenarioExpenses(sc.ID)
	if err != nil {
		return err
	}
	total := rules.ScenarioMonthlyTotal(expenses)

	history, skipped, err := monthHistories(s, cfg.General.HistoryMonths)
	if err != nil {
		return err
	}

	result := rules.CalculateAffordability(history, total)

	fmt.Println()
	fmt.Println(cli.RenderTitle("AFFORDABILITY - " + sc.Name))
	fmt.Println()

	if len(expenses) > 0 {
		rows := make([][]string, 0, len(expenses))
		for _, exp := range expenses {
			rows = append(rows, []string{exp.Name, cli.FormatAmount(sym, exp.MonthlyAmount)})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"Cost Line", "Monthly"},
			Rows:    rows,
		}))
		fmt.Println()
	}

	fmt.Printf("  Baseline disposable:  %s/month over %d month(s)\n",
		cli.FormatAmount(sym, result.BaselineDisposable), len(history))
	fmt.Printf("  Spending trend:       %s\n", renderTrend(result.SpendingTrend))
	fmt.Printf("  New obligations:      %s/month\n", cli.FormatAmount(sym, result.NewMonthlyObligations))
	fmt.Printf("  Remaining after:      %s/month\n", cli.FormatAmount(sym, result.RemainingAfterScenario))
	fmt.Printf("  Verdict:              %s\n", renderVerdict(result.Verdict))
	if skipped > 0 && !flagQuiet {
		fmt.Println(cli.Dim(fmt.Sprintf("  %d month(s) without an expected income were ignored.", skipped)))
	}
	if len(history) == 0 && !flagQuiet {
		fmt.Println(cli.Dim("  No usable history; set incomes on past months for a real baseline."))
	}
	fmt.Println()
	return nil
}

func runPlannerRm(_ *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	sc, err := findScenario(s, args[0])
	if err != nil {
		return err
	}
	if err := s.DeleteScenario(sc.ID); err != nil {
		return err
	}
	fmt.Printf("  Deleted scenario %q.\n", sc.Name)
	return nil
}

func findScenario(s *store.Store, name string) (model.PurchaseScenario, error) {
	sc, err := s.FindScenarioByName(name)
	if errors.Is(err, store.ErrNotFound) {
		return model.PurchaseScenario{}, fmt.Errorf("no scenario named %q; see `julius planner`", name)
	}
	return sc, err
}

// monthHistories builds the affordability window from completed months before
// the flagged one, oldest first. Months with no resolvable income are skipped
// and counted.
func monthHistories(s *store.Store, window int) ([]rules.MonthHistory, int, error) {
	months, err := s.RecentMonths(model.MonthKey(flagYear, flagMonth), window)
	if err != nil {
		return nil, 0, err
	}

	var history []rules.MonthHistory
	skipped := 0
	// RecentMonths is newest first; the trend split wants chronological order.
	for i := len(months) - 1; i >= 0; i-- {
		m := months[i]
		income, err := s.ExpectedIncomeFor(m)
		if err != nil {
			return nil, 0, err
		}
		if income == nil {
			skipped++
			continue
		}
		txs, err := s.ListTransactionsByMonth(m.ID)
		if err != nil {
			return nil, 0, err
		}
		history = append(history, rules.MonthHistory{
			TotalActual:    rules.TotalActual(txs),
			ExpectedIncome: *income,
		})
	}
	return history, skipped, nil
}

func renderTrend(trend rules.SpendingTrend) string {
	switch trend {
	case rules.TrendIncreasing:
		return cli.Warn("increasing")
	case rules.TrendDecreasing:
		return cli.Good("decreasing")
	default:
		return "stable"
	}
}

func renderVerdict(v rules.AffordabilityVerdict) string {
	switch v {
	case rules.VerdictAffordable:
		return cli.Good("affordable")
	case rules.VerdictTight:
		return cli.Warn("tight")
	default:
		return cli.Bad("cannot afford")
	}
}
