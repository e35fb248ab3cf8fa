package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ThaboMollo/Julius/internal/cli"
	"github.com/ThaboMollo/Julius/internal/config"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show payday and income settings",
	RunE:  runSettingsShow,
}

var (
	flagSetPayday int
	flagSetIncome string
)

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update payday day and default expected income",
	RunE:  runSettingsSet,
}

func init() {
	settingsSetCmd.Flags().IntVar(&flagSetPayday, "payday", 0, "Payday day-of-month (1-31)")
	settingsSetCmd.Flags().StringVar(&flagSetIncome, "income", "", "Default expected monthly income")

	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(_ *cobra.Command, _ []string) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	st, err := s.GetSettings()
	if err != nil {
		return err
	}

	income := cli.Dim("not set")
	if st.ExpectedMonthlyIncome != nil {
		income = cli.FormatAmount(cfg.General.CurrencySymbol, *st.ExpectedMonthlyIncome)
	}

	fmt.Println()
	fmt.Printf("  Payday day:       %d\n", st.PaydayDayOfMonth)
	fmt.Printf("  Expected income:  %s\n", income)
	fmt.Printf("  Currency symbol:  %s\n", cfg.General.CurrencySymbol)
	fmt.Printf("  Data file:        %s\n", config.DataPath(cfg))
	fmt.Println()
	return nil
}

func runSettingsSet(_ *cobra.Command, _ []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	st, err := s.GetSettings()
	if err != nil {
		return err
	}

	payday := st.PaydayDayOfMonth
	if flagSetPayday != 0 {
		if flagSetPayday < 1 || flagSetPayday > 31 {
			return fmt.Errorf("payday day %d out of range", flagSetPayday)
		}
		payday = flagSetPayday
	}

	income := st.ExpectedMonthlyIncome
	if flagSetIncome != "" {
		d, err := decimal.NewFromString(flagSetIncome)
		if err != nil {
			return fmt.Errorf("invalid income %q", flagSetIncome)
		}
		income = &d
	}

	if err := s.UpdateSettings(payday, income); err != nil {
		return err
	}
	fmt.Println("  Settings updated.")
	return nil
}
