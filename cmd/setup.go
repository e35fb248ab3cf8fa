package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ThaboMollo/Julius/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	settings, err := s.GetSettings()
	if err != nil {
		return err
	}

	paydayStr := strconv.Itoa(settings.PaydayDayOfMonth)
	incomeStr := ""
	if settings.ExpectedMonthlyIncome != nil {
		incomeStr = settings.ExpectedMonthlyIncome.String()
	}
	symbol := cfg.General.CurrencySymbol
	theme := cfg.Appearance.Theme

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Payday day of month").
				Description("Clamped to the last day in shorter months.").
				Value(&paydayStr).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n < 1 || n > 31 {
						return fmt.Errorf("enter a day between 1 and 31")
					}
					return nil
				}),
			huh.NewInput().
				Title("Expected monthly income").
				Description("Leave empty to budget without an income baseline.").
				Value(&incomeStr).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if _, err := decimal.NewFromString(s); err != nil {
						return fmt.Errorf("enter a number")
					}
					return nil
				}),
			huh.NewInput().
				Title("Currency symbol").
				Value(&symbol),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions("flexoki-dark", "terminal")...).
				Value(&theme),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	payday, _ := strconv.Atoi(paydayStr)
	var income *decimal.Decimal
	if incomeStr != "" {
		d, err := decimal.NewFromString(incomeStr)
		if err != nil {
			return fmt.Errorf("invalid income %q", incomeStr)
		}
		income = &d
	}
	if err := s.UpdateSettings(payday, income); err != nil {
		return err
	}

	if symbol != "" {
		cfg.General.CurrencySymbol = symbol
	}
	cfg.Appearance.Theme = theme
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `julius setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
