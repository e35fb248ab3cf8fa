package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ThaboMollo/Julius/internal/config"
	"github.com/ThaboMollo/Julius/internal/model"
	"github.com/ThaboMollo/Julius/internal/store"

	"github.com/shopspring/decimal"
)

var (
	flagYear    int
	flagMonth   int
	flagDataDir string
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "julius",
	Short: "Personal budget tracker",
	Long:  "Track planned vs actual spending, bills, and cashflow for one month at a time.",
	RunE:  runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	now := time.Now()

	rootCmd.PersistentFlags().IntVarP(&flagYear, "year", "y", now.Year(), "Budget year")
	rootCmd.PersistentFlags().IntVarP(&flagMonth, "month", "m", int(now.Month()), "Budget month (1-12)")
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Override the data directory")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// openStore is the shared open path used by all commands.
func openStore() (*store.Store, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}

	s, err := store.Open(config.DataPath(cfg))
	if err != nil {
		return nil, cfg, fmt.Errorf("opening store: %w", err)
	}
	return s, cfg, nil
}

// monthData is the loaded snapshot every command renders from.
type monthData struct {
	Month      model.BudgetMonth
	Groups     []model.BudgetGroup
	Categories []model.Category
	Items      []model.BudgetItem
	Txs        []model.Transaction
	Ticks      []model.BillTick
	Settings   model.Settings
	Income     *decimal.Decimal
}

// loadMonth fetches everything for the flagged month, creating the month on
// first touch.
func loadMonth(s *store.Store) (*monthData, error) {
	if flagMonth < 1 || flagMonth > 12 {
		return nil, fmt.Errorf("month %d out of range", flagMonth)
	}

	month, err := s.GetOrCreateMonth(flagYear, flagMonth)
	if err != nil {
		return nil, err
	}

	d := &monthData{Month: month}
	if d.Groups, err = s.ListGroups(); err != nil {
		return nil, err
	}
	if d.Categories, err = s.ListCategories(); err != nil {
		return nil, err
	}
	if d.Items, err = s.ListItemsByMonth(month.ID); err != nil {
		return nil, err
	}
	if d.Txs, err = s.ListTransactionsByMonth(month.ID); err != nil {
		return nil, err
	}
	if d.Ticks, err = s.ListBillTicksByMonth(month.ID); err != nil {
		return nil, err
	}
	if d.Settings, err = s.GetSettings(); err != nil {
		return nil, err
	}
	if d.Income, err = s.ExpectedIncomeFor(month); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *monthData) categoryName(id uuid.UUID) string {
	for _, c := range d.Categories {
		if c.ID == id {
			return c.Name
		}
	}
	return "?"
}

func (d *monthData) findItemByName(name string) (model.BudgetItem, bool) {
	for _, item := range d.Items {
		if item.Name == name {
			return item, true
		}
	}
	return model.BudgetItem{}, false
}

func (d *monthData) tickFor(item model.BudgetItem) *model.BillTick {
	for i := range d.Ticks {
		if d.Ticks[i].BudgetItemID == item.ID {
			return &d.Ticks[i]
		}
	}
	return nil
}
