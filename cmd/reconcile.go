package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ThaboMollo/Julius/internal/cli"
	"github.com/ThaboMollo/Julius/internal/model"
	"github.com/ThaboMollo/Julius/internal/rules"
	"github.com/ThaboMollo/Julius/internal/statement"
	"github.com/ThaboMollo/Julius/internal/store"
)

var (
	flagReconcileBank     string
	flagReconcileCreate   bool
	flagReconcileCategory string
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile <statement.csv>",
	Short: "Match a bank statement against recorded transactions",
	Long: "Pairs statement rows with recorded transactions when dates are within " +
		"2 days and amounts within 5. Unmatched debits are spends you never recorded.",
	Args: cobra.ExactArgs(1),
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVarP(&flagReconcileBank, "bank", "b", "", "Bank code: fnb, capitec, standard_bank, discovery, absa (required)")
	reconcileCmd.Flags().BoolVar(&flagReconcileCreate, "create", false, "Record unmatched debits as transactions")
	reconcileCmd.Flags().StringVarP(&flagReconcileCategory, "category", "c", "", "Category for created transactions (required with --create)")
	_ = reconcileCmd.MarkFlagRequired("bank")
	rootCmd.AddCommand(reconcileCmd)
}

func runReconcile(_ *cobra.Command, args []string) error {
	if flagReconcileCreate && flagReconcileCategory == "" {
		return errors.New("--create needs --category for the new transactions")
	}

	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	sym := cfg.General.CurrencySymbol

	bank := model.BankCode(flagReconcileBank)
	parsed, err := statement.ParseFile(args[0], bank)
	if err != nil {
		return err
	}
	if len(parsed) == 0 {
		fmt.Println("  Statement has no parseable rows.")
		return nil
	}

	start, end := statement.Period(parsed)
	recorded, err := s.ListTransactionsByDateRange(
		start.AddDate(0, 0, -2), end.AddDate(0, 0, 2))
	if err != nil {
		return err
	}

	result := rules.Reconcile(parsed, recorded)

	fmt.Println()
	fmt.Println(cli.RenderTitle("RECONCILE - " + filepath.Base(args[0])))
	fmt.Println()
	fmt.Printf("  %d statement rows, %s to %s\n\n",
		len(parsed), cli.FormatFullDate(start), cli.FormatFullDate(end))

	fmt.Printf("  Matched: %d\n", len(result.Matched))

	if len(result.MissingFromJulius) > 0 {
		rows := make([][]string, 0, len(result.MissingFromJulius))
		for _, b := range result.MissingFromJulius {
			rows = append(rows, []string{
				cli.FormatDate(b.Date),
				b.Description,
				cli.FormatAmount(sym, b.Amount.Abs()),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "On the statement, not recorded",
			Headers: []string{"Date", "Description", "Amount"},
			Rows:    rows,
		}))
	}

	if len(result.InJuliusNotInBank) > 0 {
		rows := make([][]string, 0, len(result.InJuliusNotInBank))
		for _, tx := range result.InJuliusNotInBank {
			rows = append(rows, []string{
				cli.FormatDate(tx.Date),
				tx.Note,
				cli.FormatAmount(sym, tx.Amount),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Recorded, not on the statement",
			Headers: []string{"Date", "Note", "Amount"},
			Rows:    rows,
		}))
	}

	if flagReconcileCreate && len(result.MissingFromJulius) > 0 {
		created, err := createMissing(s, result.MissingFromJulius)
		if err != nil {
			return err
		}
		fmt.Printf("  Created %d transaction(s) from unmatched debits.\n", created)
	}

	if err := recordUpload(s, bank, args[0], parsed, result); err != nil {
		return err
	}

	fmt.Println()
	return nil
}

// createMissing records each unmatched debit as an unbudgeted spend in the
// month its date falls in.
func createMissing(s *store.Store, missing []statement.ParsedTransaction) (int, error) {
	cat, err := s.FindCategoryByName(flagReconcileCategory)
	if errors.Is(err, store.ErrNotFound) {
		return 0, fmt.Errorf("no category named %q", flagReconcileCategory)
	}
	if err != nil {
		return 0, err
	}

	created := 0
	for _, b := range missing {
		month, err := s.GetOrCreateMonth(b.Date.Year(), int(b.Date.Month()))
		if err != nil {
			return created, err
		}
		_, err = s.CreateTransaction(model.Transaction{
			BudgetMonthID: month.ID,
			CategoryID:    cat.ID,
			Amount:        b.Amount.Abs(),
			Date:          b.Date,
			Note:          b.Description,
		})
		if err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// recordUpload stamps the statement against the bank's config when one
// exists; reconciling without a configured bank still works.
func recordUpload(s *store.Store, bank model.BankCode, path string, parsed []statement.ParsedTransaction, result rules.ReconciliationResult) error {
	bc, err := s.FindBankConfigByCode(bank)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	start, end := statement.Period(parsed)
	return s.RecordStatementUpload(model.StatementUpload{
		BankConfigID:      bc.ID,
		Filename:          filepath.Base(path),
		UploadedAt:        time.Now(),
		PeriodStart:       start,
		PeriodEnd:         end,
		TotalTransactions: len(parsed),
		MatchedCount:      len(result.Matched),
		UnmatchedCount:    len(result.MissingFromJulius),
	})
}
