package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ThaboMollo/Julius/internal/cli"
	"github.com/ThaboMollo/Julius/internal/model"
	"github.com/ThaboMollo/Julius/internal/store"
)

var txCmd = &cobra.Command{
	Use:   "tx",
	Short: "List the month's transactions",
	RunE:  runTxList,
}

var (
	flagTxCategory string
	flagTxItem     string
	flagTxDate     string
	flagTxNote     string
)

var txAddCmd = &cobra.Command{
	Use:   "add <amount>",
	Short: "Record a spend",
	Args:  cobra.ExactArgs(1),
	RunE:  runTxAdd,
}

var txRmCmd = &cobra.Command{
	Use:   "rm <number>",
	Short: "Delete a transaction by its list number",
	Args:  cobra.ExactArgs(1),
	RunE:  runTxRm,
}

func init() {
	txAddCmd.Flags().StringVarP(&flagTxCategory, "category", "c", "", "Category name (required)")
	txAddCmd.Flags().StringVarP(&flagTxItem, "item", "i", "", "Budget line to count against (omit for unbudgeted)")
	txAddCmd.Flags().StringVar(&flagTxDate, "date", "", "Transaction date (YYYY-MM-DD, default today)")
	txAddCmd.Flags().StringVar(&flagTxNote, "note", "", "Free-form note")
	_ = txAddCmd.MarkFlagRequired("category")

	txCmd.AddCommand(txAddCmd)
	txCmd.AddCommand(txRmCmd)
	rootCmd.AddCommand(txCmd)
}

func runTxList(_ *cobra.Command, _ []string) error {
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
	fmt.Println(cli.RenderTitle("TRANSACTIONS - " + cli.FormatMonth(flagYear, flagMonth)))
	fmt.Println()

	if len(d.Txs) == 0 {
		fmt.Println("  No transactions recorded this month.")
		fmt.Println()
		return nil
	}

	rows := make([][]string, 0, len(d.Txs))
	for i, tx := range d.Txs {
		link := cli.Dim("unbudgeted")
		if tx.BudgetItemID != nil {
			for _, item := range d.Items {
				if item.ID == *tx.BudgetItemID {
					link = item.Name
					break
				}
			}
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			cli.FormatDate(tx.Date),
			d.categoryName(tx.CategoryID),
			link,
			cli.FormatAmount(sym, tx.Amount),
			tx.Note,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"#", "Date", "Category", "Item", "Amount", "Note"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

func runTxAdd(_ *cobra.Command, args []string) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	d, err := loadMonth(s)
	if err != nil {
		return err
	}

	amount, err := decimal.NewFromString(args[0])
	if err != nil {
		return fmt.Errorf("invalid amount %q", args[0])
	}

	cat, err := s.FindCategoryByName(flagTxCategory)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no category named %q; see `julius categories`", flagTxCategory)
	}
	if err != nil {
		return err
	}

	tx := model.Transaction{
		BudgetMonthID: d.Month.ID,
		CategoryID:    cat.ID,
		Amount:        amount,
		Date:          time.Now(),
		Note:          flagTxNote,
	}
	if flagTxDate != "" {
		date, err := time.ParseInLocation("2006-01-02", flagTxDate, time.Local)
		if err != nil {
			return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", flagTxDate)
		}
		tx.Date = date
	}
	if flagTxItem != "" {
		item, ok := d.findItemByName(flagTxItem)
		if !ok {
			return fmt.Errorf("no budget line named %q this month", flagTxItem)
		}
		id := item.ID
		tx.BudgetItemID = &id
	}

	created, err := s.CreateTransaction(tx)
	if err != nil {
		return err
	}

	fmt.Printf("  Recorded %s against %s.\n",
		cli.FormatAmount(cfg.General.CurrencySymbol, created.Amount), cat.Name)
	return nil
}

func runTxRm(_ *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	d, err := loadMonth(s)
	if err != nil {
		return err
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(d.Txs) {
		return fmt.Errorf("no transaction #%s; run `julius tx` for numbers", args[0])
	}

	tx := d.Txs[n-1]
	if err := s.DeleteTransaction(tx.ID); err != nil {
		return err
	}
	fmt.Printf("  Deleted transaction #%d.\n", n)
	return nil
}
