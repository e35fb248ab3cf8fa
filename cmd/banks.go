package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ThaboMollo/Julius/internal/cli"
	"github.com/ThaboMollo/Julius/internal/model"
)

var banksCmd = &cobra.Command{
	Use:   "banks",
	Short: "List configured bank accounts",
	RunE:  runBanksList,
}

var flagBankFrequency string

var banksAddCmd = &cobra.Command{
	Use:   "add <name> <code>",
	Short: "Register a bank account for statement uploads",
	Long:  "Supported codes: fnb, capitec, standard_bank, discovery, absa.",
	Args:  cobra.ExactArgs(2),
	RunE:  runBanksAdd,
}

func init() {
	banksAddCmd.Flags().StringVar(&flagBankFrequency, "frequency", "monthly", "Upload cadence: daily, weekly, monthly")

	banksCmd.AddCommand(banksAddCmd)
	rootCmd.AddCommand(banksCmd)
}

func runBanksList(_ *cobra.Command, _ []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	configs, err := s.ListBankConfigs()
	if err != nil {
		return err
	}

	fmt.Println()
	if len(configs) == 0 {
		fmt.Println("  No banks configured. Add one with `julius banks add`.")
		fmt.Println()
		return nil
	}

	rows := make([][]string, 0, len(configs))
	for _, bc := range configs {
		last := cli.Dim("never")
		if bc.LastUploadAt != nil {
			last = cli.FormatFullDate(*bc.LastUploadAt)
		}
		rows = append(rows, []string{
			bc.BankName,
			string(bc.BankCode),
			bc.UploadFrequency,
			last,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Banks",
		Headers: []string{"Bank", "Code", "Frequency", "Last Upload"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

func runBanksAdd(_ *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	code := model.BankCode(args[1])
	switch code {
	case model.BankFNB, model.BankCapitec, model.BankStandardBank, model.BankDiscovery, model.BankABSA:
	default:
		return fmt.Errorf("unsupported bank code %q", args[1])
	}

	if _, err := s.CreateBankConfig(args[0], code, flagBankFrequency); err != nil {
		return err
	}
	fmt.Printf("  Registered %q (%s).\n", args[0], code)
	return nil
}
