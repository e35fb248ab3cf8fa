// Package statement parses bank CSV exports into normalized transactions
// for reconciliation. Each supported bank maps its header names onto the
// same record shape; negative amounts are debits.
package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ThaboMollo/Julius/internal/model"
)

// ParsedTransaction is one normalized statement row.
type ParsedTransaction struct {
	Date        time.Time
	Amount      decimal.Decimal // negative = debit (expense)
	Description string
	Reference   string
	Balance     *decimal.Decimal
}

// layout names the header columns a bank uses, in candidate priority order.
// Headers are matched after lowercasing and stripping non-alphanumerics.
type layout struct {
	date    []string
	amount  []string
	debit   []string
	credit  []string
	desc    []string
	desc2   []string
	ref     []string
	balance []string
}

var layouts = map[model.BankCode]layout{
	model.BankFNB: {
		date:    []string{"date"},
		amount:  []string{"amount"},
		desc:    []string{"description1", "description", "desc", "narration"},
		desc2:   []string{"description2", "reference"},
		balance: []string{"balance"},
	},
	model.BankStandardBank: {
		date:    []string{"transactiondate", "date"},
		amount:  []string{"amount", "transactionamount"},
		debit:   []string{"debitamount", "debit"},
		credit:  []string{"creditamount", "credit"},
		desc:    []string{"description", "transactiondescription", "desc", "transactiontype"},
		ref:     []string{"reference", "ref"},
		balance: []string{"runningbalance", "balance"},
	},
	model.BankCapitec: {
		date:    []string{"transactiondate", "postingdate", "date"},
		amount:  []string{"amount", "transactionamount"},
		debit:   []string{"debit", "moneyout"},
		credit:  []string{"credit", "moneyin"},
		desc:    []string{"description", "transactiondescription", "narrative"},
		ref:     []string{"reference"},
		balance: []string{"balance"},
	},
	model.BankDiscovery: {
		date:    []string{"date", "transactiondate"},
		amount:  []string{"amount"},
		desc:    []string{"description", "details"},
		ref:     []string{"reference"},
		balance: []string{"balance", "availablebalance"},
	},
	model.BankABSA: {
		date:    []string{"date", "transactiondate"},
		amount:  []string{"amount", "transactionamount"},
		debit:   []string{"debitamount", "debit"},
		credit:  []string{"creditamount", "credit"},
		desc:    []string{"description", "transactiondescription"},
		ref:     []string{"reference"},
		balance: []string{"balance"},
	},
}

// dateFormats covers the export formats seen across the supported banks.
var dateFormats = []string{
	"2 Jan 2006",
	"02 Jan 2006",
	"2006/01/02",
	"2006-01-02",
	"02/01/2006",
}

// Parse reads a CSV statement for the given bank. Rows with unparseable
// dates or amounts are skipped rather than failing the whole file.
func Parse(r io.Reader, bank model.BankCode) ([]ParsedTransaction, error) {
	lay, ok := layouts[bank]
	if !ok {
		return nil, fmt.Errorf("no statement parser for bank code %q", bank)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = normalizeHeader(h)
	}

	dateIdx := findColumn(header, lay.date)
	amountIdx := findColumn(header, lay.amount)
	debitIdx := findColumn(header, lay.debit)
	creditIdx := findColumn(header, lay.credit)
	descIdx := findColumn(header, lay.desc)
	desc2Idx := findColumn(header, lay.desc2)
	refIdx := findColumn(header, lay.ref)
	balanceIdx := findColumn(header, lay.balance)

	if dateIdx == -1 {
		return nil, fmt.Errorf("statement has no recognizable date column")
	}
	if amountIdx == -1 && debitIdx == -1 && creditIdx == -1 {
		return nil, fmt.Errorf("statement has no recognizable amount column")
	}

	var results []ParsedTransaction
	for _, row := range records[1:] {
		date, ok := parseDate(cell(row, dateIdx))
		if !ok {
			continue
		}

		var amount decimal.Decimal
		if amountIdx != -1 {
			a, ok := parseAmount(cell(row, amountIdx))
			if !ok {
				continue
			}
			amount = a
		} else {
			debit, _ := parseAmount(cell(row, debitIdx))
			credit, _ := parseAmount(cell(row, creditIdx))
			if credit.IsPositive() {
				amount = credit
			} else {
				amount = debit.Neg()
			}
		}

		desc := joinDescriptions(cell(row, descIdx), cell(row, desc2Idx))
		if desc == "" {
			desc = "Unknown"
		}

		tx := ParsedTransaction{
			Date:        date,
			Amount:      amount,
			Description: desc,
			Reference:   cell(row, refIdx),
		}
		if bal, ok := parseAmount(cell(row, balanceIdx)); ok {
			tx.Balance = &bal
		}
		results = append(results, tx)
	}

	return results, nil
}

// ParseFile parses the statement at path for the given bank.
func ParseFile(path string, bank model.BankCode) ([]ParsedTransaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()
	return Parse(f, bank)
}

// Period returns the earliest and latest dates covered by the rows.
func Period(txs []ParsedTransaction) (start, end time.Time) {
	for _, tx := range txs {
		if start.IsZero() || tx.Date.Before(start) {
			start = tx.Date
		}
		if end.IsZero() || tx.Date.After(end) {
			end = tx.Date
		}
	}
	return start, end
}

func normalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(h)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func findColumn(header []string, candidates []string) int {
	for _, c := range candidates {
		for i, h := range header {
			if h == c {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseDate(s string) (time.Time, bool) {
	clean := strings.Trim(s, `'"`)
	if clean == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if t, err := time.ParseInLocation(layout, clean, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseAmount strips currency symbols and thousands separators before
// parsing, e.g. "R 1,234.56" -> 1234.56.
func parseAmount(s string) (decimal.Decimal, bool) {
	clean := strings.NewReplacer(",", "", " ", "", "R", "", `"`, "", "'", "").Replace(s)
	if clean == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

func joinDescriptions(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " | ")
}
