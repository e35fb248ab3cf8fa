package statement

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThaboMollo/Julius/internal/model"
)

func TestParseFNB(t *testing.T) {
	csv := strings.Join([]string{
		"Date,Amount,Description1,Description2,Balance",
		`"5 Mar 2024","-150.00","CHECKERS","CARD 1234","12,345.67"`,
		`"25 Mar 2024","25000.00","SALARY",,"37,195.67"`,
	}, "\n")

	txs, err := Parse(strings.NewReader(csv), model.BankFNB)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, 5, txs[0].Date.Day())
	assert.Equal(t, time.March, txs[0].Date.Month())
	assert.True(t, txs[0].Amount.Equal(decimal.NewFromFloat(-150.00)))
	assert.Equal(t, "CHECKERS | CARD 1234", txs[0].Description)
	require.NotNil(t, txs[0].Balance)
	assert.True(t, txs[0].Balance.Equal(decimal.NewFromFloat(12345.67)))

	assert.True(t, txs[1].Amount.Equal(decimal.NewFromInt(25000)))
	assert.Equal(t, "SALARY", txs[1].Description)
}

func TestParseDebitCreditColumns(t *testing.T) {
	csv := strings.Join([]string{
		"Transaction Date,Debit Amount,Credit Amount,Description,Reference",
		"2024/03/05,150.00,,WOOLWORTHS,REF001",
		"2024/03/25,,25000.00,SALARY,REF002",
	}, "\n")

	txs, err := Parse(strings.NewReader(csv), model.BankStandardBank)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.True(t, txs[0].Amount.Equal(decimal.NewFromInt(-150)), "debit comes out negative")
	assert.Equal(t, "REF001", txs[0].Reference)
	assert.True(t, txs[1].Amount.Equal(decimal.NewFromInt(25000)), "credit comes out positive")
}

func TestParseCurrencySymbolAndSpaces(t *testing.T) {
	csv := strings.Join([]string{
		"Date,Amount,Description",
		"2024-03-05,R 1 234.56,DEPOSIT",
	}, "\n")

	txs, err := Parse(strings.NewReader(csv), model.BankDiscovery)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.True(t, txs[0].Amount.Equal(decimal.NewFromFloat(1234.56)))
}

func TestParseSkipsBadRows(t *testing.T) {
	csv := strings.Join([]string{
		"Date,Amount,Description",
		"not a date,100.00,JUNK",
		"2024-03-05,not a number,JUNK",
		"2024-03-06,-75.00,GOOD ROW",
	}, "\n")

	txs, err := Parse(strings.NewReader(csv), model.BankCapitec)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "GOOD ROW", txs[0].Description)
}

func TestParseMissingDescription(t *testing.T) {
	csv := strings.Join([]string{
		"Date,Amount,Description",
		"2024-03-05,-75.00,",
	}, "\n")

	txs, err := Parse(strings.NewReader(csv), model.BankABSA)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Unknown", txs[0].Description)
}

func TestParseUnknownBank(t *testing.T) {
	_, err := Parse(strings.NewReader("Date,Amount\n"), model.BankCode("nedbank"))
	assert.Error(t, err)
}

func TestParseUnrecognizableColumns(t *testing.T) {
	csv := "Foo,Bar\n1,2\n"
	_, err := Parse(strings.NewReader(csv), model.BankFNB)
	assert.Error(t, err)
}

func TestParseEmptyStatement(t *testing.T) {
	txs, err := Parse(strings.NewReader("Date,Amount,Description\n"), model.BankFNB)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestPeriod(t *testing.T) {
	txs := []ParsedTransaction{
		{Date: time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)},
		{Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.Local)},
		{Date: time.Date(2024, 3, 28, 0, 0, 0, 0, time.Local)},
	}
	start, end := Period(txs)
	assert.Equal(t, 2, start.Day())
	assert.Equal(t, 28, end.Day())
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "transactiondate", normalizeHeader(" Transaction Date "))
	assert.Equal(t, "description1", normalizeHeader("Description 1"))
	assert.Equal(t, "debitamount", normalizeHeader("Debit_Amount"))
}
