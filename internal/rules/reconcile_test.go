package rules

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ThaboMollo/Julius/internal/model"
	"github.com/ThaboMollo/Julius/internal/statement"
)

func bankTx(t *testing.T, date time.Time, amount, desc string) statement.ParsedTransaction {
	t.Helper()
	return statement.ParsedTransaction{Date: date, Amount: dec(t, amount), Description: desc}
}

func recordedTx(t *testing.T, date time.Time, amount string) model.Transaction {
	t.Helper()
	return model.Transaction{ID: uuid.New(), Date: date, Amount: dec(t, amount)}
}

func TestReconcile_MatchesWithinTolerance(t *testing.T) {
	bank := []statement.ParsedTransaction{
		bankTx(t, day(2024, time.March, 10), "-150", "POS purchase"),
	}
	recorded := []model.Transaction{
		recordedTx(t, day(2024, time.March, 11), "150"),
	}

	result := Reconcile(bank, recorded)
	if len(result.Matched) != 1 {
		t.Fatalf("matched = %d, want 1 (1 day apart, exact amount)", len(result.Matched))
	}
	if len(result.MissingFromJulius) != 0 || len(result.InJuliusNotInBank) != 0 {
		t.Fatalf("unexpected leftovers: missing=%d unrecorded=%d",
			len(result.MissingFromJulius), len(result.InJuliusNotInBank))
	}
}

func TestReconcile_AmountOutsideTolerance(t *testing.T) {
	bank := []statement.ParsedTransaction{
		bankTx(t, day(2024, time.March, 10), "-150", "POS purchase"),
	}
	recorded := []model.Transaction{
		recordedTx(t, day(2024, time.March, 11), "160"), // diff 10 > 5
	}

	result := Reconcile(bank, recorded)
	if len(result.Matched) != 0 {
		t.Fatal("matched despite amount outside tolerance")
	}
	if len(result.MissingFromJulius) != 1 {
		t.Fatalf("missing = %d, want 1 (unmatched debit)", len(result.MissingFromJulius))
	}
	if len(result.InJuliusNotInBank) != 1 {
		t.Fatalf("unrecorded = %d, want 1", len(result.InJuliusNotInBank))
	}
}

func TestReconcile_DateOutsideTolerance(t *testing.T) {
	bank := []statement.ParsedTransaction{
		bankTx(t, day(2024, time.March, 10), "-150", "POS purchase"),
	}
	recorded := []model.Transaction{
		recordedTx(t, day(2024, time.March, 13), "150"), // 3 days > 2
	}

	if result := Reconcile(bank, recorded); len(result.Matched) != 0 {
		t.Fatal("matched despite date outside tolerance")
	}
}

func TestReconcile_GreedyOneToOne(t *testing.T) {
	// Two bank rows close to one recorded transaction: the first bank row
	// consumes it, the second goes unmatched. No backtracking.
	bank := []statement.ParsedTransaction{
		bankTx(t, day(2024, time.March, 10), "-100", "first"),
		bankTx(t, day(2024, time.March, 10), "-100", "second"),
	}
	recorded := []model.Transaction{
		recordedTx(t, day(2024, time.March, 10), "100"),
	}

	result := Reconcile(bank, recorded)
	if len(result.Matched) != 1 || result.Matched[0].Description != "first" {
		t.Fatalf("matched = %+v, want only the first bank row", result.Matched)
	}
	if len(result.MissingFromJulius) != 1 || result.MissingFromJulius[0].Description != "second" {
		t.Fatalf("missing = %+v, want the second bank row", result.MissingFromJulius)
	}
}

func TestReconcile_FirstRecordedWins(t *testing.T) {
	// Both recorded transactions satisfy the tolerances; recorded-list order
	// decides, not closeness of amount.
	bank := []statement.ParsedTransaction{
		bankTx(t, day(2024, time.March, 10), "-100", "bank"),
	}
	further := recordedTx(t, day(2024, time.March, 11), "104")
	exact := recordedTx(t, day(2024, time.March, 10), "100")
	recorded := []model.Transaction{further, exact}

	result := Reconcile(bank, recorded)
	if len(result.InJuliusNotInBank) != 1 || result.InJuliusNotInBank[0].ID != exact.ID {
		t.Fatal("greedy match should consume the first satisfying recorded transaction")
	}
}

func TestReconcile_UnmatchedCreditsDropped(t *testing.T) {
	bank := []statement.ParsedTransaction{
		bankTx(t, day(2024, time.March, 10), "5000", "salary"), // credit, no match
		bankTx(t, day(2024, time.March, 12), "-75", "groceries"),
	}

	result := Reconcile(bank, nil)
	if len(result.MissingFromJulius) != 1 {
		t.Fatalf("missing = %d, want 1 (credits are not surfaced)", len(result.MissingFromJulius))
	}
	if result.MissingFromJulius[0].Description != "groceries" {
		t.Fatalf("missing row = %q, want groceries", result.MissingFromJulius[0].Description)
	}
}

func TestReconcile_BankAmountSignIgnoredForMatching(t *testing.T) {
	// Bank debits are negative, recorded expenses positive; matching uses
	// the absolute bank amount.
	bank := []statement.ParsedTransaction{
		bankTx(t, day(2024, time.March, 10), "-203", "debit order"),
	}
	recorded := []model.Transaction{
		recordedTx(t, day(2024, time.March, 9), "200"), // |203 - 200| = 3 <= 5
	}

	if result := Reconcile(bank, recorded); len(result.Matched) != 1 {
		t.Fatal("expected match within amount tolerance on absolute value")
	}
}
