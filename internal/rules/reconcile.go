package rules

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ThaboMollo/Julius/internal/model"
	"github.com/ThaboMollo/Julius/internal/statement"
)

// Match tolerances: a bank row and a recorded transaction pair up when their
// dates are within two days and their amounts within five currency units.
var amountTolerance = decimal.NewFromInt(5)

const dateToleranceDays = 2

// ReconciliationResult splits a statement against recorded transactions.
// Unmatched bank credits are dropped; only unmatched debits surface as
// missing.
type ReconciliationResult struct {
	Matched           []statement.ParsedTransaction
	MissingFromJulius []statement.ParsedTransaction
	InJuliusNotInBank []model.Transaction
}

// Reconcile greedily pairs bank rows with recorded transactions one-to-one.
// Bank rows are taken in input order and the first satisfying recorded
// transaction wins, so the result depends on ordering. That mirrors how
// matches are confirmed interactively; it is not an optimal assignment.
func Reconcile(bank []statement.ParsedTransaction, recorded []model.Transaction) ReconciliationResult {
	matchedBank := make(map[int]bool)
	matchedRecorded := make(map[uuid.UUID]bool)

	var matched []statement.ParsedTransaction
	for bi, b := range bank {
		bankAbs := b.Amount.Abs()
		for _, r := range recorded {
			if matchedRecorded[r.ID] {
				continue
			}
			dayDiff := wholeDaysBetween(r.Date, b.Date)
			if dayDiff < 0 {
				dayDiff = -dayDiff
			}
			if dayDiff > dateToleranceDays {
				continue
			}
			if bankAbs.Sub(r.Amount).Abs().GreaterThan(amountTolerance) {
				continue
			}

			matched = append(matched, b)
			matchedBank[bi] = true
			matchedRecorded[r.ID] = true
			break
		}
	}

	var missing []statement.ParsedTransaction
	for bi, b := range bank {
		if !matchedBank[bi] && b.Amount.IsNegative() {
			missing = append(missing, b)
		}
	}

	var unrecorded []model.Transaction
	for _, r := range recorded {
		if !matchedRecorded[r.ID] {
			unrecorded = append(unrecorded, r)
		}
	}

	return ReconciliationResult{
		Matched:           matched,
		MissingFromJulius: missing,
		InJuliusNotInBank: unrecorded,
	}
}
