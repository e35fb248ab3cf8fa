package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/ThaboMollo/Julius/internal/model"
)

// CreateTransaction inserts a recorded spend.
func (s *Store) CreateTransaction(tx model.Transaction) (model.Transaction, error) {
	tx.ID = uuid.New()
	tx.CreatedAt = time.Now()
	tx.UpdatedAt = tx.CreatedAt

	_, err := s.db.Exec(`INSERT INTO transactions
		(id, budget_month_id, category_id, budget_item_id, amount, date, note, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID.String(), tx.BudgetMonthID.String(), tx.CategoryID.String(),
		fmtNullUUID(tx.BudgetItemID), tx.Amount.String(), fmtTime(tx.Date),
		tx.Note, fmtTime(tx.CreatedAt), fmtTime(tx.UpdatedAt),
	)
	if err != nil {
		return model.Transaction{}, err
	}
	return tx, nil
}

// ListTransactionsByMonth returns the month's transactions in date order.
func (s *Store) ListTransactionsByMonth(monthID uuid.UUID) ([]model.Transaction, error) {
	return s.queryTransactions(`SELECT id, budget_month_id, category_id, budget_item_id,
		amount, date, note, created_at, updated_at
		FROM transactions WHERE budget_month_id = ? ORDER BY date, created_at`,
		monthID.String())
}

// ListTransactionsByDateRange returns transactions with date in [from, to].
func (s *Store) ListTransactionsByDateRange(from, to time.Time) ([]model.Transaction, error) {
	return s.queryTransactions(`SELECT id, budget_month_id, category_id, budget_item_id,
		amount, date, note, created_at, updated_at
		FROM transactions WHERE date >= ? AND date <= ? ORDER BY date, created_at`,
		fmtTime(from), fmtTime(to))
}

func (s *Store) queryTransactions(query string, args ...any) ([]model.Transaction, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var txs []model.Transaction
	for rows.Next() {
		var tx model.Transaction
		var id, monthID, categoryID, amount, date, createdAt, updatedAt string
		var itemID sql.NullString
		err := rows.Scan(&id, &monthID, &categoryID, &itemID, &amount, &date,
			&tx.Note, &createdAt, &updatedAt)
		if err != nil {
			return nil, err
		}
		if tx.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if tx.BudgetMonthID, err = uuid.Parse(monthID); err != nil {
			return nil, err
		}
		if tx.CategoryID, err = uuid.Parse(categoryID); err != nil {
			return nil, err
		}
		if tx.BudgetItemID, err = parseNullUUID(itemID); err != nil {
			return nil, err
		}
		if tx.Amount, err = parseDecimal(amount); err != nil {
			return nil, err
		}
		tx.Date = parseTime(date)
		tx.CreatedAt = parseTime(createdAt)
		tx.UpdatedAt = parseTime(updatedAt)
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// DeleteTransaction removes a recorded spend.
func (s *Store) DeleteTransaction(id uuid.UUID) error {
	res, err := s.db.Exec("DELETE FROM transactions WHERE id = ?", id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
