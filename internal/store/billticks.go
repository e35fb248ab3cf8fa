package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/ThaboMollo/Julius/internal/model"
)

// SetBillPaid upserts the tick for (month, item). Marking paid stamps
// paid_at; marking unpaid clears it.
func (s *Store) SetBillPaid(monthID, itemID uuid.UUID, paid bool) error {
	now := time.Now()
	var paidAt *time.Time
	if paid {
		paidAt = &now
	}
	_, err := s.db.Exec(`INSERT INTO bill_ticks
		(id, budget_month_id, budget_item_id, is_paid, paid_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (budget_month_id, budget_item_id) DO UPDATE SET
			is_paid = excluded.is_paid,
			paid_at = excluded.paid_at,
			updated_at = excluded.updated_at`,
		uuid.New().String(), monthID.String(), itemID.String(),
		boolInt(paid), fmtNullTime(paidAt), fmtTime(now), fmtTime(now),
	)
	return err
}

// ListBillTicksByMonth returns all ticks recorded for a month.
func (s *Store) ListBillTicksByMonth(monthID uuid.UUID) ([]model.BillTick, error) {
	rows, err := s.db.Query(`SELECT id, budget_month_id, budget_item_id, is_paid, paid_at, created_at, updated_at
		FROM bill_ticks WHERE budget_month_id = ?`, monthID.String())
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ticks []model.BillTick
	for rows.Next() {
		var tick model.BillTick
		var id, monthIDStr, itemID, createdAt, updatedAt string
		var paidAt sql.NullString
		var isPaid int
		err := rows.Scan(&id, &monthIDStr, &itemID, &isPaid, &paidAt, &createdAt, &updatedAt)
		if err != nil {
			return nil, err
		}
		if tick.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if tick.BudgetMonthID, err = uuid.Parse(monthIDStr); err != nil {
			return nil, err
		}
		if tick.BudgetItemID, err = uuid.Parse(itemID); err != nil {
			return nil, err
		}
		tick.IsPaid = isPaid != 0
		tick.PaidAt = parseNullTime(paidAt)
		tick.CreatedAt = parseTime(createdAt)
		tick.UpdatedAt = parseTime(updatedAt)
		ticks = append(ticks, tick)
	}
	return ticks, rows.Err()
}
