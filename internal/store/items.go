package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ThaboMollo/Julius/internal/model"
)

// CreateItem validates and inserts a budget item.
func (s *Store) CreateItem(item model.BudgetItem) (model.BudgetItem, error) {
	if err := item.Validate(); err != nil {
		return model.BudgetItem{}, fmt.Errorf("invalid budget item: %w", err)
	}
	item.ID = uuid.New()
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt

	_, err := s.db.Exec(`INSERT INTO budget_items
		(id, budget_month_id, group_id, category_id, name, planned_amount,
		 multiplier, split_ratio, is_bill, due_date, is_from_template, template_id,
		 created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID.String(), item.BudgetMonthID.String(), item.GroupID.String(), item.CategoryID.String(),
		item.Name, item.PlannedAmount.String(), item.Multiplier, item.SplitRatio.String(),
		boolInt(item.IsBill), fmtNullTime(item.DueDate), boolInt(item.IsFromTemplate),
		fmtNullUUID(item.TemplateID), fmtTime(item.CreatedAt), fmtTime(item.UpdatedAt),
	)
	if err != nil {
		return model.BudgetItem{}, err
	}
	return item, nil
}

// UpdateItem validates and rewrites the editable fields of an item.
func (s *Store) UpdateItem(item model.BudgetItem) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("invalid budget item: %w", err)
	}
	res, err := s.db.Exec(`UPDATE budget_items SET
		name = ?, planned_amount = ?, multiplier = ?, split_ratio = ?,
		is_bill = ?, due_date = ?, group_id = ?, category_id = ?, updated_at = ?
		WHERE id = ?`,
		item.Name, item.PlannedAmount.String(), item.Multiplier, item.SplitRatio.String(),
		boolInt(item.IsBill), fmtNullTime(item.DueDate), item.GroupID.String(),
		item.CategoryID.String(), fmtTime(time.Now()), item.ID.String(),
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListItemsByMonth returns the month's items in insertion order.
func (s *Store) ListItemsByMonth(monthID uuid.UUID) ([]model.BudgetItem, error) {
	rows, err := s.db.Query(`SELECT id, budget_month_id, group_id, category_id, name,
		planned_amount, multiplier, split_ratio, is_bill, due_date,
		is_from_template, template_id, created_at, updated_at
		FROM budget_items WHERE budget_month_id = ? ORDER BY created_at, id`,
		monthID.String())
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []model.BudgetItem
	for rows.Next() {
		var item model.BudgetItem
		var id, monthIDStr, groupID, categoryID, planned, ratio, createdAt, updatedAt string
		var dueDate, templateID sql.NullString
		var isBill, fromTemplate int
		err := rows.Scan(&id, &monthIDStr, &groupID, &categoryID, &item.Name,
			&planned, &item.Multiplier, &ratio, &isBill, &dueDate,
			&fromTemplate, &templateID, &createdAt, &updatedAt)
		if err != nil {
			return nil, err
		}
		if item.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if item.BudgetMonthID, err = uuid.Parse(monthIDStr); err != nil {
			return nil, err
		}
		if item.GroupID, err = uuid.Parse(groupID); err != nil {
			return nil, err
		}
		if item.CategoryID, err = uuid.Parse(categoryID); err != nil {
			return nil, err
		}
		if item.PlannedAmount, err = parseDecimal(planned); err != nil {
			return nil, err
		}
		if item.SplitRatio, err = parseDecimal(ratio); err != nil {
			return nil, err
		}
		item.IsBill = isBill != 0
		item.IsFromTemplate = fromTemplate != 0
		item.DueDate = parseNullTime(dueDate)
		if item.TemplateID, err = parseNullUUID(templateID); err != nil {
			return nil, err
		}
		item.CreatedAt = parseTime(createdAt)
		item.UpdatedAt = parseTime(updatedAt)
		items = append(items, item)
	}
	return items, rows.Err()
}

// DeleteItem removes an item. Linked transactions keep their category but
// lose the item link, preserving them as unbudgeted spend.
func (s *Store) DeleteItem(id uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("UPDATE transactions SET budget_item_id = NULL, updated_at = ? WHERE budget_item_id = ?",
		fmtTime(time.Now()), id.String()); err != nil {
		return err
	}
	res, err := tx.Exec("DELETE FROM budget_items WHERE id = ?", id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}
