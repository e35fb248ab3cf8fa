package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ThaboMollo/Julius/internal/model"
)

// CreateTemplate inserts a recurring template.
func (s *Store) CreateTemplate(tpl model.RecurringTemplate) (model.RecurringTemplate, error) {
	if tpl.DueDayOfMonth != nil && (*tpl.DueDayOfMonth < 1 || *tpl.DueDayOfMonth > 31) {
		return model.RecurringTemplate{}, fmt.Errorf("due day %d out of range", *tpl.DueDayOfMonth)
	}
	tpl.ID = uuid.New()
	tpl.CreatedAt = time.Now()
	tpl.UpdatedAt = tpl.CreatedAt

	var dueDay sql.NullInt64
	if tpl.DueDayOfMonth != nil {
		dueDay = sql.NullInt64{Int64: int64(*tpl.DueDayOfMonth), Valid: true}
	}
	_, err := s.db.Exec(`INSERT INTO recurring_templates
		(id, group_id, category_id, name, planned_amount, multiplier, split_ratio,
		 is_bill, due_day_of_month, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tpl.ID.String(), tpl.GroupID.String(), tpl.CategoryID.String(), tpl.Name,
		tpl.PlannedAmount.String(), tpl.Multiplier, tpl.SplitRatio.String(),
		boolInt(tpl.IsBill), dueDay, boolInt(tpl.IsActive),
		fmtTime(tpl.CreatedAt), fmtTime(tpl.UpdatedAt),
	)
	if err != nil {
		return model.RecurringTemplate{}, err
	}
	return tpl, nil
}

// ListActiveTemplates returns active templates in name order.
func (s *Store) ListActiveTemplates() ([]model.RecurringTemplate, error) {
	rows, err := s.db.Query(`SELECT id, group_id, category_id, name, planned_amount,
		multiplier, split_ratio, is_bill, due_day_of_month, is_active, created_at, updated_at
		FROM recurring_templates WHERE is_active = 1 ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var templates []model.RecurringTemplate
	for rows.Next() {
		var tpl model.RecurringTemplate
		var id, groupID, categoryID, planned, ratio, createdAt, updatedAt string
		var dueDay sql.NullInt64
		var isBill, isActive int
		err := rows.Scan(&id, &groupID, &categoryID, &tpl.Name, &planned,
			&tpl.Multiplier, &ratio, &isBill, &dueDay, &isActive, &createdAt, &updatedAt)
		if err != nil {
			return nil, err
		}
		if tpl.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if tpl.GroupID, err = uuid.Parse(groupID); err != nil {
			return nil, err
		}
		if tpl.CategoryID, err = uuid.Parse(categoryID); err != nil {
			return nil, err
		}
		if tpl.PlannedAmount, err = parseDecimal(planned); err != nil {
			return nil, err
		}
		if tpl.SplitRatio, err = parseDecimal(ratio); err != nil {
			return nil, err
		}
		tpl.IsBill = isBill != 0
		tpl.IsActive = isActive != 0
		if dueDay.Valid {
			d := int(dueDay.Int64)
			tpl.DueDayOfMonth = &d
		}
		tpl.CreatedAt = parseTime(createdAt)
		tpl.UpdatedAt = parseTime(updatedAt)
		templates = append(templates, tpl)
	}
	return templates, rows.Err()
}

// ApplyTemplates instantiates every active template into the month, skipping
// templates that already produced an item there. Bill due days are clamped
// into the month the same way payday is.
func (s *Store) ApplyTemplates(month model.BudgetMonth) (int, error) {
	templates, err := s.ListActiveTemplates()
	if err != nil {
		return 0, err
	}
	existing, err := s.ListItemsByMonth(month.ID)
	if err != nil {
		return 0, err
	}
	applied := make(map[uuid.UUID]bool)
	for _, item := range existing {
		if item.TemplateID != nil {
			applied[*item.TemplateID] = true
		}
	}

	created := 0
	for _, tpl := range templates {
		if applied[tpl.ID] {
			continue
		}
		tplID := tpl.ID
		item := model.BudgetItem{
			BudgetMonthID:  month.ID,
			GroupID:        tpl.GroupID,
			CategoryID:     tpl.CategoryID,
			Name:           tpl.Name,
			PlannedAmount:  tpl.PlannedAmount,
			Multiplier:     tpl.Multiplier,
			SplitRatio:     tpl.SplitRatio,
			IsBill:         tpl.IsBill,
			IsFromTemplate: true,
			TemplateID:     &tplID,
		}
		if tpl.IsBill && tpl.DueDayOfMonth != nil {
			due := clampedDate(month.Year, month.Month, *tpl.DueDayOfMonth)
			item.DueDate = &due
		}
		if _, err := s.CreateItem(item); err != nil {
			return created, fmt.Errorf("applying template %q: %w", tpl.Name, err)
		}
		created++
	}
	return created, nil
}

// DeactivateTemplate stops a template from applying to future months.
func (s *Store) DeactivateTemplate(id uuid.UUID) error {
	res, err := s.db.Exec("UPDATE recurring_templates SET is_active = 0, updated_at = ? WHERE id = ?",
		fmtTime(time.Now()), id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// clampedDate pins a day-of-month inside the month, e.g. day 31 in April
// becomes April 30.
func clampedDate(year, month, day int) time.Time {
	last := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.Local).Day()
	if day > last {
		day = last
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
}
