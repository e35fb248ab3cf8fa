package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ThaboMollo/Julius/internal/model"
)

// CreateMonth inserts a budget month. The month key is unique; creating an
// existing month fails at the database level.
func (s *Store) CreateMonth(year, month int) (model.BudgetMonth, error) {
	m := model.BudgetMonth{
		ID:        uuid.New(),
		Year:      year,
		Month:     month,
		MonthKey:  model.MonthKey(year, month),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	_, err := s.db.Exec(`INSERT INTO budget_months
		(id, year, month, month_key, expected_income, created_at, updated_at)
		VALUES (?, ?, ?, ?, NULL, ?, ?)`,
		m.ID.String(), m.Year, m.Month, m.MonthKey, fmtTime(m.CreatedAt), fmtTime(m.UpdatedAt),
	)
	if err != nil {
		return model.BudgetMonth{}, err
	}
	return m, nil
}

// GetMonth looks a month up by (year, month).
func (s *Store) GetMonth(year, month int) (model.BudgetMonth, error) {
	return s.scanMonth(s.db.QueryRow(`SELECT id, year, month, month_key, expected_income, created_at, updated_at
		FROM budget_months WHERE month_key = ?`, model.MonthKey(year, month)))
}

// GetOrCreateMonth fetches the month, creating it when absent.
func (s *Store) GetOrCreateMonth(year, month int) (model.BudgetMonth, error) {
	m, err := s.GetMonth(year, month)
	if errors.Is(err, ErrNotFound) {
		return s.CreateMonth(year, month)
	}
	return m, err
}

// ListMonths returns all months, most recent first.
func (s *Store) ListMonths() ([]model.BudgetMonth, error) {
	rows, err := s.db.Query(`SELECT id, year, month, month_key, expected_income, created_at, updated_at
		FROM budget_months ORDER BY month_key DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var months []model.BudgetMonth
	for rows.Next() {
		m, err := s.scanMonthRow(rows)
		if err != nil {
			return nil, err
		}
		months = append(months, m)
	}
	return months, rows.Err()
}

// RecentMonths returns up to n months strictly before the given key, most
// recent first. Used as the affordability history window.
func (s *Store) RecentMonths(beforeKey string, n int) ([]model.BudgetMonth, error) {
	rows, err := s.db.Query(`SELECT id, year, month, month_key, expected_income, created_at, updated_at
		FROM budget_months WHERE month_key < ? ORDER BY month_key DESC LIMIT ?`, beforeKey, n)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var months []model.BudgetMonth
	for rows.Next() {
		m, err := s.scanMonthRow(rows)
		if err != nil {
			return nil, err
		}
		months = append(months, m)
	}
	return months, rows.Err()
}

// SetMonthIncome updates the month-specific expected income; nil clears it
// back to the settings-level fallback.
func (s *Store) SetMonthIncome(id uuid.UUID, income *decimal.Decimal) error {
	res, err := s.db.Exec("UPDATE budget_months SET expected_income = ?, updated_at = ? WHERE id = ?",
		fmtNullDecimal(income), fmtTime(time.Now()), id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanMonth(row *sql.Row) (model.BudgetMonth, error) {
	m, err := s.scanMonthRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.BudgetMonth{}, ErrNotFound
	}
	return m, err
}

func (s *Store) scanMonthRow(r rowScanner) (model.BudgetMonth, error) {
	var m model.BudgetMonth
	var id, createdAt, updatedAt string
	var income sql.NullString
	if err := r.Scan(&id, &m.Year, &m.Month, &m.MonthKey, &income, &createdAt, &updatedAt); err != nil {
		return model.BudgetMonth{}, err
	}
	var err error
	if m.ID, err = uuid.Parse(id); err != nil {
		return model.BudgetMonth{}, err
	}
	if m.ExpectedIncome, err = parseNullDecimal(income); err != nil {
		return model.BudgetMonth{}, err
	}
	m.CreatedAt = parseTime(createdAt)
	m.UpdatedAt = parseTime(updatedAt)
	return m, nil
}
