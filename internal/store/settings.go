package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ThaboMollo/Julius/internal/model"
)

// GetSettings returns the single settings row (seeded on first open).
func (s *Store) GetSettings() (model.Settings, error) {
	var st model.Settings
	var id, updatedAt string
	var income sql.NullString
	err := s.db.QueryRow(`SELECT id, payday_day_of_month, expected_monthly_income, updated_at
		FROM settings LIMIT 1`).Scan(&id, &st.PaydayDayOfMonth, &income, &updatedAt)
	if err != nil {
		return model.Settings{}, err
	}
	if st.ID, err = uuid.Parse(id); err != nil {
		return model.Settings{}, err
	}
	if st.ExpectedMonthlyIncome, err = parseNullDecimal(income); err != nil {
		return model.Settings{}, err
	}
	st.UpdatedAt = parseTime(updatedAt)
	return st, nil
}

// UpdateSettings saves the payday day and expected income.
func (s *Store) UpdateSettings(paydayDay int, income *decimal.Decimal) error {
	_, err := s.db.Exec(`UPDATE settings SET payday_day_of_month = ?, expected_monthly_income = ?, updated_at = ?`,
		paydayDay, fmtNullDecimal(income), fmtTime(time.Now()))
	return err
}

// ExpectedIncomeFor resolves the income in effect for a month: the
// month-level override when set, otherwise the settings-level income,
// otherwise nil. The nil result switches RemainingUntilPayday to its
// budget-based view.
func (s *Store) ExpectedIncomeFor(month model.BudgetMonth) (*decimal.Decimal, error) {
	if month.ExpectedIncome != nil {
		return month.ExpectedIncome, nil
	}
	settings, err := s.GetSettings()
	if err != nil {
		return nil, err
	}
	return settings.ExpectedMonthlyIncome, nil
}
