package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/ThaboMollo/Julius/internal/model"
)

var defaultGroups = []struct {
	Name       string
	SortOrder  int
	Categories []string
}{
	{"Needs", 1, []string{
		"Rent", "Utilities", "Groceries", "Transport",
		"Medical", "Insurance", "Phone/Internet",
	}},
	{"Should Die", 2, []string{
		"Eating Out", "Entertainment", "Subscriptions",
		"Shopping", "Personal Care",
	}},
}

// seed inserts the default groups, categories, and settings row on a fresh
// database. Existing databases are left untouched.
func (s *Store) seed() error {
	var groups int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM budget_groups").Scan(&groups); err != nil {
		return err
	}

	now := fmtTime(time.Now())
	if groups == 0 {
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		for _, g := range defaultGroups {
			groupID := uuid.New()
			_, err := tx.Exec(`INSERT INTO budget_groups
				(id, name, sort_order, is_default, is_active, created_at, updated_at)
				VALUES (?, ?, ?, 1, 1, ?, ?)`,
				groupID.String(), g.Name, g.SortOrder, now, now,
			)
			if err != nil {
				return err
			}
			for _, c := range g.Categories {
				_, err := tx.Exec(`INSERT INTO categories
					(id, name, group_id, is_default, is_active, created_at, updated_at)
					VALUES (?, ?, ?, 1, 1, ?, ?)`,
					uuid.New().String(), c, groupID.String(), now, now,
				)
				if err != nil {
					return err
				}
			}
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}

	var settings int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM settings").Scan(&settings); err != nil {
		return err
	}
	if settings == 0 {
		_, err := s.db.Exec(`INSERT INTO settings
			(id, payday_day_of_month, expected_monthly_income, updated_at)
			VALUES (?, ?, NULL, ?)`,
			uuid.New().String(), model.DefaultPaydayDay, now,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
