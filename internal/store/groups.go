package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/ThaboMollo/Julius/internal/model"
)

// CreateGroup inserts a new budget group.
func (s *Store) CreateGroup(name string, sortOrder int) (model.BudgetGroup, error) {
	g := model.BudgetGroup{
		ID:        uuid.New(),
		Name:      name,
		SortOrder: sortOrder,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	_, err := s.db.Exec(`INSERT INTO budget_groups
		(id, name, sort_order, is_default, is_active, created_at, updated_at)
		VALUES (?, ?, ?, 0, 1, ?, ?)`,
		g.ID.String(), g.Name, g.SortOrder, fmtTime(g.CreatedAt), fmtTime(g.UpdatedAt),
	)
	if err != nil {
		return model.BudgetGroup{}, err
	}
	return g, nil
}

// ListGroups returns all groups, active and inactive, in sort order.
func (s *Store) ListGroups() ([]model.BudgetGroup, error) {
	rows, err := s.db.Query(`SELECT id, name, sort_order, is_default, is_active, created_at, updated_at
		FROM budget_groups ORDER BY sort_order, name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var groups []model.BudgetGroup
	for rows.Next() {
		var g model.BudgetGroup
		var id, createdAt, updatedAt string
		var isDefault, isActive int
		if err := rows.Scan(&id, &g.Name, &g.SortOrder, &isDefault, &isActive, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if g.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		g.IsDefault = isDefault != 0
		g.IsActive = isActive != 0
		g.CreatedAt = parseTime(createdAt)
		g.UpdatedAt = parseTime(updatedAt)
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// DeleteGroup hard-deletes a group. Returns ErrReferenced when categories,
// items, or templates still point at it.
func (s *Store) DeleteGroup(id uuid.UUID) error {
	var refs int
	err := s.db.QueryRow(`SELECT
		(SELECT COUNT(*) FROM categories WHERE group_id = ?1) +
		(SELECT COUNT(*) FROM budget_items WHERE group_id = ?1) +
		(SELECT COUNT(*) FROM recurring_templates WHERE group_id = ?1)`,
		id.String(),
	).Scan(&refs)
	if err != nil {
		return err
	}
	if refs > 0 {
		return ErrReferenced
	}
	res, err := s.db.Exec("DELETE FROM budget_groups WHERE id = ?", id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeactivateGroup soft-deletes a group, the fallback when DeleteGroup
// reports references.
func (s *Store) DeactivateGroup(id uuid.UUID) error {
	res, err := s.db.Exec("UPDATE budget_groups SET is_active = 0, updated_at = ? WHERE id = ?",
		fmtTime(time.Now()), id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateCategory inserts a new category under a group.
func (s *Store) CreateCategory(name string, groupID uuid.UUID) (model.Category, error) {
	c := model.Category{
		ID:        uuid.New(),
		Name:      name,
		GroupID:   groupID,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	_, err := s.db.Exec(`INSERT INTO categories
		(id, name, group_id, is_default, is_active, created_at, updated_at)
		VALUES (?, ?, ?, 0, 1, ?, ?)`,
		c.ID.String(), c.Name, c.GroupID.String(), fmtTime(c.CreatedAt), fmtTime(c.UpdatedAt),
	)
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}

// ListCategories returns all categories ordered by name.
func (s *Store) ListCategories() ([]model.Category, error) {
	rows, err := s.db.Query(`SELECT id, name, group_id, is_default, is_active, created_at, updated_at
		FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		var id, groupID, createdAt, updatedAt string
		var isDefault, isActive int
		if err := rows.Scan(&id, &c.Name, &groupID, &isDefault, &isActive, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if c.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if c.GroupID, err = uuid.Parse(groupID); err != nil {
			return nil, err
		}
		c.IsDefault = isDefault != 0
		c.IsActive = isActive != 0
		c.CreatedAt = parseTime(createdAt)
		c.UpdatedAt = parseTime(updatedAt)
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// FindCategoryByName returns the first category matching name exactly.
func (s *Store) FindCategoryByName(name string) (model.Category, error) {
	categories, err := s.ListCategories()
	if err != nil {
		return model.Category{}, err
	}
	for _, c := range categories {
		if c.Name == name {
			return c, nil
		}
	}
	return model.Category{}, ErrNotFound
}

// DeleteCategory hard-deletes a category. Returns ErrReferenced when items,
// transactions, or templates still point at it.
func (s *Store) DeleteCategory(id uuid.UUID) error {
	var refs int
	err := s.db.QueryRow(`SELECT
		(SELECT COUNT(*) FROM budget_items WHERE category_id = ?1) +
		(SELECT COUNT(*) FROM transactions WHERE category_id = ?1) +
		(SELECT COUNT(*) FROM recurring_templates WHERE category_id = ?1)`,
		id.String(),
	).Scan(&refs)
	if err != nil {
		return err
	}
	if refs > 0 {
		return ErrReferenced
	}
	res, err := s.db.Exec("DELETE FROM categories WHERE id = ?", id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeactivateCategory soft-deletes a category.
func (s *Store) DeactivateCategory(id uuid.UUID) error {
	res, err := s.db.Exec("UPDATE categories SET is_active = 0, updated_at = ? WHERE id = ?",
		fmtTime(time.Now()), id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
