package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/ThaboMollo/Julius/internal/model"
)

// CreateScenario inserts a named what-if scenario.
func (s *Store) CreateScenario(name, description string) (model.PurchaseScenario, error) {
	sc := model.PurchaseScenario{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	_, err := s.db.Exec(`INSERT INTO purchase_scenarios
		(id, name, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		sc.ID.String(), sc.Name, sc.Description, fmtTime(sc.CreatedAt), fmtTime(sc.UpdatedAt),
	)
	if err != nil {
		return model.PurchaseScenario{}, err
	}
	return sc, nil
}

// ListScenarios returns all scenarios, newest first.
func (s *Store) ListScenarios() ([]model.PurchaseScenario, error) {
	rows, err := s.db.Query(`SELECT id, name, description, created_at, updated_at
		FROM purchase_scenarios ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var scenarios []model.PurchaseScenario
	for rows.Next() {
		var sc model.PurchaseScenario
		var id, createdAt, updatedAt string
		if err := rows.Scan(&id, &sc.Name, &sc.Description, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if sc.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		sc.CreatedAt = parseTime(createdAt)
		sc.UpdatedAt = parseTime(updatedAt)
		scenarios = append(scenarios, sc)
	}
	return scenarios, rows.Err()
}

// FindScenarioByName returns the scenario matching name exactly.
func (s *Store) FindScenarioByName(name string) (model.PurchaseScenario, error) {
	scenarios, err := s.ListScenarios()
	if err != nil {
		return model.PurchaseScenario{}, err
	}
	for _, sc := range scenarios {
		if sc.Name == name {
			return sc, nil
		}
	}
	return model.PurchaseScenario{}, ErrNotFound
}

// DeleteScenario removes a scenario; its expense lines cascade.
func (s *Store) DeleteScenario(id uuid.UUID) error {
	res, err := s.db.Exec("DELETE FROM purchase_scenarios WHERE id = ?", id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// AddScenarioExpense appends a monthly cost line to a scenario.
func (s *Store) AddScenarioExpense(scenarioID uuid.UUID, name string, amount string, sortOrder int) (model.ScenarioExpense, error) {
	monthly, err := parseDecimal(amount)
	if err != nil {
		return model.ScenarioExpense{}, err
	}
	exp := model.ScenarioExpense{
		ID:            uuid.New(),
		ScenarioID:    scenarioID,
		Name:          name,
		MonthlyAmount: monthly,
		SortOrder:     sortOrder,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	_, err = s.db.Exec(`INSERT INTO scenario_expenses
		(id, scenario_id, name, monthly_amount, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		exp.ID.String(), exp.ScenarioID.String(), exp.Name, exp.MonthlyAmount.String(),
		exp.SortOrder, fmtTime(exp.CreatedAt), fmtTime(exp.UpdatedAt),
	)
	if err != nil {
		return model.ScenarioExpense{}, err
	}
	return exp, nil
}

// ListScenarioExpenses returns a scenario's cost lines in sort order.
func (s *Store) ListScenarioExpenses(scenarioID uuid.UUID) ([]model.ScenarioExpense, error) {
	rows, err := s.db.Query(`SELECT id, scenario_id, name, monthly_amount, sort_order, created_at, updated_at
		FROM scenario_expenses WHERE scenario_id = ? ORDER BY sort_order, created_at`,
		scenarioID.String())
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var expenses []model.ScenarioExpense
	for rows.Next() {
		var exp model.ScenarioExpense
		var id, scID, amount, createdAt, updatedAt string
		if err := rows.Scan(&id, &scID, &exp.Name, &amount, &exp.SortOrder, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if exp.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if exp.ScenarioID, err = uuid.Parse(scID); err != nil {
			return nil, err
		}
		if exp.MonthlyAmount, err = parseDecimal(amount); err != nil {
			return nil, err
		}
		exp.CreatedAt = parseTime(createdAt)
		exp.UpdatedAt = parseTime(updatedAt)
		expenses = append(expenses, exp)
	}
	return expenses, rows.Err()
}
