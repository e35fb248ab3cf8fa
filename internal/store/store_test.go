package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThaboMollo/Julius/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "julius.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func mustDecimal(t *testing.T, v string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(v)
	require.NoError(t, err)
	return d
}

// seedItem adds a Groceries item to the March 2024 month.
func seedItem(t *testing.T, s *Store, name string, planned string, isBill bool, due *time.Time) model.BudgetItem {
	t.Helper()
	cat, err := s.FindCategoryByName("Groceries")
	require.NoError(t, err)

	month, err := s.GetMonth(2024, 3)
	require.NoError(t, err)

	item, err := s.CreateItem(model.BudgetItem{
		BudgetMonthID: month.ID,
		GroupID:       cat.GroupID,
		CategoryID:    cat.ID,
		Name:          name,
		PlannedAmount: mustDecimal(t, planned),
		Multiplier:    1,
		SplitRatio:    decimal.NewFromInt(1),
		IsBill:        isBill,
		DueDate:       due,
	})
	require.NoError(t, err)
	return item
}

func TestSeedDefaults(t *testing.T) {
	s := openTestStore(t)

	groups, err := s.ListGroups()
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Needs", groups[0].Name)
	assert.Equal(t, "Should Die", groups[1].Name)
	assert.True(t, groups[0].IsDefault)

	categories, err := s.ListCategories()
	require.NoError(t, err)
	assert.Len(t, categories, 12)

	settings, err := s.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultPaydayDay, settings.PaydayDayOfMonth)
	assert.Nil(t, settings.ExpectedMonthlyIncome)
}

func TestSeedIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "julius.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	groups, err := s.ListGroups()
	require.NoError(t, err)
	assert.Len(t, groups, 2)
}

func TestMonthLifecycle(t *testing.T) {
	s := openTestStore(t)

	m1, err := s.GetOrCreateMonth(2024, 3)
	require.NoError(t, err)
	assert.Equal(t, "2024-03", m1.MonthKey)

	m2, err := s.GetOrCreateMonth(2024, 3)
	require.NoError(t, err)
	assert.Equal(t, m1.ID, m2.ID)

	_, err = s.CreateMonth(2024, 3)
	assert.Error(t, err, "month key is unique")

	_, err = s.GetMonth(2024, 4)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExpectedIncomeResolution(t *testing.T) {
	s := openTestStore(t)

	month, err := s.GetOrCreateMonth(2024, 3)
	require.NoError(t, err)

	// No income anywhere
	income, err := s.ExpectedIncomeFor(month)
	require.NoError(t, err)
	assert.Nil(t, income)

	// Settings-level fallback
	base := mustDecimal(t, "25000")
	require.NoError(t, s.UpdateSettings(25, &base))
	income, err = s.ExpectedIncomeFor(month)
	require.NoError(t, err)
	require.NotNil(t, income)
	assert.True(t, income.Equal(base))

	// Month override wins
	override := mustDecimal(t, "27500")
	require.NoError(t, s.SetMonthIncome(month.ID, &override))
	month, err = s.GetMonth(2024, 3)
	require.NoError(t, err)
	income, err = s.ExpectedIncomeFor(month)
	require.NoError(t, err)
	require.NotNil(t, income)
	assert.True(t, income.Equal(override))

	// Clearing the override falls back again
	require.NoError(t, s.SetMonthIncome(month.ID, nil))
	month, err = s.GetMonth(2024, 3)
	require.NoError(t, err)
	income, err = s.ExpectedIncomeFor(month)
	require.NoError(t, err)
	require.NotNil(t, income)
	assert.True(t, income.Equal(base))
}

func TestItemValidationRejected(t *testing.T) {
	s := openTestStore(t)
	month, err := s.GetOrCreateMonth(2024, 3)
	require.NoError(t, err)
	cat, err := s.FindCategoryByName("Rent")
	require.NoError(t, err)

	_, err = s.CreateItem(model.BudgetItem{
		BudgetMonthID: month.ID,
		GroupID:       cat.GroupID,
		CategoryID:    cat.ID,
		Name:          "Bad ratio",
		PlannedAmount: mustDecimal(t, "100"),
		Multiplier:    1,
		SplitRatio:    decimal.Zero,
	})
	assert.Error(t, err)
}

func TestItemRoundTrip(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetOrCreateMonth(2024, 3)
	require.NoError(t, err)

	due := time.Date(2024, 3, 20, 0, 0, 0, 0, time.Local)
	created := seedItem(t, s, "Groceries weekly", "1200.50", true, &due)

	month, err := s.GetMonth(2024, 3)
	require.NoError(t, err)
	items, err := s.ListItemsByMonth(month.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	got := items[0]
	assert.Equal(t, created.ID, got.ID)
	assert.True(t, got.PlannedAmount.Equal(mustDecimal(t, "1200.50")))
	assert.True(t, got.IsBill)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, due.Year(), got.DueDate.Year())
	assert.Equal(t, due.Day(), got.DueDate.Day())
}

func TestDeleteItemUnlinksTransactions(t *testing.T) {
	s := openTestStore(t)
	month, err := s.GetOrCreateMonth(2024, 3)
	require.NoError(t, err)

	item := seedItem(t, s, "Groceries", "2000", false, nil)
	itemID := item.ID
	_, err = s.CreateTransaction(model.Transaction{
		BudgetMonthID: month.ID,
		CategoryID:    item.CategoryID,
		BudgetItemID:  &itemID,
		Amount:        mustDecimal(t, "350"),
		Date:          time.Now(),
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteItem(item.ID))

	txs, err := s.ListTransactionsByMonth(month.ID)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Nil(t, txs[0].BudgetItemID, "transaction survives as unbudgeted")
}

func TestTransactionsByDateRange(t *testing.T) {
	s := openTestStore(t)
	month, err := s.GetOrCreateMonth(2024, 3)
	require.NoError(t, err)
	cat, err := s.FindCategoryByName("Transport")
	require.NoError(t, err)

	for _, day := range []int{5, 15, 25} {
		_, err := s.CreateTransaction(model.Transaction{
			BudgetMonthID: month.ID,
			CategoryID:    cat.ID,
			Amount:        mustDecimal(t, "100"),
			Date:          time.Date(2024, 3, day, 12, 0, 0, 0, time.Local),
		})
		require.NoError(t, err)
	}

	txs, err := s.ListTransactionsByDateRange(
		time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local),
		time.Date(2024, 3, 20, 23, 59, 0, 0, time.Local))
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, 15, txs[0].Date.Day())
}

func TestBillTickUpsert(t *testing.T) {
	s := openTestStore(t)
	month, err := s.GetOrCreateMonth(2024, 3)
	require.NoError(t, err)
	item := seedItem(t, s, "Rent", "9500", true, nil)

	require.NoError(t, s.SetBillPaid(month.ID, item.ID, true))
	ticks, err := s.ListBillTicksByMonth(month.ID)
	require.NoError(t, err)
	require.Len(t, ticks, 1)
	assert.True(t, ticks[0].IsPaid)
	assert.NotNil(t, ticks[0].PaidAt)

	// Unpay updates the same row instead of adding another
	require.NoError(t, s.SetBillPaid(month.ID, item.ID, false))
	ticks, err = s.ListBillTicksByMonth(month.ID)
	require.NoError(t, err)
	require.Len(t, ticks, 1)
	assert.False(t, ticks[0].IsPaid)
	assert.Nil(t, ticks[0].PaidAt)
}

func TestReferentialGuards(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetOrCreateMonth(2024, 3)
	require.NoError(t, err)

	groups, err := s.ListGroups()
	require.NoError(t, err)
	needs := groups[0]

	// Group with categories cannot be hard-deleted
	assert.ErrorIs(t, s.DeleteGroup(needs.ID), ErrReferenced)
	require.NoError(t, s.DeactivateGroup(needs.ID))

	// Category with a budget item cannot be hard-deleted
	item := seedItem(t, s, "Groceries", "2000", false, nil)
	assert.ErrorIs(t, s.DeleteCategory(item.CategoryID), ErrReferenced)
	require.NoError(t, s.DeactivateCategory(item.CategoryID))

	// A fresh, unreferenced group deletes cleanly
	g, err := s.CreateGroup("Savings", 3)
	require.NoError(t, err)
	require.NoError(t, s.DeleteGroup(g.ID))
	assert.ErrorIs(t, s.DeleteGroup(g.ID), ErrNotFound)
}

func TestApplyTemplates(t *testing.T) {
	s := openTestStore(t)
	cat, err := s.FindCategoryByName("Insurance")
	require.NoError(t, err)

	dueDay := 31
	_, err = s.CreateTemplate(model.RecurringTemplate{
		GroupID:       cat.GroupID,
		CategoryID:    cat.ID,
		Name:          "Car insurance",
		PlannedAmount: mustDecimal(t, "1450"),
		Multiplier:    1,
		SplitRatio:    decimal.NewFromInt(1),
		IsBill:        true,
		DueDayOfMonth: &dueDay,
		IsActive:      true,
	})
	require.NoError(t, err)

	// February 2024: due day 31 clamps to the 29th
	month, err := s.GetOrCreateMonth(2024, 2)
	require.NoError(t, err)

	created, err := s.ApplyTemplates(month)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	items, err := s.ListItemsByMonth(month.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].IsFromTemplate)
	require.NotNil(t, items[0].DueDate)
	assert.Equal(t, 29, items[0].DueDate.Day())

	// Re-applying is a no-op
	created, err = s.ApplyTemplates(month)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	items, err = s.ListItemsByMonth(month.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestTemplateDueDayRange(t *testing.T) {
	s := openTestStore(t)
	cat, err := s.FindCategoryByName("Insurance")
	require.NoError(t, err)

	bad := 32
	_, err = s.CreateTemplate(model.RecurringTemplate{
		GroupID:       cat.GroupID,
		CategoryID:    cat.ID,
		Name:          "Broken",
		PlannedAmount: mustDecimal(t, "100"),
		Multiplier:    1,
		SplitRatio:    decimal.NewFromInt(1),
		IsBill:        true,
		DueDayOfMonth: &bad,
		IsActive:      true,
	})
	assert.Error(t, err)
}

func TestScenarioLifecycle(t *testing.T) {
	s := openTestStore(t)

	sc, err := s.CreateScenario("New car", "Used hatchback")
	require.NoError(t, err)

	_, err = s.AddScenarioExpense(sc.ID, "Repayment", "4500", 0)
	require.NoError(t, err)
	_, err = s.AddScenarioExpense(sc.ID, "Insurance", "950", 1)
	require.NoError(t, err)

	expenses, err := s.ListScenarioExpenses(sc.ID)
	require.NoError(t, err)
	require.Len(t, expenses, 2)
	assert.Equal(t, "Repayment", expenses[0].Name)
	assert.Equal(t, "Insurance", expenses[1].Name)

	found, err := s.FindScenarioByName("New car")
	require.NoError(t, err)
	assert.Equal(t, sc.ID, found.ID)

	require.NoError(t, s.DeleteScenario(sc.ID))
	expenses, err = s.ListScenarioExpenses(sc.ID)
	require.NoError(t, err)
	assert.Empty(t, expenses, "expense lines cascade with the scenario")
}

func TestBankConfigAndUpload(t *testing.T) {
	s := openTestStore(t)

	bc, err := s.CreateBankConfig("FNB Cheque", model.BankFNB, "monthly")
	require.NoError(t, err)
	assert.Nil(t, bc.LastUploadAt)

	found, err := s.FindBankConfigByCode(model.BankFNB)
	require.NoError(t, err)
	assert.Equal(t, bc.ID, found.ID)

	_, err = s.FindBankConfigByCode(model.BankCapitec)
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.RecordStatementUpload(model.StatementUpload{
		BankConfigID:      bc.ID,
		Filename:          "march.csv",
		UploadedAt:        time.Now(),
		PeriodStart:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local),
		PeriodEnd:         time.Date(2024, 3, 31, 0, 0, 0, 0, time.Local),
		TotalTransactions: 42,
		MatchedCount:      40,
		UnmatchedCount:    2,
	})
	require.NoError(t, err)

	found, err = s.FindBankConfigByCode(model.BankFNB)
	require.NoError(t, err)
	assert.NotNil(t, found.LastUploadAt)
}
