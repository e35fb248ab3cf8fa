package rules

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ThaboMollo/Julius/internal/model"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}

func testItem(t *testing.T, groupID, categoryID uuid.UUID, planned string, multiplier int64, ratio string) model.BudgetItem {
	t.Helper()
	return model.BudgetItem{
		ID:            uuid.New(),
		GroupID:       groupID,
		CategoryID:    categoryID,
		PlannedAmount: dec(t, planned),
		Multiplier:    multiplier,
		SplitRatio:    dec(t, ratio),
	}
}

func testTx(t *testing.T, categoryID uuid.UUID, itemID *uuid.UUID, amount string) model.Transaction {
	t.Helper()
	return model.Transaction{
		ID:           uuid.New(),
		CategoryID:   categoryID,
		BudgetItemID: itemID,
		Amount:       dec(t, amount),
	}
}

func TestEffectivePlanned(t *testing.T) {
	tests := []struct {
		name       string
		planned    string
		multiplier int64
		ratio      string
		want       string
	}{
		{"plain", "500", 1, "1", "500"},
		{"multiplied", "120.50", 3, "1", "361.50"},
		{"half split", "800", 1, "0.5", "400"},
		{"multiplied and split", "100", 4, "0.25", "100"},
		{"zero planned", "0", 2, "0.5", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := testItem(t, uuid.New(), uuid.New(), tt.planned, tt.multiplier, tt.ratio)
			got := EffectivePlanned(item)
			if !got.Equal(dec(t, tt.want)) {
				t.Fatalf("EffectivePlanned = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTotalPlanned_PartitionsAcrossGroups(t *testing.T) {
	groupA, groupB := uuid.New(), uuid.New()
	items := []model.BudgetItem{
		testItem(t, groupA, uuid.New(), "100", 1, "1"),
		testItem(t, groupA, uuid.New(), "250.75", 2, "1"),
		testItem(t, groupB, uuid.New(), "80", 1, "0.5"),
	}

	total := TotalPlanned(items)
	byGroups := TotalPlannedByGroup(items, groupA).Add(TotalPlannedByGroup(items, groupB))
	if !total.Equal(byGroups) {
		t.Fatalf("group totals %s do not partition overall total %s", byGroups, total)
	}
	if want := dec(t, "641.50"); !total.Equal(want) {
		t.Fatalf("TotalPlanned = %s, want %s", total, want)
	}
}

func TestTotalActualByGroup_ExcludesUnlinkedTransactions(t *testing.T) {
	group := uuid.New()
	category := uuid.New()
	item := testItem(t, group, category, "300", 1, "1")

	itemID := item.ID
	txs := []model.Transaction{
		testTx(t, category, &itemID, "120"),
		// Same category but not linked to any item in the group: excluded.
		testTx(t, category, nil, "999"),
	}

	got := TotalActualByGroup(txs, []model.BudgetItem{item}, group)
	if want := dec(t, "120"); !got.Equal(want) {
		t.Fatalf("TotalActualByGroup = %s, want %s", got, want)
	}
}

func TestTotalActual_ToleratesMissingLinks(t *testing.T) {
	// A transaction referencing a deleted category or item still counts
	// toward the overall total and contributes zero to scoped totals.
	deletedCategory := uuid.New()
	txs := []model.Transaction{
		testTx(t, deletedCategory, nil, "50"),
	}

	if got := TotalActual(txs); !got.Equal(dec(t, "50")) {
		t.Fatalf("TotalActual = %s, want 50", got)
	}
	if got := TotalActualByGroup(txs, nil, uuid.New()); !got.IsZero() {
		t.Fatalf("TotalActualByGroup for unrelated group = %s, want 0", got)
	}
}

func TestCategoryOverspend_NeverNegative(t *testing.T) {
	category := uuid.New()
	items := []model.BudgetItem{testItem(t, uuid.New(), category, "500", 1, "1")}

	underTxs := []model.Transaction{testTx(t, category, nil, "200")}
	if got := CategoryOverspend(items, underTxs, category); !got.IsZero() {
		t.Fatalf("overspend under budget = %s, want 0", got)
	}

	overTxs := []model.Transaction{testTx(t, category, nil, "650.25")}
	if got := CategoryOverspend(items, overTxs, category); !got.Equal(dec(t, "150.25")) {
		t.Fatalf("overspend over budget = %s, want 150.25", got)
	}
}

func TestTopOverspentCategories(t *testing.T) {
	catA := model.Category{ID: uuid.New(), Name: "Groceries"}
	catB := model.Category{ID: uuid.New(), Name: "Eating Out"}
	catC := model.Category{ID: uuid.New(), Name: "Transport"}
	catD := model.Category{ID: uuid.New(), Name: "Medical"}

	items := []model.BudgetItem{
		testItem(t, uuid.New(), catA.ID, "100", 1, "1"),
		testItem(t, uuid.New(), catB.ID, "100", 1, "1"),
		testItem(t, uuid.New(), catC.ID, "100", 1, "1"),
		testItem(t, uuid.New(), catD.ID, "100", 1, "1"),
	}
	txs := []model.Transaction{
		testTx(t, catA.ID, nil, "150"), // overspend 50
		testTx(t, catB.ID, nil, "300"), // overspend 200
		testTx(t, catC.ID, nil, "150"), // overspend 50, ties with A
		testTx(t, catD.ID, nil, "80"),  // under budget
	}

	got := TopOverspentCategories(items, txs, []model.Category{catA, catB, catC, catD}, 5)
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3", len(got))
	}
	if got[0].Category.ID != catB.ID {
		t.Fatalf("top category = %s, want Eating Out", got[0].Category.Name)
	}
	// Equal overspends keep input category order.
	if got[1].Category.ID != catA.ID || got[2].Category.ID != catC.ID {
		t.Fatalf("tie order = %s, %s; want Groceries, Transport",
			got[1].Category.Name, got[2].Category.Name)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Overspend.GreaterThan(got[i-1].Overspend) {
			t.Fatalf("entries not sorted descending at %d", i)
		}
	}

	limited := TopOverspentCategories(items, txs, []model.Category{catA, catB, catC, catD}, 1)
	if len(limited) != 1 || limited[0].Category.ID != catB.ID {
		t.Fatalf("limit 1: got %d entries", len(limited))
	}
}

func TestUnbudgetedSpending(t *testing.T) {
	item := uuid.New()
	txs := []model.Transaction{
		testTx(t, uuid.New(), &item, "400"),
		testTx(t, uuid.New(), nil, "35.50"),
		testTx(t, uuid.New(), nil, "12"),
	}
	if got := UnbudgetedSpending(txs); !got.Equal(dec(t, "47.50")) {
		t.Fatalf("UnbudgetedSpending = %s, want 47.50", got)
	}
}

func TestRemainingUntilPayday(t *testing.T) {
	items := []model.BudgetItem{testItem(t, uuid.New(), uuid.New(), "1000", 1, "1")}
	txs := []model.Transaction{testTx(t, uuid.New(), nil, "600")}

	// Income configured: income - actual.
	income := dec(t, "15000")
	if got := RemainingUntilPayday(items, txs, &income); !got.Equal(dec(t, "14400")) {
		t.Fatalf("with income = %s, want 14400", got)
	}

	// No income configured: planned - actual, a different meaning entirely.
	if got := RemainingUntilPayday(items, txs, nil); !got.Equal(dec(t, "400")) {
		t.Fatalf("without income = %s, want 400", got)
	}
}

func TestGroupSummaries(t *testing.T) {
	needs := model.BudgetGroup{ID: uuid.New(), Name: "Needs", SortOrder: 1, IsActive: true}
	wants := model.BudgetGroup{ID: uuid.New(), Name: "Should Die", SortOrder: 2, IsActive: true}
	gone := model.BudgetGroup{ID: uuid.New(), Name: "Old", SortOrder: 0, IsActive: false}

	item := testItem(t, needs.ID, uuid.New(), "500", 1, "1")
	itemID := item.ID
	txs := []model.Transaction{testTx(t, item.CategoryID, &itemID, "650")}

	got := GroupSummaries([]model.BudgetGroup{wants, gone, needs}, []model.BudgetItem{item}, txs)
	if len(got) != 2 {
		t.Fatalf("got %d summaries, want 2 (inactive excluded)", len(got))
	}
	if got[0].Group.ID != needs.ID {
		t.Fatalf("first summary = %s, want Needs (sort order)", got[0].Group.Name)
	}
	if !got[0].Overspend.Equal(dec(t, "150")) || !got[0].Remaining.IsZero() {
		t.Fatalf("Needs overspend/remaining = %s/%s, want 150/0", got[0].Overspend, got[0].Remaining)
	}
}
