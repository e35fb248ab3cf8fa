// Package rules holds the pure budget calculations: planned/actual
// aggregation, bill due classification, cashflow timeline projection,
// bank statement reconciliation, and purchase affordability. Functions here
// take in-memory snapshots and never touch the store.
package rules

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ThaboMollo/Julius/internal/model"
)

// EffectivePlanned is the planned cost of an item after the repeat
// multiplier and split ratio are applied.
func EffectivePlanned(item model.BudgetItem) decimal.Decimal {
	return item.PlannedAmount.
		Mul(decimal.NewFromInt(item.Multiplier)).
		Mul(item.SplitRatio)
}

// TotalPlanned sums the effective planned amount of all items.
func TotalPlanned(items []model.BudgetItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(EffectivePlanned(item))
	}
	return sum
}

// TotalPlannedByGroup sums effective planned amounts of items in one group.
func TotalPlannedByGroup(items []model.BudgetItem, groupID uuid.UUID) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		if item.GroupID == groupID {
			sum = sum.Add(EffectivePlanned(item))
		}
	}
	return sum
}

// TotalPlannedByCategory sums effective planned amounts of items in one category.
func TotalPlannedByCategory(items []model.BudgetItem, categoryID uuid.UUID) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		if item.CategoryID == categoryID {
			sum = sum.Add(EffectivePlanned(item))
		}
	}
	return sum
}

// TotalActual sums all transaction amounts.
func TotalActual(txs []model.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range txs {
		sum = sum.Add(tx.Amount)
	}
	return sum
}

// TotalActualByItem sums transactions linked to one budget item.
func TotalActualByItem(txs []model.Transaction, itemID uuid.UUID) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range txs {
		if tx.BudgetItemID != nil && *tx.BudgetItemID == itemID {
			sum = sum.Add(tx.Amount)
		}
	}
	return sum
}

// TotalActualByCategory sums transactions recorded against one category.
func TotalActualByCategory(txs []model.Transaction, categoryID uuid.UUID) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range txs {
		if tx.CategoryID == categoryID {
			sum = sum.Add(tx.Amount)
		}
	}
	return sum
}

// TotalActualByGroup sums transactions linked to any item in the group.
// Transactions not linked to one of the group's items are excluded even when
// their category belongs to the group.
func TotalActualByGroup(txs []model.Transaction, items []model.BudgetItem, groupID uuid.UUID) decimal.Decimal {
	groupItems := make(map[uuid.UUID]struct{})
	for _, item := range items {
		if item.GroupID == groupID {
			groupItems[item.ID] = struct{}{}
		}
	}

	sum := decimal.Zero
	for _, tx := range txs {
		if tx.BudgetItemID == nil {
			continue
		}
		if _, ok := groupItems[*tx.BudgetItemID]; ok {
			sum = sum.Add(tx.Amount)
		}
	}
	return sum
}

// CategoryOverspend is how far actual spend exceeds plan for a category.
// Never negative.
func CategoryOverspend(items []model.BudgetItem, txs []model.Transaction, categoryID uuid.UUID) decimal.Decimal {
	planned := TotalPlannedByCategory(items, categoryID)
	actual := TotalActualByCategory(txs, categoryID)
	return maxZero(actual.Sub(planned))
}

// ItemOverspend is how far actual spend exceeds the item's effective plan.
func ItemOverspend(item model.BudgetItem, txs []model.Transaction) decimal.Decimal {
	planned := EffectivePlanned(item)
	actual := TotalActualByItem(txs, item.ID)
	return maxZero(actual.Sub(planned))
}

// OverspentCategory pairs a category with its overspend for ranking.
type OverspentCategory struct {
	Category  model.Category
	Planned   decimal.Decimal
	Actual    decimal.Decimal
	Overspend decimal.Decimal
}

// TopOverspentCategories ranks categories by overspend, descending, keeping
// only those with overspend > 0 and at most limit entries. Ties keep the
// input category order.
func TopOverspentCategories(items []model.BudgetItem, txs []model.Transaction, categories []model.Category, limit int) []OverspentCategory {
	var results []OverspentCategory
	for _, cat := range categories {
		planned := TotalPlannedByCategory(items, cat.ID)
		actual := TotalActualByCategory(txs, cat.ID)
		overspend := maxZero(actual.Sub(planned))
		if overspend.IsPositive() {
			results = append(results, OverspentCategory{
				Category:  cat,
				Planned:   planned,
				Actual:    actual,
				Overspend: overspend,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Overspend.GreaterThan(results[j].Overspend)
	})

	if limit >= 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// UnbudgetedSpending sums transactions not linked to any budget item.
func UnbudgetedSpending(txs []model.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range txs {
		if tx.BudgetItemID == nil {
			sum = sum.Add(tx.Amount)
		}
	}
	return sum
}

// RemainingUntilPayday is income minus actual spend when an expected income
// is known, otherwise planned minus actual (the budget-based view). The two
// views deliberately differ in meaning; callers pass nil when no income is
// configured for the month or in settings.
func RemainingUntilPayday(items []model.BudgetItem, txs []model.Transaction, expectedIncome *decimal.Decimal) decimal.Decimal {
	actual := TotalActual(txs)
	if expectedIncome != nil {
		return expectedIncome.Sub(actual)
	}
	return TotalPlanned(items).Sub(actual)
}

// GroupSummary holds the per-group rollup shown on the budget screen.
type GroupSummary struct {
	Group     model.BudgetGroup
	Planned   decimal.Decimal
	Actual    decimal.Decimal
	Remaining decimal.Decimal
	Overspend decimal.Decimal
}

// GroupSummaries computes rollups for active groups in sort order.
func GroupSummaries(groups []model.BudgetGroup, items []model.BudgetItem, txs []model.Transaction) []GroupSummary {
	active := make([]model.BudgetGroup, 0, len(groups))
	for _, g := range groups {
		if g.IsActive {
			active = append(active, g)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].SortOrder < active[j].SortOrder
	})

	summaries := make([]GroupSummary, 0, len(active))
	for _, g := range active {
		planned := TotalPlannedByGroup(items, g.ID)
		actual := TotalActualByGroup(txs, items, g.ID)
		summaries = append(summaries, GroupSummary{
			Group:     g,
			Planned:   planned,
			Actual:    actual,
			Remaining: maxZero(planned.Sub(actual)),
			Overspend: maxZero(actual.Sub(planned)),
		})
	}
	return summaries
}

func maxZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
