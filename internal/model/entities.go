// Package model defines the entities persisted by the store and consumed
// by the rules package.
package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultPaydayDay is the day-of-month used when no payday is configured.
const DefaultPaydayDay = 25

// BankCode identifies which statement parser applies to an account.
type BankCode string

const (
	BankFNB          BankCode = "fnb"
	BankCapitec      BankCode = "capitec"
	BankStandardBank BankCode = "standard_bank"
	BankDiscovery    BankCode = "discovery"
	BankABSA         BankCode = "absa"
)

// BudgetGroup is a top-level classification, e.g. "Needs".
type BudgetGroup struct {
	ID        uuid.UUID
	Name      string
	SortOrder int
	IsDefault bool
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Category belongs to one group, e.g. "Groceries".
type Category struct {
	ID        uuid.UUID
	Name      string
	GroupID   uuid.UUID
	IsDefault bool
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BudgetMonth is one month's budget. ExpectedIncome overrides the
// settings-level income when set.
type BudgetMonth struct {
	ID             uuid.UUID
	Year           int
	Month          int // 1-12
	MonthKey       string
	ExpectedIncome *decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// MonthKey formats a (year, month) pair as "2025-02".
func MonthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// BudgetItem is one planned line in a month's budget.
type BudgetItem struct {
	ID             uuid.UUID
	BudgetMonthID  uuid.UUID
	GroupID        uuid.UUID
	CategoryID     uuid.UUID
	Name           string
	PlannedAmount  decimal.Decimal
	Multiplier     int64           // repeat count, >= 1
	SplitRatio     decimal.Decimal // share of the cost carried, in (0, 1]
	IsBill         bool
	DueDate        *time.Time // bills only
	IsFromTemplate bool
	TemplateID     *uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate checks the numeric invariants on a budget item.
func (b *BudgetItem) Validate() error {
	if b.PlannedAmount.IsNegative() {
		return errors.New("planned amount must not be negative")
	}
	if b.Multiplier < 1 {
		return errors.New("multiplier must be at least 1")
	}
	one := decimal.NewFromInt(1)
	if !b.SplitRatio.IsPositive() || b.SplitRatio.GreaterThan(one) {
		return errors.New("split ratio must be in (0, 1]")
	}
	return nil
}

// Transaction is a recorded spend. Positive amounts are expenses.
// BudgetItemID nil means the spend is unbudgeted.
type Transaction struct {
	ID            uuid.UUID
	BudgetMonthID uuid.UUID
	CategoryID    uuid.UUID
	BudgetItemID  *uuid.UUID
	Amount        decimal.Decimal
	Date          time.Time
	Note          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BillTick marks a bill paid or unpaid for a month. At most one exists per
// (month, item) pair; absence means unpaid.
type BillTick struct {
	ID            uuid.UUID
	BudgetMonthID uuid.UUID
	BudgetItemID  uuid.UUID
	IsPaid        bool
	PaidAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RecurringTemplate instantiates budget items into new months.
type RecurringTemplate struct {
	ID            uuid.UUID
	GroupID       uuid.UUID
	CategoryID    uuid.UUID
	Name          string
	PlannedAmount decimal.Decimal
	Multiplier    int64
	SplitRatio    decimal.Decimal
	IsBill        bool
	DueDayOfMonth *int // 1-31, bills only
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Settings holds the single app-wide settings row.
type Settings struct {
	ID                    uuid.UUID
	PaydayDayOfMonth      int
	ExpectedMonthlyIncome *decimal.Decimal
	UpdatedAt             time.Time
}

// PurchaseScenario is a named "what if" affordability scenario.
type PurchaseScenario struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ScenarioExpense is one recurring monthly cost line inside a scenario.
type ScenarioExpense struct {
	ID            uuid.UUID
	ScenarioID    uuid.UUID
	Name          string
	MonthlyAmount decimal.Decimal
	SortOrder     int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BankConfig is a configured bank account for statement reconciliation.
type BankConfig struct {
	ID              uuid.UUID
	BankName        string
	BankCode        BankCode
	UploadFrequency string // daily, weekly, monthly
	IsActive        bool
	LastUploadAt    *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// StatementUpload records one processed CSV statement.
type StatementUpload struct {
	ID                uuid.UUID
	BankConfigID      uuid.UUID
	Filename          string
	UploadedAt        time.Time
	PeriodStart       time.Time
	PeriodEnd         time.Time
	TotalTransactions int
	MatchedCount      int
	UnmatchedCount    int
}
