package rules

import (
	"time"

	"github.com/ThaboMollo/Julius/internal/model"
)

// BillDueStatus classifies a bill relative to today and payday.
type BillDueStatus string

const (
	StatusOverdue         BillDueStatus = "overdue"
	StatusDueToday        BillDueStatus = "due_today"
	StatusDueTomorrow     BillDueStatus = "due_tomorrow"
	StatusDueBeforePayday BillDueStatus = "due_before_payday"
	StatusUpcoming        BillDueStatus = "upcoming"
	StatusPaid            BillDueStatus = "paid"
)

// GetPaydayDate returns the payday for a month, clamping the configured
// day-of-month to the last valid day (a payday of 31 lands on Feb 29 in a
// leap year).
func GetPaydayDate(year, month, paydayDay int) time.Time {
	last := daysInMonth(year, month)
	day := paydayDay
	if day > last {
		day = last
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
}

// DaysUntilPayday counts whole days from today to payday, never negative.
func DaysUntilPayday(year, month, paydayDay int) int {
	return daysUntilPaydayOn(time.Now(), year, month, paydayDay)
}

func daysUntilPaydayOn(now time.Time, year, month, paydayDay int) int {
	payday := GetPaydayDate(year, month, paydayDay)
	diff := wholeDaysBetween(payday, dateOnly(now))
	if diff < 0 {
		return 0
	}
	return diff
}

// GetBillDueStatus classifies a bill for the given month. A paid tick wins
// over all date logic; an item without a due date is always upcoming.
func GetBillDueStatus(item model.BudgetItem, tick *model.BillTick, year, month, paydayDay int) BillDueStatus {
	return BillDueStatusOn(time.Now(), item, tick, year, month, paydayDay)
}

// BillDueStatusOn is GetBillDueStatus with an explicit reference time.
func BillDueStatusOn(now time.Time, item model.BudgetItem, tick *model.BillTick, year, month, paydayDay int) BillDueStatus {
	if tick != nil && tick.IsPaid {
		return StatusPaid
	}
	if item.DueDate == nil {
		return StatusUpcoming
	}

	due := dateOnly(*item.DueDate)
	today := dateOnly(now)

	switch {
	case due.Equal(today):
		return StatusDueToday
	case due.Equal(today.AddDate(0, 0, 1)):
		return StatusDueTomorrow
	case due.Before(today):
		return StatusOverdue
	}

	payday := GetPaydayDate(year, month, paydayDay)
	if due.Before(payday) || due.Equal(payday) {
		return StatusDueBeforePayday
	}
	return StatusUpcoming
}

func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// dateOnly zeroes the time component, keeping day granularity.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// wholeDaysBetween returns a - b in whole days at day granularity. Rounding
// absorbs DST-shortened days.
func wholeDaysBetween(a, b time.Time) int {
	hours := dateOnly(a).Sub(dateOnly(b)).Hours()
	if hours >= 0 {
		return int(hours/24 + 0.5)
	}
	return -int(-hours/24 + 0.5)
}
