package rules

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ThaboMollo/Julius/internal/model"
)

// TimelineEventType distinguishes the two projected cashflow events.
type TimelineEventType string

const (
	EventBill   TimelineEventType = "bill"
	EventPayday TimelineEventType = "payday"
)

// TimelineEvent is one projected cashflow movement. The payday event carries
// a zero amount; callers enrich it with income when known.
type TimelineEvent struct {
	Date           time.Time
	Type           TimelineEventType
	Item           *model.BudgetItem
	Amount         decimal.Decimal
	RunningBalance decimal.Decimal
}

// BuildTimeline projects the unpaid bills and the payday for a month onto a
// chronological sequence covering [today, max(month end, payday)], folding a
// running balance from startingBalance.
func BuildTimeline(items []model.BudgetItem, ticks []model.BillTick, year, month int, startingBalance decimal.Decimal, paydayDay int) []TimelineEvent {
	return BuildTimelineOn(time.Now(), items, ticks, year, month, startingBalance, paydayDay)
}

// BuildTimelineOn is BuildTimeline with an explicit reference time.
func BuildTimelineOn(now time.Time, items []model.BudgetItem, ticks []model.BillTick, year, month int, startingBalance decimal.Decimal, paydayDay int) []TimelineEvent {
	today := dateOnly(now)
	payday := GetPaydayDate(year, month, paydayDay)
	monthEnd := time.Date(year, time.Month(month), daysInMonth(year, month), 0, 0, 0, 0, time.Local)

	endDate := monthEnd
	if payday.After(monthEnd) {
		endDate = payday
	}

	tickByItem := make(map[uuid.UUID]model.BillTick, len(ticks))
	for _, t := range ticks {
		tickByItem[t.BudgetItemID] = t
	}

	var events []TimelineEvent
	for i := range items {
		item := &items[i]
		if !item.IsBill || item.DueDate == nil {
			continue
		}
		if tick, ok := tickByItem[item.ID]; ok && tick.IsPaid {
			continue
		}
		due := dateOnly(*item.DueDate)
		if due.Before(today) || due.After(endDate) {
			continue
		}
		events = append(events, TimelineEvent{
			Date:   due,
			Type:   EventBill,
			Item:   item,
			Amount: EffectivePlanned(*item).Neg(),
		})
	}

	if !payday.Before(today) {
		events = append(events, TimelineEvent{
			Date:   payday,
			Type:   EventPayday,
			Amount: decimal.Zero,
		})
	}

	// Stable: same-day events keep encounter order.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})

	balance := startingBalance
	for i := range events {
		balance = balance.Add(events[i].Amount)
		events[i].RunningBalance = balance
	}

	return events
}
