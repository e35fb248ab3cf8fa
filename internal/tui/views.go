package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ThaboMollo/Julius/internal/cli"
	"github.com/ThaboMollo/Julius/internal/rules"
)

var tabNames = []string{"Budget", "Bills", "Timeline"}

var (
	tabStyle = lipgloss.NewStyle().
			Foreground(cli.ColorTextMuted).
			Padding(0, 2)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(cli.ColorText).
			Bold(true).
			Padding(0, 2).
			Background(cli.ColorSurface)

	monthStyle = lipgloss.NewStyle().
			Foreground(cli.ColorAccent).
			Bold(true).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Foreground(cli.ColorAccent).
			Bold(true).
			MarginTop(1).
			MarginLeft(2)

	rowStyle = lipgloss.NewStyle().
			Foreground(cli.ColorText).
			MarginLeft(2)

	dimRowStyle = lipgloss.NewStyle().
			Foreground(cli.ColorTextMuted).
			MarginLeft(2)

	errStyle = lipgloss.NewStyle().
			Foreground(cli.ColorRed).
			Margin(1, 2)
)

// View implements tea.Model.
func (a App) View() string {
	var b strings.Builder

	b.WriteString(a.renderHeader())
	b.WriteString("\n")

	switch {
	case a.err != nil:
		b.WriteString(errStyle.Render("Error: " + a.err.Error()))
		b.WriteString("\n")
	case a.snap == nil:
		b.WriteString(dimRowStyle.Render("Loading..."))
		b.WriteString("\n")
	default:
		switch a.activeTab {
		case tabBudget:
			b.WriteString(a.renderBudget())
		case tabBills:
			b.WriteString(a.renderBills())
		case tabTimeline:
			b.WriteString(a.renderTimeline())
		}
	}

	b.WriteString("\n")
	b.WriteString("  " + a.help.View(keys))
	b.WriteString("\n")
	return b.String()
}

func (a App) renderHeader() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if i == a.activeTab {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		monthStyle.Render(cli.FormatMonth(a.year, a.month)),
		strings.Join(tabs, ""),
	)
}

func (a App) renderBudget() string {
	snap := a.snap
	sym := a.cfg.General.CurrencySymbol
	var b strings.Builder

	summaries := rules.GroupSummaries(snap.Groups, snap.Items, snap.Txs)
	for _, gs := range summaries {
		b.WriteString(sectionStyle.Render(gs.Group.Name))
		b.WriteString("\n")
		b.WriteString(rowStyle.Render(fmt.Sprintf("planned %s  actual %s  remaining %s",
			cli.FormatAmount(sym, gs.Planned),
			cli.FormatAmount(sym, gs.Actual),
			cli.FormatAmount(sym, gs.Remaining))))
		b.WriteString("\n")

		for _, item := range snap.Items {
			if item.GroupID != gs.Group.ID {
				continue
			}
			planned := rules.EffectivePlanned(item)
			actual := rules.TotalActualByItem(snap.Txs, item.ID)

			line := fmt.Sprintf("%-24s %12s / %-12s",
				item.Name,
				cli.FormatAmount(sym, actual),
				cli.FormatAmount(sym, planned))
			if actual.GreaterThan(planned) {
				line += "  " + cli.Bad("over")
			}
			b.WriteString(dimRowStyle.Render(line))
			b.WriteString("\n")
		}
	}

	remaining := rules.RemainingUntilPayday(snap.Items, snap.Txs, snap.Income)
	days := rules.DaysUntilPayday(a.year, a.month, snap.Settings.PaydayDayOfMonth)
	b.WriteString(sectionStyle.Render("Until payday"))
	b.WriteString("\n")
	b.WriteString(rowStyle.Render(fmt.Sprintf("%s over %d days",
		cli.FormatAmount(sym, remaining), days)))
	b.WriteString("\n")

	unbudgeted := rules.UnbudgetedSpending(snap.Txs)
	if unbudgeted.IsPositive() {
		b.WriteString(rowStyle.Render("unbudgeted " + cli.Warn(cli.FormatAmount(sym, unbudgeted))))
		b.WriteString("\n")
	}
	return b.String()
}

func (a App) renderBills() string {
	snap := a.snap
	sym := a.cfg.General.CurrencySymbol
	payday := snap.Settings.PaydayDayOfMonth
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Bills"))
	b.WriteString("\n")

	count := 0
	for _, item := range snap.Items {
		if !item.IsBill {
			continue
		}
		count++
		status := rules.GetBillDueStatus(item, snap.tickFor(item.ID), a.year, a.month, payday)

		due := "no due date"
		if item.DueDate != nil {
			due = cli.FormatDate(*item.DueDate)
		}
		b.WriteString(rowStyle.Render(fmt.Sprintf("%-24s %12s  %-10s %s",
			item.Name,
			cli.FormatAmount(sym, rules.EffectivePlanned(item)),
			due,
			billStatusLabel(status))))
		b.WriteString("\n")
	}
	if count == 0 {
		b.WriteString(dimRowStyle.Render("No bills this month."))
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render("Payday"))
	b.WriteString("\n")
	b.WriteString(rowStyle.Render(fmt.Sprintf("%s, %d days away",
		cli.FormatFullDate(rules.GetPaydayDate(a.year, a.month, payday)),
		rules.DaysUntilPayday(a.year, a.month, payday))))
	b.WriteString("\n")
	return b.String()
}

func billStatusLabel(status rules.BillDueStatus) string {
	switch status {
	case rules.StatusPaid:
		return cli.Good("paid")
	case rules.StatusOverdue:
		return cli.Bad("overdue")
	case rules.StatusDueToday:
		return cli.Bad("due today")
	case rules.StatusDueTomorrow:
		return cli.Warn("due tomorrow")
	case rules.StatusDueBeforePayday:
		return cli.Warn("before payday")
	default:
		return cli.Dim("upcoming")
	}
}

func (a App) renderTimeline() string {
	snap := a.snap
	sym := a.cfg.General.CurrencySymbol
	var b strings.Builder

	events := rules.BuildTimeline(snap.Items, snap.Ticks, a.year, a.month,
		rules.TotalPlanned(snap.Items).Sub(rules.TotalActual(snap.Txs)),
		snap.Settings.PaydayDayOfMonth)

	b.WriteString(sectionStyle.Render("Cashflow (from remaining budget)"))
	b.WriteString("\n")

	if len(events) == 0 {
		b.WriteString(dimRowStyle.Render("No unpaid bills ahead and payday has passed."))
		b.WriteString("\n")
		return b.String()
	}

	for _, ev := range events {
		name := "Payday"
		amount := cli.Good("income")
		if ev.Type == rules.EventBill {
			name = ev.Item.Name
			amount = cli.FormatSignedAmount(sym, ev.Amount)
		}
		bal := cli.FormatAmount(sym, ev.RunningBalance)
		if ev.RunningBalance.IsNegative() {
			bal = cli.Bad(bal)
		}
		b.WriteString(rowStyle.Render(fmt.Sprintf("%-8s %-24s %14s  %s",
			cli.FormatDate(ev.Date), name, amount, bal)))
		b.WriteString("\n")
	}
	return b.String()
}
