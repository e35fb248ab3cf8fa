// Package tui provides the interactive Bubble Tea dashboard for julius.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ThaboMollo/Julius/internal/config"
	"github.com/ThaboMollo/Julius/internal/model"
	"github.com/ThaboMollo/Julius/internal/store"
)

// snapshot is everything one month's views render from.
type snapshot struct {
	Month      model.BudgetMonth
	Groups     []model.BudgetGroup
	Categories []model.Category
	Items      []model.BudgetItem
	Txs        []model.Transaction
	Ticks      []model.BillTick
	Settings   model.Settings
	Income     *decimal.Decimal
}

type snapshotMsg struct {
	snap *snapshot
	err  error
}

type keyMap struct {
	PrevMonth key.Binding
	NextMonth key.Binding
	Budget    key.Binding
	Bills     key.Binding
	Timeline  key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevMonth, k.NextMonth, k.Budget, k.Bills, k.Timeline, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevMonth, k.NextMonth, k.Refresh},
		{k.Budget, k.Bills, k.Timeline},
		{k.Help, k.Quit},
	}
}

var keys = keyMap{
	PrevMonth: key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "prev month")),
	NextMonth: key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "next month")),
	Budget:    key.NewBinding(key.WithKeys("b", "1"), key.WithHelp("b", "budget")),
	Bills:     key.NewBinding(key.WithKeys("i", "2"), key.WithHelp("i", "bills")),
	Timeline:  key.NewBinding(key.WithKeys("t", "3"), key.WithHelp("t", "timeline")),
	Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

const (
	tabBudget = iota
	tabBills
	tabTimeline
	tabCount
)

// App is the root Bubble Tea model.
type App struct {
	store *store.Store
	cfg   config.Config

	year  int
	month int

	snap *snapshot
	err  error

	width     int
	height    int
	activeTab int

	help help.Model
}

// NewApp creates the dashboard model pointed at the given month.
func NewApp(s *store.Store, cfg config.Config, year, month int) App {
	return App{
		store: s,
		cfg:   cfg,
		year:  year,
		month: month,
		help:  help.New(),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return loadSnapshotCmd(a.store, a.year, a.month)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case snapshotMsg:
		a.snap = msg.snap
		a.err = msg.err
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit

		case key.Matches(msg, keys.Help):
			a.help.ShowAll = !a.help.ShowAll
			return a, nil

		case key.Matches(msg, keys.PrevMonth):
			a.year, a.month = shiftMonth(a.year, a.month, -1)
			a.snap = nil
			return a, loadSnapshotCmd(a.store, a.year, a.month)

		case key.Matches(msg, keys.NextMonth):
			a.year, a.month = shiftMonth(a.year, a.month, 1)
			a.snap = nil
			return a, loadSnapshotCmd(a.store, a.year, a.month)

		case key.Matches(msg, keys.Refresh):
			return a, loadSnapshotCmd(a.store, a.year, a.month)

		case key.Matches(msg, keys.Budget):
			a.activeTab = tabBudget
			return a, nil

		case key.Matches(msg, keys.Bills):
			a.activeTab = tabBills
			return a, nil

		case key.Matches(msg, keys.Timeline):
			a.activeTab = tabTimeline
			return a, nil
		}
	}

	return a, nil
}

func shiftMonth(year, month, delta int) (int, int) {
	t := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	return t.Year(), int(t.Month())
}

func loadSnapshotCmd(s *store.Store, year, month int) tea.Cmd {
	return func() tea.Msg {
		snap, err := loadSnapshot(s, year, month)
		return snapshotMsg{snap: snap, err: err}
	}
}

func loadSnapshot(s *store.Store, year, month int) (*snapshot, error) {
	m, err := s.GetOrCreateMonth(year, month)
	if err != nil {
		return nil, err
	}

	snap := &snapshot{Month: m}
	if snap.Groups, err = s.ListGroups(); err != nil {
		return nil, err
	}
	if snap.Categories, err = s.ListCategories(); err != nil {
		return nil, err
	}
	if snap.Items, err = s.ListItemsByMonth(m.ID); err != nil {
		return nil, err
	}
	if snap.Txs, err = s.ListTransactionsByMonth(m.ID); err != nil {
		return nil, err
	}
	if snap.Ticks, err = s.ListBillTicksByMonth(m.ID); err != nil {
		return nil, err
	}
	if snap.Settings, err = s.GetSettings(); err != nil {
		return nil, err
	}
	if snap.Income, err = s.ExpectedIncomeFor(m); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *snapshot) tickFor(itemID uuid.UUID) *model.BillTick {
	for i := range s.Ticks {
		if s.Ticks[i].BudgetItemID == itemID {
			return &s.Ticks[i]
		}
	}
	return nil
}
