// Package tui renders the interactive dashboard: headline totals,
// transaction history, and budget/goal progress over a ledger snapshot.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marvus-creator/Malvyn/internal/cli"
	"github.com/marvus-creator/Malvyn/internal/ledger"
	"github.com/marvus-creator/Malvyn/internal/model"
	"github.com/marvus-creator/Malvyn/internal/report"
	"github.com/marvus-creator/Malvyn/internal/service"
	"github.com/marvus-creator/Malvyn/internal/tui/themes"
)

// Tab identifies one of the dashboard views.
type Tab int

const (
	TabDashboard Tab = iota
	TabHistory
	TabGoals

	tabCount
)

// Config holds the dependencies the dashboard needs.
type Config struct {
	Store   *ledger.Store
	Storage service.Storage
	Theme   service.Theme
	Width   int
	Height  int
}

// Model holds the dashboard state.
type Model struct {
	ctx       context.Context
	store     *ledger.Store
	storage   service.Storage
	lastError error
	theme     themes.Theme
	appTheme  service.Theme
	keymap    KeyMap
	help      help.Model
	history   table.Model
	bar       progress.Model
	tab       Tab
	width     int
	height    int
	showHelp  bool
	quitting  bool
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, cfg Config) Model {
	m := Model{
		ctx:      ctx,
		store:    cfg.Store,
		storage:  cfg.Storage,
		appTheme: cfg.Theme,
		theme:    themes.ForTheme(cfg.Theme),
		keymap:   DefaultKeyMap(),
		help:     help.New(),
		bar:      progress.New(progress.WithGradient("#065f46", "#10b981")),
		tab:      TabDashboard,
		width:    cfg.Width,
		height:   cfg.Height,
	}
	m.history = m.buildHistoryTable()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.history.SetHeight(max(4, m.height-10))
		return m, nil

	case themeSavedMsg:
		m.appTheme = msg.theme
		m.theme = themes.ForTheme(msg.theme)
		m.history = m.buildHistoryTable()
		return m, nil

	case errorMsg:
		m.lastError = msg.err
		return m, nil
	}

	var cmd tea.Cmd
	m.history, cmd = m.history.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit), key.Matches(msg, m.keymap.ForceQuit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keymap.NextTab):
		m.tab = (m.tab + 1) % tabCount
		return m, nil

	case key.Matches(msg, m.keymap.PrevTab):
		m.tab = (m.tab + tabCount - 1) % tabCount
		return m, nil

	case key.Matches(msg, m.keymap.TabDash):
		m.tab = TabDashboard
		return m, nil

	case key.Matches(msg, m.keymap.TabHistory):
		m.tab = TabHistory
		return m, nil

	case key.Matches(msg, m.keymap.TabGoals):
		m.tab = TabGoals
		return m, nil

	case key.Matches(msg, m.keymap.ToggleTheme):
		next := service.ThemeLight
		if m.appTheme == service.ThemeLight {
			next = service.ThemeDark
		}
		return m, m.saveTheme(next)
	}

	if m.tab == TabHistory {
		var cmd tea.Cmd
		m.history, cmd = m.history.Update(msg)
		return m, cmd
	}
	return m, nil
}

// saveTheme persists the preference before the view switches so a crash
// never leaves the saved theme ahead of the rendered one.
func (m Model) saveTheme(next service.Theme) tea.Cmd {
	return func() tea.Msg {
		if m.storage != nil {
			if err := m.storage.SaveTheme(m.ctx, next); err != nil {
				return errorMsg{err: err}
			}
		}
		return themeSavedMsg{theme: next}
	}
}

func (m Model) buildHistoryTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Description", Width: 32},
		{Title: "Category", Width: 16},
		{Title: "Type", Width: 9},
		{Title: "Amount", Width: 16},
	}

	txns := m.store.Transactions()
	sorted := report.RecentActivity(txns, len(txns))

	rows := make([]table.Row, 0, len(sorted))
	for _, t := range sorted {
		sign := "-"
		if t.Type == model.TypeIncome {
			sign = "+"
		}
		rows = append(rows, table.Row{
			t.Date.Format("2006-01-02"),
			t.Description,
			themes.GetCategoryIcon(t.Category) + " " + string(t.Category),
			string(t.Type),
			sign + cli.FormatMoney(t.Amount),
		})
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Bold(true).
		Foreground(m.theme.Primary)
	styles.Selected = m.theme.Selected

	return table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(4, m.height-10)),
		table.WithStyles(styles),
	)
}
