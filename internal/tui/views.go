package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/marvus-creator/Malvyn/internal/cli"
	"github.com/marvus-creator/Malvyn/internal/model"
	"github.com/marvus-creator/Malvyn/internal/report"
	"github.com/marvus-creator/Malvyn/internal/tui/themes"
)

var tabNames = []string{"Dashboard", "History", "Budgets & Goals"}

// View renders the current tab.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n")

	switch m.tab {
	case TabHistory:
		b.WriteString(m.viewHistory())
	case TabGoals:
		b.WriteString(m.viewBudgetsAndGoals())
	default:
		b.WriteString(m.viewDashboard())
	}

	if m.lastError != nil {
		b.WriteString("\n")
		b.WriteString(m.theme.StatusError.Render("error: " + m.lastError.Error()))
	}

	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(m.help.FullHelpView(m.keymap.FullHelp()))
	} else {
		b.WriteString(m.help.ShortHelpView(m.keymap.ShortHelp()))
	}
	return b.String()
}

func (m Model) viewHeader() string {
	title := m.theme.Title.Render("💰 Malvyn")
	if user := m.store.CurrentUser(); user != "" {
		title += m.theme.Muted.Render("  " + user)
	}

	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if Tab(i) == m.tab {
			tabs[i] = m.theme.TabActive.Render(name)
		} else {
			tabs[i] = m.theme.TabInactive.Render(name)
		}
	}

	return title + "\n" + lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

func (m Model) viewDashboard() string {
	txns := m.store.Transactions()
	summary := report.Summarize(txns)

	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		m.statBox("Current Balance", cli.FormatMoney(summary.Balance), m.theme.StatusInfo),
		m.statBox("Total Income", cli.FormatMoney(summary.TotalIncome), m.theme.StatusSuccess),
		m.statBox("Total Expenses", cli.FormatMoney(summary.TotalExpenses), m.theme.StatusError),
	)

	var b strings.Builder
	b.WriteString(stats)
	b.WriteString("\n\n")

	b.WriteString(m.theme.Bold.Render("Spending Breakdown"))
	b.WriteString("\n")
	breakdown := report.CategoryBreakdown(txns)
	if len(breakdown) == 0 {
		b.WriteString(m.theme.Muted.Render("  no expenses yet"))
		b.WriteString("\n")
	}
	for _, category := range model.ExpenseCategories() {
		spent, ok := breakdown[category]
		if !ok {
			continue
		}
		line := fmt.Sprintf("  %s %-14s %s",
			themes.GetCategoryIcon(category), category, cli.FormatMoney(spent))
		b.WriteString(m.theme.Normal.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Bold.Render("Recent Transactions"))
	b.WriteString("\n")
	recent := report.RecentActivity(txns, report.RecentLimit)
	if len(recent) == 0 {
		b.WriteString(m.theme.Muted.Render("  no transactions yet"))
		b.WriteString("\n")
	}
	for _, t := range recent {
		amount := m.theme.Expense.Render("-" + cli.FormatMoney(t.Amount))
		if t.Type == model.TypeIncome {
			amount = m.theme.Income.Render("+" + cli.FormatMoney(t.Amount))
		}
		line := fmt.Sprintf("  %s %-28s %s  %s",
			themes.GetCategoryIcon(t.Category),
			truncate(t.Description, 28),
			m.theme.Muted.Render(t.Date.Format("Jan 02")),
			amount)
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewHistory() string {
	return m.history.View()
}

func (m Model) viewBudgetsAndGoals() string {
	var b strings.Builder

	b.WriteString(m.theme.Bold.Render("Budgets"))
	b.WriteString("\n")
	statuses := report.BudgetUtilization(m.store.Transactions(), m.store.Budgets())
	configured := 0
	for _, status := range statuses {
		if !status.Limit.IsPositive() {
			continue
		}
		configured++

		badge := m.theme.StatusSuccess.Render("ON TRACK")
		if status.OverBudget {
			badge = m.theme.StatusError.Render("OVER BUDGET")
		}

		b.WriteString(fmt.Sprintf("  %s %-14s %s / %s  %s\n",
			themes.GetCategoryIcon(status.Category),
			status.Category,
			cli.FormatMoney(status.Spent),
			cli.FormatMoney(status.Limit),
			badge))
		b.WriteString("  " + m.progressBar(status.Percentage) + "\n")
	}
	if configured == 0 {
		b.WriteString(m.theme.Muted.Render("  no budgets configured"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Bold.Render("Savings Goals"))
	b.WriteString("\n")
	goals := m.store.Goals()
	if len(goals) == 0 {
		b.WriteString(m.theme.Muted.Render("  no savings goals yet"))
		b.WriteString("\n")
	}
	for _, goal := range goals {
		status := report.GoalProgress(goal)

		label := fmt.Sprintf("%.0f%%", status.Percentage)
		if status.Completed {
			label = m.theme.StatusSuccess.Render("COMPLETED " + label)
		}

		b.WriteString(fmt.Sprintf("  %s %-20s %s / %s  %s\n",
			goal.Icon,
			truncate(goal.Name, 20),
			cli.FormatMoney(goal.CurrentAmount),
			cli.FormatMoney(goal.TargetAmount),
			label))
		b.WriteString("  " + m.progressBar(status.DisplayPercentage) + "\n")
	}

	return b.String()
}

func (m Model) statBox(label, value string, style lipgloss.Style) string {
	content := m.theme.Muted.Render(label) + "\n" + style.Render(value)
	return m.theme.RoundedBox.Render(content)
}

func (m Model) progressBar(percentage float64) string {
	bar := m.bar
	bar.Width = min(40, max(10, m.width-10))
	return bar.ViewAs(percentage / 100)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
