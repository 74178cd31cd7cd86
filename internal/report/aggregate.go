// Package report computes derived views over ledger snapshots: summary
// totals, category breakdowns, budget utilization, and goal progress.
//
// Every function here is pure and recomputes from the full snapshot it
// is given; identical input always produces identical output. There is
// no caching and no time-window scoping: totals cover the entire
// transaction history currently held.
package report

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/marvus-creator/Malvyn/internal/model"
)

// RecentLimit is how many transactions the dashboard's recent-activity
// panel shows.
const RecentLimit = 5

// Summary holds the headline totals for a transaction set.
type Summary struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	Balance       decimal.Decimal
}

// Summarize computes income, expense, and balance totals.
func Summarize(txns []model.Transaction) Summary {
	income := decimal.Zero
	expenses := decimal.Zero

	for _, t := range txns {
		switch t.Type {
		case model.TypeIncome:
			income = income.Add(t.Amount)
		case model.TypeExpense:
			expenses = expenses.Add(t.Amount)
		}
	}

	return Summary{
		TotalIncome:   income,
		TotalExpenses: expenses,
		Balance:       income.Sub(expenses),
	}
}

// CategoryBreakdown sums expense amounts per category. Only expense
// transactions contribute; categories with no expense activity are
// omitted rather than emitted with a zero value.
func CategoryBreakdown(txns []model.Transaction) map[model.Category]decimal.Decimal {
	breakdown := make(map[model.Category]decimal.Decimal)

	for _, t := range txns {
		if t.Type != model.TypeExpense {
			continue
		}
		breakdown[t.Category] = breakdown[t.Category].Add(t.Amount)
	}

	return breakdown
}

// RecentActivity returns the n most recent transactions, newest first.
// The sort is stable: transactions sharing a date keep their input
// order.
func RecentActivity(txns []model.Transaction, n int) []model.Transaction {
	sorted := make([]model.Transaction, len(txns))
	copy(sorted, txns)

	slices.SortStableFunc(sorted, func(a, b model.Transaction) int {
		return b.Date.Compare(a.Date)
	})

	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// BudgetStatus is the spend-to-limit picture for one expense category.
type BudgetStatus struct {
	Category   model.Category
	Spent      decimal.Decimal
	Limit      decimal.Decimal
	Percentage float64
	OverBudget bool
}

// BudgetUtilization reports spend against budget for every non-Income
// category, whether or not a budget is configured. Percentage is
// clamped at 100; a category with no limit set is never over budget
// regardless of spend.
func BudgetUtilization(txns []model.Transaction, budgets []model.CategoryBudget) []BudgetStatus {
	breakdown := CategoryBreakdown(txns)

	limits := make(map[model.Category]decimal.Decimal, len(budgets))
	for _, b := range budgets {
		limits[b.Category] = b.Limit
	}

	statuses := make([]BudgetStatus, 0, len(model.Categories)-1)
	for _, category := range model.ExpenseCategories() {
		spent := breakdown[category]
		limit := limits[category]

		var pct float64
		if limit.IsPositive() {
			pct = spent.Div(limit).InexactFloat64() * 100
			if pct > 100 {
				pct = 100
			}
		}

		statuses = append(statuses, BudgetStatus{
			Category:   category,
			Spent:      spent,
			Limit:      limit,
			Percentage: pct,
			OverBudget: limit.IsPositive() && spent.GreaterThan(limit),
		})
	}

	return statuses
}

// GoalStatus is the progress picture for one savings goal.
type GoalStatus struct {
	Goal model.SavingsGoal
	// Percentage is the true ratio and may exceed 100 when the goal
	// is over-saved.
	Percentage float64
	// DisplayPercentage is clamped at 100 for bar-width rendering.
	DisplayPercentage float64
	Completed         bool
}

// GoalProgress computes progress toward a savings goal.
func GoalProgress(goal model.SavingsGoal) GoalStatus {
	var pct float64
	if goal.TargetAmount.IsPositive() {
		pct = goal.CurrentAmount.Div(goal.TargetAmount).InexactFloat64() * 100
	}

	display := pct
	if display > 100 {
		display = 100
	}

	return GoalStatus{
		Goal:              goal,
		Percentage:        pct,
		DisplayPercentage: display,
		Completed:         goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount),
	}
}
