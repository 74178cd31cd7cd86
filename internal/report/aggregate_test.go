package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marvus-creator/Malvyn/internal/model"
)

func expense(id string, day int, category model.Category, amount int64) model.Transaction {
	return model.Transaction{
		ID:          id,
		Date:        time.Date(2024, 5, day, 0, 0, 0, 0, time.UTC),
		Description: id,
		Amount:      decimal.NewFromInt(amount),
		Category:    category,
		Type:        model.TypeExpense,
	}
}

func income(id string, day int, amount int64) model.Transaction {
	return model.Transaction{
		ID:          id,
		Date:        time.Date(2024, 5, day, 0, 0, 0, 0, time.UTC),
		Description: id,
		Amount:      decimal.NewFromInt(amount),
		Category:    model.CategoryIncome,
		Type:        model.TypeIncome,
	}
}

func TestSummarize(t *testing.T) {
	t.Run("worked example", func(t *testing.T) {
		txns := []model.Transaction{
			income("salary", 1, 850000),
			expense("rent", 2, model.CategoryOther, 250000),
			expense("groceries", 5, model.CategoryFood, 45000),
		}

		s := Summarize(txns)
		assert.True(t, s.TotalIncome.Equal(decimal.NewFromInt(850000)))
		assert.True(t, s.TotalExpenses.Equal(decimal.NewFromInt(295000)))
		assert.True(t, s.Balance.Equal(decimal.NewFromInt(555000)))
	})

	t.Run("empty set", func(t *testing.T) {
		s := Summarize(nil)
		assert.True(t, s.TotalIncome.IsZero())
		assert.True(t, s.TotalExpenses.IsZero())
		assert.True(t, s.Balance.IsZero())
	})

	t.Run("balance equals income minus expenses exactly", func(t *testing.T) {
		txns := []model.Transaction{
			income("a", 1, 1),
			income("b", 2, 2),
			expense("c", 3, model.CategoryFood, 5),
		}

		s := Summarize(txns)
		assert.True(t, s.Balance.Equal(s.TotalIncome.Sub(s.TotalExpenses)))
	})
}

func TestCategoryBreakdown(t *testing.T) {
	txns := []model.Transaction{
		income("salary", 1, 850000),
		expense("rent", 2, model.CategoryOther, 250000),
		expense("groceries", 5, model.CategoryFood, 45000),
		expense("more-groceries", 6, model.CategoryFood, 5000),
	}

	breakdown := CategoryBreakdown(txns)

	require.Len(t, breakdown, 2, "income and untouched categories are omitted")
	assert.True(t, breakdown[model.CategoryOther].Equal(decimal.NewFromInt(250000)))
	assert.True(t, breakdown[model.CategoryFood].Equal(decimal.NewFromInt(50000)))

	t.Run("values sum to total expenses", func(t *testing.T) {
		total := decimal.Zero
		for _, v := range breakdown {
			total = total.Add(v)
		}
		assert.True(t, total.Equal(Summarize(txns).TotalExpenses))
	})

	t.Run("never contains a zero entry", func(t *testing.T) {
		for category, v := range breakdown {
			assert.False(t, v.IsZero(), "category %s has a zero entry", category)
		}
	})
}

func TestRecentActivity(t *testing.T) {
	t.Run("newest first, capped at n", func(t *testing.T) {
		txns := []model.Transaction{
			expense("day3", 3, model.CategoryFood, 1),
			expense("day8", 8, model.CategoryFood, 1),
			expense("day1", 1, model.CategoryFood, 1),
			expense("day6", 6, model.CategoryFood, 1),
			expense("day5", 5, model.CategoryFood, 1),
			expense("day7", 7, model.CategoryFood, 1),
		}

		recent := RecentActivity(txns, RecentLimit)
		require.Len(t, recent, 5)
		assert.Equal(t, "day8", recent[0].ID)
		assert.Equal(t, "day7", recent[1].ID)
		assert.Equal(t, "day3", recent[4].ID)
	})

	t.Run("ties keep input order", func(t *testing.T) {
		txns := []model.Transaction{
			expense("first", 5, model.CategoryFood, 1),
			expense("second", 5, model.CategoryFood, 1),
			expense("third", 5, model.CategoryFood, 1),
		}

		recent := RecentActivity(txns, 3)
		assert.Equal(t, "first", recent[0].ID)
		assert.Equal(t, "second", recent[1].ID)
		assert.Equal(t, "third", recent[2].ID)
	})

	t.Run("does not mutate its input", func(t *testing.T) {
		txns := []model.Transaction{
			expense("day1", 1, model.CategoryFood, 1),
			expense("day9", 9, model.CategoryFood, 1),
		}

		_ = RecentActivity(txns, 2)
		assert.Equal(t, "day1", txns[0].ID)
	})

	t.Run("fewer transactions than n", func(t *testing.T) {
		recent := RecentActivity([]model.Transaction{expense("only", 1, model.CategoryFood, 1)}, 5)
		assert.Len(t, recent, 1)
	})
}

func TestBudgetUtilization(t *testing.T) {
	budgets := []model.CategoryBudget{
		{Category: model.CategoryFood, Limit: decimal.NewFromInt(150000)},
	}

	findStatus := func(t *testing.T, statuses []BudgetStatus, cat model.Category) BudgetStatus {
		t.Helper()
		for _, s := range statuses {
			if s.Category == cat {
				return s
			}
		}
		t.Fatalf("no status for %s", cat)
		return BudgetStatus{}
	}

	t.Run("under budget", func(t *testing.T) {
		txns := []model.Transaction{expense("groceries", 5, model.CategoryFood, 45000)}

		statuses := BudgetUtilization(txns, budgets)
		food := findStatus(t, statuses, model.CategoryFood)

		assert.InDelta(t, 30.0, food.Percentage, 0.0001)
		assert.False(t, food.OverBudget)
	})

	t.Run("over budget clamps percentage", func(t *testing.T) {
		txns := []model.Transaction{expense("feast", 5, model.CategoryFood, 200000)}

		statuses := BudgetUtilization(txns, budgets)
		food := findStatus(t, statuses, model.CategoryFood)

		assert.Equal(t, 100.0, food.Percentage)
		assert.True(t, food.OverBudget)
	})

	t.Run("exactly at limit is not over", func(t *testing.T) {
		txns := []model.Transaction{expense("exact", 5, model.CategoryFood, 150000)}

		food := findStatus(t, BudgetUtilization(txns, budgets), model.CategoryFood)
		assert.Equal(t, 100.0, food.Percentage)
		assert.False(t, food.OverBudget)
	})

	t.Run("no limit never flags over budget", func(t *testing.T) {
		txns := []model.Transaction{expense("spree", 5, model.CategoryShopping, 999999)}

		shopping := findStatus(t, BudgetUtilization(txns, budgets), model.CategoryShopping)
		assert.Zero(t, shopping.Percentage)
		assert.False(t, shopping.OverBudget)
	})

	t.Run("covers every non-income category", func(t *testing.T) {
		statuses := BudgetUtilization(nil, nil)
		require.Len(t, statuses, 7)
		for _, s := range statuses {
			assert.NotEqual(t, model.CategoryIncome, s.Category)
		}
	})
}

func TestGoalProgress(t *testing.T) {
	t.Run("worked example", func(t *testing.T) {
		goal := model.SavingsGoal{
			ID:            "g1",
			Name:          "New Laptop",
			TargetAmount:  decimal.NewFromInt(1200000),
			CurrentAmount: decimal.NewFromInt(300000),
		}

		status := GoalProgress(goal)
		assert.InDelta(t, 25.0, status.Percentage, 0.0001)
		assert.False(t, status.Completed)

		goal.CurrentAmount = goal.CurrentAmount.Add(decimal.NewFromInt(900000))
		status = GoalProgress(goal)
		assert.InDelta(t, 100.0, status.Percentage, 0.0001)
		assert.True(t, status.Completed)
	})

	t.Run("over-saved goal", func(t *testing.T) {
		goal := model.SavingsGoal{
			ID:            "g2",
			Name:          "Bike",
			TargetAmount:  decimal.NewFromInt(100000),
			CurrentAmount: decimal.NewFromInt(150000),
		}

		status := GoalProgress(goal)
		assert.InDelta(t, 150.0, status.Percentage, 0.0001)
		assert.Equal(t, 100.0, status.DisplayPercentage)
		assert.True(t, status.Completed)
	})
}

func TestAggregationIsDeterministic(t *testing.T) {
	txns := []model.Transaction{
		income("salary", 1, 850000),
		expense("rent", 2, model.CategoryOther, 250000),
		expense("groceries", 5, model.CategoryFood, 45000),
	}
	budgets := []model.CategoryBudget{
		{Category: model.CategoryFood, Limit: decimal.NewFromInt(150000)},
	}

	assert.Equal(t, Summarize(txns), Summarize(txns))
	assert.Equal(t, CategoryBreakdown(txns), CategoryBreakdown(txns))
	assert.Equal(t, RecentActivity(txns, 5), RecentActivity(txns, 5))
	assert.Equal(t, BudgetUtilization(txns, budgets), BudgetUtilization(txns, budgets))
}
