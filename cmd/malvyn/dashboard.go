package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marvus-creator/Malvyn/internal/cli"
	"github.com/marvus-creator/Malvyn/internal/model"
	"github.com/marvus-creator/Malvyn/internal/report"
	"github.com/marvus-creator/Malvyn/internal/tui"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive dashboard",
		Long: `Open the interactive dashboard: headline totals, transaction
history, and budget/goal progress, in three tabs.

With --plain the same numbers print as plain text and the command
exits, which is handy in scripts and over dumb terminals.`,
		RunE: runDashboard,
	}

	cmd.Flags().Bool("plain", false, "print a text summary instead of the TUI")

	return cmd
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	plain, _ := cmd.Flags().GetBool("plain")

	store, storage, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer storage.Close()

	if err := requireUser(store); err != nil {
		return err
	}

	if plain {
		printPlainDashboard(store)
		return nil
	}

	theme, err := storage.LoadTheme(ctx)
	if err != nil {
		return err
	}

	return tui.Run(ctx, tui.Config{
		Store:   store,
		Storage: storage,
		Theme:   theme,
	})
}

func printPlainDashboard(store dashboardSource) {
	txns := store.Transactions()
	summary := report.Summarize(txns)

	fmt.Println(cli.FormatTitle("Malvyn"))
	fmt.Printf("Current Balance:  %s\n", cli.FormatMoney(summary.Balance))
	fmt.Printf("Total Income:     %s\n", cli.FormatMoney(summary.TotalIncome))
	fmt.Printf("Total Expenses:   %s\n", cli.FormatMoney(summary.TotalExpenses))

	breakdown := report.CategoryBreakdown(txns)
	if len(breakdown) > 0 {
		fmt.Println("\nSpending Breakdown")
		for _, category := range model.ExpenseCategories() {
			spent, ok := breakdown[category]
			if !ok {
				continue
			}
			fmt.Printf("  %-16s %s\n", category, cli.FormatMoney(spent))
		}
	}

	recent := report.RecentActivity(txns, report.RecentLimit)
	if len(recent) > 0 {
		fmt.Println("\nRecent Transactions")
		for _, t := range recent {
			fmt.Printf("  %s  %-32s %s\n",
				t.Date.Format("2006-01-02"),
				t.Description,
				cli.FormatSigned(t))
		}
	}

	statuses := report.BudgetUtilization(txns, store.Budgets())
	printed := false
	for _, s := range statuses {
		if !s.Limit.IsPositive() {
			continue
		}
		if !printed {
			fmt.Println("\nBudgets")
			printed = true
		}
		status := "on track"
		if s.OverBudget {
			status = "OVER BUDGET"
		}
		fmt.Printf("  %-16s %s / %s (%.0f%%, %s)\n",
			s.Category,
			cli.FormatMoney(s.Spent),
			cli.FormatMoney(s.Limit),
			s.Percentage,
			status)
	}

	goals := store.Goals()
	if len(goals) > 0 {
		fmt.Println("\nSavings Goals")
		for _, g := range goals {
			status := report.GoalProgress(g)
			done := fmt.Sprintf("%.0f%%", status.Percentage)
			if status.Completed {
				done += " ✓"
			}
			fmt.Printf("  %s %-24s %s / %s (%s)\n",
				g.Icon,
				g.Name,
				cli.FormatMoney(g.CurrentAmount),
				cli.FormatMoney(g.TargetAmount),
				done)
		}
	}
}

// dashboardSource is the slice of the ledger the plain dashboard reads.
type dashboardSource interface {
	Transactions() []model.Transaction
	Budgets() []model.CategoryBudget
	Goals() []model.SavingsGoal
}
