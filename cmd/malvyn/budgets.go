package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/marvus-creator/Malvyn/internal/cli"
	"github.com/marvus-creator/Malvyn/internal/model"
	"github.com/marvus-creator/Malvyn/internal/report"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Set and review category budgets",
	}

	cmd.AddCommand(budgetSetCmd())
	cmd.AddCommand(budgetListCmd())

	return cmd
}

func budgetSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <category> <limit>",
		Short: "Set the monthly limit for a category",
		Long: `Set the spending limit for a category. Setting a category that
already has a budget replaces its limit; a limit of 0 clears it.
The Income category cannot be budgeted.`,
		Args: cobra.ExactArgs(2),
		RunE: runBudgetSet,
	}
}

func runBudgetSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	category, err := model.ParseCategory(args[0])
	if err != nil {
		return err
	}

	limit, err := decimal.NewFromString(args[1])
	if err != nil {
		return fmt.Errorf("limit %q is not a number", args[1])
	}

	store, storage, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer storage.Close()

	if err := requireUser(store); err != nil {
		return err
	}

	if err := store.UpsertBudget(ctx, category, limit); err != nil {
		return err
	}

	if limit.IsZero() {
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Cleared the %s budget.", category)))
	} else {
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Budget for %s set to %s.",
			category, cli.FormatMoney(limit))))
	}
	return nil
}

func budgetListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show spend against every category budget",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, storage, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer storage.Close()

			if err := requireUser(store); err != nil {
				return err
			}

			statuses := report.BudgetUtilization(store.Transactions(), store.Budgets())

			header := fmt.Sprintf("%-16s %18s %18s %8s  %s", "CATEGORY", "SPENT", "LIMIT", "USED", "STATUS")
			fmt.Println(cli.TableHeaderStyle.Render(header))
			for _, s := range statuses {
				limit := "—"
				used := ""
				status := cli.SubtleStyle.Render("no budget")
				if s.Limit.IsPositive() {
					limit = cli.FormatMoney(s.Limit)
					used = fmt.Sprintf("%.0f%%", s.Percentage)
					if s.OverBudget {
						status = cli.ErrorStyle.Render("OVER BUDGET")
					} else {
						status = cli.SuccessStyle.Render("ON TRACK")
					}
				}
				fmt.Printf("%-16s %18s %18s %8s  %s\n",
					s.Category, cli.FormatMoney(s.Spent), limit, used, status)
			}

			return nil
		},
	}
}
