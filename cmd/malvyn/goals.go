package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marvus-creator/Malvyn/internal/cli"
	"github.com/marvus-creator/Malvyn/internal/report"
)

func goalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Track savings goals",
	}

	cmd.AddCommand(goalAddCmd())
	cmd.AddCommand(goalSaveCmd())
	cmd.AddCommand(goalListCmd())

	return cmd
}

func goalAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name> <target>",
		Short: "Create a savings goal",
		Long: `Create a savings goal with the given target amount.

Examples:
  malvyn goal add "Emergency Fund" 2000000 --icon 🛡️
  malvyn goal add "New Laptop" 1200000`,
		Args: cobra.ExactArgs(2),
		RunE: runGoalAdd,
	}

	cmd.Flags().String("icon", "", "emoji shown next to the goal")

	return cmd
}

func runGoalAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	icon, _ := cmd.Flags().GetString("icon")

	store, storage, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer storage.Close()

	if err := requireUser(store); err != nil {
		return err
	}

	goal, err := store.AddGoal(ctx, args[0], args[1], icon)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s %s created with a target of %s.",
		goal.Icon, goal.Name, cli.FormatMoney(goal.TargetAmount))))
	return nil
}

func goalSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <id> <amount>",
		Short: "Add savings toward a goal",
		Long: `Add an amount to a goal's progress. Saving past the target is
allowed; the goal simply shows as completed.`,
		Args: cobra.ExactArgs(2),
		RunE: runGoalSave,
	}
}

func runGoalSave(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, storage, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer storage.Close()

	if err := requireUser(store); err != nil {
		return err
	}

	goal, err := store.ContributeToGoal(ctx, args[0], args[1])
	if err != nil {
		return err
	}

	status := report.GoalProgress(*goal)
	msg := fmt.Sprintf("%s %s: %s of %s (%.0f%%)",
		goal.Icon, goal.Name,
		cli.FormatMoney(goal.CurrentAmount),
		cli.FormatMoney(goal.TargetAmount),
		status.Percentage)
	if status.Completed {
		msg += " " + cli.CheckIcon
	}
	fmt.Println(cli.FormatSuccess(msg))
	return nil
}

func goalListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List savings goals and their progress",
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

			goals := store.Goals()
			if len(goals) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No savings goals yet."))
				return nil
			}

			header := fmt.Sprintf("%-36s %-24s %18s %18s %8s", "ID", "NAME", "SAVED", "TARGET", "DONE")
			fmt.Println(cli.TableHeaderStyle.Render(header))
			for _, g := range goals {
				status := report.GoalProgress(g)
				done := fmt.Sprintf("%.0f%%", status.Percentage)
				if status.Completed {
					done = cli.SuccessStyle.Render(done + " " + cli.CheckIcon)
				}
				fmt.Printf("%-36s %-24s %18s %18s %8s\n",
					g.ID,
					g.Icon+" "+g.Name,
					cli.FormatMoney(g.CurrentAmount),
					cli.FormatMoney(g.TargetAmount),
					done)
			}

			return nil
		},
	}
}
