package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marvus-creator/Malvyn/internal/cli"
	"github.com/marvus-creator/Malvyn/internal/ledger"
	"github.com/marvus-creator/Malvyn/internal/model"
	"github.com/marvus-creator/Malvyn/internal/report"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Record and review transactions",
	}

	cmd.AddCommand(txAddCmd())
	cmd.AddCommand(txListCmd())
	cmd.AddCommand(txDeleteCmd())
	cmd.AddCommand(txImportOFXCmd())
	cmd.AddCommand(txImportCSVCmd())

	return cmd
}

func txAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <description> <amount>",
		Short: "Record a transaction",
		Long: `Record an income or expense transaction dated today.

Amounts are always entered as positive numbers; direction comes from
--type. Income always lands in the Income category.

Examples:
  malvyn tx add "Groceries at Simba" 45000 --category Food
  malvyn tx add "January salary" 850000 --type income`,
		Args: cobra.ExactArgs(2),
		RunE: runTxAdd,
	}

	cmd.Flags().String("category", string(model.CategoryOther), "spending category")
	cmd.Flags().String("type", string(model.TypeExpense), "transaction type (income, expense)")

	return cmd
}

func runTxAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	categoryFlag, _ := cmd.Flags().GetString("category")
	typeFlag, _ := cmd.Flags().GetString("type")

	txType, err := model.ParseTransactionType(typeFlag)
	if err != nil {
		return err
	}

	category := model.CategoryIncome
	if txType == model.TypeExpense {
		if category, err = model.ParseCategory(categoryFlag); err != nil {
			return err
		}
	}

	store, storage, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer storage.Close()

	if err := requireUser(store); err != nil {
		return err
	}

	txn, err := store.AddTransaction(ctx, ledger.TransactionInput{
		Description: args[0],
		Amount:      args[1],
		Category:    category,
		Type:        txType,
	})
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s %s (%s)",
		txn.Description, cli.FormatMoney(txn.Amount), txn.Category)))
	return nil
}

func txListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE:  runTxList,
	}

	cmd.Flags().IntP("limit", "n", 0, "show at most n transactions (0 = all)")

	return cmd
}

func runTxList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	limit, _ := cmd.Flags().GetInt("limit")

	store, storage, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer storage.Close()

	if err := requireUser(store); err != nil {
		return err
	}

	txns := store.Transactions()
	if len(txns) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No transactions yet."))
		return nil
	}

	if limit <= 0 {
		limit = len(txns)
	}
	sorted := report.RecentActivity(txns, limit)

	header := fmt.Sprintf("%-12s %-36s %-36s %-16s %18s", "DATE", "ID", "DESCRIPTION", "CATEGORY", "AMOUNT")
	fmt.Println(cli.TableHeaderStyle.Render(header))
	for _, t := range sorted {
		fmt.Printf("%-12s %-36s %-36s %-16s %18s\n",
			t.Date.Format("2006-01-02"),
			t.ID,
			t.Description,
			t.Category,
			cli.FormatSigned(t))
	}

	return nil
}

func txDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, storage, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer storage.Close()

			if err := requireUser(store); err != nil {
				return err
			}

			if err := store.DeleteTransaction(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Deleted " + args[0]))
			return nil
		},
	}
}
