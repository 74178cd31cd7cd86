package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/marvus-creator/Malvyn/internal/cli"
	"github.com/marvus-creator/Malvyn/internal/csvimport"
	"github.com/marvus-creator/Malvyn/internal/model"
)

func txImportCSVCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-csv [files...]",
		Short: "Import transactions from CSV files",
		Long: `Import transactions from CSV files with the columns
date, description, amount, category, type.

Rows that fail to parse are skipped with a warning; the rest import
normally. When the type column is empty the sign of the amount decides:
negative amounts become expenses, positive ones income.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runTxImportCSV,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")

	return cmd
}

func runTxImportCSV(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	allFiles, err := expandFileArgs(args)
	if err != nil {
		return err
	}
	if len(allFiles) == 0 {
		return fmt.Errorf("no files found to import")
	}

	store, storage, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer storage.Close()

	if err := requireUser(store); err != nil {
		return err
	}

	importer := csvimport.NewImporter()

	bar := progressbar.NewOptions(len(allFiles),
		progressbar.OptionSetDescription("Reading CSV files..."),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionClearOnFinish(),
	)

	var parsed []model.Transaction
	totalSkipped := 0
	for _, filePath := range allFiles {
		f, err := os.Open(filePath)
		if err != nil {
			slog.Error("Failed to open file",
				"file", filePath,
				"error", err)
			_ = bar.Add(1)
			continue
		}

		transactions, skipped, err := importer.Parse(f)
		f.Close()
		if err != nil {
			slog.Error("Failed to parse CSV file",
				"file", filePath,
				"error", err)
			_ = bar.Add(1)
			continue
		}

		parsed = append(parsed, transactions...)
		totalSkipped += skipped
		_ = bar.Add(1)
	}

	if len(parsed) == 0 {
		fmt.Println(cli.FormatWarning("No transactions found in any file."))
		return nil
	}

	if dryRun {
		fmt.Println(cli.FormatInfo(fmt.Sprintf("Dry run: %d transactions parsed, %d rows skipped, nothing saved.",
			len(parsed), totalSkipped)))
		return nil
	}

	added, err := store.AddTransactions(ctx, parsed)
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("Imported %d transactions", added)
	if totalSkipped > 0 {
		msg += fmt.Sprintf(" (%d rows skipped)", totalSkipped)
	}
	fmt.Println(cli.FormatSuccess(msg + "."))
	return nil
}
