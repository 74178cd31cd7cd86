package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/marvus-creator/Malvyn/internal/cli"
	"github.com/marvus-creator/Malvyn/internal/model"
	"github.com/marvus-creator/Malvyn/internal/ofx"
)

func txImportOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import transactions from OFX or QFX (Quicken) files exported from your bank.

Debits become expenses in the Other category; credits become income.
Re-importing the same file is safe: transactions are deduplicated by
their bank-assigned id.

Examples:
  # Import single file
  malvyn tx import-ofx ~/Downloads/bk_jan_2024.qfx

  # Import all QFX files in a directory
  malvyn tx import-ofx ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runTxImportOFX,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")

	return cmd
}

func runTxImportOFX(cmd *cobra.Command, args []string) error {
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

	slog.Info("Importing OFX files",
		"file_count", len(allFiles),
		"dry_run", dryRun)

	bar := progressbar.NewOptions(len(allFiles),
		progressbar.OptionSetDescription("Parsing statements..."),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionClearOnFinish(),
	)

	parser := ofx.NewParser()
	var parsed []model.Transaction
	for _, filePath := range allFiles {
		f, err := os.Open(filePath)
		if err != nil {
			slog.Error("Failed to open file",
				"file", filePath,
				"error", err)
			_ = bar.Add(1)
			continue
		}

		transactions, err := parser.ParseFile(f)
		f.Close()
		if err != nil {
			slog.Error("Failed to parse OFX file",
				"file", filePath,
				"error", err)
			_ = bar.Add(1)
			continue
		}

		if len(transactions) == 0 {
			slog.Warn("No transactions found in file",
				"file", filepath.Base(filePath))
		}
		parsed = append(parsed, transactions...)
		_ = bar.Add(1)
	}

	if len(parsed) == 0 {
		fmt.Println(cli.FormatWarning("No transactions found in any file."))
		return nil
	}

	if dryRun {
		fmt.Println(cli.FormatInfo(fmt.Sprintf("Dry run: %d transactions parsed, nothing saved.", len(parsed))))
		return nil
	}

	added, err := store.AddTransactions(ctx, parsed)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d transactions (%d duplicates skipped).",
		added, len(parsed)-added)))
	return nil
}

// expandFileArgs resolves glob patterns and direct paths into a file list.
func expandFileArgs(args []string) ([]string, error) {
	var allFiles []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			// If no glob matches, check if it's a direct file
			if _, err := os.Stat(pattern); err == nil {
				allFiles = append(allFiles, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			allFiles = append(allFiles, matches...)
		}
	}
	return allFiles, nil
}
