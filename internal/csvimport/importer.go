// Package csvimport parses transaction CSV exports into ledger transactions.
package csvimport

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marvus-creator/Malvyn/internal/model"
)

// idNamespace seeds the deterministic row ids. Re-importing the same
// file yields the same ids, so the ledger's id dedup makes imports
// idempotent.
var idNamespace = uuid.MustParse("8f3c1c6e-55d4-4f63-9f3d-2d3a7a42c11b")

// Row is a single line of a transaction CSV export.
type Row struct {
	Date        string `csv:"date"`
	Description string `csv:"description"`
	Amount      string `csv:"amount"`
	Category    string `csv:"category"`
	Type        string `csv:"type"`
}

// dateLayouts are tried in order when parsing the date column.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	time.RFC3339,
}

// Importer converts CSV rows into transactions. Rows that cannot be
// converted are skipped with a warning rather than failing the whole file.
type Importer struct{}

func NewImporter() *Importer {
	return &Importer{}
}

// Parse reads all rows from r and returns the transactions that converted
// cleanly along with a count of rows that were skipped.
func (i *Importer) Parse(r io.Reader) ([]model.Transaction, int, error) {
	var rows []*Row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, 0, fmt.Errorf("failed to read CSV: %w", err)
	}

	transactions := make([]model.Transaction, 0, len(rows))
	skipped := 0
	for n, row := range rows {
		if row.Date == "" && row.Description == "" && row.Amount == "" {
			continue
		}

		tx, err := i.convertRow(n, *row)
		if err != nil {
			slog.Warn("Skipping CSV row",
				"row", n+2, // account for the header line
				"error", err)
			skipped++
			continue
		}
		transactions = append(transactions, tx)
	}

	return transactions, skipped, nil
}

func (i *Importer) convertRow(index int, row Row) (model.Transaction, error) {
	date, err := parseDate(row.Date)
	if err != nil {
		return model.Transaction{}, err
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(row.Amount))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("invalid amount %q: %w", row.Amount, err)
	}

	txType, err := model.ParseTransactionType(strings.TrimSpace(row.Type))
	if err != nil {
		// Infer the type from the amount sign when the column is absent.
		if strings.TrimSpace(row.Type) != "" {
			return model.Transaction{}, err
		}
		txType = model.TypeIncome
		if amount.IsNegative() {
			txType = model.TypeExpense
		}
	}
	amount = amount.Abs()

	category := model.CategoryOther
	if txType == model.TypeIncome {
		category = model.CategoryIncome
	}
	if c := strings.TrimSpace(row.Category); c != "" {
		parsed, err := model.ParseCategory(c)
		if err != nil {
			return model.Transaction{}, err
		}
		category = parsed
	}
	if txType == model.TypeIncome && category != model.CategoryIncome {
		return model.Transaction{}, fmt.Errorf("income rows must use category %q, got %q", model.CategoryIncome, category)
	}
	if txType == model.TypeExpense && category == model.CategoryIncome {
		return model.Transaction{}, fmt.Errorf("expense rows cannot use category %q", model.CategoryIncome)
	}

	key := fmt.Sprintf("%d|%s|%s|%s|%s", index, row.Date, row.Description, row.Amount, row.Type)

	tx := model.Transaction{
		ID:          "csv-" + uuid.NewSHA1(idNamespace, []byte(key)).String(),
		Date:        date,
		Description: strings.TrimSpace(row.Description),
		Amount:      amount,
		Category:    category,
		Type:        txType,
	}
	if err := tx.Validate(); err != nil {
		return model.Transaction{}, err
	}
	return tx, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
