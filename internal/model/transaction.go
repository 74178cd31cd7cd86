// Package model defines the core entities tracked by the application.
package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money coming in from money going out.
// The sign of a transaction is carried here, never by Amount.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// ParseTransactionType parses a user-supplied type string.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case TypeIncome:
		return TypeIncome, nil
	case TypeExpense:
		return TypeExpense, nil
	default:
		return "", fmt.Errorf("invalid transaction type %q (want income or expense)", s)
	}
}

// Transaction represents a single dated money movement.
type Transaction struct {
	Date        time.Time       `json:"date"`
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Category    Category        `json:"category"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
}

// Signed returns the amount with its direction applied: positive for
// income, negative for expenses.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Validate checks the transaction invariants.
func (t Transaction) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("transaction id cannot be empty")
	}
	if t.Description == "" {
		return fmt.Errorf("transaction description cannot be empty")
	}
	if t.Amount.IsNegative() {
		return fmt.Errorf("transaction amount cannot be negative: %s", t.Amount)
	}
	if t.Type != TypeIncome && t.Type != TypeExpense {
		return fmt.Errorf("invalid transaction type %q", t.Type)
	}
	if !t.Category.Valid() {
		return fmt.Errorf("invalid category %q", t.Category)
	}
	return nil
}
