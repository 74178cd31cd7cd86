package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CategoryBudget is a monthly spending target for one expense category.
// Category is the dedup key: at most one budget exists per category.
// A limit of zero means no budget is set.
type CategoryBudget struct {
	Category Category        `json:"category"`
	Limit    decimal.Decimal `json:"limit"`
}

// Validate checks the budget invariants.
func (b CategoryBudget) Validate() error {
	if !b.Category.Valid() {
		return fmt.Errorf("invalid category %q", b.Category)
	}
	if b.Category == CategoryIncome {
		return fmt.Errorf("the Income category cannot have a budget")
	}
	if b.Limit.IsNegative() {
		return fmt.Errorf("budget limit cannot be negative: %s", b.Limit)
	}
	return nil
}
