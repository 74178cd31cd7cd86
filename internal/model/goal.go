package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SavingsGoal is a target amount with accumulated progress toward it.
// CurrentAmount may exceed TargetAmount; over-saving is allowed and only
// clamped when rendering progress, never in storage.
type SavingsGoal struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Icon          string          `json:"icon"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
}

// Validate checks the goal invariants.
func (g SavingsGoal) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("goal id cannot be empty")
	}
	if g.Name == "" {
		return fmt.Errorf("goal name cannot be empty")
	}
	if !g.TargetAmount.IsPositive() {
		return fmt.Errorf("goal target must be positive: %s", g.TargetAmount)
	}
	if g.CurrentAmount.IsNegative() {
		return fmt.Errorf("goal progress cannot be negative: %s", g.CurrentAmount)
	}
	return nil
}
