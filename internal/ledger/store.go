// Package ledger implements the record store: the single owner of the
// transaction, budget, and savings goal collections for a signed-in
// session. Every successful mutation is mirrored to persistent storage
// before it returns.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marvus-creator/Malvyn/internal/common"
	"github.com/marvus-creator/Malvyn/internal/model"
	"github.com/marvus-creator/Malvyn/internal/service"
)

// Store owns the in-memory entity collections and writes them back
// through its storage port after each mutation. It is not safe for
// concurrent use; all access happens on one logical thread of control.
type Store struct {
	storage      service.Storage
	now          func() time.Time
	newID        func() string
	currentUser  string
	transactions []model.Transaction
	budgets      []model.CategoryBudget
	goals        []model.SavingsGoal
}

// Open loads all collections from storage and returns a ready store.
func Open(ctx context.Context, storage service.Storage) (*Store, error) {
	if storage == nil {
		return nil, fmt.Errorf("storage is required")
	}

	transactions, err := storage.LoadTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	budgets, err := storage.LoadBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}
	goals, err := storage.LoadGoals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}
	currentUser, err := storage.LoadCurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	slog.Debug("ledger loaded",
		"transactions", len(transactions),
		"budgets", len(budgets),
		"goals", len(goals))

	return &Store{
		storage:      storage,
		now:          time.Now,
		newID:        func() string { return uuid.NewString() },
		currentUser:  currentUser,
		transactions: transactions,
		budgets:      budgets,
		goals:        goals,
	}, nil
}

// TransactionInput carries the user-supplied fields for a new transaction.
// ID and date are assigned by the store.
type TransactionInput struct {
	Description string
	Amount      string
	Category    model.Category
	Type        model.TransactionType
}

// AddTransaction validates the input, assigns a fresh id and today's
// date, prepends the transaction, and persists the collection. A failed
// validation leaves state unchanged.
func (s *Store) AddTransaction(ctx context.Context, input TransactionInput) (*model.Transaction, error) {
	if input.Description == "" {
		return nil, fmt.Errorf("%w: description cannot be empty", common.ErrValidation)
	}

	amount, err := decimal.NewFromString(input.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: amount %q is not a number", common.ErrValidation, input.Amount)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount cannot be negative", common.ErrValidation)
	}

	category := input.Category
	// Income transactions always land in the reserved Income category.
	if input.Type == model.TypeIncome {
		category = model.CategoryIncome
	} else if category == model.CategoryIncome {
		return nil, fmt.Errorf("%w: the Income category is reserved for income transactions", common.ErrValidation)
	}

	txn := model.Transaction{
		ID:          s.newID(),
		Date:        s.now(),
		Description: input.Description,
		Amount:      amount,
		Category:    category,
		Type:        input.Type,
	}
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	updated := append([]model.Transaction{txn}, s.transactions...)
	if err := s.storage.SaveTransactions(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to persist transactions: %w", err)
	}
	s.transactions = updated

	return &txn, nil
}

// AddTransactions inserts already-built transactions in bulk, skipping
// ids the store has seen before. Used by statement importers.
func (s *Store) AddTransactions(ctx context.Context, txns []model.Transaction) (int, error) {
	seen := make(map[string]bool, len(s.transactions))
	for _, existing := range s.transactions {
		seen[existing.ID] = true
	}

	var fresh []model.Transaction
	for _, txn := range txns {
		if err := txn.Validate(); err != nil {
			return 0, fmt.Errorf("%w: %v", common.ErrValidation, err)
		}
		if seen[txn.ID] {
			continue
		}
		seen[txn.ID] = true
		fresh = append(fresh, txn)
	}

	if len(fresh) == 0 {
		return 0, nil
	}

	updated := append(fresh, s.transactions...)
	if err := s.storage.SaveTransactions(ctx, updated); err != nil {
		return 0, fmt.Errorf("failed to persist transactions: %w", err)
	}
	s.transactions = updated

	return len(fresh), nil
}

// DeleteTransaction removes the transaction with the given id. An
// absent id is a no-op, not an error.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	idx := -1
	for i, txn := range s.transactions {
		if txn.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	updated := make([]model.Transaction, 0, len(s.transactions)-1)
	updated = append(updated, s.transactions[:idx]...)
	updated = append(updated, s.transactions[idx+1:]...)

	if err := s.storage.SaveTransactions(ctx, updated); err != nil {
		return fmt.Errorf("failed to persist transactions: %w", err)
	}
	s.transactions = updated

	return nil
}

// UpsertBudget replaces the limit for a category's budget, inserting
// the budget if none exists. Category is the dedup key.
func (s *Store) UpsertBudget(ctx context.Context, category model.Category, limit decimal.Decimal) error {
	budget := model.CategoryBudget{Category: category, Limit: limit}
	if err := budget.Validate(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	updated := make([]model.CategoryBudget, len(s.budgets))
	copy(updated, s.budgets)

	replaced := false
	for i, b := range updated {
		if b.Category == category {
			updated[i].Limit = limit
			replaced = true
			break
		}
	}
	if !replaced {
		updated = append(updated, budget)
	}

	if err := s.storage.SaveBudgets(ctx, updated); err != nil {
		return fmt.Errorf("failed to persist budgets: %w", err)
	}
	s.budgets = updated

	return nil
}

// AddGoal creates a savings goal with no progress yet.
func (s *Store) AddGoal(ctx context.Context, name, target, icon string) (*model.SavingsGoal, error) {
	targetAmount, err := decimal.NewFromString(target)
	if err != nil {
		return nil, fmt.Errorf("%w: target %q is not a number", common.ErrValidation, target)
	}

	if icon == "" {
		icon = "🎯"
	}

	goal := model.SavingsGoal{
		ID:            s.newID(),
		Name:          name,
		Icon:          icon,
		TargetAmount:  targetAmount,
		CurrentAmount: decimal.Zero,
	}
	if err := goal.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	updated := append(append([]model.SavingsGoal{}, s.goals...), goal)
	if err := s.storage.SaveGoals(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to persist goals: %w", err)
	}
	s.goals = updated

	return &goal, nil
}

// UpdateGoalAmount sets a goal's accumulated amount. This is a set, not
// an increment; callers wanting "add N" use ContributeToGoal. An absent
// id is a no-op.
func (s *Store) UpdateGoalAmount(ctx context.Context, id string, newCurrent decimal.Decimal) error {
	if newCurrent.IsNegative() {
		return fmt.Errorf("%w: goal progress cannot be negative", common.ErrValidation)
	}

	idx := -1
	for i, g := range s.goals {
		if g.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	updated := make([]model.SavingsGoal, len(s.goals))
	copy(updated, s.goals)
	updated[idx].CurrentAmount = newCurrent

	if err := s.storage.SaveGoals(ctx, updated); err != nil {
		return fmt.Errorf("failed to persist goals: %w", err)
	}
	s.goals = updated

	return nil
}

// ContributeToGoal adds delta to a goal's accumulated amount. The goal
// must exist; use UpdateGoalAmount for the raw set operation.
func (s *Store) ContributeToGoal(ctx context.Context, id, delta string) (*model.SavingsGoal, error) {
	amount, err := decimal.NewFromString(delta)
	if err != nil {
		return nil, fmt.Errorf("%w: amount %q is not a number", common.ErrValidation, delta)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: contribution cannot be negative", common.ErrValidation)
	}

	for _, g := range s.goals {
		if g.ID == id {
			if err := s.UpdateGoalAmount(ctx, id, g.CurrentAmount.Add(amount)); err != nil {
				return nil, err
			}
			goal := s.findGoal(id)
			return goal, nil
		}
	}
	return nil, fmt.Errorf("goal %s: %w", id, common.ErrNotFound)
}

func (s *Store) findGoal(id string) *model.SavingsGoal {
	for _, g := range s.goals {
		if g.ID == id {
			goal := g
			return &goal
		}
	}
	return nil
}

// Transactions returns a copy of the transaction collection.
func (s *Store) Transactions() []model.Transaction {
	out := make([]model.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Budgets returns a copy of the budget collection.
func (s *Store) Budgets() []model.CategoryBudget {
	out := make([]model.CategoryBudget, len(s.budgets))
	copy(out, s.budgets)
	return out
}

// Goals returns a copy of the savings goal collection.
func (s *Store) Goals() []model.SavingsGoal {
	out := make([]model.SavingsGoal, len(s.goals))
	copy(out, s.goals)
	return out
}

// CurrentUser returns the signed-in user's display name, or "".
func (s *Store) CurrentUser() string {
	return s.currentUser
}
