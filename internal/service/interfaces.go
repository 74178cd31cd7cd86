// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/marvus-creator/Malvyn/internal/model"
)

// Theme is the persisted display preference.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Storage defines the contract for our persistence layer. Each persisted
// collection is saved whole: the ledger mirrors its in-memory state here
// after every mutation.
type Storage interface {
	// Transaction collection
	SaveTransactions(ctx context.Context, transactions []model.Transaction) error
	LoadTransactions(ctx context.Context) ([]model.Transaction, error)

	// Budget collection
	SaveBudgets(ctx context.Context, budgets []model.CategoryBudget) error
	LoadBudgets(ctx context.Context) ([]model.CategoryBudget, error)

	// Savings goal collection
	SaveGoals(ctx context.Context, goals []model.SavingsGoal) error
	LoadGoals(ctx context.Context) ([]model.SavingsGoal, error)

	// Session state
	SaveCurrentUser(ctx context.Context, name string) error
	LoadCurrentUser(ctx context.Context) (string, error)

	// Registered user profiles, keyed by email
	SaveUsers(ctx context.Context, users map[string]model.UserProfile) error
	LoadUsers(ctx context.Context) (map[string]model.UserProfile, error)

	// Display preference
	SaveTheme(ctx context.Context, theme Theme) error
	LoadTheme(ctx context.Context) (Theme, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
