package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/marvus-creator/Malvyn/internal/model"
	"github.com/marvus-creator/Malvyn/internal/service"
)

var _ service.Storage = (*SQLiteStore)(nil)

// Persisted state keys. Each key holds one JSON-encoded value.
const (
	keyTransactions = "transactions"
	keyBudgets      = "budgets"
	keyGoals        = "goals"
	keyCurrentUser  = "current_user"
	keyUsers        = "users"
	keyTheme        = "theme"
)

// saveJSON marshals v and writes it under key.
func (s *SQLiteStore) saveJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode state key %q: %w", key, err)
	}
	return s.setValue(ctx, key, string(data))
}

// loadJSON decodes the value stored under key into out. Stored state is
// not trusted: a missing key or undecodable value leaves out untouched
// and reports ok=false, so callers fall back to their documented default.
func (s *SQLiteStore) loadJSON(ctx context.Context, key string, out any) (bool, error) {
	raw, found, err := s.getValue(ctx, key)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		slog.Warn("discarding undecodable stored state",
			"key", key,
			"error", err)
		return false, nil
	}
	return true, nil
}

// SaveTransactions persists the whole transaction collection.
func (s *SQLiteStore) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	return s.saveJSON(ctx, keyTransactions, transactions)
}

// LoadTransactions returns the stored transaction collection, or an
// empty collection when nothing valid is stored.
func (s *SQLiteStore) LoadTransactions(ctx context.Context) ([]model.Transaction, error) {
	var transactions []model.Transaction
	if _, err := s.loadJSON(ctx, keyTransactions, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// SaveBudgets persists the whole budget collection.
func (s *SQLiteStore) SaveBudgets(ctx context.Context, budgets []model.CategoryBudget) error {
	return s.saveJSON(ctx, keyBudgets, budgets)
}

// LoadBudgets returns the stored budget collection.
func (s *SQLiteStore) LoadBudgets(ctx context.Context) ([]model.CategoryBudget, error) {
	var budgets []model.CategoryBudget
	if _, err := s.loadJSON(ctx, keyBudgets, &budgets); err != nil {
		return nil, err
	}
	return budgets, nil
}

// SaveGoals persists the whole savings goal collection.
func (s *SQLiteStore) SaveGoals(ctx context.Context, goals []model.SavingsGoal) error {
	return s.saveJSON(ctx, keyGoals, goals)
}

// LoadGoals returns the stored savings goal collection.
func (s *SQLiteStore) LoadGoals(ctx context.Context) ([]model.SavingsGoal, error) {
	var goals []model.SavingsGoal
	if _, err := s.loadJSON(ctx, keyGoals, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// SaveCurrentUser records the signed-in user's display name. An empty
// name clears the session.
func (s *SQLiteStore) SaveCurrentUser(ctx context.Context, name string) error {
	if name == "" {
		return s.deleteValue(ctx, keyCurrentUser)
	}
	return s.saveJSON(ctx, keyCurrentUser, name)
}

// LoadCurrentUser returns the signed-in user's display name, or "" when
// no session exists.
func (s *SQLiteStore) LoadCurrentUser(ctx context.Context) (string, error) {
	var name string
	if _, err := s.loadJSON(ctx, keyCurrentUser, &name); err != nil {
		return "", err
	}
	return name, nil
}

// SaveUsers persists the registered-user credential map.
func (s *SQLiteStore) SaveUsers(ctx context.Context, users map[string]model.UserProfile) error {
	return s.saveJSON(ctx, keyUsers, users)
}

// LoadUsers returns the registered-user credential map, keyed by email.
func (s *SQLiteStore) LoadUsers(ctx context.Context) (map[string]model.UserProfile, error) {
	users := make(map[string]model.UserProfile)
	if _, err := s.loadJSON(ctx, keyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SaveTheme persists the display preference.
func (s *SQLiteStore) SaveTheme(ctx context.Context, theme service.Theme) error {
	return s.saveJSON(ctx, keyTheme, theme)
}

// LoadTheme returns the stored display preference, defaulting to dark.
func (s *SQLiteStore) LoadTheme(ctx context.Context) (service.Theme, error) {
	var theme service.Theme
	ok, err := s.loadJSON(ctx, keyTheme, &theme)
	if err != nil {
		return "", err
	}
	if !ok || (theme != service.ThemeDark && theme != service.ThemeLight) {
		return service.ThemeDark, nil
	}
	return theme, nil
}
