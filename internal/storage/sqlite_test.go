package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marvus-creator/Malvyn/internal/model"
	"github.com/marvus-creator/Malvyn/internal/service"
)

// createTestStore creates a migrated store backed by a temp database.
func createTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestNewSQLiteStoreValidation(t *testing.T) {
	_, err := NewSQLiteStore("")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestMigrate(t *testing.T) {
	ctx := context.Background()
	store := createTestStore(t)

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)

	// Migrating an up-to-date database is a no-op
	require.NoError(t, store.Migrate(ctx))
}

func TestTransactionRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := createTestStore(t)

	txns := []model.Transaction{
		{
			ID:          "t1",
			Date:        time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			Description: "Monthly Salary",
			Amount:      decimal.NewFromInt(850000),
			Category:    model.CategoryIncome,
			Type:        model.TypeIncome,
		},
		{
			ID:          "t2",
			Date:        time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC),
			Description: "Simba Supermarket",
			Amount:      decimal.NewFromInt(45000),
			Category:    model.CategoryFood,
			Type:        model.TypeExpense,
		},
	}

	require.NoError(t, store.SaveTransactions(ctx, txns))

	loaded, err := store.LoadTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "t1", loaded[0].ID)
	assert.True(t, loaded[0].Amount.Equal(decimal.NewFromInt(850000)))
	assert.Equal(t, model.TypeExpense, loaded[1].Type)
}

func TestLoadTransactionsEmpty(t *testing.T) {
	store := createTestStore(t)

	loaded, err := store.LoadTransactions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestBudgetsAndGoalsRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := createTestStore(t)

	budgets := []model.CategoryBudget{
		{Category: model.CategoryFood, Limit: decimal.NewFromInt(150000)},
		{Category: model.CategoryTransport, Limit: decimal.NewFromInt(50000)},
	}
	require.NoError(t, store.SaveBudgets(ctx, budgets))

	goals := []model.SavingsGoal{
		{
			ID:            "g1",
			Name:          "Emergency Fund",
			Icon:          "🛡️",
			TargetAmount:  decimal.NewFromInt(2000000),
			CurrentAmount: decimal.NewFromInt(450000),
		},
	}
	require.NoError(t, store.SaveGoals(ctx, goals))

	loadedBudgets, err := store.LoadBudgets(ctx)
	require.NoError(t, err)
	require.Len(t, loadedBudgets, 2)
	assert.Equal(t, model.CategoryFood, loadedBudgets[0].Category)

	loadedGoals, err := store.LoadGoals(ctx)
	require.NoError(t, err)
	require.Len(t, loadedGoals, 1)
	assert.Equal(t, "Emergency Fund", loadedGoals[0].Name)
	assert.True(t, loadedGoals[0].CurrentAmount.Equal(decimal.NewFromInt(450000)))
}

func TestCurrentUserSession(t *testing.T) {
	ctx := context.Background()
	store := createTestStore(t)

	// No session yet
	name, err := store.LoadCurrentUser(ctx)
	require.NoError(t, err)
	assert.Empty(t, name)

	require.NoError(t, store.SaveCurrentUser(ctx, "Aline"))
	name, err = store.LoadCurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Aline", name)

	// Empty name clears the session
	require.NoError(t, store.SaveCurrentUser(ctx, ""))
	name, err = store.LoadCurrentUser(ctx)
	require.NoError(t, err)
	assert.Empty(t, name)
}

func TestUsersRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := createTestStore(t)

	users := map[string]model.UserProfile{
		"aline@example.com": {Name: "Aline", Email: "aline@example.com", PasswordHash: "$2a$10$abc"},
	}
	require.NoError(t, store.SaveUsers(ctx, users))

	loaded, err := store.LoadUsers(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Aline", loaded["aline@example.com"].Name)
}

func TestThemeDefaultsToDark(t *testing.T) {
	ctx := context.Background()
	store := createTestStore(t)

	theme, err := store.LoadTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, service.ThemeDark, theme)

	require.NoError(t, store.SaveTheme(ctx, service.ThemeLight))
	theme, err = store.LoadTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, service.ThemeLight, theme)
}

func TestCorruptStateFailsClosed(t *testing.T) {
	ctx := context.Background()
	store := createTestStore(t)

	// Write garbage directly under the transactions key
	require.NoError(t, store.setValue(ctx, keyTransactions, "{not json"))

	loaded, err := store.LoadTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)

	// A corrupt theme value falls back to the default
	require.NoError(t, store.setValue(ctx, keyTheme, `"sepia"`))
	theme, err := store.LoadTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, service.ThemeDark, theme)
}

func TestStatePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "reopen.db")

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.SaveCurrentUser(ctx, "Jean"))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()
	require.NoError(t, reopened.Migrate(ctx))

	name, err := reopened.LoadCurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Jean", name)
}
