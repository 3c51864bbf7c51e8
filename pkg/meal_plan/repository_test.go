//go:build integration

package meal_plan

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/budgetbite/budgetbite/internal/test_utils"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var db *pgxpool.Pool

func TestMain(m *testing.M) {
	var cleanup func()
	db, cleanup = test_utils.TestWithDB()
	code := m.Run()
	cleanup()
	os.Exit(code)
}

func TestRepositoryImpl_StoreAndListPlans(t *testing.T) {
	// given
	test_utils.TruncateAll(t, db)
	ctx := context.Background()
	repo := NewRepository(db)
	userId := test_utils.InsertUser(t, db, "planner")
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// when
	_, err := repo.StorePlan(ctx, MealPlan{UserId: &userId, Budget: decimal.RequireFromString("10.00"), MealType: "high-protein", CreatedAt: createdAt})
	require.NoError(t, err)
	_, err = repo.StorePlan(ctx, MealPlan{Budget: decimal.RequireFromString("4.50"), MealType: "vegetarian", CreatedAt: createdAt.Add(time.Hour)})
	require.NoError(t, err)
	plans, err := repo.ListPlans(ctx)

	// then
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, userId, *plans[0].UserId)
	assert.True(t, plans[0].Budget.Equal(decimal.NewFromInt(10)))
	assert.True(t, plans[0].CreatedAt.Equal(createdAt))
	assert.Nil(t, plans[1].UserId)
	assert.Equal(t, "vegetarian", plans[1].MealType)
}

func TestRepositoryImpl_DetachUser(t *testing.T) {
	// given
	test_utils.TruncateAll(t, db)
	ctx := context.Background()
	repo := NewRepository(db)
	userId := test_utils.InsertUser(t, db, "leaving")
	_, err := repo.StorePlan(ctx, MealPlan{UserId: &userId, Budget: decimal.NewFromInt(8), MealType: "keto", CreatedAt: time.Now()})
	require.NoError(t, err)

	// when
	detached, err := repo.DetachUser(ctx, userId)

	// then
	require.NoError(t, err)
	assert.Equal(t, 1, detached)
	plans, err := repo.ListPlans(ctx)
	require.NoError(t, err)
	assert.Nil(t, plans[0].UserId)
}
