package meal_plan

import (
	"context"
	"testing"
	"time"

	"github.com/budgetbite/budgetbite/internal/event_bus"
	"github.com/budgetbite/budgetbite/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var repoStub = NewRepositoryStub()
var clock = &utils.FixedClock{At: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

func setup(t *testing.T) (*ServiceImpl, *event_bus.EventBus, func()) {
	bus := event_bus.NewEventBus()
	service := NewService(repoStub, clock, bus)
	return service, bus, func() {
		t.Log("Teardown after test")
		repoStub.Reset()
	}
}

func TestServiceImpl_Record(t *testing.T) {
	t.Run("should store plan with timestamp", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()
		userId := 3

		// when
		plan, err := service.Record(ctx, &userId, decimal.RequireFromString("10.004"), " high-protein ")

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, plan.Id)
		assert.Equal(t, 3, *plan.UserId)
		assert.True(t, plan.Budget.Equal(decimal.RequireFromString("10.00")))
		assert.Equal(t, "high-protein", plan.MealType)
		assert.Equal(t, clock.At, plan.CreatedAt)
	})

	t.Run("should store anonymous plan", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		// when
		plan, err := service.Record(ctx, nil, decimal.NewFromInt(5), "vegetarian")

		// then
		require.NoError(t, err)
		assert.Nil(t, plan.UserId)
		plans, err := service.ListPlans(ctx)
		require.NoError(t, err)
		assert.Len(t, plans, 1)
	})

	t.Run("should return storage error", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()
		repoStub.FailStore = true

		// when
		_, err := service.Record(ctx, nil, decimal.NewFromInt(5), "vegetarian")

		// then
		assert.Error(t, err)
	})
}

func TestServiceImpl_DetachesDeletedUser(t *testing.T) {
	service, bus, teardown := setup(t)
	defer teardown()
	userId, otherId := 3, 4
	_, err := service.Record(ctx, &userId, decimal.NewFromInt(5), "vegetarian")
	require.NoError(t, err)
	_, err = service.Record(ctx, &otherId, decimal.NewFromInt(5), "vegetarian")
	require.NoError(t, err)

	// when
	err = bus.Publish(event_bus.NewEvent(ctx, event_bus.UserDeleting, event_bus.UserDeletingPayload{UserId: 3}))

	// then
	require.NoError(t, err)
	plans, err := service.ListPlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Nil(t, plans[0].UserId)
	assert.Equal(t, 4, *plans[1].UserId)
}
