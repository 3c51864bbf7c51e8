package grocery

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/budgetbite/budgetbite/internal/event_bus"
	"github.com/budgetbite/budgetbite/internal/utils"
	"github.com/budgetbite/budgetbite/pkg/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 42, Uid: "uid-42", Username: "shopper"})

var repoStub = NewRepositoryStub()
var clock = &utils.FixedClock{At: time.Date(2025, 5, 10, 15, 30, 0, 0, time.UTC)}

func setup(t *testing.T) (*ServiceImpl, *event_bus.EventBus, func()) {
	bus := event_bus.NewEventBus()
	service := NewService(repoStub, clock, bus)
	return service, bus, func() {
		t.Log("Teardown after test")
		repoStub.Reset()
	}
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestServiceImpl_CreateItem(t *testing.T) {
	t.Run("should store item owned by current user", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		// when
		created, err := service.CreateItem(ctx, GroceryItem{
			Name:     " Eggs ",
			Category: "high-protein",
			Price:    price("3.499"),
			Store:    "Costco",
		})

		// then
		require.NoError(t, err)
		assert.NotZero(t, created.Id)
		assert.Equal(t, "Eggs", created.Name)
		assert.True(t, created.Price.Equal(price("3.50")))
		require.NotNil(t, created.UserId)
		assert.Equal(t, 42, *created.UserId)
		assert.Equal(t, time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC), created.LastUpdated)
	})

	t.Run("should keep explicit owner", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()
		owner := 7

		// when
		created, err := service.CreateItem(context.Background(), GroceryItem{
			Name: "Tofu", Category: "vegetarian", Price: price("2"), Store: "Aldi", UserId: &owner,
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, 7, *created.UserId)
	})

	t.Run("should reject invalid items", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		cases := map[string]GroceryItem{
			"missing name":     {Category: "c", Price: price("1"), Store: "s"},
			"missing category": {Name: "n", Price: price("1"), Store: "s"},
			"missing store":    {Name: "n", Category: "c", Price: price("1")},
			"zero price":       {Name: "n", Category: "c", Price: decimal.Zero, Store: "s"},
			"negative price":   {Name: "n", Category: "c", Price: price("-1"), Store: "s"},
			"price too large":  {Name: "n", Category: "c", Price: price("100000000"), Store: "s"},
			"name too long":    {Name: strings.Repeat("n", 101), Category: "c", Price: price("1"), Store: "s"},
			"category too long": {Name: "n", Category: strings.Repeat("c", 51), Price: price("1"), Store: "s"},
			"store too long":    {Name: "n", Category: "c", Price: price("1"), Store: strings.Repeat("s", 51)},
			"negative protein": {Name: "n", Category: "c", Price: price("1"), Store: "s",
				ProteinPer100g: decimal.NewNullDecimal(price("-3"))},
			"protein too large": {Name: "n", Category: "c", Price: price("1"), Store: "s",
				ProteinPer100g: decimal.NewNullDecimal(price("1e12"))},
		}
		for name, item := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := service.CreateItem(ctx, item)
				assert.ErrorIs(t, err, ErrItemDataInvalid)
			})
		}
	})
}

func TestServiceImpl_CreateItem_Limits(t *testing.T) {
	t.Run("should accept values at the column limits", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()

		// when
		created, err := service.CreateItem(ctx, GroceryItem{
			Name:           strings.Repeat("ž", 100),
			Category:       strings.Repeat("c", 50),
			Price:          price("99999999.99"),
			Store:          strings.Repeat("s", 50),
			ProteinPer100g: decimal.NewNullDecimal(price("99999999.99")),
		})

		// then
		require.NoError(t, err)
		assert.NotZero(t, created.Id)
	})
}

func TestServiceImpl_UpdateItem(t *testing.T) {
	t.Run("should reject price over the column limit", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()
		created, err := service.CreateItem(ctx, GroceryItem{Name: "Eggs", Category: "high-protein", Price: price("3.49"), Store: "Costco"})
		require.NoError(t, err)
		tooExpensive := price("1e12")

		// when
		_, err = service.UpdateItem(ctx, created.Id, ItemUpdate{Price: &tooExpensive})

		// then
		assert.ErrorIs(t, err, ErrItemDataInvalid)
		stored, err := repoStub.GetItem(ctx, created.Id)
		require.NoError(t, err)
		assert.True(t, stored.Price.Equal(price("3.49")))
	})

	t.Run("should change only given fields and bump last updated", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()
		created, err := service.CreateItem(ctx, GroceryItem{Name: "Eggs", Category: "high-protein", Price: price("3.49"), Store: "Costco"})
		require.NoError(t, err)
		clock.Advance(48 * time.Hour)
		defer clock.Advance(-48 * time.Hour)
		newPrice := price("2.99")
		protein := decimal.NewNullDecimal(price("13"))

		// when
		updated, err := service.UpdateItem(ctx, created.Id, ItemUpdate{Price: &newPrice, ProteinPer100g: &protein})

		// then
		require.NoError(t, err)
		assert.Equal(t, "Eggs", updated.Name)
		assert.Equal(t, "Costco", updated.Store)
		assert.True(t, updated.Price.Equal(newPrice))
		assert.True(t, updated.ProteinPer100g.Valid)
		assert.Equal(t, time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC), updated.LastUpdated)
	})

	t.Run("should fail for missing item", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()
		name := "x"

		// when
		_, err := service.UpdateItem(ctx, 99, ItemUpdate{Name: &name})

		// then
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("should reject update making item invalid", func(t *testing.T) {
		service, _, teardown := setup(t)
		defer teardown()
		created, err := service.CreateItem(ctx, GroceryItem{Name: "Eggs", Category: "c", Price: price("3.49"), Store: "Costco"})
		require.NoError(t, err)
		zero := decimal.Zero

		// when
		_, err = service.UpdateItem(ctx, created.Id, ItemUpdate{Price: &zero})

		// then
		assert.ErrorIs(t, err, ErrItemDataInvalid)
	})
}

func TestServiceImpl_FindByCategory(t *testing.T) {
	service, _, teardown := setup(t)
	defer teardown()
	for _, item := range []GroceryItem{
		{Name: "Eggs", Category: "High-Protein", Price: price("3.49"), Store: "Costco"},
		{Name: "Lettuce", Category: "vegetarian", Price: price("1.2"), Store: "Aldi"},
	} {
		_, err := service.CreateItem(ctx, item)
		require.NoError(t, err)
	}

	// when
	found, err := service.FindByCategory(ctx, "protein")

	// then
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Eggs", found[0].Name)
}

func TestServiceImpl_DetachesDeletedUser(t *testing.T) {
	service, bus, teardown := setup(t)
	defer teardown()
	created, err := service.CreateItem(ctx, GroceryItem{Name: "Eggs", Category: "c", Price: price("3.49"), Store: "Costco"})
	require.NoError(t, err)

	// when
	err = bus.Publish(event_bus.NewEvent(ctx, event_bus.UserDeleting, event_bus.UserDeletingPayload{UserId: 42}))

	// then
	require.NoError(t, err)
	stored, err := service.GetItem(ctx, created.Id)
	require.NoError(t, err)
	assert.Nil(t, stored.UserId)
}
