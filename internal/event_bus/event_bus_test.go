package event_bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_Publish(t *testing.T) {
	t.Run("should call handlers in subscription order", func(t *testing.T) {
		// given
		bus := NewEventBus()
		var calls []string
		bus.Subscribe(UserDeleting, func(e Event) error {
			calls = append(calls, "first")
			return nil
		})
		bus.Subscribe(UserDeleting, func(e Event) error {
			calls = append(calls, "second")
			return nil
		})

		// when
		err := bus.Publish(NewEvent(context.Background(), UserDeleting, UserDeletingPayload{UserId: 1}))

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, calls)
	})

	t.Run("should collect handler errors and keep dispatching", func(t *testing.T) {
		// given
		bus := NewEventBus()
		handlerErr := errors.New("boom")
		secondCalled := false
		bus.Subscribe(UserDeleting, func(e Event) error { return handlerErr })
		bus.Subscribe(UserDeleting, func(e Event) error {
			secondCalled = true
			return nil
		})

		// when
		err := bus.Publish(NewEvent(context.Background(), UserDeleting, nil))

		// then
		assert.ErrorIs(t, err, handlerErr)
		assert.True(t, secondCalled)
	})

	t.Run("should turn a panic into an error", func(t *testing.T) {
		// given
		bus := NewEventBus()
		bus.Subscribe(UserDeleting, func(e Event) error { panic("kaboom") })

		// when
		err := bus.Publish(NewEvent(context.Background(), UserDeleting, nil))

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "kaboom")
	})

	t.Run("should not dispatch when context is cancelled", func(t *testing.T) {
		// given
		bus := NewEventBus()
		called := false
		bus.Subscribe(UserDeleting, func(e Event) error {
			called = true
			return nil
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// when
		err := bus.Publish(NewEvent(ctx, UserDeleting, nil))

		// then
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})

	t.Run("should stop calling unsubscribed handler", func(t *testing.T) {
		// given
		bus := NewEventBus()
		calls := 0
		unsubscribe := bus.Subscribe(UserDeleting, func(e Event) error {
			calls++
			return nil
		})
		require.NoError(t, bus.Publish(NewEvent(context.Background(), UserDeleting, nil)))

		// when
		unsubscribe()
		require.NoError(t, bus.Publish(NewEvent(context.Background(), UserDeleting, nil)))

		// then
		assert.Equal(t, 1, calls)
	})
}

func TestSubscribeTyped(t *testing.T) {
	t.Run("should pass typed payload and skip others", func(t *testing.T) {
		// given
		bus := NewEventBus()
		var seen []int
		SubscribeTyped(bus, UserDeleting, func(e EventT[UserDeletingPayload]) error {
			seen = append(seen, e.Payload.UserId)
			return nil
		})

		// when
		require.NoError(t, bus.Publish(NewEvent(context.Background(), UserDeleting, UserDeletingPayload{UserId: 7})))
		require.NoError(t, bus.Publish(NewEvent(context.Background(), UserDeleting, "not a payload")))

		// then
		assert.Equal(t, []int{7}, seen)
	})
}
