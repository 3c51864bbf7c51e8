package event_bus

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

type EventType string

// Event is the envelope passed to subscribers. Data holds the payload of any type.
type Event struct {
	ctx       context.Context
	Type      EventType
	Timestamp time.Time
	Data      any
}

func NewEvent(ctx context.Context, eventType EventType, data any) Event {
	return Event{
		ctx:       ctx,
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// Context returns the context of the publisher, or context.Background when none was given.
func (e Event) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

// EventT is the typed view of an Event handed to handlers registered with SubscribeTyped.
type EventT[T any] struct {
	Event
	Payload T
}

type subscription struct {
	id uint64
	h  func(Event) error
}

// EventBus dispatches events synchronously, in subscription order, on the publisher's goroutine.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[EventType][]subscription
	nextID      uint64
}

func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[EventType][]subscription),
	}
}

// Subscribe registers h for eventType and returns a function removing it again.
func (eb *EventBus) Subscribe(eventType EventType, h func(Event) error) (unsubscribe func()) {
	eb.mu.Lock()
	eb.nextID++
	id := eb.nextID
	eb.subscribers[eventType] = append(eb.subscribers[eventType], subscription{id: id, h: h})
	eb.mu.Unlock()

	return func() {
		eb.mu.Lock()
		defer eb.mu.Unlock()
		subs := slices.DeleteFunc(eb.subscribers[eventType], func(s subscription) bool {
			return s.id == id
		})
		if len(subs) == 0 {
			delete(eb.subscribers, eventType)
			return
		}
		eb.subscribers[eventType] = subs
	}
}

// SubscribeTyped registers a handler that only sees events whose payload is a T.
// Events carrying another payload type are skipped.
func SubscribeTyped[T any](eb *EventBus, eventType EventType, h func(EventT[T]) error) (unsubscribe func()) {
	return eb.Subscribe(eventType, func(e Event) error {
		payload, ok := e.Data.(T)
		if !ok {
			log.Debugf("EventBus: payload of %s is %T, expected %T", eventType, e.Data, *new(T))
			return nil
		}
		return h(EventT[T]{Event: e, Payload: payload})
	})
}

// Publish runs every handler subscribed to e.Type. Handler errors and panics are collected and
// returned together; a cancelled context stops the remaining handlers.
func (eb *EventBus) Publish(e Event) error {
	if err := e.Context().Err(); err != nil {
		return fmt.Errorf("event %s: context cancelled before publish: %w", e.Type, err)
	}

	eb.mu.RLock()
	subs := slices.Clone(eb.subscribers[e.Type])
	eb.mu.RUnlock()

	var errs []error
	for _, sub := range subs {
		if err := e.Context().Err(); err != nil {
			errs = append(errs, fmt.Errorf("context cancelled during event processing: %w", err))
			break
		}
		if err := eb.dispatch(sub, e); err != nil {
			log.Errorf("EventBus: handler %d failed for event %s: %v", sub.id, e.Type, err)
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("event %s: %d handler(s) failed: %w", e.Type, len(errs), errors.Join(errs...))
	}
	return nil
}

func (eb *EventBus) dispatch(sub subscription, e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic (ID %d) for event %s: %v", sub.id, e.Type, r)
		}
	}()
	return sub.h(e)
}
