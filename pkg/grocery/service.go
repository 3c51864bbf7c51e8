package grocery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/budgetbite/budgetbite/internal/event_bus"
	"github.com/budgetbite/budgetbite/internal/utils"
	"github.com/budgetbite/budgetbite/pkg/user"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrItemDataInvalid = errors.New("invalid grocery item")

// column limits of grocery_items
const (
	maxNameLength     = 100
	maxCategoryLength = 50
	maxStoreLength    = 50
)

var maxAmount = decimal.RequireFromString("99999999.99")

type Service interface {
	ListItems(ctx context.Context) ([]GroceryItem, error)
	GetItem(ctx context.Context, id int) (GroceryItem, error)
	FindByCategory(ctx context.Context, text string) ([]GroceryItem, error)
	CreateItem(ctx context.Context, item GroceryItem) (GroceryItem, error)
	UpdateItem(ctx context.Context, id int, update ItemUpdate) (GroceryItem, error)
	DeleteItem(ctx context.Context, id int) (bool, error)
}

type ServiceImpl struct {
	repo  Repository
	clock utils.Clock
}

func NewService(repo Repository, clock utils.Clock, eventBus *event_bus.EventBus) *ServiceImpl {
	service := &ServiceImpl{repo: repo, clock: clock}
	event_bus.SubscribeTyped(
		eventBus,
		event_bus.UserDeleting,
		func(e event_bus.EventT[event_bus.UserDeletingPayload]) error {
			detached, err := repo.DetachUser(e.Context(), e.Payload.UserId)
			if err != nil {
				return err
			}
			log.Debugf("detached user %d from %d grocery items", e.Payload.UserId, detached)
			return nil
		},
	)
	return service
}

func (s *ServiceImpl) ListItems(ctx context.Context) ([]GroceryItem, error) {
	return s.repo.ListItems(ctx)
}

func (s *ServiceImpl) GetItem(ctx context.Context, id int) (GroceryItem, error) {
	return s.repo.GetItem(ctx, id)
}

func (s *ServiceImpl) FindByCategory(ctx context.Context, text string) ([]GroceryItem, error) {
	return s.repo.FindByCategory(ctx, text)
}

// CreateItem stores a new item. Without an explicit owner the item belongs to the user of ctx, if any.
func (s *ServiceImpl) CreateItem(ctx context.Context, item GroceryItem) (GroceryItem, error) {
	item = normalize(item)
	if err := validate(item); err != nil {
		return GroceryItem{}, err
	}
	if item.UserId == nil {
		if userId, err := user.CurrentId(ctx); err == nil {
			item.UserId = &userId
		}
	}
	item.LastUpdated = utils.DateOnly(s.clock.Now())

	id, err := s.repo.StoreItem(ctx, item)
	if err != nil {
		return GroceryItem{}, err
	}
	item.Id = id
	return item, nil
}

func (s *ServiceImpl) UpdateItem(ctx context.Context, id int, update ItemUpdate) (GroceryItem, error) {
	current, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return GroceryItem{}, err
	}
	item := normalize(update.applyTo(current))
	if err := validate(item); err != nil {
		return GroceryItem{}, err
	}
	item.LastUpdated = utils.DateOnly(s.clock.Now())

	updated, err := s.repo.UpdateItem(ctx, item)
	if err != nil {
		return GroceryItem{}, err
	}
	if !updated {
		// deleted between read and write
		return GroceryItem{}, ErrItemNotFound
	}
	return item, nil
}

func (s *ServiceImpl) DeleteItem(ctx context.Context, id int) (bool, error) {
	return s.repo.DeleteItem(ctx, id)
}

func normalize(item GroceryItem) GroceryItem {
	item.Name = strings.TrimSpace(item.Name)
	item.Category = strings.TrimSpace(item.Category)
	item.Store = strings.TrimSpace(item.Store)
	item.Price = item.Price.Round(2)
	if item.ProteinPer100g.Valid {
		item.ProteinPer100g.Decimal = item.ProteinPer100g.Decimal.Round(2)
	}
	return item
}

func validate(item GroceryItem) error {
	switch {
	case item.Name == "":
		return fmt.Errorf("%w: name is required", ErrItemDataInvalid)
	case item.Category == "":
		return fmt.Errorf("%w: category is required", ErrItemDataInvalid)
	case item.Store == "":
		return fmt.Errorf("%w: store is required", ErrItemDataInvalid)
	case utf8.RuneCountInString(item.Name) > maxNameLength:
		return fmt.Errorf("%w: name must not exceed %d characters", ErrItemDataInvalid, maxNameLength)
	case utf8.RuneCountInString(item.Category) > maxCategoryLength:
		return fmt.Errorf("%w: category must not exceed %d characters", ErrItemDataInvalid, maxCategoryLength)
	case utf8.RuneCountInString(item.Store) > maxStoreLength:
		return fmt.Errorf("%w: store must not exceed %d characters", ErrItemDataInvalid, maxStoreLength)
	case !item.Price.IsPositive():
		return fmt.Errorf("%w: price must be positive", ErrItemDataInvalid)
	case item.Price.GreaterThan(maxAmount):
		return fmt.Errorf("%w: price must not exceed %s", ErrItemDataInvalid, maxAmount.StringFixed(2))
	case item.ProteinPer100g.Valid && item.ProteinPer100g.Decimal.IsNegative():
		return fmt.Errorf("%w: protein_per_100g must not be negative", ErrItemDataInvalid)
	case item.ProteinPer100g.Valid && item.ProteinPer100g.Decimal.GreaterThan(maxAmount):
		return fmt.Errorf("%w: protein_per_100g must not exceed %s", ErrItemDataInvalid, maxAmount.StringFixed(2))
	}
	return nil
}
