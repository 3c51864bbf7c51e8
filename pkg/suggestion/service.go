package suggestion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/budgetbite/budgetbite/pkg/grocery"
	"github.com/budgetbite/budgetbite/pkg/meal_plan"
	"github.com/budgetbite/budgetbite/pkg/user"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const recordFailedWarning = "suggestion computed but the meal plan could not be recorded"

type Catalog interface {
	FindByCategory(ctx context.Context, text string) ([]grocery.GroceryItem, error)
}

type Recorder interface {
	Record(ctx context.Context, userId *int, budget decimal.Decimal, mealType string) (meal_plan.MealPlan, error)
}

type Service interface {
	Suggest(ctx context.Context, req Request) (Result, error)
}

type ServiceImpl struct {
	catalog         Catalog
	recorder        Recorder
	users           user.Provider
	defaultMealType string
}

func NewService(catalog Catalog, recorder Recorder, users user.Provider, defaultMealType string) *ServiceImpl {
	return &ServiceImpl{
		catalog:         catalog,
		recorder:        recorder,
		users:           users,
		defaultMealType: defaultMealType,
	}
}

// Suggest computes a plan from the current catalog and then records the request. A failed
// recording is logged and reported through Result.Warning; the plan is still returned.
func (s *ServiceImpl) Suggest(ctx context.Context, req Request) (Result, error) {
	budget, err := ValidateBudget(req.Budget)
	if err != nil {
		return Result{}, err
	}
	mealType := strings.TrimSpace(req.MealType)
	if mealType == "" {
		mealType = s.defaultMealType
	}
	userId, err := s.resolveUser(ctx, req.UserId)
	if err != nil {
		return Result{}, err
	}

	items, err := s.catalog.FindByCategory(ctx, mealType)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load grocery items: %w", err)
	}
	plan, err := Suggest(budget, mealType, items)
	if err != nil {
		log.Debugf("no suggestion for budget %s and meal type %q: %v", budget, mealType, err)
		return Result{}, err
	}

	result := Result{Plan: plan}
	mealPlan, err := s.recorder.Record(ctx, userId, budget, mealType)
	if err != nil {
		log.Warnf("failed to record meal plan for meal type %q: %v", mealType, err)
		result.Warning = recordFailedWarning
		return result, nil
	}
	result.MealPlanId = &mealPlan.Id
	return result, nil
}

func (s *ServiceImpl) resolveUser(ctx context.Context, userId *int) (*int, error) {
	if userId == nil {
		if current, err := user.CurrentId(ctx); err == nil {
			return &current, nil
		}
		return nil, nil
	}
	if _, err := s.users.GetUser(ctx, *userId); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrUnknownUser, *userId)
		}
		return nil, fmt.Errorf("failed to get user %d: %w", *userId, err)
	}
	return userId, nil
}
