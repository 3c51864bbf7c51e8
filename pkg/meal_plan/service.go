package meal_plan

import (
	"context"
	"strings"

	"github.com/budgetbite/budgetbite/internal/event_bus"
	"github.com/budgetbite/budgetbite/internal/utils"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Record(ctx context.Context, userId *int, budget decimal.Decimal, mealType string) (MealPlan, error)
	ListPlans(ctx context.Context) ([]MealPlan, error)
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
			log.Debugf("detached user %d from %d meal plans", e.Payload.UserId, detached)
			return nil
		},
	)
	return service
}

func (s *ServiceImpl) Record(ctx context.Context, userId *int, budget decimal.Decimal, mealType string) (MealPlan, error) {
	plan := MealPlan{
		UserId:    userId,
		Budget:    budget.Round(2),
		MealType:  strings.TrimSpace(mealType),
		CreatedAt: s.clock.Now(),
	}
	id, err := s.repo.StorePlan(ctx, plan)
	if err != nil {
		return MealPlan{}, err
	}
	plan.Id = id
	log.Debugf("recorded meal plan %d (%s, %s)", plan.Id, plan.MealType, plan.Budget)
	return plan, nil
}

func (s *ServiceImpl) ListPlans(ctx context.Context) ([]MealPlan, error) {
	return s.repo.ListPlans(ctx)
}
