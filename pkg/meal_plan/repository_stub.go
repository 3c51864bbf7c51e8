package meal_plan

import (
	"context"
	"errors"
)

type RepositoryStub struct {
	plans []MealPlan
	// FailStore makes StorePlan fail, to exercise recording failures.
	FailStore bool
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{}
}

func (s *RepositoryStub) StorePlan(ctx context.Context, plan MealPlan) (int, error) {
	if s.FailStore {
		return 0, errors.New("meal plan storage unavailable")
	}
	plan.Id = len(s.plans) + 1
	s.plans = append(s.plans, plan)
	return plan.Id, nil
}

func (s *RepositoryStub) ListPlans(ctx context.Context) ([]MealPlan, error) {
	return append([]MealPlan(nil), s.plans...), nil
}

func (s *RepositoryStub) DetachUser(ctx context.Context, userId int) (int, error) {
	count := 0
	for i, plan := range s.plans {
		if plan.UserId != nil && *plan.UserId == userId {
			s.plans[i].UserId = nil
			count++
		}
	}
	return count, nil
}

func (s *RepositoryStub) Reset() {
	s.plans = nil
	s.FailStore = false
}
