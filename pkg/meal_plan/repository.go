package meal_plan

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	StorePlan(ctx context.Context, plan MealPlan) (int, error)
	ListPlans(ctx context.Context) ([]MealPlan, error)
	DetachUser(ctx context.Context, userId int) (int, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) StorePlan(ctx context.Context, plan MealPlan) (int, error) {
	query := `INSERT INTO meal_plans (user_id, budget, meal_type, created_at) VALUES ($1, $2, $3, $4) RETURNING id`
	var id int
	err := r.db.QueryRow(ctx, query, plan.UserId, plan.Budget, plan.MealType, plan.CreatedAt).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store meal plan: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) ListPlans(ctx context.Context) ([]MealPlan, error) {
	query := `SELECT id, user_id, budget, meal_type, created_at FROM meal_plans ORDER BY created_at, id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query meal plans: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	plans := make([]MealPlan, 0)
	for rows.Next() {
		var plan MealPlan
		if err := rows.Scan(&plan.Id, &plan.UserId, &plan.Budget, &plan.MealType, &plan.CreatedAt); err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return plans, nil
}

func (r *RepositoryImpl) DetachUser(ctx context.Context, userId int) (int, error) {
	result, err := r.db.Exec(ctx, `UPDATE meal_plans SET user_id = NULL WHERE user_id = $1`, userId)
	if err != nil {
		err := fmt.Errorf("could not detach user %d from meal plans: %w", userId, err)
		log.Error(err)
		return 0, err
	}
	return int(result.RowsAffected()), nil
}
