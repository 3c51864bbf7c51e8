package app

import (
	"github.com/budgetbite/budgetbite/internal/config"
	"github.com/budgetbite/budgetbite/internal/event_bus"
	"github.com/budgetbite/budgetbite/internal/utils"
	"github.com/budgetbite/budgetbite/pkg/grocery"
	"github.com/budgetbite/budgetbite/pkg/meal_plan"
	"github.com/budgetbite/budgetbite/pkg/suggestion"
	"github.com/budgetbite/budgetbite/pkg/user"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories are the storage implementations the services are built on.
type Repositories struct {
	Users     user.Repo
	Items     grocery.Repository
	MealPlans meal_plan.Repository
}

func PostgresRepositories(db *pgxpool.Pool) Repositories {
	return Repositories{
		Users:     user.NewUserRepo(db),
		Items:     grocery.NewRepository(db),
		MealPlans: meal_plan.NewRepository(db),
	}
}

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	UserService user.Service
	UserHandler *user.Handler

	GroceryService *grocery.ServiceImpl
	GroceryHandler *grocery.Handler

	MealPlanService *meal_plan.ServiceImpl
	MealPlanHandler *meal_plan.Handler

	SuggestionService     *suggestion.ServiceImpl
	SuggestionCsvRenderer *suggestion.CsvPlanRendererImpl
	SuggestionHandler     *suggestion.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(repos Repositories, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.UserService = user.NewUserService(repos.Users, deps.EventBus)
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.GroceryService = grocery.NewService(repos.Items, deps.Clock, deps.EventBus)
	deps.GroceryHandler = grocery.NewHandler(deps.GroceryService)

	deps.MealPlanService = meal_plan.NewService(repos.MealPlans, deps.Clock, deps.EventBus)
	deps.MealPlanHandler = meal_plan.NewHandler(deps.MealPlanService)

	deps.SuggestionService = suggestion.NewService(
		deps.GroceryService,
		deps.MealPlanService,
		deps.UserService,
		cfg.Suggestion.DefaultMealType,
	)
	deps.SuggestionCsvRenderer = suggestion.NewCsvPlanRenderer()
	deps.SuggestionHandler = suggestion.NewHandler(deps.SuggestionService, deps.SuggestionCsvRenderer)

	return deps
}
