package meal_plan

import (
	"net/http"
	"time"

	"github.com/budgetbite/budgetbite/internal/rest"
	log "github.com/sirupsen/logrus"
)

type MealPlanDTO struct {
	Id        int     `json:"id"`
	UserId    *int    `json:"user_id"`
	Budget    float64 `json:"budget"`
	MealType  string  `json:"meal_type"`
	CreatedAt string  `json:"created_at"`
}

type ListMealPlansResponse struct {
	Success   bool          `json:"success"`
	Count     int           `json:"count"`
	MealPlans []MealPlanDTO `json:"meal_plans"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListPlans godoc
// @Summary List recorded meal plans
// @Description History of suggestion requests, oldest first
// @Tags MealPlan
// @Produce json
// @Success 200 {object} ListMealPlansResponse
// @Router /api/meal-plans [get]
func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing meal plans")
	plans, err := h.service.ListPlans(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	dtos := make([]MealPlanDTO, 0, len(plans))
	for _, plan := range plans {
		dtos = append(dtos, PlanToDTO(plan))
	}
	rest.WriteJSON(w, http.StatusOK, ListMealPlansResponse{Success: true, Count: len(dtos), MealPlans: dtos})
}

func PlanToDTO(plan MealPlan) MealPlanDTO {
	return MealPlanDTO{
		Id:        plan.Id,
		UserId:    plan.UserId,
		Budget:    plan.Budget.InexactFloat64(),
		MealType:  plan.MealType,
		CreatedAt: plan.CreatedAt.Format(time.RFC3339),
	}
}
