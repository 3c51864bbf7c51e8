package suggestion

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/budgetbite/budgetbite/internal/rest"
	log "github.com/sirupsen/logrus"
)

type SuggestRequest struct {
	// Budget is a JSON number or a numeric string.
	Budget   json.RawMessage `json:"budget" swaggertype:"number"`
	MealType string          `json:"meal_type"`
	UserId   *int            `json:"user_id"`
}

type SuggestionDTO struct {
	Id      int      `json:"id"`
	Name    string   `json:"name"`
	Price   float64  `json:"price"`
	Store   string   `json:"store"`
	Protein *float64 `json:"protein"`
	Value   float64  `json:"value"`
}

type StatsDTO struct {
	TotalSpent             float64 `json:"total_spent"`
	RemainingBudget        float64 `json:"remaining_budget"`
	ProteinPerCurrencyUnit float64 `json:"protein_per_currency_unit"`
	TotalProtein           float64 `json:"total_protein"`
}

type SuggestResponse struct {
	Success     bool            `json:"success"`
	Suggestions []SuggestionDTO `json:"suggestions"`
	Stats       StatsDTO        `json:"stats"`
	MealPlanId  *int            `json:"meal_plan_id,omitempty"`
	Warning     string          `json:"warning,omitempty"`
}

type Handler struct {
	service     Service
	csvRenderer PlanRenderer
}

func NewHandler(service Service, csvRenderer PlanRenderer) *Handler {
	return &Handler{service: service, csvRenderer: csvRenderer}
}

// Suggest godoc
// @Summary Suggest groceries for a budget
// @Description Picks the items with the most protein per unit of money for the meal type,
// @Description at most one item per store, without exceeding the budget.
// @Tags Suggestion
// @Accept json
// @Produce json
// @Produce text/csv
// @Param request body SuggestRequest true "Budget, meal type and optional user"
// @Success 200 {object} SuggestResponse
// @Failure 400 {object} rest.ErrorResponse "Invalid budget, unknown user or budget too small"
// @Failure 404 {object} rest.ErrorResponse "No items for the meal type"
// @Failure 500 {object} rest.ErrorResponse "Unexpected error"
// @Router /api/suggest [post]
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	log.Debug("Suggesting groceries")

	var req SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}
	budget, err := ParseBudget(req.Budget)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Suggest(r.Context(), Request{Budget: budget, MealType: req.MealType, UserId: req.UserId})
	if err != nil {
		status := StatusOf(err)
		message := err.Error()
		if status == http.StatusInternalServerError {
			log.Errorf("suggestion failed: %v", err)
			message = "An unexpected error occurred: " + message
		}
		rest.WriteError(w, status, message)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		h.writeCsv(w, result)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ResultToResponse(result))
}

func (h *Handler) writeCsv(w http.ResponseWriter, result Result) {
	csv, err := h.csvRenderer.RenderPlan(result.Plan)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "An unexpected error occurred: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	if result.MealPlanId != nil {
		w.Header().Set("X-Meal-Plan-Id", strconv.Itoa(*result.MealPlanId))
	}
	if result.Warning != "" {
		w.Header().Set("X-Warning", result.Warning)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(csv)); err != nil {
		log.Errorf("failed to write csv response: %v", err)
	}
}

// StatusOf maps suggestion errors to HTTP status codes.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrInvalidBudget), errors.Is(err, ErrUnknownUser), errors.Is(err, ErrInsufficientBudget):
		return http.StatusBadRequest
	case errors.Is(err, ErrNoMatchingItems):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func ResultToResponse(result Result) SuggestResponse {
	suggestions := make([]SuggestionDTO, 0, len(result.Plan.Selection.Items))
	for _, ranked := range result.Plan.Selection.Items {
		suggestions = append(suggestions, rankedToDTO(ranked))
	}
	stats := result.Plan.Stats
	return SuggestResponse{
		Success:     true,
		Suggestions: suggestions,
		Stats: StatsDTO{
			TotalSpent:             stats.TotalSpent.InexactFloat64(),
			RemainingBudget:        stats.RemainingBudget.InexactFloat64(),
			ProteinPerCurrencyUnit: stats.ProteinPerCurrencyUnit.InexactFloat64(),
			TotalProtein:           stats.TotalProtein.InexactFloat64(),
		},
		MealPlanId: result.MealPlanId,
		Warning:    result.Warning,
	}
}

func rankedToDTO(ranked RankedItem) SuggestionDTO {
	dto := SuggestionDTO{
		Id:    ranked.Item.Id,
		Name:  ranked.Item.Name,
		Price: ranked.Item.Price.InexactFloat64(),
		Store: ranked.Item.Store,
		Value: ranked.Value.Round(2).InexactFloat64(),
	}
	if ranked.Item.ProteinPer100g.Valid {
		protein := ranked.Item.ProteinPer100g.Decimal.InexactFloat64()
		dto.Protein = &protein
	}
	return dto
}
