package app

import (
	"net/http"

	"github.com/budgetbite/budgetbite/internal/config"
	"github.com/budgetbite/budgetbite/internal/rest"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Suggestion
	r.HandleFunc("/api/suggest", deps.SuggestionHandler.Suggest).Methods("POST")

	// Grocery items
	r.HandleFunc("/api/items", deps.GroceryHandler.ListItems).Methods("GET")
	r.HandleFunc("/api/items", deps.GroceryHandler.CreateItem).Methods("POST")
	r.HandleFunc("/api/items/{itemId}", deps.GroceryHandler.GetItem).Methods("GET")
	r.HandleFunc("/api/items/{itemId}", deps.GroceryHandler.UpdateItem).Methods("PATCH")
	r.HandleFunc("/api/items/{itemId}", deps.GroceryHandler.DeleteItem).Methods("DELETE")

	// Grocery items, legacy paths
	r.HandleFunc("/api/get_items", deps.GroceryHandler.ListItems).Methods("GET")
	r.HandleFunc("/api/add_item", deps.GroceryHandler.CreateItem).Methods("POST")
	r.HandleFunc("/api/update_item/{itemId}", deps.GroceryHandler.UpdateItem).Methods("PUT", "PATCH")
	r.HandleFunc("/api/delete_item/{itemId}", deps.GroceryHandler.DeleteItem).Methods("DELETE")

	// Meal plans
	r.HandleFunc("/api/meal-plans", deps.MealPlanHandler.ListPlans).Methods("GET")

	// Users
	r.HandleFunc("/api/users", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/users", deps.UserHandler.GetAllUsers).Methods("GET")
	r.HandleFunc("/api/users", deps.UserHandler.DeleteAllUsers).Methods("DELETE")
	r.HandleFunc("/api/users/{userId}", deps.UserHandler.DeleteUser).Methods("DELETE")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		rest.WriteError(w, http.StatusNotFound, "Resource not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		rest.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
}
