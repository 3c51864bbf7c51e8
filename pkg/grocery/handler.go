package grocery

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/budgetbite/budgetbite/internal/rest"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type ItemDTO struct {
	Id             int      `json:"id"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Price          float64  `json:"price"`
	Store          string   `json:"store"`
	ProteinPer100g *float64 `json:"protein_per_100g"`
	LastUpdated    *string  `json:"last_updated"`
	UserId         *int     `json:"user_id"`
}

type CreateItemRequest struct {
	Name           string              `json:"name"`
	Category       string              `json:"category"`
	Price          *decimal.Decimal    `json:"price"`
	Store          string              `json:"store"`
	ProteinPer100g decimal.NullDecimal `json:"protein_per_100g"`
	UserId         *int                `json:"user_id"`
}

type ItemResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message,omitempty"`
	Item    ItemDTO `json:"item"`
}

type ListItemsResponse struct {
	Success bool      `json:"success"`
	Count   int       `json:"count"`
	Items   []ItemDTO `json:"items"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListItems godoc
// @Summary List all grocery items
// @Tags GroceryItem
// @Produce json
// @Success 200 {object} ListItemsResponse
// @Router /api/items [get]
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing grocery items")
	items, err := h.service.ListItems(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	dtos := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, ItemToDTO(item))
	}
	rest.WriteJSON(w, http.StatusOK, ListItemsResponse{Success: true, Count: len(dtos), Items: dtos})
}

// GetItem godoc
// @Summary Get a grocery item
// @Tags GroceryItem
// @Produce json
// @Param itemId path int true "Item ID"
// @Success 200 {object} ItemResponse
// @Failure 400 {object} rest.ErrorResponse "Invalid item id"
// @Failure 404 {object} rest.ErrorResponse "Item not found"
// @Router /api/items/{itemId} [get]
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	itemId, err := strconv.Atoi(mux.Vars(r)["itemId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid item id")
		return
	}
	item, err := h.service.GetItem(r.Context(), itemId)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ItemResponse{Success: true, Item: ItemToDTO(item)})
}

// CreateItem godoc
// @Summary Add a grocery item
// @Tags GroceryItem
// @Accept json
// @Produce json
// @Param item body CreateItemRequest true "Grocery item"
// @Success 201 {object} ItemResponse
// @Failure 400 {object} rest.ErrorResponse "Missing required parameters"
// @Router /api/items [post]
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating grocery item")
	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}
	if req.Name == "" || req.Category == "" || req.Store == "" || req.Price == nil {
		rest.WriteError(w, http.StatusBadRequest, "Missing required parameters")
		return
	}

	created, err := h.service.CreateItem(r.Context(), GroceryItem{
		Name:           req.Name,
		Category:       req.Category,
		Price:          *req.Price,
		Store:          req.Store,
		ProteinPer100g: req.ProteinPer100g,
		UserId:         req.UserId,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, ItemResponse{
		Success: true,
		Message: "Item added successfully",
		Item:    ItemToDTO(created),
	})
}

// UpdateItem godoc
// @Summary Partially update a grocery item
// @Description Only the fields present in the body are changed. protein_per_100g may be null.
// @Tags GroceryItem
// @Accept json
// @Produce json
// @Param itemId path int true "Item ID"
// @Success 200 {object} ItemResponse
// @Failure 400 {object} rest.ErrorResponse "Bad Request"
// @Failure 404 {object} rest.ErrorResponse "Item not found"
// @Router /api/items/{itemId} [patch]
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating grocery item")
	itemId, err := strconv.Atoi(mux.Vars(r)["itemId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid item id")
		return
	}
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}
	update, err := parseItemUpdate(fields)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.service.UpdateItem(r.Context(), itemId, update)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ItemResponse{
		Success: true,
		Message: "Item updated successfully",
		Item:    ItemToDTO(updated),
	})
}

// DeleteItem godoc
// @Summary Delete a grocery item
// @Tags GroceryItem
// @Produce json
// @Param itemId path int true "Item ID"
// @Success 200 {object} rest.MessageResponse
// @Failure 400 {object} rest.ErrorResponse "Invalid item id"
// @Failure 404 {object} rest.ErrorResponse "Item not found"
// @Router /api/items/{itemId} [delete]
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting grocery item")
	itemId, err := strconv.Atoi(mux.Vars(r)["itemId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid item id")
		return
	}
	deleted, err := h.service.DeleteItem(r.Context(), itemId)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !deleted {
		rest.WriteError(w, http.StatusNotFound, "Item not found")
		return
	}
	rest.WriteMessage(w, "Item deleted successfully")
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrItemNotFound):
		rest.WriteError(w, http.StatusNotFound, "Item not found")
	case errors.Is(err, ErrItemDataInvalid):
		rest.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

func parseItemUpdate(fields map[string]json.RawMessage) (ItemUpdate, error) {
	var update ItemUpdate
	for key, raw := range fields {
		var err error
		switch key {
		case "name":
			update.Name = new(string)
			err = json.Unmarshal(raw, update.Name)
		case "category":
			update.Category = new(string)
			err = json.Unmarshal(raw, update.Category)
		case "store":
			update.Store = new(string)
			err = json.Unmarshal(raw, update.Store)
		case "price":
			update.Price = new(decimal.Decimal)
			err = json.Unmarshal(raw, update.Price)
		case "protein_per_100g":
			update.ProteinPer100g = new(decimal.NullDecimal)
			err = json.Unmarshal(raw, update.ProteinPer100g)
		case "user_id":
			if string(raw) == "null" {
				err = errors.New("null owner")
				break
			}
			update.UserId = new(int)
			err = json.Unmarshal(raw, update.UserId)
		default:
			log.Debugf("ignoring unknown field %q in item update", key)
		}
		if err != nil {
			return ItemUpdate{}, fmt.Errorf("invalid value of %s", key)
		}
	}
	return update, nil
}

func ItemToDTO(item GroceryItem) ItemDTO {
	dto := ItemDTO{
		Id:       item.Id,
		Name:     item.Name,
		Category: item.Category,
		Price:    item.Price.InexactFloat64(),
		Store:    item.Store,
		UserId:   item.UserId,
	}
	if item.ProteinPer100g.Valid {
		protein := item.ProteinPer100g.Decimal.InexactFloat64()
		dto.ProteinPer100g = &protein
	}
	if !item.LastUpdated.IsZero() {
		lastUpdated := item.LastUpdated.Format(dateLayout)
		dto.LastUpdated = &lastUpdated
	}
	return dto
}
