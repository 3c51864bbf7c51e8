package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/budgetbite/budgetbite/internal/rest"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type UserDTO struct {
	Id       int    `json:"id"`
	Uid      string `json:"uid"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type CreateUserRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}

type CreateUserResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	User    UserDTO `json:"user"`
}

type ListUsersResponse struct {
	Success bool      `json:"success"`
	Count   int       `json:"count"`
	Users   []UserDTO `json:"users"`
}

type Handler struct {
	userService Service
}

func NewHandler(userService Service) *Handler {
	return &Handler{userService: userService}
}

// CreateUser godoc
// @Summary Create a new user
// @Tags User
// @Accept json
// @Produce json
// @Param user body CreateUserRequest true "User"
// @Success 201 {object} CreateUserResponse
// @Failure 400 {object} rest.ErrorResponse "Missing required parameters"
// @Failure 409 {object} rest.ErrorResponse "User already exists"
// @Router /api/users [post]
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating user")

	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}
	if req.Username == "" || req.Email == "" || req.PasswordHash == "" {
		rest.WriteError(w, http.StatusBadRequest, "Missing required parameters")
		return
	}

	created, err := h.userService.CreateUser(r.Context(), User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: req.PasswordHash,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrUserDataInvalid):
			rest.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrUserAlreadyExists):
			rest.WriteError(w, http.StatusConflict, err.Error())
		default:
			rest.WriteError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	log.Tracef("Created user: %+v", created.Uid)

	rest.WriteJSON(w, http.StatusCreated, CreateUserResponse{
		Success: true,
		Message: "User added successfully",
		User:    userToDTO(created),
	})
}

// GetAllUsers godoc
// @Summary List all users
// @Tags User
// @Produce json
// @Success 200 {object} ListUsersResponse
// @Router /api/users [get]
func (h *Handler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing users")
	users, err := h.userService.GetAllUsers(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	dtos := make([]UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, userToDTO(u))
	}
	rest.WriteJSON(w, http.StatusOK, ListUsersResponse{Success: true, Count: len(dtos), Users: dtos})
}

// DeleteAllUsers godoc
// @Summary Delete all users
// @Tags User
// @Produce json
// @Success 200 {object} rest.MessageResponse
// @Failure 500 {object} rest.ErrorResponse "Failed to delete users"
// @Router /api/users [delete]
func (h *Handler) DeleteAllUsers(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting all users")
	if _, err := h.userService.DeleteAllUsers(r.Context()); err != nil {
		log.Errorf("failed to delete users: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Failed to delete users")
		return
	}
	rest.WriteMessage(w, "All users deleted successfully")
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags User
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} rest.MessageResponse
// @Failure 400 {object} rest.ErrorResponse "Invalid user id"
// @Failure 404 {object} rest.ErrorResponse "User not found"
// @Router /api/users/{userId} [delete]
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting user")
	userId, err := strconv.Atoi(mux.Vars(r)["userId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	deleted, err := h.userService.DeleteUser(r.Context(), userId)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !deleted {
		rest.WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	rest.WriteMessage(w, "User deleted successfully")
}

func userToDTO(u User) UserDTO {
	return UserDTO{
		Id:       u.Id,
		Uid:      u.Uid,
		Username: u.Username,
		Email:    u.Email,
	}
}
