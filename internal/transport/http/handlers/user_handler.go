package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/zetedec/lanchat/internal/service"
	"github.com/zetedec/lanchat/internal/transport/http/middleware"
	"github.com/zetedec/lanchat/pkg/validator"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.userService.Get(r.Context(), userID)
	if err != nil {
		writeServiceError(w, "get me", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// List returns the user directory for the private-chat sidebar.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		writeServiceError(w, "list users", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	user, err := h.userService.Get(r.Context(), userID)
	if err != nil {
		writeServiceError(w, "get user", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input service.UpdateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateProfile(input.Bio); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, input)
	if err != nil {
		writeServiceError(w, "update profile", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}
