package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/zetedec/lanchat/internal/service"
	"github.com/zetedec/lanchat/internal/transport/http/middleware"
	"github.com/zetedec/lanchat/pkg/validator"
)

type GroupHandler struct {
	groupService *service.GroupService
}

func NewGroupHandler(groupService *service.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input service.CreateGroupInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateGroup(input.Name); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	group, err := h.groupService.Create(r.Context(), userID, input)
	if err != nil {
		writeServiceError(w, "create group", err)
		return
	}

	writeJSON(w, http.StatusCreated, group)
}

func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupService.List(r.Context())
	if err != nil {
		writeServiceError(w, "list groups", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"groups": groups})
}
