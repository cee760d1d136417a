package handlers

import (
	"net/http"
	"strconv"

	"github.com/zetedec/lanchat/internal/service"
	"github.com/zetedec/lanchat/internal/transport/http/middleware"
)

type QueryHandler struct {
	queryService *service.QueryService
}

func NewQueryHandler(queryService *service.QueryService) *QueryHandler {
	return &QueryHandler{queryService: queryService}
}

// List returns the message history for the selected view: ?group=<id> for a
// group, ?peer=<id> for a private thread, neither for the general channel.
func (h *QueryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	sel, ok := parseSelector(w, r)
	if !ok {
		return
	}

	messages, err := h.queryService.List(r.Context(), userID, sel)
	if err != nil {
		writeServiceError(w, "list messages", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

// Search filters the selected view by a case-insensitive substring.
func (h *QueryHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	sel, ok := parseSelector(w, r)
	if !ok {
		return
	}

	messages, err := h.queryService.Search(r.Context(), userID, sel, r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, "search messages", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

func (h *QueryHandler) Backup(w http.ResponseWriter, r *http.Request) {
	role := middleware.GetRole(r.Context())

	export, err := h.queryService.Backup(r.Context(), role)
	if err != nil {
		writeServiceError(w, "backup", err)
		return
	}

	writeJSON(w, http.StatusOK, export)
}

func parseSelector(w http.ResponseWriter, r *http.Request) (service.Selector, bool) {
	var sel service.Selector

	if groupStr := r.URL.Query().Get("group"); groupStr != "" {
		id, err := strconv.ParseInt(groupStr, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid group ID")
			return sel, false
		}
		sel.GroupID = &id
	}

	if peerStr := r.URL.Query().Get("peer"); peerStr != "" {
		id, err := strconv.ParseInt(peerStr, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid peer ID")
			return sel, false
		}
		sel.PeerID = &id
	}

	return sel, true
}
