package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pr-security-service/internal/model"
	"pr-security-service/internal/service"
)

func (h *Handler) handleWatchList(w http.ResponseWriter, r *http.Request) {
	const handlerName = "watch_list"

	userID := r.URL.Query().Get("user_id")

	ctx := r.Context()
	watches, err := h.Watches.ListWatches(ctx, userID)
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	h.writeJSON(w, http.StatusOK, watchListResponse{Watches: watches})
}

func (h *Handler) handleWatchCreate(w http.ResponseWriter, r *http.Request) {
	const handlerName = "watch_create"

	var req watchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, handlerName, service.ErrBadRequest("invalid JSON"))
		return
	}

	if err := ValidateWatchRequest(req); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	ctx := r.Context()
	watch, err := h.Watches.CreateWatch(ctx, model.Watch{
		RepositoryID:       req.RepositoryID,
		UserID:             req.UserID,
		IsActive:           isActive,
		ScanOnOpen:         req.ScanOnOpen,
		ScanOnSync:         req.ScanOnSync,
		ScanOnMerge:        req.ScanOnMerge,
		EmailNotifications: req.EmailNotifications,
		NotificationEmail:  req.NotificationEmail,
	})
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, watchResponse{Watch: watch})
}

func (h *Handler) handleWatchUpdate(w http.ResponseWriter, r *http.Request) {
	const handlerName = "watch_update"

	watchID := chi.URLParam(r, "id")

	var req watchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, handlerName, service.ErrBadRequest("invalid JSON"))
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	ctx := r.Context()
	watch, err := h.Watches.UpdateWatch(ctx, model.Watch{
		WatchID:            watchID,
		IsActive:           isActive,
		ScanOnOpen:         req.ScanOnOpen,
		ScanOnSync:         req.ScanOnSync,
		ScanOnMerge:        req.ScanOnMerge,
		EmailNotifications: req.EmailNotifications,
		NotificationEmail:  req.NotificationEmail,
	})
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	h.writeJSON(w, http.StatusOK, watchResponse{Watch: watch})
}

func (h *Handler) handleWatchDelete(w http.ResponseWriter, r *http.Request) {
	const handlerName = "watch_delete"

	watchID := chi.URLParam(r, "id")

	ctx := r.Context()
	if err := h.Watches.DeleteWatch(ctx, watchID); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
