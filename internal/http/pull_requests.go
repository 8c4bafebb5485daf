package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) handleGetPR(w http.ResponseWriter, r *http.Request) {
	const handlerName = "get_pr"

	prID := chi.URLParam(r, "id")

	ctx := r.Context()
	pr, err := h.PRs.GetPR(ctx, prID)
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	h.writeJSON(w, http.StatusOK, prResponse{PR: pr})
}

func (h *Handler) handleSyncPRs(w http.ResponseWriter, r *http.Request) {
	const handlerName = "sync_prs"

	repositoryID := chi.URLParam(r, "owner") + "/" + chi.URLParam(r, "name")

	ctx := r.Context()
	added, updated, err := h.PRs.SyncPullRequests(ctx, repositoryID)
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	h.writeJSON(w, http.StatusOK, syncPRsResponse{
		PRsAdded:   added,
		PRsUpdated: updated,
	})
}
