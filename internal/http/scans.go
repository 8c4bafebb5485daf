package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pr-security-service/internal/service"
)

func (h *Handler) handleStartScan(w http.ResponseWriter, r *http.Request) {
	const handlerName = "start_scan"

	prID := chi.URLParam(r, "id")

	var req startScanRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.writeError(w, handlerName, service.ErrBadRequest("invalid JSON"))
			return
		}
	}

	scanType, err := ParseScanType(req.ScanType)
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	ctx := r.Context()
	job, created, err := h.Scans.StartScan(ctx, prID, scanType, "")
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	resp := startScanResponse{JobID: job.JobID, Status: string(job.State)}

	// Уже идущий скан — конфликт, в ответе идентификатор существующей задачи
	if !created {
		h.writeJSON(w, http.StatusConflict, resp)
		return
	}
	h.writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) handleGetScan(w http.ResponseWriter, r *http.Request) {
	const handlerName = "get_scan"

	jobID := chi.URLParam(r, "jobID")

	ctx := r.Context()
	job, results, summary, err := h.PRs.GetScanJob(ctx, jobID)
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	h.writeJSON(w, http.StatusOK, getScanResponse{
		Job:     job,
		Results: results,
		Summary: summary,
	})
}

func (h *Handler) handleSecuritySummary(w http.ResponseWriter, r *http.Request) {
	const handlerName = "security_summary"

	prID := chi.URLParam(r, "id")

	ctx := r.Context()
	summary, err := h.PRs.GetLatestSummary(ctx, prID)
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	h.writeJSON(w, http.StatusOK, securitySummaryResponse{Summary: summary})
}
