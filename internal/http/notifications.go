package http

import "net/http"

func (h *Handler) handleNotificationStats(w http.ResponseWriter, r *http.Request) {
	const handlerName = "notification_stats"

	ctx := r.Context()
	stats, err := h.Notifications.Stats(ctx)
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	h.writeJSON(w, http.StatusOK, stats)
}
