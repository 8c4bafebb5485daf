package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"pr-security-service/internal/model"
	"pr-security-service/internal/service"
)

// ScanService описывает контракт оркестратора сканирования для HTTP-слоя.
type ScanService interface {
	StartScan(ctx context.Context, prID string, scanType model.ScanType, idempotencyKey string) (model.ScanJob, bool, error)
}

// PRService описывает контракт сервиса pull request'ов для HTTP-слоя.
type PRService interface {
	SyncPullRequests(ctx context.Context, repositoryID string) (int, int, error)
	GetPR(ctx context.Context, prID string) (model.PullRequest, error)
	GetScanJob(ctx context.Context, jobID string) (model.ScanJob, []model.ScanResult, *model.SecuritySummary, error)
	GetLatestSummary(ctx context.Context, prID string) (*model.SecuritySummary, error)
}

// WatchService описывает контракт сервиса подписок для HTTP-слоя.
type WatchService interface {
	CreateWatch(ctx context.Context, w model.Watch) (model.Watch, error)
	UpdateWatch(ctx context.Context, w model.Watch) (model.Watch, error)
	DeleteWatch(ctx context.Context, watchID string) error
	ListWatches(ctx context.Context, userID string) ([]model.Watch, error)
}

// NotificationService описывает контракт диспетчера уведомлений для HTTP-слоя.
type NotificationService interface {
	Stats(ctx context.Context) (model.NotificationStats, error)
}

type Handler struct {
	Scans         ScanService
	PRs           PRService
	Watches       WatchService
	Notifications NotificationService
	Log           *slog.Logger
}

func NewHandler(scans ScanService, prs PRService, watches WatchService, notifications NotificationService, log *slog.Logger) *Handler {
	return &Handler{
		Scans:         scans,
		PRs:           prs,
		Watches:       watches,
		Notifications: notifications,
		Log:           log,
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", h.handleHealth)

	r.Route("/pull-requests", func(r chi.Router) {
		r.Get("/{id}", h.handleGetPR)
		r.Post("/{id}/scan", h.handleStartScan)
		r.Get("/{id}/security-summary", h.handleSecuritySummary)
	})

	r.Get("/pr-scans/{jobID}", h.handleGetScan)

	r.Post("/repositories/{owner}/{name}/sync-prs", h.handleSyncPRs)

	r.Route("/watches", func(r chi.Router) {
		r.Get("/", h.handleWatchList)
		r.Post("/", h.handleWatchCreate)
		r.Put("/{id}", h.handleWatchUpdate)
		r.Delete("/{id}", h.handleWatchDelete)
	})

	r.Get("/notifications/stats", h.handleNotificationStats)

	return r
}

func (h *Handler) writeError(w http.ResponseWriter, handlerName string, err error) {
	appErr, ok := err.(*service.AppError)
	if !ok {
		appErr = &service.AppError{
			Code:    "INTERNAL",
			Message: "internal error",
			Status:  http.StatusInternalServerError,
			Err:     err,
		}
	}

	h.Log.Error("handler error",
		slog.String("handler", handlerName),
		slog.String("code", appErr.Code),
		slog.String("message", appErr.Message),
		slog.Any("err", appErr.Err),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Status)

	resp := errorResponse{}
	resp.Error.Code = appErr.Code
	resp.Error.Message = appErr.Message
	_ = json.NewEncoder(w).Encode(resp)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
