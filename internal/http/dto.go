// Package http реализует HTTP-обработчики и DTO поверх доменных сервисов.
package http

import "pr-security-service/internal/model"

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type startScanRequest struct {
	ScanType string `json:"scan_type"`
}

type startScanResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

type getScanResponse struct {
	Job     model.ScanJob          `json:"job"`
	Results []model.ScanResult     `json:"results"`
	Summary *model.SecuritySummary `json:"summary"`
}

type securitySummaryResponse struct {
	Summary *model.SecuritySummary `json:"summary"`
}

type prResponse struct {
	PR model.PullRequest `json:"pr"`
}

type syncPRsResponse struct {
	PRsAdded   int `json:"prs_added"`
	PRsUpdated int `json:"prs_updated"`
}

type watchRequest struct {
	RepositoryID       string `json:"repository_id"`
	UserID             string `json:"user_id"`
	IsActive           *bool  `json:"is_active,omitempty"`
	ScanOnOpen         bool   `json:"scan_on_open"`
	ScanOnSync         bool   `json:"scan_on_sync"`
	ScanOnMerge        bool   `json:"scan_on_merge"`
	EmailNotifications bool   `json:"email_notifications"`
	NotificationEmail  string `json:"notification_email"`
}

type watchResponse struct {
	Watch model.Watch `json:"watch"`
}

type watchListResponse struct {
	Watches []model.Watch `json:"watches"`
}
