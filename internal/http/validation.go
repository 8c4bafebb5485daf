package http

import (
	"strings"

	"pr-security-service/internal/model"
	"pr-security-service/internal/service"
)

// ParseScanType разбирает тип скана из тела запроса (без учёта регистра).
// Пустое значение означает DIFF.
func ParseScanType(raw string) (model.ScanType, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "", "DIFF":
		return model.ScanTypeDiff, nil
	case "FULL":
		return model.ScanTypeFull, nil
	case "TARGETED":
		return model.ScanTypeTargeted, nil
	default:
		return "", service.ErrBadRequest("scan_type must be one of diff, full, targeted")
	}
}

// ValidateWatchRequest проверяет тело запроса создания подписки.
func ValidateWatchRequest(req watchRequest) error {
	if req.RepositoryID == "" {
		return service.ErrBadRequest("repository_id is required")
	}
	if !strings.Contains(req.RepositoryID, "/") {
		return service.ErrBadRequest("repository_id must have the form owner/name")
	}
	if req.UserID == "" {
		return service.ErrBadRequest("user_id is required")
	}
	if req.EmailNotifications && req.NotificationEmail == "" {
		return service.ErrBadRequest("notification_email is required when email_notifications is enabled")
	}
	return nil
}
