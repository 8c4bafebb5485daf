package model

import "time"

// NotificationStatus представляет статус доставки уведомления.
type NotificationStatus string

const (
	NotificationPending NotificationStatus = "PENDING"
	NotificationSent    NotificationStatus = "SENT"
	NotificationFailed  NotificationStatus = "FAILED"
)

// Notification описывает одно уведомление о завершённой задаче сканирования.
// Состояние ретраев (счётчик и время следующей попытки) хранится в БД,
// чтобы перезапуск процесса не терял запланированные повторы.
type Notification struct {
	NotificationID string             `json:"notification_id"`
	JobID          string             `json:"job_id"`
	Recipient      string             `json:"recipient"`
	Status         NotificationStatus `json:"status"`
	RetryCount     int                `json:"retry_count"`
	NextAttemptAt  time.Time          `json:"next_attempt_at"`
	LastError      *string            `json:"last_error,omitempty"`
	CreatedAt      *time.Time         `json:"created_at,omitempty"`
	SentAt         *time.Time         `json:"sent_at,omitempty"`
}

// NotificationStats хранит количество уведомлений в разбивке по статусам.
type NotificationStats struct {
	Pending int `json:"pending"`
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
}
