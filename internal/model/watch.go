package model

import "time"

// WatchTrigger представляет событие жизненного цикла PR, по которому срабатывает подписка.
type WatchTrigger string

const (
	// TriggerOnOpen — скан при появлении нового открытого PR.
	TriggerOnOpen WatchTrigger = "on_open"
	// TriggerOnSync — скан при обновлении head-коммита открытого PR.
	TriggerOnSync WatchTrigger = "on_sync"
	// TriggerOnMerge — скан после мержа PR.
	TriggerOnMerge WatchTrigger = "on_merge"
)

// Watch описывает подписку пользователя на автоматическое сканирование репозитория.
// Чекпоинты (последний проверенный коммит) читает и обновляет только планировщик.
type Watch struct {
	WatchID            string     `json:"watch_id"`
	RepositoryID       string     `json:"repository_id"`
	UserID             string     `json:"user_id"`
	IsActive           bool       `json:"is_active"`
	ScanOnOpen         bool       `json:"scan_on_open"`
	ScanOnSync         bool       `json:"scan_on_sync"`
	ScanOnMerge        bool       `json:"scan_on_merge"`
	EmailNotifications bool       `json:"email_notifications"`
	NotificationEmail  string     `json:"notification_email"`
	CreatedAt          *time.Time `json:"created_at,omitempty"`
}

// TriggerEnabled сообщает, включён ли указанный триггер на подписке.
func (w Watch) TriggerEnabled(t WatchTrigger) bool {
	switch t {
	case TriggerOnOpen:
		return w.ScanOnOpen
	case TriggerOnSync:
		return w.ScanOnSync
	case TriggerOnMerge:
		return w.ScanOnMerge
	}
	return false
}

// WatchCheckpoint хранит последний проверенный коммит для пары (PR, триггер)
// в рамках одной подписки.
type WatchCheckpoint struct {
	WatchID       string       `json:"watch_id"`
	PullRequestID string       `json:"pull_request_id"`
	Trigger       WatchTrigger `json:"trigger"`
	LastCommit    string       `json:"last_commit"`
	UpdatedAt     *time.Time   `json:"updated_at,omitempty"`
}
