package repository

import (
	"context"
	"fmt"
	"time"

	"pr-security-service/internal/model"
)

// NotificationRepo реализует репозиторий уведомлений на базе PostgreSQL.
// Всё состояние ретраев (счётчик попыток, время следующей попытки) хранится
// в таблице, поэтому перезапуск процесса не теряет запланированные повторы.
type NotificationRepo struct {
	db *Postgres
}

// NewNotificationRepo создаёт новый экземпляр NotificationRepo.
func NewNotificationRepo(db *Postgres) *NotificationRepo {
	return &NotificationRepo{db: db}
}

// CreatePending создаёт уведомление в статусе PENDING.
// Повторная доставка события о завершении той же задачи не создаёт дубликат:
// вставка идемпотентна по (job_id, recipient). Возвращает true, если запись
// была создана именно этим вызовом.
func (r *NotificationRepo) CreatePending(ctx context.Context, n model.Notification) (bool, error) {
	q := r.db.GetQueryExecutor(ctx)

	cmdTag, err := q.Exec(ctx, `
INSERT INTO notifications (notification_id, job_id, recipient, status, retry_count, next_attempt_at)
VALUES ($1, $2, $3, 'PENDING', 0, $4)
ON CONFLICT (job_id, recipient) DO NOTHING
`, n.NotificationID, n.JobID, n.Recipient, n.NextAttemptAt)
	if err != nil {
		return false, fmt.Errorf("insert notification: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// ListDue возвращает PENDING-уведомления, у которых наступило время попытки доставки.
func (r *NotificationRepo) ListDue(ctx context.Context, now time.Time, limit int) ([]model.Notification, error) {
	q := r.db.GetQueryExecutor(ctx)

	rows, err := q.Query(ctx, `
SELECT notification_id, job_id, recipient, status, retry_count, next_attempt_at,
       last_error, created_at, sent_at
FROM notifications
WHERE status = 'PENDING' AND next_attempt_at <= $1
ORDER BY next_attempt_at
LIMIT $2
`, now, limit)
	if err != nil {
		return nil, fmt.Errorf("query due notifications: %w", err)
	}
	defer rows.Close()

	res := make([]model.Notification, 0)
	for rows.Next() {
		var n model.Notification
		var status string
		var createdAt time.Time

		if err := rows.Scan(&n.NotificationID, &n.JobID, &n.Recipient, &status, &n.RetryCount,
			&n.NextAttemptAt, &n.LastError, &createdAt, &n.SentAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		n.Status = model.NotificationStatus(status)
		n.CreatedAt = &createdAt
		res = append(res, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return res, nil
}

// MarkSent помечает уведомление доставленным.
func (r *NotificationRepo) MarkSent(ctx context.Context, notificationID string) error {
	q := r.db.GetQueryExecutor(ctx)

	cmdTag, err := q.Exec(ctx, `
UPDATE notifications
SET status = 'SENT', sent_at = now()
WHERE notification_id = $1 AND status = 'PENDING'
`, notificationID)
	if err != nil {
		return fmt.Errorf("mark sent: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkRetry увеличивает счётчик попыток и назначает время следующей попытки.
func (r *NotificationRepo) MarkRetry(ctx context.Context, notificationID string, nextAttemptAt time.Time, lastError string) error {
	q := r.db.GetQueryExecutor(ctx)

	cmdTag, err := q.Exec(ctx, `
UPDATE notifications
SET retry_count = retry_count + 1, next_attempt_at = $2, last_error = $3
WHERE notification_id = $1 AND status = 'PENDING'
`, notificationID, nextAttemptAt, lastError)
	if err != nil {
		return fmt.Errorf("mark retry: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkFailed помечает уведомление окончательно недоставленным
// (после исчерпания лимита попыток; дальнейших автоматических ретраев не будет).
func (r *NotificationRepo) MarkFailed(ctx context.Context, notificationID string, lastError string) error {
	q := r.db.GetQueryExecutor(ctx)

	cmdTag, err := q.Exec(ctx, `
UPDATE notifications
SET status = 'FAILED', retry_count = retry_count + 1, last_error = $2
WHERE notification_id = $1 AND status = 'PENDING'
`, notificationID, lastError)
	if err != nil {
		return fmt.Errorf("mark failed: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// Stats возвращает количество уведомлений в разбивке по статусам.
func (r *NotificationRepo) Stats(ctx context.Context) (model.NotificationStats, error) {
	q := r.db.GetQueryExecutor(ctx)

	rows, err := q.Query(ctx, `
SELECT status, COUNT(*)
FROM notifications
GROUP BY status
`)
	if err != nil {
		return model.NotificationStats{}, fmt.Errorf("query notification stats: %w", err)
	}
	defer rows.Close()

	var stats model.NotificationStats
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return model.NotificationStats{}, fmt.Errorf("scan stats: %w", err)
		}
		switch model.NotificationStatus(status) {
		case model.NotificationPending:
			stats.Pending = count
		case model.NotificationSent:
			stats.Sent = count
		case model.NotificationFailed:
			stats.Failed = count
		}
	}
	if err := rows.Err(); err != nil {
		return model.NotificationStats{}, fmt.Errorf("rows error: %w", err)
	}
	return stats, nil
}
