package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pr-security-service/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// WatchRepo реализует репозиторий подписок и их чекпоинтов на базе PostgreSQL.
type WatchRepo struct {
	db *Postgres
}

// NewWatchRepo создаёт новый экземпляр WatchRepo c переданным подключением к PostgreSQL.
func NewWatchRepo(db *Postgres) *WatchRepo {
	return &WatchRepo{db: db}
}

// CreateWatch создаёт подписку. При конфликте по (репозиторий, пользователь)
// возвращает ErrWatchExists.
func (r *WatchRepo) CreateWatch(ctx context.Context, w model.Watch) (model.Watch, error) {
	q := r.db.GetQueryExecutor(ctx)

	row := q.QueryRow(ctx, `
INSERT INTO watches (watch_id, repository_id, user_id, is_active,
                     scan_on_open, scan_on_sync, scan_on_merge,
                     email_notifications, notification_email)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING watch_id, repository_id, user_id, is_active,
          scan_on_open, scan_on_sync, scan_on_merge,
          email_notifications, notification_email, created_at
`, w.WatchID, w.RepositoryID, w.UserID, w.IsActive,
		w.ScanOnOpen, w.ScanOnSync, w.ScanOnMerge,
		w.EmailNotifications, w.NotificationEmail)

	created, err := scanWatch(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.Watch{}, ErrWatchExists
		}
		return model.Watch{}, fmt.Errorf("insert watch: %w", err)
	}
	return created, nil
}

// UpdateWatch обновляет настройки подписки. Если подписка не найдена,
// возвращает ErrWatchNotFound.
func (r *WatchRepo) UpdateWatch(ctx context.Context, w model.Watch) (model.Watch, error) {
	q := r.db.GetQueryExecutor(ctx)

	row := q.QueryRow(ctx, `
UPDATE watches
SET is_active           = $2,
    scan_on_open        = $3,
    scan_on_sync        = $4,
    scan_on_merge       = $5,
    email_notifications = $6,
    notification_email  = $7
WHERE watch_id = $1
RETURNING watch_id, repository_id, user_id, is_active,
          scan_on_open, scan_on_sync, scan_on_merge,
          email_notifications, notification_email, created_at
`, w.WatchID, w.IsActive, w.ScanOnOpen, w.ScanOnSync, w.ScanOnMerge,
		w.EmailNotifications, w.NotificationEmail)

	return scanWatch(row)
}

// DeleteWatch удаляет подписку вместе с её чекпоинтами.
// Если подписка не найдена, возвращает ErrWatchNotFound.
func (r *WatchRepo) DeleteWatch(ctx context.Context, watchID string) error {
	q := r.db.GetQueryExecutor(ctx)

	cmdTag, err := q.Exec(ctx, `DELETE FROM watches WHERE watch_id = $1`, watchID)
	if err != nil {
		return fmt.Errorf("delete watch: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrWatchNotFound
	}
	return nil
}

// GetWatch возвращает подписку по идентификатору.
// Если подписка не найдена, возвращает ErrWatchNotFound.
func (r *WatchRepo) GetWatch(ctx context.Context, watchID string) (model.Watch, error) {
	q := r.db.GetQueryExecutor(ctx)

	row := q.QueryRow(ctx, `
SELECT watch_id, repository_id, user_id, is_active,
       scan_on_open, scan_on_sync, scan_on_merge,
       email_notifications, notification_email, created_at
FROM watches
WHERE watch_id = $1
`, watchID)

	return scanWatch(row)
}

// ListByUser возвращает подписки пользователя.
func (r *WatchRepo) ListByUser(ctx context.Context, userID string) ([]model.Watch, error) {
	return r.listWatches(ctx, `
SELECT watch_id, repository_id, user_id, is_active,
       scan_on_open, scan_on_sync, scan_on_merge,
       email_notifications, notification_email, created_at
FROM watches
WHERE user_id = $1
ORDER BY created_at
`, userID)
}

// ListActive возвращает все активные подписки.
func (r *WatchRepo) ListActive(ctx context.Context) ([]model.Watch, error) {
	return r.listWatches(ctx, `
SELECT watch_id, repository_id, user_id, is_active,
       scan_on_open, scan_on_sync, scan_on_merge,
       email_notifications, notification_email, created_at
FROM watches
WHERE is_active
ORDER BY created_at
`)
}

// ListActiveByRepository возвращает активные подписки на указанный репозиторий.
func (r *WatchRepo) ListActiveByRepository(ctx context.Context, repositoryID string) ([]model.Watch, error) {
	return r.listWatches(ctx, `
SELECT watch_id, repository_id, user_id, is_active,
       scan_on_open, scan_on_sync, scan_on_merge,
       email_notifications, notification_email, created_at
FROM watches
WHERE is_active AND repository_id = $1
ORDER BY created_at
`, repositoryID)
}

// ListNotifiableByJob возвращает активные подписки на репозиторий pull request'а
// задачи, у которых включены почтовые уведомления и задан адрес получателя.
func (r *WatchRepo) ListNotifiableByJob(ctx context.Context, jobID string) ([]model.Watch, error) {
	return r.listWatches(ctx, `
SELECT w.watch_id, w.repository_id, w.user_id, w.is_active,
       w.scan_on_open, w.scan_on_sync, w.scan_on_merge,
       w.email_notifications, w.notification_email, w.created_at
FROM watches w
JOIN pull_requests pr ON pr.repository_id = w.repository_id
JOIN scan_jobs j ON j.pull_request_id = pr.pull_request_id
WHERE j.job_id = $1
  AND w.is_active
  AND w.email_notifications
  AND w.notification_email <> ''
ORDER BY w.created_at
`, jobID)
}

// GetCheckpoint возвращает последний проверенный коммит для (подписка, PR, триггер).
// Если чекпоинта ещё нет, возвращает пустую строку без ошибки.
func (r *WatchRepo) GetCheckpoint(ctx context.Context, watchID, prID string, trigger model.WatchTrigger) (string, error) {
	q := r.db.GetQueryExecutor(ctx)

	var commit string
	err := q.QueryRow(ctx, `
SELECT last_commit
FROM watch_checkpoints
WHERE watch_id = $1 AND pull_request_id = $2 AND trigger = $3
`, watchID, prID, string(trigger)).Scan(&commit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("get checkpoint: %w", err)
	}
	return commit, nil
}

// UpsertCheckpoint записывает последний проверенный коммит для (подписка, PR, триггер).
func (r *WatchRepo) UpsertCheckpoint(ctx context.Context, watchID, prID string, trigger model.WatchTrigger, commit string) error {
	q := r.db.GetQueryExecutor(ctx)

	if _, err := q.Exec(ctx, `
INSERT INTO watch_checkpoints (watch_id, pull_request_id, trigger, last_commit, updated_at)
VALUES ($1, $2, $3, $4, now())
ON CONFLICT (watch_id, pull_request_id, trigger) DO UPDATE
SET last_commit = EXCLUDED.last_commit,
    updated_at  = now()
`, watchID, prID, string(trigger), commit); err != nil {
		return fmt.Errorf("upsert checkpoint: %w", err)
	}
	return nil
}

func (r *WatchRepo) listWatches(ctx context.Context, sql string, args ...any) ([]model.Watch, error) {
	q := r.db.GetQueryExecutor(ctx)

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query watches: %w", err)
	}
	defer rows.Close()

	res := make([]model.Watch, 0)
	for rows.Next() {
		w, err := scanWatch(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return res, nil
}

// scanWatch читает одну строку watches в доменную структуру.
func scanWatch(row pgx.Row) (model.Watch, error) {
	var w model.Watch
	var createdAt time.Time

	if err := row.Scan(&w.WatchID, &w.RepositoryID, &w.UserID, &w.IsActive,
		&w.ScanOnOpen, &w.ScanOnSync, &w.ScanOnMerge,
		&w.EmailNotifications, &w.NotificationEmail, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Watch{}, ErrWatchNotFound
		}
		return model.Watch{}, err
	}

	w.CreatedAt = &createdAt
	return w, nil
}
