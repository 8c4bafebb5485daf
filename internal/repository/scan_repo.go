package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pr-security-service/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ScanRepo реализует репозиторий задач сканирования, пофайловых результатов
// и итоговых security-сводок на базе PostgreSQL.
type ScanRepo struct {
	db *Postgres
}

// NewScanRepo создаёт новый экземпляр ScanRepo c переданным подключением к PostgreSQL.
func NewScanRepo(db *Postgres) *ScanRepo {
	return &ScanRepo{db: db}
}

// CreateJob создаёт задачу сканирования в состоянии PENDING.
// Частичный уникальный индекс по активным задачам гарантирует не более одной
// PENDING/RUNNING-задачи на pull request даже при гонке двух параллельных вставок:
// проигравшая получает ErrActiveJobExists. Конфликт по ключу идемпотентности
// возвращается как ErrDuplicateKey.
func (r *ScanRepo) CreateJob(ctx context.Context, job model.ScanJob) (model.ScanJob, error) {
	q := r.db.GetQueryExecutor(ctx)

	row := q.QueryRow(ctx, `
INSERT INTO scan_jobs (job_id, pull_request_id, scan_type, base_sha, head_sha, state, idempotency_key)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING job_id, pull_request_id, scan_type, base_sha, head_sha, state,
          error_message, idempotency_key, created_at, started_at, completed_at
`, job.JobID, job.PullRequestID, string(job.ScanType), job.BaseSHA, job.HeadSHA,
		string(model.JobStatePending), job.IdempotencyKey)

	created, err := scanJob(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if pgErr.ConstraintName == "scan_jobs_idempotency_key_key" {
				return model.ScanJob{}, ErrDuplicateKey
			}
			return model.ScanJob{}, ErrActiveJobExists
		}
		return model.ScanJob{}, fmt.Errorf("insert scan job: %w", err)
	}
	return created, nil
}

// GetJob возвращает задачу сканирования по идентификатору.
// Если задача не найдена, возвращает ErrJobNotFound.
func (r *ScanRepo) GetJob(ctx context.Context, jobID string) (model.ScanJob, error) {
	q := r.db.GetQueryExecutor(ctx)

	row := q.QueryRow(ctx, `
SELECT job_id, pull_request_id, scan_type, base_sha, head_sha, state,
       error_message, idempotency_key, created_at, started_at, completed_at
FROM scan_jobs
WHERE job_id = $1
`, jobID)

	return scanJob(row)
}

// GetActiveJobByPR возвращает активную (PENDING/RUNNING) задачу указанного pull request'а.
// Если активной задачи нет, возвращает ErrJobNotFound.
func (r *ScanRepo) GetActiveJobByPR(ctx context.Context, prID string) (model.ScanJob, error) {
	q := r.db.GetQueryExecutor(ctx)

	row := q.QueryRow(ctx, `
SELECT job_id, pull_request_id, scan_type, base_sha, head_sha, state,
       error_message, idempotency_key, created_at, started_at, completed_at
FROM scan_jobs
WHERE pull_request_id = $1 AND state IN ('PENDING', 'RUNNING')
`, prID)

	return scanJob(row)
}

// GetJobByIdempotencyKey возвращает задачу по ключу идемпотентности.
// Если задачи с таким ключом нет, возвращает ErrJobNotFound.
func (r *ScanRepo) GetJobByIdempotencyKey(ctx context.Context, key string) (model.ScanJob, error) {
	q := r.db.GetQueryExecutor(ctx)

	row := q.QueryRow(ctx, `
SELECT job_id, pull_request_id, scan_type, base_sha, head_sha, state,
       error_message, idempotency_key, created_at, started_at, completed_at
FROM scan_jobs
WHERE idempotency_key = $1
`, key)

	return scanJob(row)
}

// ClaimJob переводит задачу PENDING -> RUNNING и возвращает true, если переход
// выполнил именно этот вызов. Guard по текущему состоянию сохраняет монотонность
// переходов при повторной постановке той же задачи в очередь.
func (r *ScanRepo) ClaimJob(ctx context.Context, jobID string) (bool, error) {
	q := r.db.GetQueryExecutor(ctx)

	cmdTag, err := q.Exec(ctx, `
UPDATE scan_jobs
SET state = 'RUNNING', started_at = now()
WHERE job_id = $1 AND state = 'PENDING'
`, jobID)
	if err != nil {
		return false, fmt.Errorf("claim job: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// CompleteJob переводит задачу RUNNING -> COMPLETED.
func (r *ScanRepo) CompleteJob(ctx context.Context, jobID string) error {
	q := r.db.GetQueryExecutor(ctx)

	cmdTag, err := q.Exec(ctx, `
UPDATE scan_jobs
SET state = 'COMPLETED', completed_at = now()
WHERE job_id = $1 AND state = 'RUNNING'
`, jobID)
	if err != nil {
		return fmt.Errorf("complete job: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrJobNotFound
	}
	return nil
}

// FailJob переводит задачу RUNNING -> FAILED с сообщением об ошибке.
func (r *ScanRepo) FailJob(ctx context.Context, jobID, message string) error {
	q := r.db.GetQueryExecutor(ctx)

	cmdTag, err := q.Exec(ctx, `
UPDATE scan_jobs
SET state = 'FAILED', error_message = $2, completed_at = now()
WHERE job_id = $1 AND state = 'RUNNING'
`, jobID, message)
	if err != nil {
		return fmt.Errorf("fail job: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrJobNotFound
	}
	return nil
}

// ResetInterruptedJobs возвращает прерванные перезапуском задачи (RUNNING -> PENDING),
// удаляя их частичные результаты, и отдаёт идентификаторы всех PENDING-задач
// для повторной постановки в очередь.
func (r *ScanRepo) ResetInterruptedJobs(ctx context.Context) ([]string, error) {
	q := r.db.GetQueryExecutor(ctx)

	if _, err := q.Exec(ctx, `
DELETE FROM scan_results
WHERE job_id IN (SELECT job_id FROM scan_jobs WHERE state = 'RUNNING')
`); err != nil {
		return nil, fmt.Errorf("clear partial results: %w", err)
	}

	if _, err := q.Exec(ctx, `
UPDATE scan_jobs
SET state = 'PENDING', started_at = NULL
WHERE state = 'RUNNING'
`); err != nil {
		return nil, fmt.Errorf("reset running jobs: %w", err)
	}

	rows, err := q.Query(ctx, `
SELECT job_id FROM scan_jobs WHERE state = 'PENDING' ORDER BY created_at
`)
	if err != nil {
		return nil, fmt.Errorf("query pending jobs: %w", err)
	}
	defer rows.Close()

	res := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan job id: %w", err)
		}
		res = append(res, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return res, nil
}

// InsertResult сохраняет результат сканирования одного файла.
func (r *ScanRepo) InsertResult(ctx context.Context, res model.ScanResult) error {
	q := r.db.GetQueryExecutor(ctx)

	added, err := json.Marshal(res.Added)
	if err != nil {
		return fmt.Errorf("marshal added: %w", err)
	}
	fixed, err := json.Marshal(res.Fixed)
	if err != nil {
		return fmt.Errorf("marshal fixed: %w", err)
	}
	unchanged, err := json.Marshal(res.Unchanged)
	if err != nil {
		return fmt.Errorf("marshal unchanged: %w", err)
	}
	meta, err := json.Marshal(res.DetectorMeta)
	if err != nil {
		return fmt.Errorf("marshal detector meta: %w", err)
	}

	if _, err := q.Exec(ctx, `
INSERT INTO scan_results (result_id, job_id, file_path, change_type, added, fixed, unchanged, detector_meta)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, res.ResultID, res.JobID, res.FilePath, string(res.ChangeType), added, fixed, unchanged, meta); err != nil {
		return fmt.Errorf("insert scan result: %w", err)
	}
	return nil
}

// ListResultsByJob возвращает результаты всех файлов задачи в порядке путей.
func (r *ScanRepo) ListResultsByJob(ctx context.Context, jobID string) ([]model.ScanResult, error) {
	q := r.db.GetQueryExecutor(ctx)

	rows, err := q.Query(ctx, `
SELECT result_id, job_id, file_path, change_type, added, fixed, unchanged, detector_meta, created_at
FROM scan_results
WHERE job_id = $1
ORDER BY file_path
`, jobID)
	if err != nil {
		return nil, fmt.Errorf("query scan results: %w", err)
	}
	defer rows.Close()

	res := make([]model.ScanResult, 0)
	for rows.Next() {
		var sr model.ScanResult
		var changeType string
		var added, fixed, unchanged, meta []byte
		var createdAt time.Time

		if err := rows.Scan(&sr.ResultID, &sr.JobID, &sr.FilePath, &changeType,
			&added, &fixed, &unchanged, &meta, &createdAt); err != nil {
			return nil, fmt.Errorf("scan result row: %w", err)
		}

		sr.ChangeType = model.ChangeType(changeType)
		sr.CreatedAt = &createdAt
		if err := json.Unmarshal(added, &sr.Added); err != nil {
			return nil, fmt.Errorf("unmarshal added: %w", err)
		}
		if err := json.Unmarshal(fixed, &sr.Fixed); err != nil {
			return nil, fmt.Errorf("unmarshal fixed: %w", err)
		}
		if err := json.Unmarshal(unchanged, &sr.Unchanged); err != nil {
			return nil, fmt.Errorf("unmarshal unchanged: %w", err)
		}
		if err := json.Unmarshal(meta, &sr.DetectorMeta); err != nil {
			return nil, fmt.Errorf("unmarshal detector meta: %w", err)
		}
		res = append(res, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return res, nil
}

// InsertSummary сохраняет итог завершённой задачи.
func (r *ScanRepo) InsertSummary(ctx context.Context, s model.SecuritySummary) error {
	q := r.db.GetQueryExecutor(ctx)

	if _, err := q.Exec(ctx, `
INSERT INTO security_summaries (job_id, pull_request_id, before_score, after_score, recommendation,
                                added_critical, added_high, added_medium, added_low,
                                fixed_critical, fixed_high, fixed_medium, fixed_low)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`, s.JobID, s.PullRequestID, s.BeforeScore, s.AfterScore, string(s.Recommendation),
		s.AddedCounts.Critical, s.AddedCounts.High, s.AddedCounts.Medium, s.AddedCounts.Low,
		s.FixedCounts.Critical, s.FixedCounts.High, s.FixedCounts.Medium, s.FixedCounts.Low); err != nil {
		return fmt.Errorf("insert summary: %w", err)
	}
	return nil
}

// GetSummaryByJob возвращает итог задачи. Если итога нет, возвращает ErrSummaryNotFound.
func (r *ScanRepo) GetSummaryByJob(ctx context.Context, jobID string) (model.SecuritySummary, error) {
	q := r.db.GetQueryExecutor(ctx)

	row := q.QueryRow(ctx, `
SELECT job_id, pull_request_id, before_score, after_score, recommendation,
       added_critical, added_high, added_medium, added_low,
       fixed_critical, fixed_high, fixed_medium, fixed_low, created_at
FROM security_summaries
WHERE job_id = $1
`, jobID)

	return scanSummary(row)
}

// GetLatestSummaryByPR возвращает итог последней завершённой задачи pull request'а.
// Если завершённых задач нет, возвращает ErrSummaryNotFound.
func (r *ScanRepo) GetLatestSummaryByPR(ctx context.Context, prID string) (model.SecuritySummary, error) {
	q := r.db.GetQueryExecutor(ctx)

	row := q.QueryRow(ctx, `
SELECT s.job_id, s.pull_request_id, s.before_score, s.after_score, s.recommendation,
       s.added_critical, s.added_high, s.added_medium, s.added_low,
       s.fixed_critical, s.fixed_high, s.fixed_medium, s.fixed_low, s.created_at
FROM security_summaries s
JOIN scan_jobs j ON j.job_id = s.job_id
WHERE s.pull_request_id = $1
ORDER BY j.completed_at DESC
LIMIT 1
`, prID)

	return scanSummary(row)
}

// scanJob читает одну строку scan_jobs в доменную структуру.
func scanJob(row pgx.Row) (model.ScanJob, error) {
	var job model.ScanJob
	var scanType, state string
	var createdAt time.Time
	var startedAt, completedAt *time.Time

	if err := row.Scan(&job.JobID, &job.PullRequestID, &scanType, &job.BaseSHA, &job.HeadSHA,
		&state, &job.ErrorMessage, &job.IdempotencyKey, &createdAt, &startedAt, &completedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ScanJob{}, ErrJobNotFound
		}
		return model.ScanJob{}, err
	}

	job.ScanType = model.ScanType(scanType)
	job.State = model.JobState(state)
	job.CreatedAt = &createdAt
	job.StartedAt = startedAt
	job.CompletedAt = completedAt
	return job, nil
}

// scanSummary читает одну строку security_summaries в доменную структуру.
func scanSummary(row pgx.Row) (model.SecuritySummary, error) {
	var s model.SecuritySummary
	var recommendation string
	var createdAt time.Time

	if err := row.Scan(&s.JobID, &s.PullRequestID, &s.BeforeScore, &s.AfterScore, &recommendation,
		&s.AddedCounts.Critical, &s.AddedCounts.High, &s.AddedCounts.Medium, &s.AddedCounts.Low,
		&s.FixedCounts.Critical, &s.FixedCounts.High, &s.FixedCounts.Medium, &s.FixedCounts.Low,
		&createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.SecuritySummary{}, ErrSummaryNotFound
		}
		return model.SecuritySummary{}, fmt.Errorf("scan summary: %w", err)
	}

	s.Recommendation = model.Recommendation(recommendation)
	s.CreatedAt = &createdAt
	return s, nil
}
