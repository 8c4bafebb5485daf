package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pr-security-service/internal/model"

	"github.com/jackc/pgx/v5"
)

// PRRepo реализует репозиторий pull request'ов на базе PostgreSQL.
type PRRepo struct {
	db *Postgres
}

// NewPRRepo создаёт новый экземпляр PRRepo c переданным подключением к PostgreSQL.
func NewPRRepo(db *Postgres) *PRRepo {
	return &PRRepo{db: db}
}

// UpsertPR создаёт pull request или обновляет существующий по паре (репозиторий, номер).
// Возвращает актуальное состояние и признак того, что запись была создана впервые.
func (r *PRRepo) UpsertPR(ctx context.Context, pr model.PullRequest) (model.PullRequest, bool, error) {
	q := r.db.GetQueryExecutor(ctx)

	row := q.QueryRow(ctx, `
INSERT INTO pull_requests (pull_request_id, repository_id, number, title, author,
                           base_branch, head_branch, base_sha, head_sha, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (repository_id, number) DO UPDATE
SET title      = EXCLUDED.title,
    base_sha   = EXCLUDED.base_sha,
    head_sha   = EXCLUDED.head_sha,
    status     = EXCLUDED.status,
    updated_at = now()
RETURNING pull_request_id, repository_id, number, title, author,
          base_branch, head_branch, base_sha, head_sha, status,
          created_at, updated_at, (xmax = 0) AS inserted
`, pr.PullRequestID, pr.RepositoryID, pr.Number, pr.Title, pr.Author,
		pr.BaseBranch, pr.HeadBranch, pr.BaseSHA, pr.HeadSHA, string(pr.Status))

	var out model.PullRequest
	var status string
	var createdAt, updatedAt time.Time
	var inserted bool

	if err := row.Scan(&out.PullRequestID, &out.RepositoryID, &out.Number, &out.Title, &out.Author,
		&out.BaseBranch, &out.HeadBranch, &out.BaseSHA, &out.HeadSHA, &status,
		&createdAt, &updatedAt, &inserted); err != nil {
		return model.PullRequest{}, false, fmt.Errorf("upsert pr: %w", err)
	}

	out.Status = model.PullRequestStatus(status)
	out.CreatedAt = &createdAt
	out.UpdatedAt = &updatedAt

	return out, inserted, nil
}

// GetPR возвращает pull request по идентификатору.
// Если PR не найден, возвращает ErrPRNotFound.
func (r *PRRepo) GetPR(ctx context.Context, prID string) (model.PullRequest, error) {
	q := r.db.GetQueryExecutor(ctx)

	row := q.QueryRow(ctx, `
SELECT pull_request_id, repository_id, number, title, author,
       base_branch, head_branch, base_sha, head_sha, status, created_at, updated_at
FROM pull_requests
WHERE pull_request_id = $1
`, prID)

	return scanPR(row)
}

// ListByRepository возвращает все pull request'ы указанного репозитория.
func (r *PRRepo) ListByRepository(ctx context.Context, repositoryID string) ([]model.PullRequest, error) {
	q := r.db.GetQueryExecutor(ctx)

	rows, err := q.Query(ctx, `
SELECT pull_request_id, repository_id, number, title, author,
       base_branch, head_branch, base_sha, head_sha, status, created_at, updated_at
FROM pull_requests
WHERE repository_id = $1
ORDER BY number
`, repositoryID)
	if err != nil {
		return nil, fmt.Errorf("query pull requests: %w", err)
	}
	defer rows.Close()

	res := make([]model.PullRequest, 0)
	for rows.Next() {
		pr, err := scanPR(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return res, nil
}

// scanPR читает одну строку pull_requests в доменную структуру.
func scanPR(row pgx.Row) (model.PullRequest, error) {
	var pr model.PullRequest
	var status string
	var createdAt, updatedAt time.Time

	if err := row.Scan(&pr.PullRequestID, &pr.RepositoryID, &pr.Number, &pr.Title, &pr.Author,
		&pr.BaseBranch, &pr.HeadBranch, &pr.BaseSHA, &pr.HeadSHA, &status, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.PullRequest{}, ErrPRNotFound
		}
		return model.PullRequest{}, fmt.Errorf("scan pr: %w", err)
	}

	pr.Status = model.PullRequestStatus(status)
	pr.CreatedAt = &createdAt
	pr.UpdatedAt = &updatedAt
	return pr, nil
}
