// Package model содержит доменные структуры для pull request'ов, сканов, подписок и уведомлений
package model

import "time"

// PullRequestStatus представляет статус pull request'а в доменной модели.
type PullRequestStatus string

const (
	// StatusOpen означает, что pull request находится в открытом состоянии.
	StatusOpen PullRequestStatus = "OPEN"
	// StatusClosed означает, что pull request был закрыт без мержа.
	StatusClosed PullRequestStatus = "CLOSED"
	// StatusMerged означает, что pull request был влит (merged).
	StatusMerged PullRequestStatus = "MERGED"
)

// PullRequest описывает pull request внешнего репозитория: ветки, коммиты base/head,
// статус и временные метки. Обновляется операцией синхронизации с внешним коннектором.
type PullRequest struct {
	PullRequestID string            `json:"pull_request_id"`
	RepositoryID  string            `json:"repository_id"`
	Number        int               `json:"number"`
	Title         string            `json:"title"`
	Author        string            `json:"author"`
	BaseBranch    string            `json:"base_branch"`
	HeadBranch    string            `json:"head_branch"`
	BaseSHA       string            `json:"base_sha"`
	HeadSHA       string            `json:"head_sha"`
	Status        PullRequestStatus `json:"status"`
	CreatedAt     *time.Time        `json:"created_at,omitempty"`
	UpdatedAt     *time.Time        `json:"updated_at,omitempty"`
}
