// Package connector реализует доступ к внешней платформе контроля версий (GitHub):
// списки pull request'ов и содержимое файлов диффа на base- и head-коммитах.
package connector

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/go-github/v45/github"
	"golang.org/x/oauth2"

	"pr-security-service/internal/model"
	"pr-security-service/internal/service"
)

// Error описывает ошибку коннектора с классификацией временная/постоянная.
// Временные ошибки (сеть, rate limit, 5xx) ретраятся вызывающей стороной,
// постоянные (отсутствующий репозиторий или файл) — нет.
type Error struct {
	Op        string
	Err       error
	Retryable bool
}

func (e *Error) Error() string {
	return fmt.Sprintf("connector %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Transient сообщает, временная ли это ошибка.
func (e *Error) Transient() bool { return e.Retryable }

// GitHub реализует service.SourceConnector поверх GitHub REST API.
type GitHub struct {
	client *github.Client
}

// NewGitHub создаёт коннектор. Пустой токен даёт неаутентифицированный клиент
// (годится только для публичных репозиториев и низких лимитов).
func NewGitHub(ctx context.Context, token string) *GitHub {
	if token == "" {
		return &GitHub{client: github.NewClient(nil)}
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &GitHub{client: github.NewClient(oauth2.NewClient(ctx, ts))}
}

// ListPullRequests возвращает pull request'ы репозитория "owner/name"
// во всех состояниях.
func (g *GitHub) ListPullRequests(ctx context.Context, repositoryID string) ([]model.PullRequest, error) {
	owner, name, err := splitRepositoryID(repositoryID)
	if err != nil {
		return nil, err
	}

	opts := &github.PullRequestListOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	res := make([]model.PullRequest, 0)
	for {
		prs, resp, err := g.client.PullRequests.List(ctx, owner, name, opts)
		if err != nil {
			return nil, classify("list pull requests", err)
		}
		for _, pr := range prs {
			res = append(res, toModelPR(repositoryID, pr))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return res, nil
}

// FetchDiff возвращает изменённые файлы pull request'а вместе с содержимым
// base- и head-версий. Для добавленных файлов base-содержимого нет,
// для удалённых нет head-содержимого.
func (g *GitHub) FetchDiff(ctx context.Context, repositoryID string, number int, baseSHA, headSHA string) ([]service.FileDiff, error) {
	owner, name, err := splitRepositoryID(repositoryID)
	if err != nil {
		return nil, err
	}

	opts := &github.ListOptions{PerPage: 100}
	files := make([]*github.CommitFile, 0)
	for {
		page, resp, err := g.client.PullRequests.ListFiles(ctx, owner, name, number, opts)
		if err != nil {
			return nil, classify("list files", err)
		}
		files = append(files, page...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	res := make([]service.FileDiff, 0, len(files))
	for _, f := range files {
		diff := service.FileDiff{Path: f.GetFilename()}

		switch f.GetStatus() {
		case "added":
			diff.ChangeType = model.ChangeTypeAdded
			diff.HeadContent, err = g.fileContent(ctx, owner, name, f.GetFilename(), headSHA)
			if err != nil {
				return nil, err
			}
		case "removed":
			diff.ChangeType = model.ChangeTypeDeleted
			diff.BaseContent, err = g.fileContent(ctx, owner, name, f.GetFilename(), baseSHA)
			if err != nil {
				return nil, err
			}
		default:
			// modified, renamed и changed сканируются как изменённые
			diff.ChangeType = model.ChangeTypeModified
			basePath := f.GetFilename()
			if f.GetPreviousFilename() != "" {
				basePath = f.GetPreviousFilename()
			}
			diff.BaseContent, err = g.fileContent(ctx, owner, name, basePath, baseSHA)
			if err != nil {
				return nil, err
			}
			diff.HeadContent, err = g.fileContent(ctx, owner, name, f.GetFilename(), headSHA)
			if err != nil {
				return nil, err
			}
		}

		res = append(res, diff)
	}
	return res, nil
}

// fileContent возвращает содержимое файла на указанном коммите.
func (g *GitHub) fileContent(ctx context.Context, owner, name, path, ref string) (string, error) {
	fc, _, _, err := g.client.Repositories.GetContents(ctx, owner, name, path,
		&github.RepositoryContentGetOptions{Ref: ref})
	if err != nil {
		return "", classify(fmt.Sprintf("get contents %s@%s", path, ref), err)
	}
	if fc == nil {
		return "", &Error{Op: "get contents", Err: fmt.Errorf("%s is a directory", path)}
	}
	content, err := fc.GetContent()
	if err != nil {
		return "", &Error{Op: "decode contents", Err: err}
	}
	return content, nil
}

// classify оборачивает ошибку GitHub API с классификацией временная/постоянная.
func classify(op string, err error) error {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return &Error{Op: op, Err: err, Retryable: true}
	}

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		// 4xx (не найдено, нет прав) — постоянные, 5xx — временные
		if ghErr.Response.StatusCode >= 500 {
			return &Error{Op: op, Err: err, Retryable: true}
		}
		return &Error{Op: op, Err: err}
	}

	// Сетевые и прочие транспортные ошибки считаем временными
	return &Error{Op: op, Err: err, Retryable: true}
}

// splitRepositoryID разбирает идентификатор репозитория вида "owner/name".
func splitRepositoryID(repositoryID string) (string, string, error) {
	parts := strings.SplitN(repositoryID, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", &Error{Op: "parse repository id",
			Err: fmt.Errorf("invalid repository id %q: expected owner/name", repositoryID)}
	}
	return parts[0], parts[1], nil
}

// toModelPR переводит PR из представления GitHub в доменную модель.
func toModelPR(repositoryID string, pr *github.PullRequest) model.PullRequest {
	status := model.StatusOpen
	if pr.GetState() == "closed" {
		status = model.StatusClosed
		if pr.MergedAt != nil {
			status = model.StatusMerged
		}
	}

	out := model.PullRequest{
		RepositoryID: repositoryID,
		Number:       pr.GetNumber(),
		Title:        pr.GetTitle(),
		Author:       pr.GetUser().GetLogin(),
		BaseBranch:   pr.GetBase().GetRef(),
		HeadBranch:   pr.GetHead().GetRef(),
		BaseSHA:      pr.GetBase().GetSHA(),
		HeadSHA:      pr.GetHead().GetSHA(),
		Status:       status,
	}
	if pr.CreatedAt != nil {
		out.CreatedAt = pr.CreatedAt
	}
	if pr.UpdatedAt != nil {
		out.UpdatedAt = pr.UpdatedAt
	}
	return out
}
