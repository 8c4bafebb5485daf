package service

import (
	"context"
	"errors"
	"log/slog"

	"pr-security-service/internal/model"
	"pr-security-service/internal/repository"

	"github.com/google/uuid"
)

// WatchChecker описывает событийный вход планировщика подписок:
// проверку одного репозитория сразу после синхронизации его PR.
type WatchChecker interface {
	CheckRepository(ctx context.Context, repositoryID string) error
}

// PRService отвечает за синхронизацию pull request'ов с внешним коннектором
// и чтение результатов сканирования.
type PRService struct {
	prRepo    PRRepository
	scanRepo  ScanRepository
	connector SourceConnector
	watches   WatchChecker
	log       *slog.Logger
}

// NewPRService создаёт сервис pull request'ов.
func NewPRService(
	prRepo PRRepository,
	scanRepo ScanRepository,
	connector SourceConnector,
	watches WatchChecker,
	log *slog.Logger,
) *PRService {
	return &PRService{
		prRepo:    prRepo,
		scanRepo:  scanRepo,
		connector: connector,
		watches:   watches,
		log:       log,
	}
}

// SyncPullRequests подтягивает pull request'ы репозитория из внешнего коннектора,
// сохраняет их и запускает проверку подписок на этот репозиторий.
// Возвращает количество новых и обновлённых PR.
func (s *PRService) SyncPullRequests(ctx context.Context, repositoryID string) (int, int, error) {
	if repositoryID == "" {
		return 0, 0, ErrBadRequest("repository_id is required")
	}

	remote, err := s.connector.ListPullRequests(ctx, repositoryID)
	if err != nil {
		return 0, 0, ErrInternal("failed to list pull requests from connector", err)
	}

	added, updated := 0, 0
	for _, pr := range remote {
		pr.PullRequestID = uuid.NewString()
		_, inserted, err := s.prRepo.UpsertPR(ctx, pr)
		if err != nil {
			return added, updated, ErrInternal("failed to upsert pull request", err)
		}
		if inserted {
			added++
		} else {
			updated++
		}
	}

	// Проверка подписок не должна ломать ответ синхронизации:
	// её ошибки логируются, следующий тик планировщика всё повторит
	if err := s.watches.CheckRepository(ctx, repositoryID); err != nil {
		s.log.Error("watch check after sync failed",
			slog.String("repository_id", repositoryID),
			slog.Any("err", err),
		)
	}

	return added, updated, nil
}

// GetPR возвращает pull request по идентификатору.
func (s *PRService) GetPR(ctx context.Context, prID string) (model.PullRequest, error) {
	if prID == "" {
		return model.PullRequest{}, ErrBadRequest("pull_request_id is required")
	}
	pr, err := s.prRepo.GetPR(ctx, prID)
	if err != nil {
		if errors.Is(err, repository.ErrPRNotFound) {
			return model.PullRequest{}, ErrNotFound("pull request not found")
		}
		return model.PullRequest{}, ErrInternal("failed to get pull request", err)
	}
	return pr, nil
}

// GetScanJob возвращает задачу вместе с пофайловыми результатами и итогом.
// Итог равен nil, пока задача не завершена.
func (s *PRService) GetScanJob(ctx context.Context, jobID string) (model.ScanJob, []model.ScanResult, *model.SecuritySummary, error) {
	if jobID == "" {
		return model.ScanJob{}, nil, nil, ErrBadRequest("job_id is required")
	}

	job, err := s.scanRepo.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return model.ScanJob{}, nil, nil, ErrNotFound("scan job not found")
		}
		return model.ScanJob{}, nil, nil, ErrInternal("failed to get scan job", err)
	}

	results, err := s.scanRepo.ListResultsByJob(ctx, jobID)
	if err != nil {
		return model.ScanJob{}, nil, nil, ErrInternal("failed to list scan results", err)
	}

	var summary *model.SecuritySummary
	if job.State == model.JobStateCompleted {
		sum, err := s.scanRepo.GetSummaryByJob(ctx, jobID)
		if err != nil {
			if !errors.Is(err, repository.ErrSummaryNotFound) {
				return model.ScanJob{}, nil, nil, ErrInternal("failed to get summary", err)
			}
		} else {
			summary = &sum
		}
	}

	return job, results, summary, nil
}

// GetLatestSummary возвращает итог последнего завершённого скана pull request'а
// или nil, если завершённых сканов ещё не было.
func (s *PRService) GetLatestSummary(ctx context.Context, prID string) (*model.SecuritySummary, error) {
	if prID == "" {
		return nil, ErrBadRequest("pull_request_id is required")
	}

	if _, err := s.prRepo.GetPR(ctx, prID); err != nil {
		if errors.Is(err, repository.ErrPRNotFound) {
			return nil, ErrNotFound("pull request not found")
		}
		return nil, ErrInternal("failed to get pull request", err)
	}

	sum, err := s.scanRepo.GetLatestSummaryByPR(ctx, prID)
	if err != nil {
		if errors.Is(err, repository.ErrSummaryNotFound) {
			return nil, nil
		}
		return nil, ErrInternal("failed to get latest summary", err)
	}
	return &sum, nil
}
