package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"pr-security-service/internal/model"
	"pr-security-service/internal/repository"

	"github.com/google/uuid"
)

// WatchRepository описывает контракт репозитория подписок и чекпоинтов.
type WatchRepository interface {
	CreateWatch(ctx context.Context, w model.Watch) (model.Watch, error)
	UpdateWatch(ctx context.Context, w model.Watch) (model.Watch, error)
	DeleteWatch(ctx context.Context, watchID string) error
	GetWatch(ctx context.Context, watchID string) (model.Watch, error)
	ListByUser(ctx context.Context, userID string) ([]model.Watch, error)
	ListActive(ctx context.Context) ([]model.Watch, error)
	ListActiveByRepository(ctx context.Context, repositoryID string) ([]model.Watch, error)
	ListNotifiableByJob(ctx context.Context, jobID string) ([]model.Watch, error)
	GetCheckpoint(ctx context.Context, watchID, prID string, trigger model.WatchTrigger) (string, error)
	UpsertCheckpoint(ctx context.Context, watchID, prID string, trigger model.WatchTrigger, commit string) error
}

// ScanStarter описывает контракт постановки задачи сканирования
// (реализуется оркестратором).
type ScanStarter interface {
	StartScan(ctx context.Context, prID string, scanType model.ScanType, idempotencyKey string) (model.ScanJob, bool, error)
}

// WatchService управляет подписками и решает, каким pull request'ам нужен новый скан.
// Периодический цикл и событийный вход (sync-prs) сходятся в одной идемпотентной
// функции evaluateTrigger, поэтому гарантия "не более одного скана на
// (PR, head-коммит, триггер)" живёт в одном месте.
type WatchService struct {
	watchRepo WatchRepository
	prRepo    PRRepository
	connector SourceConnector
	scans     ScanStarter
	log       *slog.Logger
	interval  time.Duration

	// Защита от наложения соседних тиков планировщика.
	// Корректность дедупликации на ней не держится: её обеспечивают
	// ключ идемпотентности и проверка активной задачи в StartScan.
	checking atomic.Bool
}

// NewWatchService создаёт сервис подписок с указанным интервалом планировщика.
func NewWatchService(
	watchRepo WatchRepository,
	prRepo PRRepository,
	connector SourceConnector,
	scans ScanStarter,
	log *slog.Logger,
	interval time.Duration,
) *WatchService {
	return &WatchService{
		watchRepo: watchRepo,
		prRepo:    prRepo,
		connector: connector,
		scans:     scans,
		log:       log,
		interval:  interval,
	}
}

// CreateWatch создаёт подписку после валидации настроек.
func (s *WatchService) CreateWatch(ctx context.Context, w model.Watch) (model.Watch, error) {
	if err := validateWatch(w); err != nil {
		return model.Watch{}, err
	}

	w.WatchID = uuid.NewString()
	created, err := s.watchRepo.CreateWatch(ctx, w)
	if err != nil {
		if errors.Is(err, repository.ErrWatchExists) {
			return model.Watch{}, ErrConflict("WATCH_EXISTS", "watch for this repository already exists")
		}
		return model.Watch{}, ErrInternal("failed to create watch", err)
	}
	return created, nil
}

// UpdateWatch обновляет настройки существующей подписки.
func (s *WatchService) UpdateWatch(ctx context.Context, w model.Watch) (model.Watch, error) {
	if w.WatchID == "" {
		return model.Watch{}, ErrBadRequest("watch_id is required")
	}

	current, err := s.watchRepo.GetWatch(ctx, w.WatchID)
	if err != nil {
		if errors.Is(err, repository.ErrWatchNotFound) {
			return model.Watch{}, ErrNotFound("watch not found")
		}
		return model.Watch{}, ErrInternal("failed to get watch", err)
	}

	// Репозиторий и владелец подписки не меняются
	w.RepositoryID = current.RepositoryID
	w.UserID = current.UserID
	if err := validateWatch(w); err != nil {
		return model.Watch{}, err
	}

	updated, err := s.watchRepo.UpdateWatch(ctx, w)
	if err != nil {
		if errors.Is(err, repository.ErrWatchNotFound) {
			return model.Watch{}, ErrNotFound("watch not found")
		}
		return model.Watch{}, ErrInternal("failed to update watch", err)
	}
	return updated, nil
}

// DeleteWatch удаляет подписку.
func (s *WatchService) DeleteWatch(ctx context.Context, watchID string) error {
	if watchID == "" {
		return ErrBadRequest("watch_id is required")
	}
	if err := s.watchRepo.DeleteWatch(ctx, watchID); err != nil {
		if errors.Is(err, repository.ErrWatchNotFound) {
			return ErrNotFound("watch not found")
		}
		return ErrInternal("failed to delete watch", err)
	}
	return nil
}

// ListWatches возвращает подписки пользователя.
func (s *WatchService) ListWatches(ctx context.Context, userID string) ([]model.Watch, error) {
	if userID == "" {
		return nil, ErrBadRequest("user_id is required")
	}
	watches, err := s.watchRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal("failed to list watches", err)
	}
	return watches, nil
}

// validateWatch проверяет согласованность настроек подписки.
func validateWatch(w model.Watch) error {
	if w.RepositoryID == "" {
		return ErrBadRequest("repository_id is required")
	}
	if w.UserID == "" {
		return ErrBadRequest("user_id is required")
	}
	if w.EmailNotifications {
		if w.NotificationEmail == "" {
			return ErrBadRequest("notification_email is required when email_notifications is enabled")
		}
		if !strings.Contains(w.NotificationEmail, "@") {
			return ErrBadRequest("notification_email is not a valid email address")
		}
	}
	return nil
}

// RunScheduler запускает периодический цикл проверки подписок
// и блокируется до отмены контекста.
func (s *WatchService) RunScheduler(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.CheckWatches(ctx); err != nil && !errors.Is(err, context.Canceled) {
				s.log.Error("watch check failed", slog.Any("err", err))
			}
		}
	}
}

// CheckWatches проходит по всем активным подпискам и ставит сканы
// сработавших триггеров. Наложившиеся запуски пропускаются.
func (s *WatchService) CheckWatches(ctx context.Context) error {
	if !s.checking.CompareAndSwap(false, true) {
		s.log.Debug("watch check already in progress, skipping")
		return nil
	}
	defer s.checking.Store(false)

	watches, err := s.watchRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list active watches: %w", err)
	}

	// Репозитории опрашиваются по одному разу, сколько бы подписок на них ни было
	byRepo := make(map[string][]model.Watch)
	for _, w := range watches {
		byRepo[w.RepositoryID] = append(byRepo[w.RepositoryID], w)
	}

	for repoID, repoWatches := range byRepo {
		if err := s.checkRepository(ctx, repoID, repoWatches); err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			s.log.Error("repository check failed",
				slog.String("repository_id", repoID),
				slog.Any("err", err),
			)
		}
	}
	return nil
}

// CheckRepository проверяет подписки одного репозитория. Событийный вход:
// вызывается после синхронизации PR, минуя интервал планировщика.
func (s *WatchService) CheckRepository(ctx context.Context, repositoryID string) error {
	watches, err := s.watchRepo.ListActiveByRepository(ctx, repositoryID)
	if err != nil {
		return fmt.Errorf("list watches for repository: %w", err)
	}
	if len(watches) == 0 {
		return nil
	}
	return s.checkRepository(ctx, repositoryID, watches)
}

// checkRepository синхронизирует PR репозитория и прогоняет все триггеры всех подписок.
func (s *WatchService) checkRepository(ctx context.Context, repositoryID string, watches []model.Watch) error {
	remote, err := s.connector.ListPullRequests(ctx, repositoryID)
	if err != nil {
		return fmt.Errorf("list pull requests: %w", err)
	}

	prs := make([]model.PullRequest, 0, len(remote))
	for _, pr := range remote {
		pr.PullRequestID = uuid.NewString()
		stored, _, err := s.prRepo.UpsertPR(ctx, pr)
		if err != nil {
			return fmt.Errorf("upsert pull request #%d: %w", pr.Number, err)
		}
		prs = append(prs, stored)
	}

	triggers := []model.WatchTrigger{model.TriggerOnOpen, model.TriggerOnSync, model.TriggerOnMerge}
	for _, w := range watches {
		for _, pr := range prs {
			for _, trigger := range triggers {
				if !w.TriggerEnabled(trigger) {
					continue
				}
				if err := s.evaluateTrigger(ctx, w, pr, trigger); err != nil {
					if errors.Is(err, context.Canceled) {
						return err
					}
					s.log.Error("trigger evaluation failed",
						slog.String("watch_id", w.WatchID),
						slog.String("pull_request_id", pr.PullRequestID),
						slog.String("trigger", string(trigger)),
						slog.Any("err", err),
					)
				}
			}
		}
	}
	return nil
}

// evaluateTrigger решает, нужен ли новый скан для пары (PR, триггер), и ставит его.
// Чекпоинт сдвигается только после успешной постановки задачи на текущий head:
// упади процесс между проверкой и постановкой — или верни дедупликация задачу
// на старый коммит — триггер сработает снова на следующем проходе.
func (s *WatchService) evaluateTrigger(ctx context.Context, w model.Watch, pr model.PullRequest, trigger model.WatchTrigger) error {
	lastCommit, err := s.watchRepo.GetCheckpoint(ctx, w.WatchID, pr.PullRequestID, trigger)
	if err != nil {
		return fmt.Errorf("get checkpoint: %w", err)
	}

	if !triggerFires(pr, trigger, lastCommit) {
		return nil
	}

	key := fmt.Sprintf("%s:%s:%s", pr.PullRequestID, pr.HeadSHA, trigger)
	job, created, err := s.scans.StartScan(ctx, pr.PullRequestID, model.ScanTypeDiff, key)
	if err != nil {
		return fmt.Errorf("start scan: %w", err)
	}

	if created {
		s.log.Info("scheduled scan for trigger",
			slog.String("watch_id", w.WatchID),
			slog.String("pull_request_id", pr.PullRequestID),
			slog.String("trigger", string(trigger)),
			slog.String("job_id", job.JobID),
		)
	} else if job.HeadSHA != pr.HeadSHA {
		// Дедупликация вернула активную задачу на более старый head-коммит.
		// Чекпоинт не сдвигается: после завершения этой задачи триггер
		// сработает снова и текущий коммит будет просканирован.
		return nil
	}

	return s.watchRepo.UpsertCheckpoint(ctx, w.WatchID, pr.PullRequestID, trigger, pr.HeadSHA)
}

// triggerFires сообщает, сработал ли триггер для текущего состояния PR:
// on_open — впервые увиденный открытый PR; on_sync — сдвинувшийся head открытого PR;
// on_merge — ещё не проверенный после мержа PR.
func triggerFires(pr model.PullRequest, trigger model.WatchTrigger, lastCommit string) bool {
	switch trigger {
	case model.TriggerOnOpen:
		return pr.Status == model.StatusOpen && lastCommit == ""
	case model.TriggerOnSync:
		return pr.Status == model.StatusOpen && lastCommit != pr.HeadSHA
	case model.TriggerOnMerge:
		return pr.Status == model.StatusMerged && lastCommit != pr.HeadSHA
	}
	return false
}
