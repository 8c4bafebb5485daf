package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pr-security-service/internal/model"

	"github.com/google/uuid"
)

// NotificationRepository описывает контракт репозитория уведомлений.
type NotificationRepository interface {
	CreatePending(ctx context.Context, n model.Notification) (bool, error)
	ListDue(ctx context.Context, now time.Time, limit int) ([]model.Notification, error)
	MarkSent(ctx context.Context, notificationID string) error
	MarkRetry(ctx context.Context, notificationID string, nextAttemptAt time.Time, lastError string) error
	MarkFailed(ctx context.Context, notificationID string, lastError string) error
	Stats(ctx context.Context) (model.NotificationStats, error)
}

// MailTransport описывает контракт внешнего почтового транспорта.
type MailTransport interface {
	SendMail(ctx context.Context, recipient, subject, body string) error
}

// NotificationConfig задаёт политику доставки уведомлений.
type NotificationConfig struct {
	// BackoffBase — задержка перед первой повторной попыткой.
	BackoffBase time.Duration
	// BackoffCap — верхняя граница задержки между попытками.
	BackoffCap time.Duration
	// MaxAttempts — максимальное число попыток доставки, после которого
	// уведомление помечается FAILED окончательно.
	MaxAttempts int
	// PollInterval — период опроса таблицы уведомлений.
	PollInterval time.Duration
	// BatchSize — максимум уведомлений, обрабатываемых за один проход.
	BatchSize int
}

// DefaultNotificationConfig возвращает политику доставки по умолчанию:
// база 30 секунд, множитель 2, потолок 30 минут.
func DefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		BackoffBase:  30 * time.Second,
		BackoffCap:   30 * time.Minute,
		MaxAttempts:  8,
		PollInterval: 10 * time.Second,
		BatchSize:    50,
	}
}

// NotificationService — диспетчер уведомлений. Создаёт записи о доставке
// по событию завершения задачи и доставляет их с ретраями. Расписание ретраев
// хранится в БД (счётчик попыток и время следующей попытки), а не в таймерах
// процесса, поэтому перезапуск ничего не теряет.
type NotificationService struct {
	notifRepo NotificationRepository
	scanRepo  ScanRepository
	watchRepo WatchRepository
	prRepo    PRRepository
	mailer    MailTransport
	log       *slog.Logger
	cfg       NotificationConfig
}

// NewNotificationService создаёт диспетчер уведомлений.
func NewNotificationService(
	notifRepo NotificationRepository,
	scanRepo ScanRepository,
	watchRepo WatchRepository,
	prRepo PRRepository,
	mailer MailTransport,
	log *slog.Logger,
	cfg NotificationConfig,
) *NotificationService {
	return &NotificationService{
		notifRepo: notifRepo,
		scanRepo:  scanRepo,
		watchRepo: watchRepo,
		prRepo:    prRepo,
		mailer:    mailer,
		log:       log,
		cfg:       cfg,
	}
}

// JobCompleted обрабатывает событие завершения задачи сканирования: для каждой
// активной подписки на репозиторий PR с включёнными уведомлениями создаёт
// PENDING-запись о доставке. Подписки, разделяющие один адрес, дают одну запись;
// повторная доставка события идемпотентна — дубликат записи не появится.
func (s *NotificationService) JobCompleted(ctx context.Context, jobID string) error {
	watches, err := s.watchRepo.ListNotifiableByJob(ctx, jobID)
	if err != nil {
		return fmt.Errorf("list watches for job: %w", err)
	}

	seen := make(map[string]bool, len(watches))
	for _, watch := range watches {
		if seen[watch.NotificationEmail] {
			continue
		}
		seen[watch.NotificationEmail] = true

		created, err := s.notifRepo.CreatePending(ctx, model.Notification{
			NotificationID: uuid.NewString(),
			JobID:          jobID,
			Recipient:      watch.NotificationEmail,
			NextAttemptAt:  time.Now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("create notification for %s: %w", watch.NotificationEmail, err)
		}
		if created {
			s.log.Info("notification scheduled",
				slog.String("job_id", jobID),
				slog.String("recipient", watch.NotificationEmail),
			)
		}
	}
	return nil
}

// RunDispatcher запускает цикл доставки и блокируется до отмены контекста.
func (s *NotificationService) RunDispatcher(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.DispatchDue(ctx, time.Now().UTC()); err != nil && !errors.Is(err, context.Canceled) {
				s.log.Error("notification dispatch failed", slog.Any("err", err))
			}
		}
	}
}

// DispatchDue обрабатывает все уведомления, у которых наступило время попытки.
func (s *NotificationService) DispatchDue(ctx context.Context, now time.Time) error {
	due, err := s.notifRepo.ListDue(ctx, now, s.cfg.BatchSize)
	if err != nil {
		return fmt.Errorf("list due notifications: %w", err)
	}

	for _, n := range due {
		if err := s.deliver(ctx, n, now); err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			s.log.Error("notification delivery bookkeeping failed",
				slog.String("notification_id", n.NotificationID),
				slog.Any("err", err),
			)
		}
	}
	return nil
}

// deliver выполняет одну попытку доставки уведомления.
// Ошибка доставки по умолчанию временная: попытка перепланируется
// с экспоненциальной задержкой, пока не исчерпан лимит.
func (s *NotificationService) deliver(ctx context.Context, n model.Notification, now time.Time) error {
	subject, body, err := s.composeMail(ctx, n.JobID)
	if err != nil {
		return fmt.Errorf("compose mail: %w", err)
	}

	sendErr := s.mailer.SendMail(ctx, n.Recipient, subject, body)
	if sendErr == nil {
		if err := s.notifRepo.MarkSent(ctx, n.NotificationID); err != nil {
			return fmt.Errorf("mark sent: %w", err)
		}
		s.log.Info("notification sent",
			slog.String("notification_id", n.NotificationID),
			slog.Int("retry_count", n.RetryCount),
		)
		return nil
	}

	attemptsMade := n.RetryCount + 1
	if attemptsMade >= s.cfg.MaxAttempts {
		if err := s.notifRepo.MarkFailed(ctx, n.NotificationID, sendErr.Error()); err != nil {
			return fmt.Errorf("mark failed: %w", err)
		}
		s.log.Warn("notification permanently failed",
			slog.String("notification_id", n.NotificationID),
			slog.Int("attempts", attemptsMade),
			slog.Any("err", sendErr),
		)
		return nil
	}

	next := now.Add(s.backoffDelay(n.RetryCount))
	if err := s.notifRepo.MarkRetry(ctx, n.NotificationID, next, sendErr.Error()); err != nil {
		return fmt.Errorf("mark retry: %w", err)
	}
	s.log.Warn("notification delivery failed, retry scheduled",
		slog.String("notification_id", n.NotificationID),
		slog.Time("next_attempt_at", next),
		slog.Any("err", sendErr),
	)
	return nil
}

// backoffDelay считает задержку перед попыткой после retries неудач:
// base * 2^retries с потолком BackoffCap.
func (s *NotificationService) backoffDelay(retries int) time.Duration {
	delay := s.cfg.BackoffBase
	for i := 0; i < retries; i++ {
		delay *= 2
		if delay >= s.cfg.BackoffCap {
			return s.cfg.BackoffCap
		}
	}
	return delay
}

// composeMail собирает тему и текст письма по итогу задачи.
func (s *NotificationService) composeMail(ctx context.Context, jobID string) (string, string, error) {
	job, err := s.scanRepo.GetJob(ctx, jobID)
	if err != nil {
		return "", "", fmt.Errorf("get job: %w", err)
	}
	pr, err := s.prRepo.GetPR(ctx, job.PullRequestID)
	if err != nil {
		return "", "", fmt.Errorf("get pull request: %w", err)
	}
	summary, err := s.scanRepo.GetSummaryByJob(ctx, jobID)
	if err != nil {
		return "", "", fmt.Errorf("get summary: %w", err)
	}

	subject := fmt.Sprintf("[%s] Security scan for PR #%d: %s",
		pr.RepositoryID, pr.Number, summary.Recommendation)

	body := fmt.Sprintf(
		"Security scan completed for pull request #%d (%s)\n\n"+
			"Repository:     %s\n"+
			"Recommendation: %s\n"+
			"Score:          %d -> %d\n\n"+
			"New findings:   %d critical, %d high, %d medium, %d low\n"+
			"Fixed findings: %d critical, %d high, %d medium, %d low\n",
		pr.Number, pr.Title,
		pr.RepositoryID,
		summary.Recommendation,
		summary.BeforeScore, summary.AfterScore,
		summary.AddedCounts.Critical, summary.AddedCounts.High,
		summary.AddedCounts.Medium, summary.AddedCounts.Low,
		summary.FixedCounts.Critical, summary.FixedCounts.High,
		summary.FixedCounts.Medium, summary.FixedCounts.Low,
	)
	return subject, body, nil
}

// Stats возвращает количество уведомлений в разбивке по статусам.
func (s *NotificationService) Stats(ctx context.Context) (model.NotificationStats, error) {
	stats, err := s.notifRepo.Stats(ctx)
	if err != nil {
		return model.NotificationStats{}, ErrInternal("failed to get notification stats", err)
	}
	return stats, nil
}
