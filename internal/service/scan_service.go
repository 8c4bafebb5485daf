package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pr-security-service/internal/model"
	"pr-security-service/internal/repository"
	"pr-security-service/internal/scan"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// TransactionManager описывает интерфейс для управления транзакциями (чтобы можно было мокать).
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// PRRepository описывает контракт репозитория pull request'ов для бизнес-слоя.
type PRRepository interface {
	UpsertPR(ctx context.Context, pr model.PullRequest) (model.PullRequest, bool, error)
	GetPR(ctx context.Context, prID string) (model.PullRequest, error)
	ListByRepository(ctx context.Context, repositoryID string) ([]model.PullRequest, error)
}

// ScanRepository описывает контракт репозитория задач сканирования.
type ScanRepository interface {
	CreateJob(ctx context.Context, job model.ScanJob) (model.ScanJob, error)
	GetJob(ctx context.Context, jobID string) (model.ScanJob, error)
	GetActiveJobByPR(ctx context.Context, prID string) (model.ScanJob, error)
	GetJobByIdempotencyKey(ctx context.Context, key string) (model.ScanJob, error)
	ClaimJob(ctx context.Context, jobID string) (bool, error)
	CompleteJob(ctx context.Context, jobID string) error
	FailJob(ctx context.Context, jobID, message string) error
	ResetInterruptedJobs(ctx context.Context) ([]string, error)
	InsertResult(ctx context.Context, res model.ScanResult) error
	ListResultsByJob(ctx context.Context, jobID string) ([]model.ScanResult, error)
	InsertSummary(ctx context.Context, s model.SecuritySummary) error
	GetSummaryByJob(ctx context.Context, jobID string) (model.SecuritySummary, error)
	GetLatestSummaryByPR(ctx context.Context, prID string) (model.SecuritySummary, error)
}

// FileDiff описывает один изменённый файл диффа: тип изменения и содержимое
// base- и head-версий (пустое для отсутствующей стороны).
type FileDiff struct {
	Path        string
	ChangeType  model.ChangeType
	BaseContent string
	HeadContent string
}

// SourceConnector описывает контракт внешней платформы контроля версий.
type SourceConnector interface {
	ListPullRequests(ctx context.Context, repositoryID string) ([]model.PullRequest, error)
	FetchDiff(ctx context.Context, repositoryID string, number int, baseSHA, headSHA string) ([]FileDiff, error)
}

// VulnerabilityDetector описывает контракт внешнего детектора уязвимостей:
// по тексту файла и его имени возвращает список находок.
type VulnerabilityDetector interface {
	Detect(ctx context.Context, code, filename string) ([]model.Vulnerability, error)
	Name() string
}

// JobCompletionSink получает событие о завершении задачи сканирования.
// Реализуется диспетчером уведомлений.
type JobCompletionSink interface {
	JobCompleted(ctx context.Context, jobID string) error
}

// ScanConfig задаёт параметры оркестратора: размер пула воркеров,
// политику ретраев детектора и параметры сопоставления/скоринга.
type ScanConfig struct {
	Workers             int
	QueueSize           int
	DetectorAttempts    int
	DetectorBackoffBase time.Duration
	Reconcile           scan.ReconcileConfig
	Weights             scan.Weights
}

// DefaultScanConfig возвращает параметры оркестратора по умолчанию.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		Workers:             4,
		QueueSize:           256,
		DetectorAttempts:    3,
		DetectorBackoffBase: time.Second,
		Reconcile:           scan.DefaultReconcileConfig(),
		Weights:             scan.DefaultWeights(),
	}
}

// ScanService — оркестратор задач сканирования. Ведёт жизненный цикл задачи
// PENDING -> RUNNING -> {COMPLETED, FAILED}, вызывает внешний детектор по каждому
// файлу диффа, сопоставляет находки и сохраняет результаты и итог.
type ScanService struct {
	scanRepo  ScanRepository
	prRepo    PRRepository
	txManager TransactionManager
	connector SourceConnector
	detector  VulnerabilityDetector
	sink      JobCompletionSink
	log       *slog.Logger
	cfg       ScanConfig
	queue     chan string
}

// NewScanService создаёт оркестратор сканирования.
func NewScanService(
	scanRepo ScanRepository,
	prRepo PRRepository,
	txManager TransactionManager,
	connector SourceConnector,
	detector VulnerabilityDetector,
	sink JobCompletionSink,
	log *slog.Logger,
	cfg ScanConfig,
) *ScanService {
	return &ScanService{
		scanRepo:  scanRepo,
		prRepo:    prRepo,
		txManager: txManager,
		connector: connector,
		detector:  detector,
		sink:      sink,
		log:       log,
		cfg:       cfg,
		queue:     make(chan string, cfg.QueueSize),
	}
}

// StartScan создаёт задачу сканирования pull request'а и ставит её в очередь воркеров.
//
// Тип скана фиксируется на задаче. FULL и TARGETED пока выполняются по той же
// схеме, что и DIFF: детектор прогоняется по файлам, изменённым между base- и
// head-коммитами задачи.
//
// Если у PR уже есть активная (PENDING/RUNNING) задача, новая не создаётся —
// возвращается существующая с признаком created=false. То же относится к повтору
// ключа идемпотентности. Проверка и вставка выполняются в одной транзакции,
// а частичный уникальный индекс по активным задачам закрывает гонку двух
// одновременных вызовов: проигравший видит задачу победителя.
func (s *ScanService) StartScan(ctx context.Context, prID string, scanType model.ScanType, idempotencyKey string) (model.ScanJob, bool, error) {
	if prID == "" {
		return model.ScanJob{}, false, ErrBadRequest("pull_request_id is required")
	}
	switch scanType {
	case model.ScanTypeDiff, model.ScanTypeFull, model.ScanTypeTargeted:
	default:
		return model.ScanJob{}, false, ErrBadRequest("scan_type must be one of DIFF, FULL, TARGETED")
	}

	pr, err := s.prRepo.GetPR(ctx, prID)
	if err != nil {
		if errors.Is(err, repository.ErrPRNotFound) {
			return model.ScanJob{}, false, ErrNotFound("pull request not found")
		}
		return model.ScanJob{}, false, ErrInternal("failed to get pull request", err)
	}

	if idempotencyKey != "" {
		existing, err := s.scanRepo.GetJobByIdempotencyKey(ctx, idempotencyKey)
		if err == nil {
			return existing, false, nil
		}
		if !errors.Is(err, repository.ErrJobNotFound) {
			return model.ScanJob{}, false, ErrInternal("failed to check idempotency key", err)
		}
	}

	var job model.ScanJob
	created := false

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.scanRepo.GetActiveJobByPR(ctx, prID)
		if err == nil {
			job = existing
			return nil
		}
		if !errors.Is(err, repository.ErrJobNotFound) {
			return err
		}

		newJob := model.ScanJob{
			JobID:         uuid.NewString(),
			PullRequestID: prID,
			ScanType:      scanType,
			BaseSHA:       pr.BaseSHA,
			HeadSHA:       pr.HeadSHA,
		}
		if idempotencyKey != "" {
			newJob.IdempotencyKey = &idempotencyKey
		}

		job, err = s.scanRepo.CreateJob(ctx, newJob)
		if err != nil {
			return err
		}
		created = true
		return nil
	})

	if err != nil {
		// Проигравший гонку вставки возвращает задачу победителя
		if errors.Is(err, repository.ErrActiveJobExists) {
			existing, getErr := s.scanRepo.GetActiveJobByPR(ctx, prID)
			if getErr == nil {
				return existing, false, nil
			}
			return model.ScanJob{}, false, ErrInternal("failed to get active job after conflict", getErr)
		}
		if errors.Is(err, repository.ErrDuplicateKey) {
			existing, getErr := s.scanRepo.GetJobByIdempotencyKey(ctx, idempotencyKey)
			if getErr == nil {
				return existing, false, nil
			}
			return model.ScanJob{}, false, ErrInternal("failed to get job after key conflict", getErr)
		}
		return model.ScanJob{}, false, ErrInternal("failed to create scan job", err)
	}

	if created {
		if err := s.enqueue(ctx, job.JobID); err != nil {
			return model.ScanJob{}, false, ErrInternal("failed to enqueue scan job", err)
		}
	}

	return job, created, nil
}

// enqueue ставит задачу в очередь воркеров.
func (s *ScanService) enqueue(ctx context.Context, jobID string) error {
	select {
	case s.queue <- jobID:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Recover возвращает в очередь задачи, оставшиеся в PENDING/RUNNING после
// перезапуска процесса. Частичные результаты прерванных задач очищаются,
// чтобы повторный прогон начался с чистого листа. Вызывается один раз при
// старте, после запуска Run: воркеры разбирают очередь по мере постановки,
// и бэклог больше её размера не блокирует восстановление.
func (s *ScanService) Recover(ctx context.Context) error {
	jobIDs, err := s.scanRepo.ResetInterruptedJobs(ctx)
	if err != nil {
		return fmt.Errorf("reset interrupted jobs: %w", err)
	}
	for _, id := range jobIDs {
		if err := s.enqueue(ctx, id); err != nil {
			return err
		}
		s.log.Info("requeued interrupted scan job", slog.String("job_id", id))
	}
	return nil
}

// Run запускает пул воркеров и блокируется до отмены контекста.
func (s *ScanService) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < s.cfg.Workers; i++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case jobID := <-s.queue:
					s.runJob(ctx, jobID)
				}
			}
		})
	}
	return g.Wait()
}

// runJob выполняет одну задачу сканирования от начала до конца.
func (s *ScanService) runJob(ctx context.Context, jobID string) {
	log := s.log.With(slog.String("job_id", jobID))

	claimed, err := s.scanRepo.ClaimJob(ctx, jobID)
	if err != nil {
		log.Error("failed to claim job", slog.Any("err", err))
		return
	}
	if !claimed {
		// Задача уже выполняется или завершена другим воркером
		return
	}

	job, err := s.scanRepo.GetJob(ctx, jobID)
	if err != nil {
		log.Error("failed to load job", slog.Any("err", err))
		return
	}

	pr, err := s.prRepo.GetPR(ctx, job.PullRequestID)
	if err != nil {
		s.failJob(ctx, jobID, fmt.Sprintf("pull request lookup failed: %v", err))
		return
	}

	files, err := s.connector.FetchDiff(ctx, pr.RepositoryID, pr.Number, job.BaseSHA, job.HeadSHA)
	if err != nil {
		s.failJob(ctx, jobID, fmt.Sprintf("diff fetch failed: %v", err))
		return
	}

	results := make([]model.ScanResult, 0, len(files))
	skipped := 0
	for _, f := range files {
		res, err := s.scanFile(ctx, job, f)
		if err != nil {
			// Файл пропускается, задача продолжает жить: постоянная ошибка
			// детектора по одному файлу не должна хоронить весь скан
			skipped++
			log.Warn("file skipped after detector failure",
				slog.String("file", f.Path),
				slog.Any("err", err),
			)
			continue
		}
		if err := s.scanRepo.InsertResult(ctx, res); err != nil {
			s.failJob(ctx, jobID, fmt.Sprintf("persist result for %s failed: %v", f.Path, err))
			return
		}
		results = append(results, res)
	}

	if len(files) > 0 && len(results) == 0 {
		s.failJob(ctx, jobID, "no files could be scanned")
		return
	}

	summary := scan.BuildSummary(job.JobID, job.PullRequestID, results, s.cfg.Weights)

	// Итог и переход в COMPLETED пишутся атомарно: итог существует
	// тогда и только тогда, когда задача завершена
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.scanRepo.InsertSummary(ctx, summary); err != nil {
			return err
		}
		return s.scanRepo.CompleteJob(ctx, jobID)
	})
	if err != nil {
		s.failJob(ctx, jobID, fmt.Sprintf("persist summary failed: %v", err))
		return
	}

	log.Info("scan job completed",
		slog.Int("files_scanned", len(results)),
		slog.Int("files_skipped", skipped),
		slog.Int("after_score", summary.AfterScore),
		slog.String("recommendation", string(summary.Recommendation)),
	)

	if err := s.sink.JobCompleted(ctx, jobID); err != nil {
		log.Error("completion sink failed", slog.Any("err", err))
	}
}

// failJob переводит задачу в FAILED и логирует невозможность перехода.
func (s *ScanService) failJob(ctx context.Context, jobID, message string) {
	if err := s.scanRepo.FailJob(ctx, jobID, message); err != nil {
		s.log.Error("failed to mark job failed",
			slog.String("job_id", jobID),
			slog.Any("err", err),
		)
	}
	s.log.Warn("scan job failed", slog.String("job_id", jobID), slog.String("reason", message))
}

// scanFile сканирует один файл диффа и раскладывает находки
// на добавленные, исправленные и сохранившиеся.
func (s *ScanService) scanFile(ctx context.Context, job model.ScanJob, f FileDiff) (model.ScanResult, error) {
	started := time.Now()
	meta := model.DetectorMeta{Detector: s.detector.Name()}

	res := model.ScanResult{
		ResultID:   uuid.NewString(),
		JobID:      job.JobID,
		FilePath:   f.Path,
		ChangeType: f.ChangeType,
		Added:      make([]model.Vulnerability, 0),
		Fixed:      make([]model.Vulnerability, 0),
		Unchanged:  make([]model.Vulnerability, 0),
	}

	switch f.ChangeType {
	case model.ChangeTypeAdded:
		head, attempts, err := s.detectWithRetry(ctx, f.HeadContent, f.Path)
		meta.HeadAttempts = attempts
		if err != nil {
			return model.ScanResult{}, err
		}
		res.Added = head
		meta.HeadFindings = len(head)

	case model.ChangeTypeDeleted:
		base, attempts, err := s.detectWithRetry(ctx, f.BaseContent, f.Path)
		meta.BaseAttempts = attempts
		if err != nil {
			return model.ScanResult{}, err
		}
		res.Fixed = base
		meta.BaseFindings = len(base)

	case model.ChangeTypeModified:
		base, baseAttempts, err := s.detectWithRetry(ctx, f.BaseContent, f.Path)
		meta.BaseAttempts = baseAttempts
		if err != nil {
			return model.ScanResult{}, err
		}
		head, headAttempts, err := s.detectWithRetry(ctx, f.HeadContent, f.Path)
		meta.HeadAttempts = headAttempts
		if err != nil {
			return model.ScanResult{}, err
		}
		meta.BaseFindings = len(base)
		meta.HeadFindings = len(head)

		rec := scan.Reconcile(base, head, s.cfg.Reconcile)
		res.Added = rec.Added
		res.Fixed = rec.Fixed
		res.Unchanged = rec.Unchanged

	default:
		return model.ScanResult{}, fmt.Errorf("unknown change type %q for %s", f.ChangeType, f.Path)
	}

	meta.DurationMs = time.Since(started).Milliseconds()
	res.DetectorMeta = meta
	return res, nil
}

// detectWithRetry вызывает детектор с ретраями временных ошибок
// (экспоненциальная задержка, ограниченное число попыток).
// Постоянные ошибки не ретраятся. Возвращает находки и число сделанных попыток.
func (s *ScanService) detectWithRetry(ctx context.Context, code, filename string) ([]model.Vulnerability, int, error) {
	var vulns []model.Vulnerability
	attempts := 0

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = s.cfg.DetectorBackoffBase
	expBackoff.MaxElapsedTime = 0

	operation := func() error {
		attempts++
		found, err := s.detector.Detect(ctx, code, filename)
		if err != nil {
			if !IsTransient(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		vulns = found
		return nil
	}

	err := backoff.Retry(operation, backoff.WithContext(
		backoff.WithMaxRetries(expBackoff, uint64(s.cfg.DetectorAttempts-1)), ctx))
	if err != nil {
		return nil, attempts, fmt.Errorf("detector failed for %s: %w", filename, err)
	}
	return vulns, attempts, nil
}
