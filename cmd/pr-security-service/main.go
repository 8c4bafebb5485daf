// Package main запускает HTTP-сервис сканирования безопасности pull request'ов
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pr-security-service/internal/config"
	"pr-security-service/internal/connector"
	"pr-security-service/internal/detector"
	httpapi "pr-security-service/internal/http"
	"pr-security-service/internal/mailer"
	"pr-security-service/internal/repository"
	"pr-security-service/internal/scan"
	"pr-security-service/internal/service"
)

func main() {
	// Контекст для корректного завершения фоновых циклов
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализация логгера (JSON)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Чтение конфигурации из ENV
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Подключение к БД
	db, err := repository.NewPostgres(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatalf("failed to init postgres: %v", err)
	}
	defer db.Pool.Close()

	// 1. Инициализация репозиториев
	prRepo := repository.NewPRRepo(db)
	scanRepo := repository.NewScanRepo(db)
	watchRepo := repository.NewWatchRepo(db)
	notifRepo := repository.NewNotificationRepo(db)

	// 2. Инициализация Менеджера Транзакций
	txManager := repository.NewTransactionManager(db)

	// 3. Инициализация внешних адаптеров
	github := connector.NewGitHub(ctx, cfg.GitHubToken)
	detectorClient := detector.NewClient(cfg.DetectorURL, cfg.DetectorModel, cfg.DetectorTimeout)
	smtpMailer := mailer.NewSMTP(cfg.SMTPAddr, cfg.SMTPFrom, cfg.SMTPUsername, cfg.SMTPPassword)

	// 4. Инициализация сервисов
	notifCfg := service.DefaultNotificationConfig()
	notifCfg.BackoffBase = cfg.NotifyBackoffBase
	notifCfg.BackoffCap = cfg.NotifyBackoffCap
	notifCfg.MaxAttempts = cfg.NotifyMaxAttempts
	notifCfg.PollInterval = cfg.NotifyPollInterval
	notifService := service.NewNotificationService(notifRepo, scanRepo, watchRepo, prRepo, smtpMailer, logger, notifCfg)

	scanCfg := service.DefaultScanConfig()
	scanCfg.Workers = cfg.ScanWorkers
	scanCfg.QueueSize = cfg.ScanQueueSize
	scanCfg.DetectorAttempts = cfg.DetectorAttempts
	scanCfg.DetectorBackoffBase = cfg.DetectorBackoffBase
	scanCfg.Reconcile = scan.DefaultReconcileConfig()
	scanCfg.Reconcile.LineTolerance = cfg.ReconcileLineTolerance
	scanService := service.NewScanService(scanRepo, prRepo, txManager, github, detectorClient, notifService, logger, scanCfg)

	watchService := service.NewWatchService(watchRepo, prRepo, github, scanService, logger, cfg.SchedulerInterval)
	prService := service.NewPRService(prRepo, scanRepo, github, watchService, logger)

	// 5. Запуск фоновых циклов: воркеры сканирования, планировщик подписок,
	// диспетчер уведомлений
	go func() {
		if err := scanService.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("scan workers stopped", slog.Any("err", err))
			cancel()
		}
	}()

	// Возврат прерванных задач в очередь. Воркеры уже запущены и разбирают
	// очередь, поэтому бэклог больше её размера не блокирует старт
	if err := scanService.Recover(ctx); err != nil {
		log.Fatalf("failed to recover interrupted jobs: %v", err)
	}
	go func() {
		if err := watchService.RunScheduler(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("watch scheduler stopped", slog.Any("err", err))
		}
	}()
	go func() {
		if err := notifService.RunDispatcher(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("notification dispatcher stopped", slog.Any("err", err))
		}
	}()

	// 6. Инициализация HTTP-обработчика
	handler := httpapi.NewHandler(scanService, prService, watchService, notifService, logger)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler.Router(),
	}

	// Запуск сервера в горутине
	go func() {
		logger.Info("starting http server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("err", err))
			cancel()
		}
	}()

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
	case <-ctx.Done():
	}
	logger.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("server shutdown error", slog.Any("err", err))
	}

	cancel()
	logger.Info("server stopped")
}
