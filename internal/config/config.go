// Package config загружает конфигурацию сервиса из переменных окружения
// с префиксом PRSEC_ (например, PRSEC_DB_DSN).
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config содержит все настройки сервиса. Политики сопоставления находок
// и ретраев — параметры конфигурации, а не константы в коде.
type Config struct {
	HTTPAddr string
	DBDSN    string

	GitHubToken string

	DetectorURL         string
	DetectorModel       string
	DetectorTimeout     time.Duration
	DetectorAttempts    int
	DetectorBackoffBase time.Duration

	ScanWorkers   int
	ScanQueueSize int

	ReconcileLineTolerance int

	SchedulerInterval time.Duration

	NotifyBackoffBase  time.Duration
	NotifyBackoffCap   time.Duration
	NotifyMaxAttempts  int
	NotifyPollInterval time.Duration

	SMTPAddr     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string
}

// Load читает конфигурацию из окружения и проверяет обязательные параметры.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PRSEC")
	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DETECTOR_TIMEOUT", "60s")
	v.SetDefault("DETECTOR_ATTEMPTS", 3)
	v.SetDefault("DETECTOR_BACKOFF_BASE", "1s")
	v.SetDefault("SCAN_WORKERS", 4)
	v.SetDefault("SCAN_QUEUE_SIZE", 256)
	v.SetDefault("RECONCILE_LINE_TOLERANCE", 5)
	v.SetDefault("SCHEDULER_INTERVAL", "1m")
	v.SetDefault("NOTIFY_BACKOFF_BASE", "30s")
	v.SetDefault("NOTIFY_BACKOFF_CAP", "30m")
	v.SetDefault("NOTIFY_MAX_ATTEMPTS", 8)
	v.SetDefault("NOTIFY_POLL_INTERVAL", "10s")
	v.SetDefault("SMTP_ADDR", "localhost:25")
	v.SetDefault("SMTP_FROM", "pr-security@localhost")

	cfg := Config{
		HTTPAddr:               v.GetString("HTTP_ADDR"),
		DBDSN:                  v.GetString("DB_DSN"),
		GitHubToken:            v.GetString("GITHUB_TOKEN"),
		DetectorURL:            v.GetString("DETECTOR_URL"),
		DetectorModel:          v.GetString("DETECTOR_MODEL"),
		DetectorTimeout:        v.GetDuration("DETECTOR_TIMEOUT"),
		DetectorAttempts:       v.GetInt("DETECTOR_ATTEMPTS"),
		DetectorBackoffBase:    v.GetDuration("DETECTOR_BACKOFF_BASE"),
		ScanWorkers:            v.GetInt("SCAN_WORKERS"),
		ScanQueueSize:          v.GetInt("SCAN_QUEUE_SIZE"),
		ReconcileLineTolerance: v.GetInt("RECONCILE_LINE_TOLERANCE"),
		SchedulerInterval:      v.GetDuration("SCHEDULER_INTERVAL"),
		NotifyBackoffBase:      v.GetDuration("NOTIFY_BACKOFF_BASE"),
		NotifyBackoffCap:       v.GetDuration("NOTIFY_BACKOFF_CAP"),
		NotifyMaxAttempts:      v.GetInt("NOTIFY_MAX_ATTEMPTS"),
		NotifyPollInterval:     v.GetDuration("NOTIFY_POLL_INTERVAL"),
		SMTPAddr:               v.GetString("SMTP_ADDR"),
		SMTPFrom:               v.GetString("SMTP_FROM"),
		SMTPUsername:           v.GetString("SMTP_USERNAME"),
		SMTPPassword:           v.GetString("SMTP_PASSWORD"),
	}

	if cfg.DBDSN == "" {
		return Config{}, fmt.Errorf("PRSEC_DB_DSN is required")
	}
	if cfg.DetectorURL == "" {
		return Config{}, fmt.Errorf("PRSEC_DETECTOR_URL is required")
	}
	if cfg.ScanWorkers < 1 {
		return Config{}, fmt.Errorf("PRSEC_SCAN_WORKERS must be positive")
	}
	if cfg.DetectorAttempts < 1 {
		return Config{}, fmt.Errorf("PRSEC_DETECTOR_ATTEMPTS must be positive")
	}
	if cfg.NotifyMaxAttempts < 1 {
		return Config{}, fmt.Errorf("PRSEC_NOTIFY_MAX_ATTEMPTS must be positive")
	}

	return cfg, nil
}
