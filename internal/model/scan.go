package model

import "time"

// ScanType представляет тип скана pull request'а.
type ScanType string

const (
	// ScanTypeDiff — скан только изменённых файлов (base против head).
	ScanTypeDiff ScanType = "DIFF"
	// ScanTypeFull — полный скан всех файлов head-ветки.
	ScanTypeFull ScanType = "FULL"
	// ScanTypeTargeted — скан явно указанного подмножества файлов.
	ScanTypeTargeted ScanType = "TARGETED"
)

// JobState представляет состояние задачи сканирования.
// Переходы строго монотонны: PENDING -> RUNNING -> {COMPLETED, FAILED}.
type JobState string

const (
	JobStatePending   JobState = "PENDING"
	JobStateRunning   JobState = "RUNNING"
	JobStateCompleted JobState = "COMPLETED"
	JobStateFailed    JobState = "FAILED"
)

// ChangeType представляет тип изменения файла в диффе.
type ChangeType string

const (
	ChangeTypeAdded    ChangeType = "ADDED"
	ChangeTypeModified ChangeType = "MODIFIED"
	ChangeTypeDeleted  ChangeType = "DELETED"
)

// ScanJob описывает одну задачу сканирования pull request'а: снапшот коммитов base/head,
// состояние, ключ идемпотентности и временные метки. Мутируется только оркестратором.
type ScanJob struct {
	JobID          string     `json:"job_id"`
	PullRequestID  string     `json:"pull_request_id"`
	ScanType       ScanType   `json:"scan_type"`
	BaseSHA        string     `json:"base_sha"`
	HeadSHA        string     `json:"head_sha"`
	State          JobState   `json:"state"`
	ErrorMessage   *string    `json:"error_message,omitempty"`
	IdempotencyKey *string    `json:"-"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// DetectorMeta описывает метаданные прогона детектора по одному файлу.
type DetectorMeta struct {
	Detector     string `json:"detector"`
	DurationMs   int64  `json:"duration_ms"`
	BaseFindings int    `json:"base_findings"`
	HeadFindings int    `json:"head_findings"`
	BaseAttempts int    `json:"base_attempts"`
	HeadAttempts int    `json:"head_attempts"`
}

// ScanResult описывает результат сканирования одного файла внутри задачи:
// три непересекающихся множества находок (добавленные, исправленные, сохранившиеся).
// После завершения задачи не мутируется.
type ScanResult struct {
	ResultID     string          `json:"result_id"`
	JobID        string          `json:"job_id"`
	FilePath     string          `json:"file_path"`
	ChangeType   ChangeType      `json:"change_type"`
	Added        []Vulnerability `json:"added"`
	Fixed        []Vulnerability `json:"fixed"`
	Unchanged    []Vulnerability `json:"unchanged"`
	DetectorMeta DetectorMeta    `json:"detector_meta"`
	CreatedAt    *time.Time      `json:"created_at,omitempty"`
}

// Recommendation представляет рекомендацию по мержу.
type Recommendation string

const (
	RecommendationApprove Recommendation = "APPROVE"
	RecommendationReview  Recommendation = "REVIEW"
	RecommendationBlock   Recommendation = "BLOCK"
)

// SeverityCounts хранит количество находок по уровням критичности.
type SeverityCounts struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// Total возвращает суммарное количество находок по всем уровням.
func (c SeverityCounts) Total() int {
	return c.Critical + c.High + c.Medium + c.Low
}

// SecuritySummary описывает агрегированный итог завершённой задачи сканирования.
// Инвариант: существует тогда и только тогда, когда задача в состоянии COMPLETED.
type SecuritySummary struct {
	JobID          string         `json:"job_id"`
	PullRequestID  string         `json:"pull_request_id"`
	BeforeScore    int            `json:"before_score"`
	AfterScore     int            `json:"after_score"`
	Recommendation Recommendation `json:"recommendation"`
	AddedCounts    SeverityCounts `json:"added_counts"`
	FixedCounts    SeverityCounts `json:"fixed_counts"`
	CreatedAt      *time.Time     `json:"created_at,omitempty"`
}
