// Package detector реализует клиент внешнего AI-детектора уязвимостей.
// Контракт детектора: по тексту файла и его имени вернуть список находок;
// точность — ответственность самого детектора.
package detector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pr-security-service/internal/model"
)

// Error описывает ошибку детектора с классификацией временная/постоянная.
// Сетевые сбои и 5xx/429 — временные (ретраятся оркестратором),
// некорректный ответ или 4xx — постоянные.
type Error struct {
	Op        string
	Err       error
	Retryable bool
}

func (e *Error) Error() string {
	return fmt.Sprintf("detector %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Transient сообщает, временная ли это ошибка.
func (e *Error) Transient() bool { return e.Retryable }

// Client реализует service.VulnerabilityDetector поверх HTTP API детектора.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewClient создаёт клиент детектора с указанным адресом API и моделью.
func NewClient(baseURL, detectorModel string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		model:      detectorModel,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name возвращает идентификатор детектора для метаданных результата.
func (c *Client) Name() string {
	if c.model == "" {
		return "http-detector"
	}
	return "http-detector/" + c.model
}

type detectRequest struct {
	Filename string `json:"filename"`
	Code     string `json:"code"`
	Model    string `json:"model,omitempty"`
}

type detectResponse struct {
	Findings []finding `json:"findings"`
}

type finding struct {
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartLine   int    `json:"start_line"`
	EndLine     int    `json:"end_line"`
}

// Detect отправляет файл детектору и возвращает найденные уязвимости.
func (c *Client) Detect(ctx context.Context, code, filename string) ([]model.Vulnerability, error) {
	payload, err := json.Marshal(detectRequest{Filename: filename, Code: code, Model: c.model})
	if err != nil {
		return nil, &Error{Op: "marshal request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/detect", bytes.NewReader(payload))
	if err != nil {
		return nil, &Error{Op: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Op: "send request", Err: err, Retryable: true}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, &Error{
			Op:        "send request",
			Err:       fmt.Errorf("unexpected status %d", resp.StatusCode),
			Retryable: true,
		}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{
			Op:  "send request",
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var body detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &Error{Op: "decode response", Err: err}
	}

	vulns := make([]model.Vulnerability, 0, len(body.Findings))
	for i, f := range body.Findings {
		v, err := toVulnerability(f)
		if err != nil {
			return nil, &Error{Op: "validate response", Err: fmt.Errorf("finding %d: %w", i, err)}
		}
		vulns = append(vulns, v)
	}
	return vulns, nil
}

// toVulnerability валидирует находку детектора и переводит её в доменную модель.
func toVulnerability(f finding) (model.Vulnerability, error) {
	if f.Category == "" {
		return model.Vulnerability{}, fmt.Errorf("category is empty")
	}
	sev := model.Severity(f.Severity)
	if model.SeverityRank(sev) == 0 {
		return model.Vulnerability{}, fmt.Errorf("unknown severity %q", f.Severity)
	}
	start, end := f.StartLine, f.EndLine
	if start <= 0 {
		start = 1
	}
	if end < start {
		end = start
	}
	return model.Vulnerability{
		Category:    f.Category,
		Severity:    sev,
		Title:       f.Title,
		Description: f.Description,
		StartLine:   start,
		EndLine:     end,
	}, nil
}
