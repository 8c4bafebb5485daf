package http_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpapi "pr-security-service/internal/http"
	"pr-security-service/internal/http/mocks"
	"pr-security-service/internal/model"
	"pr-security-service/internal/service"
)

func newTestHandler(
	scans *mocks.ScanService,
	prs *mocks.PRService,
	watches *mocks.WatchService,
	notifications *mocks.NotificationService,
) *httpapi.Handler {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	return httpapi.NewHandler(scans, prs, watches, notifications, logger)
}

func TestHandler_StartScan(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockBehavior   func(scans *mocks.ScanService)
		expectedStatus int
		expectedJobID  string
	}{
		{
			name: "Created",
			body: `{"scan_type": "diff"}`,
			mockBehavior: func(scans *mocks.ScanService) {
				scans.On("StartScan", mock.Anything, "pr-1", model.ScanTypeDiff, "").
					Return(model.ScanJob{JobID: "job-1", State: model.JobStatePending}, true, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedJobID:  "job-1",
		},
		{
			name: "Conflict: scan already running",
			body: `{}`,
			mockBehavior: func(scans *mocks.ScanService) {
				scans.On("StartScan", mock.Anything, "pr-1", model.ScanTypeDiff, "").
					Return(model.ScanJob{JobID: "existing-job", State: model.JobStateRunning}, false, nil)
			},
			expectedStatus: http.StatusConflict,
			expectedJobID:  "existing-job",
		},
		{
			name: "Created: empty body defaults to diff",
			body: "",
			mockBehavior: func(scans *mocks.ScanService) {
				scans.On("StartScan", mock.Anything, "pr-1", model.ScanTypeDiff, "").
					Return(model.ScanJob{JobID: "job-2", State: model.JobStatePending}, true, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedJobID:  "job-2",
		},
		{
			name:           "Bad Request: unknown scan type",
			body:           `{"scan_type": "everything"}`,
			mockBehavior:   func(scans *mocks.ScanService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Not Found: unknown pull request",
			body: `{"scan_type": "full"}`,
			mockBehavior: func(scans *mocks.ScanService) {
				scans.On("StartScan", mock.Anything, "pr-1", model.ScanTypeFull, "").
					Return(model.ScanJob{}, false, service.ErrNotFound("pull request not found"))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scans := new(mocks.ScanService)
			tt.mockBehavior(scans)

			h := newTestHandler(scans, new(mocks.PRService), new(mocks.WatchService), new(mocks.NotificationService))

			req := httptest.NewRequest(http.MethodPost, "/pull-requests/pr-1/scan", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			h.Router().ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedJobID != "" {
				var resp struct {
					JobID string `json:"job_id"`
				}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedJobID, resp.JobID)
			}
		})
	}
}

func TestHandler_GetScan(t *testing.T) {
	prs := new(mocks.PRService)
	sum := model.SecuritySummary{JobID: "job-1", AfterScore: 83, Recommendation: model.RecommendationApprove}
	prs.On("GetScanJob", mock.Anything, "job-1").
		Return(model.ScanJob{JobID: "job-1", State: model.JobStateCompleted},
			[]model.ScanResult{{ResultID: "r1", FilePath: "main.go"}}, &sum, nil)

	h := newTestHandler(new(mocks.ScanService), prs, new(mocks.WatchService), new(mocks.NotificationService))

	req := httptest.NewRequest(http.MethodGet, "/pr-scans/job-1", nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Job     model.ScanJob          `json:"job"`
		Results []model.ScanResult     `json:"results"`
		Summary *model.SecuritySummary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.JobStateCompleted, resp.Job.State)
	assert.Len(t, resp.Results, 1)
	require.NotNil(t, resp.Summary)
	assert.Equal(t, 83, resp.Summary.AfterScore)
}

func TestHandler_SecuritySummary_NotFound(t *testing.T) {
	prs := new(mocks.PRService)
	prs.On("GetLatestSummary", mock.Anything, "nope").
		Return(nil, service.ErrNotFound("pull request not found"))

	h := newTestHandler(new(mocks.ScanService), prs, new(mocks.WatchService), new(mocks.NotificationService))

	req := httptest.NewRequest(http.MethodGet, "/pull-requests/nope/security-summary", nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestHandler_SyncPRs(t *testing.T) {
	prs := new(mocks.PRService)
	prs.On("SyncPullRequests", mock.Anything, "acme/api").Return(2, 3, nil)

	h := newTestHandler(new(mocks.ScanService), prs, new(mocks.WatchService), new(mocks.NotificationService))

	req := httptest.NewRequest(http.MethodPost, "/repositories/acme/api/sync-prs", nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		PRsAdded   int `json:"prs_added"`
		PRsUpdated int `json:"prs_updated"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.PRsAdded)
	assert.Equal(t, 3, resp.PRsUpdated)
}
