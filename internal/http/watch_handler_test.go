package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pr-security-service/internal/http/mocks"
	"pr-security-service/internal/model"
	"pr-security-service/internal/service"
)

func TestHandler_WatchCreate(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockBehavior   func(ws *mocks.WatchService)
		expectedStatus int
	}{
		{
			name: "Created",
			body: `{"repository_id": "acme/api", "user_id": "u1", "scan_on_sync": true}`,
			mockBehavior: func(ws *mocks.WatchService) {
				ws.On("CreateWatch", mock.Anything, mock.MatchedBy(func(w model.Watch) bool {
					return w.RepositoryID == "acme/api" && w.UserID == "u1" && w.IsActive && w.ScanOnSync
				})).Return(model.Watch{WatchID: "w1", RepositoryID: "acme/api", UserID: "u1"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Created: explicit is_active false",
			body: `{"repository_id": "acme/api", "user_id": "u1", "is_active": false}`,
			mockBehavior: func(ws *mocks.WatchService) {
				ws.On("CreateWatch", mock.Anything, mock.MatchedBy(func(w model.Watch) bool {
					return !w.IsActive
				})).Return(model.Watch{WatchID: "w1"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Bad Request: invalid JSON",
			body:           `{"repository_id": "broken`,
			mockBehavior:   func(ws *mocks.WatchService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Bad Request: missing user_id",
			body:           `{"repository_id": "acme/api"}`,
			mockBehavior:   func(ws *mocks.WatchService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Bad Request: repository without owner",
			body:           `{"repository_id": "api", "user_id": "u1"}`,
			mockBehavior:   func(ws *mocks.WatchService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Bad Request: notifications without email",
			body:           `{"repository_id": "acme/api", "user_id": "u1", "email_notifications": true}`,
			mockBehavior:   func(ws *mocks.WatchService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Conflict: duplicate watch",
			body: `{"repository_id": "acme/api", "user_id": "u1"}`,
			mockBehavior: func(ws *mocks.WatchService) {
				ws.On("CreateWatch", mock.Anything, mock.AnythingOfType("model.Watch")).
					Return(model.Watch{}, service.ErrConflict("WATCH_EXISTS", "watch for this repository already exists"))
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			watches := new(mocks.WatchService)
			tt.mockBehavior(watches)

			h := newTestHandler(new(mocks.ScanService), new(mocks.PRService), watches, new(mocks.NotificationService))

			req := httptest.NewRequest(http.MethodPost, "/watches/", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			h.Router().ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestHandler_WatchList(t *testing.T) {
	watches := new(mocks.WatchService)
	watches.On("ListWatches", mock.Anything, "u1").
		Return([]model.Watch{{WatchID: "w1"}, {WatchID: "w2"}}, nil)

	h := newTestHandler(new(mocks.ScanService), new(mocks.PRService), watches, new(mocks.NotificationService))

	req := httptest.NewRequest(http.MethodGet, "/watches/?user_id=u1", nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Watches []model.Watch `json:"watches"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Watches, 2)
}

func TestHandler_WatchDelete(t *testing.T) {
	tests := []struct {
		name           string
		watchID        string
		mockBehavior   func(ws *mocks.WatchService)
		expectedStatus int
	}{
		{
			name:    "No Content",
			watchID: "w1",
			mockBehavior: func(ws *mocks.WatchService) {
				ws.On("DeleteWatch", mock.Anything, "w1").Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:    "Not Found",
			watchID: "nope",
			mockBehavior: func(ws *mocks.WatchService) {
				ws.On("DeleteWatch", mock.Anything, "nope").
					Return(service.ErrNotFound("watch not found"))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			watches := new(mocks.WatchService)
			tt.mockBehavior(watches)

			h := newTestHandler(new(mocks.ScanService), new(mocks.PRService), watches, new(mocks.NotificationService))

			req := httptest.NewRequest(http.MethodDelete, "/watches/"+tt.watchID, nil)
			rec := httptest.NewRecorder()
			h.Router().ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestHandler_NotificationStats(t *testing.T) {
	notifications := new(mocks.NotificationService)
	notifications.On("Stats", mock.Anything).
		Return(model.NotificationStats{Pending: 2, Sent: 10, Failed: 1}, nil)

	h := newTestHandler(new(mocks.ScanService), new(mocks.PRService), new(mocks.WatchService), notifications)

	req := httptest.NewRequest(http.MethodGet, "/notifications/stats", nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.NotificationStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 10, resp.Sent)
}
