package service_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pr-security-service/internal/model"
	"pr-security-service/internal/repository"
	"pr-security-service/internal/service"
	"pr-security-service/internal/service/mocks"
)

func newWatchService(
	watchRepo *mocks.WatchRepository,
	prRepo *mocks.PRRepository,
	connector *mocks.SourceConnector,
	scans *mocks.ScanStarter,
) *service.WatchService {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	return service.NewWatchService(watchRepo, prRepo, connector, scans, logger, time.Minute)
}

func TestWatchService_CreateWatch(t *testing.T) {
	tests := []struct {
		name        string
		input       model.Watch
		setupMocks  func(watchRepo *mocks.WatchRepository)
		wantErrCode string
	}{
		{
			name: "Success",
			input: model.Watch{
				RepositoryID:       "acme/api",
				UserID:             "u1",
				IsActive:           true,
				ScanOnSync:         true,
				EmailNotifications: true,
				NotificationEmail:  "dev@acme.io",
			},
			setupMocks: func(watchRepo *mocks.WatchRepository) {
				watchRepo.On("CreateWatch", mock.Anything, mock.AnythingOfType("model.Watch")).
					Return(func(ctx context.Context, w model.Watch) model.Watch {
						return w
					}, nil)
			},
		},
		{
			name: "Fail: notifications enabled without email",
			input: model.Watch{
				RepositoryID:       "acme/api",
				UserID:             "u1",
				EmailNotifications: true,
			},
			setupMocks:  func(watchRepo *mocks.WatchRepository) {},
			wantErrCode: "BAD_REQUEST",
		},
		{
			name: "Fail: malformed email",
			input: model.Watch{
				RepositoryID:       "acme/api",
				UserID:             "u1",
				EmailNotifications: true,
				NotificationEmail:  "not-an-email",
			},
			setupMocks:  func(watchRepo *mocks.WatchRepository) {},
			wantErrCode: "BAD_REQUEST",
		},
		{
			name: "Fail: watch already exists",
			input: model.Watch{
				RepositoryID: "acme/api",
				UserID:       "u1",
			},
			setupMocks: func(watchRepo *mocks.WatchRepository) {
				watchRepo.On("CreateWatch", mock.Anything, mock.AnythingOfType("model.Watch")).
					Return(model.Watch{}, repository.ErrWatchExists)
			},
			wantErrCode: "WATCH_EXISTS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			watchRepo := new(mocks.WatchRepository)
			tt.setupMocks(watchRepo)

			svc := newWatchService(watchRepo, new(mocks.PRRepository), new(mocks.SourceConnector), new(mocks.ScanStarter))

			created, err := svc.CreateWatch(context.Background(), tt.input)

			if tt.wantErrCode != "" {
				require.Error(t, err)
				var appErr *service.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantErrCode, appErr.Code)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, created.WatchID)
			assert.Equal(t, tt.input.RepositoryID, created.RepositoryID)
		})
	}
}

func TestWatchService_CheckWatches_UnchangedHeadDoesNotRescan(t *testing.T) {
	watchRepo := new(mocks.WatchRepository)
	prRepo := new(mocks.PRRepository)
	connector := new(mocks.SourceConnector)
	scans := new(mocks.ScanStarter)

	watch := model.Watch{WatchID: "w1", RepositoryID: "acme/api", UserID: "u1", IsActive: true, ScanOnSync: true}
	remote := model.PullRequest{RepositoryID: "acme/api", Number: 7, HeadSHA: "sha-1", Status: model.StatusOpen}
	stored := remote
	stored.PullRequestID = "pr-1"

	watchRepo.On("ListActive", mock.Anything).Return([]model.Watch{watch}, nil)
	connector.On("ListPullRequests", mock.Anything, "acme/api").Return([]model.PullRequest{remote}, nil)
	prRepo.On("UpsertPR", mock.Anything, mock.AnythingOfType("model.PullRequest")).Return(stored, false, nil)

	// Head не сдвинулся с последней проверки
	watchRepo.On("GetCheckpoint", mock.Anything, "w1", "pr-1", model.TriggerOnSync).Return("sha-1", nil)

	svc := newWatchService(watchRepo, prRepo, connector, scans)
	require.NoError(t, svc.CheckWatches(context.Background()))

	scans.AssertNotCalled(t, "StartScan", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	watchRepo.AssertNotCalled(t, "UpsertCheckpoint", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWatchService_CheckWatches_OnSyncFires(t *testing.T) {
	watchRepo := new(mocks.WatchRepository)
	prRepo := new(mocks.PRRepository)
	connector := new(mocks.SourceConnector)
	scans := new(mocks.ScanStarter)

	watch := model.Watch{WatchID: "w1", RepositoryID: "acme/api", UserID: "u1", IsActive: true, ScanOnSync: true}
	remote := model.PullRequest{RepositoryID: "acme/api", Number: 7, HeadSHA: "sha-new", Status: model.StatusOpen}
	stored := remote
	stored.PullRequestID = "pr-1"

	watchRepo.On("ListActive", mock.Anything).Return([]model.Watch{watch}, nil)
	connector.On("ListPullRequests", mock.Anything, "acme/api").Return([]model.PullRequest{remote}, nil)
	prRepo.On("UpsertPR", mock.Anything, mock.AnythingOfType("model.PullRequest")).Return(stored, false, nil)
	watchRepo.On("GetCheckpoint", mock.Anything, "w1", "pr-1", model.TriggerOnSync).Return("sha-old", nil)

	scans.On("StartScan", mock.Anything, "pr-1", model.ScanTypeDiff, "pr-1:sha-new:on_sync").
		Return(model.ScanJob{JobID: "job-1", State: model.JobStatePending}, true, nil)
	watchRepo.On("UpsertCheckpoint", mock.Anything, "w1", "pr-1", model.TriggerOnSync, "sha-new").Return(nil)

	svc := newWatchService(watchRepo, prRepo, connector, scans)
	require.NoError(t, svc.CheckWatches(context.Background()))

	scans.AssertExpectations(t)
	watchRepo.AssertExpectations(t)
}

func TestWatchService_CheckWatches_OnOpenFiresOnlyOnce(t *testing.T) {
	watchRepo := new(mocks.WatchRepository)
	prRepo := new(mocks.PRRepository)
	connector := new(mocks.SourceConnector)
	scans := new(mocks.ScanStarter)

	watch := model.Watch{WatchID: "w1", RepositoryID: "acme/api", UserID: "u1", IsActive: true, ScanOnOpen: true}
	remote := model.PullRequest{RepositoryID: "acme/api", Number: 7, HeadSHA: "sha-1", Status: model.StatusOpen}
	stored := remote
	stored.PullRequestID = "pr-1"

	watchRepo.On("ListActive", mock.Anything).Return([]model.Watch{watch}, nil)
	connector.On("ListPullRequests", mock.Anything, "acme/api").Return([]model.PullRequest{remote}, nil)
	prRepo.On("UpsertPR", mock.Anything, mock.AnythingOfType("model.PullRequest")).Return(stored, false, nil)

	// Первый проход: PR ещё не видели
	watchRepo.On("GetCheckpoint", mock.Anything, "w1", "pr-1", model.TriggerOnOpen).Return("", nil).Once()
	scans.On("StartScan", mock.Anything, "pr-1", model.ScanTypeDiff, "pr-1:sha-1:on_open").
		Return(model.ScanJob{JobID: "job-1"}, true, nil).Once()
	watchRepo.On("UpsertCheckpoint", mock.Anything, "w1", "pr-1", model.TriggerOnOpen, "sha-1").Return(nil).Once()

	svc := newWatchService(watchRepo, prRepo, connector, scans)
	require.NoError(t, svc.CheckWatches(context.Background()))

	// Второй проход: чекпоинт уже стоит, триггер молчит
	watchRepo.On("GetCheckpoint", mock.Anything, "w1", "pr-1", model.TriggerOnOpen).Return("sha-1", nil).Once()
	require.NoError(t, svc.CheckWatches(context.Background()))

	scans.AssertNumberOfCalls(t, "StartScan", 1)
}

func TestWatchService_CheckWatches_CheckpointKeptOnStartError(t *testing.T) {
	watchRepo := new(mocks.WatchRepository)
	prRepo := new(mocks.PRRepository)
	connector := new(mocks.SourceConnector)
	scans := new(mocks.ScanStarter)

	watch := model.Watch{WatchID: "w1", RepositoryID: "acme/api", UserID: "u1", IsActive: true, ScanOnMerge: true}
	remote := model.PullRequest{RepositoryID: "acme/api", Number: 7, HeadSHA: "sha-m", Status: model.StatusMerged}
	stored := remote
	stored.PullRequestID = "pr-1"

	watchRepo.On("ListActive", mock.Anything).Return([]model.Watch{watch}, nil)
	connector.On("ListPullRequests", mock.Anything, "acme/api").Return([]model.PullRequest{remote}, nil)
	prRepo.On("UpsertPR", mock.Anything, mock.AnythingOfType("model.PullRequest")).Return(stored, false, nil)
	watchRepo.On("GetCheckpoint", mock.Anything, "w1", "pr-1", model.TriggerOnMerge).Return("", nil)

	scans.On("StartScan", mock.Anything, "pr-1", model.ScanTypeDiff, "pr-1:sha-m:on_merge").
		Return(model.ScanJob{}, false, errors.New("queue full"))

	svc := newWatchService(watchRepo, prRepo, connector, scans)
	require.NoError(t, svc.CheckWatches(context.Background()))

	// Чекпоинт не сдвинулся, следующий проход попробует снова
	watchRepo.AssertNotCalled(t, "UpsertCheckpoint", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWatchService_CheckWatches_CheckpointHeldWhileOlderJobActive(t *testing.T) {
	watchRepo := new(mocks.WatchRepository)
	prRepo := new(mocks.PRRepository)
	connector := new(mocks.SourceConnector)
	scans := new(mocks.ScanStarter)

	watch := model.Watch{WatchID: "w1", RepositoryID: "acme/api", UserID: "u1", IsActive: true, ScanOnSync: true}
	remote := model.PullRequest{RepositoryID: "acme/api", Number: 7, HeadSHA: "sha-new", Status: model.StatusOpen}
	stored := remote
	stored.PullRequestID = "pr-1"

	watchRepo.On("ListActive", mock.Anything).Return([]model.Watch{watch}, nil)
	connector.On("ListPullRequests", mock.Anything, "acme/api").Return([]model.PullRequest{remote}, nil)
	prRepo.On("UpsertPR", mock.Anything, mock.AnythingOfType("model.PullRequest")).Return(stored, false, nil)
	watchRepo.On("GetCheckpoint", mock.Anything, "w1", "pr-1", model.TriggerOnSync).Return("sha-old", nil)

	// Дедупликация вернула ещё активную задачу на предыдущий head
	scans.On("StartScan", mock.Anything, "pr-1", model.ScanTypeDiff, "pr-1:sha-new:on_sync").
		Return(model.ScanJob{JobID: "job-old", HeadSHA: "sha-old", State: model.JobStateRunning}, false, nil)

	svc := newWatchService(watchRepo, prRepo, connector, scans)
	require.NoError(t, svc.CheckWatches(context.Background()))

	// Чекпоинт не сдвинулся: новый коммит не потерян, следующий проход
	// попробует поставить скан снова
	watchRepo.AssertNotCalled(t, "UpsertCheckpoint", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	require.NoError(t, svc.CheckWatches(context.Background()))
	scans.AssertNumberOfCalls(t, "StartScan", 2)
}

func TestWatchService_CheckRepository_NoWatchesSkipsConnector(t *testing.T) {
	watchRepo := new(mocks.WatchRepository)
	connector := new(mocks.SourceConnector)

	watchRepo.On("ListActiveByRepository", mock.Anything, "acme/api").Return([]model.Watch{}, nil)

	svc := newWatchService(watchRepo, new(mocks.PRRepository), connector, new(mocks.ScanStarter))
	require.NoError(t, svc.CheckRepository(context.Background(), "acme/api"))

	connector.AssertNotCalled(t, "ListPullRequests", mock.Anything, mock.Anything)
}
