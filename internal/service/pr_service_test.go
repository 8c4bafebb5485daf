package service_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pr-security-service/internal/model"
	"pr-security-service/internal/repository"
	"pr-security-service/internal/service"
	"pr-security-service/internal/service/mocks"
)

func newPRService(
	prRepo *mocks.PRRepository,
	scanRepo *mocks.ScanRepository,
	connector *mocks.SourceConnector,
	watches *mocks.WatchChecker,
) *service.PRService {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	return service.NewPRService(prRepo, scanRepo, connector, watches, logger)
}

func TestPRService_SyncPullRequests(t *testing.T) {
	remote := []model.PullRequest{
		{RepositoryID: "acme/api", Number: 1, HeadSHA: "a", Status: model.StatusOpen},
		{RepositoryID: "acme/api", Number: 2, HeadSHA: "b", Status: model.StatusMerged},
	}

	tests := []struct {
		name        string
		repoID      string
		setupMocks  func(prRepo *mocks.PRRepository, connector *mocks.SourceConnector, watches *mocks.WatchChecker)
		wantAdded   int
		wantUpdated int
		wantErrCode string
	}{
		{
			name:   "Success: one new, one updated",
			repoID: "acme/api",
			setupMocks: func(prRepo *mocks.PRRepository, connector *mocks.SourceConnector, watches *mocks.WatchChecker) {
				connector.On("ListPullRequests", mock.Anything, "acme/api").Return(remote, nil)
				prRepo.On("UpsertPR", mock.Anything, mock.MatchedBy(func(pr model.PullRequest) bool {
					return pr.Number == 1
				})).Return(remote[0], true, nil)
				prRepo.On("UpsertPR", mock.Anything, mock.MatchedBy(func(pr model.PullRequest) bool {
					return pr.Number == 2
				})).Return(remote[1], false, nil)
				watches.On("CheckRepository", mock.Anything, "acme/api").Return(nil)
			},
			wantAdded:   1,
			wantUpdated: 1,
		},
		{
			name:   "Success: watch check failure does not break sync",
			repoID: "acme/api",
			setupMocks: func(prRepo *mocks.PRRepository, connector *mocks.SourceConnector, watches *mocks.WatchChecker) {
				connector.On("ListPullRequests", mock.Anything, "acme/api").
					Return([]model.PullRequest{remote[0]}, nil)
				prRepo.On("UpsertPR", mock.Anything, mock.AnythingOfType("model.PullRequest")).
					Return(remote[0], true, nil)
				watches.On("CheckRepository", mock.Anything, "acme/api").
					Return(errors.New("connector rate limited"))
			},
			wantAdded: 1,
		},
		{
			name:   "Fail: connector error",
			repoID: "acme/api",
			setupMocks: func(prRepo *mocks.PRRepository, connector *mocks.SourceConnector, watches *mocks.WatchChecker) {
				connector.On("ListPullRequests", mock.Anything, "acme/api").
					Return(nil, errors.New("repository not accessible"))
			},
			wantErrCode: "INTERNAL",
		},
		{
			name:        "Fail: empty repository id",
			repoID:      "",
			setupMocks:  func(prRepo *mocks.PRRepository, connector *mocks.SourceConnector, watches *mocks.WatchChecker) {},
			wantErrCode: "BAD_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prRepo := new(mocks.PRRepository)
			scanRepo := new(mocks.ScanRepository)
			connector := new(mocks.SourceConnector)
			watches := new(mocks.WatchChecker)

			tt.setupMocks(prRepo, connector, watches)

			svc := newPRService(prRepo, scanRepo, connector, watches)
			added, updated, err := svc.SyncPullRequests(context.Background(), tt.repoID)

			if tt.wantErrCode != "" {
				require.Error(t, err)
				var appErr *service.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantErrCode, appErr.Code)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantAdded, added)
			assert.Equal(t, tt.wantUpdated, updated)
		})
	}
}

func TestPRService_GetScanJob(t *testing.T) {
	completed := model.ScanJob{JobID: "job-1", PullRequestID: "pr-1", State: model.JobStateCompleted}
	running := model.ScanJob{JobID: "job-2", PullRequestID: "pr-1", State: model.JobStateRunning}
	sum := model.SecuritySummary{JobID: "job-1", AfterScore: 83, Recommendation: model.RecommendationApprove}

	t.Run("completed job includes summary", func(t *testing.T) {
		scanRepo := new(mocks.ScanRepository)
		scanRepo.On("GetJob", mock.Anything, "job-1").Return(completed, nil)
		scanRepo.On("ListResultsByJob", mock.Anything, "job-1").Return([]model.ScanResult{{ResultID: "r1"}}, nil)
		scanRepo.On("GetSummaryByJob", mock.Anything, "job-1").Return(sum, nil)

		svc := newPRService(new(mocks.PRRepository), scanRepo, new(mocks.SourceConnector), new(mocks.WatchChecker))
		job, results, summary, err := svc.GetScanJob(context.Background(), "job-1")

		require.NoError(t, err)
		assert.Equal(t, model.JobStateCompleted, job.State)
		assert.Len(t, results, 1)
		require.NotNil(t, summary)
		assert.Equal(t, 83, summary.AfterScore)
	})

	t.Run("running job has no summary", func(t *testing.T) {
		scanRepo := new(mocks.ScanRepository)
		scanRepo.On("GetJob", mock.Anything, "job-2").Return(running, nil)
		scanRepo.On("ListResultsByJob", mock.Anything, "job-2").Return([]model.ScanResult{}, nil)

		svc := newPRService(new(mocks.PRRepository), scanRepo, new(mocks.SourceConnector), new(mocks.WatchChecker))
		_, _, summary, err := svc.GetScanJob(context.Background(), "job-2")

		require.NoError(t, err)
		assert.Nil(t, summary)
		scanRepo.AssertNotCalled(t, "GetSummaryByJob", mock.Anything, mock.Anything)
	})

	t.Run("unknown job", func(t *testing.T) {
		scanRepo := new(mocks.ScanRepository)
		scanRepo.On("GetJob", mock.Anything, "nope").Return(model.ScanJob{}, repository.ErrJobNotFound)

		svc := newPRService(new(mocks.PRRepository), scanRepo, new(mocks.SourceConnector), new(mocks.WatchChecker))
		_, _, _, err := svc.GetScanJob(context.Background(), "nope")

		var appErr *service.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}

func TestPRService_GetLatestSummary(t *testing.T) {
	pr := model.PullRequest{PullRequestID: "pr-1", RepositoryID: "acme/api", Number: 7}

	t.Run("no completed scans yet", func(t *testing.T) {
		prRepo := new(mocks.PRRepository)
		scanRepo := new(mocks.ScanRepository)
		prRepo.On("GetPR", mock.Anything, "pr-1").Return(pr, nil)
		scanRepo.On("GetLatestSummaryByPR", mock.Anything, "pr-1").
			Return(model.SecuritySummary{}, repository.ErrSummaryNotFound)

		svc := newPRService(prRepo, scanRepo, new(mocks.SourceConnector), new(mocks.WatchChecker))
		summary, err := svc.GetLatestSummary(context.Background(), "pr-1")

		require.NoError(t, err)
		assert.Nil(t, summary)
	})

	t.Run("latest summary returned", func(t *testing.T) {
		prRepo := new(mocks.PRRepository)
		scanRepo := new(mocks.ScanRepository)
		prRepo.On("GetPR", mock.Anything, "pr-1").Return(pr, nil)
		scanRepo.On("GetLatestSummaryByPR", mock.Anything, "pr-1").
			Return(model.SecuritySummary{JobID: "job-9", Recommendation: model.RecommendationBlock}, nil)

		svc := newPRService(prRepo, scanRepo, new(mocks.SourceConnector), new(mocks.WatchChecker))
		summary, err := svc.GetLatestSummary(context.Background(), "pr-1")

		require.NoError(t, err)
		require.NotNil(t, summary)
		assert.Equal(t, model.RecommendationBlock, summary.Recommendation)
	})

	t.Run("unknown pull request", func(t *testing.T) {
		prRepo := new(mocks.PRRepository)
		prRepo.On("GetPR", mock.Anything, "nope").Return(model.PullRequest{}, repository.ErrPRNotFound)

		svc := newPRService(prRepo, new(mocks.ScanRepository), new(mocks.SourceConnector), new(mocks.WatchChecker))
		_, err := svc.GetLatestSummary(context.Background(), "nope")

		var appErr *service.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}
