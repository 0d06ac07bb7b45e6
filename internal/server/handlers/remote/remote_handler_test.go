package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/climblog/climblog/internal/reconcile"
	"github.com/climblog/climblog/internal/server/handlers/api"
	"github.com/climblog/climblog/internal/workspace"
)

const bucket = "test-bucket"

type MockSyncer struct {
	mock.Mock
}

func (m *MockSyncer) Sync(ctx context.Context, bucket string, dryRun bool) (*reconcile.Report, error) {
	args := m.Called(ctx, bucket, dryRun)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reconcile.Report), args.Error(1)
}

func (m *MockSyncer) Pull(ctx context.Context, bucket string, dryRun bool) (*reconcile.Report, error) {
	args := m.Called(ctx, bucket, dryRun)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reconcile.Report), args.Error(1)
}

func newRouter(t *testing.T, syncer Syncer) (*gin.Engine, *workspace.Workspace) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ws, err := workspace.NewWorkspace(t.TempDir(), "", "")
	require.NoError(t, err)

	h := New(syncer, ws, bucket)
	r := gin.New()
	r.POST("/api/remote/sync", h.Sync)
	r.POST("/api/remote/pull", h.Pull)
	return r, ws
}

func post(r http.Handler, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, url, nil))
	return w
}

func TestSync_DryRun(t *testing.T) {
	report := &reconcile.Report{
		Action: reconcile.ActionUpload,
		Bucket: bucket,
		DryRun: true,
		InSync: 1,
		Took:   time.Millisecond,
		Results: []*reconcile.Result{{
			Transfer: reconcile.Transfer{Action: reconcile.ActionUpload, Key: "workouts/2024-04-02_workout.json", Filename: "2024-04-02_workout.json"},
			DryRun:   true,
		}},
	}
	syncer := new(MockSyncer)
	syncer.On("Sync", mock.Anything, bucket, true).Return(report, nil)

	r, _ := newRouter(t, syncer)
	w := post(r, "/api/remote/sync?dry_run=true")
	require.Equal(t, http.StatusOK, w.Code)

	var resp ReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "upload", resp.Action)
	assert.True(t, resp.DryRun)
	assert.Equal(t, 1, resp.InSync)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, statusPlanned, resp.Results[0].Status)
	assert.Equal(t, "would upload workouts/2024-04-02_workout.json", resp.Results[0].Message)
	syncer.AssertExpectations(t)
}

func TestPull_PartialFailure(t *testing.T) {
	report := &reconcile.Report{
		Action: reconcile.ActionDownload,
		Bucket: bucket,
		Results: []*reconcile.Result{
			{Transfer: reconcile.Transfer{Action: reconcile.ActionDownload, Key: "climbs/a_climb.json", Filename: "a_climb.json"}},
			{
				Transfer: reconcile.Transfer{Action: reconcile.ActionDownload, Key: "climbs/b_climb.json", Filename: "b_climb.json"},
				Err:      &reconcile.TransferError{Action: reconcile.ActionDownload, Key: "climbs/b_climb.json", Err: errors.New("timeout")},
			},
		},
	}
	syncer := new(MockSyncer)
	syncer.On("Pull", mock.Anything, bucket, false).Return(report, nil)

	r, _ := newRouter(t, syncer)
	w := post(r, "/api/remote/pull")
	require.Equal(t, http.StatusOK, w.Code)

	var resp ReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Transferred)
	assert.Equal(t, 1, resp.Failed)
	assert.Equal(t, statusOK, resp.Results[0].Status)
	assert.Equal(t, statusFailed, resp.Results[1].Status)
	assert.Equal(t, "download climbs/b_climb.json: timeout", resp.Results[1].Error)
}

func TestSync_ListingFailed(t *testing.T) {
	syncer := new(MockSyncer)
	syncer.On("Sync", mock.Anything, bucket, false).
		Return(nil, &reconcile.ListingError{Side: reconcile.SideRemote, Err: errors.New("AccessDenied")})

	r, ws := newRouter(t, syncer)
	w := post(r, "/api/remote/sync")
	assert.Equal(t, http.StatusBadGateway, w.Code)

	var apiErr api.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, api.CodeRemoteListingFailed, apiErr.Code)

	// the lock is released after a failed pass
	require.NoError(t, ws.Lock())
	require.NoError(t, ws.Unlock())
}

func TestSync_InProgress(t *testing.T) {
	syncer := new(MockSyncer)

	r, ws := newRouter(t, syncer)
	require.NoError(t, ws.Lock())
	t.Cleanup(func() { _ = ws.Unlock() })

	w := post(r, "/api/remote/sync")
	assert.Equal(t, http.StatusConflict, w.Code)

	var apiErr api.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, api.CodeSyncInProgress, apiErr.Code)
	syncer.AssertNotCalled(t, "Sync", mock.Anything, mock.Anything, mock.Anything)
}

func TestSync_BadQuery(t *testing.T) {
	r, _ := newRouter(t, new(MockSyncer))
	w := post(r, "/api/remote/sync?dry_run=maybe")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
