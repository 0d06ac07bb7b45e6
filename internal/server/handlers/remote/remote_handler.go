package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/climblog/climblog/internal/reconcile"
	"github.com/climblog/climblog/internal/server/handlers/api"
	"github.com/climblog/climblog/internal/workspace"
)

type RemoteHandler struct {
	syncer Syncer
	lock   Locker
	bucket string
}

func New(syncer Syncer, lock Locker, bucket string) *RemoteHandler {
	return &RemoteHandler{syncer: syncer, lock: lock, bucket: bucket}
}

func (h *RemoteHandler) Sync(ctx *gin.Context) {
	h.pass(ctx, h.syncer.Sync)
}

func (h *RemoteHandler) Pull(ctx *gin.Context) {
	h.pass(ctx, h.syncer.Pull)
}

type passFunc func(ctx context.Context, bucket string, dryRun bool) (*reconcile.Report, error)

func (h *RemoteHandler) pass(ctx *gin.Context, run passFunc) {
	var req PassRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, fmt.Errorf("failed to bind query: %w", err))
		return
	}

	if err := h.lock.Lock(); errors.Is(err, workspace.ErrWorkspaceLocked) {
		api.AbortWithError(ctx, http.StatusConflict, api.CodeSyncInProgress, err)
		return
	} else if err != nil {
		api.AbortWithError(ctx, http.StatusInternalServerError, api.CodeInternalError, err)
		return
	}
	defer h.lock.Unlock()

	report, err := run(ctx.Request.Context(), h.bucket, req.DryRun)
	if errors.Is(err, reconcile.ErrListingFailed) {
		api.AbortWithError(ctx, http.StatusBadGateway, api.CodeRemoteListingFailed, err)
		return
	} else if err != nil {
		api.AbortWithError(ctx, http.StatusInternalServerError, api.CodeInternalError, err)
		return
	}

	ctx.PureJSON(http.StatusOK, newReportResponse(report))
}
