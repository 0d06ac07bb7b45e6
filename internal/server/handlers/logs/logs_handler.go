package logs

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/climblog/climblog/internal/models"
	"github.com/climblog/climblog/internal/server/handlers/api"
)

type LogsHandler struct {
	logs LogService
}

func New(logs LogService) *LogsHandler {
	return &LogsHandler{logs: logs}
}

func (h *LogsHandler) SaveClimb(ctx *gin.Context) {
	h.save(ctx, &models.ClimbingSession{})
}

func (h *LogsHandler) SaveWorkout(ctx *gin.Context) {
	h.save(ctx, &models.WorkoutSession{})
}

func (h *LogsHandler) SaveMetrics(ctx *gin.Context) {
	h.save(ctx, &models.ClimbMetricsEntry{})
}

func (h *LogsHandler) save(ctx *gin.Context, doc models.Document) {
	if err := ctx.ShouldBindJSON(doc); err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, fmt.Errorf("invalid %s log: %w", doc.Kind(), err))
		return
	}

	filename, err := h.logs.Save(doc)
	if errors.Is(err, models.ErrInvalid) {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, err)
		return
	} else if err != nil {
		api.AbortWithError(ctx, http.StatusInternalServerError, api.CodeLogSaveFailed, err)
		return
	}

	ctx.PureJSON(http.StatusCreated, &SaveResponse{Status: "ok", File: filename})
}

func (h *LogsHandler) List(ctx *gin.Context) {
	names, err := h.logs.Index()
	if err != nil {
		api.AbortWithError(ctx, http.StatusInternalServerError, api.CodeLogReadFailed, err)
		return
	}
	if names == nil {
		names = []string{}
	}

	ctx.PureJSON(http.StatusOK, &ListResponse{Logs: names})
}

func (h *LogsHandler) Summary(ctx *gin.Context) {
	sum, err := h.logs.Summarize()
	if err != nil {
		api.AbortWithError(ctx, http.StatusInternalServerError, api.CodeLogReadFailed, err)
		return
	}

	ctx.PureJSON(http.StatusOK, sum)
}
