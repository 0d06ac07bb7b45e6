package db

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/climblog/climblog/internal/models"
	"github.com/climblog/climblog/internal/server/handlers/api"
	"github.com/climblog/climblog/internal/store"
)

// DBService is the part of store.Store the handler needs.
type DBService interface {
	Insert(ctx context.Context, doc models.Document, sourceFile string) (string, error)
	Counts(ctx context.Context) (*store.Counts, error)
}

type InsertResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

type DBHandler struct {
	db DBService
}

// New returns a handler backed by db. A nil db answers every request with
// E_DB_DISABLED.
func New(db DBService) *DBHandler {
	return &DBHandler{db: db}
}

func (h *DBHandler) InsertClimb(ctx *gin.Context) {
	h.insert(ctx, &models.ClimbingSession{})
}

func (h *DBHandler) InsertWorkout(ctx *gin.Context) {
	h.insert(ctx, &models.WorkoutSession{})
}

func (h *DBHandler) InsertMetrics(ctx *gin.Context) {
	h.insert(ctx, &models.ClimbMetricsEntry{})
}

func (h *DBHandler) insert(ctx *gin.Context, doc models.Document) {
	if !h.enabled(ctx) {
		return
	}
	if err := ctx.ShouldBindJSON(doc); err != nil {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, fmt.Errorf("invalid %s log: %w", doc.Kind(), err))
		return
	}

	id, err := h.db.Insert(ctx.Request.Context(), doc, "")
	if errors.Is(err, models.ErrInvalid) {
		api.AbortWithError(ctx, http.StatusBadRequest, api.CodeInvalidRequest, err)
		return
	} else if err != nil {
		api.AbortWithError(ctx, http.StatusInternalServerError, api.CodeDBInsertFailed, err)
		return
	}

	ctx.PureJSON(http.StatusCreated, &InsertResponse{Status: "ok", ID: id})
}

func (h *DBHandler) Counts(ctx *gin.Context) {
	if !h.enabled(ctx) {
		return
	}

	counts, err := h.db.Counts(ctx.Request.Context())
	if err != nil {
		api.AbortWithError(ctx, http.StatusInternalServerError, api.CodeDBQueryFailed, err)
		return
	}

	ctx.PureJSON(http.StatusOK, counts)
}

func (h *DBHandler) enabled(ctx *gin.Context) bool {
	if h.db != nil {
		return true
	}
	api.AbortWithError(ctx, http.StatusServiceUnavailable, api.CodeDBDisabled, errors.New("database is not configured"))
	return false
}
