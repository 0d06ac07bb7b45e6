package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/climblog/climblog/internal/server/handlers/db"
	"github.com/climblog/climblog/internal/server/handlers/logs"
	"github.com/climblog/climblog/internal/server/handlers/remote"
	"github.com/climblog/climblog/internal/server/middlewares"
	"github.com/climblog/climblog/internal/version"
)

func SetupRoutes(cfg *Config, svc *Services) (http.Handler, error) {
	r := gin.New()

	logsH := logs.New(svc.Logs)
	remoteH := remote.New(svc.Sync, svc.Workspace, cfg.Bucket)

	var dbSvc db.DBService
	if svc.DB != nil {
		dbSvc = svc.DB
	}
	dbH := db.New(dbSvc)

	r.Use(middlewares.Logger())
	r.Use(gin.Recovery())
	r.Use(middlewares.GZIP())
	r.Use(middlewares.CORS())
	r.Use(middlewares.Secure(cfg.TLS()))

	r.GET("/", IndexHandler)
	r.GET("/healthz", HealthHandler)

	apiGroup := r.Group("/api")
	if cfg.HTTP.RateLimit > 0 {
		limit, err := middlewares.RateLimiter(fmt.Sprintf("%d-S", cfg.HTTP.RateLimit))
		if err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
		apiGroup.Use(limit)
	}
	{
		// logs
		apiGroup.GET("/logs", logsH.List)
		apiGroup.GET("/logs/get-climb", logsH.List)
		apiGroup.GET("/logs/summary", logsH.Summary)
		apiGroup.POST("/logs/climb", logsH.SaveClimb)
		apiGroup.POST("/logs/workout", logsH.SaveWorkout)
		apiGroup.POST("/logs/metrics", logsH.SaveMetrics)

		// db
		apiGroup.POST("/db/climb", dbH.InsertClimb)
		apiGroup.POST("/db/workout", dbH.InsertWorkout)
		apiGroup.POST("/db/metrics", dbH.InsertMetrics)
		apiGroup.GET("/db/counts", dbH.Counts)

		// remote
		apiGroup.POST("/remote/sync", remoteH.Sync)
		apiGroup.POST("/remote/pull", remoteH.Pull)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "not found",
		})
	})

	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"error": "method not allowed",
		})
	})

	return r.Handler(), nil
}

func IndexHandler(ctx *gin.Context) {
	ctx.String(http.StatusOK, version.DetailedWithApp())
}

func HealthHandler(ctx *gin.Context) {
	ctx.PureJSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

func init() {
	gin.SetMode(gin.ReleaseMode)
}
