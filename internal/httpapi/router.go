package httpapi

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appmetrics "github.com/varsity-sched/engine/pkg/metrics"
	"github.com/varsity-sched/engine/pkg/requestid"
)

// NewRouter builds the gin engine exposing the §6 HTTP surface.
func NewRouter(apiPrefix string, logger *zap.Logger, ginLogger gin.HandlerFunc, metrics *appmetrics.Registry, maxWorkers int) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestid.Middleware(), ginLogger, metrics.GinMiddleware())

	server := NewServer(logger, metrics, maxWorkers)

	router.GET("/healthz", server.Healthz)
	router.GET("/metrics", server.MetricsHandler())

	v1 := router.Group(apiPrefix)
	{
		v1.POST("/schedules", server.CreateSchedule)
		v1.POST("/schedules/options", server.CreateScheduleOptions)
	}

	return router
}
