package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/varsity-sched/engine/internal/exporter"
	"github.com/varsity-sched/engine/internal/pipeline"
	"github.com/varsity-sched/engine/pkg/apperrors"
	appmetrics "github.com/varsity-sched/engine/pkg/metrics"
	"github.com/varsity-sched/engine/pkg/response"
)

// Server holds the dependencies every handler needs.
type Server struct {
	logger     *zap.Logger
	metrics    *appmetrics.Registry
	maxWorkers int
}

// NewServer builds a Server with the given dependencies.
func NewServer(logger *zap.Logger, metrics *appmetrics.Registry, maxWorkers int) *Server {
	return &Server{logger: logger, metrics: metrics, maxWorkers: maxWorkers}
}

// CreateSchedule handles POST /v1/schedules: one snapshot in, one
// schedule out.
func (s *Server) CreateSchedule(c *gin.Context) {
	var req SnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Wrap(err, apperrors.ErrValidation.Code, http.StatusBadRequest, err.Error()))
		return
	}

	snap := req.ToSnapshot()
	start := time.Now()
	outcome, err := pipeline.Run(c.Request.Context(), pipeline.Request{
		Snapshot:   snap,
		Config:     snap.Config,
		Seed:       req.Seed,
		MaxWorkers: s.maxWorkers,
	}, s.logger)
	elapsed := time.Since(start)

	if outcome == nil {
		s.metrics.ObserveSolve("error", elapsed, 0)
		response.Error(c, err)
		return
	}

	if err != nil {
		s.metrics.ObserveSolve("error", elapsed, 0)
		response.Error(c, err)
		return
	}

	result := outcome.Schedules[0]
	s.metrics.ObserveSolve(string(result.Status), elapsed, result.Quality)

	export := exporter.Build(result.Schedule, result.Report, result.Profile, result.Quality)
	response.Created(c, export)
}

// CreateScheduleOptions handles POST /v1/schedules/options: one snapshot
// in, num_options ranked schedule variants out (three when num_options is
// absent or 1).
func (s *Server) CreateScheduleOptions(c *gin.Context) {
	var req SnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Wrap(err, apperrors.ErrValidation.Code, http.StatusBadRequest, err.Error()))
		return
	}
	if req.NumOptions <= 1 {
		req.NumOptions = 3
	}

	snap := req.ToSnapshot()
	start := time.Now()
	outcome, err := pipeline.Run(c.Request.Context(), pipeline.Request{
		Snapshot:   snap,
		Config:     snap.Config,
		NumOptions: req.NumOptions,
		Seed:       req.Seed,
		MaxWorkers: s.maxWorkers,
	}, s.logger)
	elapsed := time.Since(start)

	if err != nil {
		s.metrics.ObserveSolve("error", elapsed, 0)
		response.Error(c, err)
		return
	}

	exports := make([]exporter.ScheduleExport, len(outcome.Schedules))
	for i, sr := range outcome.Schedules {
		exports[i] = exporter.Build(sr.Schedule, sr.Report, sr.Profile, sr.Quality)
		s.metrics.ObserveSolve(string(sr.Status), elapsed, sr.Quality)
	}
	response.Created(c, exports)
}

// Healthz handles GET /healthz: a trivial liveness probe.
func (s *Server) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// MetricsHandler returns the Prometheus scrape handler.
func (s *Server) MetricsHandler() gin.HandlerFunc {
	handler := s.metrics.Handler()
	return gin.WrapH(handler)
}
