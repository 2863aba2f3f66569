package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/varsity-sched/engine/internal/httpapi"
	"github.com/varsity-sched/engine/pkg/config"
	"github.com/varsity-sched/engine/pkg/logger"
	appmetrics "github.com/varsity-sched/engine/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := appmetrics.New()
	ginLogger := logger.GinMiddleware(logr)

	router := httpapi.NewRouter(cfg.APIPrefix, logr, ginLogger, metrics, cfg.Pareto.MaxWorkers)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := router.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
