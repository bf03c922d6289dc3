package server

import (
	"context"
	"net/http"
	"time"

	"github.com/drillops/wellsvc/internal/config"
	"github.com/drillops/wellsvc/internal/observability/logger"
	obsmetrics "github.com/drillops/wellsvc/internal/observability/metrics"
	"github.com/drillops/wellsvc/internal/usagestats"
	welldomain "github.com/drillops/wellsvc/internal/well/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(log))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type Server struct {
	engine  *gin.Engine
	cfg     config.Config
	log     *zap.Logger
	wellSvc welldomain.Service
	stats   *usagestats.Tracker
}

type ServerParams struct {
	fx.In

	Gin     *gin.Engine
	Cfg     config.Config
	Log     *zap.Logger
	WellSvc welldomain.Service
	Stats   *usagestats.Tracker
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:  p.Gin,
		cfg:     p.Cfg,
		log:     p.Log.Named("server"),
		wellSvc: p.WellSvc,
		stats:   p.Stats,
	}

	s.registerAPIRoutes()

	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	wells := api.Group("/well")
	wells.GET("", s.ListWellIDs)
	wells.GET("/metainfo", s.ListWellMetaInfo)
	wells.GET("/heavydata", s.ListWells)
	wells.GET("/usedslot/:clusterId", s.ListUsedSlotIDsByCluster)
	wells.GET("/:id", s.GetWellByID)
	wells.POST("", s.AddWell)
	wells.PUT("/:id", s.UpdateWellByID)
	wells.DELETE("/:id", s.DeleteWellByID)

	api.GET("/usagestatistics", s.GetUsageStatistics)
}

func run(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, s *Server) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: s.Engine(),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_ = ctx
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
