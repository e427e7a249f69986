package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/bric-ux/akwa-pricing/internal/config"
	pricingdomain "github.com/bric-ux/akwa-pricing/internal/pricing/domain"
	snapshotdomain "github.com/bric-ux/akwa-pricing/internal/snapshot/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(NewHTTPMetrics),
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLoggingMiddleware(log))
	r.Use(TracingMiddleware())
	r.Use(MetricsMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	genID       *snowflake.Node
	metrics     *HTTPMetrics
	pricingSvc  pricingdomain.Service
	snapshotSvc snapshotdomain.Service
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	GenID       *snowflake.Node
	Metrics     *HTTPMetrics `optional:"true"`
	PricingSvc  pricingdomain.Service
	SnapshotSvc snapshotdomain.Service
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		genID:       p.GenID,
		metrics:     p.Metrics,
		pricingSvc:  p.PricingSvc,
		snapshotSvc: p.SnapshotSvc,
	}
}

func registerRoutes(s *Server) {
	s.RegisterAPIRoutes()
}

// RegisterAPIRoutes mounts the quote and snapshot endpoints.
func (s *Server) RegisterAPIRoutes() {
	v1 := s.engine.Group("/v1")

	quotes := v1.Group("/quotes")
	quotes.POST("/property", s.QuoteProperty)
	quotes.POST("/vehicle", s.QuoteVehicle)

	bookings := v1.Group("/bookings")
	bookings.POST("/:id/recalculate", s.RecalculateBooking)
	bookings.GET("/:id/snapshot", s.GetBookingSnapshot)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
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
