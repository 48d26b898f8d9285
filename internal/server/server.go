// Package server assembles the HTTP surface of the service.
package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/lecturia/bookgraph/config"
	"github.com/lecturia/bookgraph/internal/platform/middleware"
	"github.com/lecturia/bookgraph/internal/repositories/ingestlog"
	"github.com/lecturia/bookgraph/pkg/graph"
	"github.com/lecturia/bookgraph/pkg/ingest"
	"github.com/lecturia/bookgraph/pkg/routes/admin"
	"github.com/lecturia/bookgraph/pkg/routes/consulta"
	"github.com/lecturia/bookgraph/pkg/routes/entity"
	"github.com/lecturia/bookgraph/pkg/routes/health"
	"github.com/lecturia/bookgraph/pkg/routes/relation"
)

// Services carries the wired domain services the routes need. AuditLog may
// be nil when the relational audit store is disabled.
type Services struct {
	Entities      *graph.EntityService
	Relationships *graph.RelationshipService
	Queries       *graph.QueryService
	Seed          *graph.SeedService
	Pipeline      *ingest.Pipeline
	AuditLog      *ingestlog.Repository
	Health        *health.Checker
}

// Server wraps the echo instance so it can participate in managed startup
type Server struct {
	echo   *echo.Echo
	cfg    config.Config
	logger ectologger.Logger
}

// New builds the echo server with middleware and all routes registered
func New(cfg config.Config, logger ectologger.Logger, svcs Services) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = time.Duration(cfg.HttpServerReadTimeoutSeconds) * time.Second
	e.Server.WriteTimeout = time.Duration(cfg.HttpServerWriteTimeoutSeconds) * time.Second
	e.Server.IdleTimeout = time.Duration(cfg.HttpServerIdleTimeoutSeconds) * time.Second
	e.Server.ReadHeaderTimeout = time.Duration(cfg.ReadHeaderTimeoutSeconds) * time.Second
	e.Server.MaxHeaderBytes = cfg.MaxHeaderBytes

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: cfg.AllowMethods,
	}))
	e.Use(otelecho.Middleware(
		cfg.AppName,
		otelecho.WithSkipper(func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/api/v1/health")
		}),
	))
	e.Use(middleware.Context())
	e.Use(middleware.Logger(logger))
	e.HTTPErrorHandler = middleware.Error(logger)

	if svcs.Health != nil {
		svcs.Health.RegisterRoutes(e)
	}

	entity.NewHandler(svcs.Entities).Register(e.Group(""))
	relation.NewHandler(svcs.Relationships).Register(e.Group("/relaciones"))
	consulta.NewHandler(svcs.Queries).Register(e.Group("/consultas"))
	admin.NewHandler(svcs.Seed, svcs.Pipeline).WithAuditLog(svcs.AuditLog).Register(e.Group("/admin"))

	return &Server{
		echo:   e,
		cfg:    cfg,
		logger: logger,
	}
}

// Echo exposes the underlying echo instance for tests
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// GetName implements startup.Dependency
func (s *Server) GetName() string {
	return "http-server"
}

// DependsOn implements startup.Dependency
func (s *Server) DependsOn() []string {
	return []string{"graph-db"}
}

// Start begins serving. Listening happens in the background so startup can
// continue; fatal listen errors are logged.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)

	go func() {
		if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
			s.logger.WithContext(ctx).WithError(err).Error("HTTP server stopped unexpectedly")
		}
	}()

	s.logger.WithContext(ctx).WithField("addr", addr).Info("HTTP server listening")
	return nil
}

// Stop shuts the server down gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
