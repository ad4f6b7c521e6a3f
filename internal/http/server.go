// Package http assembles the API server: routing, middleware, and lifecycle.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/syter/media/internal/config"
	"github.com/syter/media/internal/health"
	mediaHTTP "github.com/syter/media/internal/media/http"
	mediaUseCase "github.com/syter/media/internal/media/usecase"
	"github.com/syter/media/internal/metrics"
	"github.com/syter/media/internal/ratelimit"
	tokenHTTP "github.com/syter/media/internal/token/http"
	tokenUseCase "github.com/syter/media/internal/token/usecase"
)

// Deps bundles everything the API server needs.
type Deps struct {
	Config        *config.Config
	Logger        *slog.Logger
	DB            *sql.DB
	TokenUseCase  tokenUseCase.UseCase
	MediaUseCase  mediaUseCase.UseCase
	Limiter       *ratelimit.Limiter
	MeterProvider otelmetric.MeterProvider
	Startup       health.StartupContext
}

// Server is the API HTTP server.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer builds the router and wraps it in an http.Server with sane
// timeouts. The rate limiter guards every route, including health.
func NewServer(deps Deps) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(deps.Logger))

	if corsMiddleware := createCORSMiddleware(
		deps.Config.CORSEnabled,
		deps.Config.CORSAllowOrigins,
		deps.Logger,
	); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if deps.MeterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(deps.MeterProvider, deps.Config.MetricsNamespace))
	}

	if deps.Config.RateLimitEnabled && deps.Limiter != nil {
		router.Use(ratelimit.Middleware(deps.Limiter, deps.Logger))
	}

	registerRoutes(router, deps)

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", deps.Config.ServerHost, deps.Config.ServerPort),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: deps.Logger,
	}
}

// registerRoutes mounts the API routes with their guards.
func registerRoutes(router *gin.Engine, deps Deps) {
	healthHandler := health.NewHandler(deps.DB, deps.Startup, deps.Logger)
	router.GET("/health", healthHandler.HealthHandler)

	tokenRequired := tokenHTTP.TokenRequired(deps.TokenUseCase, deps.Logger)
	tokenValid := tokenHTTP.TokenValid(deps.TokenUseCase, deps.Logger)

	tokenHandler := tokenHTTP.NewTokenHandler(deps.TokenUseCase, deps.Logger)
	tokens := router.Group("/tokens")
	{
		tokens.POST("/create-token", tokenHandler.CreateTokenHandler)
		tokens.GET("/info", tokenRequired, tokenHandler.TokenInfoHandler)
		tokens.PUT("/change-permissions", tokenRequired, tokenHandler.ChangePermissionsHandler)
		tokens.DELETE("/deactivate-token", tokenHandler.DeactivateTokenHandler)
	}

	mediaHandler := mediaHTTP.NewMediaHandler(deps.MediaUseCase, deps.Logger)
	media := router.Group("/media")
	{
		media.POST("/upload", tokenValid, mediaHandler.UploadHandler)
		media.GET("/items-by-token", tokenValid, mediaHandler.ItemsByTokenHandler)
		media.GET("/:id/preview", mediaHandler.PreviewHandler)
		media.GET("/:id/download", mediaHandler.DownloadHandler)
		media.GET("/:id/info", mediaHandler.InfoHandler)
		media.PUT("/:id/modify", tokenValid, mediaHandler.ModifyHandler)
		media.DELETE("/:id/delete", tokenValid, mediaHandler.DeleteHandler)
	}
}

// GetHandler returns the underlying handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the API server. Blocks until the listener stops.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
