package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/addislabs/placement/internal/config"
	"github.com/addislabs/placement/internal/metrics"

	applicationHTTP "github.com/addislabs/placement/internal/application/http"
	jobHTTP "github.com/addislabs/placement/internal/job/http"
	profileHTTP "github.com/addislabs/placement/internal/profile/http"
	resetHTTP "github.com/addislabs/placement/internal/passwordreset/http"
	userHTTP "github.com/addislabs/placement/internal/user/http"
)

// Handlers groups the per-aggregate HTTP handlers the server routes to.
type Handlers struct {
	User        *userHTTP.UserHandler
	Maid        *profileHTTP.MaidHandler
	Sponsor     *profileHTTP.SponsorHandler
	Agency      *profileHTTP.AgencyHandler
	Job         *jobHTTP.JobHandler
	Application *applicationHTTP.ApplicationHandler
	Reset       *resetHTTP.ResetHandler
}

// Server represents the API HTTP server.
type Server struct {
	router *gin.Engine
	server *http.Server
	logger *slog.Logger
}

// NewServer creates the API server with all routes registered.
// metricsProvider may be nil when metrics collection is disabled.
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	handlers Handlers,
	metricsProvider *metrics.Provider,
) *Server {
	gin.SetMode(cfg.GetGinMode())

	router := gin.New()
	router.Use(requestid.New())
	router.Use(RequestLoggerMiddleware(logger))
	router.Use(gin.Recovery())

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", healthHandler())
	registerRoutes(router, cfg, logger, handlers)

	return &Server{
		router: router,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

func registerRoutes(router *gin.Engine, cfg *config.Config, logger *slog.Logger, h Handlers) {
	v1 := router.Group("/v1")

	// Accounts
	v1.POST("/users", h.User.RegisterHandler)
	v1.POST("/users/authenticate", h.User.AuthenticateHandler)
	v1.GET("/users", h.User.ListHandler)
	v1.GET("/users/:id", h.User.GetHandler)
	v1.POST("/users/:id/verify-email", h.User.VerifyEmailHandler)
	v1.POST("/users/:id/verify-phone", h.User.VerifyPhoneHandler)
	v1.PUT("/users/:id/password", h.User.ChangePasswordHandler)
	v1.DELETE("/users/:id", h.User.SuspendHandler)
	v1.GET("/users/:id/maid-profile", h.Maid.GetByUserHandler)
	v1.GET("/users/:id/sponsor-profile", h.Sponsor.GetByUserHandler)

	// Maid profiles
	v1.PUT("/maid-profiles", h.Maid.SaveHandler)
	v1.GET("/maid-profiles", h.Maid.SearchHandler)
	v1.GET("/maid-profiles/:id", h.Maid.GetHandler)
	v1.POST("/maid-profiles/:id/verify", h.Maid.VerifyHandler)
	v1.POST("/maid-profiles/:id/reject", h.Maid.RejectHandler)
	v1.PUT("/maid-profiles/:id/photo", h.Maid.AttachPhotoHandler)
	v1.GET("/maid-profiles/:id/applications", h.Application.ListByMaidHandler)

	// Sponsor profiles
	v1.PUT("/sponsor-profiles", h.Sponsor.SaveHandler)
	v1.POST("/sponsor-profiles/:id/verify", h.Sponsor.VerifyHandler)
	v1.POST("/sponsor-profiles/:id/reject", h.Sponsor.RejectHandler)
	v1.GET("/sponsor-profiles/:id/favorites", h.Sponsor.ListFavoritesHandler)
	v1.PUT("/sponsor-profiles/:id/favorites/:maid_id", h.Sponsor.AddFavoriteHandler)
	v1.DELETE("/sponsor-profiles/:id/favorites/:maid_id", h.Sponsor.RemoveFavoriteHandler)

	// Agency profiles
	v1.PUT("/agency-profiles", h.Agency.SaveHandler)
	v1.GET("/agency-profiles", h.Agency.ListHandler)
	v1.GET("/agency-profiles/:id", h.Agency.GetHandler)
	v1.POST("/agency-profiles/:id/verify", h.Agency.VerifyHandler)
	v1.POST("/agency-profiles/:id/reject", h.Agency.RejectHandler)
	v1.PUT("/agency-profiles/:id/license", h.Agency.AttachLicenseHandler)

	// Job postings
	v1.PUT("/job-postings", h.Job.SaveHandler)
	v1.GET("/job-postings", h.Job.SearchHandler)
	v1.GET("/job-postings/:id", h.Job.GetHandler)
	v1.POST("/job-postings/:id/close", h.Job.CloseHandler)
	v1.GET("/job-postings/:id/applications", h.Application.ListByJobHandler)
	v1.GET("/job-postings/:id/applications/check", h.Application.HasAppliedHandler)

	// Applications
	v1.POST("/applications", h.Application.SubmitHandler)
	v1.GET("/applications/:id", h.Application.GetHandler)
	v1.POST("/applications/:id/review", h.Application.ReviewHandler)
	v1.POST("/applications/:id/shortlist", h.Application.ShortlistHandler)
	v1.POST("/applications/:id/accept", h.Application.AcceptHandler)
	v1.POST("/applications/:id/reject", h.Application.RejectHandler)
	v1.POST("/applications/:id/withdraw", h.Application.WithdrawHandler)

	// Password resets. Only the unauthenticated request endpoint is
	// throttled; confirm requires a token that is already single-use.
	requestChain := []gin.HandlerFunc{h.Reset.RequestHandler}
	if cfg.RateLimitResetEnabled {
		requestChain = []gin.HandlerFunc{
			resetHTTP.ResetRateLimitMiddleware(
				cfg.RateLimitResetRequestsPerSec,
				cfg.RateLimitResetBurst,
				logger,
			),
			h.Reset.RequestHandler,
		}
	}
	v1.POST("/password-resets", requestChain...)
	v1.POST("/password-resets/confirm", h.Reset.ConfirmHandler)
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server. Readiness flips to unavailable once ctx is
// cancelled so load balancers drain before shutdown completes.
func (s *Server) Start(ctx context.Context) error {
	s.router.GET("/ready", readinessHandler(ctx))

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
