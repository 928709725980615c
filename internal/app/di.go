// Package app provides the dependency injection container for assembling
// application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/addislabs/placement/internal/config"
	"github.com/addislabs/placement/internal/database"
	"github.com/addislabs/placement/internal/http"
	"github.com/addislabs/placement/internal/metrics"
	"github.com/addislabs/placement/internal/storage"

	applicationHTTP "github.com/addislabs/placement/internal/application/http"
	applicationUsecase "github.com/addislabs/placement/internal/application/usecase"
	jobHTTP "github.com/addislabs/placement/internal/job/http"
	jobUsecase "github.com/addislabs/placement/internal/job/usecase"
	resetHTTP "github.com/addislabs/placement/internal/passwordreset/http"
	resetService "github.com/addislabs/placement/internal/passwordreset/service"
	resetUsecase "github.com/addislabs/placement/internal/passwordreset/usecase"
	profileHTTP "github.com/addislabs/placement/internal/profile/http"
	profileUsecase "github.com/addislabs/placement/internal/profile/usecase"
	userHTTP "github.com/addislabs/placement/internal/user/http"
	userService "github.com/addislabs/placement/internal/user/service"
	userUsecase "github.com/addislabs/placement/internal/user/usecase"
)

// Container holds all application dependencies and provides methods to access
// them. Components are created lazily on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	txManager       database.TxManager
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics
	documentStore   storage.DocumentStore

	// Services
	passwordService userService.PasswordService
	tokenService    resetService.TokenService
	resetNotifier   resetUsecase.ResetNotifier

	// Repositories
	userRepo        userUsecase.UserRepository
	maidRepo        profileUsecase.MaidRepository
	sponsorRepo     profileUsecase.SponsorRepository
	agencyRepo      profileUsecase.AgencyRepository
	jobRepo         jobUsecase.JobRepository
	applicationRepo applicationUsecase.ApplicationRepository
	resetRepo       resetUsecase.ResetRepository

	// Use cases
	userUseCase        userUsecase.UserUseCase
	maidUseCase        profileUsecase.MaidProfileUseCase
	sponsorUseCase     profileUsecase.SponsorProfileUseCase
	agencyUseCase      profileUsecase.AgencyProfileUseCase
	jobUseCase         jobUsecase.JobUseCase
	applicationUseCase applicationUsecase.ApplicationUseCase
	resetUseCase       resetUsecase.PasswordResetUseCase

	// Handlers
	userHandler        *userHTTP.UserHandler
	maidHandler        *profileHTTP.MaidHandler
	sponsorHandler     *profileHTTP.SponsorHandler
	agencyHandler      *profileHTTP.AgencyHandler
	jobHandler         *jobHTTP.JobHandler
	applicationHandler *applicationHTTP.ApplicationHandler
	resetHandler       *resetHTTP.ResetHandler

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                     sync.Mutex
	loggerInit             sync.Once
	dbInit                 sync.Once
	txManagerInit          sync.Once
	metricsProviderInit    sync.Once
	businessMetricsInit    sync.Once
	documentStoreInit      sync.Once
	passwordServiceInit    sync.Once
	tokenServiceInit       sync.Once
	resetNotifierInit      sync.Once
	userRepoInit           sync.Once
	maidRepoInit           sync.Once
	sponsorRepoInit        sync.Once
	agencyRepoInit         sync.Once
	jobRepoInit            sync.Once
	applicationRepoInit    sync.Once
	resetRepoInit          sync.Once
	userUseCaseInit        sync.Once
	maidUseCaseInit        sync.Once
	sponsorUseCaseInit     sync.Once
	agencyUseCaseInit      sync.Once
	jobUseCaseInit         sync.Once
	applicationUseCaseInit sync.Once
	resetUseCaseInit       sync.Once
	userHandlerInit        sync.Once
	maidHandlerInit        sync.Once
	sponsorHandlerInit     sync.Once
	agencyHandlerInit      sync.Once
	jobHandlerInit         sync.Once
	applicationHandlerInit sync.Once
	resetHandlerInit       sync.Once
	httpServerInit         sync.Once
	metricsServerInit      sync.Once
	initErrors             map[string]error
}

// NewContainer creates a new dependency injection container with the provided
// configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		db, err := database.Connect(database.Config{
			Driver:             c.config.DBDriver,
			ConnectionString:   c.config.DBConnectionString,
			MaxOpenConnections: c.config.DBMaxOpenConnections,
			MaxIdleConnections: c.config.DBMaxIdleConnections,
			ConnMaxLifetime:    c.config.DBConnMaxLifetime,
		})
		if err != nil {
			c.initErrors["db"] = fmt.Errorf("failed to connect to database: %w", err)
			return
		}
		c.db = db
	})
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	c.txManagerInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["txManager"] = fmt.Errorf("failed to get database for tx manager: %w", err)
			return
		}
		c.txManager = database.NewTxManager(db)
	})
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// MetricsProvider returns the metrics provider, or nil when metrics
// collection is disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = fmt.Errorf("failed to create metrics provider: %w", err)
			return
		}
		c.metricsProvider = provider
	})
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. A no-op recorder is
// returned when metrics collection is disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["businessMetrics"] = fmt.Errorf("failed to get metrics provider: %w", err)
			return
		}
		if provider == nil {
			c.businessMetrics = metrics.NewNoOpBusinessMetrics()
			return
		}
		c.businessMetrics, err = metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["businessMetrics"] = fmt.Errorf("failed to create business metrics: %w", err)
		}
	})
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// DocumentStore returns the blob-backed document store for profile photos
// and agency license documents.
func (c *Container) DocumentStore() (storage.DocumentStore, error) {
	c.documentStoreInit.Do(func() {
		store, err := storage.NewDocumentStore(context.Background(), c.config.DocumentBucketURL)
		if err != nil {
			c.initErrors["documentStore"] = fmt.Errorf("failed to create document store: %w", err)
			return
		}
		c.documentStore = store
	})
	if storedErr, exists := c.initErrors["documentStore"]; exists {
		return nil, storedErr
	}
	return c.documentStore, nil
}

// HTTPServer returns the API HTTP server instance.
func (c *Container) HTTPServer() (*http.Server, error) {
	c.httpServerInit.Do(func() {
		server, err := c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}
		c.httpServer = server
	})
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the Prometheus metrics server instance, or nil when
// metrics collection is disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = fmt.Errorf("failed to get metrics provider: %w", err)
			return
		}
		if provider == nil {
			return
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

func (c *Container) initHTTPServer() (*http.Server, error) {
	userHandler, err := c.UserHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get user handler for http server: %w", err)
	}
	maidHandler, err := c.MaidHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get maid handler for http server: %w", err)
	}
	sponsorHandler, err := c.SponsorHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get sponsor handler for http server: %w", err)
	}
	agencyHandler, err := c.AgencyHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get agency handler for http server: %w", err)
	}
	jobHandler, err := c.JobHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get job handler for http server: %w", err)
	}
	applicationHandler, err := c.ApplicationHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get application handler for http server: %w", err)
	}
	resetHandler, err := c.ResetHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get reset handler for http server: %w", err)
	}
	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	handlers := http.Handlers{
		User:        userHandler,
		Maid:        maidHandler,
		Sponsor:     sponsorHandler,
		Agency:      agencyHandler,
		Job:         jobHandler,
		Application: applicationHandler,
		Reset:       resetHandler,
	}

	return http.NewServer(c.config, c.Logger(), handlers, metricsProvider), nil
}

// Shutdown performs cleanup of all initialized resources.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.documentStore != nil {
		if err := c.documentStore.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("document store close: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates a structured logger based on the configured log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}
