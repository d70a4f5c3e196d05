package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	accountUseCase "github.com/chiahui-lin/savings365/internal/domain/usecase/account"
	dashboardUseCase "github.com/chiahui-lin/savings365/internal/domain/usecase/dashboard"
	ledgerUseCase "github.com/chiahui-lin/savings365/internal/domain/usecase/ledger"
	sessionUseCase "github.com/chiahui-lin/savings365/internal/domain/usecase/session"

	"github.com/chiahui-lin/savings365/internal/infrastructure/adapter/api/handler"
	"github.com/chiahui-lin/savings365/internal/infrastructure/adapter/api/routes"
	"github.com/chiahui-lin/savings365/internal/infrastructure/adapter/database"
	"github.com/chiahui-lin/savings365/internal/infrastructure/adapter/logger"
	"github.com/chiahui-lin/savings365/internal/infrastructure/adapter/repository"
	"github.com/chiahui-lin/savings365/internal/infrastructure/adapter/security"
	"github.com/chiahui-lin/savings365/internal/infrastructure/adapter/storage"
	timeProvider "github.com/chiahui-lin/savings365/internal/infrastructure/adapter/time"
	"github.com/chiahui-lin/savings365/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	defer func() {
		_ = appLogger.Flush()
	}()

	// Setup database configuration
	dbConfig := &database.Config{
		Driver:          "postgres",
		Host:            cfg.Database.Host,
		Port:            database.ParsePort(cfg.Database.Port),
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      int(cfg.Database.RetryDelay.Seconds()),
	}

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Connect to the database
	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

	// Run migrations
	migrationMgr := dbManager.MigrationManager()
	if err := migrationMgr.MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Expired sessions from previous runs are dead weight; clear them once
	// at startup, revoke-on-use handles the rest
	if err := migrationMgr.PurgeExpiredSessions(context.Background()); err != nil {
		appLogger.Warn("Failed to purge expired sessions", map[string]any{
			"error": err.Error(),
		})
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(dbManager.DB(), appLogger)
	groupRepo := repository.NewGroupRepository(dbManager.DB(), appLogger)
	recordRepo := repository.NewRecordRepository(dbManager.DB(), appLogger)
	sessionRepo := repository.NewSessionRepository(dbManager.DB(), appLogger)

	// Unit of work (transaction manager)
	uow := database.NewUnitOfWork(dbManager.DB(), appLogger)

	// Photo storage on the local filesystem
	photoStore, err := storage.NewFilesystemPhotoStore(cfg.Storage.PhotoDir, appLogger)
	if err != nil {
		appLogger.Error("Failed to prepare photo storage", map[string]any{
			"dir":   cfg.Storage.PhotoDir,
			"error": err.Error(),
		})
		os.Exit(1)
	}

	hasher := security.NewBcryptHasher()
	codes := security.NewUUIDCodeGenerator()

	// Initialize use cases
	accounts := accountUseCase.NewService(uow, userRepo, groupRepo, sessionRepo, photoStore, hasher, codes, tp, appLogger)
	ledger := ledgerUseCase.NewService(userRepo, recordRepo, photoStore, codes, tp, appLogger)
	dashboards := dashboardUseCase.NewService(userRepo, groupRepo, recordRepo, appLogger)
	sessions := sessionUseCase.NewManager(sessionRepo, userRepo, codes, tp, appLogger, cfg.Session.TTL)

	// Initialize API handlers
	cookie := handler.CookieSettings{
		Name:     cfg.Session.CookieName,
		Secure:   cfg.Session.CookieSecure,
		MaxAgeSe: int(cfg.Session.TTL.Seconds()),
	}
	authHandler := handler.NewAuthHandler(accounts, sessions, cookie, appLogger)
	ledgerHandler := handler.NewLedgerHandler(ledger, cfg.Storage.MaxPhotoSizeMB, appLogger)
	groupHandler := handler.NewGroupHandler(accounts, appLogger)
	dashboardHandler := handler.NewDashboardHandler(dashboards, photoStore, appLogger)

	// Initialize Gin router
	router := gin.New()

	// Setup middlewares
	routes.SetupMiddlewares(router, appLogger)

	// Setup routes
	routes.SetupRoutes(
		router,
		sessions,
		cfg.Session.CookieName,
		authHandler,
		ledgerHandler,
		groupHandler,
		dashboardHandler,
		cfg.Storage.ServePhotoRoutes,
	)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missing []string

	if cfg.Server.Port == 0 {
		missing = append(missing, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missing = append(missing, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missing = append(missing, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missing = append(missing, "server.shutdownTimeout")
	}

	if cfg.Database.Host == "" {
		missing = append(missing, "database.host (or SC_DB_HOST environment variable)")
	}
	if cfg.Database.Port == "" {
		missing = append(missing, "database.port (or SC_DB_PORT environment variable)")
	}
	if cfg.Database.Username == "" {
		missing = append(missing, "database.username (or SC_DB_USERNAME environment variable)")
	}
	if cfg.Database.Database == "" {
		missing = append(missing, "database.database (or SC_DB_NAME environment variable)")
	}

	if cfg.Session.CookieName == "" {
		missing = append(missing, "session.cookieName")
	}
	if cfg.Storage.PhotoDir == "" {
		missing = append(missing, "storage.photoDir")
	}
	if cfg.Logger.Level == "" {
		missing = append(missing, "logger.level")
	}

	if cfg.Environment == "" {
		missing = append(missing, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configurations: %v", missing)
	}
	return nil
}
