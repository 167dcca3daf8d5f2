package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ulule/limiter/v3"
	limitermem "github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/sgca/treasury_backend/internal/core/domain"
	portsrepo "github.com/sgca/treasury_backend/internal/core/ports/repositories"
	"github.com/sgca/treasury_backend/internal/core/services"
	"github.com/sgca/treasury_backend/internal/dto"
	"github.com/sgca/treasury_backend/internal/handlers"
	"github.com/sgca/treasury_backend/internal/middleware"
	"github.com/sgca/treasury_backend/internal/platform/config"
	"github.com/sgca/treasury_backend/internal/repositories/database/pgsql"
	"github.com/sgca/treasury_backend/internal/repositories/memory"
	"github.com/sgca/treasury_backend/internal/utils"
	"github.com/sgca/treasury_backend/pkg/database"
)

// @title SGCA Treasury API
// @version 1.0
// @description Ledger and balance consistency engine for the student government treasury.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos, cleanup, err := buildRepositories(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage backend", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	serviceContainer := services.NewServiceContainer(cfg, repos)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	dto.RegisterValidators()

	r := gin.New()

	// Global middleware (logging, recovery, CORS, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(corsMiddleware(cfg))

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT value", slog.String("value", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(limitermem.NewStore(), rate)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage_backend", cfg.StorageBackend))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildRepositories selects the storage backend from configuration. The
// returned cleanup func releases backend resources and is safe to call once.
func buildRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StorageBackend == "memory" {
		logger.Info("Using in-memory storage backend")
		store := memory.NewStore()
		repos := memory.NewRepositoryProvider(store)
		if err := seedMemoryBackend(ctx, cfg, repos, logger); err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		return repos, func() {}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}

	if err := runMigrations(cfg, logger); err != nil {
		dbPool.Close()
		return portsrepo.RepositoryProvider{}, nil, err
	}

	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}

// seedMemoryBackend creates the treasury account and, when configured, a
// bootstrap president login so the in-memory backend is usable out of the box.
func seedMemoryBackend(ctx context.Context, cfg *config.Config, repos portsrepo.RepositoryProvider, logger *slog.Logger) error {
	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     "system",
		LastUpdatedAt: now,
		LastUpdatedBy: "system",
	}

	account := domain.Account{
		AccountID:   uuid.NewString(),
		Name:        "Treasury",
		Description: "Organization treasury account",
		Balance:     domain.ZeroMoney(),
		Version:     0,
		AuditFields: audit,
	}
	if err := repos.AccountRepo.SaveAccount(ctx, account); err != nil {
		return err
	}

	if cfg.BootstrapEmail == "" || cfg.BootstrapPassword == "" {
		logger.Warn("BOOTSTRAP_USER_EMAIL/BOOTSTRAP_USER_PASSWORD not set, no login will be possible on the memory backend")
		return nil
	}

	passwordHash, err := utils.HashPassword(cfg.BootstrapPassword)
	if err != nil {
		return err
	}
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         "Bootstrap President",
		Email:        cfg.BootstrapEmail,
		PasswordHash: passwordHash,
		Role:         domain.RolePresident,
		IsActive:     true,
		AuditFields:  audit,
	}
	if err := repos.UserRepo.SaveUser(ctx, user); err != nil {
		return err
	}
	logger.Info("Seeded bootstrap user", slog.String("email", cfg.BootstrapEmail))
	return nil
}

// runMigrations applies all pending SQL migrations using a short-lived
// database/sql connection over the pgx stdlib driver.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// corsMiddleware builds the CORS policy. Production deployments sit behind a
// gateway that restricts origins, so the defaults here stay permissive.
func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	return cors.New(corsConfig)
}
