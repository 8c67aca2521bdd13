package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/bancsuite/coreledger/internal/apperrors"
	"github.com/bancsuite/coreledger/internal/core/domain"
	"github.com/bancsuite/coreledger/internal/core/services"
	"github.com/bancsuite/coreledger/internal/handlers"
	"github.com/bancsuite/coreledger/internal/middleware"
	"github.com/bancsuite/coreledger/internal/repositories/database/pgsql"
	"github.com/bancsuite/coreledger/pkg/config"
	"github.com/bancsuite/coreledger/pkg/database"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryContainer(dbPool)
	svcs := services.NewContainer(repos, services.ContainerConfig{
		DefaultSystemDate: cfg.DefaultSystemDate,
		DefaultCurrency:   cfg.DefaultCurrency,
		ReportsDir:        cfg.ReportsDir,
	})

	seedSystemDate(context.Background(), repos, svcs, cfg, logger)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterHandlers(r, svcs, cfg.EODAdminUser)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies pending schema migrations over a temporary
// database/sql connection compatible with the pgx pool.
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

	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// seedSystemDate persists the configured default business date when the
// parameter row does not exist yet.
func seedSystemDate(ctx context.Context, repos *pgsql.RepositoryContainer, svcs *services.Container, cfg *config.Config, logger *slog.Logger) {
	if cfg.DefaultSystemDate == "" {
		return
	}
	if _, err := repos.Parameter.FindParameter(ctx, domain.ParamSystemDate); err == nil {
		return
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Warn("Could not read System_Date during seeding", slog.String("error", err.Error()))
		return
	}

	date, err := time.Parse("2006-01-02", cfg.DefaultSystemDate)
	if err != nil {
		logger.Error("DEFAULT_SYSTEM_DATE is not a date", slog.String("value", cfg.DefaultSystemDate))
		return
	}
	if err := svcs.Clock.Set(ctx, date, cfg.EODAdminUser); err != nil {
		logger.Error("Failed to seed System_Date", slog.String("error", err.Error()))
		return
	}
	logger.Info("Seeded System_Date", slog.String("system_date", cfg.DefaultSystemDate))
}
