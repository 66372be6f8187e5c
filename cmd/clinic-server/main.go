package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/veasna/clinic/internal/config"
	"github.com/veasna/clinic/internal/domain/location"
	"github.com/veasna/clinic/internal/domain/patient"
	"github.com/veasna/clinic/internal/domain/pharmacy"
	"github.com/veasna/clinic/internal/domain/record"
	"github.com/veasna/clinic/internal/domain/registration"
	"github.com/veasna/clinic/internal/domain/user"
	"github.com/veasna/clinic/internal/domain/visit"
	"github.com/veasna/clinic/internal/platform/apperr"
	"github.com/veasna/clinic/internal/platform/auth"
	"github.com/veasna/clinic/internal/platform/db"
	"github.com/veasna/clinic/internal/platform/export"
	"github.com/veasna/clinic/internal/platform/middleware"
	"github.com/veasna/clinic/migrations"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic-server",
		Short: "Mobile clinic patient-record API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			_, pool, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, migrations.Files, logger)
			if err := migrator.Up(cmd.Context()); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Println("migrations up to date")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			_, pool, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, migrations.Files, logger)
			statuses, err := migrator.Status(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%-30s %-10s %s\n", "VERSION", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status, appliedAt := "pending", ""
				if s.Applied {
					status = "applied"
					appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
				}
				fmt.Printf("%-30s %-10s %s\n", s.Version, status, appliedAt)
			}
			return nil
		},
	})

	return cmd
}

func newLogger() zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger
}

func setup(ctx context.Context) (*config.Config, *pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, pool, nil
}

func runServer() error {
	logger := newLogger()

	ctx := context.Background()
	cfg, pool, err := setup(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("startup failed")
		return err
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTLDays)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = apperr.ErrorHandler(logger, cfg.IsDev())

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID", "If-None-Match"},
	}))
	e.Use(auth.Middleware(issuer, cfg.StrictAuth()))

	api := e.Group("/api")
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	api.Use(limiter.Middleware())
	api.Use(auth.RequireAction(auth.AllowAll, "api"))

	// Repositories
	userRepo := user.NewPGRepository(pool)
	locationRepo := location.NewPGRepository(pool)
	patientRepo := patient.NewPGRepository(pool)
	visitRepo := visit.NewPGRepository(pool)
	recordRepo := record.NewPGRepository(pool)
	pharmacyRepo := pharmacy.NewPGRepository(pool)

	// Services
	userSvc := user.NewService(userRepo, issuer, logger)
	locationSvc := location.NewService(locationRepo, logger)
	patientSvc := patient.NewService(patientRepo, logger)
	recordSvc := record.NewService(recordRepo, logger)
	visitSvc := visit.NewService(visitRepo, patientRepo, recordRepo, logger)
	pharmacySvc := pharmacy.NewService(pharmacyRepo, logger)
	txRunner := func(ctx context.Context, fn func(ctx context.Context) error) error {
		return db.WithTx(ctx, pool, fn)
	}
	registrationSvc := registration.NewService(txRunner, patientSvc, visitSvc, recordSvc, logger)

	// Handlers
	user.NewHandler(userSvc).Register(api)
	location.NewHandler(locationSvc).Register(api)
	patient.NewHandler(patientSvc).Register(api)
	visit.NewHandler(visitSvc).Register(api)
	record.NewHandler(recordSvc).Register(api)
	registration.NewHandler(registrationSvc).Register(api)
	pharmacy.NewHandler(pharmacySvc).Register(api)
	export.NewHandler(recordSvc).Register(api)

	e.GET("/health", func(c echo.Context) error {
		pingCtx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "degraded", "version": version, "database": "unreachable",
			})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "version": version})
	})

	// Serve in the background so signals can drive a graceful shutdown.
	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(":" + cfg.Port)
	}()
	logger.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("server error")
			return err
		}
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("forced shutdown")
			return err
		}
	}

	logger.Info().Msg("server stopped")
	return nil
}
