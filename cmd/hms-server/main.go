package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hms/hms/internal/config"
	"github.com/hms/hms/internal/domain/appointment"
	"github.com/hms/hms/internal/domain/bed"
	"github.com/hms/hms/internal/domain/billing"
	"github.com/hms/hms/internal/domain/catalog"
	"github.com/hms/hms/internal/domain/doctor"
	"github.com/hms/hms/internal/domain/identity"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/platform/auth"
	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/platform/middleware"
	"github.com/hms/hms/internal/platform/reporting"
)

// BedAllocatorAdapter adapts the bed service to the patient package's
// allocator interface, avoiding a circular import between the two domains.
type BedAllocatorAdapter struct {
	svc *bed.Service
}

func NewBedAllocatorAdapter(svc *bed.Service) *BedAllocatorAdapter {
	return &BedAllocatorAdapter{svc: svc}
}

// Allocate implements patient.BedAllocator.
func (a *BedAllocatorAdapter) Allocate(ctx context.Context, patientID, bedTypeID uuid.UUID) (*patient.AllocationResult, error) {
	res, err := a.svc.Allocate(ctx, patientID, bedTypeID)
	if err != nil {
		return nil, err
	}
	return &patient.AllocationResult{Assigned: res.Assigned, BedID: res.BedID}, nil
}

// Release implements patient.BedAllocator.
func (a *BedAllocatorAdapter) Release(ctx context.Context, patientID uuid.UUID) (bool, error) {
	return a.svc.Release(ctx, patientID)
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "hms-server",
		Short: "Hospital Management API Server",
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
		Short: "Start the hospital management API server",
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

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns, cfg.StatementTimeout())
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns, cfg.StatementTimeout())
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns, cfg.StatementTimeout())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.RequestTimeout(30 * time.Second))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	jwtCfg := auth.JWTConfig{Secret: []byte(cfg.JWTSecret), TokenTTL: cfg.TokenTTL()}

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// Public API (no token)
	publicAPI := e.Group("/api/v1")

	// Protected API
	apiV1 := e.Group("/api/v1")
	if cfg.IsDev() && cfg.JWTSecret == "" {
		logger.Warn().Msg("JWT_SECRET not set; running with permissive dev auth")
		apiV1.Use(auth.DevAuthMiddleware())
	} else {
		apiV1.Use(auth.JWTMiddleware(jwtCfg))
	}

	// -- Register Domain Handlers --

	// Identity domain
	identityRepo := identity.NewRepo(pool)
	identitySvc := identity.NewService(identityRepo, jwtCfg, logger)
	identityHandler := identity.NewHandler(identitySvc)
	identityHandler.RegisterPublicRoutes(publicAPI)
	identityHandler.RegisterRoutes(apiV1)

	// Catalog domain
	catalogRepo := catalog.NewRepo(pool)
	catalogSvc := catalog.NewService(catalogRepo)
	catalogHandler := catalog.NewHandler(catalogSvc)
	catalogHandler.RegisterRoutes(apiV1)

	// Doctor domain
	doctorRepo := doctor.NewRepo(pool)
	doctorSvc := doctor.NewService(doctorRepo, logger)
	doctorHandler := doctor.NewHandler(doctorSvc)
	doctorHandler.RegisterRoutes(apiV1)

	// Bed domain
	bedRepo := bed.NewRepo(pool)
	bedSvc := bed.NewService(bedRepo, logger)
	bedHandler := bed.NewHandler(bedSvc)
	bedHandler.RegisterRoutes(apiV1)

	// Patient domain
	patientRepo := patient.NewRepo(pool)
	patientSvc := patient.NewService(patientRepo, NewBedAllocatorAdapter(bedSvc), logger)
	patientHandler := patient.NewHandler(patientSvc)
	patientHandler.RegisterRoutes(apiV1)

	// Billing domain
	billingRepo := billing.NewRepo(pool)
	billingSvc := billing.NewService(billingRepo, bedSvc, cfg.ServiceCharge, logger)
	billingHandler := billing.NewHandler(billingSvc)
	billingHandler.RegisterRoutes(apiV1)

	// Appointment domain
	apptRepo := appointment.NewRepo(pool)
	apptSvc := appointment.NewService(apptRepo, logger)
	apptHandler := appointment.NewHandler(apptSvc)
	apptHandler.RegisterRoutes(apiV1)

	// Dashboard reporting
	reportHandler := reporting.NewHandler(pool)
	reportHandler.RegisterRoutes(apiV1)

	// Start server with graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		return err
	}
	return nil
}
