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

	"github.com/hms/hms/internal/config"
	"github.com/hms/hms/internal/domain/audit"
	"github.com/hms/hms/internal/domain/branch"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/domain/user"
	"github.com/hms/hms/internal/lifecycle"
	"github.com/hms/hms/internal/platform/auth"
	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hms-server",
		Short: "Hospital entity lifecycle API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

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

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			return withPool(func(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) error {
				if dir == "" {
					dir = cfg.MigrationsDir
				}
				count, err := db.NewMigrator(pool, dir).Up(ctx)
				if err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}
				fmt.Printf("Applied %d migration(s).\n", count)
				return nil
			})
		},
	}
	upCmd.Flags().String("dir", "", "Path to migrations directory (default from config)")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			return withPool(func(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) error {
				if dir == "" {
					dir = cfg.MigrationsDir
				}
				statuses, err := db.NewMigrator(pool, dir).Status(ctx)
				if err != nil {
					return fmt.Errorf("failed to get migration status: %w", err)
				}
				fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
				for _, s := range statuses {
					status, appliedAt := "pending", ""
					if s.Applied {
						status = "applied"
						if s.AppliedAt != nil {
							appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
						}
					}
					fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
				}
				return nil
			})
		},
	}
	statusCmd.Flags().String("dir", "", "Path to migrations directory (default from config)")
	cmd.AddCommand(statusCmd)

	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert a demo hospital, branch and admin accounts (development)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) error {
				if !cfg.IsDev() {
					return fmt.Errorf("seed is only available in development")
				}

				var hospitalID int64
				err := pool.QueryRow(ctx, `
					INSERT INTO hospital (name) VALUES ('General Hospital')
					ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
					RETURNING id`).Scan(&hospitalID)
				if err != nil {
					return fmt.Errorf("seed hospital: %w", err)
				}

				branchRepo := branch.NewRepo(pool)
				if err := branch.NewService(branchRepo).Create(ctx, &branch.Branch{
					HospitalID: hospitalID,
					Name:       "Westside Clinic",
				}); err != nil {
					return fmt.Errorf("seed branch: %w", err)
				}

				userRepo := user.NewRepo(pool)
				userSvc := user.NewService(userRepo)
				for _, u := range []user.AppUser{
					{HospitalID: hospitalID, Email: "root@example.org", FullName: "Root Admin", RoleID: int(lifecycle.RoleGlobalAdmin)},
					{HospitalID: hospitalID, Email: "admin@example.org", FullName: "Hospital Admin", RoleID: int(lifecycle.RoleHospitalAdmin)},
				} {
					acct := u
					if err := userSvc.Create(ctx, &acct); err != nil {
						return fmt.Errorf("seed user %s: %w", u.Email, err)
					}
				}

				fmt.Println("Seeded demo hospital, branch and admin accounts.")
				return nil
			})
		},
	}
}

// withPool loads config, opens the pool, runs fn and closes the pool. The
// one-shot commands (migrate, seed) all share this shape.
func withPool(fn func(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return err
	}
	defer pool.Close()
	return fn(ctx, cfg, pool)
}

func runServer() error {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	if cfg.IsDev() {
		e.Use(auth.DevAuthMiddleware())
	} else {
		e.Use(auth.JWTMiddleware(auth.JWTConfig{
			Issuer:     cfg.AuthIssuer,
			Audience:   cfg.AuthAudience,
			SigningKey: []byte(cfg.AuthSigningSecret),
		}))
	}

	e.GET("/health", db.HealthHandler(pool))

	// Repositories double as the engine's entity stores.
	patientRepo := patient.NewRepo(pool)
	userRepo := user.NewRepo(pool)
	branchRepo := branch.NewRepo(pool)
	auditRepo := audit.NewRepo(pool)

	engine := lifecycle.NewEngine(map[lifecycle.EntityKind]lifecycle.EntityStore{
		lifecycle.KindPatient: patientRepo,
		lifecycle.KindUser:    userRepo,
		lifecycle.KindBranch:  branchRepo,
	}, auditRepo, logger)

	apiV1 := e.Group("/api/v1")
	patient.NewHandler(patient.NewService(patientRepo), engine).RegisterRoutes(apiV1)
	user.NewHandler(user.NewService(userRepo), engine).RegisterRoutes(apiV1)
	branch.NewHandler(branch.NewService(branchRepo), engine).RegisterRoutes(apiV1)
	audit.NewHandler(audit.NewService(auditRepo)).RegisterRoutes(apiV1)

	// Start and wait for shutdown signal.
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()
	logger.Info().Str("port", cfg.Port).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

func newLogger() zerolog.Logger {
	if os.Getenv("ENV") == "" || os.Getenv("ENV") == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
