package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kprasanna/staff-management/internal"
	"github.com/kprasanna/staff-management/internal/auth"
	authPostgres "github.com/kprasanna/staff-management/internal/auth/postgres"
	"github.com/kprasanna/staff-management/internal/salarycategory"
	salarycategoryPostgres "github.com/kprasanna/staff-management/internal/salarycategory/postgres"
	"github.com/kprasanna/staff-management/internal/staff"
	staffPostgres "github.com/kprasanna/staff-management/internal/staff/postgres"
	"github.com/kprasanna/staff-management/internal/transport/rest"
	"github.com/kprasanna/staff-management/internal/user"
	userPostgres "github.com/kprasanna/staff-management/internal/user/postgres"
	"github.com/kprasanna/staff-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger

	AuthHandler     *auth.Handler
	UserHandler     *user.Handler
	StaffHandler    *staff.Handler
	CategoryHandler *salarycategory.Handler
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.AuthHandler, deps.UserHandler, deps.StaffHandler, deps.CategoryHandler, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.InitWith(os.Getenv("APP_ENV"), config.Observability.Logging.Level, config.Observability.Logging.Format)
	lg := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm connection: %w", err)
	}

	// Auth wiring: hasher, limiter, session store, guard, then services.
	repo := authPostgres.NewRepository(gormDB)
	hasher := auth.NewHasher(config.Security.BCryptCost)
	limiter := auth.NewRateLimiter(config.Security.LoginMaxAttempts, config.Security.LoginLockout)
	sessions := auth.NewSessionStore(repo, config.Security.SessionTTL)
	guard := auth.NewGuard(sessions, lg)
	authService := auth.NewService(repo, sessions, hasher, limiter, config.Security.NotFoundDelay, lg)
	authHandler := auth.NewHandler(authService, guard)

	userRepo := userPostgres.NewUserRepository(gormDB)
	userService := user.NewService(userRepo, hasher, sessions, guard, lg)
	userHandler := user.NewHandler(userService)

	staffRepo := staffPostgres.NewStaffRepository(gormDB)
	staffService := staff.NewService(staffRepo, lg)
	staffHandler := staff.NewHandler(staffService)

	categoryRepo := salarycategoryPostgres.NewSalaryCategoryRepository(gormDB)
	categoryService := salarycategory.NewService(categoryRepo, lg)
	categoryHandler := salarycategory.NewHandler(categoryService)

	return &Dependencies{
		Config:          config,
		Logger:          lg,
		DB:              db,
		GormDB:          gormDB,
		Router:          chi.NewRouter(),
		AuthHandler:     authHandler,
		UserHandler:     userHandler,
		StaffHandler:    staffHandler,
		CategoryHandler: categoryHandler,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
