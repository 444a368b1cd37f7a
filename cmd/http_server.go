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

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/voltmover/crm/internal"
	"github.com/voltmover/crm/internal/auth"
	authPostgres "github.com/voltmover/crm/internal/auth/postgres"
	"github.com/voltmover/crm/internal/contact"
	contactPostgres "github.com/voltmover/crm/internal/contact/postgres"
	"github.com/voltmover/crm/internal/dashboard"
	dashboardPostgres "github.com/voltmover/crm/internal/dashboard/postgres"
	"github.com/voltmover/crm/internal/deal"
	dealPostgres "github.com/voltmover/crm/internal/deal/postgres"
	"github.com/voltmover/crm/internal/task"
	taskPostgres "github.com/voltmover/crm/internal/task/postgres"
	"github.com/voltmover/crm/internal/transport"
	"github.com/voltmover/crm/internal/transport/rest"
	"github.com/voltmover/crm/internal/user"
	userPostgres "github.com/voltmover/crm/internal/user/postgres"
	"github.com/voltmover/crm/pkg/logger"
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
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

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
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Logging.Level, config.Logging.Format)
	appLogger := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	baseHandler := transport.NewBaseHandler(appLogger)

	tokenGenerator := auth.NewJWTTokenGenerator(config.Security.JWTSecret, config.Security.AccessTokenDuration)
	authService := auth.NewService(authPostgres.NewAuthRepository(gormDB), tokenGenerator, config.Security.BCryptCost, appLogger)
	authHandler := auth.NewHandler(baseHandler, authService)

	userService := user.NewService(userPostgres.NewUserRepository(gormDB), authService, appLogger)
	contactService := contact.NewService(contactPostgres.NewContactRepository(gormDB), appLogger)
	dealService := deal.NewService(dealPostgres.NewDealRepository(gormDB), appLogger)
	taskService := task.NewService(taskPostgres.NewTaskRepository(gormDB), appLogger)
	dashboardService := dashboard.NewService(dashboardPostgres.NewDashboardRepository(gormDB), appLogger)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, rest.Handlers{
		Auth:      authHandler,
		User:      user.NewHandler(baseHandler, userService),
		Contact:   contact.NewHandler(baseHandler, contactService),
		Deal:      deal.NewHandler(baseHandler, dealService),
		Task:      task.NewHandler(baseHandler, taskService),
		Dashboard: dashboard.NewHandler(baseHandler, dashboardService),
	}, config.Server.AllowedOrigin, appLogger)

	return &Dependencies{
		Config: config,
		Logger: appLogger,
		DB:     db,
		Router: router,
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

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
