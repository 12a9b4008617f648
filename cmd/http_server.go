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
	"github.com/sobrinN/DASH.rh/internal"
	"github.com/sobrinN/DASH.rh/internal/auth"
	authSqlite "github.com/sobrinN/DASH.rh/internal/auth/sqlite"
	"github.com/sobrinN/DASH.rh/internal/company"
	companySqlite "github.com/sobrinN/DASH.rh/internal/company/sqlite"
	"github.com/sobrinN/DASH.rh/internal/employee"
	employeeSqlite "github.com/sobrinN/DASH.rh/internal/employee/sqlite"
	"github.com/sobrinN/DASH.rh/internal/talentrequest"
	talentRequestSqlite "github.com/sobrinN/DASH.rh/internal/talentrequest/sqlite"
	"github.com/sobrinN/DASH.rh/internal/transport/rest"
	"github.com/sobrinN/DASH.rh/pkg/logger"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	gormSqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

// Dependencies holds everything the server needs, constructed once at
// startup and passed explicitly. No component reads ambient globals.
type Dependencies struct {
	Config *internal.Config
	DB     *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := setupRoutes(deps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up routes: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr, "driver", deps.Config.Database.DriverOrDefault())

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
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
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if sqlDB, err := deps.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				deps.Logger.Error("database close error", "error", err)
			}
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func setupRoutes(deps *Dependencies) error {
	lg := deps.Logger

	tokenGen := auth.NewJWTTokenGenerator(deps.Config.Security.JWTSecret, deps.Config.Security.TokenDurationOrDefault())

	companyRepo := companySqlite.NewCompanyRepository(deps.DB)
	companyService := company.NewService(companyRepo, lg)

	userRepo := authSqlite.NewUserRepository(deps.DB)
	authService := auth.NewService(userRepo, companyService, tokenGen, deps.Config.Security.BCryptCost, lg)
	authHandler := auth.NewHandler(authService)

	employeeRepo := employeeSqlite.NewEmployeeRepository(deps.DB)
	employeeService := employee.NewService(employeeRepo, lg)
	employeeHandler := employee.NewHandler(employeeService)

	talentRequestRepo := talentRequestSqlite.NewTalentRequestRepository(deps.DB)
	talentRequestService := talentrequest.NewService(talentRequestRepo, lg)
	talentRequestHandler := talentrequest.NewHandler(talentRequestService)

	sqlDB, err := deps.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}

	rest.RegisterAllRoutes(deps.Router, deps.Config, sqlDB, authHandler, employeeHandler, talentRequestHandler, lg)
	return nil
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Format, config.Observability.Logging.Level)

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.LoggerWrapper(),
		DB:     db,
		Router: chi.NewRouter(),
	}, nil
}

// initDB opens the store. The default is the embedded sqlite file; a
// postgres DSN is supported through the same repositories.
func initDB(cfg internal.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Warn),
		TranslateError: true,
	}

	var (
		db  *gorm.DB
		err error
	)

	switch cfg.DriverOrDefault() {
	case internal.DriverPostgres:
		// Connect through sqlx over the pgx stdlib driver, then hand the
		// verified connection to gorm.
		var conn *sqlx.DB
		conn, err = sqlx.Connect("pgx", cfg.Source)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres connection: %w", err)
		}
		conn.SetMaxIdleConns(cfg.MaxIdleConns)
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
		conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

		db, err = gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: conn.DB}), gormCfg)
	default:
		db, err = gorm.Open(gormSqlite.Open(cfg.Source), gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
