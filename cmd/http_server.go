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
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/felixonline247/opolo-cbt-app/internal"
	"github.com/felixonline247/opolo-cbt-app/internal/auth"
	authPostgres "github.com/felixonline247/opolo-cbt-app/internal/auth/postgres"
	"github.com/felixonline247/opolo-cbt-app/internal/client"
	clientPostgres "github.com/felixonline247/opolo-cbt-app/internal/client/postgres"
	"github.com/felixonline247/opolo-cbt-app/internal/core/events"
	"github.com/felixonline247/opolo-cbt-app/internal/payroll"
	payrollPostgres "github.com/felixonline247/opolo-cbt-app/internal/payroll/postgres"
	"github.com/felixonline247/opolo-cbt-app/internal/permission"
	"github.com/felixonline247/opolo-cbt-app/internal/role"
	rolePostgres "github.com/felixonline247/opolo-cbt-app/internal/role/postgres"
	"github.com/felixonline247/opolo-cbt-app/internal/sales"
	salesPostgres "github.com/felixonline247/opolo-cbt-app/internal/sales/postgres"
	"github.com/felixonline247/opolo-cbt-app/internal/settings"
	settingsPostgres "github.com/felixonline247/opolo-cbt-app/internal/settings/postgres"
	"github.com/felixonline247/opolo-cbt-app/internal/staff"
	staffPostgres "github.com/felixonline247/opolo-cbt-app/internal/staff/postgres"
	"github.com/felixonline247/opolo-cbt-app/internal/transport/rest"
	"github.com/felixonline247/opolo-cbt-app/pkg/logger"
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
	Gorm   *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger

	AuthHandler     *auth.Handler
	StaffHandler    *staff.Handler
	RoleHandler     *role.Handler
	SalesHandler    *sales.Handler
	PayrollHandler  *payroll.Handler
	SettingsHandler *settings.Handler
	ClientHandler   *client.Handler
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB,
		deps.AuthHandler, deps.StaffHandler, deps.RoleHandler,
		deps.SalesHandler, deps.PayrollHandler, deps.SettingsHandler,
		deps.ClientHandler, deps.Logger)

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

	logger.Init(os.Getenv("APP_ENV"))
	lg := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm connection: %w", err)
	}

	// Repositories
	staffRepo := staffPostgres.NewStaffRepository(gormDB)
	roleRepo := rolePostgres.NewRoleRepository(gormDB)
	saleRepo := salesPostgres.NewSaleRepository(gormDB)
	payoutRepo := payrollPostgres.NewPayoutRepository(gormDB)
	settingsRepo := settingsPostgres.NewSettingsRepository(gormDB, config.Payroll.BusinessName, config.Payroll.DefaultRate())
	presetRepo := settingsPostgres.NewPresetRepository(gormDB)
	clientRepo := clientPostgres.NewClientRepository(gormDB)
	authRepo := authPostgres.NewRepository(gormDB)

	// Event bus with an audit log subscriber for payroll activity.
	bus := events.NewEventBus(lg)
	bus.Subscribe(events.EventTypePayoutRecorded, func(ctx context.Context, event events.Event) error {
		lg.Info("audit: payout recorded", "event_id", event.EventID(), "payload", event.Payload())
		return nil
	})
	bus.Subscribe(events.EventTypeStrategyChanged, func(ctx context.Context, event events.Event) error {
		lg.Info("audit: commission strategy changed", "event_id", event.EventID(), "payload", event.Payload())
		return nil
	})

	// Services
	resolver := permission.NewResolver(authRepo, lg)
	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authRepo, tokenGen, resolver, lg)
	staffService := staff.NewService(staffRepo, config.Security.DefaultStaffPassword, config.Security.BCryptCost, lg)
	roleService := role.NewService(roleRepo, lg)
	salesService := sales.NewService(saleRepo, staffRepo, lg)
	settingsService := settings.NewService(settingsRepo, presetRepo, lg)
	clientService := client.NewService(clientRepo, lg)
	payrollService := payroll.NewService(staffRepo, salesService, settingsService, payoutRepo, bus, config.Payroll.BusinessName, lg)

	return &Dependencies{
		Config: config,
		Logger: lg,
		DB:     db,
		Gorm:   gormDB,
		Router: chi.NewRouter(),

		AuthHandler:     auth.NewHandler(authService),
		StaffHandler:    staff.NewHandler(staffService),
		RoleHandler:     role.NewHandler(roleService),
		SalesHandler:    sales.NewHandler(salesService),
		PayrollHandler:  payroll.NewHandler(payrollService),
		SettingsHandler: settings.NewHandler(settingsService),
		ClientHandler:   client.NewHandler(clientService),
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
