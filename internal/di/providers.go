package di

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/wire"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lmittmann/tint"

	"github.com/invoicemanager/backend/internal/auth"
	"github.com/invoicemanager/backend/internal/config"
	"github.com/invoicemanager/backend/internal/domain"
	"github.com/invoicemanager/backend/internal/handler"
	"github.com/invoicemanager/backend/internal/middleware"
	"github.com/invoicemanager/backend/internal/repository"
	"github.com/invoicemanager/backend/internal/server"
	"github.com/invoicemanager/backend/internal/service"
	"github.com/invoicemanager/backend/internal/validation"
)

var ConfigSet = wire.NewSet(
	config.Load,
)

var LoggerSet = wire.NewSet(
	ProvideLogger,
)

var DatabaseSet = wire.NewSet(
	ProvideDatabase,
)

var RepositorySet = wire.NewSet(
	repository.NewPostgresUserRepository,
	wire.Bind(new(domain.UserRepository), new(*repository.PostgresUserRepository)),
	repository.NewPostgresSessionRepository,
	wire.Bind(new(domain.SessionRepository), new(*repository.PostgresSessionRepository)),
	repository.NewPostgresCustomerRepository,
	wire.Bind(new(domain.CustomerRepository), new(*repository.PostgresCustomerRepository)),
	repository.NewPostgresInvoiceRepository,
	wire.Bind(new(domain.InvoiceRepository), new(*repository.PostgresInvoiceRepository)),
)

var AuthSet = wire.NewSet(
	ProvideTokenService,
	wire.Bind(new(auth.TokenValidator), new(*auth.TokenService)),
	auth.NewGate,
	auth.NewAccountService,
	ProvideAuthMiddleware,
)

var ServiceSet = wire.NewSet(
	service.NewCustomerService,
	service.NewInvoiceService,
)

var HandlerSet = wire.NewSet(
	validation.New,
	ProvideHealthHandler,
	ProvideAuthHandler,
	ProvideCustomerHandler,
	ProvideInvoiceHandler,
)

var ServerSet = wire.NewSet(
	ProvideServerConfig,
	server.New,
)

var AppSet = wire.NewSet(
	ConfigSet,
	LoggerSet,
	DatabaseSet,
	RepositorySet,
	AuthSet,
	ServiceSet,
	HandlerSet,
	ServerSet,
	wire.Struct(new(Application), "*"),
)

const Version = "0.1.0"

func ProvideHealthHandler() *handler.HealthHandler {
	return handler.NewHealthHandler(Version)
}

func ProvideLogger(cfg *config.Config) *slog.Logger {
	var logLevel slog.Level
	switch cfg.Server.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	var h slog.Handler
	if cfg.Server.Env == "development" {
		h = tint.NewHandler(os.Stdout, &tint.Options{Level: logLevel})
	} else {
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	}

	return slog.New(h)
}

func ProvideDatabase(cfg *config.Config) (*sql.DB, func(), error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	cleanup := func() {
		db.Close()
	}

	return db, cleanup, nil
}

func ProvideTokenService(
	sessionRepo domain.SessionRepository,
	userRepo domain.UserRepository,
	cfg *config.Config,
	logger *slog.Logger,
) *auth.TokenService {
	return auth.NewTokenService(sessionRepo, userRepo, cfg.Auth.SessionTTL, logger)
}

func ProvideAuthMiddleware(gate *auth.Gate, logger *slog.Logger) *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(middleware.AuthMiddlewareConfig{
		Gate:   gate,
		Logger: logger,
	})
}

func ProvideAuthHandler(
	accounts *auth.AccountService,
	tokens *auth.TokenService,
	validator *validation.Validator,
	logger *slog.Logger,
) *handler.AuthHandler {
	return handler.NewAuthHandler(handler.AuthHandlerConfig{
		Accounts:  accounts,
		Tokens:    tokens,
		Validator: validator,
		Logger:    logger,
	})
}

func ProvideCustomerHandler(
	customers *service.CustomerService,
	validator *validation.Validator,
	logger *slog.Logger,
) *handler.CustomerHandler {
	return handler.NewCustomerHandler(handler.CustomerHandlerConfig{
		Customers: customers,
		Validator: validator,
		Logger:    logger,
	})
}

func ProvideInvoiceHandler(
	invoices *service.InvoiceService,
	customers *service.CustomerService,
	validator *validation.Validator,
	logger *slog.Logger,
) *handler.InvoiceHandler {
	return handler.NewInvoiceHandler(handler.InvoiceHandlerConfig{
		Invoices:  invoices,
		Customers: customers,
		Validator: validator,
		Logger:    logger,
	})
}

func ProvideServerConfig(cfg *config.Config) server.Config {
	return server.Config{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
		CorsOrigins:  cfg.Server.CorsOrigins,
	}
}

type Application struct {
	Config          *config.Config
	Logger          *slog.Logger
	DB              *sql.DB
	Server          *server.Server
	AuthMiddleware  *middleware.AuthMiddleware
	HealthHandler   *handler.HealthHandler
	AuthHandler     *handler.AuthHandler
	CustomerHandler *handler.CustomerHandler
	InvoiceHandler  *handler.InvoiceHandler
}
