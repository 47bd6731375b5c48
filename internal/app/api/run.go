package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	catalogmemory "github.com/belandja/commerce-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/belandja/commerce-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/belandja/commerce-api/internal/domains/catalog/application"
	catalogports "github.com/belandja/commerce-api/internal/domains/catalog/ports"

	ordersdirectory "github.com/belandja/commerce-api/internal/domains/orders/adapters/directory"
	ordersmemory "github.com/belandja/commerce-api/internal/domains/orders/adapters/memory"
	ordersnotification "github.com/belandja/commerce-api/internal/domains/orders/adapters/notification"
	ordersobs "github.com/belandja/commerce-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/belandja/commerce-api/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/belandja/commerce-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/belandja/commerce-api/internal/domains/orders/application"
	ordersports "github.com/belandja/commerce-api/internal/domains/orders/ports"

	usersmemory "github.com/belandja/commerce-api/internal/domains/users/adapters/memory"
	userspostgres "github.com/belandja/commerce-api/internal/domains/users/adapters/persistence/postgres"
	usersapp "github.com/belandja/commerce-api/internal/domains/users/application"
	usersports "github.com/belandja/commerce-api/internal/domains/users/ports"

	"github.com/belandja/commerce-api/internal/platform/auth"
	"github.com/belandja/commerce-api/internal/platform/mail"
	"github.com/belandja/commerce-api/internal/platform/migrations"
	platformobservability "github.com/belandja/commerce-api/internal/platform/observability"
	platformpostgres "github.com/belandja/commerce-api/internal/platform/postgres"
	"github.com/belandja/commerce-api/internal/transport/httpapi"
)

// ServiceName identifies the API process in telemetry.
const ServiceName = "commerce-api"

// Run boots the commerce HTTP API with observability, repositories, and
// workflows wired.
func Run(ctx context.Context) error {
	instruments, shutdown, err := platformobservability.Init(ctx, ServiceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger
	cfg := LoadConfig()

	tokens, err := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return fmt.Errorf("failed to configure token manager: %w", err)
	}

	db, cleanupDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	var (
		catalogRepo catalogports.Repository
		inventory   catalogports.Inventory
		orderRepo   ordersports.Repository
		userRepo    usersports.Repository
	)
	if db != nil {
		pgCatalog := catalogpostgres.NewRepository(db)
		catalogRepo, inventory = pgCatalog, pgCatalog
		orderRepo = orderspostgres.NewRepository(db)
		userRepo = userspostgres.NewRepository(db)
	} else {
		memCatalog := catalogmemory.NewRepository()
		catalogRepo, inventory = memCatalog, memCatalog
		orderRepo = ordersmemory.NewRepository()
		userRepo = usersmemory.NewRepository()
	}

	catalogService := catalogapp.NewService(catalogRepo)
	userService := usersapp.NewService(userRepo, tokens)

	notifier := buildNotifier(cfg, logger)
	coreOrderService := ordersapp.NewService(orderRepo, inventory, ordersdirectory.NewUserDirectory(userRepo), notifier)
	orderService := ordersobs.New(
		coreOrderService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var orderWorkflows ordersports.WorkflowOrchestrator = ordersworkflows.NewInlineOrderWorkflows(orderService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = ordersworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace)))
	}

	handlers := httpapi.Handlers{
		OrderAPI:   httpapi.NewOrderAPI(orderService, orderWorkflows),
		CatalogAPI: httpapi.NewCatalogAPI(catalogService),
		UserAPI:    httpapi.NewUserAPI(userService),
	}

	router := httpapi.NewRouter(tokens, handlers)
	router.Use(otelgin.Middleware(ServiceName))
	addr := ":" + cfg.Port
	logger.Info("commerce API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("commerce API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildNotifier(cfg Config, logger *slog.Logger) ordersports.Notifier {
	if cfg.SMTPHost == "" {
		logger.Warn("SMTP_HOST not set, order confirmations will only be logged")
		return ordersnotification.NewLogNotifier(logger)
	}
	mailer, err := mail.NewSMTPMailer(mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})
	if err != nil {
		logger.Warn("SMTP misconfigured, order confirmations will only be logged", slog.String("error", err.Error()))
		return ordersnotification.NewLogNotifier(logger)
	}
	return ordersnotification.NewMailNotifier(mailer, cfg.CompanyName, cfg.ContactEmail)
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	address := os.Getenv("TEMPORAL_ADDRESS")
	if address == "" {
		address = client.DefaultHostPort
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	logger := workerlog.NewStructuredLogger(effectiveLogger(instruments))
	options := client.Options{
		HostPort:  address,
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    logger,
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
