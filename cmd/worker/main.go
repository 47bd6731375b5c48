package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	appapi "github.com/belandja/commerce-api/internal/app/api"
	catalogmemory "github.com/belandja/commerce-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/belandja/commerce-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogports "github.com/belandja/commerce-api/internal/domains/catalog/ports"
	ordersdirectory "github.com/belandja/commerce-api/internal/domains/orders/adapters/directory"
	ordersmemory "github.com/belandja/commerce-api/internal/domains/orders/adapters/memory"
	ordersnotification "github.com/belandja/commerce-api/internal/domains/orders/adapters/notification"
	ordersobs "github.com/belandja/commerce-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/belandja/commerce-api/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/belandja/commerce-api/internal/domains/orders/application"
	ordersports "github.com/belandja/commerce-api/internal/domains/orders/ports"
	usersmemory "github.com/belandja/commerce-api/internal/domains/users/adapters/memory"
	userspostgres "github.com/belandja/commerce-api/internal/domains/users/adapters/persistence/postgres"
	usersports "github.com/belandja/commerce-api/internal/domains/users/ports"
	orderactivities "github.com/belandja/commerce-api/internal/durable/temporal/activities/orders"
	orderworkflows "github.com/belandja/commerce-api/internal/durable/temporal/workflows/orders"
	"github.com/belandja/commerce-api/internal/platform/mail"
	"github.com/belandja/commerce-api/internal/platform/migrations"
	platformobservability "github.com/belandja/commerce-api/internal/platform/observability"
	platformpostgres "github.com/belandja/commerce-api/internal/platform/postgres"
)

func main() {
	ctx := context.Background()
	const serviceName = "commerce-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger
	cfg := appapi.LoadConfig()

	db, cleanupDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			logger.Error("failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	var (
		inventory catalogports.Inventory
		orderRepo ordersports.Repository
		userRepo  usersports.Repository
	)
	if db != nil {
		inventory = catalogpostgres.NewRepository(db)
		orderRepo = orderspostgres.NewRepository(db)
		userRepo = userspostgres.NewRepository(db)
	} else {
		logger.Warn("worker running against in-memory repositories; state is not shared with the API")
		inventory = catalogmemory.NewRepository()
		orderRepo = ordersmemory.NewRepository()
		userRepo = usersmemory.NewRepository()
	}

	notifier := buildNotifier(cfg, logger)
	coreOrderService := ordersapp.NewService(orderRepo, inventory, ordersdirectory.NewUserDirectory(userRepo), notifier)
	orderService := ordersobs.New(
		coreOrderService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	orderActivities := orderactivities.NewActivities(orderService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderPlacementTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderPlacementWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderPlacementWorkflowName})
	w.RegisterActivityWithOptions(orderActivities.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderPlacementTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildNotifier(cfg appapi.Config, logger *slog.Logger) ordersports.Notifier {
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

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
