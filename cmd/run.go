package cmd

import (
	"context"
	"fmt"
	"time"

	"pointdesk/api"
	"pointdesk/config"
	"pointdesk/database"
	"pointdesk/domain/interfaces"
	"pointdesk/domain/services"
	"pointdesk/infrastructure"
	"pointdesk/repository"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting pointdesk...")

	// Load configuration
	cfg := config.Get()
	if cfg.Environment == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	}

	// Initialize database connection
	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established successfully")

	// Initialize event publishing. Without NATS, events are logged and
	// win notifications go to the application log.
	var publisher interfaces.EventPublisher
	var notifier interfaces.NotificationSink
	var natsClient *infrastructure.NATSClient
	if cfg.NATSServers != "" {
		log.Info("Connecting to NATS...")
		natsClient = infrastructure.NewNATSClient(cfg.NATSServers)
		if err := natsClient.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}

		eventPublisher := infrastructure.NewNATSEventPublisher(natsClient)
		if err := eventPublisher.EnsureEventStream(); err != nil {
			return fmt.Errorf("failed to ensure event stream: %w", err)
		}
		natsNotifier := infrastructure.NewNATSNotifier(natsClient)
		if err := natsNotifier.EnsureNotificationStream(); err != nil {
			return fmt.Errorf("failed to ensure notification stream: %w", err)
		}
		publisher = eventPublisher
		notifier = natsNotifier
	} else {
		log.Warn("NATS_SERVERS not set, events will not be published")
		publisher = infrastructure.NewNoopEventPublisher()
		notifier = infrastructure.NewLogNotifier()
	}

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, publisher)

	// Initialize collaborators
	gate := infrastructure.NewStaticPermissionGate(cfg)
	audit := infrastructure.NewAuditLogger()
	clock := infrastructure.SystemClock()

	// Initialize services
	log.Info("Initializing services...")
	memberService := services.NewMemberService(uowFactory)
	ledgerService := services.NewLedgerService(uowFactory, audit, clock)
	approvalService := services.NewApprovalService(ledgerService, gate)
	orderService := services.NewOrderService(uowFactory, audit, clock)
	gameService := services.NewGameService(uowFactory, audit, clock)
	aliasCache := services.NewTeamAliasCache(uowFactory, clock, cfg.TeamAliasTTL)
	settlementService := services.NewSettlementService(uowFactory, gate, notifier, audit, aliasCache, clock)
	log.Info("Services initialized successfully")

	// Initialize HTTP server
	handlers := api.NewHandlers(memberService, ledgerService, approvalService, orderService, gameService, settlementService)
	server := api.NewServer(cfg.HTTPAddr, handlers)

	serverErr := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("HTTP server listening")
		serverErr <- server.ListenAndServe()
	}()

	log.Infof("pointdesk is running in %s mode...", cfg.Environment)
	select {
	case err := <-serverErr:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
	}

	// Cleanup resources
	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Error shutting down HTTP server")
	}

	if natsClient != nil {
		natsClient.Close()
	}

	log.Info("Closing database connection...")
	db.Close()

	log.Info("Shutdown completed")
	return nil
}
