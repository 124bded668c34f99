package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	contactservice "estatehub/contexts/engagement/contact-service"
	contactpostgres "estatehub/contexts/engagement/contact-service/adapters/postgres"
	notificationservice "estatehub/contexts/engagement/notification-service"
	notificationpostgres "estatehub/contexts/engagement/notification-service/adapters/postgres"
	notificationworkers "estatehub/contexts/engagement/notification-service/application/workers"
	notificationports "estatehub/contexts/engagement/notification-service/ports"
	accountservice "estatehub/contexts/identity-access/account-service"
	accountpostgres "estatehub/contexts/identity-access/account-service/adapters/postgres"
	"estatehub/contexts/identity-access/account-service/adapters/security"
	accountqueries "estatehub/contexts/identity-access/account-service/application/queries"
	propertyservice "estatehub/contexts/listings/property-service"
	propertypostgres "estatehub/contexts/listings/property-service/adapters/postgres"
	contractsv1 "estatehub/contracts/gen/events/v1"
	"estatehub/internal/platform/config"
	"estatehub/internal/platform/httpserver"
	"estatehub/internal/platform/mailer"
	"estatehub/internal/platform/messaging"
	"estatehub/internal/platform/observability"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type EventBus interface {
	Publish(ctx context.Context, topic string, event contractsv1.Envelope) error
	Subscribe(ctx context.Context, topic string, consumerGroup string, handler func(context.Context, contractsv1.Envelope) error) error
	Close() error
}

// Wiring is everything BuildModules needs. Zero BcryptCost uses the library default.
type Wiring struct {
	Storage           *Storage
	Bus               EventBus
	Tokens            *security.JWT
	FanoutConcurrency int
	BcryptCost        int
	Logger            *slog.Logger
}

// BuildModules connects the four contexts through their ports.
func BuildModules(w Wiring) httpserver.Modules {
	admins := accountqueries.QueryUseCase{Repository: w.Storage.Accounts, Logger: w.Logger}

	notifications := notificationservice.NewModule(notificationservice.Dependencies{
		Repository:  w.Storage.Notifications,
		Admins:      admins,
		Publisher:   w.Bus,
		Clock:       notificationpostgres.SystemClock{},
		IDGen:       notificationpostgres.UUIDGenerator{},
		Concurrency: w.FanoutConcurrency,
		Logger:      w.Logger,
	})

	properties := propertyservice.NewModule(propertyservice.Dependencies{
		Repository: w.Storage.Properties,
		Images:     w.Storage.Images,
		Notifier:   propertyNotifier{notify: notifications.NotifyAdmins},
		Owners:     ownerDirectory{accounts: w.Storage.Accounts},
		Publisher:  w.Bus,
		Clock:      propertypostgres.SystemClock{},
		IDGen:      propertypostgres.UUIDGenerator{},
		Logger:     w.Logger,
	})

	accounts := accountservice.NewModule(accountservice.Dependencies{
		Repository: w.Storage.Accounts,
		Hasher:     security.BcryptHasher{Cost: w.BcryptCost},
		Issuer:     w.Tokens,
		Verifier:   w.Tokens,
		Properties: properties.Handler.DeleteProperty,
		Clock:      accountpostgres.SystemClock{},
		IDGen:      accountpostgres.UUIDGenerator{},
		Logger:     w.Logger,
	})

	contacts := contactservice.NewModule(contactservice.Dependencies{
		Repository: w.Storage.Contacts,
		Notifier:   contactNotifier{notify: notifications.NotifyAdmins},
		Clock:      contactpostgres.SystemClock{},
		IDGen:      contactpostgres.UUIDGenerator{},
		Logger:     w.Logger,
	})

	return httpserver.Modules{
		Accounts:      accounts,
		Properties:    properties,
		Notifications: notifications,
		Contacts:      contacts,
	}
}

// NewEmailRelay mails every admin notification published on bus.
func NewEmailRelay(storage *Storage, bus EventBus, mail notificationports.Mailer, logger *slog.Logger) notificationworkers.EmailRelay {
	return notificationworkers.EmailRelay{
		Subscriber: bus,
		Recipients: recipientDirectory{accounts: storage.Accounts},
		Mailer:     mail,
		Logger:     logger,
	}
}

type APIApp struct {
	server         *httpserver.Server
	storage        *Storage
	bus            EventBus
	relay          *notificationworkers.EmailRelay
	shutdownTracer func(context.Context) error
	logger         *slog.Logger
}

type WorkerApp struct {
	storage *Storage
	bus     EventBus
	relay   notificationworkers.EmailRelay
	logger  *slog.Logger
}

func BuildAPI(ctx context.Context) (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := NewLogger(cfg.LogLevel, os.Stdout).With("service", cfg.ServiceName, "process", "api")

	shutdownTracer, err := observability.InitTracer(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		return nil, err
	}
	storage, err := OpenStorage(cfg, logger)
	if err != nil {
		_ = shutdownTracer(ctx)
		return nil, err
	}
	bus, err := openBus(cfg, logger)
	if err != nil {
		_ = storage.Close()
		_ = shutdownTracer(ctx)
		return nil, err
	}
	tokens, err := security.NewJWT(cfg.JWTSecret, cfg.JWTTTL, cfg.ServiceName)
	if err != nil {
		_ = bus.Close()
		_ = storage.Close()
		_ = shutdownTracer(ctx)
		return nil, err
	}

	modules := BuildModules(Wiring{
		Storage:           storage,
		Bus:               bus,
		Tokens:            tokens,
		FanoutConcurrency: cfg.FanoutConcurrency,
		Logger:            logger,
	})
	server := httpserver.New(modules, logger, normalizeAddr(cfg.HTTPPort), httpserver.Options{
		CORSOrigins:   cfg.CORSOrigins,
		SecureCookies: cfg.CookieSecure,
	})

	app := &APIApp{
		server:         server,
		storage:        storage,
		bus:            bus,
		shutdownTracer: shutdownTracer,
		logger:         logger,
	}
	// Without a broker no worker process can see the events, so mail in-process.
	if _, inProcess := bus.(*messaging.Bus); inProcess {
		relay := NewEmailRelay(storage, bus, openMailer(cfg, logger), logger)
		app.relay = &relay
	}
	return app, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := NewLogger(cfg.LogLevel, os.Stdout).With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.AMQPURL) == "" {
		return nil, errors.New("AMQP_URL is required for the worker process")
	}

	storage, err := OpenStorage(cfg, logger)
	if err != nil {
		return nil, err
	}
	bus, err := messaging.NewAMQP(cfg.AMQPURL, cfg.AMQPExchange, logger)
	if err != nil {
		_ = storage.Close()
		return nil, err
	}
	return &WorkerApp{
		storage: storage,
		bus:     bus,
		relay:   NewEmailRelay(storage, bus, openMailer(cfg, logger), logger),
		logger:  logger,
	}, nil
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (a *APIApp) Run(ctx context.Context) error {
	if a.relay != nil {
		if err := a.relay.Start(ctx); err != nil {
			return err
		}
	}
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"storage", a.storage.Driver,
	)

	errCh := make(chan error, 1)
	go func() { errCh <- a.server.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return a.server.Shutdown(shutdownCtx)
}

func (a *APIApp) Close() error {
	var errs []error
	if a.bus != nil {
		errs = append(errs, a.bus.Close())
	}
	if a.storage != nil {
		errs = append(errs, a.storage.Close())
	}
	if a.shutdownTracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		errs = append(errs, a.shutdownTracer(ctx))
	}
	return errors.Join(errs...)
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if err := w.relay.Start(ctx); err != nil {
		return err
	}
	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)
	<-ctx.Done()
	return nil
}

func (w *WorkerApp) Close() error {
	var errs []error
	if w.bus != nil {
		errs = append(errs, w.bus.Close())
	}
	if w.storage != nil {
		errs = append(errs, w.storage.Close())
	}
	return errors.Join(errs...)
}

// NewLogger builds the process-wide JSON logger.
func NewLogger(level string, out io.Writer) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: lvl}))
}

func openBus(cfg config.Config, logger *slog.Logger) (EventBus, error) {
	if strings.TrimSpace(cfg.AMQPURL) == "" {
		return messaging.NewBus(0, logger), nil
	}
	bus, err := messaging.NewAMQP(cfg.AMQPURL, cfg.AMQPExchange, logger)
	if err != nil {
		return nil, fmt.Errorf("open event bus: %w", err)
	}
	return bus, nil
}

func openMailer(cfg config.Config, logger *slog.Logger) notificationports.Mailer {
	if !cfg.MailEnabled() {
		return mailer.Log{Logger: logger}
	}
	smtp, err := mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPSender, logger)
	if err != nil {
		logger.Warn("smtp mailer unavailable, logging mail instead",
			"event", "bootstrap_mailer_fallback",
			"module", "internal/app/bootstrap",
			"layer", "platform",
			"error", err.Error(),
		)
		return mailer.Log{Logger: logger}
	}
	return smtp
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
