// Package app assembles the console's services and HTTP surface.
package app

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/flo-mobility/admin-console/internal/api/http"
	"github.com/flo-mobility/admin-console/internal/api/http/handlers"
	"github.com/flo-mobility/admin-console/internal/auth"
	"github.com/flo-mobility/admin-console/internal/config"
	"github.com/flo-mobility/admin-console/internal/domain"
	"github.com/flo-mobility/admin-console/internal/events"
	"github.com/flo-mobility/admin-console/internal/floapi"
	"github.com/flo-mobility/admin-console/internal/observability"
	"github.com/flo-mobility/admin-console/internal/persistence"
	"github.com/flo-mobility/admin-console/internal/querycache"
	"github.com/flo-mobility/admin-console/internal/repository"
	"github.com/flo-mobility/admin-console/internal/service"
	"github.com/flo-mobility/admin-console/internal/session"
	"github.com/flo-mobility/admin-console/internal/worker"
)

const eventQueueSize = 256

// Options carries the process-wide dependencies. Postgres, Redis and
// KafkaWriter are optional.
type Options struct {
	Config      *config.Config
	Logger      *zap.Logger
	Metrics     *observability.Metrics
	Postgres    *persistence.Postgres
	Redis       *persistence.Redis
	KafkaWriter service.MessageWriter
}

// App is the assembled console.
type App struct {
	Fiber  *fiber.App
	worker *worker.EventWorker
	kafka  *service.KafkaPublisher
	logger *zap.Logger
}

// New wires stores, services, handlers and routes.
func New(opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		cacheStore     querycache.Store
		sessionBackend session.Backend
	)
	if client := opts.Redis.Handle(); client != nil {
		cacheStore = querycache.NewRedisStore(client)
		sessionBackend = session.NewRedisBackend(client)
	} else {
		logger.Warn("REDIS_ADDR not provided; using in-process cache and sessions")
		cacheStore = querycache.NewMemoryStore()
		sessionBackend = session.NewMemoryBackend()
	}

	sealer, err := session.NewSealer(cfg.Auth.SealingSecret)
	if err != nil {
		return nil, err
	}
	sessions := session.NewManager(sessionBackend, sealer, cfg.Auth.SessionTTL())
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL())

	client := floapi.NewClient(cfg.Upstream, logger, opts.Metrics)
	cache := querycache.New(cacheStore, cfg.Cache.Enabled, logger, opts.Metrics)
	dispatcher := events.NewInMemoryDispatcher(logger)
	ttl := cfg.Cache.DefaultTTL()

	var auditRepo repository.AuditRepository
	if pool := opts.Postgres.PoolHandle(); pool != nil {
		auditRepo = repository.NewAuditRepository(pool)
	}
	auditService := service.NewAuditService(auditRepo)

	a := &App{logger: logger}
	var sinks []worker.Sink
	if auditService.Enabled() {
		sinks = append(sinks, auditService)
	}
	writer := opts.KafkaWriter
	if writer == nil {
		if w := service.NewKafkaWriter(cfg.Kafka, logger); w != nil {
			writer = w
		}
	}
	if writer != nil {
		a.kafka = service.NewKafkaPublisher(writer, logger)
		sinks = append(sinks, a.kafka)
	}
	a.worker = worker.NewEventWorker(logger, eventQueueSize, sinks...)
	worker.StartEventWorker(dispatcher, a.worker)

	accountDeps := func() service.AccountDependencies {
		return service.AccountDependencies{
			Users:      client,
			Rides:      client,
			Cache:      cache,
			TTL:        ttl,
			Dispatcher: dispatcher,
			Logger:     logger,
		}
	}
	authService := service.NewAuthService(service.AuthDependencies{
		API:        client,
		Sessions:   sessions,
		Tokens:     tokens,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		API:        client,
		Cache:      cache,
		TTL:        ttl,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:         logger,
		Metrics:        opts.Metrics,
		Timeout:        cfg.App.RequestTimeout(),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	deps := map[string]handlers.Pinger{"postgres": nil, "redis": nil}
	if opts.Postgres.PoolHandle() != nil {
		deps["postgres"] = opts.Postgres
	}
	if opts.Redis.Handle() != nil {
		deps["redis"] = opts.Redis
	}

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, deps),
		Auth:      handlers.NewAuthHandler(authService),
		Customers: handlers.NewAccountsHandler(service.NewAccountService(domain.UserKindRental, accountDeps())),
		Billing:   handlers.NewAccountsHandler(service.NewAccountService(domain.UserKindTaxi, accountDeps())),
		Users:     handlers.NewUsersHandler(service.NewUserAdminService(client, cache, dispatcher, logger)),
		Rides:     handlers.NewRidesHandler(service.NewRideService(client, cache, ttl)),
		Tickets:   handlers.NewTicketsHandler(ticketService),
		Insights: handlers.NewInsightsHandler(
			service.NewDashboardService(client, client, cache, ttl),
			service.NewActivityService(client, cache, cfg.Cache.ActivitiesTTL()),
		),
		Audit:          handlers.NewAuditHandler(auditService),
		Metrics:        opts.Metrics,
		AuthMiddleware: auth.NewAuthMiddleware(tokens, sessions, session.ErrNotFound),
	})

	a.Fiber = app
	return a, nil
}

// Shutdown stops the HTTP server, then drains queued events.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.Fiber.ShutdownWithContext(ctx)
	a.Close()
	return err
}

// Close drains queued events and closes the event stream.
func (a *App) Close() {
	a.worker.Stop()
	if a.kafka != nil {
		if err := a.kafka.Close(); err != nil {
			a.logger.Warn("close kafka writer", zap.Error(err))
		}
	}
}
