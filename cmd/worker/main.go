package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/procurement/pkg/app"
	"github.com/ghuser/procurement/pkg/cache"
	"github.com/ghuser/procurement/pkg/config"
	"github.com/ghuser/procurement/pkg/database"
	"github.com/ghuser/procurement/pkg/events"
	"github.com/ghuser/procurement/pkg/logger"
	"github.com/ghuser/procurement/pkg/telemetry"
	procurementEvents "github.com/ghuser/procurement/services/procurement/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	//temporalClient, err := workflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, log)
	//if err != nil {
	//	log.Error("failed to initialize temporal client", "error", err)
	//	os.Exit(1) //nolint:gocritic
	//}
	//defer temporalClient.Close()

	appConfig := &app.Application{
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
		//TemporalClient: temporalClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	outboxCtx, cancelOutbox := context.WithCancel(ctx)
	go runOutboxRelay(outboxCtx, appConfig)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancelOutbox()

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	procurementCache := cache.NewProcurementCache(a.Redis)

	topics := map[string]func(context.Context, *message.Message) error{
		procurementEvents.TopicProcurementCreated: handleProcurementCreated(a, procurementCache),
		procurementEvents.TopicProcurementClosed:  handleProcurementClosed(a, procurementCache),
	}

	registered := make([]string, 0, len(topics))
	for topic, handler := range topics {
		errCh, err := a.EventBus.Subscribe(ctx, topic, handler)
		if err != nil {
			return err
		}

		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error",
					"topic", topic,
					"error", err,
				)
			}
		}(topic)
		registered = append(registered, topic)
	}

	a.Logger.Info("event subscribers registered", "topics", registered)
	return nil
}

// handleProcurementCreated returns a handler for procurement.created events.
// Handlers must be idempotent; EventBus retries up to 3x on failure.
// Warms the Redis read-model cache so other contexts can read procurement
// summaries without hitting the API.
func handleProcurementCreated(a *app.Application, procurementCache *cache.ProcurementCache) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt procurementEvents.ProcurementCreatedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if err := procurementCache.Set(ctx, &cache.CachedSummary{
			ID:        evt.ProcurementID,
			SourceID:  evt.SourceID,
			Status:    "new",
			CreatedAt: evt.OccurredAt,
			CreatedBy: evt.CreatedBy,
		}); err != nil {
			// Cache warming is best-effort; log but do not fail the handler.
			a.Logger.WarnContext(ctx, "cache warm failed for procurement.created",
				"procurement_id", evt.ProcurementID, "error", err)
		} else {
			a.Logger.InfoContext(ctx, "cache warmed",
				"procurement_id", evt.ProcurementID, "source_id", evt.SourceID)
		}

		return nil
	}
}

// handleProcurementClosed returns a handler for procurement.closed events.
// Drops the cached summary so stale pre-close counts are never served; the
// next reader repopulates it from the API.
func handleProcurementClosed(a *app.Application, procurementCache *cache.ProcurementCache) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt procurementEvents.ProcurementClosedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if evt.CreatedUpls < evt.RequestedUpls {
			a.Logger.WarnContext(ctx, "procurement closed with unit-load shortfall",
				"procurement_id", evt.ProcurementID,
				"requested", evt.RequestedUpls,
				"created", evt.CreatedUpls)
		}

		if err := procurementCache.Delete(ctx, evt.ProcurementID); err != nil {
			a.Logger.WarnContext(ctx, "cache invalidation failed for procurement.closed",
				"procurement_id", evt.ProcurementID, "error", err)
		}

		return nil
	}
}

// runOutboxRelay polls the outbox for unpublished events and forwards them to
// the EventBus. Runs until ctx is cancelled.
// The Watermill Forwarder (started in cmd/api/main.go) handles at-least-once
// delivery; this relay is a secondary safety net for future outbox tables.
func runOutboxRelay(ctx context.Context, a *app.Application) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.Logger.Info("outbox relay shutting down")
			return
		case <-ticker.C:
			// TODO: query outbox table, publish unpublished events, mark as published
		}
	}
}
