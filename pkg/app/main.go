package app

import (
	"github.com/ghuser/procurement/pkg/cache"
	"github.com/ghuser/procurement/pkg/database"
	"github.com/ghuser/procurement/pkg/events"
	"github.com/ghuser/procurement/pkg/logger"
	"github.com/ghuser/procurement/pkg/workflows"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to all service route registrations during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler; use slog's context
// methods and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "closing procurement", "procurement_id", id)
//	app.Logger.ErrorContext(ctx, "failed to persist", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Db             *database.Database
	Logger         logger.Logger
	EventBus       *events.EventBus
	Redis          *cache.RedisClient
	TemporalClient *workflows.TemporalClient
}
