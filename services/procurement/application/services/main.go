package services

import (
	"context"
	"fmt"

	"github.com/ghuser/procurement/pkg/app"
	"github.com/ghuser/procurement/pkg/config"
	"github.com/ghuser/procurement/services/procurement/infrastructure/clients"
	"github.com/ghuser/procurement/services/procurement/infrastructure/persistence/memory"
	"github.com/ghuser/procurement/services/procurement/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Procurement *ProcurementService
	Close       *CloseService
}

// New wires all procurement application services with infrastructure from the
// Application container. Loading the snapshot store into the in-memory
// repository happens here, once per process.
func New(ctx context.Context, a *app.Application, cfg *config.Config) (*Services, error) {
	store := postgres.NewSnapshotStore(a.Db)
	repo, err := memory.New(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("load procurement repository: %w", err)
	}

	procurement := NewProcurementService(repo, a.EventBus, a.Logger)
	closeSvc := NewCloseService(
		repo,
		clients.NewUnitLoadClient(cfg.UplServiceAddr),
		clients.NewProductClient(cfg.ProductServiceAddr),
		clients.NewPriceClient(cfg.PriceServiceAddr),
		clients.NewNotificationClient(cfg.NotificationServiceAddr),
		cfg.AlertRecipient,
		a.EventBus,
		a.Logger,
	)

	return &Services{
		Procurement: procurement,
		Close:       closeSvc,
	}, nil
}
