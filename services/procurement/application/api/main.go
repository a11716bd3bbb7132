package api

import (
	"context"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/procurement/pkg/app"
	"github.com/ghuser/procurement/pkg/config"
	"github.com/ghuser/procurement/services/procurement/application/handlers"
	appsvcs "github.com/ghuser/procurement/services/procurement/application/services"
)

// ProcurementRoutes registers procurement endpoints on the provided chi router.
// Building the service container loads the snapshot store, so this must run
// once during startup.
func ProcurementRoutes(ctx context.Context, r chi.Router, a *app.Application, cfg *config.Config) error {
	svcs, err := appsvcs.New(ctx, a, cfg)
	if err != nil {
		return err
	}

	procurement := handlers.NewProcurementHandler(svcs)
	items := handlers.NewItemHandler(svcs)
	candidates := handlers.NewUplCandidateHandler(svcs)
	status := handlers.NewStatusHandler(svcs)

	r.Group(func(r chi.Router) {
		r.Route("/procurement", func(r chi.Router) {
			r.Post("/", procurement.Create)
			r.Get("/", procurement.List)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", procurement.Get)
				r.Delete("/", procurement.Delete)
				r.Patch("/reference", procurement.SetReference)
				r.Patch("/delivery-date", procurement.SetDeliveryDate)

				r.Route("/items", func(r chi.Router) {
					r.Post("/", items.Add)
					r.Patch("/{sku}/amount", items.UpdateAmount)
					r.Patch("/{sku}/price", items.UpdatePrice)
					r.Delete("/{sku}", items.Delete)
				})

				r.Route("/upl-candidates", func(r chi.Router) {
					r.Post("/", candidates.Add)
					r.Put("/{uplID}", candidates.Update)
					r.Delete("/{uplID}", candidates.Delete)
				})

				r.Post("/status", status.SetStatus)
				r.Post("/close", status.Close)
			})
		})
	})
	return nil
}
