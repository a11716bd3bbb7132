package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/procurement/pkg/events"
	"github.com/ghuser/procurement/pkg/logger"
	procdomain "github.com/ghuser/procurement/services/procurement/domain"
	domainevents "github.com/ghuser/procurement/services/procurement/domain/events"
	"github.com/ghuser/procurement/services/procurement/domain/models"
	"github.com/ghuser/procurement/services/procurement/domain/repositories"
	domainsvcs "github.com/ghuser/procurement/services/procurement/domain/services"
)

// CloseService is the close orchestrator: it decides whether a Processing
// procurement may become Closed and, if so, materializes its candidates as
// real unit-loads in the remote registry.
//
// Validation runs to completion before the single mutating remote call. There
// is no reservation, no retry and no rollback: when the registry creates fewer
// unit-loads than requested, the procurement still closes and operations gets
// an alert instead. A close that failed after a partial creation is not safely
// retryable: the consumed ids would collide on the freshness check.
type CloseService struct {
	repo     repositories.ProcurementRepository
	registry repositories.UnitLoadRegistry
	catalog  repositories.ProductCatalog
	pricing  repositories.PricingService
	notifier repositories.Notifier
	alertTo  string
	bus      *events.EventBus
	log      logger.Logger
}

// NewCloseService returns a CloseService wired with the repository and the
// four remote façades. alertTo is the fixed operational alert address for
// creation shortfalls.
func NewCloseService(
	repo repositories.ProcurementRepository,
	registry repositories.UnitLoadRegistry,
	catalog repositories.ProductCatalog,
	pricing repositories.PricingService,
	notifier repositories.Notifier,
	alertTo string,
	bus *events.EventBus,
	log logger.Logger,
) *CloseService {
	return &CloseService{
		repo:     repo,
		registry: registry,
		catalog:  catalog,
		pricing:  pricing,
		notifier: notifier,
		alertTo:  alertTo,
		bus:      bus,
		log:      log,
	}
}

// Close runs the close workflow for one procurement. The whole sequence,
// remote round-trips included, executes under the repository lock so no other
// operation can observe or mutate the aggregate mid-close.
//
// Any validation or transport failure before the creation call aborts with
// the status unchanged at Processing. After a successful creation call the
// status is committed Closed unconditionally; a creation shortfall raises an
// operational alert, and a failure to deliver that alert is returned to the
// caller even though the aggregate stays Closed.
func (s *CloseService) Close(ctx context.Context, id, actor uint32) (*models.Procurement, error) {
	var requested, created int

	snap, err := s.repo.Mutate(ctx, id, func(p *models.Procurement) error {
		if p.Status != models.StatusProcessing {
			return fmt.Errorf("%w: procurement %d is %s", procdomain.ErrInvalidState, p.ID, p.Status)
		}

		requests, err := s.buildCreationRequests(ctx, p)
		if err != nil {
			return err
		}

		createdIDs, err := s.registry.CreateBulk(ctx, requests)
		if err != nil {
			return err
		}
		requested = len(requests)
		created = len(createdIDs)

		// The coverage guard re-validates with the same counting rule the
		// reconciliation above used, so this cannot fail once we are here.
		return p.SetStatus(models.StatusClosed, actor)
	})
	if err != nil {
		return nil, err
	}

	s.publishClosed(ctx, snap, requested, created, actor)

	if created < requested {
		s.log.WarnContext(ctx, "unit-load creation shortfall",
			"procurement_id", snap.ID,
			"requested", requested,
			"created", created,
		)
		if err := s.notifier.Send(ctx, s.alertTo,
			fmt.Sprintf("Unit-load creation shortfall on procurement %d", snap.ID),
			fmt.Sprintf(
				"Closing procurement %d requested %d unit-loads but the registry created only %d. "+
					"The procurement is closed; the missing unit-loads need manual follow-up.",
				snap.ID, requested, created,
			),
		); err != nil {
			return snap, err
		}
	}

	return snap, nil
}

// buildCreationRequests is the side-effect-free validation half of the
// workflow: id freshness, product and price reconciliation, expiry and
// coverage rules, and the assembly of one denormalized creation request per
// candidate. It issues only read calls and is fully re-computable.
func (s *CloseService) buildCreationRequests(ctx context.Context, p *models.Procurement) ([]repositories.UnitLoadCreationRequest, error) {
	ids := make([]string, len(p.UplCandidates))
	for i, c := range p.UplCandidates {
		ids[i] = c.UplID.String()
	}

	existing, err := s.registry.ExistsBulk(ctx, ids)
	if err != nil {
		return nil, err
	}
	conflicting := make([]string, len(existing))
	for i, e := range existing {
		conflicting[i] = e.UplID
	}
	if err := domainsvcs.RequireFreshIDs(conflicting); err != nil {
		return nil, err
	}

	skus := make([]uint32, len(p.Items))
	for i, item := range p.Items {
		skus[i] = item.Sku
	}

	products, err := s.catalog.GetBulk(ctx, skus)
	if err != nil {
		return nil, err
	}
	prices, err := s.pricing.GetBulk(ctx, skus)
	if err != nil {
		return nil, err
	}

	productBySku := make(map[uint32]repositories.ProductRecord, len(products))
	for _, prod := range products {
		productBySku[prod.Sku] = prod
	}
	priceBySku := make(map[uint32]repositories.PriceRecord, len(prices))
	for _, pr := range prices {
		priceBySku[pr.Sku] = pr
	}

	var requests []repositories.UnitLoadCreationRequest
	for _, item := range p.Items {
		product, ok := productBySku[item.Sku]
		if !ok {
			return nil, fmt.Errorf("%w: sku %d has no product record", procdomain.ErrUnknownSku, item.Sku)
		}
		price, ok := priceBySku[item.Sku]
		if !ok {
			return nil, fmt.Errorf("%w: sku %d has no current price", procdomain.ErrMissingPrice, item.Sku)
		}

		candidates := p.CandidatesForSku(item.Sku)
		if err := domainsvcs.RequireExpiry(item.Sku, product.Perishable, candidates); err != nil {
			return nil, err
		}
		if err := domainsvcs.RequireExactCoverage(item, p.CoveredAmount(item.Sku)); err != nil {
			return nil, err
		}

		for _, c := range candidates {
			requests = append(requests, repositories.UnitLoadCreationRequest{
				UplID:               c.UplID.String(),
				ProductID:           product.ProductID,
				Sku:                 c.Sku,
				Piece:               c.UplPiece,
				OpenedSku:           c.OpenedSku,
				BestBefore:          c.BestBefore,
				ProductUnit:         product.Unit,
				Divisible:           product.Divisible,
				DivisibleAmount:     product.DivisibleAmount,
				NetPrice:            price.NetPrice,
				GrossPrice:          price.GrossPrice,
				VatRate:             price.VatRate,
				ProcurementNetPrice: item.ExpectedNetPrice,
			})
		}
	}
	return requests, nil
}

// publishClosed emits procurement.closed, best-effort.
func (s *CloseService) publishClosed(ctx context.Context, p *models.Procurement, requested, created int, actor uint32) {
	if s.bus == nil {
		return
	}
	evt := domainevents.ProcurementClosedEvent{
		EventID:       uuid.New(),
		Version:       1,
		ProcurementID: p.ID,
		SourceID:      p.SourceID,
		RequestedUpls: requested,
		CreatedUpls:   created,
		ClosedBy:      actor,
		OccurredAt:    time.Now().UTC(),
	}
	publishEvent(ctx, s.bus, s.log, domainevents.TopicProcurementClosed, evt)
}
