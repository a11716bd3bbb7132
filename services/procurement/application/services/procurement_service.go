package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/procurement/pkg/events"
	"github.com/ghuser/procurement/pkg/logger"
	domainevents "github.com/ghuser/procurement/services/procurement/domain/events"
	"github.com/ghuser/procurement/services/procurement/domain/models"
	"github.com/ghuser/procurement/services/procurement/domain/repositories"
)

// ProcurementService exposes the validated mutation operations of the
// procurement aggregate through the repository. Every mutation runs inside
// one repository critical section and is persisted before it becomes visible.
type ProcurementService struct {
	repo repositories.ProcurementRepository
	bus  *events.EventBus
	log  logger.Logger
}

// NewProcurementService returns a ProcurementService wired with the given
// repository and event bus.
func NewProcurementService(repo repositories.ProcurementRepository, bus *events.EventBus, log logger.Logger) *ProcurementService {
	return &ProcurementService{repo: repo, bus: bus, log: log}
}

// Create inserts a new procurement in status New and publishes
// procurement.created.
func (s *ProcurementService) Create(ctx context.Context, sourceID, createdBy uint32) (*models.Procurement, error) {
	p, err := s.repo.Insert(ctx, models.NewProcurement(0, sourceID, createdBy))
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domainevents.TopicProcurementCreated, domainevents.ProcurementCreatedEvent{
		EventID:       uuid.New(),
		Version:       1,
		ProcurementID: p.ID,
		SourceID:      p.SourceID,
		CreatedBy:     p.CreatedBy,
		OccurredAt:    time.Now().UTC(),
	})
	return p, nil
}

// Get returns a snapshot of one procurement.
func (s *ProcurementService) Get(ctx context.Context, id uint32) (*models.Procurement, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns the summary projection of every procurement, ascending by id.
func (s *ProcurementService) List(ctx context.Context) ([]models.Summary, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Summary, len(all))
	for i, p := range all {
		out[i] = p.Summarize()
	}
	return out, nil
}

// Delete removes a procurement. The repository rejects removal once the order
// has left status New.
func (s *ProcurementService) Delete(ctx context.Context, id uint32) error {
	return s.repo.Remove(ctx, id)
}

// SetReference replaces the free-text reference.
func (s *ProcurementService) SetReference(ctx context.Context, id uint32, reference string) (*models.Procurement, error) {
	return s.repo.Mutate(ctx, id, func(p *models.Procurement) error {
		p.SetReference(reference)
		return nil
	})
}

// SetDeliveryDate replaces the estimated delivery date; nil means unknown.
func (s *ProcurementService) SetDeliveryDate(ctx context.Context, id uint32, date *time.Time) (*models.Procurement, error) {
	return s.repo.Mutate(ctx, id, func(p *models.Procurement) error {
		p.SetDeliveryDate(date)
		return nil
	})
}

// AddItem appends a new sku line.
func (s *ProcurementService) AddItem(ctx context.Context, id, sku, amount, netPrice uint32) (*models.Procurement, error) {
	return s.repo.Mutate(ctx, id, func(p *models.Procurement) error {
		return p.AddItem(sku, amount, netPrice)
	})
}

// UpdateItemAmount changes the ordered amount of one sku line.
func (s *ProcurementService) UpdateItemAmount(ctx context.Context, id, sku, amount uint32) (*models.Procurement, error) {
	return s.repo.Mutate(ctx, id, func(p *models.Procurement) error {
		return p.UpdateItemAmount(sku, amount)
	})
}

// UpdateItemPrice changes the expected net price of one sku line.
func (s *ProcurementService) UpdateItemPrice(ctx context.Context, id, sku, netPrice uint32) (*models.Procurement, error) {
	return s.repo.Mutate(ctx, id, func(p *models.Procurement) error {
		return p.UpdateItemPrice(sku, netPrice)
	})
}

// RemoveItem deletes one sku line.
func (s *ProcurementService) RemoveItem(ctx context.Context, id, sku uint32) (*models.Procurement, error) {
	return s.repo.Mutate(ctx, id, func(p *models.Procurement) error {
		return p.RemoveItem(sku)
	})
}

// AddUplCandidate appends a new unit-load candidate.
func (s *ProcurementService) AddUplCandidate(ctx context.Context, id uint32, uplID string, sku, piece uint32, opened bool, bestBefore *time.Time) (*models.Procurement, error) {
	return s.repo.Mutate(ctx, id, func(p *models.Procurement) error {
		return p.AddUplCandidate(uplID, sku, piece, opened, bestBefore)
	})
}

// UpdateUplCandidate replaces sku, piece and best-before of one candidate.
func (s *ProcurementService) UpdateUplCandidate(ctx context.Context, id uint32, uplID string, sku, piece uint32, bestBefore *time.Time) (*models.Procurement, error) {
	return s.repo.Mutate(ctx, id, func(p *models.Procurement) error {
		return p.UpdateUplCandidate(uplID, sku, piece, bestBefore)
	})
}

// RemoveUplCandidate deletes one candidate.
func (s *ProcurementService) RemoveUplCandidate(ctx context.Context, id uint32, uplID string) (*models.Procurement, error) {
	return s.repo.Mutate(ctx, id, func(p *models.Procurement) error {
		return p.RemoveUplCandidate(uplID)
	})
}

// SetStatus requests a state-machine transition. The HTTP layer never routes
// Closed here; that status is committed by the close workflow.
func (s *ProcurementService) SetStatus(ctx context.Context, id uint32, target models.Status, actor uint32) (*models.Procurement, error) {
	return s.repo.Mutate(ctx, id, func(p *models.Procurement) error {
		return p.SetStatus(target, actor)
	})
}

// publish sends one domain event, best-effort. Event delivery is auxiliary to
// the committed mutation; a publish failure is logged, not surfaced.
func (s *ProcurementService) publish(ctx context.Context, topic string, evt any) {
	publishEvent(ctx, s.bus, s.log, topic, evt)
}

// publishEvent marshals evt and publishes it on topic, best-effort.
func publishEvent(ctx context.Context, bus *events.EventBus, log logger.Logger, topic string, evt any) {
	if bus == nil {
		return
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		log.ErrorContext(ctx, "encode domain event", "topic", topic, "error", err)
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := bus.Publish(ctx, topic, msg); err != nil {
		log.WarnContext(ctx, "publish domain event", "topic", topic, "error", err)
	}
}
