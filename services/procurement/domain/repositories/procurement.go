package repositories

import (
	"context"

	"github.com/ghuser/procurement/services/procurement/domain/models"
)

// ProcurementRepository is the persistence interface for the Procurement
// aggregate. The domain layer owns this interface; infrastructure implements
// it as a single-lock in-memory collection backed by a SnapshotStore.
//
// GetByID and All return deep copies. The only way to change an aggregate is
// Mutate, which runs the callback with exclusive ownership and persists the
// result when the callback returns nil.
type ProcurementRepository interface {
	// Insert assigns the next free id (max existing + 1, starting at 1),
	// stores and persists the aggregate, and returns a snapshot of it.
	Insert(ctx context.Context, p *models.Procurement) (*models.Procurement, error)

	// GetByID returns a snapshot. Returns ErrNotFound if the id is absent.
	GetByID(ctx context.Context, id uint32) (*models.Procurement, error)

	// All returns snapshots of every aggregate in ascending id order.
	All(ctx context.Context) ([]*models.Procurement, error)

	// Mutate runs fn on the live aggregate under the repository lock. A nil
	// return persists the mutated aggregate and yields a snapshot of it; an
	// error from fn discards the mutation and is returned unchanged.
	Mutate(ctx context.Context, id uint32, fn func(p *models.Procurement) error) (*models.Procurement, error)

	// Remove deletes an aggregate. Only permitted while its status is New.
	Remove(ctx context.Context, id uint32) error
}

// SnapshotStore is the persistent keyed store behind the repository: the full
// collection is loaded once at process start and every successful mutation is
// written through. Store failures surface as ErrInternal; there is no retry.
type SnapshotStore interface {
	LoadAll(ctx context.Context) ([]*models.Procurement, error)
	Persist(ctx context.Context, p *models.Procurement) error
	Delete(ctx context.Context, id uint32) error
}
