// Package memory implements the procurement repository as a mutex-guarded
// in-memory collection backed by a write-through SnapshotStore. The whole
// collection lives behind one process-wide lock; every operation, including
// the close workflow's remote round-trips, runs inside one critical section.
// Coarse but sufficient: expected write volume is low and no operation ever
// yields the lock mid-way.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	procdomain "github.com/ghuser/procurement/services/procurement/domain"
	"github.com/ghuser/procurement/services/procurement/domain/models"
	"github.com/ghuser/procurement/services/procurement/domain/repositories"
)

// Repository holds all procurement aggregates keyed by id.
type Repository struct {
	mu    sync.Mutex
	byID  map[uint32]*models.Procurement
	store repositories.SnapshotStore

	// lastID is the high-water mark of ids issued this run. Removing the
	// highest aggregate must not make its id reusable.
	lastID uint32
}

// New loads the full collection from the store and returns a ready repository.
func New(ctx context.Context, store repositories.SnapshotStore) (*Repository, error) {
	all, err := store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load procurements: %w", procdomain.ErrInternal, err)
	}
	byID := make(map[uint32]*models.Procurement, len(all))
	for _, p := range all {
		byID[p.ID] = p
	}
	return &Repository{byID: byID, store: store}, nil
}

// Insert assigns the next free id, stores the aggregate and writes it through.
func (r *Repository) Insert(ctx context.Context, p *models.Procurement) (*models.Procurement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = r.nextIDLocked()
	if _, exists := r.byID[p.ID]; exists {
		return nil, fmt.Errorf("%w: procurement %d", procdomain.ErrDuplicateKey, p.ID)
	}
	if err := r.store.Persist(ctx, p); err != nil {
		return nil, fmt.Errorf("%w: persist procurement %d: %w", procdomain.ErrInternal, p.ID, err)
	}
	r.byID[p.ID] = p
	return p.Clone(), nil
}

// GetByID returns a snapshot of one aggregate.
func (r *Repository) GetByID(ctx context.Context, id uint32) (*models.Procurement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: procurement %d", procdomain.ErrNotFound, id)
	}
	return p.Clone(), nil
}

// All returns snapshots of every aggregate in ascending id order.
func (r *Repository) All(ctx context.Context) ([]*models.Procurement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*models.Procurement, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Mutate runs fn on the live aggregate under the lock. The mutation is only
// kept when both fn and the write-through persist succeed; any failure leaves
// the in-memory aggregate as it was before the call.
func (r *Repository) Mutate(ctx context.Context, id uint32, fn func(p *models.Procurement) error) (*models.Procurement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: procurement %d", procdomain.ErrNotFound, id)
	}

	// fn works on a clone so a failed mutation cannot leave the held
	// aggregate half-updated.
	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	if err := r.store.Persist(ctx, next); err != nil {
		return nil, fmt.Errorf("%w: persist procurement %d: %w", procdomain.ErrInternal, id, err)
	}
	r.byID[id] = next
	return next.Clone(), nil
}

// Remove deletes an aggregate. Once an order has left status New it is part
// of the audit trail and can no longer be removed.
func (r *Repository) Remove(ctx context.Context, id uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("%w: procurement %d", procdomain.ErrNotFound, id)
	}
	if p.Status != models.StatusNew {
		return fmt.Errorf("%w: only a procurement in %s status can be removed",
			procdomain.ErrInvalidTransition, models.StatusNew)
	}
	if err := r.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: delete procurement %d: %w", procdomain.ErrInternal, id, err)
	}
	delete(r.byID, id)
	return nil
}

// nextIDLocked scans the held aggregates for the highest id and returns it
// plus one, or 1 when the repository is empty. O(n) and deliberately so:
// cardinality stays small. The high-water mark keeps removed ids from being
// reissued within the same run. Caller must hold r.mu.
func (r *Repository) nextIDLocked() uint32 {
	last := r.lastID
	for id := range r.byID {
		if id > last {
			last = id
		}
	}
	r.lastID = last + 1
	return r.lastID
}
