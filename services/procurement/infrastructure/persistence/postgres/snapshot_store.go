// Package postgres implements the procurement SnapshotStore against
// PostgreSQL. Each aggregate is written as one jsonb snapshot row: the
// repository owns all invariants in memory, the database only has to give the
// collection back intact at the next startup.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ghuser/procurement/pkg/database"
	"github.com/ghuser/procurement/services/procurement/domain/models"
)

// SnapshotStore persists procurement snapshots in the procurements table.
type SnapshotStore struct {
	db *database.Database
}

// NewSnapshotStore returns a SnapshotStore backed by the given connection pool.
func NewSnapshotStore(db *database.Database) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// LoadAll reads every snapshot. Called once at process start.
func (s *SnapshotStore) LoadAll(ctx context.Context) ([]*models.Procurement, error) {
	rows, err := s.db.Pool().Query(ctx, `SELECT data FROM procurements ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query procurements: %w", err)
	}
	defer rows.Close()

	var out []*models.Procurement
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan procurement: %w", err)
		}
		var p models.Procurement
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode procurement snapshot: %w", err)
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate procurements: %w", err)
	}
	return out, nil
}

// Persist upserts one snapshot. Called after every successful mutation.
func (s *SnapshotStore) Persist(ctx context.Context, p *models.Procurement) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode procurement snapshot: %w", err)
	}
	_, err = s.db.Pool().Exec(ctx, `
		INSERT INTO procurements (id, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		int64(p.ID), raw,
	)
	if err != nil {
		return fmt.Errorf("upsert procurement %d: %w", p.ID, err)
	}
	return nil
}

// Delete removes one snapshot.
func (s *SnapshotStore) Delete(ctx context.Context, id uint32) error {
	if _, err := s.db.Pool().Exec(ctx, `DELETE FROM procurements WHERE id = $1`, int64(id)); err != nil {
		return fmt.Errorf("delete procurement %d: %w", id, err)
	}
	return nil
}
