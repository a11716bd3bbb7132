package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// ProcurementCacheTTL is the time-to-live for cached procurement summaries.
	ProcurementCacheTTL = 24 * time.Hour

	procurementCacheKeyPrefix = "procurement"
)

// CachedSummary is the denormalized procurement read model stored in Redis.
// Fields are stored as a Redis hash. It mirrors the summary shape served by
// the list endpoint so other contexts can read it without hitting the API.
type CachedSummary struct {
	ID                    uint32     `json:"id"`
	SourceID              uint32     `json:"source_id"`
	SkuCount              uint32     `json:"sku_count"`
	SkuPieceCount         uint32     `json:"sku_piece_count"`
	UplCount              uint32     `json:"upl_count"`
	EstimatedDeliveryDate *time.Time `json:"estimated_delivery_date,omitempty"`
	Status                string     `json:"status"`
	CreatedAt             time.Time  `json:"created_at"`
	CreatedBy             uint32     `json:"created_by"`
}

// ProcurementCache provides structured read/write operations for procurement
// summary cache entries. Key format: "procurement:{id}"
type ProcurementCache struct {
	client *RedisClient
}

// NewProcurementCache creates a new ProcurementCache backed by the given RedisClient.
func NewProcurementCache(r *RedisClient) *ProcurementCache {
	return &ProcurementCache{client: r}
}

// Get retrieves a cached summary by procurement ID.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *ProcurementCache) Get(ctx context.Context, id uint32) (*CachedSummary, error) {
	key := c.key(id)
	vals, err := c.client.Client().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	s := &CachedSummary{Status: vals["status"]}
	for field, dst := range map[string]*uint32{
		"id":              &s.ID,
		"source_id":       &s.SourceID,
		"sku_count":       &s.SkuCount,
		"sku_piece_count": &s.SkuPieceCount,
		"upl_count":       &s.UplCount,
		"created_by":      &s.CreatedBy,
	} {
		n, err := strconv.ParseUint(vals[field], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("cache parse %s: %w", field, err)
		}
		*dst = uint32(n)
	}

	s.CreatedAt, err = time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}
	if raw := vals["estimated_delivery_date"]; raw != "" {
		edd, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("cache parse estimated_delivery_date: %w", err)
		}
		s.EstimatedDeliveryDate = &edd
	}
	return s, nil
}

// Set writes a cached summary as a Redis hash with a 24-hour TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *ProcurementCache) Set(ctx context.Context, s *CachedSummary) error {
	key := c.key(s.ID)
	edd := ""
	if s.EstimatedDeliveryDate != nil {
		edd = s.EstimatedDeliveryDate.UTC().Format(time.RFC3339Nano)
	}
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, key,
		"id", strconv.FormatUint(uint64(s.ID), 10),
		"source_id", strconv.FormatUint(uint64(s.SourceID), 10),
		"sku_count", strconv.FormatUint(uint64(s.SkuCount), 10),
		"sku_piece_count", strconv.FormatUint(uint64(s.SkuPieceCount), 10),
		"upl_count", strconv.FormatUint(uint64(s.UplCount), 10),
		"estimated_delivery_date", edd,
		"status", s.Status,
		"created_at", s.CreatedAt.UTC().Format(time.RFC3339Nano),
		"created_by", strconv.FormatUint(uint64(s.CreatedBy), 10),
	)
	pipe.Expire(ctx, key, ProcurementCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached summary.
func (c *ProcurementCache) Delete(ctx context.Context, id uint32) error {
	if err := c.client.Client().Del(ctx, c.key(id)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "procurement:{id}"
func (c *ProcurementCache) key(id uint32) string {
	return fmt.Sprintf("%s:%d", procurementCacheKeyPrefix, id)
}
