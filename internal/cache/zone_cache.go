package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/mpetrov/geovault/internal/model"
)

// ZoneCache keeps zone lookups off the database on the hot decision path.
// Entries expire by TTL and are invalidated explicitly on zone deletion.
type ZoneCache struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewZoneCache(client *goredis.Client, ttl time.Duration) *ZoneCache {
	return &ZoneCache{
		client: client,
		ttl:    ttl,
	}
}

func zoneKey(id uuid.UUID) string {
	return "zones:" + id.String()
}

// Get returns the cached zone and whether it was present.
func (c *ZoneCache) Get(ctx context.Context, id uuid.UUID) (model.SafeZone, bool, error) {
	data, err := c.client.Get(ctx, zoneKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return model.SafeZone{}, false, nil
		}
		return model.SafeZone{}, false, fmt.Errorf("failed to get cached zone: %w", err)
	}

	var zone model.SafeZone
	if err := json.Unmarshal(data, &zone); err != nil {
		return model.SafeZone{}, false, fmt.Errorf("failed to unmarshal cached zone: %w", err)
	}

	return zone, true, nil
}

func (c *ZoneCache) Set(ctx context.Context, zone model.SafeZone) error {
	b, err := json.Marshal(zone)
	if err != nil {
		return fmt.Errorf("failed to marshal zone: %w", err)
	}
	return c.client.Set(ctx, zoneKey(zone.ID), b, c.ttl).Err()
}

func (c *ZoneCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	return c.client.Del(ctx, zoneKey(id)).Err()
}
