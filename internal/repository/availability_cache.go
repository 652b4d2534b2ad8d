package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Amanastel/TicketFlow/internal/reservation"
)

// availabilityCacheKey is the single Redis key the cache occupies. A single
// coach has no partition dimension (no route, no date), so there is no
// geohash-style bucketing the way the teacher's surge cache has — just one
// key, read and overwritten on every recompute.
const availabilityCacheKey = "reservation:available"

// availabilityCacheTTL bounds how stale a served Available response can be
// if an invalidation is ever missed.
const availabilityCacheTTL = 30 * time.Second

// AvailabilityCache is a cache-aside read-through for the Available
// snapshot, grounded on the teacher's PricingRepository.GetDemandSupply
// Redis fast-path / DB slow-path pattern: try Redis first, fall back to
// recomputing from the authoritative source on a miss, then repopulate.
// Unlike the teacher's per-area keys, a single coach needs exactly one key.
type AvailabilityCache struct {
	redis *redis.Client
}

// NewAvailabilityCache creates a cache-aside wrapper around client.
func NewAvailabilityCache(client *redis.Client) *AvailabilityCache {
	return &AvailabilityCache{redis: client}
}

// Get returns the cached snapshot and true on a hit, or a zero value and
// false on a miss or any Redis error (treated as a miss, never surfaced to
// the caller — the cache is an optimization, not a dependency).
func (c *AvailabilityCache) Get(ctx context.Context) (reservation.AvailableSnapshot, bool) {
	raw, err := c.redis.Get(ctx, availabilityCacheKey).Bytes()
	if err != nil {
		return reservation.AvailableSnapshot{}, false
	}
	var snap reservation.AvailableSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return reservation.AvailableSnapshot{}, false
	}
	return snap, true
}

// Set populates the cache with a freshly computed snapshot. Errors are
// swallowed (fire-and-forget), matching the teacher's
// "don't block on cache write errors" rule in GetDemandSupply.
func (c *AvailabilityCache) Set(ctx context.Context, snap reservation.AvailableSnapshot) {
	raw, err := json.Marshal(snap)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, availabilityCacheKey, raw, availabilityCacheTTL).Err()
}

// Invalidate drops the cached snapshot. Called fire-and-forget, after the
// Coordinator's lock has already been released, exactly like the teacher's
// InvalidateSurgeCache call after CancelRide commits — the cache is never
// invalidated from inside the critical section.
func (c *AvailabilityCache) Invalidate(ctx context.Context) {
	_ = c.redis.Del(ctx, availabilityCacheKey).Err()
}
