// Package cache provides the per-tenant list cache used by the read paths.
// It is a best-effort accelerator: a miss is normal control flow, and a
// handler that skips it entirely is still correct, just slower.
package cache

import (
	"fmt"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// TenantCache maps a tenant ID to its most recently fetched record list.
// Entries expire after the configured TTL; a background janitor sweeps
// expired entries every sweep interval, and reads treat expired-but-unswept
// entries as misses. Values are cloned on both Set and Get so callers can
// never mutate the stored copy. Safe for concurrent use.
type TenantCache[T any] struct {
	store  *gocache.Cache
	prefix string
	clone  func(T) T

	hits   atomic.Int64
	misses atomic.Int64
}

// New builds a cache keyed as "<prefix>:<tenantID>". clone must return a
// defensively copied record.
func New[T any](prefix string, ttl, sweep time.Duration, clone func(T) T) *TenantCache[T] {
	return &TenantCache[T]{
		store:  gocache.New(ttl, sweep),
		prefix: prefix,
		clone:  clone,
	}
}

// Key returns the cache key for a tenant.
func (c *TenantCache[T]) Key(tenantID string) string {
	return fmt.Sprintf("%s:%s", c.prefix, tenantID)
}

// Get returns a copy of the cached list and whether it was present. A cached
// empty list is a hit; only absence or expiry is a miss.
func (c *TenantCache[T]) Get(tenantID string) ([]T, bool) {
	raw, found := c.store.Get(c.Key(tenantID))
	if !found {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return c.cloneAll(raw.([]T)), true
}

// Set replaces the tenant's entry wholesale and restarts its TTL.
func (c *TenantCache[T]) Set(tenantID string, records []T) {
	c.store.Set(c.Key(tenantID), c.cloneAll(records), gocache.DefaultExpiration)
}

// Invalidate removes the entry for this tenant only. No-op when absent;
// other tenants' entries are never touched.
func (c *TenantCache[T]) Invalidate(tenantID string) {
	c.store.Delete(c.Key(tenantID))
}

// Stats reports hit/miss counters and the current entry count (including
// not-yet-swept expired entries).
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Keys   int   `json:"keys"`
}

func (c *TenantCache[T]) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Keys:   c.store.ItemCount(),
	}
}

func (c *TenantCache[T]) cloneAll(records []T) []T {
	out := make([]T, len(records))
	for i, r := range records {
		out[i] = c.clone(r)
	}
	return out
}
