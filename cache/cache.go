// Package cache provides an optional Redis-backed cache for settlement
// views. With no Redis address configured every operation is a no-op, so
// callers never have to branch on whether caching is on.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const settlementTTL = 5 * time.Minute

type SettlementCache struct {
	rdb *redis.Client
}

// New returns a cache bound to addr, or a disabled cache when addr is empty.
func New(addr string) *SettlementCache {
	if addr == "" {
		return &SettlementCache{}
	}
	return &SettlementCache{rdb: redis.NewClient(&redis.Options{Addr: addr})}
}

func (c *SettlementCache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// Get returns the cached settlement payload for owner, or ok=false on miss.
func (c *SettlementCache) Get(ctx context.Context, owner string) ([]byte, bool) {
	if !c.Enabled() {
		return nil, false
	}
	val, err := c.rdb.Get(ctx, settlementKey(owner)).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *SettlementCache) Set(ctx context.Context, owner string, payload []byte) {
	if !c.Enabled() {
		return
	}
	c.rdb.Set(ctx, settlementKey(owner), payload, settlementTTL)
}

// Invalidate drops the cached view after a ledger write for owner.
func (c *SettlementCache) Invalidate(ctx context.Context, owner string) {
	if !c.Enabled() {
		return
	}
	c.rdb.Del(ctx, settlementKey(owner))
}

func (c *SettlementCache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Close()
}

func settlementKey(owner string) string {
	return fmt.Sprintf("settlement:%s", owner)
}
