package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dispatchGuardPrefix = "outbound_guard:"

// DispatchGuard suppresses identical outbound messages across instances.
type DispatchGuard struct {
	client *redis.Client
}

func NewDispatchGuard(client *redis.Client) *DispatchGuard {
	return &DispatchGuard{client: client}
}

// Claim atomically reserves key for ttl with SETNX. It returns true for the
// first caller and false while the reservation is alive.
func (g *DispatchGuard) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	acquired, err := g.client.SetNX(ctx, dispatchGuardPrefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim dispatch guard: %w", err)
	}
	return acquired, nil
}

// Release drops a reservation so an identical message may be sent again.
func (g *DispatchGuard) Release(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, dispatchGuardPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release dispatch guard: %w", err)
	}
	return nil
}
