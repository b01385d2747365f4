package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/domain/availability"
)

const keyPrefix = "availability:"

// NewClient connects to redis and pings it once.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// AvailabilityCache is a read-through cache in front of the availability
// store. Readers may see a snapshot up to ttl old unless the writer calls
// Invalidate.
type AvailabilityCache struct {
	client *redis.Client
	source availability.Reader
	ttl    time.Duration
	log    *zap.Logger
}

func NewAvailabilityCache(
	client *redis.Client,
	source availability.Reader,
	ttl time.Duration,
	log *zap.Logger,
) *AvailabilityCache {
	return &AvailabilityCache{
		client: client,
		source: source,
		ttl:    ttl,
		log:    log,
	}
}

func key(providerID string) string {
	return keyPrefix + providerID
}

// Get serves from redis and falls back to the source on a miss or on any
// redis failure.
func (c *AvailabilityCache) Get(
	ctx context.Context,
	providerID string,
) (*availability.Availability, error) {

	raw, err := c.client.Get(ctx, key(providerID)).Bytes()
	switch {
	case err == nil:
		var a availability.Availability
		if jerr := json.Unmarshal(raw, &a); jerr == nil {
			return &a, nil
		}
		c.log.Warn("availability cache entry unreadable", zap.String("provider_id", providerID))
	case !errors.Is(err, redis.Nil):
		c.log.Warn("availability cache read failed", zap.String("provider_id", providerID), zap.Error(err))
	}

	a, err := c.source.Get(ctx, providerID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(a); err == nil {
		if err := c.client.Set(ctx, key(providerID), payload, c.ttl).Err(); err != nil {
			c.log.Warn("availability cache write failed", zap.String("provider_id", providerID), zap.Error(err))
		}
	}

	return a, nil
}

func (c *AvailabilityCache) Invalidate(ctx context.Context, providerID string) error {
	if err := c.client.Del(ctx, key(providerID)).Err(); err != nil {
		return fmt.Errorf("invalidate availability: %w", err)
	}
	return nil
}

var _ availability.Reader = (*AvailabilityCache)(nil)
