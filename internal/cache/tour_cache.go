// Package cache stores rendered published tours in Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/jengzang/tours-backend-go/internal/logging"
	"github.com/jengzang/tours-backend-go/internal/models"
)

// TourCache caches published tour payloads by tour id
type TourCache interface {
	Get(ctx context.Context, tourID int64) (*models.TourDetail, bool, error)
	Set(ctx context.Context, tour *models.TourDetail) error
	Invalidate(ctx context.Context, tourID int64) error
}

// Config holds Redis connection settings
type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// New returns a Redis-backed cache, or a no-op cache when no address is configured
func New(ctx context.Context, cfg Config) (TourCache, error) {
	if cfg.Addr == "" {
		logging.Info().Msg("Redis not configured, published tour cache disabled")
		return Nop{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	logging.Info().Str("addr", cfg.Addr).Dur("ttl", cfg.TTL).Msg("Published tour cache connected")
	return NewRedis(client, cfg.TTL), nil
}

// Redis is a TourCache backed by a Redis client
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis wraps an existing client
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// Key returns the Redis key of a published tour
func Key(tourID int64) string {
	return fmt.Sprintf("tours:published:%d", tourID)
}

// Get returns the cached tour; ok is false on a miss
func (r *Redis) Get(ctx context.Context, tourID int64) (*models.TourDetail, bool, error) {
	data, err := r.client.Get(ctx, Key(tourID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached tour %d: %w", tourID, err)
	}

	var tour models.TourDetail
	if err := json.Unmarshal(data, &tour); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached tour %d: %w", tourID, err)
	}
	return &tour, true, nil
}

// Set stores the tour for the configured TTL
func (r *Redis) Set(ctx context.Context, tour *models.TourDetail) error {
	data, err := json.Marshal(tour)
	if err != nil {
		return fmt.Errorf("failed to encode tour %d: %w", tour.ID, err)
	}
	if err := r.client.Set(ctx, Key(tour.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache tour %d: %w", tour.ID, err)
	}
	return nil
}

// Invalidate drops the cached tour
func (r *Redis) Invalidate(ctx context.Context, tourID int64) error {
	if err := r.client.Del(ctx, Key(tourID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate tour %d: %w", tourID, err)
	}
	return nil
}

// Close releases the Redis connection pool
func (r *Redis) Close() error {
	return r.client.Close()
}

// Nop is a TourCache that never stores anything
type Nop struct{}

func (Nop) Get(context.Context, int64) (*models.TourDetail, bool, error) { return nil, false, nil }
func (Nop) Set(context.Context, *models.TourDetail) error               { return nil }
func (Nop) Invalidate(context.Context, int64) error                     { return nil }
