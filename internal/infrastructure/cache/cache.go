// Package cache provides a redis-backed cache for normalized external
// recipe lookups. When disabled it degrades to a no-op.
package cache

import (
	"context"
	"errors"
	"fmt"

	"fordinner/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
)

// ErrCacheMiss is returned when no entry exists for a key.
var ErrCacheMiss = errors.New("cache miss")

// Service wraps the redis client.
type Service struct {
	client *redis.Client
	config config.CacheConfig
}

// NewService creates the cache service. With caching disabled the
// returned service is usable but always misses.
func NewService(cfg config.CacheConfig) (*Service, error) {
	if !cfg.Enabled {
		return &Service{config: cfg}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Service{
		client: client,
		config: cfg,
	}, nil
}

// Get returns the cached payload for key.
func (s *Service) Get(ctx context.Context, key string) ([]byte, error) {
	if !s.config.Enabled || s.client == nil {
		return nil, ErrCacheMiss
	}

	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}

	return data, nil
}

// Set stores a payload under key with the configured TTL.
func (s *Service) Set(ctx context.Context, key string, data []byte) error {
	if !s.config.Enabled || s.client == nil {
		return nil
	}

	if err := s.client.Set(ctx, key, data, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}

	return nil
}

// Close releases the redis connection.
func (s *Service) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
