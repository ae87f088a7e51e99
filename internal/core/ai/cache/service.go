package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"recipe-manager/internal/core/ai/provider"
	"recipe-manager/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
)

// ErrCacheMiss no entry for the key
var ErrCacheMiss = errors.New("cache miss")

// Service redis-backed oracle response cache
type Service struct {
	client *redis.Client
	config *config.CacheConfig
}

// NewService connects to redis when the cache is enabled
func NewService(ctx context.Context, cfg *config.CacheConfig) (*Service, error) {
	if !cfg.Enabled {
		return &Service{config: cfg}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Service{
		client: client,
		config: cfg,
	}, nil
}

// Enabled reports whether lookups can hit
func (s *Service) Enabled() bool {
	return s != nil && s.config.Enabled && s.client != nil
}

// Get returns the cached response; ErrCacheMiss when absent or disabled
func (s *Service) Get(ctx context.Context, model, system, prompt string) (*provider.Response, error) {
	if !s.Enabled() {
		return nil, ErrCacheMiss
	}

	data, err := s.client.Get(ctx, GenerateKey(model, system, prompt)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}

	var resp provider.Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache: %w", err)
	}

	resp.CacheHit = true
	return &resp, nil
}

// Set stores resp for the configured TTL
func (s *Service) Set(ctx context.Context, model, system, prompt string, resp *provider.Response) error {
	if !s.Enabled() {
		return nil
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	if err := s.client.Set(ctx, GenerateKey(model, system, prompt), data, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Ping checks the redis connection
func (s *Service) Ping(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	return s.client.Ping(ctx).Err()
}

// Close closes the redis client
func (s *Service) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

// GenerateKey cache key for one model/prompt pair
func GenerateKey(model, system, prompt string) string {
	h := sha256.New()
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(system))
	h.Write([]byte{0})
	h.Write([]byte(prompt))
	return "ai:response:" + hex.EncodeToString(h.Sum(nil))
}
