// internal/service/trending/service.go

package trending

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clipsight/internal/cache"
	"clipsight/internal/domain/analysis"
)

// Config tunes the trending service.
type Config struct {
	CacheTTL time.Duration
}

// Service serves the trending lists behind an injected TTL cache. Trending
// data changes slowly relative to request volume, so every list is fetched
// at most once per TTL window.
type Service struct {
	client analysis.EndpointClient
	cache  *cache.TTLCache
	config Config
}

// NewService creates a trending service.
func NewService(client analysis.EndpointClient, c *cache.TTLCache, config Config) *Service {
	if config.CacheTTL <= 0 {
		config.CacheTTL = 15 * time.Minute
	}
	return &Service{
		client: client,
		cache:  c,
		config: config,
	}
}

// Videos returns the trending videos list.
func (s *Service) Videos(ctx context.Context) (json.RawMessage, error) {
	return s.fetchCached(ctx, "trending-content")
}

// Sounds returns the trending sounds list.
func (s *Service) Sounds(ctx context.Context) (json.RawMessage, error) {
	return s.fetchCached(ctx, "trending-sounds")
}

// Hashtags returns the trending hashtags list.
func (s *Service) Hashtags(ctx context.Context) (json.RawMessage, error) {
	return s.fetchCached(ctx, "trending-hashtags")
}

// fetchCached serves an endpoint from cache, fetching on miss.
func (s *Service) fetchCached(ctx context.Context, endpoint string) (json.RawMessage, error) {
	if cached, ok := s.cache.Get(endpoint); ok {
		if payload, ok := cached.(json.RawMessage); ok {
			return payload, nil
		}
	}

	payload, err := s.client.Fetch(ctx, endpoint, map[string]string{})
	if err != nil {
		return nil, fmt.Errorf("error fetching %s: %w", endpoint, err)
	}

	s.cache.Set(endpoint, payload, s.config.CacheTTL)
	return payload, nil
}
