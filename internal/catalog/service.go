package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pediloya/storefront-backend/pkg/logger"
	"github.com/pediloya/storefront-backend/pkg/metrics"
	"github.com/pediloya/storefront-backend/pkg/redis"
)

type menuFetcher interface {
	FetchMenu(ctx context.Context, tenantID string) (*Menu, error)
}

type menuCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	MenuKey(tenantID string) string
}

// Service exposes tenant menu reads with a short-lived cache in front
// of the upstream catalog.
type Service interface {
	Menu(ctx context.Context, tenantID string) (*Menu, error)
}

type service struct {
	fetcher  menuFetcher
	cache    menuCache
	cacheTTL time.Duration
	logg     *logger.Logger
	metrics  *metrics.StorefrontMetrics
}

// NewService builds the catalog service. The cache is optional; without
// it every call hits the upstream API.
func NewService(fetcher menuFetcher, cache menuCache, cacheTTL time.Duration, logg *logger.Logger, m *metrics.StorefrontMetrics) (Service, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("menu fetcher required")
	}
	return &service{
		fetcher:  fetcher,
		cache:    cache,
		cacheTTL: cacheTTL,
		logg:     logg,
		metrics:  m,
	}, nil
}

func (s *service) Menu(ctx context.Context, tenantID string) (*Menu, error) {
	if cached := s.fromCache(ctx, tenantID); cached != nil {
		return cached, nil
	}

	menu, err := s.fetcher.FetchMenu(ctx, tenantID)
	if err != nil {
		s.metrics.IncMenuFetchFailure()
		return nil, err
	}

	s.toCache(ctx, tenantID, menu)
	return menu, nil
}

// Cache failures are tolerated: a cold or broken cache degrades to a
// fetch, never to a request failure.
func (s *service) fromCache(ctx context.Context, tenantID string) *Menu {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, s.cache.MenuKey(tenantID))
	if err != nil {
		if !redis.IsNil(err) && s.logg != nil {
			s.logg.Warn(ctx, "menu cache read failed")
		}
		return nil
	}
	var menu Menu
	if err := json.Unmarshal([]byte(raw), &menu); err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "menu cache entry corrupt, refetching")
		}
		return nil
	}
	return &menu
}

func (s *service) toCache(ctx context.Context, tenantID string, menu *Menu) {
	if s.cache == nil || menu == nil {
		return
	}
	payload, err := json.Marshal(menu)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.MenuKey(tenantID), string(payload), s.cacheTTL); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "menu cache write failed")
	}
}
