package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/pediloya/storefront-backend/internal/catalog"
	"github.com/pediloya/storefront-backend/pkg/logger"
	"github.com/pediloya/storefront-backend/pkg/metrics"
)

// Service orchestrates cart mutations against the snapshot store. Every
// operation is load-mutate-save under a single mutex, which keeps the
// aggregator's single-writer requirement even though the HTTP host runs
// handlers on many goroutines.
type Service interface {
	Get(ctx context.Context, tenantID, sessionID string) (*Cart, error)
	AddItem(ctx context.Context, tenantID, sessionID string, product catalog.Product, quantity int, selections []SelectedOption) (*Cart, error)
	UpdateQuantity(ctx context.Context, tenantID, sessionID string, signature Signature, quantity int) (*Cart, error)
	RemoveLine(ctx context.Context, tenantID, sessionID string, signature Signature) (*Cart, error)
	Clear(ctx context.Context, tenantID, sessionID string) error
}

type service struct {
	mu      sync.Mutex
	store   Store
	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics
}

// NewService builds the cart service.
func NewService(store Store, logg *logger.Logger, m *metrics.StorefrontMetrics) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	return &service{store: store, logg: logg, metrics: m}, nil
}

func (s *service) Get(ctx context.Context, tenantID, sessionID string) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Load(ctx, tenantID, sessionID)
}

func (s *service) AddItem(ctx context.Context, tenantID, sessionID string, product catalog.Product, quantity int, selections []SelectedOption) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.store.Load(ctx, tenantID, sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := current.Add(product, quantity, selections); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, tenantID, sessionID, current); err != nil {
		return nil, err
	}
	s.metrics.IncCartMutation("add")
	if s.logg != nil {
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{
			"product_id": product.ID,
			"quantity":   quantity,
		}), "cart.item_added")
	}
	return current, nil
}

func (s *service) UpdateQuantity(ctx context.Context, tenantID, sessionID string, signature Signature, quantity int) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.store.Load(ctx, tenantID, sessionID)
	if err != nil {
		return nil, err
	}
	if current.UpdateQuantity(signature, quantity) {
		if err := s.store.Save(ctx, tenantID, sessionID, current); err != nil {
			return nil, err
		}
		s.metrics.IncCartMutation("update_quantity")
	}
	return current, nil
}

func (s *service) RemoveLine(ctx context.Context, tenantID, sessionID string, signature Signature) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.store.Load(ctx, tenantID, sessionID)
	if err != nil {
		return nil, err
	}
	current.Remove(signature)
	if err := s.store.Save(ctx, tenantID, sessionID, current); err != nil {
		return nil, err
	}
	s.metrics.IncCartMutation("remove")
	return current, nil
}

func (s *service) Clear(ctx context.Context, tenantID, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Drop(ctx, tenantID, sessionID); err != nil {
		return err
	}
	s.metrics.IncCartMutation("clear")
	return nil
}
