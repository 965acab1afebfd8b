package checkout

import (
	"context"
	stdErrors "errors"
	"fmt"
	"time"

	"github.com/pediloya/storefront-backend/internal/cart"
	"github.com/pediloya/storefront-backend/internal/catalog"
	pkgerrors "github.com/pediloya/storefront-backend/pkg/errors"
	"github.com/pediloya/storefront-backend/pkg/logger"
	"github.com/pediloya/storefront-backend/pkg/metrics"
)

// Service executes checkout orchestration.
type Service interface {
	Checkout(ctx context.Context, tenantID, sessionID string, input Input) (*Order, error)
}

type service struct {
	carts     cart.Service
	catalog   catalog.Service
	submitter Submitter
	logg      *logger.Logger
	metrics   *metrics.StorefrontMetrics
	now       func() time.Time
}

// NewService builds the checkout service.
func NewService(carts cart.Service, catalogSvc catalog.Service, submitter Submitter, logg *logger.Logger, m *metrics.StorefrontMetrics) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	if submitter == nil {
		return nil, fmt.Errorf("submitter required")
	}
	return &service{
		carts:     carts,
		catalog:   catalogSvc,
		submitter: submitter,
		logg:      logg,
		metrics:   m,
		now:       time.Now,
	}, nil
}

func (s *service) Checkout(ctx context.Context, tenantID, sessionID string, input Input) (*Order, error) {
	current, err := s.carts.Get(ctx, tenantID, sessionID)
	if err != nil {
		return nil, err
	}
	lines := current.Lines()
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	menu, err := s.catalog.Menu(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	order, err := Assemble(lines, menu.Commerce, input, s.now())
	if err != nil {
		var rejection *Rejection
		if stdErrors.As(err, &rejection) {
			s.metrics.IncCheckoutRejection(rejection.Rule)
		}
		return nil, err
	}

	if err := s.submitter.Submit(ctx, tenantID, order); err != nil {
		// The cart survives a failed submission so the customer can
		// retry without rebuilding it.
		return nil, err
	}

	if err := s.carts.Clear(ctx, tenantID, sessionID); err != nil {
		// The order is already placed. Log and return it anyway.
		if s.logg != nil {
			s.logg.Error(ctx, "checkout.cart_clear_failed", err)
		}
	}

	s.metrics.IncOrderSubmitted()
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "order_id", order.ID.String()), "checkout.order_submitted")
	}
	return order, nil
}
