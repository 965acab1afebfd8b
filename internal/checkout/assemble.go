package checkout

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pediloya/storefront-backend/internal/cart"
	"github.com/pediloya/storefront-backend/internal/catalog"
	"github.com/pediloya/storefront-backend/internal/pricing"
	"github.com/pediloya/storefront-backend/pkg/enums"
	pkgerrors "github.com/pediloya/storefront-backend/pkg/errors"
)

// Rejection rules, used as metric labels when an order fails a gate.
const (
	RuleCommerceClosed    = "commerce_closed"
	RuleMethodNotAccepted = "method_not_accepted"
	RuleCustomerData      = "customer_data"
	RuleAddressData       = "address_data"
	RulePickupData        = "pickup_data"
	RuleBelowMinimum      = "below_minimum"
)

// BelowMinimumDetail exposes the gap between the cart subtotal and the
// commerce's minimum order value.
type BelowMinimumDetail struct {
	RequiredMinimum int `json:"required_minimum"`
	Subtotal        int `json:"subtotal"`
}

// Order is an immutable assembled order ready for submission. Totals are
// computed once here and never recomputed downstream.
type Order struct {
	ID             uuid.UUID            `json:"id"`
	CommerceName   string               `json:"commerce_name"`
	DeliveryMethod enums.DeliveryMethod `json:"delivery_method"`
	PaymentMethod  enums.PaymentMethod  `json:"payment_method"`
	Customer       Customer             `json:"customer"`
	Address        *Address             `json:"address,omitempty"`
	Pickup         *Pickup              `json:"pickup,omitempty"`
	Lines          []cart.Line          `json:"lines"`
	Subtotal       int                  `json:"subtotal"`
	ShippingCost   int                  `json:"shipping_cost"`
	Total          int                  `json:"total"`
	PlacedAt       time.Time            `json:"placed_at"`
}

// Rejection pairs a gate failure with the rule that tripped, so callers
// can count rejections per rule without parsing error messages.
type Rejection struct {
	Rule string
	Err  *pkgerrors.Error
}

func (r *Rejection) Error() string {
	return r.Err.Error()
}

func (r *Rejection) Unwrap() error {
	return r.Err
}

func reject(rule string, err *pkgerrors.Error) error {
	return &Rejection{Rule: rule, Err: err}
}

// Assemble runs every checkout gate against the cart and commerce state
// and, when all pass, freezes the order. The closed-commerce gate runs
// first: a closed storefront rejects checkout no matter what else the
// payload looks like.
func Assemble(lines []cart.Line, commerce catalog.CommerceInfo, input Input, now time.Time) (*Order, error) {
	input.Normalize()

	if !commerce.IsOpen {
		return nil, reject(RuleCommerceClosed,
			pkgerrors.New(pkgerrors.CodeStateConflict, "commerce is closed"))
	}

	if !input.DeliveryMethod.IsValid() {
		return nil, reject(RuleMethodNotAccepted,
			pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid delivery method %q", input.DeliveryMethod)))
	}
	if !input.PaymentMethod.IsValid() {
		return nil, reject(RuleCustomerData,
			pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid payment method %q", input.PaymentMethod)))
	}
	switch input.DeliveryMethod {
	case enums.DeliveryMethodDelivery:
		if !commerce.AcceptsDelivery {
			return nil, reject(RuleMethodNotAccepted,
				pkgerrors.New(pkgerrors.CodeStateConflict, "commerce does not accept delivery orders"))
		}
	case enums.DeliveryMethodPickup:
		if !commerce.AcceptsPickup {
			return nil, reject(RuleMethodNotAccepted,
				pkgerrors.New(pkgerrors.CodeStateConflict, "commerce does not accept pickup orders"))
		}
	}

	if input.Customer.Name == "" {
		return nil, reject(RuleCustomerData,
			pkgerrors.New(pkgerrors.CodeValidation, "customer name required"))
	}
	if !validPhone(input.Customer.Phone) {
		return nil, reject(RuleCustomerData,
			pkgerrors.New(pkgerrors.CodeValidation, "customer phone invalid"))
	}

	subtotal := pricing.Subtotal(lines)
	shipping := 0

	switch input.DeliveryMethod {
	case enums.DeliveryMethodDelivery:
		if input.Address == nil || input.Address.Street == "" || input.Address.Number == "" {
			return nil, reject(RuleAddressData,
				pkgerrors.New(pkgerrors.CodeValidation, "delivery address requires street and number"))
		}
		if subtotal < commerce.MinOrderValue {
			return nil, reject(RuleBelowMinimum,
				pkgerrors.New(pkgerrors.CodeStateConflict, "cart subtotal below the commerce minimum").WithDetails(BelowMinimumDetail{
					RequiredMinimum: commerce.MinOrderValue,
					Subtotal:        subtotal,
				}))
		}
		shipping = commerce.DeliveryFee
	case enums.DeliveryMethodPickup:
		if input.Pickup == nil || input.Pickup.Store == "" || input.Pickup.Date == "" || input.Pickup.Slot == "" {
			return nil, reject(RulePickupData,
				pkgerrors.New(pkgerrors.CodeValidation, "pickup requires store, date and slot"))
		}
	}

	order := &Order{
		ID:             uuid.New(),
		CommerceName:   commerce.Name,
		DeliveryMethod: input.DeliveryMethod,
		PaymentMethod:  input.PaymentMethod,
		Customer:       input.Customer,
		Lines:          lines,
		Subtotal:       subtotal,
		ShippingCost:   shipping,
		Total:          subtotal + shipping,
		PlacedAt:       now.UTC(),
	}
	if input.DeliveryMethod == enums.DeliveryMethodDelivery {
		address := *input.Address
		order.Address = &address
	} else {
		pickup := *input.Pickup
		order.Pickup = &pickup
	}
	return order, nil
}
