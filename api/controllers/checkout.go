package controllers

import (
	"net/http"

	"github.com/pediloya/storefront-backend/api/middleware"
	"github.com/pediloya/storefront-backend/api/responses"
	"github.com/pediloya/storefront-backend/api/validators"
	"github.com/pediloya/storefront-backend/internal/checkout"
	"github.com/pediloya/storefront-backend/pkg/enums"
	pkgerrors "github.com/pediloya/storefront-backend/pkg/errors"
	"github.com/pediloya/storefront-backend/pkg/logger"
)

const maxFreeTextLen = 500

// CheckoutRequest is the submission payload for the session's cart.
type CheckoutRequest struct {
	DeliveryMethod string            `json:"delivery_method" validate:"required"`
	PaymentMethod  string            `json:"payment_method" validate:"required"`
	Customer       checkout.Customer `json:"customer"`
	Address        *checkout.Address `json:"address,omitempty"`
	Pickup         *checkout.Pickup  `json:"pickup,omitempty"`
}

// Checkout assembles and submits the session's cart as an order.
func Checkout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		tenantID := middleware.TenantIDFromContext(r.Context())
		sessionID := middleware.CartSessionFromContext(r.Context())

		var payload CheckoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deliveryMethod, err := enums.ParseDeliveryMethod(payload.DeliveryMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid delivery method"))
			return
		}
		paymentMethod, err := enums.ParsePaymentMethod(payload.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		input := checkout.Input{
			DeliveryMethod: deliveryMethod,
			PaymentMethod:  paymentMethod,
			Customer: checkout.Customer{
				Name:  validators.SanitizeString(payload.Customer.Name, maxFreeTextLen),
				Phone: validators.SanitizeString(payload.Customer.Phone, 40),
			},
		}
		if payload.Address != nil {
			input.Address = &checkout.Address{
				Street:    validators.SanitizeString(payload.Address.Street, maxFreeTextLen),
				Number:    validators.SanitizeString(payload.Address.Number, 20),
				Apartment: validators.SanitizeString(payload.Address.Apartment, 50),
				Notes:     validators.SanitizeString(payload.Address.Notes, maxFreeTextLen),
			}
		}
		if payload.Pickup != nil {
			input.Pickup = &checkout.Pickup{
				Store: validators.SanitizeString(payload.Pickup.Store, maxFreeTextLen),
				Date:  validators.SanitizeString(payload.Pickup.Date, 20),
				Slot:  validators.SanitizeString(payload.Pickup.Slot, 20),
			}
		}

		order, err := svc.Checkout(r.Context(), tenantID, sessionID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
