package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pediloya/storefront-backend/api/middleware"
	"github.com/pediloya/storefront-backend/api/responses"
	"github.com/pediloya/storefront-backend/api/validators"
	cartsvc "github.com/pediloya/storefront-backend/internal/cart"
	"github.com/pediloya/storefront-backend/internal/catalog"
	"github.com/pediloya/storefront-backend/internal/selection"
	pkgerrors "github.com/pediloya/storefront-backend/pkg/errors"
	"github.com/pediloya/storefront-backend/pkg/logger"
)

// AddItemRequest adds one configured product to the cart.
type AddItemRequest struct {
	ProductID  string                          `json:"product_id" validate:"required"`
	Quantity   int                             `json:"quantity" validate:"gt=0"`
	Selections []selection.SelectedOptionInput `json:"selections,omitempty" validate:"omitempty,dive"`
}

// UpdateQuantityRequest changes the quantity of an existing line.
// Quantity zero removes the line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// CartFetch serves the session's current cart.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		tenantID := middleware.TenantIDFromContext(r.Context())
		sessionID := middleware.CartSessionFromContext(r.Context())

		current, err := svc.Get(r.Context(), tenantID, sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartView(current))
	}
}

// CartAddItem validates a product configuration against the live menu
// and adds it to the cart.
func CartAddItem(svc cartsvc.Service, catalogSvc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || catalogSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		tenantID := middleware.TenantIDFromContext(r.Context())
		sessionID := middleware.CartSessionFromContext(r.Context())

		var payload AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		menu, err := catalogSvc.Menu(r.Context(), tenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, ok := menu.Product(payload.ProductID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		session, err := selection.ApplySelections(product, payload.Selections)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.AddItem(r.Context(), tenantID, sessionID, product, payload.Quantity, session.Selected())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newCartView(updated))
	}
}

// CartUpdateItem changes a line's quantity, addressed by its encoded
// signature.
func CartUpdateItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		tenantID := middleware.TenantIDFromContext(r.Context())
		sessionID := middleware.CartSessionFromContext(r.Context())

		signature, err := cartsvc.DecodeSignature(chi.URLParam(r, "signature"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid line signature"))
			return
		}

		var payload UpdateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateQuantity(r.Context(), tenantID, sessionID, signature, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartView(updated))
	}
}

// CartRemoveItem drops a line from the cart. Removing a line that is
// already gone succeeds.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		tenantID := middleware.TenantIDFromContext(r.Context())
		sessionID := middleware.CartSessionFromContext(r.Context())

		signature, err := cartsvc.DecodeSignature(chi.URLParam(r, "signature"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid line signature"))
			return
		}

		updated, err := svc.RemoveLine(r.Context(), tenantID, sessionID, signature)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartView(updated))
	}
}

// CartClear empties the session's cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		tenantID := middleware.TenantIDFromContext(r.Context())
		sessionID := middleware.CartSessionFromContext(r.Context())

		if err := svc.Clear(r.Context(), tenantID, sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartView(&cartsvc.Cart{}))
	}
}
