package controllers

import (
	"net/http"

	"github.com/pediloya/storefront-backend/api/middleware"
	"github.com/pediloya/storefront-backend/api/responses"
	"github.com/pediloya/storefront-backend/internal/catalog"
	pkgerrors "github.com/pediloya/storefront-backend/pkg/errors"
	"github.com/pediloya/storefront-backend/pkg/logger"
)

// Menu serves the tenant's full menu read model.
func Menu(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		tenantID := middleware.TenantIDFromContext(r.Context())
		menu, err := svc.Menu(r.Context(), tenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, menu)
	}
}
