package middleware

import (
	"net/http"
	"strings"

	"github.com/pediloya/storefront-backend/api/responses"
	pkgerrors "github.com/pediloya/storefront-backend/pkg/errors"
	"github.com/pediloya/storefront-backend/pkg/logger"
)

const cartSessionHeader = "X-Cart-Session"

// CartSession requires the client-held cart session identifier. The
// storefront has no accounts, so this opaque id is the only thing tying
// a browser to its cart.
func CartSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := strings.TrimSpace(r.Header.Get(cartSessionHeader))
			if sessionID == "" {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "X-Cart-Session header required"))
				return
			}

			ctx := WithCartSession(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithCartSession(ctx, sessionID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
