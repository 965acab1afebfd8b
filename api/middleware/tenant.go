package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/pediloya/storefront-backend/api/responses"
	pkgerrors "github.com/pediloya/storefront-backend/pkg/errors"
	"github.com/pediloya/storefront-backend/pkg/logger"
)

const tenantHeader = "X-Tenant-Id"

// Tenant resolves which storefront the request targets. The tenant is
// the leftmost label of the Host by default, so la-esquina.example.com
// serves the la-esquina storefront. The X-Tenant-Id header overrides
// the Host when present, which is how local tooling and the mobile app
// address a storefront without custom DNS.
func Tenant(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenantID := strings.TrimSpace(r.Header.Get(tenantHeader))
			if tenantID == "" {
				tenantID = tenantFromHost(r.Host)
			}
			if tenantID == "" {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "tenant could not be resolved from request"))
				return
			}

			ctx := WithTenantID(r.Context(), tenantID)
			if logg != nil {
				ctx = logg.WithTenantID(ctx, tenantID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tenantFromHost(host string) string {
	if host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	// A bare domain or an IP has no subdomain to name a tenant.
	if net.ParseIP(host) != nil {
		return ""
	}
	labels := strings.Split(host, ".")
	if len(labels) < 3 {
		return ""
	}
	sub := labels[0]
	if sub == "www" || sub == "api" {
		return ""
	}
	return sub
}
