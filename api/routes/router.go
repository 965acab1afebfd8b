package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pediloya/storefront-backend/api/controllers"
	"github.com/pediloya/storefront-backend/api/middleware"
	cartsvc "github.com/pediloya/storefront-backend/internal/cart"
	"github.com/pediloya/storefront-backend/internal/catalog"
	checkoutsvc "github.com/pediloya/storefront-backend/internal/checkout"
	"github.com/pediloya/storefront-backend/pkg/config"
	"github.com/pediloya/storefront-backend/pkg/logger"
	"github.com/pediloya/storefront-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	catalogService catalog.Service,
	cartService cartsvc.Service,
	checkoutService checkoutsvc.Service,
	promRegistry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, redisClient))
	})

	if promRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Tenant(logg))

		r.Get("/menu", controllers.Menu(catalogService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.CartSession(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(cartService, logg))
				r.Delete("/", controllers.CartClear(cartService, logg))
				r.Post("/items", controllers.CartAddItem(cartService, catalogService, logg))
				r.Patch("/items/{signature}", controllers.CartUpdateItem(cartService, logg))
				r.Delete("/items/{signature}", controllers.CartRemoveItem(cartService, logg))
			})

			r.Post("/checkout", controllers.Checkout(checkoutService, logg))
		})
	})

	return r
}
