package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records cart and checkout activity.
type StorefrontMetrics struct {
	cartMutations      *prometheus.CounterVec
	checkoutRejections *prometheus.CounterVec
	ordersSubmitted    prometheus.Counter
	menuFetchFailures  prometheus.Counter
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutation operations by kind.",
	}, []string{"op"})
	checkoutRejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_rejections_total",
		Help: "Checkout attempts rejected by a gate, labelled by rule.",
	}, []string{"rule"})
	ordersSubmitted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_submitted_total",
		Help: "Orders accepted by the upstream submission endpoint.",
	})
	menuFetchFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "menu_fetch_failures_total",
		Help: "Failed upstream menu fetches.",
	})
	reg.MustRegister(cartMutations, checkoutRejections, ordersSubmitted, menuFetchFailures)
	return &StorefrontMetrics{
		cartMutations:      cartMutations,
		checkoutRejections: checkoutRejections,
		ordersSubmitted:    ordersSubmitted,
		menuFetchFailures:  menuFetchFailures,
	}
}

// IncCartMutation increments the counter for the named cart operation.
func (s *StorefrontMetrics) IncCartMutation(op string) {
	if s == nil || s.cartMutations == nil {
		return
	}
	s.cartMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncCheckoutRejection increments the rejection counter for the named rule.
func (s *StorefrontMetrics) IncCheckoutRejection(rule string) {
	if s == nil || s.checkoutRejections == nil {
		return
	}
	s.checkoutRejections.WithLabelValues(normalizeLabel(rule)).Inc()
}

// IncOrderSubmitted increments the submitted-orders counter.
func (s *StorefrontMetrics) IncOrderSubmitted() {
	if s == nil || s.ordersSubmitted == nil {
		return
	}
	s.ordersSubmitted.Inc()
}

// IncMenuFetchFailure increments the failed-menu-fetch counter.
func (s *StorefrontMetrics) IncMenuFetchFailure() {
	if s == nil || s.menuFetchFailures == nil {
		return
	}
	s.menuFetchFailures.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
