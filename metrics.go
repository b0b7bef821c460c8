package storefront

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var checkoutOutcomesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "reservat_storefront",
		Name:      "checkout_outcomes_total",
		Help:      "Checkout fan-outs by aggregate outcome.",
	},
	[]string{"outcome"},
)
