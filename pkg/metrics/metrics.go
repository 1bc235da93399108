package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "site", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "site", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	// ContentOps counts gateway operations. op is load|save, outcome is
	// ok|default|not_found|invalid|error.
	ContentOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "site", Name: "content_operations_total", Help: "Content gateway operations by section, op and outcome."},
		[]string{"section", "op", "outcome"},
	)
	// AssetOps counts attach/detach calls by outcome.
	AssetOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "site", Name: "asset_operations_total", Help: "Asset attach/detach operations by op and outcome."},
		[]string{"op", "outcome"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(ContentOps)
	reg.MustRegister(AssetOps)
}
