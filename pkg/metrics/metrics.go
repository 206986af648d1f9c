package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels
const (
	OutcomeSuccess  = "success"
	OutcomeSignUp   = "sign_up"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

var (
	NonceRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "siwh",
		Name:      "nonce_requests_total",
		Help:      "Nonces issued or refused, by chain and outcome.",
	}, []string{"chain", "outcome"})

	VerifyTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "siwh",
		Name:      "verify_total",
		Help:      "Sign-in verifications by outcome.",
	}, []string{"outcome"})

	LinkTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "siwh",
		Name:      "link_total",
		Help:      "Wallet link and unlink calls by operation and outcome.",
	}, []string{"operation", "outcome"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "siwh",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
