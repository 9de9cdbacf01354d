package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AuthDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_auth_decisions_total",
		Help: "Edge auth outcomes by decision.",
	}, []string{"decision"})

	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_validation_cache_hits_total",
		Help: "Token verdicts served from the validation cache.",
	})

	ProxiedRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_proxied_requests_total",
		Help: "Requests forwarded to downstream services.",
	}, []string{"service"})
)

const (
	DecisionAllowed = "allowed"
	DecisionDenied  = "denied"
	DecisionBreaker = "breaker_open"
	DecisionPublic  = "public"
)
