package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	GatewayEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upvote_bot_gateway_events_total",
			Help: "Gateway events received, by event type",
		},
		[]string{"type"},
	)

	ThreadsHandledTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "upvote_bot_threads_handled_total",
			Help: "Thread-create events dispatched to the handler",
		},
	)

	ReactionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "upvote_bot_reactions_total",
			Help: "Upvote reactions successfully added",
		},
	)

	HandlerErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upvote_bot_handler_errors_total",
			Help: "Handler failures, by error kind",
		},
		[]string{"kind"},
	)

	ForumCacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "upvote_bot_forum_cache_hits_total",
			Help: "Forum classification lookups answered from the cache",
		},
	)

	ForumCacheMissesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "upvote_bot_forum_cache_misses_total",
			Help: "Forum classification lookups that required a channel fetch",
		},
	)
)

func init() {
	prometheus.MustRegister(GatewayEventsTotal)
	prometheus.MustRegister(ThreadsHandledTotal)
	prometheus.MustRegister(ReactionsTotal)
	prometheus.MustRegister(HandlerErrorsTotal)
	prometheus.MustRegister(ForumCacheHitsTotal)
	prometheus.MustRegister(ForumCacheMissesTotal)
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
